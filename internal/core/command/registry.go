package command

import (
	"github.com/yndnr/keymesh-go/internal/core/domain"
)

// DirectoryKey is the well-known registry address of the key directory.
const DirectoryKey = "keys"

// ownership binds each command to the unique node type that handles it.
// Commands absent from the table are unknown to the server.
var ownership = map[string]domain.NodeType{
	// String commands.
	"get":         domain.StringNode,
	"set":         domain.StringNode,
	"setnx":       domain.StringNode,
	"getset":      domain.StringNode,
	"append":      domain.StringNode,
	"getrange":    domain.StringNode,
	"setrange":    domain.StringNode,
	"strlen":      domain.StringNode,
	"incr":        domain.StringNode,
	"incrby":      domain.StringNode,
	"decr":        domain.StringNode,
	"decrby":      domain.StringNode,
	"incrbyfloat": domain.StringNode,
	"bitcount":    domain.StringNode,
	"getbit":      domain.StringNode,
	"setbit":      domain.StringNode,
	"setex":       domain.StringNode,
	"psetex":      domain.StringNode,
	"bitop":       domain.StringNode,
	"bitpos":      domain.StringNode,

	// Hash commands.
	"hget":         domain.HashNode,
	"hset":         domain.HashNode,
	"hsetnx":       domain.HashNode,
	"hgetall":      domain.HashNode,
	"hkeys":        domain.HashNode,
	"hvals":        domain.HashNode,
	"hdel":         domain.HashNode,
	"hexists":      domain.HashNode,
	"hlen":         domain.HashNode,
	"hmget":        domain.HashNode,
	"hmset":        domain.HashNode,
	"hincrby":      domain.HashNode,
	"hincrbyfloat": domain.HashNode,
	"hscan":        domain.HashNode,

	// List commands.
	"lpush":      domain.ListNode,
	"rpush":      domain.ListNode,
	"lpushx":     domain.ListNode,
	"rpushx":     domain.ListNode,
	"lpop":       domain.ListNode,
	"rpop":       domain.ListNode,
	"lset":       domain.ListNode,
	"lindex":     domain.ListNode,
	"lrem":       domain.ListNode,
	"lrange":     domain.ListNode,
	"ltrim":      domain.ListNode,
	"llen":       domain.ListNode,
	"linsert":    domain.ListNode,
	"rpoplpush":  domain.ListNode,
	"blpop":      domain.ListNode,
	"brpop":      domain.ListNode,
	"brpoplpush": domain.ListNode,

	// Set commands.
	"sadd":        domain.SetNode,
	"srem":        domain.SetNode,
	"scard":       domain.SetNode,
	"sismember":   domain.SetNode,
	"smembers":    domain.SetNode,
	"srandmember": domain.SetNode,
	"spop":        domain.SetNode,
	"sdiff":       domain.SetNode,
	"sinter":      domain.SetNode,
	"sunion":      domain.SetNode,
	"sdiffstore":  domain.SetNode,
	"sinterstore": domain.SetNode,
	"sunionstore": domain.SetNode,
	"smove":       domain.SetNode,
	"sscan":       domain.SetNode,

	// Key directory commands.
	"keys":      domain.KeyNode,
	"scan":      domain.KeyNode,
	"exists":    domain.KeyNode,
	"randomkey": domain.KeyNode,
	"del":       domain.KeyNode,
	"add":       domain.KeyNode,

	// Client-local commands.
	"mget":   domain.ClientNode,
	"mset":   domain.ClientNode,
	"msetnx": domain.ClientNode,
	"ping":   domain.ClientNode,
	"quit":   domain.ClientNode,
}

// mustExist holds commands that require the key to already exist.
// The session replies 0 without materializing an actor otherwise.
var mustExist = map[string]struct{}{
	"lpushx": {},
	"rpushx": {},
}

// cantExist holds conditional-create commands that silently yield 0
// when the key already exists; they are never forwarded to a live actor.
var cantExist = map[string]struct{}{
	"setnx": {},
}

// NodeTypeOf returns the node type owning cmd, or "" for unknown commands.
func NodeTypeOf(cmd string) domain.NodeType {
	return ownership[cmd]
}

// MustExist reports whether cmd requires its key to already exist.
func MustExist(cmd string) bool {
	_, ok := mustExist[cmd]
	return ok
}

// CantExist reports whether cmd must not be delivered to an existing key.
func CantExist(cmd string) bool {
	_, ok := cantExist[cmd]
	return ok
}
