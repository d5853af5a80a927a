package repl

import "strings"

// Completer provides command completion for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a new Completer.
func NewCompleter() *Completer {
	return &Completer{
		commands: []string{
			"get", "set", "setnx", "getset", "append", "strlen",
			"getrange", "setrange",
			"incr", "decr", "incrby", "decrby", "incrbyfloat", "bitcount",
			"mget", "mset", "msetnx",
			"hget", "hset", "hsetnx", "hgetall", "hkeys", "hvals",
			"hdel", "hexists", "hlen", "hmget", "hmset",
			"hincrby", "hincrbyfloat", "hscan",
			"lpush", "rpush", "lpushx", "rpushx", "lpop", "rpop",
			"llen", "lrange", "ltrim", "lset", "lindex", "lrem",
			"linsert", "rpoplpush",
			"sadd", "srem", "scard", "sismember", "smembers",
			"spop", "srandmember", "smove",
			"sunion", "sunionstore", "sinter", "sinterstore",
			"sdiff", "sdiffstore", "sscan",
			"keys", "scan", "exists", "randomkey", "del",
			"ping", "quit", "exit",
		},
	}
}

// Complete returns completion suggestions for the given prefix.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
