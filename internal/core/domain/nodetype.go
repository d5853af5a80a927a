package domain

// NodeType identifies which kind of actor owns a command.
type NodeType string

// The closed set of node types. StringNode through SetNode are per-key
// value actors; KeyNode is the key directory; ClientNode marks commands
// the client session executes itself.
const (
	StringNode NodeType = "string"
	HashNode   NodeType = "hash"
	ListNode   NodeType = "list"
	SetNode    NodeType = "set"
	KeyNode    NodeType = "key"
	ClientNode NodeType = "client"
)

// Valid reports whether t is one of the known node types.
func (t NodeType) Valid() bool {
	switch t {
	case StringNode, HashNode, ListNode, SetNode, KeyNode, ClientNode:
		return true
	}
	return false
}
