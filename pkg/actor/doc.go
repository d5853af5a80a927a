// Package actor provides a minimal message-passing actor runtime for KeyMesh.
//
// This package implements goroutine-backed actors with the following
// guarantees:
//
//   - Serial Mailbox: each actor processes one message to completion
//     before the next, giving per-actor linearizability without locks
//   - Named Registry: actors are discovered by name through the system,
//     never by direct reference to one another's state
//   - Atomic Materialization: GetOrSpawn creates an actor exactly once
//     under concurrent callers
//   - Stop Semantics: stopping an actor discards messages still queued
//     in its mailbox
//
// Usage:
//
//	sys := actor.NewSystem()
//	ref, _ := sys.GetOrSpawn("foo", func() actor.Receiver { return newCounter() })
//	reply, err := ref.Ask(ctx, msg)
//
// Ordering: messages from one sender to one receiver are delivered in
// send order. No ordering holds across different senders.
package actor
