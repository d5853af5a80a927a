// Package session implements the per-connection command orchestrator.
//
// A session takes one framed command line at a time, parses it into a
// payload and routes it: client-local commands (ping, quit, mget,
// mset, msetnx) run inside the session itself, key-directory commands
// go to the directory actor, and everything else resolves or
// materializes the target value node before the payload is delivered.
//
// The session is where the must-exist and cannot-exist pre-conditions
// are enforced, so guarded commands never reach (or create) a node
// they must not touch. It is also the orchestration point for
// cross-key client commands, which the key-owning nodes cannot do
// safely on their own.
package session
