// Package node implements the per-key value actors for KeyMesh.
//
// This package contains:
//
//   - The four value node types (string, hash, list, set), each a
//     dispatch map from command token to a handler closing over the
//     node's own state
//   - The key directory: a set node with a chained dispatch overlay,
//     registered at the well-known address "keys"
//   - The scan engine shared by scan, hscan and sscan
//   - Space: the keyspace wiring that resolves, materializes and
//     terminates node actors through the actor system
//
// A node validates the payload's node type before dispatching; a
// mismatch replies with a diagnostic and never mutates state. All
// cross-key work (set algebra, smove, rpoplpush) goes through Space,
// by name, never by direct reference to another node's state.
package node
