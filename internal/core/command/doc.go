// Package command provides dispatch metadata for the KeyMesh vocabulary.
//
// This package implements the two front stages of the pipeline:
//
//   - Registry: a static table binding each command name to the node
//     type that owns it, plus the must-exist / cannot-exist guard sets
//   - Payload: the immutable parsed request built from one command line
//
// Centralizing the metadata here lets the client session enforce
// pre-conditions before actor materialization: a must-exist command
// never creates an actor and a cannot-exist command never mutates one.
package command
