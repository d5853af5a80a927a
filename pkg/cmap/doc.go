// Package cmap provides a concurrent map implementation for KeyMesh.
//
// This package implements a sharded concurrent map optimized for the
// per-key actor registry with the following features:
//
//   - Sharding: Configurable shard count for parallelism
//   - Fine-grained Locking: Per-shard RWMutex for minimal contention
//   - Atomic Materialization: GetOrCompute runs the constructor under
//     the shard lock so concurrent creators agree on one value
//   - Iteration: Safe iteration while holding read locks
//
// Usage:
//
//	m := cmap.New[*actor.Ref]()
//	ref, existed := m.GetOrCompute("key", spawn)
//	val, ok := m.Get("key")
//
// Thread Safety:
//
// All operations are thread-safe. Read operations (Get, Has) use RLock,
// write operations (Set, Delete, GetOrCompute, Pop) use Lock.
package cmap
