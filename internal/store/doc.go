// Package store provides SQLite-backed storage for dispatch traces.
//
// A run is one traversal of a fixture by a pass, recorded as the ordered
// list of node visits the dispatcher made. The store is append-only:
//   - Runs: one row per recorded traversal, with the trace digest
//   - Events: the visits of a run, keyed by (run_id, seq)
//
// # Ordering
//
// Runs carry a logical seq assigned at write time. Every query orders by
// seq, never by wall time, so listings are identical across machines.
//
// # Digests
//
// A run's digest is canon.Digest(canon.DomainTrace, events). Two runs with
// equal digests visited the same variants in the same order, which makes
// the digest a cheap regression check for pass traversals.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
