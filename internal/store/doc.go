// Package store provides SQLite-backed persistence for rotorgraph machines.
//
// Every entity (quorum, machine, combination, rotor, crosswire, reflector,
// plugboard) lives in its own table and references its owner by id. The
// store offers the record-level operations the engine needs: insert, find by
// selector, find one, update and remove. It performs no cascading on its own;
// owners remove their children explicitly (a rotor's crosswires go first).
//
// # Ordering
//
//   - created_seq is stamped from a logical clock on insert and never from
//     wall time, so "creation order" is reproducible.
//   - Rotors can be listed by scrambled order (ascending or descending) or by
//     creation order. Every ORDER BY ends in a unique column so results are
//     deterministic.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// The design assumes a single writer per machine; no method guards against
// concurrent mutation of the same machine.
package store
