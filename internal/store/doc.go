// Package store provides SQLite-backed storage for precomputed fortune
// records.
//
// The store holds two tables:
//   - batches: one row per precomputation run (UUIDv7 id, date range)
//   - results: one row per birth date, keyed by the record's
//     content-addressed id
//
// # Patterns
//
// Idempotent writes
//   - results.id is ir.ResultID(record); birth_date is UNIQUE
//   - INSERT ... ON CONFLICT DO NOTHING makes reruns of a batch harmless
//
// Logical time
//   - Rows carry seq INTEGER from engine.Clock, never timestamps
//   - MaxSeq lets a new run resume the clock
//
// Canonical records
//   - The record column is RFC 8785 canonical JSON, so it hashes back to
//     the row id
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
