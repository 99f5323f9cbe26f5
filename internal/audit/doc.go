// Package audit keeps a local trail of triflow operations.
//
// Every mutation and every plaintext export is appended to a JSON Lines
// file, audit.jsonl in the data directory by default. Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - OS user and install UUID
//   - Operation and collection name
//   - Operation-specific details (record id, export path and count)
//
// The log itself is plaintext, so it only ever records identifiers, never
// task descriptions, expense names or amounts.
//
// # Failure Handling
//
// Audit logging is best-effort. Log returns an error so the caller can
// print a warning, but the operation that was being recorded has already
// been saved and is never rolled back.
//
// # Reading Logs
//
// Use ReadEntries to parse the audit log for display. Malformed lines are
// skipped to tolerate a partial final write.
package audit
