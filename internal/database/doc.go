// Package database provides SQLite-based storage for byteprobe.
//
// This package implements the HistoryDB, which stores complete reports so
// that earlier interpretations of a file can be listed and replayed in any
// output format.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
//
// Reports are stored as JSON next to a few indexed columns (path, SHA-256,
// timestamp) used for listing.
package database
