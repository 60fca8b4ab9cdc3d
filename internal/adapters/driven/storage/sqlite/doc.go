// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - ContactStore: Contact persistence, unique by name
//   - DealStore: Deal persistence
//   - DocumentStore: Note persistence
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Ordering
//
// Every table carries an autoincrement seq column. Listing and substring
// queries return rows in insertion order; the first matching deal wins
// contact linkage.
//
// # Data Location
//
// By default, the database is stored at ~/.relay/data/relay.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
