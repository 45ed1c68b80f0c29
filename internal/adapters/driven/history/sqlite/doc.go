// Package sqlite provides a SQLite-backed implementation of the
// HistoryStore driven port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. The schema is managed
// through versioned migrations embedded in the migrations/ directory.
//
// By default, the database is stored at ~/.retriva/data/history.db. All
// operations are thread-safe; the store relies on database-level locking
// provided by SQLite in WAL mode.
package sqlite
