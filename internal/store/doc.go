// Package store provides the SQLite client used by the demo catalog.
//
// A Store satisfies query.SearchClient: Query returns *sql.Rows, and
// TextSearchExpression renders FTS4 MATCH expressions via textsearch.SQLite.
//
// # Schema
//
//   - widgets, cities, domains: base tables, each with an FTS4 shadow table
//     (<table>_fts) maintained by triggers; docid equals the base rowid
//   - addresses: keyed by (number, street, zip, unit), unit nullable
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Fixtures are loaded from YAML with Seed.
package store
