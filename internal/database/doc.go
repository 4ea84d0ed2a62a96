// Package database provides SQLite-based storage for brokerseo.
//
// This package implements the SiteDB, which stores:
//   - A local-storage style key/value table, used to persist the broker
//     comparison selection under the "broker_comparison" key
//   - Page build history: one summary row per page per build, with a
//     content fingerprint used to report which pages changed
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode lets "brokerseo serve" read while a build writes
//
// Rendered pages themselves are not stored; they are recomputed from the
// catalog and the page registry on every run.
package database
