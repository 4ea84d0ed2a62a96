// Package catalog loads and validates the static forex broker catalog.
//
// The catalog is read once, either from the data file embedded in the
// binary or from a user supplied YAML file, and is immutable afterwards.
// Callers share a *Catalog freely between goroutines.
//
// Design decision: validation happens at load time and fails the load.
// Duplicate ids, negative numbers or out-of-range scores are data defects
// that should stop a build, not degrade a rendered page. Every later stage
// (filter, rank, content) can then assume well-formed records.
//
// The Watcher type reloads the catalog when its file changes on disk. It is
// used by "brokerseo serve --watch" so edits to the data show up without a
// restart.
package catalog
