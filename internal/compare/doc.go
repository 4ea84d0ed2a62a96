// Package compare manages the user's broker comparison selection.
//
// A selection is an ordered list of at most MaxSelection unique broker ids.
// Store is the state container: it applies Add, Remove and Clear, enforces
// the limit, and writes the full selection through a Persister after every
// mutation.
//
// Design decision: hitting the limit or adding a broker twice is not an
// error. Add returns a Notice describing what happened so the caller can
// show it to the user, and the selection is left unchanged. Errors are
// reserved for persistence failures.
//
// Loading is forgiving. A missing value is an empty selection; a corrupt
// value is logged at WARN and also treated as empty. Stored lists that
// violate the invariants (duplicates, more than MaxSelection entries) are
// repaired on load.
//
// Persisters exist for a local-storage style key/value backend (the SQLite
// database implements it), a JSON file, and memory for tests.
package compare
