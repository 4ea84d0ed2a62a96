// Package search provides full-text search over the broker catalog.
//
// The index lives in memory and is rebuilt whenever the catalog is
// reloaded. Queries match broker ids, names, regulators, platforms,
// headquarters and descriptions, with exact id and name-prefix matches
// ranked above description hits.
//
// Design decision: We use bleve rather than a substring scan because:
// 1. Relevance ranking across several fields comes for free
// 2. Fuzzy matching tolerates typos such as "pepperstne"
// 3. The catalog is small enough that an in-memory index builds in
//    milliseconds, so no index files need to be managed
package search
