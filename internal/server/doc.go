// Package server provides the read-mostly JSON API behind "brokerseo serve".
//
// Every request renders from an immutable Snapshot of the catalog, the page
// registry and the search index. Reloading swaps the whole snapshot
// atomically, so in-flight requests keep a consistent view. The comparison
// selection is the only mutable state and is owned by compare.Store.
//
// Design decision: We use chi instead of net/http's mux because:
// 1. Route parameters ({slug}, {id}) and method routing are declarative
// 2. The stock middleware (request id, recoverer, timeout) composes cleanly
// 3. go-chi/cors handles preflight requests for browser clients
package server
