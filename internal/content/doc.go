// Package content derives statistics and templated page text from a
// filtered, ranked broker list.
//
// Everything here is a pure function of its inputs: the page configuration,
// the broker list (already filtered and sorted) and the generator options.
// An empty broker list is a normal input. It yields zero statistics and
// "no results" text, never an error.
//
// Design decision: narrative strings are text/template templates parsed
// once at package init. Numbers inside them are formatted through an
// x/text message printer, so thousands separators follow the configured
// language even though the copy itself is English only.
package content
