// Package report provides page and comparison output functionality.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: GitHub-flavored Markdown for publishing
//
// It also writes the XML sitemap of all registry pages and strips the
// inline HTML that catalog descriptions and FAQ answers may contain.
//
// Design decision: We separate output from the data structures (which are
// in the model package) so that adding a format never touches the
// pipeline. Writers implement the Writer interface, allowing them to be
// used interchangeably and composed for multi-format output.
package report
