// Package model defines the core data structures used throughout brokerseo.
//
// This package contains the following main types:
//   - Broker: One forex broker profile from the static catalog
//   - PageConfig: A declarative programmatic SEO landing page definition
//   - Filters: The predicate specification carried by a PageConfig
//   - Stats and GeneratedContent: Derived display data for a page
//   - PageResult: The per-page output of the filter → sort → content pipeline
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The filter, rank, content, report and server packages all
// need these types, so centralizing them prevents import cycles.
//
// Closed sets (features, specialties, regions, sort keys) are iota-based
// enums with String/Parse pairs. They implement encoding.TextMarshaler and
// encoding.TextUnmarshaler so YAML and JSON decoding rejects unknown values
// instead of silently ignoring them.
package model
