// Package registry holds the programmatic SEO page configurations.
//
// Pages are declared in YAML (embedded by default, overridable with the
// "pages" setting) and validated once when the registry is built. A page
// is addressed by its slug, the lower-cased last segment of its path, so
// "/brokers/ecn-brokers", "/ecn-brokers" and "ECN-Brokers" all resolve to
// the same configuration.
//
// Design decision: a missing page is reported with the ErrPageNotFound
// sentinel. The CLI turns it into a message and the HTTP server into a 404;
// neither treats it as a fault.
package registry
