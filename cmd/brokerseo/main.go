// Package main provides the entry point for the brokerseo CLI.
//
// brokerseo renders programmatic SEO landing pages from a forex broker
// catalog. It filters and ranks brokers per page, generates page copy and
// structured data, keeps a comparison selection and serves everything over
// a small JSON API.
//
// Usage:
//
//	brokerseo pages
//	brokerseo render metatrader4-mt4
//	brokerseo build -o ./site
//	brokerseo serve --watch
//
// See --help for all available options.
package main

// main is the entry point for brokerseo.
func main() {
	Execute()
}
