// Package config provides configuration structures and utilities for brokerseo.
// It defines where broker and page data come from, how pages are ranked,
// where local state is stored and how the API server listens.
package config
