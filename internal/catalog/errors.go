package catalog

import "errors"

// Catalog validation errors. Load wraps these with the offending broker id.
var (
	// ErrEmptyCatalog is returned when the data file contains no brokers.
	ErrEmptyCatalog = errors.New("catalog contains no brokers")

	// ErrMissingID is returned when a broker has no id.
	ErrMissingID = errors.New("broker id is required")

	// ErrDuplicateID is returned when two brokers share the same id.
	ErrDuplicateID = errors.New("duplicate broker id")

	// ErrNegativeValue is returned when a numeric field is below zero.
	ErrNegativeValue = errors.New("numeric field must be non-negative")

	// ErrScoreOutOfRange is returned when a score is outside 0-10.
	ErrScoreOutOfRange = errors.New("score must be between 0 and 10")
)
