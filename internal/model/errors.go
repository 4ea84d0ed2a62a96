package model

import "errors"

// ErrUnknownValue is returned when a string does not name a member of one
// of the closed enums in this package (features, specialties, regions,
// sort keys, sort orders, change frequencies).
var ErrUnknownValue = errors.New("unknown value")
