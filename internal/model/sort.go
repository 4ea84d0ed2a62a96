package model

import (
	"fmt"
	"strings"
)

// SortKey selects the broker field used for ranking.
type SortKey int

const (
	// SortByScore ranks by overall rating.
	SortByScore SortKey = iota
	// SortByMinDeposit ranks by minimum deposit.
	SortByMinDeposit
	// SortBySpread ranks by EUR/USD spread.
	SortBySpread
	// SortByName ranks by case-insensitive name.
	SortByName
)

// sortKeyAliases maps accepted spellings to sort keys.
// The underscore forms are accepted for URL query parameters.
var sortKeyAliases = map[string]SortKey{
	"score":       SortByScore,
	"rating":      SortByScore,
	"mindeposit":  SortByMinDeposit,
	"min_deposit": SortByMinDeposit,
	"deposit":     SortByMinDeposit,
	"spread":      SortBySpread,
	"name":        SortByName,
}

// String returns the canonical spelling of the sort key.
func (k SortKey) String() string {
	switch k {
	case SortByScore:
		return "score"
	case SortByMinDeposit:
		return "minDeposit"
	case SortBySpread:
		return "spread"
	case SortByName:
		return "name"
	default:
		return "unknown"
	}
}

// ParseSortKey converts a case-insensitive name or alias into a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	if k, ok := sortKeyAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: sort key %q", ErrUnknownValue, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k SortKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *SortKey) UnmarshalText(text []byte) error {
	v, err := ParseSortKey(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// SortOrder is the ranking direction.
type SortOrder int

const (
	// Descending puts the largest value first. It is the zero value
	// because pages rank best-rated brokers first by default.
	Descending SortOrder = iota
	// Ascending puts the smallest value first.
	Ascending
)

// String returns "desc" or "asc".
func (o SortOrder) String() string {
	if o == Ascending {
		return "asc"
	}
	return "desc"
}

// ParseSortOrder converts "asc"/"ascending" or "desc"/"descending".
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return 0, fmt.Errorf("%w: sort order %q", ErrUnknownValue, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o SortOrder) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *SortOrder) UnmarshalText(text []byte) error {
	v, err := ParseSortOrder(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// SortSpec pairs a key with a direction.
type SortSpec struct {
	Key   SortKey   `json:"key"`
	Order SortOrder `json:"order"`
}

// DefaultSortSpec ranks by score, best first.
func DefaultSortSpec() SortSpec {
	return SortSpec{Key: SortByScore, Order: Descending}
}

// String returns "key order", e.g. "score desc".
func (s SortSpec) String() string {
	return s.Key.String() + " " + s.Order.String()
}
