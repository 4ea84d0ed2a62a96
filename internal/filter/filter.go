package filter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nao1215/brokerseo/internal/model"
)

// Policy decides how a broker with an unparseable value is treated.
type Policy int

const (
	// UnknownInclusive keeps brokers whose value is unknown.
	UnknownInclusive Policy = iota
	// UnknownExclusive drops brokers whose value is unknown.
	UnknownExclusive
)

// String returns "inclusive" or "exclusive".
func (p Policy) String() string {
	if p == UnknownExclusive {
		return "exclusive"
	}
	return "inclusive"
}

// ParsePolicy converts "inclusive" or "exclusive" (case-insensitive).
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inclusive", "":
		return UnknownInclusive, nil
	case "exclusive":
		return UnknownExclusive, nil
	default:
		return 0, fmt.Errorf("%w: policy %q", model.ErrUnknownValue, s)
	}
}

// Criteria is the filter specification applied to a catalog.
type Criteria struct {
	model.Filters

	// UnknownLeverage decides the fate of brokers whose maximum leverage
	// does not parse as "1:<N>" when a leverage filter is set.
	UnknownLeverage Policy
}

// FromFilters builds criteria from page filters with the default policy.
func FromFilters(f model.Filters) Criteria {
	return Criteria{Filters: f}
}

// Dimension names one filter dimension.
type Dimension int

const (
	// DimensionNone means no dimension rejected the broker.
	DimensionNone Dimension = iota
	DimensionRegulators
	DimensionPlatforms
	DimensionAccountTypes
	DimensionMinDeposit
	DimensionMaxDeposit
	DimensionLeverage
	DimensionFeatures
	DimensionSpecialties
	DimensionRegions
)

// String returns the configuration name of the dimension.
func (d Dimension) String() string {
	switch d {
	case DimensionNone:
		return "none"
	case DimensionRegulators:
		return "regulators"
	case DimensionPlatforms:
		return "platforms"
	case DimensionAccountTypes:
		return "accountTypes"
	case DimensionMinDeposit:
		return "minDeposit"
	case DimensionMaxDeposit:
		return "maxDeposit"
	case DimensionLeverage:
		return "leverage"
	case DimensionFeatures:
		return "features"
	case DimensionSpecialties:
		return "specialties"
	case DimensionRegions:
		return "regions"
	default:
		return "unknown"
	}
}

// Brokers returns the brokers of catalog that satisfy c, in catalog order.
// The result is a new slice; catalog is not modified. An empty criteria
// value returns a copy of the whole catalog.
func Brokers(catalog []model.Broker, c Criteria) []model.Broker {
	out := make([]model.Broker, 0, len(catalog))
	for i := range catalog {
		if Match(&catalog[i], c) {
			out = append(out, catalog[i])
		}
	}
	return out
}

// Match reports whether b satisfies every set dimension of c.
func Match(b *model.Broker, c Criteria) bool {
	ok, _ := Evaluate(b, c)
	return ok
}

// Evaluate is Match that also returns the first dimension that rejected b.
// Dimensions are checked in declaration order.
func Evaluate(b *model.Broker, c Criteria) (bool, Dimension) {
	f := &c.Filters

	if len(f.Regulators) > 0 && !slices.ContainsFunc(f.Regulators, b.HasRegulator) {
		return false, DimensionRegulators
	}
	if len(f.Platforms) > 0 && !slices.ContainsFunc(f.Platforms, b.HasPlatform) {
		return false, DimensionPlatforms
	}
	if len(f.AccountTypes) > 0 && !matchAccountTypes(b, f.AccountTypes) {
		return false, DimensionAccountTypes
	}
	if f.MinDeposit != nil && b.Accessibility.MinDeposit < *f.MinDeposit {
		return false, DimensionMinDeposit
	}
	if f.MaxDeposit != nil && b.Accessibility.MinDeposit > *f.MaxDeposit {
		return false, DimensionMaxDeposit
	}
	if f.Leverage != nil && !matchLeverage(b, *f.Leverage, c.UnknownLeverage) {
		return false, DimensionLeverage
	}
	for _, feat := range f.Features {
		p, ok := featurePredicates[feat]
		if !ok || !p(b) {
			return false, DimensionFeatures
		}
	}
	if len(f.Specialties) > 0 && !slices.ContainsFunc(f.Specialties, func(s model.Specialty) bool {
		p, ok := specialtyPredicates[s]
		return ok && p(b)
	}) {
		return false, DimensionSpecialties
	}
	if len(f.Regions) > 0 && !slices.ContainsFunc(f.Regions, func(r model.Region) bool {
		return InRegion(b, r)
	}) {
		return false, DimensionRegions
	}
	return true, DimensionNone
}

// matchAccountTypes reports whether any account type of b contains any of
// wanted, ignoring case.
func matchAccountTypes(b *model.Broker, wanted []string) bool {
	for _, w := range wanted {
		w = strings.ToLower(w)
		for _, a := range b.AccountTypes {
			if strings.Contains(strings.ToLower(a.Type), w) {
				return true
			}
		}
	}
	return false
}

func matchLeverage(b *model.Broker, threshold int, policy Policy) bool {
	n, ok := b.Leverage()
	if !ok {
		return policy == UnknownInclusive
	}
	return n >= threshold
}
