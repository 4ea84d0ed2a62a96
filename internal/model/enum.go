package model

import (
	"fmt"
	"strings"
)

// Feature is a boolean broker capability that a page can require.
// Features are combined with AND semantics by the filter engine.
type Feature int

const (
	// FeatureCopyTrading requires copy trading support.
	FeatureCopyTrading Feature = iota

	// FeatureIslamic requires a swap-free (Islamic) account.
	FeatureIslamic

	// FeatureScalping requires scalping-friendly conditions
	// (ECN execution or a sub-pip EUR/USD spread).
	FeatureScalping

	// FeatureSignals requires the broker to provide trading signals.
	FeatureSignals
)

// AllFeatures returns every defined Feature in declaration order.
func AllFeatures() []Feature {
	return []Feature{FeatureCopyTrading, FeatureIslamic, FeatureScalping, FeatureSignals}
}

// String returns the configuration spelling of the feature.
func (f Feature) String() string {
	switch f {
	case FeatureCopyTrading:
		return "copyTrading"
	case FeatureIslamic:
		return "islamic"
	case FeatureScalping:
		return "scalping"
	case FeatureSignals:
		return "signals"
	default:
		return "unknown"
	}
}

// ParseFeature converts a case-insensitive name into a Feature.
func ParseFeature(s string) (Feature, error) {
	for _, f := range AllFeatures() {
		if strings.EqualFold(s, f.String()) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: feature %q", ErrUnknownValue, s)
}

// MarshalText implements encoding.TextMarshaler.
func (f Feature) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Feature) UnmarshalText(text []byte) error {
	v, err := ParseFeature(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Specialty is an asset class a broker can specialise in.
// Specialties are combined with OR semantics by the filter engine.
type Specialty int

const (
	// SpecialtyCrypto matches brokers offering cryptocurrencies.
	SpecialtyCrypto Specialty = iota
	// SpecialtyStocks matches brokers offering stocks.
	SpecialtyStocks
	// SpecialtyIndices matches brokers offering indices.
	SpecialtyIndices
	// SpecialtyCommodities matches brokers offering commodities.
	SpecialtyCommodities
)

// AllSpecialties returns every defined Specialty in declaration order.
func AllSpecialties() []Specialty {
	return []Specialty{SpecialtyCrypto, SpecialtyStocks, SpecialtyIndices, SpecialtyCommodities}
}

// String returns the configuration spelling of the specialty.
func (s Specialty) String() string {
	switch s {
	case SpecialtyCrypto:
		return "crypto"
	case SpecialtyStocks:
		return "stocks"
	case SpecialtyIndices:
		return "indices"
	case SpecialtyCommodities:
		return "commodities"
	default:
		return "unknown"
	}
}

// ParseSpecialty converts a case-insensitive name into a Specialty.
func ParseSpecialty(s string) (Specialty, error) {
	for _, v := range AllSpecialties() {
		if strings.EqualFold(s, v.String()) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: specialty %q", ErrUnknownValue, s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Specialty) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Specialty) UnmarshalText(text []byte) error {
	v, err := ParseSpecialty(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Region is a market a broker can serve, expressed as a regulator rule.
// Regions are combined with OR semantics by the filter engine.
type Region int

const (
	// RegionUSA requires NFA membership.
	RegionUSA Region = iota
	// RegionUK requires FCA membership.
	RegionUK
	// RegionEurope requires membership of FCA, CySEC, BaFin or FINMA.
	RegionEurope
	// RegionAustralia requires ASIC membership.
	RegionAustralia
)

// AllRegions returns every defined Region in declaration order.
func AllRegions() []Region {
	return []Region{RegionUSA, RegionUK, RegionEurope, RegionAustralia}
}

// String returns the configuration spelling of the region.
func (r Region) String() string {
	switch r {
	case RegionUSA:
		return "usa"
	case RegionUK:
		return "uk"
	case RegionEurope:
		return "europe"
	case RegionAustralia:
		return "australia"
	default:
		return "unknown"
	}
}

// ParseRegion converts a case-insensitive name into a Region.
func ParseRegion(s string) (Region, error) {
	for _, v := range AllRegions() {
		if strings.EqualFold(s, v.String()) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: region %q", ErrUnknownValue, s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Region) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Region) UnmarshalText(text []byte) error {
	v, err := ParseRegion(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
