package filter

import (
	"strings"

	"github.com/nao1215/brokerseo/internal/model"
)

// ScalpingMaxSpread is the EUR/USD spread, in pips, below which a broker
// counts as scalping-friendly even without ECN execution.
const ScalpingMaxSpread = 1.0

// Predicate reports whether a broker has a property.
type Predicate func(b *model.Broker) bool

var featurePredicates = map[model.Feature]Predicate{
	model.FeatureCopyTrading: func(b *model.Broker) bool {
		return b.CopyTrading || b.PlatformFeatures.CopyTrading.Available
	},
	model.FeatureIslamic: func(b *model.Broker) bool {
		return b.IsIslamic || b.AccountManagement.IslamicAccount.Available
	},
	model.FeatureScalping: func(b *model.Broker) bool {
		return strings.Contains(b.Technology.ExecutionType, "ECN") ||
			b.TradingConditions.Spreads.EURUSD < ScalpingMaxSpread
	},
	model.FeatureSignals: func(b *model.Broker) bool {
		return b.ProvidesSignals
	},
}

var specialtyPredicates = map[model.Specialty]Predicate{
	model.SpecialtyCrypto: func(b *model.Broker) bool {
		return b.TradableInstruments.Cryptocurrencies.Total > 0
	},
	model.SpecialtyStocks: func(b *model.Broker) bool {
		return b.TradableInstruments.Stocks.Total > 0
	},
	model.SpecialtyIndices: func(b *model.Broker) bool {
		return b.TradableInstruments.Indices.Total > 0
	},
	model.SpecialtyCommodities: func(b *model.Broker) bool {
		return b.TradableInstruments.Commodities.Total > 0
	},
}

// regionRegulators lists the regulators that qualify a broker for a region.
var regionRegulators = map[model.Region][]string{
	model.RegionUSA:       {"NFA"},
	model.RegionUK:        {"FCA"},
	model.RegionEurope:    {"FCA", "CySEC", "BaFin", "FINMA"},
	model.RegionAustralia: {"ASIC"},
}

// FeaturePredicate returns the predicate for f.
// ok is false for a value outside model.AllFeatures.
func FeaturePredicate(f model.Feature) (p Predicate, ok bool) {
	p, ok = featurePredicates[f]
	return p, ok
}

// SpecialtyPredicate returns the predicate for s.
func SpecialtyPredicate(s model.Specialty) (p Predicate, ok bool) {
	p, ok = specialtyPredicates[s]
	return p, ok
}

// RegionRegulators returns the regulators accepted for r.
func RegionRegulators(r model.Region) ([]string, bool) {
	regs, ok := regionRegulators[r]
	return regs, ok
}

// InRegion reports whether b holds any regulator accepted for r.
func InRegion(b *model.Broker, r model.Region) bool {
	for _, code := range regionRegulators[r] {
		if b.HasRegulator(code) {
			return true
		}
	}
	return false
}
