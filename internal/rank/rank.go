// Package rank orders broker lists by a sort key.
//
// Sorting is always stable. Descending order inverts the comparator rather
// than reversing an ascending result, so brokers with equal keys keep their
// catalog order in both directions. Absent numeric values are zero in the
// data model and therefore rank as the smallest value.
package rank

import (
	"cmp"
	"slices"
	"strings"

	"github.com/nao1215/brokerseo/internal/model"
)

// Sort returns a copy of list ordered by key and order. list is not modified.
func Sort(list []model.Broker, key model.SortKey, order model.SortOrder) []model.Broker {
	out := slices.Clone(list)
	compare := Comparator(key)
	if order == model.Descending {
		asc := compare
		compare = func(a, b *model.Broker) int { return asc(b, a) }
	}
	slices.SortStableFunc(out, func(a, b model.Broker) int {
		return compare(&a, &b)
	})
	return out
}

// BySpec is Sort with a SortSpec.
func BySpec(list []model.Broker, spec model.SortSpec) []model.Broker {
	return Sort(list, spec.Key, spec.Order)
}

// Comparator returns the ascending comparator for key. Unknown keys fall
// back to score.
func Comparator(key model.SortKey) func(a, b *model.Broker) int {
	switch key {
	case model.SortByMinDeposit:
		return func(a, b *model.Broker) int {
			return cmp.Compare(a.Accessibility.MinDeposit, b.Accessibility.MinDeposit)
		}
	case model.SortBySpread:
		return func(a, b *model.Broker) int {
			return cmp.Compare(a.TradingConditions.Spreads.EURUSD, b.TradingConditions.Spreads.EURUSD)
		}
	case model.SortByName:
		return func(a, b *model.Broker) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	default:
		return func(a, b *model.Broker) int {
			return cmp.Compare(a.Score, b.Score)
		}
	}
}
