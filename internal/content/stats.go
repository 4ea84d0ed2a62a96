package content

import (
	"math"

	"github.com/nao1215/brokerseo/internal/model"
)

// GenerateStats computes aggregate figures for list.
// Averages are rounded to one decimal place. An empty list returns the
// zero Stats value.
func GenerateStats(list []model.Broker) model.Stats {
	if len(list) == 0 {
		return model.Stats{}
	}

	var (
		regulated int
		spreadSum float64
		scoreSum  float64
		minDep    = math.Inf(1)
	)
	for i := range list {
		b := &list[i]
		if b.IsRegulated() {
			regulated++
		}
		spreadSum += b.TradingConditions.Spreads.EURUSD
		scoreSum += b.Score
		minDep = math.Min(minDep, b.Accessibility.MinDeposit)
	}

	n := float64(len(list))
	return model.Stats{
		TotalBrokers:   len(list),
		RegulatedCount: regulated,
		AvgSpread:      Round1(spreadSum / n),
		MinDeposit:     minDep,
		AvgScore:       Round1(scoreSum / n),
	}
}

// Round1 rounds v to one decimal place, halves away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// TopRegulators returns the first n distinct regulator codes in list order.
func TopRegulators(list []model.Broker, n int) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, n)
	for i := range list {
		for _, r := range list[i].Regulation.Regulators {
			if len(out) == n {
				return out
			}
			if _, ok := seen[r]; ok {
				continue
			}
			seen[r] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}
