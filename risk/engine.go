package risk

import (
	"fmt"
	"math"

	"github.com/rustyeddy/sizer/plan"
)

// Result is everything one sizing run produces. Orders and Skips keep
// insertion order; the remaining fields are the run-level figures the
// checklist and journal report.
type Result struct {
	Orders []SizedOrder
	Skips  []Skip

	RiskPerTradePct float64 // resolved per-trade fraction after splitting
	RiskPerTradeUSD float64
	MaxTotalRiskUSD float64

	// TotalRiskUSD sums MaxLossIfStopped over every order that passed
	// per-plan validation, including orders later cut by max_positions.
	TotalRiskUSD float64
}

// SizeAll converts trade plans into risk-bounded orders. It is a pure
// function of its arguments: no I/O, no clock, no randomness, and
// identical inputs always produce the identical Result.
//
// The per-trade budget is the smaller of max_risk_per_trade_pct and an
// even split of max_total_concurrent_risk_pct across every submitted
// plan. The split counts all plans, not just the ones that survive
// validation; budget freed by skipped plans is not redistributed within
// a run.
func SizeAll(equity float64, lim Limits, plans []plan.TradePlan) Result {
	plannedPositions := len(plans)
	if plannedPositions < 1 {
		plannedPositions = 1
	}
	riskPct := math.Min(lim.MaxRiskPerTradePct, lim.MaxTotalConcurrentRiskPct/float64(plannedPositions))

	res := Result{
		RiskPerTradePct: riskPct,
		RiskPerTradeUSD: equity * riskPct,
		MaxTotalRiskUSD: equity * lim.MaxTotalConcurrentRiskPct,
	}

	for _, p := range plans {
		order, reason := sizePlan(p, res.RiskPerTradeUSD)
		if reason != "" {
			res.Skips = append(res.Skips, Skip{Symbol: p.Symbol, Reason: reason})
			continue
		}
		res.TotalRiskUSD += order.MaxLossIfStopped
		res.Orders = append(res.Orders, order)
	}

	// Keep the first max_positions orders and turn the rest into skips,
	// preserving submission order. The overflow orders' risk stays in
	// TotalRiskUSD so the aggregate advisory reflects everything sized.
	maxPositions := lim.MaxPositions
	if maxPositions < 0 {
		maxPositions = 0
	}
	if len(res.Orders) > maxPositions {
		extra := res.Orders[maxPositions:]
		res.Orders = res.Orders[:maxPositions]
		for _, o := range extra {
			res.Skips = append(res.Skips, Skip{Symbol: o.Symbol, Reason: ReasonMaxPositions})
		}
	}

	// Advisory only: the aggregate breach is reported, never resized.
	if res.TotalRiskUSD > res.MaxTotalRiskUSD {
		res.Skips = append(res.Skips, Skip{
			Symbol: AggregateMarker,
			Reason: fmt.Sprintf("total risk %.2f exceeds limit %.2f", res.TotalRiskUSD, res.MaxTotalRiskUSD),
		})
	}

	return res
}
