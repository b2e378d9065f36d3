package risk

import (
	"math"
	"strings"

	"github.com/rustyeddy/sizer/plan"
)

// sizePlan turns one trade plan into an order, or returns the reason it
// must be skipped. Validation runs in a fixed order and the first failure
// wins, so a plan missing prices reports that and nothing else.
func sizePlan(p plan.TradePlan, riskPerTradeUSD float64) (SizedOrder, string) {
	if p.EntryPrice == nil || p.StopPrice == nil {
		return SizedOrder{}, ReasonMissingPrices
	}
	entry, stop := *p.EntryPrice, *p.StopPrice

	stopDist := math.Abs(entry - stop)
	if stopDist <= 0 {
		return SizedOrder{}, ReasonBadStopDistance
	}

	direction := strings.ToLower(p.Direction)
	if direction != "long" && direction != "short" {
		return SizedOrder{}, ReasonBadDirection
	}
	if direction == "short" && p.NoShort {
		return SizedOrder{}, ReasonShortDisabled
	}

	lotSize := p.LotSize
	if lotSize <= 0 {
		lotSize = 1
	}

	// Units are floored to whole lots first, then clamped by the optional
	// per-plan caps. Clamps only ever shrink the size.
	rawUnits := riskPerTradeUSD / stopDist
	units := math.Floor(rawUnits/lotSize) * lotSize
	if p.MaxShares != nil {
		units = math.Min(units, math.Trunc(*p.MaxShares))
	}
	if p.MaxNotional != nil {
		units = clampToNotional(units, entry, *p.MaxNotional)
	}

	if units < 1 {
		return SizedOrder{}, ReasonTooSmall
	}

	unitType := p.UnitType
	if unitType == "" {
		unitType = "shares"
	}

	return SizedOrder{
		Symbol:           p.Symbol,
		Direction:        direction,
		Entry:            entry,
		Stop:             stop,
		RiskPerTradeUSD:  riskPerTradeUSD,
		UnitSize:         int(units),
		UnitType:         unitType,
		MaxLossIfStopped: units * stopDist,
		Notes:            p.Notes,
	}, ""
}

// clampToNotional caps units so entry*units stays within maxNotional.
// A non-positive maxNotional means "no cap" and passes units through.
func clampToNotional(units, entry, maxNotional float64) float64 {
	if maxNotional <= 0 {
		return units
	}
	maxUnits := math.Floor(maxNotional / entry)
	return math.Max(0, math.Min(units, maxUnits))
}
