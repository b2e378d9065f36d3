package risk

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/sizer/plan"
)

func testLimits() Limits {
	return Limits{
		MaxRiskPerTradePct:        0.01,
		MaxDailyLossPct:           0.03,
		MaxPositions:              10,
		MaxTotalConcurrentRiskPct: 0.05,
	}
}

func longPlan(symbol string, entry, stop float64) plan.TradePlan {
	return plan.TradePlan{
		Symbol:     symbol,
		Direction:  "long",
		EntryPrice: ptr(entry),
		StopPrice:  ptr(stop),
		LotSize:    1,
	}
}

func TestSizeAll_SinglePlan(t *testing.T) {
	t.Parallel()

	res := SizeAll(100000, testLimits(), []plan.TradePlan{longPlan("AAA", 100, 98)})

	assert.InDelta(t, 0.01, res.RiskPerTradePct, 1e-12)
	assert.InDelta(t, 1000.0, res.RiskPerTradeUSD, 1e-9)
	assert.InDelta(t, 5000.0, res.MaxTotalRiskUSD, 1e-9)

	require.Len(t, res.Orders, 1)
	require.Empty(t, res.Skips)

	order := res.Orders[0]
	assert.Equal(t, "AAA", order.Symbol)
	assert.Equal(t, 500, order.UnitSize)
	assert.InDelta(t, 1000.0, order.MaxLossIfStopped, 1e-9)
	assert.InDelta(t, 1000.0, res.TotalRiskUSD, 1e-9)
}

func TestSizeAll_TwoPlansKeepFullBudget(t *testing.T) {
	t.Parallel()

	// With two plans the even split of the 5% aggregate cap (2.5% each)
	// still exceeds the 1% per-trade cap, so each trade keeps 1%.
	plans := []plan.TradePlan{
		longPlan("AAA", 100, 98),
		longPlan("BBB", 100, 98),
	}
	res := SizeAll(100000, testLimits(), plans)

	assert.InDelta(t, 0.01, res.RiskPerTradePct, 1e-12)
	require.Len(t, res.Orders, 2)
	assert.Equal(t, 500, res.Orders[0].UnitSize)
	assert.Equal(t, 500, res.Orders[1].UnitSize)

	// 2000 total risk under the 5000 cap: no aggregate advisory.
	assert.InDelta(t, 2000.0, res.TotalRiskUSD, 1e-9)
	assert.Empty(t, res.Skips)
}

func TestSizeAll_ManyPlansSplitBudget(t *testing.T) {
	t.Parallel()

	// Ten planned positions split the 5% aggregate cap down to 0.5% per
	// trade, undercutting the 1% per-trade limit.
	var plans []plan.TradePlan
	for i := 0; i < 10; i++ {
		plans = append(plans, longPlan(fmt.Sprintf("P%02d", i), 100, 98))
	}

	res := SizeAll(100000, testLimits(), plans)

	assert.InDelta(t, 0.005, res.RiskPerTradePct, 1e-12)
	assert.InDelta(t, 500.0, res.RiskPerTradeUSD, 1e-9)
	require.Len(t, res.Orders, 10)
	assert.Equal(t, 250, res.Orders[0].UnitSize)
}

func TestSizeAll_SplitCountsSkippedPlans(t *testing.T) {
	t.Parallel()

	// The budget split counts every submitted plan, including ones that
	// later fail validation. Five unpriced plans halve the budget of the
	// five good ones just by being submitted.
	var plans []plan.TradePlan
	for i := 0; i < 5; i++ {
		plans = append(plans, longPlan(fmt.Sprintf("G%d", i), 100, 98))
	}
	for i := 0; i < 5; i++ {
		plans = append(plans, plan.TradePlan{Symbol: fmt.Sprintf("B%d", i), Direction: "long"})
	}

	res := SizeAll(100000, testLimits(), plans)

	assert.InDelta(t, 0.005, res.RiskPerTradePct, 1e-12)
	require.Len(t, res.Orders, 5)
	assert.Equal(t, 250, res.Orders[0].UnitSize)
	require.Len(t, res.Skips, 5)
	for _, s := range res.Skips {
		assert.Equal(t, "missing entry or stop", s.Reason)
	}
}

func TestSizeAll_NoShortSkip(t *testing.T) {
	t.Parallel()

	plans := []plan.TradePlan{{
		Symbol:     "SYM",
		Direction:  "short",
		NoShort:    true,
		EntryPrice: ptr(50.0),
		StopPrice:  ptr(52.0),
	}}

	res := SizeAll(100000, testLimits(), plans)

	assert.Empty(t, res.Orders)
	require.Len(t, res.Skips, 1)
	assert.Equal(t, Skip{Symbol: "SYM", Reason: "shorting disabled for instrument"}, res.Skips[0])
}

func TestSizeAll_ZeroStopDistance(t *testing.T) {
	t.Parallel()

	res := SizeAll(100000, testLimits(), []plan.TradePlan{longPlan("AAA", 100, 100)})

	assert.Empty(t, res.Orders)
	require.Len(t, res.Skips, 1)
	assert.Equal(t, "stop distance <= 0", res.Skips[0].Reason)
}

func TestSizeAll_MaxPositionsTruncation(t *testing.T) {
	t.Parallel()

	// Fifteen valid plans against a ten-position cap: the first ten by
	// input order survive, the last five become skips.
	var plans []plan.TradePlan
	for i := 0; i < 15; i++ {
		plans = append(plans, longPlan(fmt.Sprintf("P%02d", i), 100, 98))
	}

	res := SizeAll(100000, testLimits(), plans)

	require.Len(t, res.Orders, 10)
	for i, o := range res.Orders {
		assert.Equal(t, fmt.Sprintf("P%02d", i), o.Symbol)
	}

	require.Len(t, res.Skips, 5)
	for i, s := range res.Skips {
		assert.Equal(t, fmt.Sprintf("P%02d", i+10), s.Symbol)
		assert.Equal(t, "exceeds max_positions", s.Reason)
	}
}

func TestSizeAll_TruncatedOrdersStillCountTowardTotal(t *testing.T) {
	t.Parallel()

	// Risk from orders cut by max_positions stays in TotalRiskUSD: the
	// aggregate figure reflects everything that was sized this run, not
	// just what survived the cap.
	lim := Limits{
		MaxRiskPerTradePct:        0.01,
		MaxDailyLossPct:           0.03,
		MaxPositions:              2,
		MaxTotalConcurrentRiskPct: 0.03,
	}

	var plans []plan.TradePlan
	for i := 0; i < 3; i++ {
		plans = append(plans, longPlan(fmt.Sprintf("P%d", i), 100, 98))
	}

	res := SizeAll(100000, lim, plans)

	require.Len(t, res.Orders, 2)
	require.Len(t, res.Skips, 1)
	assert.Equal(t, "exceeds max_positions", res.Skips[0].Reason)
	assert.InDelta(t, 3000.0, res.TotalRiskUSD, 1e-9)
	// Exactly at the cap is not a breach, so no aggregate advisory.
	assert.Len(t, res.Skips, 1)
}

func TestSizeAll_AggregateAtCapNoAdvisory(t *testing.T) {
	t.Parallel()

	// Flooring guarantees per-order risk never exceeds its budget, so a
	// run at exactly the aggregate cap stays advisory-free.
	lim := testLimits()
	lim.MaxTotalConcurrentRiskPct = 0.001 // 100 USD on 100k equity

	res := SizeAll(100000, lim, []plan.TradePlan{longPlan("AAA", 100, 99)})

	require.Len(t, res.Orders, 1)
	assert.Equal(t, 100, res.Orders[0].UnitSize)
	assert.InDelta(t, 100.0, res.TotalRiskUSD, 1e-9)
	assert.Empty(t, res.Skips)
}

func TestSizeAll_AggregateAdvisoryFormat(t *testing.T) {
	t.Parallel()

	// A negative aggregate cap turns every plan away (negative budget)
	// and leaves total risk 0 strictly above the cap, which is the one
	// configuration that reaches the advisory. It reports and nothing
	// more: no resizing, no abort.
	lim := Limits{
		MaxRiskPerTradePct:        0.01,
		MaxDailyLossPct:           0.03,
		MaxPositions:              10,
		MaxTotalConcurrentRiskPct: -0.01,
	}

	res := SizeAll(100000, lim, []plan.TradePlan{longPlan("AAA", 100, 98)})

	assert.Empty(t, res.Orders)
	require.Len(t, res.Skips, 2)
	assert.Equal(t, Skip{Symbol: "AAA", Reason: "size < 1 unit; stop too tight"}, res.Skips[0])
	assert.Equal(t, Skip{Symbol: "<aggregate>", Reason: "total risk 0.00 exceeds limit -1000.00"}, res.Skips[1])
}

func TestSizeAll_EmptyPlans(t *testing.T) {
	t.Parallel()

	res := SizeAll(100000, testLimits(), nil)

	assert.Empty(t, res.Orders)
	assert.Empty(t, res.Skips)
	// An empty list still resolves a budget (planned positions floor at 1).
	assert.InDelta(t, 0.01, res.RiskPerTradePct, 1e-12)
}

func TestSizeAll_ZeroMaxPositions(t *testing.T) {
	t.Parallel()

	lim := testLimits()
	lim.MaxPositions = 0

	res := SizeAll(100000, lim, []plan.TradePlan{longPlan("AAA", 100, 98)})

	assert.Empty(t, res.Orders)
	require.Len(t, res.Skips, 1)
	assert.Equal(t, Skip{Symbol: "AAA", Reason: "exceeds max_positions"}, res.Skips[0])
}

func TestSizeAll_Deterministic(t *testing.T) {
	t.Parallel()

	plans := []plan.TradePlan{
		longPlan("AAA", 100, 98),
		{Symbol: "BAD", Direction: "long"},
		longPlan("CCC", 55.5, 54.25),
	}

	first := SizeAll(100000, testLimits(), plans)
	second := SizeAll(100000, testLimits(), plans)

	assert.Equal(t, first, second)
}

func TestSizeAll_OrderPreserved(t *testing.T) {
	t.Parallel()

	plans := []plan.TradePlan{
		longPlan("ZZZ", 100, 98),
		longPlan("AAA", 100, 98),
		longPlan("MMM", 100, 98),
	}

	res := SizeAll(100000, testLimits(), plans)

	require.Len(t, res.Orders, 3)
	assert.Equal(t, "ZZZ", res.Orders[0].Symbol)
	assert.Equal(t, "AAA", res.Orders[1].Symbol)
	assert.Equal(t, "MMM", res.Orders[2].Symbol)
}

func TestSizeAll_MaxLossMatchesUnits(t *testing.T) {
	t.Parallel()

	plans := []plan.TradePlan{
		longPlan("AAA", 100, 97.5),
		longPlan("BBB", 42.42, 41.0),
		{Symbol: "CCC", Direction: "short", EntryPrice: ptr(10.0), StopPrice: ptr(10.4), LotSize: 100},
	}

	res := SizeAll(250000, testLimits(), plans)

	require.NotEmpty(t, res.Orders)
	for _, o := range res.Orders {
		dist := o.Entry - o.Stop
		if dist < 0 {
			dist = -dist
		}
		assert.InDelta(t, float64(o.UnitSize)*dist, o.MaxLossIfStopped, 1e-9, o.Symbol)
		assert.GreaterOrEqual(t, o.UnitSize, 1)
	}
}
