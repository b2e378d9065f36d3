package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/sizer/risk"
)

func TestRenderOrders(t *testing.T) {
	t.Parallel()

	orders := []risk.SizedOrder{
		{Symbol: "AAPL", Direction: "long", Entry: 182.5, Stop: 178.0, UnitSize: 222, UnitType: "shares", MaxLossIfStopped: 999.0},
		{Symbol: "TSLA", Direction: "short", Entry: 200.0, Stop: 204.0, UnitSize: 250, UnitType: "shares", MaxLossIfStopped: 1000.0},
	}

	var buf bytes.Buffer
	RenderOrders(&buf, orders)

	out := buf.String()
	assert.Contains(t, out, "SIZED ORDERS")
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "182.5000")
	assert.Contains(t, out, "TSLA")
	assert.Contains(t, out, "$1000.00")
}

func TestRenderSkips(t *testing.T) {
	t.Parallel()

	skips := []risk.Skip{
		{Symbol: "AAA", Reason: "missing entry or stop"},
		{Symbol: "<aggregate>", Reason: "total risk 0.00 exceeds limit -1000.00"},
	}

	var buf bytes.Buffer
	RenderSkips(&buf, skips)

	out := buf.String()
	assert.Contains(t, out, "SKIPPED")
	assert.Contains(t, out, "missing entry or stop")
	assert.Contains(t, out, "<aggregate>")
}

func TestRenderSummary(t *testing.T) {
	t.Parallel()

	res := risk.Result{
		Orders:          []risk.SizedOrder{{Symbol: "AAA"}},
		Skips:           []risk.Skip{{Symbol: "BBB", Reason: "exceeds max_positions"}},
		RiskPerTradePct: 0.01,
		RiskPerTradeUSD: 1000,
		MaxTotalRiskUSD: 5000,
		TotalRiskUSD:    1000,
	}

	var buf bytes.Buffer
	RenderSummary(&buf, 100000, res)

	out := buf.String()
	assert.Contains(t, out, "SIZING RUN")
	assert.Contains(t, out, "$100000.00")
	assert.Contains(t, out, "$1000.00 (1.00%)")
}
