package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/sizer/risk"
)

func TestOrderSheetJSON(t *testing.T) {
	t.Parallel()

	orders := []risk.SizedOrder{{
		Symbol:           "AAA",
		Direction:        "long",
		Entry:            100.0,
		Stop:             98.0,
		RiskPerTradeUSD:  1000.0 / 3.0, // 333.333... rounds to 333.33
		UnitSize:         166,
		UnitType:         "shares",
		MaxLossIfStopped: 332.0,
		Notes:            "entry/stop filled from stooq last 99.8000",
	}}

	data, err := OrderSheetJSON(orders)
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "AAA", row["symbol"])
	assert.Equal(t, "long", row["direction"])
	assert.Equal(t, 100.0, row["entry"])
	assert.Equal(t, 98.0, row["stop"])
	assert.Equal(t, 333.33, row["risk_per_trade_usd"], "rounded to cents")
	assert.Equal(t, 166.0, row["unit_size"])
	assert.Equal(t, "shares", row["unit_type"])
	assert.Equal(t, 332.0, row["max_loss_if_stopped"])
	assert.Equal(t, "entry/stop filled from stooq last 99.8000", row["notes"])
}

func TestOrderSheetJSON_EmptyList(t *testing.T) {
	t.Parallel()

	data, err := OrderSheetJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestOrderSheetJSON_FieldOrder(t *testing.T) {
	t.Parallel()

	// Field order is part of the artifact's reviewable surface: symbol
	// leads, notes trail.
	data, err := OrderSheetJSON([]risk.SizedOrder{{Symbol: "AAA"}})
	require.NoError(t, err)

	s := string(data)
	last := -1
	for _, key := range []string{`"symbol"`, `"direction"`, `"entry"`, `"stop"`, `"risk_per_trade_usd"`, `"unit_size"`, `"unit_type"`, `"max_loss_if_stopped"`, `"notes"`} {
		idx := strings.Index(s, key)
		require.GreaterOrEqual(t, idx, 0, key)
		assert.Greater(t, idx, last, "%s out of order", key)
		last = idx
	}
}

func TestWriteOrderSheet(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sizing", "order_sheet.json")
	orders := []risk.SizedOrder{{Symbol: "AAA", Direction: "long", Entry: 100, Stop: 98, UnitSize: 500, UnitType: "shares", RiskPerTradeUSD: 1000, MaxLossIfStopped: 1000}}

	require.NoError(t, WriteOrderSheet(path, orders))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "AAA", rows[0]["symbol"])
}
