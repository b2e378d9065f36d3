package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rustyeddy/sizer/risk"
)

func TestWriteWorkbook(t *testing.T) {
	t.Parallel()

	res := risk.Result{
		Orders: []risk.SizedOrder{
			{Symbol: "AAPL", Direction: "long", Entry: 182.5, Stop: 178.0, RiskPerTradeUSD: 1000, UnitSize: 222, UnitType: "shares", MaxLossIfStopped: 999, Notes: "breakout"},
		},
		Skips: []risk.Skip{
			{Symbol: "TSLA", Reason: "exceeds max_positions"},
		},
	}

	path := filepath.Join(t.TempDir(), "sizing", "order_sheet.xlsx")
	require.NoError(t, WriteWorkbook(path, res))

	fx, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer fx.Close()

	assert.ElementsMatch(t, []string{"Orders", "Skipped"}, fx.GetSheetList())

	symbol, err := fx.GetCellValue("Orders", "A2")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", symbol)

	units, err := fx.GetCellValue("Orders", "F2")
	require.NoError(t, err)
	assert.Equal(t, "222", units)

	reason, err := fx.GetCellValue("Skipped", "B2")
	require.NoError(t, err)
	assert.Equal(t, "exceeds max_positions", reason)
}

func TestWriteWorkbook_EmptyRun(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "order_sheet.xlsx")
	require.NoError(t, WriteWorkbook(path, risk.Result{}))

	fx, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer fx.Close()

	// Header rows are always present even with nothing to report.
	head, err := fx.GetCellValue("Orders", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Symbol", head)
}
