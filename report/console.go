package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/rustyeddy/sizer/risk"
)

// RenderOrders writes the accepted orders as a rounded table for
// terminal review.
func RenderOrders(w io.Writer, orders []risk.SizedOrder) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("SIZED ORDERS")
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Symbol", "Dir", "Entry", "Stop", "Units", "Type", "Max Loss"})
	for _, o := range orders {
		t.AppendRow(table.Row{
			o.Symbol,
			o.Direction,
			fmt.Sprintf("%.4f", o.Entry),
			fmt.Sprintf("%.4f", o.Stop),
			o.UnitSize,
			o.UnitType,
			fmt.Sprintf("$%.2f", o.MaxLossIfStopped),
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})

	t.Render()
}

// RenderSkips writes the skipped plans as a rounded table, in the same
// order they appear on the checklist.
func RenderSkips(w io.Writer, skips []risk.Skip) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("SKIPPED")
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Symbol", "Reason"})
	for _, s := range skips {
		t.AppendRow(table.Row{s.Symbol, s.Reason})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 60},
	})

	t.Render()
}

// RenderSummary writes the run-level figures as a label/value table.
func RenderSummary(w io.Writer, equity float64, res risk.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("SIZING RUN")
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"Account equity", fmt.Sprintf("$%.2f", equity)},
		{"Risk per trade", fmt.Sprintf("$%.2f (%.2f%%)", res.RiskPerTradeUSD, res.RiskPerTradePct*100)},
		{"Total risk", fmt.Sprintf("$%.2f", res.TotalRiskUSD)},
		{"Aggregate cap", fmt.Sprintf("$%.2f", res.MaxTotalRiskUSD)},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Orders", len(res.Orders)},
		{"Skips", len(res.Skips)},
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 16, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight},
	})

	t.Render()
}
