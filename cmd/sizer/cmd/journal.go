package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/sizer/journal"
	"github.com/rustyeddy/sizer/report"
	"github.com/rustyeddy/sizer/risk"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query past sizing runs",
	Long: `Query and display sizing runs from the SQLite journal.

Subcommands:
  runs - List recent sizing runs
  run  - Show one run with its orders and skips

Examples:
  sizer journal runs
  sizer journal runs --limit 5
  sizer journal run 01K3P2M9V6X0YB4QDGH8JRWZSN`,
}

var journalRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent sizing runs",
	Args:  cobra.NoArgs,
	RunE:  runJournalRuns,
}

var journalShowCmd = &cobra.Command{
	Use:   "run <run-id>",
	Short: "Show one sizing run",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var journalLimit int

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalRunsCmd)
	journalCmd.AddCommand(journalShowCmd)

	journalRunsCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "number of runs to list")
}

func openQueryJournal() (*journal.SQLite, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.Journal.Type != "sqlite" {
		return nil, fmt.Errorf("journal queries need journal.type 'sqlite' (have %q)", cfg.Journal.Type)
	}
	return journal.NewSQLite(cfg.Journal.DBPath)
}

func runJournalRuns(cmd *cobra.Command, args []string) error {
	j, err := openQueryJournal()
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	runs, err := j.ListRuns(journalLimit)
	if err != nil {
		return fmt.Errorf("query runs: %w", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("SIZING RUNS")
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Run ID", "Created", "Equity", "Risk/Trade", "Total Risk", "Orders", "Skips"})
	for _, r := range runs {
		t.AppendRow(table.Row{
			r.RunID,
			r.CreatedAt.UTC().Format("2006-01-02 15:04"),
			fmt.Sprintf("$%.2f", r.Equity),
			fmt.Sprintf("$%.2f", r.RiskPerTradeUSD),
			fmt.Sprintf("$%.2f", r.TotalRiskUSD),
			r.OrderCount,
			r.SkipCount,
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})

	t.Render()
	return nil
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	j, err := openQueryJournal()
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	rec, err := j.GetRun(args[0])
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}

	fmt.Printf("Run %s (%s)\n", rec.RunID, rec.CreatedAt.UTC().Format(time.RFC3339))
	fmt.Printf("  Equity: $%.2f\n", rec.Equity)
	fmt.Printf("  Risk per trade: $%.2f (%.2f%%)\n", rec.RiskPerTradeUSD, rec.RiskPerTradePct*100)
	fmt.Printf("  Total risk: $%.2f of $%.2f cap\n\n", rec.TotalRiskUSD, rec.MaxTotalRiskUSD)

	orders := make([]risk.SizedOrder, 0, len(rec.Orders))
	for _, o := range rec.Orders {
		orders = append(orders, risk.SizedOrder{
			Symbol:           o.Symbol,
			Direction:        o.Direction,
			Entry:            o.Entry,
			Stop:             o.Stop,
			RiskPerTradeUSD:  o.RiskPerTradeUSD,
			UnitSize:         o.UnitSize,
			UnitType:         o.UnitType,
			MaxLossIfStopped: o.MaxLossIfStopped,
			Notes:            o.Notes,
		})
	}
	report.RenderOrders(os.Stdout, orders)

	if len(rec.Skips) > 0 {
		skips := make([]risk.Skip, 0, len(rec.Skips))
		for _, s := range rec.Skips {
			skips = append(skips, risk.Skip{Symbol: s.Symbol, Reason: s.Reason})
		}
		report.RenderSkips(os.Stdout, skips)
	}
	return nil
}
