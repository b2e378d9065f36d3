package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/sizer/config"
	"github.com/rustyeddy/sizer/journal"
	"github.com/rustyeddy/sizer/pkg/id"
	"github.com/rustyeddy/sizer/plan"
	"github.com/rustyeddy/sizer/report"
	"github.com/rustyeddy/sizer/research"
	"github.com/rustyeddy/sizer/risk"
)

var sizingCmd = &cobra.Command{
	Use:   "sizing",
	Short: "Compute position sizes from trade plans",
	Long: `Size every trade plan against the configured risk limits and write
the order sheet and risk checklist artifacts.

The per-trade risk budget is the smaller of max_risk_per_trade_pct and
max_total_concurrent_risk_pct split across the planned positions. Plans
that fail a guardrail are skipped with a reason, never silently dropped.

Examples:
  sizer sizing --equity 100000
  sizer sizing --equity 100000 --xlsx --quiet`,
	RunE: runSizing,
}

var (
	sizingEquity    float64
	sizingXLSX      bool
	sizingNoJournal bool
	sizingQuiet     bool
)

func init() {
	rootCmd.AddCommand(sizingCmd)

	sizingCmd.Flags().Float64VarP(&sizingEquity, "equity", "e", 0, "account equity in USD")
	sizingCmd.Flags().BoolVar(&sizingXLSX, "xlsx", false, "also write an Excel order sheet")
	sizingCmd.Flags().BoolVar(&sizingNoJournal, "no-journal", false, "skip journaling this run")
	sizingCmd.Flags().BoolVar(&sizingQuiet, "quiet", false, "suppress console tables")
}

func runSizing(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if missing := research.MissingOrEmpty(cfg.TradePlansPath()); len(missing) > 0 {
		return fmt.Errorf("trade plans missing or empty: %s", missing[0])
	}

	equity, err := resolveEquity(cmd)
	if err != nil {
		return err
	}

	lim, err := loadLimits(cfg.PreferencesPath())
	if err != nil {
		return err
	}

	plans, err := plan.Load(cfg.TradePlansPath())
	if err != nil {
		return err
	}

	res := risk.SizeAll(equity, lim, plans)

	if err := report.WriteOrderSheet(cfg.OrderSheetPath(), res.Orders); err != nil {
		return fmt.Errorf("write order sheet: %w", err)
	}
	fmt.Printf("Wrote %s\n", cfg.OrderSheetPath())

	if err := report.WriteChecklist(cfg.ChecklistPath(), equity, lim, res.Skips); err != nil {
		return fmt.Errorf("write checklist: %w", err)
	}
	fmt.Printf("Wrote %s\n", cfg.ChecklistPath())

	if sizingXLSX {
		if err := report.WriteWorkbook(cfg.WorkbookPath(), res); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
		fmt.Printf("Wrote %s\n", cfg.WorkbookPath())
	}

	if !sizingQuiet {
		report.RenderOrders(os.Stdout, res.Orders)
		if len(res.Skips) > 0 {
			report.RenderSkips(os.Stdout, res.Skips)
		}
		report.RenderSummary(os.Stdout, equity, res)
	}

	if !sizingNoJournal {
		journalRun(cfg, equity, res)
	}

	return nil
}

// resolveEquity takes the --equity flag when passed, otherwise the
// SIZER_EQUITY environment variable. Equity is never guessed.
func resolveEquity(cmd *cobra.Command) (float64, error) {
	if cmd.Flags().Changed("equity") {
		return sizingEquity, nil
	}
	if env := os.Getenv("SIZER_EQUITY"); env != "" {
		v, err := strconv.ParseFloat(env, 64)
		if err != nil {
			return 0, fmt.Errorf("parse SIZER_EQUITY: %w", err)
		}
		return v, nil
	}
	return 0, fmt.Errorf("account equity is required: pass --equity or set SIZER_EQUITY")
}

func loadLimits(path string) (risk.Limits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return risk.Limits{}, fmt.Errorf("read preferences: %w", err)
	}

	var prefs map[string]any
	if err := json.Unmarshal(data, &prefs); err != nil {
		return risk.Limits{}, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}

	return risk.ParseLimits(prefs)
}

// journalRun records the run best-effort: the artifacts are already on
// disk, so journal trouble downgrades to a warning.
func journalRun(cfg *config.Config, equity float64, res risk.Result) {
	j, err := openJournal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: journal unavailable: %v\n", err)
		return
	}
	defer j.Close()

	rec := journal.RunRecord{
		RunID:           id.NewRunID(),
		CreatedAt:       time.Now().UTC(),
		Equity:          equity,
		RiskPerTradePct: res.RiskPerTradePct,
		RiskPerTradeUSD: res.RiskPerTradeUSD,
		MaxTotalRiskUSD: res.MaxTotalRiskUSD,
		TotalRiskUSD:    res.TotalRiskUSD,
	}
	for _, o := range res.Orders {
		rec.Orders = append(rec.Orders, journal.OrderRow{
			Symbol:           o.Symbol,
			Direction:        o.Direction,
			Entry:            o.Entry,
			Stop:             o.Stop,
			UnitSize:         o.UnitSize,
			UnitType:         o.UnitType,
			RiskPerTradeUSD:  o.RiskPerTradeUSD,
			MaxLossIfStopped: o.MaxLossIfStopped,
			Notes:            o.Notes,
		})
	}
	for _, s := range res.Skips {
		rec.Skips = append(rec.Skips, journal.SkipRow{Symbol: s.Symbol, Reason: s.Reason})
	}

	if err := j.RecordRun(rec); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: journal write failed: %v\n", err)
		return
	}
	fmt.Printf("Journaled run %s\n", rec.RunID)
}

func openJournal(cfg *config.Config) (journal.Journal, error) {
	if cfg.Journal.Type == "csv" {
		return journal.NewCSV(cfg.Journal.CSVDir)
	}
	return journal.NewSQLite(cfg.Journal.DBPath)
}
