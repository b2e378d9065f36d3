package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/sizer/config"
	"github.com/rustyeddy/sizer/plan"
	"github.com/rustyeddy/sizer/quotes"
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill missing entry/stop prices from market quotes",
	Long: `Fetch last prices for plans that are missing an entry or stop and
fill them with direction-aware buffers. Fully priced plans pass through
untouched; plans that cannot be filled are left for the sizing stage to
skip with its own reason.

Examples:
  sizer fill
  sizer fill --out artifacts/signals/trade_plans_filled.json
  sizer fill --prices inputs/prices.json`,
	RunE: runFill,
}

var (
	fillOut    string
	fillPrices string
)

func init() {
	rootCmd.AddCommand(fillCmd)

	fillCmd.Flags().StringVarP(&fillOut, "out", "o", "", "write filled plans here instead of in place")
	fillCmd.Flags().StringVar(&fillPrices, "prices", "", "symbol->price JSON file overriding configured providers")
}

func runFill(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	plans, err := plan.Load(cfg.TradePlansPath())
	if err != nil {
		return err
	}

	src, err := buildQuoteSource(cfg)
	if err != nil {
		return err
	}

	filler := plan.Filler{
		Quotes:         src,
		EntryBufferPct: cfg.Fill.EntryBufferPct,
		StopBufferPct:  cfg.Fill.StopBufferPct,
	}
	filled, notes := filler.Fill(context.Background(), plans)

	out := fillOut
	if out == "" {
		out = cfg.TradePlansPath()
	}
	if err := plan.Save(out, filled); err != nil {
		return fmt.Errorf("save plans: %w", err)
	}

	fmt.Printf("Wrote %s\n", out)
	for _, n := range notes {
		fmt.Printf("- %s: %s\n", n.Symbol, n.Text)
	}
	return nil
}

// buildQuoteSource assembles the configured provider chain. A --prices
// override replaces the chain with the local file source.
func buildQuoteSource(cfg *config.Config) (quotes.Source, error) {
	if fillPrices != "" {
		return quotes.LoadFile(fillPrices)
	}

	timeout, err := cfg.Quotes.ParseTimeout()
	if err != nil {
		return nil, fmt.Errorf("quotes.timeout: %w", err)
	}

	var chain quotes.Chain
	for _, p := range cfg.Quotes.Providers {
		switch p {
		case "stooq":
			chain = append(chain, quotes.NewStooq(cfg.Quotes.StooqSuffix, timeout))
		case "yahoo":
			chain = append(chain, quotes.NewYahoo(timeout))
		case "file":
			f, err := quotes.LoadFile(cfg.Quotes.PricesFile)
			if err != nil {
				return nil, err
			}
			chain = append(chain, f)
		default:
			return nil, fmt.Errorf("unknown quote provider: %s", p)
		}
	}
	if len(chain) == 0 {
		return nil, fmt.Errorf("no quote providers configured")
	}
	return chain, nil
}
