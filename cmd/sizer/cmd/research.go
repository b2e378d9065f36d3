package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/sizer/research"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Validate research inputs for a trading session",
	Long: `Check that every required research input exists and is non-empty
before any analysis starts. Defaults are strict: a missing input halts
the session with an explicit list instead of guessing.

Examples:
  sizer research
  sizer research --stub`,
	RunE: runResearch,
}

var researchStub bool

func init() {
	rootCmd.AddCommand(researchCmd)

	researchCmd.Flags().BoolVar(&researchStub, "stub", false, "write stub outputs after validation")
}

func runResearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	missing := research.CheckInputs(cfg)
	if len(missing) > 0 {
		fmt.Println("Research halted. Missing or empty files:")
		for _, m := range missing {
			fmt.Printf("- %s\n", m)
		}
		return fmt.Errorf("%d required input(s) missing", len(missing))
	}

	if !research.ScreenerPresent(cfg) {
		fmt.Println("Note: optional screener not found; continuing without it.")
	}

	if researchStub {
		if err := research.WriteStubs(cfg); err != nil {
			return fmt.Errorf("write stubs: %w", err)
		}
		fmt.Printf("Wrote stub outputs to %s\n", cfg.ResearchDir())
		return nil
	}

	fmt.Println("Inputs validated. Add your research and write outputs to:")
	fmt.Printf("- %s\n", cfg.DailyBriefPath())
	fmt.Printf("- %s\n", cfg.WatchlistPath())
	return nil
}
