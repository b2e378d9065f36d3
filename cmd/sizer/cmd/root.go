package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/sizer/config"
)

var rootCmd = &cobra.Command{
	Use:   "sizer",
	Short: "Risk-bounded position sizing for discretionary trade plans",
	Long: `Sizer turns a list of trade plans into an order sheet that respects
hard risk limits.

It provides tools for:
  - Validating research inputs before a trading session
  - Filling missing entry/stop prices from market quotes
  - Sizing plans against per-trade and aggregate risk caps
  - Writing order sheet and risk checklist artifacts
  - Journaling sizing runs for later review

Complete documentation is available at https://github.com/rustyeddy/sizer`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var cfgFile string

func init() {
	cobra.OnInitialize(loadDotenv)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "f", "", "config file (YAML or JSON)")
}

// loadDotenv pulls SIZER_* variables from a local .env when present.
func loadDotenv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env: %v\n", err)
	}
}

// loadConfig resolves the toolkit configuration: the --config flag wins,
// then SIZER_CONFIG, then sizer.yaml/.yml/.json in the working directory,
// then built-in defaults.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFromFile(cfgFile)
	}
	if env := os.Getenv("SIZER_CONFIG"); env != "" {
		return config.LoadFromFile(env)
	}
	for _, candidate := range []string{"sizer.yaml", "sizer.yml", "sizer.json"} {
		if _, err := os.Stat(candidate); err == nil {
			return config.LoadFromFile(candidate)
		}
	}
	return config.Default(), nil
}
