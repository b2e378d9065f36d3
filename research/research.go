package research

import (
	"os"

	"github.com/rustyeddy/sizer/config"
)

// MissingOrEmpty returns the subset of paths that do not exist or are
// empty files, preserving order.
func MissingOrEmpty(paths ...string) []string {
	var missing []string
	for _, p := range paths {
		st, err := os.Stat(p)
		if err != nil || st.Size() == 0 {
			missing = append(missing, p)
		}
	}
	return missing
}

// CheckInputs returns every required research input that is missing or
// empty, in reporting order. An empty result means the research stage
// may proceed.
func CheckInputs(cfg *config.Config) []string {
	return MissingOrEmpty(
		cfg.PreferencesPath(),
		cfg.UniversePath(),
		cfg.StrategySpecPath(),
		cfg.DataSourcesPath(),
	)
}

// ScreenerPresent reports whether the optional screener artifact exists.
// The screener is advisory, so presence alone is enough.
func ScreenerPresent(cfg *config.Config) bool {
	_, err := os.Stat(cfg.ScreenerPath())
	return err == nil
}

const stubBrief = "# Daily Market Prep (stub)\n\n" +
	"- Status: inputs validated; replace this stub with real analysis.\n"

// WriteStubs creates placeholder research outputs so downstream stages
// have files to replace.
func WriteStubs(cfg *config.Config) error {
	if err := os.MkdirAll(cfg.ResearchDir(), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(cfg.DailyBriefPath(), []byte(stubBrief), 0644); err != nil {
		return err
	}
	return os.WriteFile(cfg.WatchlistPath(), []byte("[]\n"), 0644)
}
