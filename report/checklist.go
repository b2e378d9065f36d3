package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rustyeddy/sizer/risk"
)

// Checklist renders the human-readable risk checklist: the account
// equity, every configured limit (percentages at two decimals), then
// each skip in insertion order, or a single "None" line when nothing
// was skipped. Pure formatting; the decisions were all made upstream.
func Checklist(equity float64, lim risk.Limits, skips []risk.Skip) string {
	var b strings.Builder

	b.WriteString("# Risk Checklist\n")
	fmt.Fprintf(&b, "- Account equity: %.2f\n", equity)
	fmt.Fprintf(&b, "- Max risk per trade: %.2f%%\n", lim.MaxRiskPerTradePct*100)
	fmt.Fprintf(&b, "- Max daily loss: %.2f%%\n", lim.MaxDailyLossPct*100)
	fmt.Fprintf(&b, "- Max positions: %d\n", lim.MaxPositions)
	fmt.Fprintf(&b, "- Max total concurrent risk: %.2f%%\n", lim.MaxTotalConcurrentRiskPct*100)
	b.WriteString("\n## Skipped / Notes\n")

	if len(skips) == 0 {
		b.WriteString("- None\n")
		return b.String()
	}
	for _, s := range skips {
		fmt.Fprintf(&b, "- %s: %s\n", s.Symbol, s.Reason)
	}
	return b.String()
}

// WriteChecklist writes the checklist to path, creating parent
// directories as needed.
func WriteChecklist(path string, equity float64, lim risk.Limits, skips []risk.Skip) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create sizing directory: %w", err)
		}
	}
	return os.WriteFile(path, []byte(Checklist(equity, lim, skips)), 0644)
}
