package report

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/rustyeddy/sizer/risk"
)

// orderRow is the serialized shape of one sized order. Monetary fields
// round to cents at this boundary only; the engine's in-memory result
// keeps full precision.
type orderRow struct {
	Symbol           string  `json:"symbol"`
	Direction        string  `json:"direction"`
	Entry            float64 `json:"entry"`
	Stop             float64 `json:"stop"`
	RiskPerTradeUSD  float64 `json:"risk_per_trade_usd"`
	UnitSize         int     `json:"unit_size"`
	UnitType         string  `json:"unit_type"`
	MaxLossIfStopped float64 `json:"max_loss_if_stopped"`
	Notes            string  `json:"notes"`
}

// OrderSheetJSON renders accepted orders as a two-space indented JSON
// list. An empty run still renders "[]" so downstream readers always get
// the expected shape.
func OrderSheetJSON(orders []risk.SizedOrder) ([]byte, error) {
	rows := make([]orderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, orderRow{
			Symbol:           o.Symbol,
			Direction:        o.Direction,
			Entry:            o.Entry,
			Stop:             o.Stop,
			RiskPerTradeUSD:  round2(o.RiskPerTradeUSD),
			UnitSize:         o.UnitSize,
			UnitType:         o.UnitType,
			MaxLossIfStopped: round2(o.MaxLossIfStopped),
			Notes:            o.Notes,
		})
	}
	return json.MarshalIndent(rows, "", "  ")
}

// WriteOrderSheet writes the order sheet to path, creating parent
// directories as needed.
func WriteOrderSheet(path string, orders []risk.SizedOrder) error {
	data, err := OrderSheetJSON(orders)
	if err != nil {
		return fmt.Errorf("marshal order sheet: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create sizing directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
