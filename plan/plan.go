package plan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// TradePlan is one candidate trade as proposed by the signals stage.
// EntryPrice and StopPrice are pointers because plans may legitimately
// arrive unpriced; the fill stage derives them from quotes and the sizing
// stage skips plans still missing either one.
type TradePlan struct {
	Symbol      string   `json:"symbol"`
	Direction   string   `json:"direction,omitempty"`
	EntryPrice  *float64 `json:"entry_price,omitempty"`
	StopPrice   *float64 `json:"stop_price,omitempty"`
	LotSize     float64  `json:"lot_size,omitempty"`
	MaxShares   *float64 `json:"max_shares,omitempty"`
	MaxNotional *float64 `json:"max_notional,omitempty"`
	NoShort     bool     `json:"no_short,omitempty"`
	UnitType    string   `json:"unit_type,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// ShapeError reports a trade-plan document whose top level is not a JSON
// list. Anything else a plan contains is tolerated; the wrong outer shape
// is not.
type ShapeError struct {
	Path string
}

func (e *ShapeError) Error() string {
	if e.Path == "" {
		return "trade plans must be a list of plans"
	}
	return fmt.Sprintf("%s must be a list of plans", e.Path)
}

// Parse decodes an ordered trade-plan list from JSON bytes.
func Parse(data []byte) ([]TradePlan, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &ShapeError{}
	}

	var plans []TradePlan
	if err := json.Unmarshal(trimmed, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Load reads an ordered trade-plan list from a JSON file.
func Load(path string) ([]TradePlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trade plans: %w", err)
	}

	plans, err := Parse(data)
	if err != nil {
		var shapeErr *ShapeError
		if errors.As(err, &shapeErr) {
			shapeErr.Path = path
			return nil, shapeErr
		}
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return plans, nil
}

// Save writes plans as indented JSON, creating parent directories as
// needed. A nil slice still writes an empty list so readers downstream
// always see the expected shape.
func Save(path string, plans []TradePlan) error {
	if plans == nil {
		plans = []TradePlan{}
	}

	data, err := json.MarshalIndent(plans, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal trade plans: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create plans directory: %w", err)
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
