package risk

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Limits are the account-level guardrails every sizing run enforces.
// Percentages are fractions of equity (0.01 means 1%).
type Limits struct {
	MaxRiskPerTradePct        float64 // cap on a single trade's risk
	MaxDailyLossPct           float64 // echoed on checklists; enforced intraday by the operator
	MaxPositions              int     // cap on concurrently open positions
	MaxTotalConcurrentRiskPct float64 // cap on summed risk across all positions
}

// requiredLimitKeys lists the preference keys a sizing run cannot start
// without, in reporting order.
var requiredLimitKeys = []string{
	"max_risk_per_trade_pct",
	"max_daily_loss_pct",
	"max_positions",
	"max_total_concurrent_risk_pct",
}

// ConfigError reports an unusable preferences mapping: either required
// keys are absent (all of them are listed, not just the first), or a
// present key holds a value that cannot be coerced.
type ConfigError struct {
	Missing []string
	Key     string
	Reason  string
}

func (e *ConfigError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("preferences.json missing keys: %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("preferences.json key %q: %s", e.Key, e.Reason)
}

// ParseLimits validates a raw preferences mapping and coerces the four
// limit values. Values may arrive as JSON numbers or numeric strings;
// max_positions additionally truncates integral floats the way a plain
// int() cast would. No range checking happens here: a zero or negative
// limit is accepted and produces its natural effect downstream.
func ParseLimits(prefs map[string]any) (Limits, error) {
	var missing []string
	for _, key := range requiredLimitKeys {
		if _, ok := prefs[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Limits{}, &ConfigError{Missing: missing}
	}

	var (
		lim Limits
		err error
	)
	if lim.MaxRiskPerTradePct, err = toFloat("max_risk_per_trade_pct", prefs["max_risk_per_trade_pct"]); err != nil {
		return Limits{}, err
	}
	if lim.MaxDailyLossPct, err = toFloat("max_daily_loss_pct", prefs["max_daily_loss_pct"]); err != nil {
		return Limits{}, err
	}
	if lim.MaxPositions, err = toInt("max_positions", prefs["max_positions"]); err != nil {
		return Limits{}, err
	}
	if lim.MaxTotalConcurrentRiskPct, err = toFloat("max_total_concurrent_risk_pct", prefs["max_total_concurrent_risk_pct"]); err != nil {
		return Limits{}, err
	}
	return lim, nil
}

func toFloat(key string, v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, &ConfigError{Key: key, Reason: fmt.Sprintf("%q is not a number", x.String())}
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, &ConfigError{Key: key, Reason: fmt.Sprintf("%q is not a number", x)}
		}
		return f, nil
	default:
		return 0, &ConfigError{Key: key, Reason: fmt.Sprintf("unsupported type %T", v)}
	}
}

func toInt(key string, v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		return int(math.Trunc(x)), nil
	case float32:
		return int(math.Trunc(float64(x))), nil
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return int(n), nil
		}
		f, err := x.Float64()
		if err != nil {
			return 0, &ConfigError{Key: key, Reason: fmt.Sprintf("%q is not an integer", x.String())}
		}
		return int(math.Trunc(f)), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, &ConfigError{Key: key, Reason: fmt.Sprintf("%q is not an integer", x)}
		}
		return n, nil
	default:
		return 0, &ConfigError{Key: key, Reason: fmt.Sprintf("unsupported type %T", v)}
	}
}
