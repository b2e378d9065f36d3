package journal

import "time"

// RunRecord is the audit row for one sizing invocation, together with
// the orders it accepted and the plans it skipped. OrderCount/SkipCount
// are derived on write; list queries populate them without loading the
// child rows.
type RunRecord struct {
	RunID           string
	CreatedAt       time.Time
	Equity          float64
	RiskPerTradePct float64
	RiskPerTradeUSD float64
	MaxTotalRiskUSD float64
	TotalRiskUSD    float64
	OrderCount      int
	SkipCount       int

	Orders []OrderRow
	Skips  []SkipRow
}

// OrderRow mirrors one accepted order as journaled.
type OrderRow struct {
	Symbol           string
	Direction        string
	Entry            float64
	Stop             float64
	UnitSize         int
	UnitType         string
	RiskPerTradeUSD  float64
	MaxLossIfStopped float64
	Notes            string
}

// SkipRow mirrors one skip record as journaled.
type SkipRow struct {
	Symbol string
	Reason string
}

// Journal persists sizing runs. Recording is best-effort from the
// caller's point of view: artifacts are written before the journal is
// touched, so a journal failure never loses an order sheet.
type Journal interface {
	RecordRun(RunRecord) error
	Close() error
}
