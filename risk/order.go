package risk

// AggregateMarker is the reserved symbol on skip records that describe
// the whole portfolio rather than a single plan. Real instrument symbols
// never collide with it.
const AggregateMarker = "<aggregate>"

// Skip reasons are part of the audit contract: checklists, journals and
// tests all match on these exact strings.
const (
	ReasonMissingPrices   = "missing entry or stop"
	ReasonBadStopDistance = "stop distance <= 0"
	ReasonBadDirection    = "direction must be 'long' or 'short'"
	ReasonShortDisabled   = "shorting disabled for instrument"
	ReasonTooSmall        = "size < 1 unit; stop too tight"
	ReasonMaxPositions    = "exceeds max_positions"
)

// SizedOrder is one tradable order produced by a sizing run. Monetary
// fields keep full float precision here; rounding to cents happens only
// when an order is serialized for humans.
type SizedOrder struct {
	Symbol           string
	Direction        string // lowercased "long" or "short"
	Entry            float64
	Stop             float64
	RiskPerTradeUSD  float64 // per-trade budget this order was sized against
	UnitSize         int
	UnitType         string // "shares" unless the plan says otherwise
	MaxLossIfStopped float64
	Notes            string
}

// Skip records one plan (or the AggregateMarker) that produced no order,
// with the human-readable reason. Order of appearance is preserved all
// the way to the checklist.
type Skip struct {
	Symbol string
	Reason string
}
