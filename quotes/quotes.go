package quotes

import (
	"context"
	"errors"
)

// ErrNoQuote means a source answered but has no price for the symbol
// (unknown ticker, delisted instrument, unsupported venue).
var ErrNoQuote = errors.New("no quote for symbol")

// Quote is one best-effort last price for a symbol. Source names which
// provider supplied the price so downstream notes can cite it.
type Quote struct {
	Symbol string
	Last   float64
	Source string
}

// Source supplies last prices. Implementations are one-shot lookups: no
// streaming, no caching, no retries.
type Source interface {
	// Name identifies the provider in notes and error messages.
	Name() string

	// Last returns the most recent known price for symbol, or ErrNoQuote
	// when the provider does not know the symbol.
	Last(ctx context.Context, symbol string) (Quote, error)
}

// Static is a fixed in-memory symbol -> price lookup, used for tests and
// fully offline runs.
type Static map[string]float64

// Name implements Source.
func (s Static) Name() string { return "static" }

// Last implements Source.
func (s Static) Last(_ context.Context, symbol string) (Quote, error) {
	last, ok := s[symbol]
	if !ok {
		return Quote{}, ErrNoQuote
	}
	return Quote{Symbol: symbol, Last: last, Source: "static"}, nil
}
