package quotes

import (
	"context"
	"fmt"
)

// Chain tries each source in order and returns the first quote. A source
// failing (or not knowing the symbol) just moves the lookup along; only
// context cancellation stops the walk early.
type Chain []Source

// Name implements Source.
func (c Chain) Name() string { return "chain" }

// Last implements Source.
func (c Chain) Last(ctx context.Context, symbol string) (Quote, error) {
	if len(c) == 0 {
		return Quote{}, ErrNoQuote
	}

	var lastErr error
	for _, s := range c {
		q, err := s.Last(ctx, symbol)
		if err == nil {
			return q, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return Quote{}, ctx.Err()
		}
	}
	return Quote{}, fmt.Errorf("all quote sources failed for %s: %w", symbol, lastErr)
}
