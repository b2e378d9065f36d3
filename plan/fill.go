package plan

import (
	"context"
	"fmt"
	"strings"

	"github.com/rustyeddy/sizer/quotes"
)

// Filler derives entry and stop prices for plans that arrive without
// them. Entries come from a last quote padded by EntryBufferPct in the
// trade's direction; stops sit StopBufferPct away from the entry on the
// losing side. The filler never sizes anything and never rejects a plan:
// what it cannot fill it leaves alone and explains in a note.
type Filler struct {
	Quotes         quotes.Source
	EntryBufferPct float64
	StopBufferPct  float64
}

// Note describes one fill action or miss, keyed by symbol, for operator
// review.
type Note struct {
	Symbol string
	Text   string
}

// Fill returns a copy of plans with missing prices derived where
// possible, plus a note for every plan it touched or had to leave
// unpriced. Fully priced plans pass through untouched. Derived prices are
// recorded in each plan's Notes field so the provenance survives into
// order sheets.
func (f Filler) Fill(ctx context.Context, plans []TradePlan) ([]TradePlan, []Note) {
	out := make([]TradePlan, len(plans))
	copy(out, plans)

	var notes []Note
	note := func(p *TradePlan, text string) {
		if p.Notes == "" {
			p.Notes = text
		} else {
			p.Notes += "; " + text
		}
		notes = append(notes, Note{Symbol: p.Symbol, Text: text})
	}
	miss := func(p *TradePlan, text string) {
		notes = append(notes, Note{Symbol: p.Symbol, Text: text})
	}

	for i := range out {
		p := &out[i]
		if p.EntryPrice != nil && p.StopPrice != nil {
			continue
		}

		direction := strings.ToLower(p.Direction)
		if direction != "long" && direction != "short" {
			miss(p, "not filled: direction unknown")
			continue
		}

		if p.EntryPrice == nil {
			q, err := f.Quotes.Last(ctx, p.Symbol)
			if err != nil {
				miss(p, fmt.Sprintf("not filled: %v", err))
				continue
			}

			entry := q.Last * (1 + f.EntryBufferPct)
			if direction == "short" {
				entry = q.Last * (1 - f.EntryBufferPct)
			}
			p.EntryPrice = &entry

			if p.StopPrice == nil {
				stop := f.stopFrom(entry, direction)
				p.StopPrice = &stop
				note(p, fmt.Sprintf("entry/stop filled from %s last %.4f", q.Source, q.Last))
			} else {
				note(p, fmt.Sprintf("entry filled from %s last %.4f", q.Source, q.Last))
			}
			continue
		}

		// Entry was provided, only the stop is missing. No quote needed:
		// the stop hangs off the trader's own entry.
		stop := f.stopFrom(*p.EntryPrice, direction)
		p.StopPrice = &stop
		note(p, "stop derived from entry")
	}

	return out, notes
}

// stopFrom places the stop on the losing side of entry.
func (f Filler) stopFrom(entry float64, direction string) float64 {
	if direction == "short" {
		return entry * (1 + f.StopBufferPct)
	}
	return entry * (1 - f.StopBufferPct)
}
