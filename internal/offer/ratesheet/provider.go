// Package ratesheet quotes credits from a lender rate sheet exported as CSV.
package ratesheet

import (
	"context"
	"fmt"
	"os"

	"github.com/MrJamesThe3rd/finplan/internal/plan"
)

// Provider is an offline plan.OfferProvider backed by a parsed rate sheet.
type Provider struct {
	rates []Rate
}

func New(rates []Rate) *Provider {
	return &Provider{rates: rates}
}

// Load parses the rate sheet at path.
func Load(path string) (*Provider, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rate sheet: %w", err)
	}
	defer f.Close()

	rates, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing rate sheet %s: %w", path, err)
	}

	return New(rates), nil
}

// GetQuotes prices the request against every covering row, keeping the
// cheapest row per lender.
func (p *Provider) GetQuotes(ctx context.Context, req plan.QuoteRequest) ([]plan.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	best := make(map[string]Rate)
	var order []string

	for _, r := range p.rates {
		if !r.covers(req) {
			continue
		}

		cur, seen := best[r.LenderID]
		if !seen {
			order = append(order, r.LenderID)
		}

		if !seen || r.RatePercent.LessThan(cur.RatePercent) {
			best[r.LenderID] = r
		}
	}

	quotes := make([]plan.Quote, 0, len(order))

	for _, id := range order {
		r := best[id]
		monthly := MonthlyPayment(req.Principal, r.RatePercent, req.TermMonths)

		quotes = append(quotes, plan.Quote{
			LenderID:       id,
			RatePercent:    r.RatePercent,
			MonthlyPayment: monthly,
			TotalPayment:   monthly * int64(req.TermMonths),
		})
	}

	return quotes, nil
}
