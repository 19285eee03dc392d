// Package cache memoises offer provider responses for a short while so
// repeated plan edits do not hammer lenders.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finplan/internal/plan"
)

const keyPrefix = "finplan:quotes:v1"

type cachedQuote struct {
	LenderID       string          `json:"lender_id"`
	RatePercent    decimal.Decimal `json:"rate_percent"`
	MonthlyPayment int64           `json:"monthly_payment"`
	TotalPayment   int64           `json:"total_payment"`
}

// Provider decorates a plan.OfferProvider. Cache failures are logged and
// never surface to callers.
type Provider struct {
	next  plan.OfferProvider
	store Store
	ttl   time.Duration
}

func New(next plan.OfferProvider, store Store, ttl time.Duration) *Provider {
	return &Provider{next: next, store: store, ttl: ttl}
}

func Key(req plan.QuoteRequest) string {
	return fmt.Sprintf("%s:%s:%d:%d", keyPrefix, req.Category, req.Principal, req.TermMonths)
}

func (p *Provider) GetQuotes(ctx context.Context, req plan.QuoteRequest) ([]plan.Quote, error) {
	key := Key(req)

	if quotes, ok := p.lookup(ctx, key); ok {
		return quotes, nil
	}

	quotes, err := p.next.GetQuotes(ctx, req)
	if err != nil {
		return nil, err
	}

	p.remember(ctx, key, quotes)

	return quotes, nil
}

func (p *Provider) lookup(ctx context.Context, key string) ([]plan.Quote, bool) {
	raw, err := p.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			slog.Warn("quote cache read failed", "key", key, "error", err)
		}

		return nil, false
	}

	var cached []cachedQuote
	if err := json.Unmarshal(raw, &cached); err != nil {
		slog.Warn("discarding corrupt quote cache entry", "key", key, "error", err)
		return nil, false
	}

	quotes := make([]plan.Quote, len(cached))
	for i, c := range cached {
		quotes[i] = plan.Quote(c)
	}

	return quotes, true
}

func (p *Provider) remember(ctx context.Context, key string, quotes []plan.Quote) {
	cached := make([]cachedQuote, len(quotes))
	for i, q := range quotes {
		cached[i] = cachedQuote(q)
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		slog.Warn("encoding quotes for cache", "key", key, "error", err)
		return
	}

	if err := p.store.Set(ctx, key, raw, p.ttl); err != nil {
		slog.Warn("quote cache write failed", "key", key, "error", err)
	}
}
