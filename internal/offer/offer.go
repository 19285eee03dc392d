// Package offer assembles the configured plan.OfferProvider.
package offer

import (
	"context"
	"log/slog"

	"github.com/MrJamesThe3rd/finplan/internal/config"
	"github.com/MrJamesThe3rd/finplan/internal/database"
	"github.com/MrJamesThe3rd/finplan/internal/offer/cache"
	"github.com/MrJamesThe3rd/finplan/internal/offer/ratesheet"
	"github.com/MrJamesThe3rd/finplan/internal/offer/remote"
	"github.com/MrJamesThe3rd/finplan/internal/plan"
)

// NewProvider prefers the remote aggregator and falls back to the rate sheet.
// When Redis is configured and reachable the provider is cached. The returned
// func releases the cache connection.
func NewProvider(ctx context.Context, cfg *config.Config) (plan.OfferProvider, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	var provider plan.OfferProvider

	if cfg.Offers.BaseURL != "" {
		provider = remote.NewClient(cfg.Offers.BaseURL, cfg.Offers.Token, cfg.Offers.Timeout)
	} else {
		sheet, err := ratesheet.Load(cfg.Offers.RateSheetPath)
		if err != nil {
			return nil, nil, err
		}

		provider = sheet
	}

	noop := func() {}

	if cfg.Redis.Addr == "" {
		return provider, noop, nil
	}

	client, err := database.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		slog.Warn("quote cache disabled", "error", err)
		return provider, noop, nil
	}

	cleanup := func() {
		if err := client.Close(); err != nil {
			slog.Error("failed to close redis", "error", err)
		}
	}

	return cache.New(provider, cache.NewRedisStore(client), cfg.Redis.QuoteTTL), cleanup, nil
}
