package offer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finplan/internal/config"
	"github.com/MrJamesThe3rd/finplan/internal/offer"
	"github.com/MrJamesThe3rd/finplan/internal/offer/cache"
	"github.com/MrJamesThe3rd/finplan/internal/offer/ratesheet"
	"github.com/MrJamesThe3rd/finplan/internal/offer/remote"
)

func TestNewProvider(t *testing.T) {
	sheet := filepath.Join(t.TempDir(), "rates.csv")
	require.NoError(t, os.WriteFile(sheet, []byte("Lender,Category,Min term,Max term,Rate\nbbva,personal,1,12,18\n"), 0o600))

	type testCase struct {
		name    string
		setup   func(cfg *config.Config)
		check   func(t *testing.T, p any)
		wantErr bool
	}

	tests := []testCase{
		{
			name:    "NoSource",
			setup:   func(*config.Config) {},
			wantErr: true,
		},
		{
			name: "Remote",
			setup: func(cfg *config.Config) {
				cfg.Offers.BaseURL = "https://quotes.example"
				cfg.Offers.Timeout = time.Second
			},
			check: func(t *testing.T, p any) {
				assert.IsType(t, &remote.Client{}, p)
			},
		},
		{
			name: "RateSheet",
			setup: func(cfg *config.Config) {
				cfg.Offers.RateSheetPath = sheet
			},
			check: func(t *testing.T, p any) {
				assert.IsType(t, &ratesheet.Provider{}, p)
			},
		},
		{
			name: "MissingRateSheet",
			setup: func(cfg *config.Config) {
				cfg.Offers.RateSheetPath = filepath.Join(t.TempDir(), "missing.csv")
			},
			wantErr: true,
		},
		{
			name: "UnreachableRedisSkipsCache",
			setup: func(cfg *config.Config) {
				cfg.Offers.RateSheetPath = sheet
				cfg.Redis.Addr = "127.0.0.1:1"
			},
			check: func(t *testing.T, p any) {
				_, cached := p.(*cache.Provider)
				assert.False(t, cached)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg config.Config
			tt.setup(&cfg)

			p, cleanup, err := offer.NewProvider(context.Background(), &cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			defer cleanup()

			tt.check(t, p)
		})
	}
}
