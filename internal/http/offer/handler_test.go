package offer_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	offerHandler "github.com/MrJamesThe3rd/finplan/internal/http/offer"
	"github.com/MrJamesThe3rd/finplan/internal/plan"
)

type staticNames map[string]string

func (s staticNames) Names(_ context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		out[id] = id
		if n, ok := s[id]; ok {
			out[id] = n
		}
	}

	return out, nil
}

func newRouter(offers plan.OfferProvider) http.Handler {
	r := chi.NewRouter()
	h := offerHandler.NewHandler(plan.NewService(nil, offers), staticNames{"bbva": "BBVA"})
	r.Route("/offers", h.Routes)

	return r
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	return rec
}

func TestHandler_Quotes(t *testing.T) {
	ctrl := gomock.NewController(t)
	offers := plan.NewMockOfferProvider(ctrl)

	req := plan.QuoteRequest{Principal: 5000000, TermMonths: 24, Category: plan.CategoryPersonal}
	offers.EXPECT().GetQuotes(gomock.Any(), req).Return([]plan.Quote{
		{LenderID: "hsbc", RatePercent: decimal.RequireFromString("19.5"), MonthlyPayment: 253000, TotalPayment: 6072000},
		{LenderID: "bbva", RatePercent: decimal.RequireFromString("18.25"), MonthlyPayment: 250000, TotalPayment: 6000000},
	}, nil)

	rec := get(newRouter(offers), "/offers?principal=5000000&term=24&category=personal")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []struct {
		Rank       int    `json:"rank"`
		LenderID   string `json:"lender_id"`
		LenderName string `json:"lender_name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)

	assert.Equal(t, 1, got[0].Rank)
	assert.Equal(t, "bbva", got[0].LenderID)
	assert.Equal(t, "BBVA", got[0].LenderName)
	assert.Equal(t, "hsbc", got[1].LenderName)
}

func TestHandler_Quotes_Errors(t *testing.T) {
	type testCase struct {
		name       string
		path       string
		setupMock  func(offers *plan.MockOfferProvider)
		wantStatus int
	}

	tests := []testCase{
		{
			name:       "BadPrincipal",
			path:       "/offers?principal=abc&term=12&category=personal",
			setupMock:  func(*plan.MockOfferProvider) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "UnknownCategory",
			path:       "/offers?principal=100&term=12&category=boat",
			setupMock:  func(*plan.MockOfferProvider) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "IneligiblePersonal",
			path:       "/offers?principal=20000000&term=36&category=personal",
			setupMock:  func(*plan.MockOfferProvider) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "ProviderDown",
			path: "/offers?principal=5000000&term=12&category=personal",
			setupMock: func(offers *plan.MockOfferProvider) {
				offers.EXPECT().GetQuotes(gomock.Any(), gomock.Any()).Return(nil, errors.New("dial tcp: refused"))
			},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			offers := plan.NewMockOfferProvider(ctrl)
			tt.setupMock(offers)

			rec := get(newRouter(offers), tt.path)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_Eligibility(t *testing.T) {
	type want struct {
		Eligible   bool   `json:"eligible"`
		Rule       string `json:"rule"`
		MaxTerm    int    `json:"max_term"`
		VehicleCap *int64 `json:"vehicle_cap"`
	}

	type testCase struct {
		name string
		path string
		want want
	}

	tests := []testCase{
		{
			name: "PersonalWithinTier",
			path: "/offers/eligibility?category=personal&principal=20000000&term=24",
			want: want{Eligible: true, MaxTerm: 24},
		},
		{
			name: "PersonalTermTooLong",
			path: "/offers/eligibility?category=personal&principal=20000000&term=36",
			want: want{Eligible: false, Rule: plan.RulePersonalTier, MaxTerm: 24},
		},
		{
			name: "VehicleUnderCap",
			path: "/offers/eligibility?category=primary&principal=30000000&term=60&price=60000000",
			want: want{Eligible: true, VehicleCap: new(int64(30000000))},
		},
		{
			name: "VehicleOverCap",
			path: "/offers/eligibility?category=primary&principal=30000001&term=60&price=60000000",
			want: want{Eligible: false, Rule: plan.RuleVehicleCap, VehicleCap: new(int64(30000000))},
		},
		{
			name: "PrimaryWithoutPrice",
			path: "/offers/eligibility?category=primary&principal=30000001&term=60",
			want: want{Eligible: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(newRouter(nil), tt.path)
			require.Equal(t, http.StatusOK, rec.Code)

			var got want
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandler_Eligibility_BadPrice(t *testing.T) {
	rec := get(newRouter(nil), "/offers/eligibility?category=primary&principal=1&term=1&price=-4")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
