package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finplan/internal/export"
	finplanHttp "github.com/MrJamesThe3rd/finplan/internal/http"
	"github.com/MrJamesThe3rd/finplan/internal/http/auth"
	exportHandler "github.com/MrJamesThe3rd/finplan/internal/http/export"
	lenderHandler "github.com/MrJamesThe3rd/finplan/internal/http/lender"
	offerHandler "github.com/MrJamesThe3rd/finplan/internal/http/offer"
	planHandler "github.com/MrJamesThe3rd/finplan/internal/http/plan"
	"github.com/MrJamesThe3rd/finplan/internal/lender"
	"github.com/MrJamesThe3rd/finplan/internal/plan"
)

const secret = "router-secret"

type emptyLenders struct{}

func (emptyLenders) FindNames(context.Context, []string) (map[string]string, error) {
	return map[string]string{}, nil
}

func (emptyLenders) Upsert(context.Context, lender.Lender) error { return nil }

func (emptyLenders) List(context.Context) ([]lender.Lender, error) { return nil, nil }

func newRouter(t *testing.T, repo plan.Repository) http.Handler {
	t.Helper()

	plans := plan.NewService(repo, nil)
	lenders := lender.NewService(emptyLenders{})

	return finplanHttp.New(
		finplanHttp.Options{
			AllowedOrigins: []string{"https://app.example"},
			Authenticate:   auth.NewVerifier(secret, "").Middleware,
		},
		planHandler.NewHandler(plans),
		offerHandler.NewHandler(plans, lenders),
		lenderHandler.NewHandler(lenders),
		exportHandler.NewHandler(export.NewService(plans, lenders)),
	)
}

func token(t *testing.T, sub string) string {
	t.Helper()

	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	return s
}

func TestRouter_RequiresToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := newRouter(t, plan.NewMockRepository(ctrl))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/plans", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ScopesPlansToTokenSubject(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := plan.NewMockRepository(ctrl)
	repo.EXPECT().ListSnapshots(gomock.Any(), "owner-7").Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/plans", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "owner-7"))

	rec := httptest.NewRecorder()
	newRouter(t, repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestRouter_RejectsNonJSONBodies(t *testing.T) {
	ctrl := gomock.NewController(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/plans/evaluate", strings.NewReader("asset_type=housing"))
	req.Header.Set("Authorization", "Bearer "+token(t, "owner-7"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	newRouter(t, plan.NewMockRepository(ctrl)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	ctrl := gomock.NewController(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/plans", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	newRouter(t, plan.NewMockRepository(ctrl)).ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Healthz(t *testing.T) {
	ctrl := gomock.NewController(t)

	rec := httptest.NewRecorder()
	newRouter(t, plan.NewMockRepository(ctrl)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
