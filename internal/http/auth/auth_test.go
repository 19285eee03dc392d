package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finplan/internal/http/auth"
)

const secret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()

	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)

	return s
}

func validClaims() jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   "owner-42",
		Issuer:    "finplan",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
}

func TestMiddleware(t *testing.T) {
	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	noSubject := validClaims()
	noSubject.Subject = ""

	otherIssuer := validClaims()
	otherIssuer.Issuer = "someone-else"

	type testCase struct {
		name       string
		header     string
		wantStatus int
		wantOwner  string
	}

	tests := []testCase{
		{
			name:       "Valid",
			header:     "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), validClaims()),
			wantStatus: http.StatusOK,
			wantOwner:  "owner-42",
		},
		{name: "MissingHeader", header: "", wantStatus: http.StatusUnauthorized},
		{name: "WrongScheme", header: "Token abc", wantStatus: http.StatusUnauthorized},
		{
			name:       "WrongSecret",
			header:     "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("other"), validClaims()),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Expired",
			header:     "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), expired),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "NoSubject",
			header:     "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), noSubject),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "WrongIssuer",
			header:     "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), otherIssuer),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "WrongAlgorithm",
			header:     "Bearer " + sign(t, jwt.SigningMethodHS384, []byte(secret), validClaims()),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotOwner string

			h := auth.NewVerifier(secret, "finplan").Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotOwner, _ = auth.OwnerID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantOwner, gotOwner)
		})
	}
}

func TestOwnerID_Missing(t *testing.T) {
	_, ok := auth.OwnerID(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}
