package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/heymumma/heymumma/pkg/httpx"
	"github.com/heymumma/heymumma/pkg/jwtx"
)

func TestAuthnAndScopes(t *testing.T) {
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "iss"})
	require.NoError(t, err)

	token, err := km.Signer().Sign(jwtx.NewAccessClaims("a@x.com", "Ann", []string{"profile:read"}, time.Hour, "iss", time.Now()))
	require.NoError(t, err)

	var seen, sid string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = httpx.EmailFromContext(r.Context())
		if c, ok := httpx.ClaimsFromContext(r.Context()); ok {
			sid = c.SID
		}
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		header string
		scope  string
		want   int
	}{
		{"no header", "", "profile:read", http.StatusUnauthorized},
		{"garbage", "Bearer nope", "profile:read", http.StatusUnauthorized},
		{"wrong scope", "Bearer " + token, "predict", http.StatusForbidden},
		{"ok", "Bearer " + token, "profile:read", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen, sid = "", ""
			h := httpx.Chain(inner, httpx.AuthnMiddleware(km.Verifier), httpx.RequireAnyScope(tt.scope))

			req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusNoContent {
				require.Equal(t, "a@x.com", seen)
				require.Len(t, sid, 26)
			}
		})
	}
}
