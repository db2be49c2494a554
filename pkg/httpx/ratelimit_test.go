package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/heymumma/heymumma/pkg/httpx"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		want   string
	}{
		{"remote addr", nil, "192.168.1.1"},
		{"forwarded", map[string]string{"X-Forwarded-For": "203.0.113.1, 10.0.0.1"}, "203.0.113.1"},
		{"real ip", map[string]string{"X-Real-IP": "203.0.113.2"}, "203.0.113.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.168.1.1:12345"
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			require.Equal(t, tt.want, httpx.ClientIP(req))
		})
	}
}

func TestJoinKeysSkipsEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?email=A@X.com", nil)
	req.RemoteAddr = "10.0.0.1:1"

	key := httpx.JoinKeys(httpx.ClientIP, httpx.AccountKey, httpx.FormFieldKey("email"))
	require.Equal(t, "10.0.0.1|a@x.com", key(req))
}

func TestRateLimitBlocksAfterBurst(t *testing.T) {
	h := httpx.RateLimitByIP(httpx.RateLimitConfig{Requests: 2, Window: time.Hour, Burst: 2})(ok)

	call := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusOK, call("10.0.0.1").Code)
	require.Equal(t, http.StatusOK, call("10.0.0.1").Code)

	rec := call("10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.Contains(t, rec.Body.String(), "rate_limit_exceeded")

	require.Equal(t, http.StatusOK, call("10.0.0.2").Code)
}

func TestRateLimitByIPAndField(t *testing.T) {
	h := httpx.RateLimitByIPAndField(httpx.RateLimitConfig{Requests: 1, Window: time.Hour, Burst: 1}, "email")(ok)

	login := func(email string) int {
		form := url.Values{"email": {email}}
		req := httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.RemoteAddr = "10.0.0.1:1000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, login("a@x.com"))
	require.Equal(t, http.StatusTooManyRequests, login("a@x.com"))
	require.Equal(t, http.StatusOK, login("b@x.com"))
}

func TestRateLimitFromEnv(t *testing.T) {
	t.Setenv("RATELIMIT_TEST_REQUESTS", "7")
	t.Setenv("RATELIMIT_TEST_WINDOW_SEC", "30")
	t.Setenv("RATELIMIT_TEST_BURST", "-1")

	cfg := httpx.RateLimitFromEnv("TEST", httpx.RateLimitConfig{Requests: 1, Window: time.Minute, Burst: 3})
	require.Equal(t, 7, cfg.Requests)
	require.Equal(t, 30*time.Second, cfg.Window)
	require.Equal(t, 3, cfg.Burst)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(ok, mark("outer"), mark("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner"}, order)
}
