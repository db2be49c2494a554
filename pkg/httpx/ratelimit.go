package httpx

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/heymumma/heymumma/pkg/slogx"
)

// RateLimitConfig defines a token bucket refilled at Requests per Window.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	Burst    int
}

// Profiles used by the router. Each can be overridden with
// RATELIMIT_{NAME}_REQUESTS, RATELIMIT_{NAME}_WINDOW_SEC and RATELIMIT_{NAME}_BURST.
var (
	// AuthLimit guards signup and login.
	AuthLimit = RateLimitConfig{Requests: 5, Window: time.Minute, Burst: 5}

	// AccountLimit guards authenticated profile and prediction calls.
	AccountLimit = RateLimitConfig{Requests: 60, Window: time.Minute, Burst: 20}

	// PublicLimit guards the static guide.
	PublicLimit = RateLimitConfig{Requests: 600, Window: time.Minute, Burst: 100}
)

func init() {
	AuthLimit = RateLimitFromEnv("AUTH", AuthLimit)
	AccountLimit = RateLimitFromEnv("ACCOUNT", AccountLimit)
	PublicLimit = RateLimitFromEnv("PUBLIC", PublicLimit)
}

// RateLimitFromEnv overlays positive integer RATELIMIT_{name}_* values on def.
func RateLimitFromEnv(name string, def RateLimitConfig) RateLimitConfig {
	read := func(field string) (int, bool) {
		n, err := strconv.Atoi(os.Getenv("RATELIMIT_" + name + "_" + field))
		return n, err == nil && n > 0
	}

	cfg := def
	if n, ok := read("REQUESTS"); ok {
		cfg.Requests = n
	}
	if n, ok := read("WINDOW_SEC"); ok {
		cfg.Window = time.Duration(n) * time.Second
	}
	if n, ok := read("BURST"); ok {
		cfg.Burst = n
	}
	return cfg
}

// KeyExtractor picks the bucket a request is charged to.
type KeyExtractor func(*http.Request) string

// ClientIP returns the first X-Forwarded-For hop, X-Real-IP, or the remote host.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// AccountKey keys on the authenticated email.
func AccountKey(r *http.Request) string {
	email, _ := EmailFromContext(r.Context())
	return email
}

// FormFieldKey keys on a form value such as the login email.
func FormFieldKey(field string) KeyExtractor {
	return func(r *http.Request) string {
		if err := r.ParseForm(); err != nil {
			return ""
		}
		return strings.ToLower(strings.TrimSpace(r.FormValue(field)))
	}
}

// JoinKeys concatenates the non-empty keys of each extractor.
func JoinKeys(extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(extractors))
		for _, ex := range extractors {
			if k := ex(r); k != "" {
				parts = append(parts, k)
			}
		}
		return strings.Join(parts, "|")
	}
}

type limiterSet struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
	swept   time.Time
}

func (s *limiterSet) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if time.Since(s.swept) > 5*time.Minute {
		// Full buckets have been idle long enough to forget.
		for k, l := range s.buckets {
			if l.Tokens() >= float64(s.burst) {
				delete(s.buckets, k)
			}
		}
		s.swept = time.Now()
	}

	l, ok := s.buckets[key]
	if !ok {
		l = rate.NewLimiter(s.limit, s.burst)
		s.buckets[key] = l
	}
	return l
}

// RateLimit rejects requests with 429 once the bucket for key is empty.
func RateLimit(cfg RateLimitConfig, key KeyExtractor) Middleware {
	set := &limiterSet{
		buckets: make(map[string]*rate.Limiter),
		limit:   rate.Limit(float64(cfg.Requests) / cfg.Window.Seconds()),
		burst:   cfg.Burst,
		swept:   time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}

			l := set.get(k)
			if l.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			res := l.Reserve()
			retry := max(int(res.Delay().Seconds()), 1)
			res.Cancel()

			slogx.FromContext(r.Context()).Warn("rate limit exceeded",
				"key", k,
				"path", r.URL.Path,
				"retry_after", retry,
			)

			w.Header().Set("Retry-After", strconv.Itoa(retry))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
			WriteJSON(w, http.StatusTooManyRequests, map[string]string{
				"error":             "rate_limit_exceeded",
				"error_description": "Too many requests. Please try again later.",
			})
		})
	}
}

// RateLimitByIP limits per client address.
func RateLimitByIP(cfg RateLimitConfig) Middleware {
	return RateLimit(cfg, ClientIP)
}

// RateLimitByAccount limits per authenticated account, falling back to the
// client address.
func RateLimitByAccount(cfg RateLimitConfig) Middleware {
	return RateLimit(cfg, JoinKeys(AccountKey, ClientIP))
}

// RateLimitByIPAndField limits per client address and form field, e.g. the
// email being logged into.
func RateLimitByIPAndField(cfg RateLimitConfig, field string) Middleware {
	return RateLimit(cfg, JoinKeys(ClientIP, FormFieldKey(field)))
}
