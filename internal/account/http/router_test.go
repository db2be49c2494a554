package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/heymumma/heymumma/internal/account/metrics"
	"github.com/heymumma/heymumma/internal/account/service"
	"github.com/heymumma/heymumma/internal/account/store/drivers/sqlite"
	"github.com/heymumma/heymumma/internal/predict"
	"github.com/heymumma/heymumma/pkg/cryptox"
	"github.com/heymumma/heymumma/pkg/heysdk"
	"github.com/heymumma/heymumma/pkg/httpx"
	"github.com/heymumma/heymumma/pkg/jwtx"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "accounthttp")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

var today = time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

// riskTree splits on blood sugar, then heart rate.
func riskTree() *predict.Tree {
	return &predict.Tree{
		NFeatures:     5,
		Classes:       []int{0, 1, 2},
		ChildrenLeft:  []int{1, -1, 3, -1, -1},
		ChildrenRight: []int{2, -1, 4, -1, -1},
		Feature:       []int{2, -2, 4, -2, -2},
		Threshold:     []float64{7.5, -2, 96.5, -2, -2},
		Value:         [][]float64{{3, 4, 5}, {3, 0, 0}, {0, 4, 5}, {0, 4, 0}, {0, 0, 5}},
	}
}

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	st := sqlite.NewStore(filepath.Join(t.TempDir(), "users.db"), sqlite.Options{})
	require.NoError(t, st.EnsureReady(context.Background()))
	t.Cleanup(func() { _ = st.Close() })

	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "heymumma-test"})
	require.NoError(t, err)

	reg := metrics.NewRegistry()
	m := metrics.New(reg)

	r := NewRouter(km.KeySet, km.Verifier, "test", st, slog.New(slog.DiscardHandler))
	r.AccountService = &service.AccountService{Store: st, Metrics: m}
	r.SessionService = &service.SessionService{KeyManager: km, Issuer: "heymumma-test"}
	r.MaternalModel = predict.NewMaternalModel(riskTree())
	r.Metrics = m
	r.Gatherer = reg
	r.Now = func() time.Time { return today }
	r.ApplyRoutes()
	return r
}

func do(t *testing.T, h http.Handler, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	return do(t, h, http.MethodPost, path, "", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

func sendJSON(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	return do(t, h, method, path, token, strings.NewReader(body), "application/json")
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func signup(t *testing.T, h http.Handler, email string) heysdk.SessionResponse {
	t.Helper()
	rec := postForm(t, h, "/v1/signup", url.Values{
		"email":            {email},
		"name":             {"Ann"},
		"password":         {"pw"},
		"confirm_password": {"pw"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[heysdk.SessionResponse](t, rec)
}

func TestSignupAndLogin(t *testing.T) {
	r := newTestRouter(t)

	sess := signup(t, r, "a@x.com")
	require.NotEmpty(t, sess.AccessToken)
	require.Equal(t, "Bearer", sess.TokenType)
	require.False(t, sess.ProfileCompleted)
	require.Contains(t, sess.Scope, service.ScopePredict)

	rec := postForm(t, r, "/v1/signup", url.Values{
		"email": {"a@x.com"}, "name": {"Other"}, "password": {"x"}, "confirm_password": {"x"},
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, heysdk.ErrorCodeAccountExists, decode[heysdk.APIError](t, rec).Code)

	rec = postForm(t, r, "/v1/signup", url.Values{
		"email": {"b@x.com"}, "name": {"Bea"}, "password": {"x"}, "confirm_password": {"y"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postForm(t, r, "/v1/signup", url.Values{"email": {"c@x.com"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	apiErr := decode[heysdk.APIError](t, rec)
	require.Equal(t, heysdk.ErrorCodeValidation, apiErr.Code)
	require.Contains(t, apiErr.Fields, "name")
	require.Contains(t, apiErr.Fields, "password")

	rec = postForm(t, r, "/v1/login", url.Values{"email": {"a@x.com"}, "password": {"wrong"}})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, heysdk.ErrorCodeInvalidCredentials, decode[heysdk.APIError](t, rec).Code)

	rec = postForm(t, r, "/v1/login", url.Values{"email": {"nobody@x.com"}, "password": {"pw"}})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postForm(t, r, "/v1/login", url.Values{"email": {"a@x.com"}, "password": {"pw"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, decode[heysdk.SessionResponse](t, rec).AccessToken)
}

func TestLoginRateLimitedPerEmail(t *testing.T) {
	r := newTestRouter(t)
	signup(t, r, "a@x.com")

	form := url.Values{"email": {"a@x.com"}, "password": {"wrong"}}
	for range httpx.AuthLimit.Burst {
		require.Equal(t, http.StatusUnauthorized, postForm(t, r, "/v1/login", form).Code)
	}
	rec := postForm(t, r, "/v1/login", form)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))

	// A different email from the same address has its own bucket.
	rec = postForm(t, r, "/v1/login", url.Values{"email": {"b@x.com"}, "password": {"pw"}})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileFlow(t *testing.T) {
	r := newTestRouter(t)
	token := signup(t, r, "a@x.com").AccessToken

	require.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodGet, "/v1/me", "", nil, "").Code)
	require.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodGet, "/v1/me", "not-a-jwt", nil, "").Code)

	rec := do(t, r, http.MethodGet, "/v1/me", token, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[heysdk.AccountResponse](t, rec)
	require.Equal(t, "a@x.com", me.Email)
	require.Nil(t, me.Age)
	require.NotContains(t, rec.Body.String(), "password")

	rec = do(t, r, http.MethodGet, "/v1/me/pregnancy", token, nil, "")
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, heysdk.ErrorCodeDueDateMissing, decode[heysdk.APIError](t, rec).Code)

	rec = sendJSON(t, r, http.MethodPatch, "/v1/me/profile", token, `{"age": 60, "due_date": "10/06/2025"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields := decode[heysdk.APIError](t, rec).Fields
	require.Contains(t, fields, "age")
	require.Contains(t, fields, "due_date")

	rec = sendJSON(t, r, http.MethodPatch, "/v1/me/profile", token, `{"shoe_size": 6}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = sendJSON(t, r, http.MethodPatch, "/v1/me/profile", token, `{"age": 30, "due_date": "2025-06-10"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	me = decode[heysdk.AccountResponse](t, rec)
	require.Equal(t, 30, *me.Age)
	require.False(t, me.ProfileCompleted)

	rec = do(t, r, http.MethodGet, "/v1/me/pregnancy", token, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	p := decode[heysdk.PregnancyResponse](t, rec)
	require.Equal(t, 160, p.DaysRemaining)
	require.Equal(t, 120, p.DaysPregnant)
	require.Equal(t, 17, p.WeeksPregnant)
	require.Equal(t, 2, p.Trimester)
	require.Equal(t, 17, p.Guide.Week)

	rec = sendJSON(t, r, http.MethodPatch, "/v1/me/profile", token, `{"height": 165, "weight": 62.5, "pregnancies": 0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decode[heysdk.AccountResponse](t, rec).ProfileCompleted)

	rec = do(t, r, http.MethodGet, "/v1/me/profile/status", token, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decode[heysdk.ProfileStatusResponse](t, rec).ProfileCompleted)

	// An empty update changes nothing and still succeeds.
	rec = sendJSON(t, r, http.MethodPatch, "/v1/me/profile", token, `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decode[heysdk.AccountResponse](t, rec).ProfileCompleted)
}

func TestGuideRoutes(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodGet, "/v1/guide/weeks/12", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	w := decode[heysdk.GuideWeek](t, rec)
	require.Equal(t, 12, w.Week)
	require.Equal(t, 1, w.Trimester)
	require.Equal(t, "lime", w.SizeComparison)

	for _, bad := range []string{"0", "41", "twelve"} {
		require.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/v1/guide/weeks/"+bad, "", nil, "").Code, bad)
	}

	rec = do(t, r, http.MethodGet, "/v1/guide/milestones", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[heysdk.MilestonesResponse](t, rec).Milestones, 3)
}

func TestPredictRoutes(t *testing.T) {
	r := newTestRouter(t)
	token := signup(t, r, "a@x.com").AccessToken

	body := `{"age": 42, "diastolic_bp": 95, "blood_sugar": 11, "body_temp": 99.5, "heart_rate": 100}`
	require.Equal(t, http.StatusUnauthorized,
		sendJSON(t, r, http.MethodPost, "/v1/predict/maternal-risk", "", body).Code)

	rec := sendJSON(t, r, http.MethodPost, "/v1/predict/maternal-risk", token, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[heysdk.PredictionResponse](t, rec)
	require.Equal(t, "maternal", res.Model)
	require.Equal(t, 2, res.Label)
	require.Equal(t, "high", res.Level)

	rec = sendJSON(t, r, http.MethodPost, "/v1/predict/fetal-health", token, `{"baseline_value": 120}`)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, heysdk.ErrorCodeModelUnavailable, decode[heysdk.APIError](t, rec).Code)
}

func TestSystemRoutes(t *testing.T) {
	r := newTestRouter(t)

	require.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/livez", "", nil, "").Code)

	rec := do(t, r, http.MethodGet, "/readyz", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[heysdk.HealthResponse](t, rec)
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "flag", health.Checks.SchemaMode)

	rec = do(t, r, http.MethodGet, "/.well-known/jwks.json", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	jwks := decode[heysdk.JWKSResponse](t, rec)
	require.Len(t, jwks.Keys, 2)
	require.Equal(t, "OKP", jwks.Keys[0].Kty)

	rec = do(t, r, http.MethodGet, "/metrics", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `heymumma_http_request_duration_seconds_count{code="200",route="GET /livez"}`)
}
