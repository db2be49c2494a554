package heysdk

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heymumma/heymumma/pkg/httpx"
)

func TestLoginAndMe(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/login", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		if r.FormValue("password") != "pw" {
			ErrInvalidCredentials.WriteError(w)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, SessionResponse{
			AccessToken: "tok",
			TokenType:   "Bearer",
			ExpiresIn:   60,
			Scope:       "profile:read profile:write",
		})
	})
	mux.HandleFunc("GET /v1/me", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		httpx.WriteJSON(w, http.StatusOK, AccountResponse{Email: "a@x.com", Name: "A", ProfileCompleted: true})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	ctx := context.Background()
	client := NewSDKClient(srv.URL + "/")

	_, err := client.Login(ctx, "a@x.com", "nope")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, ErrorCodeInvalidCredentials, apiErr.Code)

	session, err := client.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	require.False(t, session.ProfileCompleted())
	require.True(t, session.HasScope(ScopeProfileRead))

	me, err := session.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", me.Email)
	require.True(t, session.ProfileCompleted())

	// predict scope was not granted, so the call never leaves the client.
	_, err = session.PredictMaternalRisk(ctx, MaternalRiskRequest{})
	require.ErrorContains(t, err, `missing scope "predict"`)
}

func TestParseErrorResponseFallback(t *testing.T) {
	t.Parallel()

	resp := &http.Response{StatusCode: http.StatusBadGateway}
	err := parseErrorResponse(resp, []byte("<html>bad gateway</html>"))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, ErrorCodeServerError, apiErr.Code)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)

	require.NoError(t, parseErrorResponse(&http.Response{StatusCode: http.StatusOK}, nil))
}

func TestValidationErrorRoundTrip(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	NewValidationError(map[string]string{"age": "must be between 18 and 50"}).WriteError(rec)

	err := parseErrorResponse(rec.Result(), rec.Body.Bytes())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, ErrorCodeValidation, apiErr.Code)
	require.Equal(t, "must be between 18 and 50", apiErr.Fields["age"])
}

func TestFeatureVectorsFollowModelOrder(t *testing.T) {
	t.Parallel()

	m := MaternalRiskRequest{Age: 1, DiastolicBP: 2, BloodSugar: 3, BodyTemp: 4, HeartRate: 5}
	require.Equal(t, []float64{1, 2, 3, 4, 5}, m.Vector())

	f := FetalHealthRequest{BaselineValue: 120, HistogramTendency: 1}
	v := f.Vector()
	require.Len(t, v, 21)
	require.Equal(t, 120.0, v[0])
	require.Equal(t, 1.0, v[20])
}
