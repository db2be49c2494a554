package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/heymumma/heymumma/internal/account/store"
)

func testConfig(t *testing.T) Config {
	dir := t.TempDir()
	return Config{
		Issuer:               "heymumma-test",
		DatabaseFile:         filepath.Join(dir, "users.db"),
		PepperFile:           filepath.Join(dir, "pepper"),
		StoreRecreatePause:   time.Millisecond,
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	}
}

func TestLoadConfigDefaultsAndOverrides(t *testing.T) {
	t.Setenv("HEYMUMMA_DATABASE_FILE", "")
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_RECREATE_PAUSE", "250ms")
	t.Setenv("HOUSEKEEPING_INTERVAL", "90")
	t.Setenv("HEYMUMMA_NUM_KEYS", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "users.db", cfg.DatabaseFile)
	require.Equal(t, "heymumma", cfg.Issuer)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, 250*time.Millisecond, cfg.StoreRecreatePause)
	require.Equal(t, 90*time.Second, cfg.HousekeepingInterval)
	require.Equal(t, 2, cfg.NumKeys)
	require.Equal(t, 3, cfg.StoreRecreateAttempts)
}

func TestNewServesReadyz(t *testing.T) {
	application, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.db.Close() })

	rec := httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Contains(t, rec.Body.String(), `"schema_mode":"flag"`)

	// Models are optional.
	require.Nil(t, application.maternal)
	require.Nil(t, application.fetal)
}

func TestNewFailsWhenStoreUnavailable(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatabaseFile = filepath.Join(t.TempDir(), "missing", "dir", "users.db")

	_, err := New(context.Background(), cfg)
	require.ErrorIs(t, err, store.ErrStoreUnavailable)
}

func TestNewRejectsBadModelFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaternalModel = filepath.Join(t.TempDir(), "nope.json")

	_, err := New(context.Background(), cfg)
	require.ErrorContains(t, err, "maternal model")
}
