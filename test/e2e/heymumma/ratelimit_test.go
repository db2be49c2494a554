package heymumma_test

import (
	"net/http"
	"testing"

	"github.com/heymumma/heymumma/pkg/heysdk"
)

// TestRateLimitLogin verifies login allows 5 quick attempts per address and
// email before answering 429.
func TestRateLimitLogin(t *testing.T) {
	baseURL := setupContainer(t, containerOptions{defaultRateLimits: true})
	client := heysdk.NewSDKClient(baseURL)
	ctx := t.Context()

	for i := range 5 {
		_, err := client.Login(ctx, "nobody@x.com", "wrong")
		requireAPIError(t, err, http.StatusUnauthorized, heysdk.ErrorCodeInvalidCredentials)
		t.Logf("attempt %d rejected as expected", i+1)
	}

	_, err := client.Login(ctx, "nobody@x.com", "wrong")
	requireAPIError(t, err, http.StatusTooManyRequests, heysdk.ErrorCodeRateLimited)
}
