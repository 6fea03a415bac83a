package checkin_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yokohama-dev/tsukuba/pkg/checkinsdk"
)

func TestHourlyCheckinLimit(t *testing.T) {
	baseURL := setupCheckinContainer(t, map[string]string{
		"CHECKIN_RATE_LIMIT": "3",
	})

	client, _ := registerUser(t, baseURL, checkinsdk.RegisterRequest{
		ScreenName: "rl_worker",
		Visibility: "public",
		Listed:     true,
	})

	for i := 1; i <= 3; i++ {
		resp, err := client.Checkin(t.Context())
		require.NoError(t, err)
		require.Equal(t, i, resp.Count)
	}

	_, err := client.Checkin(t.Context())
	requireAPIError(t, err, http.StatusTooManyRequests, "")

	// The rejected signal left the bucket untouched.
	profile, err := client.GetUser(t.Context(), "rl_worker")
	require.NoError(t, err)
	require.Len(t, profile.Checkins, 1)
	require.Equal(t, 3, profile.Checkins[0].Count)
}

func TestHTTPRateLimitOnRegistration(t *testing.T) {
	baseURL := setupCheckinContainer(t, map[string]string{
		// Tighten the strict profile so the limiter trips quickly.
		"RATELIMIT_STRICT_REQUESTS":   "2",
		"RATELIMIT_STRICT_WINDOW_SEC": "60",
		"RATELIMIT_STRICT_BURST":      "2",
	})

	register := func(screenName string) error {
		client := checkinsdk.NewClient(baseURL)
		_, err := client.Register(t.Context(), checkinsdk.RegisterRequest{
			ScreenName: screenName,
			Visibility: "public",
		})
		return err
	}

	require.NoError(t, register("burst_one"))
	require.NoError(t, register("burst_two"))

	err := register("burst_three")
	requireAPIError(t, err, http.StatusTooManyRequests, "")
}
