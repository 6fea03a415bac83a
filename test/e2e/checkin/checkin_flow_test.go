package checkin_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yokohama-dev/tsukuba/pkg/checkinsdk"
)

func TestHealthEndpoints(t *testing.T) {
	baseURL := setupCheckinContainer(t, nil)
	client := checkinsdk.NewClient(baseURL)

	live, err := client.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.NotEmpty(t, live.Version)

	ready, err := client.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
}

func TestRegisterAndAccountLifecycle(t *testing.T) {
	baseURL := setupCheckinContainer(t, nil)

	client, created := registerUser(t, baseURL, checkinsdk.RegisterRequest{
		ScreenName: "e2e_alice",
		Name:       "Alice",
		Message:    "hello",
		Visibility: "public",
		Listed:     true,
	})

	t.Run("me returns the fresh profile", func(t *testing.T) {
		me, err := client.Me(t.Context())
		require.NoError(t, err)
		require.Equal(t, created.ID, me.ID)
		require.Equal(t, "e2e_alice", me.ScreenName)
	})

	t.Run("duplicate screen name is rejected", func(t *testing.T) {
		other := checkinsdk.NewClient(baseURL)
		_, err := other.Register(t.Context(), checkinsdk.RegisterRequest{
			ScreenName: "e2e_alice",
			Visibility: "public",
		})
		requireAPIError(t, err, http.StatusBadRequest, checkinsdk.ErrorTypeScreenNameAlreadyUsed)
	})

	t.Run("invalid screen name is rejected", func(t *testing.T) {
		other := checkinsdk.NewClient(baseURL)
		_, err := other.Register(t.Context(), checkinsdk.RegisterRequest{
			ScreenName: "No",
			Visibility: "public",
		})
		requireAPIError(t, err, http.StatusBadRequest, checkinsdk.ErrorTypeInvalidScreenName)
	})

	t.Run("patch updates the profile", func(t *testing.T) {
		name := "Alice Updated"
		displaysPast := true
		me, err := client.UpdateMe(t.Context(), checkinsdk.UpdateUserRequest{
			Name:         &name,
			DisplaysPast: &displaysPast,
		})
		require.NoError(t, err)
		require.Equal(t, "Alice Updated", me.Name)
		require.True(t, me.DisplaysPast)
	})

	t.Run("token rotation invalidates the old credential", func(t *testing.T) {
		old := client.Credential

		rotated, err := client.RotateToken(t.Context())
		require.NoError(t, err)
		require.NotEqual(t, old, rotated)

		stale := checkinsdk.NewClient(baseURL)
		stale.Credential = old
		_, err = stale.Signin(t.Context())
		requireAPIError(t, err, http.StatusUnauthorized, "")

		fresh := checkinsdk.NewClient(baseURL)
		fresh.Credential = rotated
		me, err := fresh.Signin(t.Context())
		require.NoError(t, err)
		require.Equal(t, created.ID, me.ID)
	})

	t.Run("signout drops the session", func(t *testing.T) {
		require.NoError(t, client.Signout(t.Context()))

		_, err := client.Me(t.Context())
		requireAPIError(t, err, http.StatusUnauthorized, "")
	})
}

func TestCheckinFlow(t *testing.T) {
	baseURL := setupCheckinContainer(t, map[string]string{
		// Container-network origins count as internal for this test.
		"CHECKIN_INTERNAL_NETWORKS": "0.0.0.0/0",
	})

	client, created := registerUser(t, baseURL, checkinsdk.RegisterRequest{
		ScreenName:   "e2e_worker",
		Name:         "Worker",
		Visibility:   "public",
		Listed:       true,
		DisplaysPast: true,
	})

	t.Run("repeated signals reuse the hour bucket", func(t *testing.T) {
		first, err := client.Checkin(t.Context())
		require.NoError(t, err)
		require.Equal(t, 1, first.Count)

		second, err := client.Checkin(t.Context())
		require.NoError(t, err)
		require.Equal(t, 2, second.Count)
	})

	t.Run("checkin requires a valid credential", func(t *testing.T) {
		anon := checkinsdk.NewClient(baseURL)
		_, err := anon.Checkin(t.Context())
		requireAPIError(t, err, http.StatusUnauthorized, "")

		anon.Credential = created.ID + ":wrong-secret"
		_, err = anon.Checkin(t.Context())
		requireAPIError(t, err, http.StatusUnauthorized, "")
	})

	t.Run("profile exposes history and summary", func(t *testing.T) {
		profile, err := client.GetUser(t.Context(), "e2e_worker")
		require.NoError(t, err)
		require.Equal(t, created.ID, profile.ID)
		require.NotEmpty(t, profile.Checkins)

		bucket := profile.Checkins[0]
		require.Equal(t, 2, bucket.Count)
		require.Equal(t, "internal", bucket.LocationID)

		require.Equal(t, "internal", profile.Summary.Status)
		require.Equal(t, 1, profile.Summary.MonthHours)
		require.Equal(t, 1, profile.Summary.MonthDays)
	})

	t.Run("directory lists the user with its status", func(t *testing.T) {
		entries, err := client.ListUsers(t.Context())
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, "e2e_worker", entries[0].ScreenName)
		require.Equal(t, "internal", entries[0].Status)
	})

	t.Run("unknown profile is a 404", func(t *testing.T) {
		_, err := client.GetUser(t.Context(), "nobody_here")
		requireAPIError(t, err, http.StatusNotFound, checkinsdk.ErrorTypeUserNotFound)
	})
}
