package checkin_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/yokohama-dev/tsukuba/pkg/checkinsdk"
)

/*
 * Common constants and helper functions for check-in service end-to-end
 * tests. This includes container setup, service operations, and assertions.
 */

const testImageName = "checkin-test:latest"

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Checkin Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Checkin Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image if it doesn't exist.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/checkin/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// baseEnv is the container environment shared by all setups. Rate limits are
// relaxed so rapid test requests do not trip the HTTP limiter; the dedicated
// rate limit tests override what they need.
func baseEnv() map[string]string {
	return map[string]string{
		"CHECKIN_DATABASE_FILE": "/checkin.db",
		"CHECKIN_TIMEZONE":      "UTC",
		"CHECKIN_ISSUER":        "checkin-e2e",
		"ENV":                   "test",
		"LOG_LEVEL":             "info",
		"LOG_FORMAT":            "json",

		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_WINDOW_SEC": "60",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
	}
}

// setupCheckinContainer starts the service and returns its base URL. The
// extra map overrides or extends the base environment.
func setupCheckinContainer(t *testing.T, extra map[string]string) string {
	t.Helper()
	ctx := context.Background()

	env := baseEnv()
	for k, v := range extra {
		env[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

// registerUser creates an account through the API and returns a client
// holding its credential and session cookie.
func registerUser(t *testing.T, baseURL string, req checkinsdk.RegisterRequest) (*checkinsdk.Client, *checkinsdk.RegisterResponse) {
	t.Helper()

	client := checkinsdk.NewClient(baseURL)
	resp, err := client.Register(t.Context(), req)
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)
	require.NotEmpty(t, resp.IDToken)

	return client, resp
}

// requireAPIError asserts err is an *APIError with the given status and,
// when typ is non-empty, the given error subtype.
func requireAPIError(t *testing.T, err error, status int, typ string) {
	t.Helper()

	require.Error(t, err)
	apiErr, ok := err.(*checkinsdk.APIError)
	require.True(t, ok, "expected *checkinsdk.APIError, got %T: %v", err, err)
	require.Equal(t, status, apiErr.StatusCode)
	if typ != "" {
		require.Equal(t, typ, apiErr.Type)
	}
}
