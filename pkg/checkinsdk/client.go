package checkinsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Client talks to the check-in service. It keeps a cookie jar so session
// cookies set by Register, Signin and RotateToken carry across calls, and an
// optional opaque credential for bearer-authenticated endpoints.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Credential is the opaque "userID:secret" bearer credential minted at
	// registration. Required for Checkin and Signin.
	Credential string
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}
}

// url builds a complete URL by appending the path to the base URL.
func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// doRequest performs an HTTP request with the client's HTTP client.
func (c *Client) doRequest(
	ctx context.Context,
	method, path string,
	body io.Reader,
	headers map[string]string,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	return resp, nil
}

// doJSON performs a request with a JSON-encoded body.
func (c *Client) doJSON(
	ctx context.Context,
	method, path string,
	payload any,
	headers map[string]string,
) (*http.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	if headers == nil {
		headers = map[string]string{}
	}
	headers["Content-Type"] = "application/json"

	return c.doRequest(ctx, method, path, bytes.NewReader(data), headers)
}

// bearerHeaders returns the Authorization header carrying the credential.
func (c *Client) bearerHeaders() map[string]string {
	return map[string]string{"Authorization": "Bearer " + c.Credential}
}

// decodeJSON decodes a JSON response into the target.
// Returns a typed *APIError if the status is not the expected one.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// checkStatusNoContent returns a typed error if the status is not 204 No Content.
func checkStatusNoContent(resp *http.Response) error {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(resp, bodyBytes)
	}

	return nil
}

// Register creates an account. On success the returned credential is stored
// on the client and the session cookie lands in the jar.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/users/me", req, nil)
	if err != nil {
		return nil, err
	}

	var out RegisterResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}

	c.Credential = out.IDToken
	return &out, nil
}

// Signin exchanges the stored credential for a session cookie.
func (c *Client) Signin(ctx context.Context) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/users/me/signin", nil, c.bearerHeaders())
	if err != nil {
		return nil, err
	}

	var out User
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// Signout clears the session cookie.
func (c *Client) Signout(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/users/me/signout", nil, nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// Me returns the session owner's profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/users/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var out User
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// UpdateMe applies a partial update to the session owner's profile.
func (c *Client) UpdateMe(ctx context.Context, req UpdateUserRequest) (*User, error) {
	resp, err := c.doJSON(ctx, http.MethodPatch, "/users/me", req, nil)
	if err != nil {
		return nil, err
	}

	var out User
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// RotateToken reissues the bearer credential. The previous credential stops
// working; the new one is stored on the client and returned.
func (c *Client) RotateToken(ctx context.Context) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/users/me/token", nil, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", parseErrorResponse(resp, bodyBytes)
	}

	c.Credential = string(bodyBytes)
	return c.Credential, nil
}

// Checkin records one presence signal using the stored credential.
func (c *Client) Checkin(ctx context.Context) (*CheckinResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/checkins", nil, c.bearerHeaders())
	if err != nil {
		return nil, err
	}

	var out CheckinResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}

	return &out, nil
}

// ListUsers returns the public user directory.
func (c *Client) ListUsers(ctx context.Context) ([]DirectoryEntry, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/users", nil, nil)
	if err != nil {
		return nil, err
	}

	var out []DirectoryEntry
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return out, nil
}

// GetUser returns a profile by screen name (without the @ prefix).
func (c *Client) GetUser(ctx context.Context, screenName string) (*Profile, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/users/@"+screenName, nil, nil)
	if err != nil {
		return nil, err
	}

	var out Profile
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/livez", nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}

	return &health, nil
}

// GetReadiness checks if the service is ready.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/readyz", nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}

	return &health, nil
}
