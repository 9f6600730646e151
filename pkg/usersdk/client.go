// Package usersdk is the client for the usergate service. It is what a
// downstream collaborator with no credential store of its own uses to
// delegate bearer-token checks.
package usersdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// AuthenticationHeader carries tokens in both directions.
const AuthenticationHeader = "Authentication"

// Client talks to a usergate instance. Origin is sent with every
// request and must match the origin embedded in tokens.
type Client struct {
	BaseURL    string
	Origin     string
	HTTPClient *http.Client
}

// NewClient returns a Client for the service at baseURL, acting as the
// given client application origin.
func NewClient(baseURL, origin string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Origin:  origin,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login exchanges a credential pair for a session token.
func (c *Client) Login(ctx context.Context, login, password string) (string, error) {
	body, err := json.Marshal(map[string]string{"login": login, "password": password})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/login", strings.NewReader(string(body)))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", c.Origin)

	return c.doTokenRequest(req)
}

// Logout trades the session token for a no-lifetime logout token.
func (c *Client) Logout(ctx context.Context, token string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/logout", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set(AuthenticationHeader, "Bearer "+token)
	req.Header.Set("Origin", c.Origin)

	return c.doTokenRequest(req)
}

// Authenticate asks the service whether token currently represents a
// connected user for this client's origin. A nil error means yes.
func (c *Client) Authenticate(ctx context.Context, token string) error {
	q := url.Values{}
	q.Set("jwt", token)
	q.Set("origin", c.Origin)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/authenticate?"+q.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer drainClose(resp.Body)

	if resp.StatusCode != http.StatusNoContent {
		return decodeError(resp)
	}
	return nil
}

// doTokenRequest performs req and extracts the bearer token from the
// Authentication response header.
func (c *Client) doTokenRequest(req *http.Request) (string, error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer drainClose(resp.Body)

	if resp.StatusCode != http.StatusNoContent {
		return "", decodeError(resp)
	}

	header := resp.Header.Get(AuthenticationHeader)
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
	if token == "" {
		return "", fmt.Errorf("usersdk: missing %s header in response", AuthenticationHeader)
	}
	return token, nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = ErrorCodeServerError
		apiErr.Description = fmt.Sprintf("unexpected status %d", resp.StatusCode)
	}
	return apiErr
}

func drainClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
	_ = body.Close()
}
