// Package switchboard is a client for the OA Switchboard message API.
package switchboard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/segmentio/encoding/json"
	"golang.org/x/time/rate"

	"github.com/lepidus/oaswitchboard/message"
)

const (
	// BaseURL is the OA Switchboard sandbox API base URL.
	BaseURL = "https://sandboxapi.oaswitchboard.org/v2/"

	// AuthorizeEndpoint exchanges credentials for a bearer token.
	AuthorizeEndpoint = "authorize"

	// MessageEndpoint accepts P1-PIO messages.
	MessageEndpoint = "message"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default request rate, per second.
	DefaultRateLimit = 2.0

	// maxErrorBody bounds how much of an error response is kept.
	maxErrorBody = 2048
)

// Doer sends HTTP requests. *http.Client and *pester.Client satisfy it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a rate-limited HTTP client for the OA Switchboard API. It is
// safe for concurrent use and never retries on its own.
type Client struct {
	httpClient Doer
	limiter    *rate.Limiter
	baseURL    string
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP doer, for example a retrying client.
func WithHTTPClient(d Doer) ClientOption {
	return func(c *Client) {
		c.httpClient = d
	}
}

// WithBaseURL sets a custom base URL (for testing or production).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithRateLimit sets the request rate per second. Zero or less disables
// limiting.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithLogger sets the logger used for failed requests.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a new OA Switchboard API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
		baseURL:    BaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	if !strings.HasSuffix(c.baseURL, "/") {
		c.baseURL += "/"
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

type authorizeRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authorizeResponse struct {
	Token string `json:"token"`
}

// Authorize exchanges account credentials for a bearer token.
func (c *Client) Authorize(ctx context.Context, email, password string) (string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", ErrMissingCredentials
	}

	body, err := json.Marshal(authorizeRequest{Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("marshaling authorize request: %w", err)
	}

	_, resp, err := c.do(ctx, AuthorizeEndpoint, body, "")
	if err != nil {
		return "", err
	}

	var auth authorizeResponse
	if err := json.Unmarshal(resp, &auth); err != nil {
		return "", fmt.Errorf("%w: decoding token: %v", ErrInvalidResponse, err)
	}
	if auth.Token == "" {
		return "", fmt.Errorf("%w: no token in authorize response", ErrInvalidResponse)
	}
	return auth.Token, nil
}

// SendMessage posts the envelope's message with the bearer token and
// returns the response status code.
func (c *Client) SendMessage(ctx context.Context, env *message.Envelope, token string) (int, error) {
	if env == nil {
		return 0, fmt.Errorf("sending message: nil envelope")
	}
	if token == "" {
		return 0, fmt.Errorf("%w: empty bearer token", ErrMissingCredentials)
	}

	body, err := json.Marshal(env)
	if err != nil {
		return 0, fmt.Errorf("marshaling message: %w", err)
	}

	status, _, err := c.do(ctx, MessageEndpoint, body, token)
	return status, err
}

// do performs one POST and classifies the response.
func (c *Client) do(ctx context.Context, endpoint string, body []byte, token string) (int, []byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("switchboard request failed", "endpoint", endpoint, "error", err)
		return 0, nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: reading body: %v", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Body:       truncate(string(respBody), maxErrorBody),
		}
		c.logger.Error("switchboard rejected request",
			"endpoint", endpoint,
			"status", resp.StatusCode,
			"body", apiErr.Body,
		)
		return resp.StatusCode, respBody, apiErr
	}

	c.logger.Debug("switchboard request ok", "endpoint", endpoint, "status", resp.StatusCode)
	return resp.StatusCode, respBody, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
