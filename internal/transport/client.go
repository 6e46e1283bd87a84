package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/agentstation/stationmap/pkg/constants"
	"github.com/agentstation/stationmap/pkg/errors"
	"github.com/agentstation/stationmap/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// UserAgent is sent with every request.
const UserAgent = "stationmap"

// Client provides HTTP client functionality with authentication.
type Client struct {
	http *http.Client
	auth Authenticator
}

// New creates a new transport client with the specified authenticator. A nil
// http client gets one with DefaultHTTPTimeout.
func New(auth Authenticator, httpClient *http.Client) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &Client{http: httpClient, auth: auth}
}

// Do performs an HTTP request with authentication applied.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	c.auth.Apply(req)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapAPI(req.URL.Redacted(), 0, err)
	}
	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+url, err)
	}
	return c.Do(req)
}

// GetJSON performs a GET request and decodes the JSON response into target.
func (c *Client) GetJSON(ctx context.Context, url string, target any) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	return DecodeResponse(logging.FromContext(ctx), resp, url, target)
}

// DecodeResponse decodes a JSON response into the target structure. Any
// non-2xx status is an APIError carrying the status code and body.
func DecodeResponse(logger *zerolog.Logger, resp *http.Response, endpoint string, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.NewAPIError(endpoint, resp.StatusCode, truncate(string(body), 512))
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "response", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
