// ABOUTME: HTTP client for the external Aira voice-agent backend
// ABOUTME: One exported method per backend operation, JSON over the /api prefix

package aira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultAudioPath is the serving path assumed for bare audio filenames.
const DefaultAudioPath = "/audio"

// Client talks to the Aira backend. All persistent state lives behind it; the
// console never writes anywhere else. Methods take a context so callers can
// bind request lifetime to the HTTP request or poller that issued them.
type Client struct {
	baseURL    string
	origin     string
	audioPath  string
	httpClient *http.Client
	logger     *slog.Logger
	devMode    bool
}

// New builds a Client for the backend at baseURL. In dev mode, read
// operations against endpoints the backend does not serve yet fall back to
// deterministic mock data with a logged warning; outside dev mode errors
// propagate untouched.
func New(baseURL string, timeout time.Duration, devMode bool, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend base URL %q: %w", baseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("backend base URL %q must be absolute", baseURL)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		origin:     parsed.Scheme + "://" + parsed.Host,
		audioPath:  DefaultAudioPath,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "aira-client"),
		devMode:    devMode,
	}, nil
}

// Origin returns the backend origin (scheme://host) used for audio resolution.
func (c *Client) Origin() string {
	return c.origin
}

// ResolveAudio resolves an opaque audio reference against this client's
// backend origin. See ResolveAudioURL.
func (c *Client) ResolveAudio(ref string) string {
	return ResolveAudioURL(c.origin, c.audioPath, ref)
}

// SetAudioPath overrides the serving path for bare audio filenames. Empty
// keeps DefaultAudioPath.
func (c *Client) SetAudioPath(path string) {
	if path != "" {
		c.audioPath = path
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// do issues one backend request. Non-2xx responses decode into *APIError;
// transport failures are wrapped with the method and path for log context.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// decodeAPIError extracts the backend's error detail from a non-2xx response.
// FastAPI reports {"detail": ...}; older handlers use {"error": ...}.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return apiErr
	}
	var body struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Detail != "" {
			apiErr.Message = body.Detail
		} else if body.Error != "" {
			apiErr.Message = body.Error
		}
	}
	return apiErr
}

// allowMock reports whether the dev-mode mock fallback applies to err. It
// logs the substitution so a mock-fed view is never silent about it. Only
// missing endpoints qualify; transient transport errors always propagate so
// they are not papered over with synthetic data.
func (c *Client) allowMock(op string, err error) bool {
	if !c.devMode || !isEndpointMissing(err) {
		return false
	}
	c.logger.Warn("backend endpoint missing, serving mock data",
		"op", op,
		"error", err)
	return true
}
