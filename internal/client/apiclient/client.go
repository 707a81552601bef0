package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/fleetdesk/internal/common"
	"github.com/dmitrijs2005/fleetdesk/internal/logging"
	"github.com/dmitrijs2005/fleetdesk/internal/netx"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/net/publicsuffix"
)

// DefaultTimeout bounds every request, including reading the response body.
const DefaultTimeout = 3 * time.Minute

type Config struct {
	BaseURL string
	Timeout time.Duration

	// CacheTTL enables the GET response cache when positive.
	CacheTTL time.Duration

	// LegacyAuthMessageMatch also treats a 401 whose message mentions
	// "token" or "unauthorized" as an authentication failure. Only for
	// servers that send no error code.
	LegacyAuthMessageMatch bool

	// Transport overrides http.DefaultTransport.
	Transport http.RoundTripper

	// Registerer receives the client metrics. A private registry is used
	// when nil.
	Registerer prometheus.Registerer
}

type Option func(*Client)

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func WithAuthFailureHandler(h AuthFailureHandler) Option {
	return func(c *Client) { c.onAuthFailure = h }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

func withClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

type Client struct {
	base          *url.URL
	http          *http.Client
	jar           http.CookieJar
	tokens        TokenSource
	onAuthFailure AuthFailureHandler
	log           logging.Logger
	legacy        bool
	cache         *responseCache
	metrics       *metrics
	now           func() time.Time
}

func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("apiclient: empty base URL")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("apiclient: parse base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("apiclient: unsupported scheme %q", base.Scheme)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	reg := cfg.Registerer
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	c := &Client{
		base:    base,
		jar:     jar,
		http:    &http.Client{Timeout: timeout, Jar: jar, Transport: cfg.Transport},
		log:     logging.Discard(),
		legacy:  cfg.LegacyAuthMessageMatch,
		metrics: newMetrics(reg),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if cfg.CacheTTL > 0 {
		c.cache = newResponseCache(cfg.CacheTTL, c.now)
	}
	return c, nil
}

// SetTokenSource replaces the token source. Used when the session is built
// after the client.
func (c *Client) SetTokenSource(ts TokenSource) { c.tokens = ts }

// SetAuthFailureHandler replaces the authentication failure handler.
func (c *Client) SetAuthFailureHandler(h AuthFailureHandler) { c.onAuthFailure = h }

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string { return c.base.String() }

// ClearCache drops every cached GET response.
func (c *Client) ClearCache() {
	if c.cache != nil {
		c.cache.clear()
	}
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body any, query url.Values, out any) error {
	return c.Do(ctx, http.MethodPost, path, query, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, body, out)
}

// Fetch performs the request and decodes the envelope data into a T.
func Fetch[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (T, error) {
	var out T
	err := c.Do(ctx, method, path, query, body, &out)
	return out, err
}

// Do sends one request and decodes the envelope's data into out. out may be
// nil to discard the data, or a *json.RawMessage to receive it undecoded.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	u := c.resolve(path, query)
	cacheable := method == http.MethodGet && c.cache != nil

	if cacheable {
		if data, ok := c.cache.get(u.String()); ok {
			c.log.Debug(ctx, "cache hit", "url", u.String())
			return decodeData(data, out)
		}
	}

	reqBody, contentType, err := encodeBody(body)
	if err != nil {
		return err
	}

	reqID := uuid.NewString()
	ctx = logging.ContextWith(ctx, "request_id", reqID)

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, reqID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c.authorize(ctx, req)

	log := c.log.With("method", method, "url", u.String())

	start := c.now()
	resp, err := c.http.Do(req)
	c.metrics.duration.WithLabelValues(method).Observe(c.now().Sub(start).Seconds())
	if err != nil {
		c.metrics.requests.WithLabelValues(method, "error").Inc()
		log.Warn(ctx, "request failed", "error", err)
		return err
	}
	defer resp.Body.Close()
	c.metrics.requests.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn(ctx, "read response body", "status", resp.StatusCode, "error", err)
		return err
	}

	env, _ := decodeEnvelope(raw)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Envelope: env, Body: json.RawMessage(raw), Header: resp.Header}
		log.Debug(ctx, "request rejected", "status", resp.StatusCode, "code", env.Code, "message", env.Message)

		if isAuthFailure(resp.StatusCode, resp.Header, env, c.legacy) && c.onAuthFailure != nil {
			c.onAuthFailure(ctx, apiErr)
		}
		return apiErr
	}

	log.Debug(ctx, "request done", "status", resp.StatusCode)

	if cacheable {
		c.cache.put(u.String(), env.Data)
	} else if method != http.MethodGet {
		c.ClearCache()
	}

	return decodeData(env.Data, out)
}

func (c *Client) resolve(path string, query url.Values) *url.URL {
	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u
}

// authorize attaches the bearer token. A missing token is not an error:
// the request goes out and the server decides.
func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if c.tokens == nil {
		c.log.Warn(ctx, "no token source configured; sending unauthenticated request", "url", req.URL.String())
		return
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.log.Warn(ctx, "resolve access token", "error", err)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		c.log.Warn(ctx, "no access token; sending unauthenticated request", "url", req.URL.String())
		return
	}
	req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
}

func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case *netx.Multipart:
		return b.Encode()
	case json.RawMessage:
		return bytes.NewReader(b), "application/json", nil
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("encode request body: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

func decodeData(data json.RawMessage, out any) error {
	if out == nil {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		if len(data) == 0 {
			*raw = json.RawMessage("null")
			return nil
		}
		*raw = append(json.RawMessage(nil), data...)
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
