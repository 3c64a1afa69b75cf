package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/cinemaclient/internal/logging"
	"github.com/google/uuid"
)

// RequestIDHeader carries a per-call identifier that also appears in logs.
const RequestIDHeader = "X-Request-ID"

// Doer sends one HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenSource yields the stored auth token. An empty token means the user
// is not signed in.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client executes GraphQL operations against one gateway endpoint.
type Client struct {
	endpoint string
	doer     Doer
	tokens   TokenSource
	logger   logging.Logger
	metrics  *Metrics
}

type Option func(*Client)

// WithDoer replaces the HTTP transport.
func WithDoer(d Doer) Option {
	return func(c *Client) { c.doer = d }
}

// WithTimeout uses an *http.Client with the given timeout. Zero leaves the
// transport default in place.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.doer = &http.Client{Timeout: d} }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMetrics enables request counters and latency histograms.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient builds a client for endpoint. tokens may be nil, in which case
// every authenticated call fails with KindAuthenticationRequired.
func NewClient(endpoint string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		doer:     http.DefaultClient,
		tokens:   tokens,
		logger:   logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Endpoint returns the configured gateway URL.
func (c *Client) Endpoint() string { return c.endpoint }

// Execute validates query, sends it once and classifies the outcome.
// On failure the returned error is always a *Error.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any, requireAuth bool) (Result, error) {

	req, err := NewRequest(query, variables)
	if err != nil {
		return Result{}, err
	}

	return c.Do(ctx, req, requireAuth)
}

// Do sends a prepared request.
func (c *Client) Do(ctx context.Context, req Request, requireAuth bool) (Result, error) {

	start := time.Now()
	requestID := uuid.NewString()
	log := c.logger.With("operation", req.Operation(), "request_id", requestID)

	res, status, err := c.send(ctx, req, requestID, requireAuth)
	elapsed := time.Since(start)

	c.metrics.observe(req.Operation(), KindOf(err), elapsed)

	if err != nil {
		log.Warn(ctx, "graphql request failed", "kind", KindOf(err), "status", status, "duration", elapsed, "error", err)
		return Result{}, err
	}

	log.Debug(ctx, "graphql request", "status", status, "duration", elapsed)
	return res, nil
}

func (c *Client) send(ctx context.Context, req Request, requestID string, requireAuth bool) (Result, int, error) {

	var token string
	if requireAuth {
		t, err := c.token(ctx)
		if err != nil {
			return Result{}, 0, err
		}
		token = t
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Result{}, 0, &Error{Kind: KindInvalidConfiguration, Message: "invalid configuration: cannot encode variables", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, 0, &Error{Kind: KindInvalidConfiguration, Message: "invalid configuration: bad endpoint", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.doer.Do(httpReq)
	if err != nil {
		return Result{}, 0, &Error{Kind: KindNetworkUnavailable, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, resp.StatusCode, &Error{Kind: KindNetworkUnavailable, Err: err}
	}

	res, err := classify(resp.StatusCode, raw)
	return res, resp.StatusCode, err
}

func (c *Client) token(ctx context.Context) (string, error) {
	if c.tokens == nil {
		return "", ErrAuthenticationRequired
	}
	t, err := c.tokens.Token(ctx)
	if err != nil {
		return "", &Error{Kind: KindAuthenticationRequired, Message: "authentication required: cannot read stored token", Err: err}
	}
	if t == "" {
		return "", ErrAuthenticationRequired
	}
	return t, nil
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []ErrorItem     `json:"errors"`
}

// classify turns a status code and a raw body into a Result or a *Error.
// The body is inspected as text before any JSON parsing so HTML error pages
// and empty bodies are reported as such.
func classify(status int, raw []byte) (Result, error) {

	text := strings.TrimSpace(string(raw))

	if text == "" {
		return Result{}, &Error{Kind: KindEmptyResponse, Status: status}
	}

	if strings.HasPrefix(text, "<") {
		return Result{}, &Error{Kind: KindServerRendered, Status: status, Snippet: truncate(text, snippetLimit)}
	}

	if status < 200 || status > 299 {
		return Result{}, httpError(status, text)
	}

	var env envelope
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return Result{}, &Error{Kind: KindMalformedResponse, Status: status, Err: err}
	}

	if len(env.Errors) > 0 {
		return Result{}, graphQLError(env.Errors)
	}

	if len(env.Data) == 0 {
		return Result{Data: json.RawMessage("null")}, nil
	}

	return Result{Data: env.Data}, nil
}
