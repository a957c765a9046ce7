package drs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

const (
	seqClsPath = "/seq-cls/predict_batch"
	clmPath    = "/clm/predict"

	defaultTimeout  = 60 * time.Second
	maxResponseSize = 10 << 20
	maxLoggedBody   = 2048
)

// ErrUnexpectedShape is returned when a DRS response does not match the expected schema
var ErrUnexpectedShape = goerr.New("unexpected response shape")

// Client calls the DRS-LLM model service. It serves both the sequence
// classification (risk score) and the causal LM (improvement advice) endpoints.
type Client struct {
	baseURL    string
	token      string
	language   string
	timeout    time.Duration
	httpClient *http.Client
}

// Option is a functional option for Client
type Option func(*Client)

// WithToken sets the bearer credential sent to the DRS API
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces the HTTP client used for DRS calls
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the timeout of a single DRS round trip. Ignored when
// WithHTTPClient is given.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithAdviceLanguage sets the language the advice model is asked to respond in
func WithAdviceLanguage(language string) Option {
	return func(c *Client) {
		c.language = language
	}
}

// New creates a DRS client. An empty baseURL puts the client in offline mode:
// risk scoring falls back to the mock scorer and no advice is produced.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		language: "English",
		timeout:  defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c
}

// Configured reports whether a DRS endpoint is set
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// statusError is a non-2xx reply of the DRS API
type statusError struct {
	StatusCode int
	Body       []byte
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d - request failed with status code %d", e.StatusCode, e.StatusCode)
}

// post sends body as JSON to path and returns the payload of a 2xx reply
func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal DRS request", goerr.V("path", path))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create DRS request", goerr.V("path", path))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call DRS API", goerr.V("path", path))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read DRS response", goerr.V("path", path))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, goerr.Wrap(&statusError{StatusCode: resp.StatusCode, Body: respBody},
			"DRS API returned error status",
			goerr.V("path", path),
			goerr.V("status", resp.StatusCode),
		)
	}

	return respBody, nil
}

// failureMessage returns the human readable reason of a failed call
func failureMessage(err error) string {
	var se *statusError
	if errors.As(err, &se) {
		return se.Error()
	}
	return err.Error()
}

// logFailure logs a failed call and, for error statuses, the response body
func logFailure(ctx context.Context, msg string, err error) {
	logger := ctxlog.From(ctx)
	logger.Warn(msg, "error", err, "reason", failureMessage(err))

	var se *statusError
	if errors.As(err, &se) && len(se.Body) > 0 {
		logger.Warn("DRS API error response body", "body", truncate(se.Body))
	}
}

func truncate(b []byte) string {
	if len(b) > maxLoggedBody {
		return string(b[:maxLoggedBody]) + "...(truncated)"
	}
	return string(b)
}
