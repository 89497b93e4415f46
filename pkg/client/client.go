// Package client implements the HTTP client for the local dbt sync server,
// the microservice that lints and formats SQL/dbt templates. The client
// builds request URLs, health-checks the server, and issues a single POST
// per call under a timeout. Failures are absorbed into an ErrorContainer
// instead of surfacing as Go errors, so callers always receive a payload
// they can show to the user.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default timeouts for the main request and the health probe.
const (
	DefaultTimeout       = 25 * time.Second
	DefaultHealthTimeout = time.Second
)

const logDelimiter = "================================================"

// Doer issues HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Endpoint resolves the sync server address. It is invoked fresh on every
// URL build, never cached.
type Endpoint func() (host string, port int)

// Options configures a Client. Exactly one of SQL or SQLPath selects the
// request mode; leaving both unset is a caller error the client does not
// validate.
type Options struct {
	// SQL is the template text sent in the request body. nil selects path
	// mode, where the server reads the file named by SQLPath itself and
	// the request body is empty.
	SQL *string

	// SQLPath names a file already known to the server. Ignored when SQL
	// is set.
	SQLPath string

	// ExtraConfigPath, when non-empty, is appended to every request URL.
	ExtraConfigPath string

	// Endpoint resolves the server host and port. Required.
	Endpoint Endpoint

	// HTTPClient defaults to a plain http.Client.
	HTTPClient Doer

	// Output receives line-oriented diagnostics on failure paths only.
	// Defaults to io.Discard.
	Output io.Writer

	// Timeout guards each POST. Zero means DefaultTimeout.
	Timeout time.Duration

	// HealthTimeout guards the health probe. Zero means DefaultHealthTimeout.
	HealthTimeout time.Duration
}

// Client talks to one dbt sync server on behalf of one SQL source.
// Immutable after construction; concurrent calls each own an independent
// timeout context and do not coordinate with each other.
type Client struct {
	sql             *string
	sqlPath         string
	extraConfigPath string
	endpoint        Endpoint
	httpc           Doer
	out             io.Writer
	timeout         time.Duration
	healthTimeout   time.Duration
}

// New creates a Client from opts, filling in defaults for the HTTP client,
// output sink, and timeouts.
func New(opts Options) *Client {
	c := &Client{
		sql:             opts.SQL,
		sqlPath:         opts.SQLPath,
		extraConfigPath: opts.ExtraConfigPath,
		endpoint:        opts.Endpoint,
		httpc:           opts.HTTPClient,
		out:             opts.Output,
		timeout:         opts.Timeout,
		healthTimeout:   opts.HealthTimeout,
	}
	if c.httpc == nil {
		c.httpc = &http.Client{}
	}
	if c.out == nil {
		c.out = io.Discard
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.healthTimeout <= 0 {
		c.healthTimeout = DefaultHealthTimeout
	}
	return c
}

// HealthCheck reports whether the server answers GET /health with HTTP 200
// within the health timeout. It never returns an error: transport failures,
// timeouts, and non-200 statuses all read as false.
func (c *Client) HealthCheck(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthURL(), nil)
	if err != nil {
		return false
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

// Lint posts the template to /lint and decodes the response body into T
// without validating its shape. A body the server encodes as an
// ErrorContainer decodes like any other and is returned to the caller
// unchanged; inspecting it is the caller's job.
func Lint[T any](ctx context.Context, c *Client) (*T, *ErrorContainer) {
	return do[T](ctx, c, "lint")
}

// Format posts the template to /format with the same contract as Lint.
func Format[T any](ctx context.Context, c *Client) (*T, *ErrorContainer) {
	return do[T](ctx, c, "format")
}

// Compile posts to /compile and decodes the single-string result.
func (c *Client) Compile(ctx context.Context) (*CompileResult, *ErrorContainer) {
	return do[CompileResult](ctx, c, "compile")
}

// Reset posts to /reset, asking the server to re-parse the project.
func (c *Client) Reset(ctx context.Context) (*ResetResult, *ErrorContainer) {
	return do[ResetResult](ctx, c, "reset")
}

// do runs the shared state machine: health gate, timed POST, pass-through
// decode. Every exit path releases its timeout context, and no error
// escapes as a Go error.
func do[T any](ctx context.Context, c *Client, op string) (*T, *ErrorContainer) {
	if !c.HealthCheck(ctx) {
		c.line(logDelimiter)
		c.linef("dbt sync server did not answer the health probe at %s", c.healthURL())
		c.line(logDelimiter)
		return nil, projectNotRegisteredError()
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := c.roundTrip(ctx, op)
	if err != nil {
		return nil, c.reportFailure(op, err)
	}
	v := new(T)
	if err := json.Unmarshal(body, v); err != nil {
		return nil, c.reportFailure(op, err)
	}
	return v, nil
}

// roundTrip issues the POST and reads the full response body. The body is
// always the SQL text, even in path mode where sql is nil and the request
// body ends up empty; the server reads from sql_path in that case.
func (c *Client) roundTrip(ctx context.Context, op string) ([]byte, error) {
	var body io.Reader
	if c.sql != nil {
		body = strings.NewReader(*c.sql)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL(op), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// reportFailure logs the raw error between delimiters and builds the
// server-unreachable payload naming the configured host and port.
func (c *Client) reportFailure(op string, err error) *ErrorContainer {
	host, port := c.endpoint()
	c.line(logDelimiter)
	c.linef("Raw /%s error response: %v", op, err)
	c.line(logDelimiter)
	return failedToReachServerError(host, port)
}

func (c *Client) line(s string) {
	_, _ = fmt.Fprintln(c.out, s)
}

func (c *Client) linef(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format+"\n", args...)
}
