package distance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Error bodies are truncated to this many bytes.
const maxErrorBody = 4 << 10

// statusError is an HTTP-level failure (status >= 400). It is distinct from
// the service status carried inside a 200 body, which is never retried here.
type statusError struct {
	Code       int
	Body       string
	RetryAfter time.Duration
}

func (e *statusError) Error() string {
	return fmt.Sprintf("http status %d: %s", e.Code, e.Body)
}

// isTransient reports whether err is worth another attempt: rate limiting,
// server-side failures and network errors.
func isTransient(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests || se.Code >= http.StatusInternalServerError
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

type retryPolicy struct {
	maxAttempts int
	backoff     time.Duration
	maxBackoff  time.Duration
	retryable   func(error) bool
}

func defaultRetryPolicy() retryPolicy {
	return retryPolicy{
		maxAttempts: 4,
		backoff:     200 * time.Millisecond,
		maxBackoff:  5 * time.Second,
		retryable:   isTransient,
	}
}

// delay is the wait after the given failed attempt (1-based). A server
// Retry-After hint wins when it does not exceed maxBackoff.
func (p retryPolicy) delay(attempt int, err error) time.Duration {
	var se *statusError
	if errors.As(err, &se) && se.RetryAfter > 0 && se.RetryAfter <= p.maxBackoff {
		return se.RetryAfter
	}
	d := p.backoff << (attempt - 1)
	if p.maxBackoff > 0 && d > p.maxBackoff {
		d = p.maxBackoff
	}
	return d
}

// httpClient is the transport shared by the distance-service adapters.
type httpClient struct {
	session *http.Client
	// authorization is sent as the Authorization header when non-empty.
	authorization string
	retry         retryPolicy
}

func newHTTPClient(authorization string) httpClient {
	return httpClient{
		session:       &http.Client{Timeout: 10 * time.Second},
		authorization: authorization,
		retry:         defaultRetryPolicy(),
	}
}

// send issues method endpoint?query with an optional JSON payload, rebuilding
// the request for every attempt. The caller closes the returned body.
func (c *httpClient) send(
	ctx context.Context,
	method string,
	endpoint string,
	query url.Values,
	payload []byte,
) (*http.Response, error) {
	var lastErr error

	for attempt := 1; attempt <= c.retry.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := c.once(ctx, method, endpoint, query, payload)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !c.retry.retryable(err) || attempt == c.retry.maxAttempts {
			break
		}

		timer := time.NewTimer(c.retry.delay(attempt, err))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}

func (c *httpClient) once(
	ctx context.Context,
	method string,
	endpoint string,
	query url.Values,
	payload []byte,
) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authorization != "" {
		req.Header.Set("Authorization", c.authorization)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 400 {
		return resp, nil
	}

	defer resp.Body.Close()
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return nil, &statusError{
		Code:       resp.StatusCode,
		Body:       strings.TrimSpace(string(b)),
		RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
	}
}

// parseRetryAfter reads the delay-seconds form; HTTP dates are ignored.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
