package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"grantsassist-client/internal/common/config"
	"grantsassist-client/internal/common/errors"
	"grantsassist-client/internal/common/logger"
	"grantsassist-client/internal/common/metrics"
	"grantsassist-client/internal/credentials"
)

// Client executes endpoint descriptors against the GrantsAssist backend
// and maps every failure into the error taxonomy. It attaches the bearer
// token when the descriptor requires auth and clears stored credentials
// on the first 401 it sees.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	creds      credentials.Provider
	log        logger.Logger

	mu             sync.Mutex
	onUnauthorized func()
}

// NewClient builds a client from API configuration. The base URL is
// validated here so Do never has to re-check it.
func NewClient(cfg config.APIConfig, creds credentials.Provider, log logger.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, errors.NewInvalidRequestError(fmt.Sprintf("invalid base URL %q", cfg.BaseURL))
	}

	timeout := time.Duration(cfg.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
		creds:      creds,
		log:        log,
	}, nil
}

// SetUnauthorizedHandler registers a callback fired after a 401 response
// has cleared the stored credentials. The session manager uses it to
// force a sign-out.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *Client) notifyUnauthorized() {
	c.mu.Lock()
	fn := c.onUnauthorized
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Do executes the endpoint and decodes a 2xx body into out. Pass nil
// out for operations whose response body is irrelevant. Every returned
// error is an *errors.APIError.
func (c *Client) Do(ctx context.Context, ep Endpoint, out interface{}) error {
	op := ep.Operation()

	desc, err := ep.Descriptor()
	if err != nil {
		c.recordFailure(op, err)
		return err
	}

	req, err := c.buildRequest(ctx, desc)
	if err != nil {
		c.recordFailure(op, err)
		return err
	}

	c.log.Debug("api request", map[string]interface{}{
		"operation": op,
		"method":    desc.Method,
		"path":      desc.Path,
	})

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.APIRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		netErr := errors.NewNetworkError(err)
		c.recordFailure(op, netErr)
		c.log.Warn("api request failed", map[string]interface{}{
			"operation": op,
			"error":     err.Error(),
		})
		return netErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		readErr := errors.NewInvalidResponseError(err)
		c.recordFailure(op, readErr)
		return readErr
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out != nil && len(body) > 0 {
			if err := json.Unmarshal(body, out); err != nil {
				decErr := errors.NewDecodingError(err)
				c.recordFailure(op, decErr)
				return decErr
			}
		}
		metrics.APIRequestsTotal.WithLabelValues(op, "success").Inc()
		return nil
	}

	apiErr := c.classifyFailure(ctx, resp.StatusCode, body)
	c.recordFailure(op, apiErr)
	c.log.Warn("api error response", map[string]interface{}{
		"operation":   op,
		"status_code": resp.StatusCode,
		"error_code":  apiErr.Code,
	})
	return apiErr
}

func (c *Client) buildRequest(ctx context.Context, desc RequestDescriptor) (*http.Request, error) {
	u := *c.baseURL
	u.Path = c.baseURL.Path + desc.Path
	if len(desc.Query) > 0 {
		var b strings.Builder
		for i, item := range desc.Query {
			if i > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(item.Key))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(item.Value))
		}
		u.RawQuery = b.String()
	}

	var bodyReader io.Reader
	if len(desc.Body) > 0 {
		bodyReader = bytes.NewReader(desc.Body)
	}

	req, err := http.NewRequestWithContext(ctx, desc.Method, u.String(), bodyReader)
	if err != nil {
		return nil, errors.NewInvalidRequestError(err.Error())
	}

	req.Header.Set("Accept", "application/json")
	if len(desc.Body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	if desc.RequiresAuth {
		token, err := c.creds.Token(ctx)
		if err != nil {
			c.log.Warn("credential read failed", map[string]interface{}{"error": err.Error()})
		} else if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		// No token stored: send the request anyway and let the server
		// answer 401, which drives the forced sign-out path.
	}

	// Descriptor headers win over the defaults above.
	for k, v := range desc.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// classifyFailure maps a non-2xx response onto the error taxonomy. A 401
// additionally clears stored credentials and fires the unauthorized
// handler before the error is returned.
func (c *Client) classifyFailure(ctx context.Context, statusCode int, body []byte) *errors.APIError {
	if statusCode == http.StatusUnauthorized {
		if err := c.creds.Clear(ctx); err != nil {
			c.log.Warn("credential clear failed", map[string]interface{}{"error": err.Error()})
		}
		c.notifyUnauthorized()
		return errors.NewUnauthorizedError()
	}
	return errors.FromStatus(statusCode, extractDetail(body))
}

// extractDetail pulls the backend's {"detail": "..."} message out of an
// error body. Bodies that are not JSON or carry no detail yield "".
func extractDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Detail
}

func (c *Client) recordFailure(op string, err error) {
	metrics.APIRequestsTotal.WithLabelValues(op, "error").Inc()
	if apiErr, ok := errors.AsAPIError(err); ok {
		metrics.APIRequestsFailed.WithLabelValues(op, string(apiErr.Code)).Inc()
	}
}
