package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/tripstats/internal/pkg/logger"
	"github.com/piresc/tripstats/internal/pkg/retry"
	"github.com/piresc/tripstats/internal/utils"
)

const (
	// DefaultTimeout for HTTP requests
	DefaultTimeout = 10 * time.Second
	// APIKeyHeader is the header name for API key
	APIKeyHeader = "X-API-Key"
)

// StatusError is returned for non-2xx responses
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error %d: %s", e.Code, e.Message)
}

// Client is a JSON client for the service's response envelope, with API key
// authentication and retries on transport errors and 5xx responses.
type Client struct {
	BaseURL    string
	HTTPClient *nethttp.Client
	apiKey     string
	retrier    *retry.Retrier
}

// NewClient creates a new HTTP client
func NewClient(serviceURL, apiKey string, timeout time.Duration, retrier *retry.Retrier) *Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if retrier == nil {
		retrier = retry.New(retry.Config{}) // single attempt
	}

	return &Client{
		BaseURL: strings.TrimRight(serviceURL, "/"),
		HTTPClient: &nethttp.Client{
			Timeout: timeout,
		},
		apiKey:  apiKey,
		retrier: retrier,
	}
}

// GetJSON performs a GET request and decodes the envelope data into result
func (c *Client) GetJSON(ctx context.Context, endpoint string, result interface{}) error {
	return c.do(ctx, nethttp.MethodGet, endpoint, nil, result)
}

// PostJSON performs a POST request with a JSON body and decodes the envelope data into result
func (c *Client) PostJSON(ctx context.Context, endpoint string, body interface{}, result interface{}) error {
	return c.do(ctx, nethttp.MethodPost, endpoint, body, result)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body interface{}, result interface{}) error {
	url := c.BaseURL + endpoint

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	// writes are not idempotent: retry them only when the request never left
	idempotent := method == nethttp.MethodGet || method == nethttp.MethodHead

	return c.retrier.Execute(ctx, func(ctx context.Context) error {
		req, err := nethttp.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
		if err != nil {
			return retry.Permanent(fmt.Errorf("failed to create request: %w", err))
		}

		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
		if c.apiKey != "" {
			req.Header.Set(APIKeyHeader, c.apiKey)
		}

		seg := newrelic.StartExternalSegment(newrelic.FromContext(ctx), req)
		resp, err := c.HTTPClient.Do(req)
		seg.Response = resp
		seg.End()
		if err != nil {
			logger.Debug("HTTP request failed",
				logger.String("method", method),
				logger.String("url", url),
				logger.Err(err))
			err = fmt.Errorf("request failed: %w", err)
			if !idempotent && !isDialError(err) {
				return retry.Permanent(err)
			}
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= nethttp.StatusBadRequest {
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			statusErr := &StatusError{Code: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
			if idempotent && resp.StatusCode >= nethttp.StatusInternalServerError {
				return statusErr
			}
			return retry.Permanent(statusErr)
		}

		if err := utils.DecodeResponse(resp.Body, result); err != nil {
			return retry.Permanent(err)
		}
		return nil
	})
}

// isDialError reports whether err happened while connecting, before any byte
// of the request reached the server.
func isDialError(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
