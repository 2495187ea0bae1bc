package placeholder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nhle/todoboard/internal/source"
)

// maxErrorBody caps how much of an error response is kept in a StatusError.
const maxErrorBody = 256

// MaxBackoff is the longest wait between rate-limited retries; 1<<5
// seconds already exceeds it.
const (
	MaxBackoff      = 30 * time.Second
	maxBackoffShift = 5
)

// Client is a thin HTTP client for a JSONPlaceholder-style REST API.
// It handles JSON decoding, request ids and optional retry with
// exponential backoff on HTTP 429.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	logger     *zap.Logger
}

// NewClient creates a new HTTP client rooted at baseURL. A zero timeout
// leaves requests unbounded; maxRetries only applies to 429 responses.
func NewClient(
	baseURL string,
	timeout time.Duration,
	maxRetries int,
	logger *zap.Logger,
) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// Get performs an HTTP GET request and unmarshals the JSON response.
func (c *Client) Get(
	ctx context.Context,
	path string,
	result interface{},
) error {
	method := http.MethodGet
	url := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		requestID := uuid.NewString()
		log := c.logger.With(
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Int("attempt", attempt),
		)

		req, err := http.NewRequestWithContext(ctx, method, url, nil)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-Id", requestID)

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			log.Debug("request failed", zap.Error(err))
			return fmt.Errorf("executing request %s %s: %w", method, path, err)
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return fmt.Errorf("reading response body: %w", readErr)
		}

		log.Debug("response received",
			zap.Int("status", resp.StatusCode),
			zap.Int("bytes", len(respBody)),
			zap.Duration("elapsed", time.Since(start)),
		)

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = &source.StatusError{
				Method:     method,
				Path:       path,
				StatusCode: resp.StatusCode,
			}
			if attempt == c.maxRetries {
				break
			}

			wait := retryAfterDuration(resp, attempt)
			log.Info("rate limited, backing off", zap.Duration("wait", wait))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				continue
			}
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			body := string(respBody)
			if len(body) > maxErrorBody {
				body = body[:maxErrorBody]
			}
			return &source.StatusError{
				Method:     method,
				Path:       path,
				StatusCode: resp.StatusCode,
				Body:       strings.TrimSpace(body),
			}
		}

		if result == nil {
			return nil
		}

		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf(
				"unmarshaling response from %s %s: %w",
				method, path, err,
			)
		}

		return nil
	}

	if c.maxRetries == 0 {
		return lastErr
	}
	return fmt.Errorf(
		"max retries (%d) exceeded: %w", c.maxRetries, lastErr,
	)
}

// retryAfterDuration reads the Retry-After header and computes a wait
// duration. Falls back to exponential backoff if the header is missing.
func retryAfterDuration(resp *http.Response, attempt int) time.Duration {
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil && seconds >= 0 {
			return time.Duration(seconds) * time.Second
		}
	}

	// Exponential backoff: 1s, 2s, 4s, ... capped before the shift can
	// overflow.
	if attempt >= maxBackoffShift {
		return MaxBackoff
	}
	backoff := time.Duration(1<<uint(attempt)) * time.Second
	if backoff > MaxBackoff {
		backoff = MaxBackoff
	}
	return backoff
}
