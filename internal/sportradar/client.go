package sportradar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/fluxforgeai/rugby-union/internal/metrics"
	"github.com/fluxforgeai/rugby-union/internal/progress"
)

// Config controls how the client reaches the Sportradar API.
type Config struct {
	BaseURL      string
	APIKey       string
	HTTPClient   *http.Client
	RequestDelay time.Duration
	MaxRetries   int
	Timeout      time.Duration
	Logger       *slog.Logger
	Metrics      *metrics.Recorder
	Progress     progress.Sink
}

// Client issues single logical calls against the Sportradar API with a
// mandatory pre-call delay, rate-limit handling, and retry with backoff.
// It carries no domain knowledge; the gateway layers that on top.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
	delay      time.Duration
	maxRetries int
	logger     *slog.Logger
	metrics    *metrics.Recorder
	progress   progress.Sink
	sleep      sleepFunc
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	sink := cfg.Progress
	if sink == nil {
		sink = progress.Discard
	}
	delay := cfg.RequestDelay
	if delay < 0 {
		delay = defaultRequestDelay
	}
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		delay:      delay,
		maxRetries: resolveMaxRetries(cfg.MaxRetries),
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		progress:   sink,
		sleep:      contextSleep,
	}
}

// GetJSON performs one logical GET against endpoint (a path like
// "/competitions.json") and decodes a successful body into out. Exhausted
// retries surface as an error; callers treat that as "data unavailable".
func (c *Client) GetJSON(ctx context.Context, endpoint string, out any) error {
	if c.delay > 0 {
		c.progress(fmt.Sprintf("Waiting %s before API call...", c.delay))
		if err := c.sleep(ctx, c.delay); err != nil {
			return err
		}
	}

	metricKey := normalizeEndpoint(endpoint)

	// Deterministic doubling: delay, 2*delay, 4*delay, ...
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = c.delay
	expo.RandomizationFactor = 0
	expo.Multiplier = 2
	expo.MaxInterval = time.Hour
	expo.MaxElapsedTime = 0
	expo.Reset()

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		c.progress(fmt.Sprintf("Making request to %s (attempt %d)", endpoint, attempt+1))

		start := time.Now()
		resp, err := c.do(ctx, endpoint)
		c.metrics.RecordAPICall(metricKey, time.Since(start), err)

		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			c.progress(fmt.Sprintf("Connection error on attempt %d: %s", attempt+1, truncate(err.Error(), 100)))
			if attempt == c.maxRetries {
				break
			}
			if sleepErr := c.backoffWait(ctx, expo); sleepErr != nil {
				return sleepErr
			}
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			decodeErr := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if decodeErr != nil {
				c.progress(fmt.Sprintf("Failed to parse JSON response: %v", decodeErr))
				return fmt.Errorf("sportradar: decode %s: %w", endpoint, decodeErr)
			}
			return nil

		case resp.StatusCode == http.StatusTooManyRequests:
			resp.Body.Close()
			wait := time.Duration(attempt+1) * c.delay * 2
			c.metrics.RecordRateLimit(metricKey, wait)
			c.progress(fmt.Sprintf("Rate limited (429). Waiting %s before retry...", wait))
			lastErr = fmt.Errorf("sportradar: rate limited on %s", endpoint)
			if attempt == c.maxRetries {
				break
			}
			if sleepErr := c.sleep(ctx, wait); sleepErr != nil {
				return sleepErr
			}
			continue

		default:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			snippet := truncate(strings.TrimSpace(string(body)), 200)
			c.progress(fmt.Sprintf("API error %d: %s", resp.StatusCode, snippet))
			if c.logger != nil {
				c.logger.Warn("sportradar request failed",
					"endpoint", metricKey,
					"status_code", resp.StatusCode,
				)
			}
			lastErr = fmt.Errorf("sportradar: unexpected status %d on %s", resp.StatusCode, endpoint)
			if attempt == c.maxRetries {
				break
			}
			if sleepErr := c.backoffWait(ctx, expo); sleepErr != nil {
				return sleepErr
			}
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("sportradar: request to %s failed", endpoint)
	}
	return lastErr
}

func (c *Client) do(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("api_key", c.apiKey)
	req.URL.RawQuery = q.Encode()
	return c.httpClient.Do(req)
}

func (c *Client) backoffWait(ctx context.Context, expo *backoff.ExponentialBackOff) error {
	wait := expo.NextBackOff()
	if wait == backoff.Stop {
		wait = c.delay
	}
	c.progress(fmt.Sprintf("Retrying in %s...", wait))
	return c.sleep(ctx, wait)
}
