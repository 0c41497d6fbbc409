package sportradar

import (
	"context"
	"net/http"
	"strings"
	"time"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func resolveHTTPClient(client *http.Client, timeout time.Duration) httpDoer {
	if client != nil {
		return client
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}

func resolveMaxRetries(max int) int {
	if max <= 0 {
		return defaultMaxRetries
	}
	return max
}

// sleepFunc suspends for d or until the context ends. Injected in tests so
// backoff behavior can be observed without real waiting.
type sleepFunc func(ctx context.Context, d time.Duration) error

func contextSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// normalizeEndpoint collapses Sportradar identifiers (sr:competitor:4222 and
// the like) out of a path so metrics stay low-cardinality.
func normalizeEndpoint(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if !strings.Contains(seg, "sr:") {
			continue
		}
		if strings.HasSuffix(seg, ".json") {
			segments[i] = "{id}.json"
		} else {
			segments[i] = "{id}"
		}
	}
	return strings.Join(segments, "/")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
