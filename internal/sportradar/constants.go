package sportradar

import "time"

const (
	defaultBaseURL     = "https://api.sportradar.com/rugby-union/trial/v3/en"
	defaultHTTPTimeout = 30 * time.Second
	defaultMaxRetries  = 3
	// Trial-tier quota is roughly one call every few seconds; every request
	// waits this long up front unless configured otherwise.
	defaultRequestDelay = 5 * time.Second
)
