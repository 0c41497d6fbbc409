package config

// SportradarConfig holds upstream API access settings.
type SportradarConfig struct {
	APIKey         string
	BaseURL        string
	RequestDelay   Duration
	MaxRetries     int
	RequestTimeout Duration
	// IncludeUnknownParticipation controls how a missing `played` field is
	// read: true treats it as "substitute who entered the game" and keeps
	// the player. This mirrors upstream behavior but is a heuristic.
	IncludeUnknownParticipation bool
}

func loadSportradar() SportradarConfig {
	return SportradarConfig{
		APIKey:                      envOrDefault(envAPIKey, ""),
		BaseURL:                     envOrDefault(envBaseURL, defaultBaseURL),
		RequestDelay:                durationEnvOrDefault(envRequestDelay, defaultRequestDelay),
		MaxRetries:                  intEnvOrDefault(envMaxRetries, defaultMaxRetries),
		RequestTimeout:              durationEnvOrDefault(envRequestTimeout, defaultRequestTimeout),
		IncludeUnknownParticipation: boolEnvOrDefault(envUnknownPlayed, true),
	}
}

// HasAPIKey reports whether a usable API key is configured.
func (c SportradarConfig) HasAPIKey() bool {
	return c.APIKey != "" && c.APIKey != "your-sportradar-key-if-not-using-env"
}
