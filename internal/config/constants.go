package config

import "time"

const (
	envPort           = "PORT"
	envAPIKey         = "SPORTRADAR_API_KEY"
	envBaseURL        = "SPORTRADAR_BASE_URL"
	envRequestDelay   = "REQUEST_DELAY"
	envMaxRetries     = "MAX_RETRIES"
	envRequestTimeout = "REQUEST_TIMEOUT"
	envUnknownPlayed  = "INCLUDE_UNKNOWN_PARTICIPATION"
	envOutputDir      = "OUTPUT_DIR"
	envCheckpointDir  = "CHECKPOINT_DIR"
	envDatasetKeep    = "DATASET_KEEP"
	envStarterMax     = "STARTER_MAX_JERSEY"
	envSubstituteMax  = "SUBSTITUTE_MAX_JERSEY"
	envMetricsPort    = "METRICS_PORT"
	envMetricsOn      = "METRICS_ENABLED"
	envOtelEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService    = "OTEL_SERVICE_NAME"
	envOtelInsecure   = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort    = "8080"
	defaultBaseURL = "https://api.sportradar.com/rugby-union/trial/v3/en"
	// Conservative default spacing between upstream calls; the Sportradar
	// trial tier allows roughly one request every few seconds.
	defaultRequestDelay   = 5 * time.Second
	defaultMaxRetries     = 3
	defaultRequestTimeout = 30 * time.Second
	defaultOutputDir      = "rugby_data_output"
	defaultCheckpointDir  = "rugby_data_checkpoints"
	defaultDatasetKeep    = 10
	// Rugby-union numbering convention: starters wear 1-15, the bench 16-23.
	// Kept configurable since providers occasionally violate it.
	defaultStarterMax    = 15
	defaultSubstituteMax = 23
	defaultMetricsPort   = "9090"
)
