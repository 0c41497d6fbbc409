package config

import "github.com/joho/godotenv"

// Config holds runtime configuration for the service.
type Config struct {
	Port       string
	Sportradar SportradarConfig
	Storage    StorageConfig
	Jerseys    JerseyConfig
	Metrics    MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:       envOrDefault(envPort, defaultPort),
		Sportradar: loadSportradar(),
		Storage:    loadStorage(),
		Jerseys:    loadJerseys(),
		Metrics:    loadMetrics(),
	}
}
