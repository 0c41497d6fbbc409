package config

// StorageConfig controls where datasets and checkpoints are written.
type StorageConfig struct {
	OutputDir     string
	CheckpointDir string
	DatasetKeep   int
}

func loadStorage() StorageConfig {
	return StorageConfig{
		OutputDir:     envOrDefault(envOutputDir, defaultOutputDir),
		CheckpointDir: envOrDefault(envCheckpointDir, defaultCheckpointDir),
		DatasetKeep:   intEnvOrDefault(envDatasetKeep, defaultDatasetKeep),
	}
}

// JerseyConfig captures the jersey-number partitions used for derived
// starter/substitute views. These ranges are convention, not law.
type JerseyConfig struct {
	StarterMax    int
	SubstituteMax int
}

func loadJerseys() JerseyConfig {
	return JerseyConfig{
		StarterMax:    intEnvOrDefault(envStarterMax, defaultStarterMax),
		SubstituteMax: intEnvOrDefault(envSubstituteMax, defaultSubstituteMax),
	}
}
