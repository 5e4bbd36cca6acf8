package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	defaultAPIBaseURL = "https://api.spoonacular.com"
	defaultProbeURL   = "https://httpbin.org/get"
	defaultDataDir    = "data"
)

// Config holds the configuration for the application.
type Config struct {
	SpoonacularAPIKey string
	APIBaseURL        string

	// DataDir is where the state file and the offline cache database live.
	DataDir string

	// ProbeURL is the endpoint used by the connectivity probe.
	ProbeURL string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	apiKey := os.Getenv("SPOONACULAR_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("SPOONACULAR_API_KEY environment variable not set")
	}

	baseURL := os.Getenv("SPOONACULAR_API_URL")
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}

	dataDir := os.Getenv("RECIPE_DATA_DIR")
	if dataDir == "" {
		dataDir = defaultDataDir
	}

	probeURL := os.Getenv("CONNECTIVITY_PROBE_URL")
	if probeURL == "" {
		probeURL = defaultProbeURL
	}

	return &Config{
		SpoonacularAPIKey: apiKey,
		APIBaseURL:        baseURL,
		DataDir:           dataDir,
		ProbeURL:          probeURL,
	}, nil
}

// StateFilePath is the location of the persisted application state.
func (c *Config) StateFilePath() string {
	return filepath.Join(c.DataDir, "recipe-explorer-storage.json")
}

// CacheDBPath is the location of the offline cache database.
func (c *Config) CacheDBPath() string {
	return filepath.Join(c.DataDir, "recipe-explorer.db")
}
