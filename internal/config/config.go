package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds everything read from the environment, optionally overlaid
// with a YAML file pointed at by AIPIFY_CONFIG.
type Config struct {
	// BackendPort is the port the local inference server listens on.
	BackendPort string
	// BackendURL is where consumers reach the local inference server.
	BackendURL string

	// ModelsDir is the directory GGUF model files are downloaded into and
	// loaded from.
	ModelsDir string
	// DataDir holds the client-side key/value database.
	DataDir string

	// GeminiAPIKey is the environment-supplied credential default. A
	// user-entered key persisted in the keyed store takes precedence.
	GeminiAPIKey string

	// UseMockHost makes the backend serve canned completions instead of
	// loading GGUF files. Useful for development without model downloads.
	UseMockHost bool

	// ModelOverrides adjusts file name, context size or GPU layers for the
	// named model slots ("chat", "embedding", "lightweight").
	ModelOverrides map[string]ModelOverride
}

type ModelOverride struct {
	File        string `yaml:"file"`
	ContextSize int    `yaml:"contextSize"`
	GPULayers   int    `yaml:"gpuLayers"`
}

type fileConfig struct {
	BackendPort string                   `yaml:"backendPort"`
	ModelsDir   string                   `yaml:"modelsDir"`
	Models      map[string]ModelOverride `yaml:"models"`
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "TRUE"
}

// Load reads all env vars and builds the config.
func Load() (*Config, error) {
	home, _ := os.UserHomeDir()

	cfg := &Config{
		BackendPort: getEnv("BACKEND_PORT", "3001"),
		BackendURL:  getEnv("BACKEND_URL", "http://localhost:3001"),

		ModelsDir: getEnv("AIPIFY_MODELS_DIR", "models"),
		DataDir:   getEnv("AIPIFY_DATA_DIR", home+"/.aipify"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		UseMockHost:  getBoolEnv("AIPIFY_MOCK_HOST", false),
	}

	if path := os.Getenv("AIPIFY_CONFIG"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	return cfg, nil
}

func (c *Config) overlayFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parsing yaml: %w", err)
	}

	if fc.BackendPort != "" {
		c.BackendPort = fc.BackendPort
	}
	if fc.ModelsDir != "" {
		c.ModelsDir = fc.ModelsDir
	}
	if len(fc.Models) > 0 {
		c.ModelOverrides = fc.Models
	}

	return nil
}
