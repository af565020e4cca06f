package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all libshelf configuration.
type Config struct {
	// Library backend
	API APIConfig `yaml:"api"`

	// Librarian assistant (generative AI)
	LLM LLMConfig `yaml:"llm"`

	// Borrowing policy knobs the server may override per deployment
	Policy PolicyConfig `yaml:"policy"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Local state directory (session db, activity ledger, logs)
	DataDir string `yaml:"data_dir"`
}

// APIConfig configures the library backend client.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`

	// Token, when set (usually via LIBSHELF_TOKEN), is used ahead of the
	// stored session token. Useful for scripts and CI.
	Token string `yaml:"token"`
}

// LLMConfig configures the librarian assistant.
type LLMConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// PolicyConfig mirrors server-side borrowing policy for advisory
// pre-checks. The backend remains the source of truth.
type PolicyConfig struct {
	MaxBooks int `yaml:"max_books"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
	File   string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:5000",
			Timeout: "30s",
		},
		LLM: LLMConfig{
			Model: "gemini-2.5-flash",
		},
		Policy: PolicyConfig{
			MaxBooks: 3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			File:   "shelf.log",
		},
		DataDir: filepath.Join(home, ".shelf"),
	}
}

// Load loads configuration from a YAML file, falling back to defaults
// when the file does not exist. Environment variables win over the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			if err := cfg.Validate(); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath returns the conventional config location, ~/.shelf/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".shelf", "config.yaml")
}

func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("LIBSHELF_API_URL"); url != "" {
		c.API.BaseURL = url
	}
	if timeout := os.Getenv("LIBSHELF_API_TIMEOUT"); timeout != "" {
		c.API.Timeout = timeout
	}
	if token := os.Getenv("LIBSHELF_TOKEN"); token != "" {
		c.API.Token = token
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if dir := os.Getenv("LIBSHELF_DATA_DIR"); dir != "" {
		c.DataDir = dir
	}
}

// Validate checks invariants that would otherwise surface as confusing
// runtime failures.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if _, err := time.ParseDuration(c.API.Timeout); err != nil {
		return fmt.Errorf("api.timeout %q is not a duration: %w", c.API.Timeout, err)
	}
	if c.Policy.MaxBooks < 1 {
		return fmt.Errorf("policy.max_books must be >= 1")
	}
	return nil
}

// APITimeout parses the configured API timeout. Validate guarantees it
// parses; the fallback covers hand-built Configs.
func (c *Config) APITimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// Save writes the configuration back as YAML, creating the directory if
// needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
