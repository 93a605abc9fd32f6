package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/garnizeh/jobboard/pkg/ollama"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultJWTSecret = "supersecretkey"

	ProviderOllama   = "ollama"
	ProviderVertexAI = "vertexai"
	ProviderNone     = "none"
)

type Config struct {
	Addr           string          `yaml:"addr"`
	JWTSecret      string          `yaml:"jwt_secret"`
	APITimeout     time.Duration   `yaml:"timeout"`
	TokenDuration  time.Duration   `yaml:"token_duration"`
	LogLevel       string          `yaml:"log_level"`
	MigrateOnStart bool            `yaml:"migrate_on_start"`
	MaxUploadBytes int64           `yaml:"max_upload_bytes"`
	Database       DatabaseConfig  `yaml:"database"`
	Features       FeatureConfig   `yaml:"features"`
	Interview      InterviewConfig `yaml:"interview"`
	Ollama         ollama.Config   `yaml:"ollama"`
	VertexAI       VertexAIConfig  `yaml:"vertexai"`
}

// DatabaseConfig selects the storage backend. Driver is "sqlite" (Path) or
// "postgres" (URL).
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	URL    string `yaml:"url"`
}

// DSN returns the connection string for the selected driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == "postgres" {
		return d.URL
	}
	return d.Path
}

// FeatureConfig gates the fields and routes that only one deployment used.
type FeatureConfig struct {
	Wallet bool `yaml:"wallet"`
	News   bool `yaml:"news"`
}

type InterviewConfig struct {
	Provider string        `yaml:"provider"`
	Model    string        `yaml:"model"`
	Timeout  time.Duration `yaml:"timeout"`
	// Template overrides the built-in prompt template when set.
	Template string `yaml:"template"`
}

type VertexAIConfig struct {
	Project  string `yaml:"project"`
	Location string `yaml:"location"`
}

// LoadConfig builds the configuration from defaults, the environment (a .env
// file in the working directory is honoured) and finally the optional YAML
// file at path.
func LoadConfig(path string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	cfg := &Config{
		Addr:           getEnv("JOBBOARD_ADDR", ":8080"),
		JWTSecret:      getEnv("JOBBOARD_JWT_SECRET", defaultJWTSecret),
		APITimeout:     15 * time.Second,
		TokenDuration:  24 * time.Hour,
		LogLevel:       getEnv("JOBBOARD_LOG_LEVEL", "info"),
		MigrateOnStart: getEnvBool("JOBBOARD_MIGRATE_ON_START", true),
		MaxUploadBytes: 10 << 20,
		Database: DatabaseConfig{
			Driver: getEnv("JOBBOARD_DB_DRIVER", "sqlite"),
			Path:   getEnv("JOBBOARD_DATABASE_PATH", "jobboard.db"),
			URL:    getEnv("JOBBOARD_DATABASE_URL", os.Getenv("DATABASE_URL")),
		},
		Features: FeatureConfig{
			Wallet: getEnvBool("JOBBOARD_FEATURE_WALLET", false),
			News:   getEnvBool("JOBBOARD_FEATURE_NEWS", true),
		},
		Interview: InterviewConfig{
			Provider: getEnv("JOBBOARD_INTERVIEW_PROVIDER", ProviderOllama),
			Model:    getEnv("JOBBOARD_INTERVIEW_MODEL", "llama3"),
			Timeout:  20 * time.Second,
		},
		Ollama: ollama.DefaultConfig(),
		VertexAI: VertexAIConfig{
			Project:  os.Getenv("GOOGLE_CLOUD_PROJECT"),
			Location: getEnv("GOOGLE_CLOUD_LOCATION", "us-central1"),
		},
	}
	cfg.Ollama.BaseURL = getEnv("JOBBOARD_OLLAMA_URL", cfg.Ollama.BaseURL)

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate rejects unsafe or incomplete settings and fills zero values that
// have a sensible default.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("jwt_secret is required")
	}
	if c.JWTSecret == defaultJWTSecret && os.Getenv("JOBBOARD_ENV") != "development" {
		return errors.New("insecure default jwt_secret; set JOBBOARD_JWT_SECRET or JOBBOARD_ENV=development")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return errors.New("database.path is required for sqlite")
		}
	case "postgres":
		if c.Database.URL == "" {
			return errors.New("database.url is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}

	switch c.Interview.Provider {
	case ProviderOllama:
		if c.Interview.Model == "" {
			return errors.New("interview.model is required for the ollama provider")
		}
	case ProviderVertexAI:
		if c.VertexAI.Project == "" {
			return errors.New("vertexai.project is required for the vertexai provider")
		}
		if c.Interview.Model == "" {
			c.Interview.Model = "gemini-1.5-flash"
		}
	case ProviderNone:
	default:
		return fmt.Errorf("unsupported interview.provider %q", c.Interview.Provider)
	}

	if c.Interview.Timeout <= 0 {
		c.Interview.Timeout = 20 * time.Second
	}
	if c.APITimeout <= 0 {
		c.APITimeout = 15 * time.Second
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = 10 << 20
	}

	// A failed generation falls back to the canned question instead of
	// being retried.
	c.Ollama.Retries = 0

	def := ollama.DefaultConfig()
	if c.Ollama.BaseURL == "" {
		c.Ollama.BaseURL = def.BaseURL
	}
	if c.Ollama.Timeout <= 0 {
		c.Ollama.Timeout = def.Timeout
	}
	if c.Ollama.CircuitFailureThreshold <= 0 {
		c.Ollama.CircuitFailureThreshold = def.CircuitFailureThreshold
	}
	if c.Ollama.CircuitReset <= 0 {
		c.Ollama.CircuitReset = def.CircuitReset
	}

	return nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
