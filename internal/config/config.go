package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	API       APIConfig
	Session   SessionConfig
	Logging   LoggingConfig
	DevServer DevServerConfig
	Watch     WatchConfig
}

type AppConfig struct {
	Name        string
	Environment string
}

// APIConfig describes the sales API the client talks to
type APIConfig struct {
	// BaseURL is joined with every endpoint path, e.g. http://localhost:8000/api
	BaseURL string
	// Timeout bounds every request (seconds)
	Timeout int
	// AITimeout bounds AI workflow triggers, which run model inference server-side (seconds)
	AITimeout int
	UserAgent string
}

// SessionConfig controls where the bearer token is persisted between runs
type SessionConfig struct {
	// Backend is "file", "sqlite" or "memory"
	Backend string
	// Path is the file or sqlite database path. Ignored by the memory backend.
	Path string
	// Key is the well-known name the token is stored under
	Key string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// DevServerConfig configures the in-memory development backend
type DevServerConfig struct {
	Port               int
	JWTSecret          string
	TokenTTL           int // minutes
	RateLimitPerMinute int
	AllowedOrigins     []string
}

// WatchConfig configures periodic dashboard refresh
type WatchConfig struct {
	Cron string
}

// TimeoutDuration returns the request timeout as duration
func (a *APIConfig) TimeoutDuration() time.Duration {
	return time.Duration(a.Timeout) * time.Second
}

// AITimeoutDuration returns the AI workflow timeout as duration
func (a *APIConfig) AITimeoutDuration() time.Duration {
	return time.Duration(a.AITimeout) * time.Second
}

// TokenTTLDuration returns the dev server token lifetime as duration
func (d *DevServerConfig) TokenTTLDuration() time.Duration {
	return time.Duration(d.TokenTTL) * time.Minute
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	v, err := NewViper()
	if err != nil {
		return nil, err
	}
	return fromViper(v)
}

// NewViper returns a viper instance with defaults, the optional config file
// and environment overrides applied. Command-line flags are bound on top of it.
func NewViper() (*viper.Viper, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// LoadFrom builds a Config from an already populated viper instance.
// Callers use it after binding command-line flags.
func LoadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Deployment override for the API base address
	if url := v.GetString("SALESINTEL_API_URL"); url != "" {
		cfg.API.BaseURL = url
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	if cfg.Session.Path == "" {
		cfg.Session.Path = defaultSessionPath(cfg.Session.Backend)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.baseURL is required")
	}
	switch c.Session.Backend {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("unknown session backend %q", c.Session.Backend)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	return nil
}

// defaultSessionPath picks the session location for a backend when none is configured
func defaultSessionPath(backend string) string {
	name := "session.json"
	if backend == "sqlite" {
		name = "session.db"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".salesintel", name)
	}
	return filepath.Join(home, ".salesintel", name)
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "Sales Intelligence")
	v.SetDefault("app.environment", "development")

	// API defaults
	v.SetDefault("api.baseURL", "http://localhost:8000/api")
	v.SetDefault("api.timeout", 30)
	v.SetDefault("api.aiTimeout", 120)
	v.SetDefault("api.userAgent", "salesintel/1.0")

	// Session defaults
	v.SetDefault("session.backend", "file")
	v.SetDefault("session.path", "")
	v.SetDefault("session.key", "token")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Dev server defaults
	v.SetDefault("devServer.port", 8000)
	v.SetDefault("devServer.jwtSecret", "dev-secret-change-me")
	v.SetDefault("devServer.tokenTTL", 60*24)
	v.SetDefault("devServer.rateLimitPerMinute", 600)
	v.SetDefault("devServer.allowedOrigins", []string{"http://localhost:3000"})

	// Watch defaults
	v.SetDefault("watch.cron", "@every 30s")
}
