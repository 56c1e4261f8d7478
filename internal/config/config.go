package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"

	"github.com/ykvlv/assistant-bot/internal/domain"
	"github.com/ykvlv/assistant-bot/internal/store"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken string `envconfig:"BOT_TOKEN" required:"true"`
	OwnerID  int64  `envconfig:"OWNER_ID" required:"true"`

	OpenAIKey     string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL"` // empty: api.openai.com
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-3.5-turbo"`
	EnableChatGPT bool   `envconfig:"ENABLE_CHATGPT" default:"true"`

	AllowedLanguages []string `envconfig:"ALLOWED_LANGUAGES" default:"en,hi,bn,gu,ta"`

	Database

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	PollInterval      time.Duration `envconfig:"REMINDER_POLL_INTERVAL" default:"60s"`
	BatchSize         int           `envconfig:"REMINDER_BATCH_SIZE" default:"100"`
	BackendTimeout    time.Duration `envconfig:"BACKEND_TIMEOUT" default:"30s"`
	SendTimeout       time.Duration `envconfig:"SEND_TIMEOUT" default:"10s"`
	BackendRatePerMin float64       `envconfig:"BACKEND_RATE_PER_MIN" default:"60"`
	BackendBurst      int           `envconfig:"BACKEND_BURST" default:"5"`
	Workers           int           `envconfig:"WORKERS" default:"8"`
}

// Database selects the store backend. It loads on its own for the migrate command.
type Database struct {
	DBDriver    string `envconfig:"DB_DRIVER" default:"sqlite"` // sqlite|postgres|memory
	DBPath      string `envconfig:"DB_PATH" default:"./data/assistant.db"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
}

// LoadDatabase reads only the store settings.
func LoadDatabase() (Database, error) {
	var db Database
	if err := envconfig.Process("", &db); err != nil {
		return db, err
	}
	return db, db.Validate()
}

// Validate checks the driver and its data source.
func (d Database) Validate() error {
	switch d.DBDriver {
	case store.DriverSQLite:
		if d.DBPath == "" {
			return errors.New("DB_PATH is required for sqlite")
		}
	case store.DriverPostgres:
		if d.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for postgres")
		}
	case store.DriverMemory:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", d.DBDriver)
	}
	return nil
}

// DSN returns the data source for the configured driver.
func (d Database) DSN() string {
	if d.DBDriver == store.DriverPostgres {
		return d.DatabaseURL
	}
	return d.DBPath
}

// Load reads environment variables into Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks rules envconfig tags cannot express.
func (c Config) Validate() error {
	var errs []error
	if c.OwnerID == 0 {
		errs = append(errs, errors.New("OWNER_ID must be non-zero"))
	}
	if err := c.Database.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.EnableChatGPT && c.OpenAIKey == "" && c.OpenAIBaseURL == "" {
		errs = append(errs, errors.New("OPENAI_API_KEY is required when ENABLE_CHATGPT is set"))
	}
	for _, code := range c.AllowedLanguages {
		if !isLanguageCode(strings.TrimSpace(code)) {
			errs = append(errs, fmt.Errorf("ALLOWED_LANGUAGES: %q is not an ISO 639-1 code", code))
		}
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if c.PollInterval <= 0 || c.BackendTimeout <= 0 || c.SendTimeout <= 0 {
		errs = append(errs, errors.New("intervals and timeouts must be positive"))
	}
	if c.BatchSize <= 0 || c.Workers <= 0 {
		errs = append(errs, errors.New("REMINDER_BATCH_SIZE and WORKERS must be positive"))
	}
	return errors.Join(errs...)
}

// Languages returns the normalized allow-list.
func (c Config) Languages() domain.Languages {
	return domain.NewLanguages(c.AllowedLanguages)
}

func isLanguageCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range strings.ToLower(s) {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
