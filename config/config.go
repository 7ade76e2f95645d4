package config

import (
	"errors"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Server struct {
		Port string `env:"PORT" envDefault:"5250"`

		// Origins allowed to call the API from the browser
		AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

		LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

		ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	}

	Database struct {
		// Path to the sqlite file backing the data store
		Path string `env:"DATABASE_PATH" envDefault:"database/energy.db"`
	}

	Prediction struct {
		// Base URL of the bill prediction service
		URL string `env:"PREDICTION_URL" envDefault:"http://localhost:5001"`

		Timeout time.Duration `env:"PREDICTION_TIMEOUT" envDefault:"10s"`

		// Automatic retries on transport errors and 5xx responses
		RetryCount int `env:"PREDICTION_RETRY_COUNT" envDefault:"0"`

		// Stored with every saved prediction until the service reports its own score
		PlaceholderConfidence float64 `env:"PREDICTION_PLACEHOLDER_CONFIDENCE" envDefault:"0.85"`
	}

	Auth struct {
		SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	}

	Redis struct {
		// Sessions are kept in the database when empty
		Addr     string `env:"REDIS_ADDR"`
		Password string `env:"REDIS_PASSWORD"`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Geocoding struct {
		Enabled   bool   `env:"GEOCODING_ENABLED" envDefault:"false"`
		URL       string `env:"GEOCODING_URL" envDefault:"https://nominatim.openstreetmap.org"`
		UserAgent string `env:"GEOCODING_USER_AGENT" envDefault:"HomeEnergy Tracker/1.0"`
	}

	// BatchProcessing configuration
	BatchProcessing struct {
		// Number of import batches buffered before pushes are rejected
		QueueSize int `env:"BATCH_QUEUE_SIZE" envDefault:"100"`

		// Maximum number of records written per transaction
		MaxBatchSize int `env:"BATCH_MAX_SIZE" envDefault:"100"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"BATCH_MAX_RETRIES" envDefault:"3"`

		// Delay between retries
		RetryDelay time.Duration `env:"BATCH_RETRY_DELAY" envDefault:"5s"`
	}
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
