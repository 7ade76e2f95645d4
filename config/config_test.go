package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5250", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "database/energy.db", cfg.Database.Path)
	assert.Equal(t, "http://localhost:5001", cfg.Prediction.URL)
	assert.Equal(t, 10*time.Second, cfg.Prediction.Timeout)
	assert.Equal(t, 0, cfg.Prediction.RetryCount)
	assert.InDelta(t, 0.85, cfg.Prediction.PlaceholderConfidence, 1e-9)
	assert.Equal(t, 168*time.Hour, cfg.Auth.SessionTTL)
	assert.Empty(t, cfg.Redis.Addr)
	assert.False(t, cfg.Geocoding.Enabled)
	assert.Equal(t, 100, cfg.BatchProcessing.MaxBatchSize)
	assert.Equal(t, 3, cfg.BatchProcessing.MaxRetries)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "server overrides",
			env: map[string]string{
				"PORT":                 "8080",
				"CORS_ALLOWED_ORIGINS": "https://a.example,https://b.example",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "8080", cfg.Server.Port)
				assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
			},
		},
		{
			name: "prediction overrides",
			env: map[string]string{
				"PREDICTION_URL":                    "http://ml:9000",
				"PREDICTION_TIMEOUT":                "3s",
				"PREDICTION_PLACEHOLDER_CONFIDENCE": "0.95",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "http://ml:9000", cfg.Prediction.URL)
				assert.Equal(t, 3*time.Second, cfg.Prediction.Timeout)
				assert.InDelta(t, 0.95, cfg.Prediction.PlaceholderConfidence, 1e-9)
			},
		},
		{
			name: "redis sessions",
			env: map[string]string{
				"REDIS_ADDR": "localhost:6379",
				"REDIS_DB":   "2",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
				assert.Equal(t, 2, cfg.Redis.DB)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := LoadConfig()
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
