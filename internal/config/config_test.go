package config

import (
	"io/fs"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests

func TestConfig_ParseDefaults(t *testing.T) {
	os.Clearenv()
	cfg := NewDefaultConfiguration()
	err := cfg.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfiguration(), cfg)
}

func TestConfig_ParseEnv(t *testing.T) {
	os.Clearenv()
	t.Setenv("SERVER_ADDRESS", ":9999")
	t.Setenv("BASE_URL", "http://short.example")
	t.Setenv("BACKEND_URL", "http://backend:8081")
	t.Setenv("BACKEND_TOKEN", "token")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("PAGE_LIMIT", "30")
	t.Setenv("FILE_STORAGE_PATH", "journal.json")
	t.Setenv("DATABASE_DSN", "some_dsn")
	t.Setenv("SESSION_KEY", "some_session_key")
	t.Setenv("ADMIN_USER", "root")
	t.Setenv("ADMIN_PASSWORD_HASH", "some_hash")
	t.Setenv("TRUSTED_SUBNET", "10.0.0.0/8")
	t.Setenv("LOG_LEVEL", "warn")
	cfg := NewDefaultConfiguration()
	err := cfg.Parse(nil)
	require.NoError(t, err)
	expCfg := Config{
		ServerAddress:     ":9999",
		BaseURL:           "http://short.example",
		BackendURL:        "http://backend:8081",
		BackendToken:      "token",
		BackendTimeout:    3 * time.Second,
		PageLimit:         30,
		FileStoragePath:   "journal.json",
		DatabaseDSN:       "some_dsn",
		SessionKey:        "some_session_key",
		AdminUser:         "root",
		AdminPasswordHash: "some_hash",
		TrustedSubnet:     "10.0.0.0/8",
		LogLevel:          "warn",
	}
	assert.Equal(t, &expCfg, cfg)
}

func TestConfig_ParseFlags(t *testing.T) {
	os.Clearenv()
	t.Setenv("SERVER_ADDRESS", ":9999")
	t.Setenv("DATABASE_DSN", "env_dsn")
	cfg := NewDefaultConfiguration()
	args := []string{"-c", "testdata/config_test.yaml", "-a", ":8080", "-f", "journal.json", "-l", "500", "-t", "192.168.0.0/24"}
	err := cfg.Parse(args)
	require.NoError(t, err)
	expCfg := Config{
		ServerAddress:   ":8080",
		BaseURL:         "https://sho.rt",
		BackendURL:      "http://backend.local:8081",
		BackendTimeout:  2 * time.Second,
		PageLimit:       100,
		FileStoragePath: "journal.json",
		DatabaseDSN:     "env_dsn",
		AdminUser:       "admin",
		TrustedSubnet:   "192.168.0.0/24",
		LogLevel:        "debug",
	}
	assert.Equal(t, &expCfg, cfg)
}

func TestConfig_ParseJSONFromEnvPath(t *testing.T) {
	os.Clearenv()
	t.Setenv("CONFIG", "testdata/config_test.json")
	cfg := NewDefaultConfiguration()
	err := cfg.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.ServerAddress)
	assert.Equal(t, "http://json-backend:8081", cfg.BackendURL)
	assert.Equal(t, 10, cfg.PageLimit)
	assert.Equal(t, defaultBackendTimeout, cfg.BackendTimeout)
}

func TestConfig_ParseConfigPathError(t *testing.T) {
	os.Clearenv()
	cfg := NewDefaultConfiguration()
	err := cfg.Parse([]string{"-c", "nonexistent_file.json"})
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	var pathErr *fs.PathError
	assert.ErrorAs(t, err, &pathErr)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		param  string
	}{
		{"empty server address", func(c *Config) { c.ServerAddress = "" }, "SERVER_ADDRESS"},
		{"relative backend url", func(c *Config) { c.BackendURL = "backend" }, "BACKEND_URL"},
		{"bad base url", func(c *Config) { c.BaseURL = "::" }, "BASE_URL"},
		{"bad subnet", func(c *Config) { c.TrustedSubnet = "10.0.0.1" }, "TRUSTED_SUBNET"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfiguration()
			tt.modify(cfg)
			err := cfg.Validate()
			var paramErr *InvalidParameterError
			require.ErrorAs(t, err, &paramErr)
			assert.Equal(t, tt.param, paramErr.Name)
		})
	}
}

// Benchmarks

func BenchmarkConfig_Parse(b *testing.B) {
	os.Clearenv()
	_ = os.Setenv("SERVER_ADDRESS", "some_server_address")
	_ = os.Setenv("BACKEND_URL", "http://backend:8081")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cfg := NewDefaultConfiguration()
		if err := cfg.Parse(nil); err != nil {
			b.Fatal(err)
		}
	}
}
