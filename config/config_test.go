package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := LoadConfig()

	assert.NilError(t, err)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "1.0.0", cfg.Version)
	assert.Equal(t, "http://jsonplaceholder.typicode.com/posts/", cfg.PostsURL)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.Equal(t, "initialState", cfg.StorageKey)
	assert.Equal(t, ":8080", cfg.Address())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("LOG_LEVEL", "DEBUG")
	os.Setenv("SHUTDOWN_TIMEOUT", "20s")
	os.Setenv("VERSION", "2.0.0-beta")
	os.Setenv("POSTS_URL", "https://example.com/posts")
	os.Setenv("FETCH_TIMEOUT", "3s")
	os.Setenv("STORAGE_BACKEND", "redis")
	os.Setenv("STORAGE_KEY", "posts")
	os.Setenv("REDIS_URL", "redis://cache:6379/2")

	defer func() {
		os.Clearenv()
	}()

	cfg, err := LoadConfig()

	assert.NilError(t, err)
	assert.Equal(t, 9000, cfg.ServerPort)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, 20*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "2.0.0-beta", cfg.Version)
	assert.Equal(t, "https://example.com/posts", cfg.PostsURL)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, StorageRedis, cfg.StorageBackend)
	assert.Equal(t, "posts", cfg.StorageKey)
	assert.Equal(t, "redis://cache:6379/2", cfg.RedisURL)
	assert.Equal(t, ":9000", cfg.Address())
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	os.Setenv("PORT", "not-a-number")
	os.Setenv("FETCH_TIMEOUT", "not-a-duration")

	defer func() {
		os.Clearenv()
	}()

	cfg, err := LoadConfig()

	assert.NilError(t, err)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
}

func TestLoadConfig_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"port too low", map[string]string{"PORT": "0"}, "invalid server port"},
		{"port too high", map[string]string{"PORT": "65536"}, "invalid server port"},
		{"invalid log level", map[string]string{"LOG_LEVEL": "verbose"}, "invalid log level"},
		{"shutdown too long", map[string]string{"SHUTDOWN_TIMEOUT": "10m"}, "must not exceed 5 minutes"},
		{"negative shutdown", map[string]string{"SHUTDOWN_TIMEOUT": "-1s"}, "invalid shutdown timeout"},
		{"relative posts url", map[string]string{"POSTS_URL": "/posts"}, "invalid posts URL"},
		{"ftp posts url", map[string]string{"POSTS_URL": "ftp://example.com/posts"}, "invalid posts URL"},
		{"zero fetch timeout", map[string]string{"FETCH_TIMEOUT": "0s"}, "invalid fetch timeout"},
		{"unknown backend", map[string]string{"STORAGE_BACKEND": "sqlite"}, "invalid storage backend"},
		{"blank version", map[string]string{"VERSION": "   "}, "version cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.env {
				os.Setenv(k, v)
			}
			defer os.Clearenv()

			cfg, err := LoadConfig()

			assert.Assert(t, cfg == nil)
			assert.Assert(t, err != nil)
			assert.Assert(t, strings.Contains(err.Error(), tt.wantErr), err.Error())
		})
	}
}

func TestLoadConfig_Normalization(t *testing.T) {
	os.Clearenv()
	os.Setenv("LOG_LEVEL", " warn ")
	os.Setenv("STORAGE_BACKEND", "Redis")
	os.Setenv("VERSION", " 1.2.3 ")
	defer os.Clearenv()

	cfg, err := LoadConfig()

	assert.NilError(t, err)
	assert.Equal(t, "WARN", cfg.LogLevel)
	assert.Equal(t, StorageRedis, cfg.StorageBackend)
	assert.Equal(t, "1.2.3", cfg.Version)
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NilError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFile_YAMLLayer(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	path := writeConfigFile(t, `
server_port: 9100
log_level: debug
posts_url: https://example.com/api/posts
fetch_timeout: 2s
storage_backend: redis
redis_url: redis://cache:6379/0
`)

	cfg, err := LoadConfigFile(path)

	assert.NilError(t, err)
	assert.Equal(t, 9100, cfg.ServerPort)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "https://example.com/api/posts", cfg.PostsURL)
	assert.Equal(t, 2*time.Second, cfg.FetchTimeout)
	assert.Equal(t, StorageRedis, cfg.StorageBackend)
	assert.Equal(t, "initialState", cfg.StorageKey, "keys missing from the file keep defaults")
}

func TestLoadConfigFile_EnvOverridesFile(t *testing.T) {
	os.Clearenv()
	os.Setenv("PORT", "9200")
	defer os.Clearenv()

	cfg, err := LoadConfigFile(writeConfigFile(t, "server_port: 9100\n"))

	assert.NilError(t, err)
	assert.Equal(t, 9200, cfg.ServerPort)
}

func TestLoadConfigFile_Errors(t *testing.T) {
	os.Clearenv()

	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = LoadConfigFile(writeConfigFile(t, "server_port: [not, a, number]\n"))
	assert.ErrorContains(t, err, "failed to parse config file")
}
