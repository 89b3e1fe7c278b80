package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := loadSettings("", noEnv)
	require.NoError(t, err)

	assert.Equal(t, "info", s.Log.Level)
	assert.Equal(t, "console", s.Log.Format)
	assert.Equal(t, CacheMemory, s.Cache.Backend)
	assert.Equal(t, time.Hour, s.Cache.TTL)
	assert.Equal(t, ":8080", s.Server.Addr)
	assert.Equal(t, 60, s.Server.RateLimit)
	assert.Equal(t, "readiness.db", filepath.Base(s.Store.Path))
}

func TestLoadSettings_File(t *testing.T) {
	s, err := loadSettings("../../test/testdata/settings.yaml", noEnv)
	require.NoError(t, err)

	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, "json", s.Log.Format)
	assert.Equal(t, "/tmp/readiness-test.db", s.Store.Path)
	assert.Equal(t, 128, s.Cache.MaxEntries)
	assert.Equal(t, 30*time.Minute, s.Cache.TTL)
	assert.Equal(t, "localhost:6379", s.Cache.RedisAddr, "unset keys keep defaults")
	assert.Equal(t, "127.0.0.1:9090", s.Server.Addr)
	assert.Equal(t, 10, s.Server.RateLimit)
	assert.Equal(t, 30*time.Second, s.Server.RateWindow)
}

func TestLoadSettings_EnvOverridesFile(t *testing.T) {
	s, err := loadSettings("../../test/testdata/settings.yaml", envMap(map[string]string{
		"READINESS_LOG_LEVEL":     "warn",
		"READINESS_CACHE_BACKEND": "redis",
		"READINESS_REDIS_ADDR":    "cache:6380",
		"READINESS_CACHE_TTL":     "5m",
		"READINESS_RATE_LIMIT":    "3",
		"READINESS_DB_PATH":       "/data/readiness.db",
	}))
	require.NoError(t, err)

	assert.Equal(t, "warn", s.Log.Level)
	assert.Equal(t, CacheRedis, s.Cache.Backend)
	assert.Equal(t, "cache:6380", s.Cache.RedisAddr)
	assert.Equal(t, 5*time.Minute, s.Cache.TTL)
	assert.Equal(t, 3, s.Server.RateLimit)
	assert.Equal(t, "/data/readiness.db", s.Store.Path)
	assert.Equal(t, "json", s.Log.Format)
}

func TestLoadSettings_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
		return p
	}

	tests := []struct {
		name string
		path string
		env  map[string]string
		want string
	}{
		{"missing file", filepath.Join(dir, "missing.yaml"), nil, "failed to read settings"},
		{"unknown key", write("unknown.yaml", "logging:\n  level: info\n"), nil, "failed to parse settings"},
		{"bad level", "", map[string]string{"READINESS_LOG_LEVEL": "chatty"}, "unknown log level"},
		{"bad format", "", map[string]string{"READINESS_LOG_FORMAT": "xml"}, "log format must be json or console"},
		{"bad backend", "", map[string]string{"READINESS_CACHE_BACKEND": "memcached"}, "cache backend must be"},
		{"redis without addr", "", map[string]string{"READINESS_CACHE_BACKEND": "redis", "READINESS_REDIS_ADDR": ""}, "requires redis_addr"},
		{"bad int", "", map[string]string{"READINESS_RATE_LIMIT": "lots"}, "READINESS_RATE_LIMIT"},
		{"bad duration", "", map[string]string{"READINESS_RATE_WINDOW": "soon"}, "READINESS_RATE_WINDOW"},
		{"zero rate", "", map[string]string{"READINESS_RATE_LIMIT": "0"}, "rate_limit must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadSettings(tt.path, envMap(tt.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadSettings_EmptyFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(p, nil, 0o600))

	s, err := loadSettings(p, noEnv)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings().Server, s.Server)
}
