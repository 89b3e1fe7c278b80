package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/readiness/internal/logging"
)

// Cache backends
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Settings are the application-level options shared by every command
type Settings struct {
	Log    LogSettings    `yaml:"log"`
	Store  StoreSettings  `yaml:"store"`
	Cache  CacheSettings  `yaml:"cache"`
	Server ServerSettings `yaml:"server"`
}

type LogSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type StoreSettings struct {
	Path string `yaml:"path"`
}

type CacheSettings struct {
	Backend    string        `yaml:"backend"`
	MaxEntries int           `yaml:"max_entries"`
	RedisAddr  string        `yaml:"redis_addr"`
	TTL        time.Duration `yaml:"ttl"`
}

type ServerSettings struct {
	Addr       string        `yaml:"addr"`
	RateLimit  int           `yaml:"rate_limit"`
	RateWindow time.Duration `yaml:"rate_window"`
}

// DefaultSettings returns the settings used when no file or environment
// override is present
func DefaultSettings() *Settings {
	dbPath := filepath.Join(".readiness", "readiness.db")
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".readiness", "readiness.db")
	}
	return &Settings{
		Log:   LogSettings{Level: "info", Format: logging.FormatConsole},
		Store: StoreSettings{Path: dbPath},
		Cache: CacheSettings{
			Backend:    CacheMemory,
			MaxEntries: 512,
			RedisAddr:  "localhost:6379",
			TTL:        time.Hour,
		},
		Server: ServerSettings{
			Addr:       ":8080",
			RateLimit:  60,
			RateWindow: time.Minute,
		},
	}
}

// LoadSettings layers the settings file at path (optional) and READINESS_*
// environment variables over the defaults
func LoadSettings(path string) (*Settings, error) {
	return loadSettings(path, os.LookupEnv)
}

func loadSettings(path string, lookup func(string) (string, bool)) (*Settings, error) {
	settings := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(settings); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
		}
	}

	if err := settings.applyEnv(lookup); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

func (s *Settings) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"READINESS_LOG_LEVEL":     &s.Log.Level,
		"READINESS_LOG_FORMAT":    &s.Log.Format,
		"READINESS_DB_PATH":       &s.Store.Path,
		"READINESS_CACHE_BACKEND": &s.Cache.Backend,
		"READINESS_REDIS_ADDR":    &s.Cache.RedisAddr,
		"READINESS_SERVER_ADDR":   &s.Server.Addr,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"READINESS_CACHE_MAX_ENTRIES": &s.Cache.MaxEntries,
		"READINESS_RATE_LIMIT":        &s.Server.RateLimit,
	}
	for key, dst := range ints {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = n
		}
	}

	durations := map[string]*time.Duration{
		"READINESS_CACHE_TTL":   &s.Cache.TTL,
		"READINESS_RATE_WINDOW": &s.Server.RateWindow,
	}
	for key, dst := range durations {
		if v, ok := lookup(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = d
		}
	}
	return nil
}

// Validate checks option values that would fail later at startup
func (s *Settings) Validate() error {
	if _, err := logging.ParseLevel(s.Log.Level); err != nil {
		return err
	}
	if s.Log.Format != logging.FormatJSON && s.Log.Format != logging.FormatConsole {
		return fmt.Errorf("log format must be json or console, got %q", s.Log.Format)
	}
	switch s.Cache.Backend {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if s.Cache.RedisAddr == "" {
			return fmt.Errorf("redis cache requires redis_addr")
		}
	default:
		return fmt.Errorf("cache backend must be none, memory or redis, got %q", s.Cache.Backend)
	}
	if s.Cache.MaxEntries < 0 {
		return fmt.Errorf("cache max_entries cannot be negative")
	}
	if s.Cache.TTL < 0 {
		return fmt.Errorf("cache ttl cannot be negative")
	}
	if s.Store.Path == "" {
		return fmt.Errorf("store path is required")
	}
	if s.Server.RateLimit <= 0 {
		return fmt.Errorf("server rate_limit must be positive")
	}
	if s.Server.RateWindow <= 0 {
		return fmt.Errorf("server rate_window must be positive")
	}
	return nil
}
