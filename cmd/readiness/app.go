package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/readiness/internal/cache"
	"github.com/rgehrsitz/readiness/internal/calculation"
	"github.com/rgehrsitz/readiness/internal/config"
	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/rgehrsitz/readiness/internal/logging"
	"github.com/rgehrsitz/readiness/internal/store"
	"github.com/rgehrsitz/readiness/internal/transform"
)

// app carries what every subcommand shares: settings, the logger and
// resources to release when the command finishes
type app struct {
	configPath string
	debug      bool

	settings *config.Settings
	logger   *zap.Logger
	closers  []func() error
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings(a.configPath)
	if err != nil {
		return err
	}
	if a.debug {
		settings.Log.Level = "debug"
	}

	logger, err := logging.New(settings.Log.Level, settings.Log.Format)
	if err != nil {
		return err
	}
	a.settings = settings
	a.logger = logger
	return nil
}

func (a *app) teardown() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && a.logger != nil {
			a.logger.Warn("cleanup failed", zap.Error(err))
		}
	}
	a.closers = nil
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) onClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

// engine builds a calculation engine with the configured result cache
func (a *app) engine() *calculation.Engine {
	var engine *calculation.Engine
	switch a.settings.Cache.Backend {
	case config.CacheMemory:
		engine = calculation.NewEngineWithCache(cache.NewMemoryCache(a.settings.Cache.MaxEntries))
	case config.CacheRedis:
		rc := cache.NewRedisCache(a.settings.Cache.RedisAddr, a.settings.Cache.TTL)
		a.onClose(rc.Close)
		engine = calculation.NewEngineWithCache(rc)
	default:
		engine = calculation.NewEngine()
	}
	engine.SetLogger(a.logger.Sugar())
	return engine
}

func (a *app) openStore(path string) (*store.Store, error) {
	if path == "" {
		path = a.settings.Store.Path
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	a.onClose(st.Close)
	a.logger.Debug("opened store", zap.String("path", path))
	return st, nil
}

func (a *app) loadPlan(path string) (*domain.Configuration, error) {
	cfg, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("loaded plan",
		zap.String("path", path),
		zap.String("client", cfg.Client.Name),
		zap.Int("assets", len(cfg.Client.Assets)),
		zap.Strings("scenarios", cfg.ScenarioNames()))
	return cfg, nil
}

// buildScenario resolves a plan scenario and applies --transform specs to it
func buildScenario(cfg *domain.Configuration, name string, specs []string) (*domain.Scenario, error) {
	s, err := cfg.BuildScenario(name)
	if err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return s, nil
	}
	transforms, err := transform.NewTransformRegistry().ParseTransformSpecs(specs)
	if err != nil {
		return nil, fmt.Errorf("invalid --transform: %w", err)
	}
	return transform.ApplyTransforms(s, transforms)
}
