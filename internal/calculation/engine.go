package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/readiness/internal/cache"
	"github.com/rgehrsitz/readiness/internal/domain"
)

// ResultCache memoizes projection results by input key
type ResultCache interface {
	Get(ctx context.Context, key string) (*domain.ProjectionResult, bool, error)
	Set(ctx context.Context, key string, result *domain.ProjectionResult) error
}

// Engine runs projections and scoring for scenarios, memoizing results when
// a cache is configured.
type Engine struct {
	Cache  ResultCache
	Logger Logger
}

// NewEngine creates an engine without a cache
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// NewEngineWithCache creates an engine that memoizes results in c
func NewEngineWithCache(c ResultCache) *Engine {
	return &Engine{Cache: c, Logger: NopLogger{}}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

func (e *Engine) logger() Logger {
	if e.Logger == nil {
		return NopLogger{}
	}
	return e.Logger
}

// Evaluate projects a scenario over the given assets and scores it.
// The only error returned is a cancelled context; cache failures are logged
// and the result is recomputed.
func (e *Engine) Evaluate(ctx context.Context, scenario *domain.Scenario, assets []domain.Asset) (*domain.ProjectionResult, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := e.logger()
	var key string
	if e.Cache != nil {
		k, err := cache.Key(scenario.Plan, scenario.Overlay, assets)
		if err != nil {
			log.Warnf("cache key for scenario %q: %v", scenario.Name, err)
		} else {
			key = k
			cached, ok, err := e.Cache.Get(ctx, key)
			if err != nil {
				log.Warnf("cache lookup for scenario %q: %v", scenario.Name, err)
			} else if ok {
				log.Debugf("cache hit for scenario %q", scenario.Name)
				cached.Scenario = scenario.Name
				return cached, nil
			}
		}
	}

	result := Evaluate(scenario, assets)
	log.Debugf("scenario %q: %d years, readiness %d, funds end at %d",
		scenario.Name, len(result.Projections), result.ReadinessScore, result.FundsEndAge)
	for _, w := range result.Warnings {
		log.Debugf("scenario %q: %s", scenario.Name, w.String())
	}

	if key != "" {
		if err := e.Cache.Set(ctx, key, result); err != nil {
			log.Warnf("cache store for scenario %q: %v", scenario.Name, err)
		}
	}
	return result, nil
}

// RunConfiguration evaluates every scenario declared in a plan file
func (e *Engine) RunConfiguration(ctx context.Context, cfg *domain.Configuration) ([]*domain.ProjectionResult, error) {
	scenarios, err := cfg.BuildScenarios()
	if err != nil {
		return nil, fmt.Errorf("failed to build scenarios: %w", err)
	}

	results := make([]*domain.ProjectionResult, 0, len(scenarios))
	for _, s := range scenarios {
		r, err := e.Evaluate(ctx, s, cfg.Client.Assets)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate scenario %s: %w", s.Name, err)
		}
		results = append(results, r)
	}
	return results, nil
}

// Evaluate is the uncached projection + scoring pipeline
func Evaluate(scenario *domain.Scenario, assets []domain.Asset) *domain.ProjectionResult {
	projections := Project(scenario.Plan, scenario.Overlay, assets)
	return &domain.ProjectionResult{
		Scenario:       scenario.Name,
		Projections:    projections,
		ReadinessScore: ReadinessScore(projections, scenario.Plan.LifeExpectancy),
		FundsEndAge:    FundsEndAge(projections),
		RetirementAge:  RetirementAge(projections),
		Warnings:       Validate(scenario.Plan, scenario.Overlay, assets),
	}
}
