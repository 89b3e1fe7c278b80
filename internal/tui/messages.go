package tui

import (
	"github.com/rgehrsitz/readiness/internal/breakeven"
	"github.com/rgehrsitz/readiness/internal/compare"
	"github.com/rgehrsitz/readiness/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneHome Scene = iota
	SceneScenarios
	SceneParameters
	SceneCompare
	SceneOptimize
	SceneResults
	SceneHelp
)

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ProjectionCompleteMsg carries a live projection of the working scenario.
// Seq identifies the request so stale results can be dropped.
type ProjectionCompleteMsg struct {
	Seq    int
	Result *domain.ProjectionResult
	Err    error
}

// ComparisonCompleteMsg carries a template comparison
type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}

// OptimizationCompleteMsg carries a solver result. Exactly one of Single
// and Multi is set on success.
type OptimizationCompleteMsg struct {
	Single *breakeven.OptimizationResult
	Multi  *breakeven.MultiDimensionalResult
	Err    error
}
