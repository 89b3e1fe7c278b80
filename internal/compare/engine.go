package compare

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rgehrsitz/readiness/internal/calculation"
	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/rgehrsitz/readiness/internal/transform"
)

// maxParallel bounds concurrent evaluations per comparison
const maxParallel = 4

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine using the built-in templates
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
	}
}

// Compare evaluates the base scenario and one alternative per template
func (ce *CompareEngine) Compare(
	ctx context.Context,
	base *domain.Scenario,
	assets []domain.Asset,
	templates []string,
) (*ComparisonSet, error) {
	if base == nil {
		return nil, fmt.Errorf("base scenario cannot be nil")
	}

	alternatives := make([]*domain.Scenario, 0, len(templates))
	descriptions := make([]string, 0, len(templates))
	for _, templateName := range templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(base, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}
		modified.Name = base.Name + "_" + template.Name

		alternatives = append(alternatives, modified)
		descriptions = append(descriptions, template.Description)
	}

	compSet, err := ce.CompareScenarios(ctx, base, alternatives, assets)
	if err != nil {
		return nil, err
	}
	for i := range compSet.AlternativeResults {
		compSet.AlternativeResults[i].Description = descriptions[i]
	}
	return compSet, nil
}

// CompareScenarios compares explicit scenarios against a base. Alternatives
// are evaluated concurrently; results keep the order given.
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	base *domain.Scenario,
	alternatives []*domain.Scenario,
	assets []domain.Asset,
) (*ComparisonSet, error) {
	baseSummary, err := ce.CalcEngine.Evaluate(ctx, base, assets)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseSummary)

	results := make([]*domain.ProjectionResult, len(alternatives))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i, alt := range alternatives {
		g.Go(func() error {
			r, err := ce.CalcEngine.Evaluate(gctx, alt, assets)
			if err != nil {
				name := "<nil>"
				if alt != nil {
					name = alt.Name
				}
				return fmt.Errorf("failed to calculate scenario %s: %w", name, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: make([]ComparisonResult, 0, len(results)),
	}
	for _, r := range results {
		altResult := ce.MetricsCalculator.CalculateMetrics(r)
		compSet.AlternativeResults = append(compSet.AlternativeResults,
			ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}

// CompareConfiguration compares scenarios declared in a plan file
func (ce *CompareEngine) CompareConfiguration(
	ctx context.Context,
	config *domain.Configuration,
	baseScenarioName string,
	alternativeScenarioNames []string,
) (*ComparisonSet, error) {
	base, err := config.BuildScenario(baseScenarioName)
	if err != nil {
		return nil, fmt.Errorf("base scenario: %w", err)
	}

	alternatives := make([]*domain.Scenario, 0, len(alternativeScenarioNames))
	for _, name := range alternativeScenarioNames {
		alt, err := config.BuildScenario(name)
		if err != nil {
			return nil, fmt.Errorf("alternative scenario: %w", err)
		}
		alternatives = append(alternatives, alt)
	}

	return ce.CompareScenarios(ctx, base, alternatives, config.Client.Assets)
}
