package calculation

import (
	"context"
	"testing"

	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Sweep_MonthlySavings(t *testing.T) {
	s := baseScenario()
	s.Plan.DesiredAnnualIncome = decimal.NewFromInt(90000)
	before := s.DeepCopy()

	result, err := NewEngine().Sweep(context.Background(), s, sampleAssets(), SweepMonthlySavings,
		decimal.Zero, decimal.NewFromInt(1000), decimal.NewFromInt(250))
	require.NoError(t, err)

	require.Len(t, result.Points, 5)
	assert.Equal(t, SweepMonthlySavings, result.Parameter)
	assert.Equal(t, 76, result.Points[0].ReadinessScore)
	assert.Equal(t, 79, result.Points[0].FundsEndAge)
	assert.Equal(t, 100, result.Points[4].ReadinessScore)
	for i := 1; i < len(result.Points); i++ {
		assert.GreaterOrEqual(t, result.Points[i].ReadinessScore, result.Points[i-1].ReadinessScore)
	}

	assert.Equal(t, before, s, "sweep must not modify the scenario")
}

func TestEngine_Sweep_RetirementAge(t *testing.T) {
	s := baseScenario()
	s.Plan.DesiredAnnualIncome = decimal.NewFromInt(90000)

	result, err := NewEngine().Sweep(context.Background(), s, sampleAssets(), SweepRetirementAge,
		decimal.NewFromInt(58), decimal.NewFromInt(64), decimal.NewFromInt(2))
	require.NoError(t, err)

	values := make([]string, 0, len(result.Points))
	for _, p := range result.Points {
		values = append(values, p.Value.String())
	}
	assert.Equal(t, []string{"58", "60", "62", "64"}, values)
	assert.Equal(t, 76, result.Points[1].ReadinessScore)
}

func TestEngine_Sweep_InflationLowersFinalAssets(t *testing.T) {
	result, err := NewEngine().Sweep(context.Background(), baseScenario(), sampleAssets(), SweepInflation,
		decimal.NewFromInt(1), decimal.NewFromInt(4), decimal.NewFromInt(1))
	require.NoError(t, err)

	for i := 1; i < len(result.Points); i++ {
		assert.True(t, result.Points[i].FinalAssets.LessThanOrEqual(result.Points[i-1].FinalAssets))
	}
}

func TestEngine_Sweep_Errors(t *testing.T) {
	engine := NewEngine()
	one := decimal.NewFromInt(1)

	tests := []struct {
		name      string
		scenario  *domain.Scenario
		parameter SweepParameter
		from, to  decimal.Decimal
		step      decimal.Decimal
	}{
		{"nil scenario", nil, SweepInflation, one, one, one},
		{"zero step", baseScenario(), SweepInflation, one, one, decimal.Zero},
		{"inverted range", baseScenario(), SweepInflation, decimal.NewFromInt(5), one, one},
		{"too many points", baseScenario(), SweepInflation, decimal.Zero, decimal.NewFromInt(1000), one},
		{"unknown parameter", baseScenario(), SweepParameter("tax_rate"), one, one, one},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Sweep(context.Background(), tt.scenario, sampleAssets(), tt.parameter, tt.from, tt.to, tt.step)
			assert.Error(t, err)
		})
	}
}

func TestEngine_Sweep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine().Sweep(ctx, baseScenario(), sampleAssets(), SweepInflation,
		decimal.NewFromInt(1), decimal.NewFromInt(3), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, context.Canceled)
}
