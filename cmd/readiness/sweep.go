package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/readiness/internal/calculation"
	"github.com/rgehrsitz/readiness/internal/output"
)

func newSweepCmd(a *app) *cobra.Command {
	var (
		scenarioName string
		parameter    string
		from, to     string
		step         string
		format       string
	)

	cmd := &cobra.Command{
		Use:   "sweep [plan-file]",
		Short: "Show how the readiness score responds to one input",
		Long: `Evaluate a scenario across a range of values for one input.

Parameters: return_adjustment, inflation (percent), monthly_savings (RM),
retirement_age (years).

Examples:
  readiness sweep plan.yaml --parameter return_adjustment --from -2 --to 2 --step 0.5
  readiness sweep plan.yaml --scenario Comfortable --parameter monthly_savings --from 0 --to 1000 --step 250`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.GetSweepFormatter(format)
			if formatter == nil {
				return fmt.Errorf("unknown output format: %s (valid: console, csv, json)", format)
			}
			values := make([]decimal.Decimal, 3)
			for i, raw := range []string{from, to, step} {
				v, err := decimal.NewFromString(raw)
				if err != nil {
					return fmt.Errorf("invalid range value %q: %w", raw, err)
				}
				values[i] = v
			}

			cfg, err := a.loadPlan(args[0])
			if err != nil {
				return err
			}
			s, err := cfg.BuildScenario(scenarioName)
			if err != nil {
				return err
			}

			result, err := a.engine().Sweep(cmd.Context(), s, cfg.Client.Assets,
				calculation.SweepParameter(parameter), values[0], values[1], values[2])
			if err != nil {
				return err
			}
			text, err := formatter.FormatSweep(result)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenarioName, "scenario", "s", "", "Scenario to sweep (default: first in the plan)")
	cmd.Flags().StringVar(&parameter, "parameter", string(calculation.SweepReturnAdjustment), "Input to vary")
	cmd.Flags().StringVar(&from, "from", "-2", "First value")
	cmd.Flags().StringVar(&to, "to", "2", "Last value")
	cmd.Flags().StringVar(&step, "step", "1", "Increment between values")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (console, csv, json)")
	return cmd
}
