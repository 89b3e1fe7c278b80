package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/readiness/internal/breakeven"
)

func newSolveCmd(a *app) *cobra.Command {
	var (
		scenarioName string
		transforms   []string
		targetScore  int
		by           string
		maxSavings   string
		maxAge       int
		format       string
	)

	cmd := &cobra.Command{
		Use:   "solve [plan-file]",
		Short: "Find the extra savings or retirement age that reaches a target score",
		Long: `Search for the smallest change that lifts a scenario to the target
readiness score.

Examples:
  readiness solve plan.yaml --scenario Comfortable --by savings
  readiness solve plan.yaml --target-score 90 --by retirement_age --max-age 70
  readiness solve plan.yaml --by all --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := breakeven.ParseTarget(by)
			if err != nil {
				return err
			}

			constraints := breakeven.DefaultConstraints(targetScore)
			if maxSavings != "" {
				limit, err := decimal.NewFromString(maxSavings)
				if err != nil {
					return fmt.Errorf("invalid --max-savings %q: %w", maxSavings, err)
				}
				constraints.MaxMonthlySavings = &limit
			}
			if maxAge > 0 {
				constraints.MaxRetirementAge = &maxAge
			}

			cfg, err := a.loadPlan(args[0])
			if err != nil {
				return err
			}
			base, err := buildScenario(cfg, scenarioName, transforms)
			if err != nil {
				return err
			}

			solver := breakeven.NewDefaultSolver(a.engine())
			out := cmd.OutOrStdout()
			jsonOut := strings.EqualFold(format, "json")
			if !jsonOut && !strings.EqualFold(format, "table") {
				return fmt.Errorf("unknown output format: %s (valid: table, json)", format)
			}

			if target == breakeven.OptimizeAll {
				result, err := solver.OptimizeMultiDimensional(cmd.Context(), base, cfg.Client.Assets, constraints)
				if err != nil {
					return err
				}
				if jsonOut {
					text, err := (&breakeven.JSONFormatter{Pretty: true}).FormatMultiDimensional(result)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, text)
					return nil
				}
				fmt.Fprint(out, (&breakeven.TableFormatter{}).FormatMultiDimensional(result))
				return nil
			}

			result, err := solver.Optimize(cmd.Context(), breakeven.OptimizationRequest{
				BaseScenario: base,
				Assets:       cfg.Client.Assets,
				Target:       target,
				Constraints:  constraints,
			})
			if err != nil {
				return err
			}
			if jsonOut {
				text, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, text)
				return nil
			}
			fmt.Fprint(out, (&breakeven.TableFormatter{}).Format(result))
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenarioName, "scenario", "s", "", "Scenario to solve for (default: first in the plan)")
	cmd.Flags().StringArrayVarP(&transforms, "transform", "t", nil, "Transform to apply first, as name:key=value,... (repeatable)")
	cmd.Flags().IntVar(&targetScore, "target-score", 100, "Readiness score to reach (1-100)")
	cmd.Flags().StringVar(&by, "by", string(breakeven.OptimizeSavings), "What to change: savings, retirement_age or all")
	cmd.Flags().StringVar(&maxSavings, "max-savings", "", "Upper bound for extra monthly savings (RM)")
	cmd.Flags().IntVar(&maxAge, "max-age", 0, "Latest retirement age to consider")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json)")
	return cmd
}
