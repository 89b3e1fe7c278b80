package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/rgehrsitz/readiness/internal/output"
)

func newScoreCmd(a *app) *cobra.Command {
	var (
		scenarioName string
		transforms   []string
	)

	cmd := &cobra.Command{
		Use:   "score [plan-file]",
		Short: "Print the readiness score of every scenario in a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadPlan(args[0])
			if err != nil {
				return err
			}
			engine := a.engine()

			var results []*domain.ProjectionResult
			if scenarioName != "" || len(transforms) > 0 {
				s, err := buildScenario(cfg, scenarioName, transforms)
				if err != nil {
					return err
				}
				r, err := engine.Evaluate(cmd.Context(), s, cfg.Client.Assets)
				if err != nil {
					return err
				}
				results = append(results, r)
			} else {
				results, err = engine.RunConfiguration(cmd.Context(), cfg)
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			for _, r := range results {
				fmt.Fprintf(out, "%-28s %3d / 100  funds last to %d  %s\n",
					r.Scenario, r.ReadinessScore, r.FundsEndAge, output.Verdict(r.ReadinessScore))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenarioName, "scenario", "s", "", "Score only this scenario")
	cmd.Flags().StringArrayVarP(&transforms, "transform", "t", nil, "Transform to apply, as name:key=value,... (repeatable)")
	return cmd
}
