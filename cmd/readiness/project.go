package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/readiness/internal/output"
)

func newProjectCmd(a *app) *cobra.Command {
	var (
		scenarioName string
		transforms   []string
		format       string
		outputDir    string
	)

	cmd := &cobra.Command{
		Use:   "project [plan-file]",
		Short: "Project a scenario year by year and score it",
		Long: `Project a scenario from the plan file year by year and print a report.

Transforms adjust the scenario before it is projected:
  readiness project plan.yaml --scenario Base --transform add_savings:amount=500
  readiness project plan.yaml --transform postpone_retirement:years=3 --format html --output-dir reports`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unknown format %q (available: %s; aliases: %s)", format,
					strings.Join(output.AvailableFormatterNames(), ", "),
					strings.Join(output.AvailableFormatAliases(), ", "))
			}

			cfg, err := a.loadPlan(args[0])
			if err != nil {
				return err
			}
			s, err := buildScenario(cfg, scenarioName, transforms)
			if err != nil {
				return err
			}

			result, err := a.engine().Evaluate(cmd.Context(), s, cfg.Client.Assets)
			if err != nil {
				return err
			}
			report := output.NewReport(cfg.Client, s, result, time.Now())

			if outputDir != "" {
				path, err := output.WriteFormatted(formatter, report, outputDir)
				if err != nil {
					return fmt.Errorf("failed to write report: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
				return nil
			}

			data, err := formatter.Format(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&scenarioName, "scenario", "s", "", "Scenario to project (default: first in the plan)")
	cmd.Flags().StringArrayVarP(&transforms, "transform", "t", nil, "Transform to apply, as name:key=value,... (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (console, console-lite, csv, json, html)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Write the report to a timestamped file in this directory")
	return cmd
}
