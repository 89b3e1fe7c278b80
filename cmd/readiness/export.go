package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/readiness/internal/output"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		scenarioName string
		transforms   []string
		out          string
	)

	cmd := &cobra.Command{
		Use:   "export [plan-file]",
		Short: "Export a projected scenario as a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			data, err := output.JSONFormatter{}.Format(output.NewReport(cfg.Client, s, result, time.Now()))
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", s.Name, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenarioName, "scenario", "s", "", "Scenario to export (default: first in the plan)")
	cmd.Flags().StringArrayVarP(&transforms, "transform", "t", nil, "Transform to apply, as name:key=value,... (repeatable)")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output file (- for stdout)")
	return cmd
}
