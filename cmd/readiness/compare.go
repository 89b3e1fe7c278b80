package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/readiness/internal/compare"
	"github.com/rgehrsitz/readiness/internal/transform"
)

func newCompareCmd(a *app) *cobra.Command {
	var (
		baseName      string
		templates     string
		scenarios     string
		format        string
		listTemplates bool
	)

	cmd := &cobra.Command{
		Use:   "compare [plan-file]",
		Short: "Compare a scenario against strategy templates or other plan scenarios",
		Long: `Compare a base scenario against alternative strategies.

Examples:
  readiness compare plan.yaml --templates save_more_500,retire_later_2yr
  readiness compare plan.yaml --base Comfortable --scenarios "Comfortable + Savings" --format csv
  readiness compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if listTemplates {
				fmt.Fprint(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("plan file required for comparison (use --list-templates to see available templates)")
			}

			templateNames := transform.ParseTemplateList(templates)
			scenarioNames := transform.ParseTemplateList(scenarios)
			if len(templateNames) == 0 && len(scenarioNames) == 0 {
				return fmt.Errorf("--templates or --scenarios is required")
			}

			cfg, err := a.loadPlan(args[0])
			if err != nil {
				return err
			}
			if baseName == "" {
				baseName = cfg.ScenarioNames()[0]
			}

			ce := compare.NewCompareEngine(a.engine())
			var compSet *compare.ComparisonSet
			if len(scenarioNames) > 0 {
				compSet, err = ce.CompareConfiguration(cmd.Context(), cfg, baseName, scenarioNames)
			} else {
				base, berr := cfg.BuildScenario(baseName)
				if berr != nil {
					return berr
				}
				compSet, err = ce.Compare(cmd.Context(), base, cfg.Client.Assets, templateNames)
			}
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			compSet.ConfigPath = args[0]

			switch strings.ToLower(format) {
			case "csv":
				text, err := (&compare.CSVFormatter{}).Format(compSet)
				if err != nil {
					return fmt.Errorf("failed to format CSV: %w", err)
				}
				fmt.Fprint(out, text)
			case "json":
				text, err := (&compare.JSONFormatter{Pretty: true}).Format(compSet)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprintln(out, text)
			case "compact":
				fmt.Fprint(out, (&compare.TableFormatter{}).FormatCompact(compSet))
			case "table", "console", "":
				fmt.Fprint(out, (&compare.TableFormatter{}).Format(compSet))
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseName, "base", "", "Base scenario name (default: first in the plan)")
	cmd.Flags().StringVar(&templates, "templates", "", "Comma-separated strategy templates to compare")
	cmd.Flags().StringVar(&scenarios, "scenarios", "", "Comma-separated plan scenarios to compare instead of templates")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().BoolVar(&listTemplates, "list-templates", false, "List the built-in strategy templates")
	return cmd
}
