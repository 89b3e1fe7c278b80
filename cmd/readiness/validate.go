package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/readiness/internal/calculation"
)

func newValidateCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate [plan-file]",
		Short: "Validate a plan file and report implausible inputs",
		Long: `Validate a plan file. Structural problems (missing names, unknown asset
kinds, unparseable numbers) are errors. Implausible values such as retiring
after life expectancy are reported as warnings; --strict turns them into a
failure.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadPlan(args[0])
			if err != nil {
				return err
			}
			scenarios, err := cfg.BuildScenarios()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			total := 0
			for _, s := range scenarios {
				warnings := calculation.Validate(s.Plan, s.Overlay, cfg.Client.Assets)
				for _, w := range warnings {
					fmt.Fprintf(out, "⚠ %s: %s\n", s.Name, w.String())
				}
				total += len(warnings)
			}

			if total == 0 {
				fmt.Fprintf(out, "Plan file %s is valid\n", args[0])
				return nil
			}
			fmt.Fprintf(out, "Plan file %s is valid with %d warning(s)\n", args[0], total)
			if strict {
				return fmt.Errorf("%d warning(s) in strict mode", total)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when any warning is reported")
	return cmd
}
