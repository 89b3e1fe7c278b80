package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	root, a := newRoot()
	err := root.Execute()
	// PersistentPostRun is skipped when RunE fails
	a.teardown()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root, _ := newRoot()
	return root
}

// newRoot returns the command tree and the app state the caller must tear
// down once Execute returns
func newRoot() (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:   "readiness",
		Short: "Retirement readiness projections for EPF and PRS savers",
		Long: `Project retirement savings year by year, score how well they cover the
desired retirement income, and explore what-if scenarios.

Plan files describe a client, their assets (EPF, PRS, investments), the base
plan assumptions and any named scenarios.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Settings file (YAML)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		newProjectCmd(a),
		newScoreCmd(a),
		newValidateCmd(a),
		newCompareCmd(a),
		newSolveCmd(a),
		newSweepCmd(a),
		newExportCmd(a),
		newScenariosCmd(a),
		newServeCmd(a),
		newTUICmd(a),
		versionCmd(),
	)
	return root, a
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "readiness %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" && version == "dev" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}
