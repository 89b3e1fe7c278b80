package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/rgehrsitz/readiness/internal/output"
	"github.com/rgehrsitz/readiness/internal/scenario"
)

func newScenariosCmd(a *app) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Manage scenarios saved in the local database",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (default from settings)")

	list := &cobra.Command{
		Use:   "list [client-id]",
		Short: "List saved clients, or the scenarios of one client",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(dbPath)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer w.Flush()

			if len(args) == 0 {
				clients, err := st.ListClients(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(w, "CLIENT ID\tNAME\tASSETS\tUPDATED")
				for _, c := range clients {
					fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", c.Profile.ID, c.Profile.Name,
						len(c.Profile.Assets), c.UpdatedAt.Local().Format("2006-01-02 15:04"))
				}
				return nil
			}

			client, err := st.GetClient(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			saved, err := st.ListScenarios(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(w, "\tID\tNAME\tSCORE\tFUNDS END\tSAVED")
			for _, s := range saved {
				marker := ""
				if s.ID == client.ActiveScenarioID {
					marker = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n", marker, s.ID, s.Name, s.ReadinessScore,
					s.FundsEndAge, s.SavedAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}

	var only string
	save := &cobra.Command{
		Use:   "save [plan-file]",
		Short: "Score the plan's scenarios and save them for the client",
		Long: `Save the client and scenarios from a plan file. Scenarios whose name
matches a saved scenario overwrite it; others are added.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := a.loadPlan(args[0])
			if err != nil {
				return err
			}
			scenarios, err := cfg.BuildScenarios()
			if err != nil {
				return err
			}
			if only != "" {
				s, err := cfg.BuildScenario(only)
				if err != nil {
					return err
				}
				scenarios = []*domain.Scenario{s}
			}

			st, err := a.openStore(dbPath)
			if err != nil {
				return err
			}
			if err := st.SaveClient(ctx, cfg.Client, cfg.Plan); err != nil {
				return err
			}
			existing, err := st.ListScenarios(ctx, cfg.Client.ID)
			if err != nil {
				return err
			}
			wb, err := st.LoadWorkbench(ctx, a.engine(), cfg.Client.ID)
			if err != nil {
				return err
			}
			// a first save starts from an implicit Base the plan may not name
			implicitID := ""
			if len(existing) == 0 {
				implicitID = wb.ActiveID()
			}

			out := cmd.OutOrStdout()
			written := make(map[string]bool, len(scenarios))
			for _, s := range scenarios {
				saved, err := saveIntoWorkbench(cmd, wb, s)
				if err != nil {
					return err
				}
				written[saved.ID] = true
				fmt.Fprintf(out, "Saved %-28s %3d / 100  funds last to %d  %s\n",
					saved.Name, saved.ReadinessScore, saved.FundsEndAge, output.Verdict(saved.ReadinessScore))
			}
			if implicitID != "" && !written[implicitID] {
				if err := wb.Delete(implicitID); err != nil {
					return err
				}
			}
			if err := st.SaveWorkbench(ctx, wb); err != nil {
				return err
			}
			a.logger.Info("saved scenarios",
				zap.String("client", cfg.Client.ID), zap.Int("count", len(scenarios)))
			return nil
		},
	}
	save.Flags().StringVarP(&only, "scenario", "s", "", "Save only this scenario")

	del := &cobra.Command{
		Use:   "delete [client-id] [scenario-id]",
		Short: "Delete a saved scenario (the last one cannot be deleted)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := a.openStore(dbPath)
			if err != nil {
				return err
			}
			wb, err := st.LoadWorkbench(ctx, a.engine(), args[0])
			if err != nil {
				return err
			}
			if err := wb.Delete(args[1]); err != nil {
				if errors.Is(err, scenario.ErrLastScenario) {
					return fmt.Errorf("%s is the client's only scenario and cannot be deleted", args[1])
				}
				return err
			}
			if err := st.SaveWorkbench(ctx, wb); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted scenario %s\n", args[1])
			return nil
		},
	}

	cmd.AddCommand(list, save, del)
	return cmd
}

// saveIntoWorkbench overwrites the saved scenario with the same name, or
// creates a new one
func saveIntoWorkbench(cmd *cobra.Command, wb *scenario.Workbench, s *domain.Scenario) (domain.SavedScenario, error) {
	ctx := cmd.Context()
	found := false
	for _, saved := range wb.Scenarios() {
		if strings.EqualFold(saved.Name, s.Name) {
			if err := wb.Load(saved.ID); err != nil {
				return domain.SavedScenario{}, err
			}
			found = true
			break
		}
	}
	if !found {
		if _, err := wb.New(ctx, s.Name); err != nil {
			return domain.SavedScenario{}, err
		}
	}
	if err := wb.Rename(s.Name); err != nil {
		return domain.SavedScenario{}, err
	}
	wb.SetPlan(s.Plan)
	wb.SetOverlay(s.Overlay)
	wb.SetNotes(s.Notes)
	return wb.Save(ctx)
}
