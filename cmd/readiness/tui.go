package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/readiness/internal/calculation"
	"github.com/rgehrsitz/readiness/internal/scenario"
	"github.com/rgehrsitz/readiness/internal/tui"
)

func newTUICmd(a *app) *cobra.Command {
	var (
		dbPath   string
		clientID string
		noStore  bool
	)

	cmd := &cobra.Command{
		Use:   "tui [plan-file]",
		Short: "Open the interactive scenario workbench",
		Long: `Open the interactive workbench for a client. With a plan file the client
and base plan are written to the database first; with --client a client
already in the database is opened. Saves are written through to the
database unless --no-store is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 0 && clientID == "" {
				return errors.New("a plan file or --client is required")
			}
			if noStore && len(args) == 0 {
				return errors.New("--no-store requires a plan file")
			}
			engine := a.engine()
			// stderr belongs to the alt screen while the program runs
			engine.SetLogger(calculation.NopLogger{})

			var (
				wb   *scenario.Workbench
				opts []tui.Option
			)
			switch {
			case noStore:
				cfg, err := a.loadPlan(args[0])
				if err != nil {
					return err
				}
				wb, err = scenario.New(ctx, engine, cfg.Client, cfg.Plan)
				if err != nil {
					return err
				}
			default:
				st, err := a.openStore(dbPath)
				if err != nil {
					return err
				}
				id := clientID
				if len(args) == 1 {
					cfg, err := a.loadPlan(args[0])
					if err != nil {
						return err
					}
					if err := st.SaveClient(ctx, cfg.Client, cfg.Plan); err != nil {
						return err
					}
					id = cfg.Client.ID
				}
				wb, err = st.LoadWorkbench(ctx, engine, id)
				if err != nil {
					return fmt.Errorf("failed to open client %s: %w", id, err)
				}
				if err := st.SaveWorkbench(ctx, wb); err != nil {
					return err
				}
				opts = append(opts, tui.WithPersister(st))
			}

			a.logger.Info("starting workbench",
				zap.String("client", wb.Client().ID),
				zap.Int("scenarios", len(wb.Scenarios())),
				zap.Bool("persist", !noStore))

			p := tea.NewProgram(tui.NewModel(ctx, engine, wb, opts...),
				tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("workbench exited: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default from settings)")
	cmd.Flags().StringVar(&clientID, "client", "", "Open a client already saved in the database")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "Keep scenarios in memory only")
	return cmd
}
