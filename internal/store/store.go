// Package store persists client profiles and saved scenarios in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/rgehrsitz/readiness/internal/scenario"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a client or scenario does not exist
var ErrNotFound = errors.New("not found")

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS clients (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	assets_json TEXT NOT NULL,
	base_plan_json TEXT NOT NULL,
	active_scenario_id TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS scenarios (
	id TEXT NOT NULL,
	client_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	plan_json TEXT NOT NULL,
	overlay_json TEXT NOT NULL,
	readiness_score INTEGER NOT NULL,
	funds_end_age INTEGER NOT NULL,
	notes TEXT NOT NULL DEFAULT '',
	saved_at TEXT NOT NULL,
	PRIMARY KEY (client_id, id),
	FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_scenarios_client ON scenarios(client_id, position);
`

// Client is a stored client profile with its base plan
type Client struct {
	Profile          domain.ClientProfile
	BasePlan         domain.PlanInputs
	ActiveScenarioID string
	UpdatedAt        time.Time
}

// Store wraps a SQLite database
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open creates or opens the database at path. Use MemoryPath for a
// throwaway database.
func Open(path string) (*Store, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps an in-memory database alive and serializes writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db, path: path, now: time.Now}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database location
func (s *Store) Path() string {
	return s.path
}

// SaveClient inserts or replaces a client profile and its base plan
func (s *Store) SaveClient(ctx context.Context, profile domain.ClientProfile, basePlan domain.PlanInputs) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.upsertClient(ctx, tx, profile, basePlan)
	})
}

// GetClient loads a client profile
func (s *Store) GetClient(ctx context.Context, id string) (*Client, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, assets_json, base_plan_json, active_scenario_id, updated_at
		 FROM clients WHERE id = ?`, id)

	c, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("client %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load client %s: %w", id, err)
	}
	return c, nil
}

// ListClients returns every stored client ordered by name
func (s *Store) ListClients(ctx context.Context) ([]Client, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, assets_json, base_plan_json, active_scenario_id, updated_at
		 FROM clients ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var out []Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read client: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// DeleteClient removes a client and all of its scenarios
func (s *Store) DeleteClient(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client %s: %w", id, err)
	}
	return requireAffected(res, fmt.Sprintf("client %s", id))
}

// SaveScenario inserts or replaces one saved scenario. New scenarios are
// appended after the client's existing ones.
func (s *Store) SaveScenario(ctx context.Context, clientID string, sc domain.SavedScenario) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireClient(ctx, tx, clientID); err != nil {
			return err
		}
		var position int
		err := tx.QueryRowContext(ctx,
			`SELECT position FROM scenarios WHERE client_id = ? AND id = ?`, clientID, sc.ID).Scan(&position)
		if errors.Is(err, sql.ErrNoRows) {
			err = tx.QueryRowContext(ctx,
				`SELECT COALESCE(MAX(position) + 1, 0) FROM scenarios WHERE client_id = ?`, clientID).Scan(&position)
		}
		if err != nil {
			return fmt.Errorf("failed to position scenario %s: %w", sc.ID, err)
		}
		return upsertScenario(ctx, tx, clientID, position, sc)
	})
}

// GetScenario loads one saved scenario
func (s *Store) GetScenario(ctx context.Context, clientID, id string) (*domain.SavedScenario, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, plan_json, overlay_json, readiness_score, funds_end_age, notes, saved_at
		 FROM scenarios WHERE client_id = ? AND id = ?`, clientID, id)

	sc, err := scanScenario(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("scenario %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario %s: %w", id, err)
	}
	return sc, nil
}

// ListScenarios returns a client's saved scenarios in creation order
func (s *Store) ListScenarios(ctx context.Context, clientID string) ([]domain.SavedScenario, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, plan_json, overlay_json, readiness_score, funds_end_age, notes, saved_at
		 FROM scenarios WHERE client_id = ? ORDER BY position`, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	var out []domain.SavedScenario
	for rows.Next() {
		sc, err := scanScenario(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read scenario: %w", err)
		}
		out = append(out, *sc)
	}
	return out, rows.Err()
}

// DeleteScenario removes one saved scenario
func (s *Store) DeleteScenario(ctx context.Context, clientID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM scenarios WHERE client_id = ? AND id = ?`, clientID, id)
	if err != nil {
		return fmt.Errorf("failed to delete scenario %s: %w", id, err)
	}
	return requireAffected(res, fmt.Sprintf("scenario %s", id))
}

// SaveWorkbench writes the client, every saved scenario and the active id
// in one transaction. Scenarios no longer in the workbench are removed.
// Unsaved edits in the working tuple are not persisted.
func (s *Store) SaveWorkbench(ctx context.Context, wb *scenario.Workbench) error {
	client := wb.Client()
	saved := wb.Scenarios()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.upsertClient(ctx, tx, client, wb.BasePlan()); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM scenarios WHERE client_id = ?`, client.ID); err != nil {
			return fmt.Errorf("failed to clear scenarios: %w", err)
		}
		for i, sc := range saved {
			if err := upsertScenario(ctx, tx, client.ID, i, sc); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE clients SET active_scenario_id = ? WHERE id = ?`, wb.ActiveID(), client.ID); err != nil {
			return fmt.Errorf("failed to record active scenario: %w", err)
		}
		return nil
	})
}

// LoadWorkbench restores a client's workbench. A client with no saved
// scenarios gets a fresh workbench with a Base scenario.
func (s *Store) LoadWorkbench(ctx context.Context, evaluator scenario.Evaluator, clientID string, opts ...scenario.Option) (*scenario.Workbench, error) {
	c, err := s.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	saved, err := s.ListScenarios(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(saved) == 0 {
		return scenario.New(ctx, evaluator, c.Profile, c.BasePlan, opts...)
	}
	return scenario.Restore(evaluator, c.Profile, c.BasePlan, saved, c.ActiveScenarioID, opts...)
}

func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func (s *Store) upsertClient(ctx context.Context, tx *sql.Tx, profile domain.ClientProfile, basePlan domain.PlanInputs) error {
	if profile.ID == "" {
		return fmt.Errorf("client id is required")
	}
	assets, err := json.Marshal(profile.Assets)
	if err != nil {
		return fmt.Errorf("failed to encode assets: %w", err)
	}
	plan, err := json.Marshal(basePlan)
	if err != nil {
		return fmt.Errorf("failed to encode base plan: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO clients (id, name, assets_json, base_plan_json, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			assets_json = excluded.assets_json,
			base_plan_json = excluded.base_plan_json,
			updated_at = excluded.updated_at`,
		profile.ID, profile.Name, string(assets), string(plan), formatTime(s.now()))
	if err != nil {
		return fmt.Errorf("failed to save client %s: %w", profile.ID, err)
	}
	return nil
}

func upsertScenario(ctx context.Context, tx *sql.Tx, clientID string, position int, sc domain.SavedScenario) error {
	if sc.ID == "" {
		return fmt.Errorf("scenario id is required")
	}
	plan, err := json.Marshal(sc.PlanInputs)
	if err != nil {
		return fmt.Errorf("failed to encode plan for scenario %s: %w", sc.ID, err)
	}
	overlay, err := json.Marshal(sc.ScenarioInputs)
	if err != nil {
		return fmt.Errorf("failed to encode overlay for scenario %s: %w", sc.ID, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO scenarios (id, client_id, position, name, plan_json, overlay_json,
			readiness_score, funds_end_age, notes, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(client_id, id) DO UPDATE SET
			position = excluded.position,
			name = excluded.name,
			plan_json = excluded.plan_json,
			overlay_json = excluded.overlay_json,
			readiness_score = excluded.readiness_score,
			funds_end_age = excluded.funds_end_age,
			notes = excluded.notes,
			saved_at = excluded.saved_at`,
		sc.ID, clientID, position, sc.Name, string(plan), string(overlay),
		sc.ReadinessScore, sc.FundsEndAge, sc.PlannerNotes, formatTime(sc.SavedAt))
	if err != nil {
		return fmt.Errorf("failed to save scenario %s: %w", sc.ID, err)
	}
	return nil
}

func requireClient(ctx context.Context, tx *sql.Tx, id string) error {
	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients WHERE id = ?`, id).Scan(&n); err != nil {
		return fmt.Errorf("failed to look up client %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("client %s: %w", id, ErrNotFound)
	}
	return nil
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanClient(row scanner) (*Client, error) {
	var (
		c                 Client
		assets, plan, upd string
	)
	if err := row.Scan(&c.Profile.ID, &c.Profile.Name, &assets, &plan, &c.ActiveScenarioID, &upd); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(assets), &c.Profile.Assets); err != nil {
		return nil, fmt.Errorf("decode assets: %w", err)
	}
	if err := json.Unmarshal([]byte(plan), &c.BasePlan); err != nil {
		return nil, fmt.Errorf("decode base plan: %w", err)
	}
	t, err := parseTime(upd)
	if err != nil {
		return nil, err
	}
	c.UpdatedAt = t
	return &c, nil
}

func scanScenario(row scanner) (*domain.SavedScenario, error) {
	var (
		sc                     domain.SavedScenario
		plan, overlay, savedAt string
	)
	if err := row.Scan(&sc.ID, &sc.Name, &plan, &overlay, &sc.ReadinessScore, &sc.FundsEndAge,
		&sc.PlannerNotes, &savedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(plan), &sc.PlanInputs); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	if err := json.Unmarshal([]byte(overlay), &sc.ScenarioInputs); err != nil {
		return nil, fmt.Errorf("decode overlay: %w", err)
	}
	t, err := parseTime(savedAt)
	if err != nil {
		return nil, err
	}
	sc.SavedAt = t
	return &sc, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode timestamp %q: %w", s, err)
	}
	return t, nil
}
