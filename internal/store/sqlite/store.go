package sqlite

import (
	"bizdash-backend/internal/models"
	"bizdash-backend/internal/store"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

var _ store.DashboardStore = (*SQLiteStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS dashboard_snapshots (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	payload    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS summary_companies (
	empresa_id TEXT PRIMARY KEY
);`

// SQLiteStore reads dashboard datasets from a local SQLite file using the
// same table layout as the Postgres store.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the database at path and ensures the schema exists.
func Open(ctx context.Context, path string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db, logger: logger.With("component", "sqlite_store")}, nil
}

func (s *SQLiteStore) LoadSnapshot(ctx context.Context) (*models.DashboardSnapshot, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM dashboard_snapshots ORDER BY created_at DESC, id DESC LIMIT 1`,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("sqlite error fetching dashboard snapshot: %w", err)
	}

	var snapshot models.DashboardSnapshot
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode dashboard snapshot: %w", err)
	}
	return &snapshot, nil
}

func (s *SQLiteStore) ListCompanies(ctx context.Context) ([]models.CompanySummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT empresa_id FROM summary_companies ORDER BY empresa_id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite error listing companies: %w", err)
	}
	defer rows.Close()

	var companies []models.CompanySummary
	for rows.Next() {
		var c models.CompanySummary
		if err := rows.Scan(&c.ID); err != nil {
			return nil, fmt.Errorf("sqlite error scanning company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
