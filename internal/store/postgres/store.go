package postgres

import (
	"bizdash-backend/internal/models"
	"bizdash-backend/internal/store"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Compile-time check to ensure PostgresStore implements store.DashboardStore
var _ store.DashboardStore = (*PostgresStore)(nil)

// PostgresStore reads dashboard datasets from the dashboard_snapshots and
// summary_companies tables.
type PostgresStore struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgresStore(db *pgxpool.Pool, logger *slog.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger.With("component", "postgres_store")}
}

// Open creates a connection pool for databaseURL and verifies it with a ping.
func Open(ctx context.Context, databaseURL string, logger *slog.Logger) (*PostgresStore, error) {
	// Timeout for initial connection
	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(dbCtx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to create database connection pool: %w", err)
	}
	if err := pool.Ping(dbCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	return NewPostgresStore(pool, logger), nil
}

const latestSnapshot = `
SELECT payload
FROM dashboard_snapshots
ORDER BY created_at DESC
LIMIT 1`

// LoadSnapshot returns the newest dashboard snapshot.
// Returns store.ErrNotFound if the table is empty.
func (s *PostgresStore) LoadSnapshot(ctx context.Context) (*models.DashboardSnapshot, error) {
	var payload []byte
	err := s.db.QueryRow(ctx, latestSnapshot).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("no dashboard snapshot found")
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("database error fetching dashboard snapshot: %w", err)
	}

	var snapshot models.DashboardSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode dashboard snapshot: %w", err)
	}
	s.logger.Debug("loaded dashboard snapshot", "metrics", len(snapshot.Metrics))
	return &snapshot, nil
}

const listCompanies = `
SELECT empresa_id
FROM summary_companies
ORDER BY empresa_id`

// ListCompanies returns every company summary ordered by ID.
func (s *PostgresStore) ListCompanies(ctx context.Context) ([]models.CompanySummary, error) {
	rows, err := s.db.Query(ctx, listCompanies)
	if err != nil {
		return nil, fmt.Errorf("database error listing companies: %w", err)
	}
	companies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CompanySummary, error) {
		var c models.CompanySummary
		err := row.Scan(&c.ID)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("database error scanning companies: %w", err)
	}
	return companies, nil
}

func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
