package store

import (
	"bizdash-backend/internal/models"
	"context"
	"errors"
)

// ErrNotFound is returned when a specific record is not found.
var ErrNotFound = errors.New("record not found")

// DashboardStore reads the static datasets behind the dashboard. Every
// implementation is read-only.
type DashboardStore interface {
	// LoadSnapshot returns the most recent dashboard snapshot.
	// Returns ErrNotFound if none exists.
	LoadSnapshot(ctx context.Context) (*models.DashboardSnapshot, error)

	// ListCompanies returns the company summaries ordered by ID.
	ListCompanies(ctx context.Context) ([]models.CompanySummary, error)

	Close() error
}
