package file

import (
	"bizdash-backend/internal/models"
	"bizdash-backend/internal/store"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Dataset file names inside the data directory.
const (
	MetricsFile   = "dashboard_metrics.json"
	CompaniesFile = "summary_companies.json"
)

var _ store.DashboardStore = (*FileStore)(nil)

// FileStore reads the dashboard datasets from JSON files in a directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// LoadSnapshot decodes dashboard_metrics.json.
// Returns store.ErrNotFound if the file does not exist.
func (s *FileStore) LoadSnapshot(ctx context.Context) (*models.DashboardSnapshot, error) {
	var snapshot models.DashboardSnapshot
	if err := s.readJSON(MetricsFile, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// ListCompanies decodes summary_companies.json. A missing file yields no companies.
func (s *FileStore) ListCompanies(ctx context.Context) ([]models.CompanySummary, error) {
	var companies []models.CompanySummary
	if err := s.readJSON(CompaniesFile, &companies); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	sort.Slice(companies, func(i, j int) bool { return companies[i].ID < companies[j].ID })
	return companies, nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) readJSON(name string, v any) error {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return store.ErrNotFound
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
