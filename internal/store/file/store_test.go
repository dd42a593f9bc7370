package file

import (
	"bizdash-backend/internal/models"
	"bizdash-backend/internal/store"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, MetricsFile, `{
		"headerInfo": {"title": "Business AI", "subtitle": "Resumen"},
		"navigationItems": [{"id": "dashboard", "name": "Dashboard", "icon": "LayoutDashboard"}],
		"performanceData": [{"category": "Nómina", "value": 1200}]
	}`)
	writeFile(t, dir, CompaniesFile, `[{"empresa_id": "B"}, {"empresa_id": "A"}]`)

	s := NewFileStore(dir)
	ctx := context.Background()

	snapshot, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Business AI", snapshot.HeaderInfo.Title)
	require.Len(t, snapshot.NavigationItems, 1)
	assert.Equal(t, models.IconLayoutDashboard, snapshot.NavigationItems[0].Icon)
	assert.Nil(t, snapshot.FinancialBase)

	companies, err := s.ListCompanies(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.CompanySummary{{ID: "A"}, {ID: "B"}}, companies)
}

func TestFileStore_MissingFiles(t *testing.T) {
	s := NewFileStore(t.TempDir())

	_, err := s.LoadSnapshot(context.Background())
	require.ErrorIs(t, err, store.ErrNotFound)

	companies, err := s.ListCompanies(context.Background())
	require.NoError(t, err)
	assert.Empty(t, companies)
}

func TestFileStore_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, MetricsFile, `{"metrics": [`)

	_, err := NewFileStore(dir).LoadSnapshot(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}
