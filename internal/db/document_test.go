package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

func TestDocumentSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")

	s, err := openDocument(path, nil)
	require.NoError(t, err)
	tenant, err := s.CreateTenant(ctx, model.Tenant{Name: "Acme", Branding: model.Branding{LogoURL: "https://acme/logo.png"}})
	require.NoError(t, err)
	layout, err := s.CreateLayout(ctx, model.Layout{
		TenantID: tenant.ID,
		Name:     "Main",
		Zones:    []model.Zone{{Name: "a"}, {Name: "b"}},
	})
	require.NoError(t, err)

	reopened, err := openDocument(path, nil)
	require.NoError(t, err)

	got, err := reopened.FindTenantByID(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://acme/logo.png", got.Branding.LogoURL)
	assert.True(t, tenant.CreatedAt.Equal(got.CreatedAt))

	l, err := reopened.FindLayoutByID(ctx, layout.ID, tenant.ID)
	require.NoError(t, err)
	require.Len(t, l.Zones, 2)
	assert.Equal(t, "b", l.Zones[1].Name)
}

func TestDocumentRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := openDocument(path, nil)
	assert.ErrorIs(t, err, ErrBackend)
}

func TestDocumentRollsBackFailedFlush(t *testing.T) {
	ctx := context.Background()
	s := newTestDocStore(t)
	tenant, err := s.CreateTenant(ctx, model.Tenant{Name: "Acme"})
	require.NoError(t, err)

	// point the store at a directory that does not exist so the next flush fails
	s.path = filepath.Join(t.TempDir(), "missing", "data.json")

	_, err = s.CreateDevice(ctx, model.Device{TenantID: tenant.ID, Name: "lost"})
	assert.ErrorIs(t, err, ErrBackend)

	devices, err := s.GetDevicesByTenant(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Empty(t, devices)

	got, err := s.FindTenantByID(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
}

func TestDocumentLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := openDocument(filepath.Join(dir, "data.json"), nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := s.CreateTenant(ctx, model.Tenant{Name: "t"})
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "data.json", entries[0].Name())
}
