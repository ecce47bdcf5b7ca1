package db

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var testTables = []string{
	"tenants", "users", "user_sessions", "audit_logs", "devices", "media_items",
	"layouts", "zones", "playlists", "playlist_items", "schedules",
	"schedule_devices", "widget_templates", "widget_instances",
}

// forEachBackend runs fn against a fresh document store and, when
// TEST_DATABASE_URL is set, against a freshly truncated PostgreSQL database.
func forEachBackend(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Helper()

	t.Run(backendDocument, func(t *testing.T) {
		fn(t, newTestDocStore(t))
	})

	t.Run(backendPostgres, func(t *testing.T) {
		dsn := os.Getenv("TEST_DATABASE_URL")
		if dsn == "" {
			t.Skip("TEST_DATABASE_URL environment variable is not set")
		}
		fn(t, newTestPGStore(t, dsn))
	})
}

func newTestDocStore(t *testing.T) *docStore {
	t.Helper()
	s, err := openDocument(filepath.Join(t.TempDir(), "data.json"), nil)
	require.NoError(t, err)
	return s
}

func newTestPGStore(t *testing.T, dsn string) *pgStore {
	t.Helper()
	ctx := context.Background()

	conn, err := connectPostgres(ctx, dsn, 1, 0)
	require.NoError(t, err)
	require.NoError(t, runMigrations(ctx, conn, filepath.Join("..", "..", "migrations")))

	_, err = conn.ExecContext(ctx, "TRUNCATE "+strings.Join(testTables, ", "))
	require.NoError(t, err)

	s := newPGStore(conn, nil)
	t.Cleanup(func() { _ = s.Close() })
	return s
}
