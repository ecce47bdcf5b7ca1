package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/marquee/internal/config"
	"github.com/Nixie-Tech-LLC/marquee/internal/db"
	"github.com/Nixie-Tech-LLC/marquee/internal/metrics"
	"github.com/Nixie-Tech-LLC/marquee/internal/storage"
)

func newTestServer(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	cfg := &config.Config{
		JWTSecret:  "secret",
		UploadDir:  filepath.Join(dir, "uploads"),
		WidgetsDir: filepath.Join(dir, "widgets"),
	}
	store, err := db.Open(context.Background(), db.Options{DataFile: filepath.Join(dir, "data.json")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	r := gin.New()
	RegisterRoutes(r, cfg, store, storage.NewLocalStorage(cfg.UploadDir, "/uploads"), metrics.New("marquee"))
	return r, cfg
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthz(t *testing.T) {
	r, _ := newTestServer(t)
	w := get(r, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","backend":"document"}`, w.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _ := newTestServer(t)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/devices").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/auth/me").Code)
}

func TestServeWidget(t *testing.T) {
	r, cfg := newTestServer(t)
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.WidgetsDir, "clock"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.WidgetsDir, "clock", "index.html"), []byte("<p>clock</p>"), 0o644))

	w := get(r, "/widgets/clock/index.html")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "clock")

	assert.Equal(t, http.StatusOK, get(r, "/widgets/clock/").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/widgets/weather/index.html").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/widgets/../data.json").Code)
}
