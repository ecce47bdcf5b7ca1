package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/marquee/internal/db"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/api"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/marquee/internal/model"
	"github.com/Nixie-Tech-LLC/marquee/internal/storage"
)

const testSecret = "test-secret"

type env struct {
	t      *testing.T
	store  db.Store
	router *gin.Engine
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := db.Open(context.Background(), db.Options{DataFile: filepath.Join(t.TempDir(), "data.json")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api", Auth: true, SecretKey: testSecret, Store: store},
		TenantModule(store),
		DeviceModule(store),
		MediaModule(store, storage.NewLocalStorage(t.TempDir(), "/uploads")),
		LayoutModule(store),
		PlaylistModule(store),
		ScheduleModule(store),
		WidgetModule(store),
	)
	return &env{t: t, store: store, router: r}
}

// login creates a user with role in tenantID (a new tenant when empty) and
// returns a bearer token for it.
func (e *env) login(tenantID string, role model.Role) (string, *model.User) {
	e.t.Helper()
	ctx := context.Background()
	if tenantID == "" {
		tenant, err := e.store.CreateTenant(ctx, model.Tenant{Name: "tenant"})
		require.NoError(e.t, err)
		tenantID = tenant.ID
	}
	user, err := e.store.CreateUser(ctx, model.User{TenantID: tenantID, Email: middleware.NewSessionToken() + "@example.com", Role: role})
	require.NoError(e.t, err)
	sess, err := e.store.CreateSession(ctx, model.Session{UserID: user.ID, TenantID: tenantID, Token: middleware.NewSessionToken(), ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(e.t, err)
	token, err := middleware.GenerateJWT(middleware.Claims{UserID: user.ID, TenantID: tenantID, SessionToken: sess.Token}, sess.ExpiresAt, testSecret)
	require.NoError(e.t, err)
	return token, user
}

func (e *env) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type list[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

func TestDeviceEndpoints(t *testing.T) {
	e := newEnv(t)
	owner, user := e.login("", model.RoleOwner)
	stranger, _ := e.login("", model.RoleOwner)
	viewer, _ := e.login(user.TenantID, model.RoleViewer)

	w := e.do(http.MethodPost, "/api/devices", owner, gin.H{"name": "Lobby", "orientation": "portrait"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	device := decode[model.Device](t, w)
	assert.Equal(t, user.TenantID, device.TenantID)
	assert.Equal(t, model.DeviceOffline, device.Status)

	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPost, "/api/devices", owner, gin.H{"name": "x", "status": "broken"}).Code)
	assert.Equal(t, http.StatusForbidden, e.do(http.MethodPost, "/api/devices", viewer, gin.H{"name": "x"}).Code)

	devices := decode[list[model.Device]](t, e.do(http.MethodGet, "/api/devices", viewer, nil))
	assert.Equal(t, 1, devices.Count)

	assert.Equal(t, http.StatusNotFound, e.do(http.MethodGet, "/api/devices/"+device.ID, stranger, nil).Code)
	assert.Equal(t, http.StatusNotFound, e.do(http.MethodDelete, "/api/devices/"+device.ID, stranger, nil).Code)

	w = e.do(http.MethodPut, "/api/devices/"+device.ID, owner, gin.H{"status": "online"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[model.Device](t, w)
	assert.Equal(t, model.DeviceOnline, updated.Status)
	assert.Equal(t, "portrait", updated.Orientation)

	assert.Equal(t, http.StatusNoContent, e.do(http.MethodDelete, "/api/devices/"+device.ID, owner, nil).Code)
	assert.Equal(t, http.StatusNotFound, e.do(http.MethodGet, "/api/devices/"+device.ID, owner, nil).Code)
}

func TestLayoutEndpoints(t *testing.T) {
	e := newEnv(t)
	owner, _ := e.login("", model.RoleEditor)

	w := e.do(http.MethodPost, "/api/layouts", owner, gin.H{
		"name": "Split",
		"zones": []gin.H{
			{"name": "left", "width": 960, "height": 1080, "type": "media"},
			{"name": "right", "x": 960, "width": 960, "height": 1080, "type": "widget"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	layout := decode[model.Layout](t, w)
	assert.Equal(t, 1920, layout.Width)
	require.Len(t, layout.Zones, 2)

	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPost, "/api/layouts", owner, gin.H{
		"name":  "bad",
		"zones": []gin.H{{"x": -5}},
	}).Code)

	w = e.do(http.MethodPut, "/api/layouts/"+layout.ID, owner, gin.H{"zones": []gin.H{{"name": "full", "width": 1920, "height": 1080}}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	zones := decode[list[model.Zone]](t, e.do(http.MethodGet, "/api/layouts/"+layout.ID+"/zones", owner, nil))
	require.Equal(t, 1, zones.Count)
	assert.Equal(t, "full", zones.Items[0].Name)
}

func TestPlaylistAndScheduleEndpoints(t *testing.T) {
	e := newEnv(t)
	owner, _ := e.login("", model.RoleAdmin)
	other, _ := e.login("", model.RoleAdmin)

	media := decode[model.MediaItem](t, e.do(http.MethodPost, "/api/media", owner, gin.H{"name": "promo", "type": "video", "url": "https://cdn/p.mp4", "duration": 30}))
	foreign := decode[model.MediaItem](t, e.do(http.MethodPost, "/api/media", other, gin.H{"name": "x", "type": "image", "url": "https://cdn/x.png"}))

	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPost, "/api/playlists", owner, gin.H{
		"name":  "Stolen",
		"items": []gin.H{{"mediaId": foreign.ID, "duration": 10}},
	}).Code)

	w := e.do(http.MethodPost, "/api/playlists", owner, gin.H{
		"name":  "Morning",
		"items": []gin.H{{"mediaId": media.ID, "duration": 30}, {"mediaId": media.ID, "duration": 15}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	playlist := decode[model.Playlist](t, w)
	assert.Equal(t, 45, playlist.Duration)
	assert.True(t, playlist.Loop)

	device := decode[model.Device](t, e.do(http.MethodPost, "/api/devices", owner, gin.H{"name": "Lobby"}))

	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPost, "/api/schedules", owner, gin.H{
		"name": "bad", "playlistId": playlist.ID, "startTime": "25:99",
	}).Code)

	w = e.do(http.MethodPost, "/api/schedules", owner, gin.H{
		"name":       "Weekdays",
		"playlistId": playlist.ID,
		"startTime":  "08:00",
		"endTime":    "18:00",
		"daysOfWeek": []int{1, 2, 3, 4, 5},
		"deviceIds":  []string{device.ID},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	schedule := decode[model.Schedule](t, w)
	assert.True(t, schedule.IsActive)

	forDevice := decode[list[model.Schedule]](t, e.do(http.MethodGet, "/api/devices/"+device.ID+"/schedules", owner, nil))
	require.Equal(t, 1, forDevice.Count)
	assert.Equal(t, schedule.ID, forDevice.Items[0].ID)

	assert.Equal(t, http.StatusNoContent, e.do(http.MethodDelete, "/api/devices/"+device.ID, owner, nil).Code)
	got := decode[model.Schedule](t, e.do(http.MethodGet, "/api/schedules/"+schedule.ID, owner, nil))
	assert.Empty(t, got.DeviceIDs)
}

func TestWidgetEndpoints(t *testing.T) {
	e := newEnv(t)
	owner, _ := e.login("", model.RoleOwner)

	templates := decode[list[model.WidgetTemplate]](t, e.do(http.MethodGet, "/api/widgets/templates", owner, nil))
	require.NotZero(t, templates.Count)

	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, "/api/widgets/templates/clock", owner, nil).Code)
	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPost, "/api/widgets", owner, gin.H{"templateId": "nope", "name": "x"}).Code)

	for i := 0; i < 2; i++ {
		w := e.do(http.MethodPost, "/api/widgets", owner, gin.H{"templateId": "clock", "name": "Clock", "config": gin.H{"format": "24h"}})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	instances := decode[list[model.WidgetInstance]](t, e.do(http.MethodGet, "/api/widgets", owner, nil))
	assert.Equal(t, 2, instances.Count)
}

func TestMediaUpload(t *testing.T) {
	e := newEnv(t)
	owner, user := e.login("", model.RoleEditor)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "lobby loop.mp4")
	require.NoError(t, err)
	_, err = fw.Write([]byte("not really a video"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("duration", "12"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/media/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+owner)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	item := decode[model.MediaItem](t, w)
	assert.Equal(t, model.MediaVideo, item.Type)
	assert.Equal(t, "video/mp4", item.MimeType)
	assert.Equal(t, 12, item.Duration)
	assert.Equal(t, "lobby loop.mp4", item.Name)
	assert.True(t, strings.HasPrefix(item.URL, "/uploads/"+user.TenantID+"/lobby_loop_"), item.URL)

	videos := decode[list[model.MediaItem]](t, e.do(http.MethodGet, "/api/media?type=video", owner, nil))
	assert.Equal(t, 1, videos.Count)
	images := decode[list[model.MediaItem]](t, e.do(http.MethodGet, "/api/media?type=image", owner, nil))
	assert.Equal(t, 0, images.Count)
}

func TestTenantAdministration(t *testing.T) {
	e := newEnv(t)
	owner, user := e.login("", model.RoleOwner)
	editor, _ := e.login(user.TenantID, model.RoleEditor)

	assert.Equal(t, http.StatusForbidden, e.do(http.MethodGet, "/api/users", editor, nil).Code)
	assert.Equal(t, http.StatusForbidden, e.do(http.MethodPut, "/api/tenant", editor, gin.H{"name": "x"}).Code)

	w := e.do(http.MethodPut, "/api/tenant", owner, gin.H{"name": "Acme Signs", "branding": gin.H{"primaryColor": "#00ff00"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	tenant := decode[model.Tenant](t, w)
	assert.Equal(t, "#00ff00", tenant.Branding.PrimaryColor)

	w = e.do(http.MethodPost, "/api/users", owner, gin.H{"email": "New@Acme.com", "password": "password123", "role": "viewer"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "passwordHash")
	created := decode[struct{ ID, Email string }](t, w)
	assert.Equal(t, "new@acme.com", created.Email)
	assert.Equal(t, http.StatusConflict, e.do(http.MethodPost, "/api/users", owner, gin.H{"email": "new@acme.com", "password": "password123"}).Code)

	users := decode[list[struct{ ID string }]](t, e.do(http.MethodGet, "/api/users", owner, nil))
	assert.Equal(t, 3, users.Count)

	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodDelete, "/api/users/"+user.ID, owner, nil).Code)
	assert.Equal(t, http.StatusNoContent, e.do(http.MethodDelete, "/api/users/"+created.ID, owner, nil).Code)

	logs := decode[list[model.AuditLog]](t, e.do(http.MethodGet, "/api/audit-logs?limit=2", owner, nil))
	require.Equal(t, 2, logs.Count)
	assert.Equal(t, "delete", logs.Items[0].Action)
	assert.Equal(t, "user", logs.Items[0].Resource)
}

func TestCrossTenantReferencesRejected(t *testing.T) {
	e := newEnv(t)
	owner, _ := e.login("", model.RoleOwner)
	other, _ := e.login("", model.RoleOwner)

	foreignPlaylist := decode[model.Playlist](t, e.do(http.MethodPost, "/api/playlists", other, gin.H{"name": "theirs"}))
	foreignMedia := decode[model.MediaItem](t, e.do(http.MethodPost, "/api/media", other, gin.H{"name": "x", "type": "image", "url": "https://cdn/x.png"}))
	foreignWidget := decode[model.WidgetInstance](t, e.do(http.MethodPost, "/api/widgets", other, gin.H{"templateId": "clock", "name": "c"}))
	ownPlaylist := decode[model.Playlist](t, e.do(http.MethodPost, "/api/playlists", owner, gin.H{"name": "ours"}))

	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPost, "/api/devices", owner, gin.H{"name": "Lobby", "currentPlaylistId": foreignPlaylist.ID}).Code)

	w := e.do(http.MethodPost, "/api/devices", owner, gin.H{"name": "Lobby", "currentPlaylistId": ownPlaylist.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	device := decode[model.Device](t, w)

	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPut, "/api/devices/"+device.ID, owner, gin.H{"currentPlaylistId": foreignPlaylist.ID}).Code)
	assert.Equal(t, http.StatusOK, e.do(http.MethodPut, "/api/devices/"+device.ID, owner, gin.H{"currentPlaylistId": ""}).Code)

	for _, zone := range []gin.H{
		{"name": "m", "mediaId": foreignMedia.ID},
		{"name": "p", "playlistId": foreignPlaylist.ID},
		{"name": "w", "widgetInstanceId": foreignWidget.ID},
	} {
		assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPost, "/api/layouts", owner, gin.H{"name": "bad", "zones": []gin.H{zone}}).Code, zone)
	}
	layouts := decode[list[model.Layout]](t, e.do(http.MethodGet, "/api/layouts", owner, nil))
	assert.Zero(t, layouts.Count)

	w = e.do(http.MethodPost, "/api/layouts", owner, gin.H{"name": "ok", "zones": []gin.H{{"name": "p", "playlistId": ownPlaylist.ID}}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	layout := decode[model.Layout](t, w)

	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPut, "/api/layouts/"+layout.ID, owner, gin.H{"zones": []gin.H{{"name": "w", "widgetInstanceId": foreignWidget.ID}}}).Code)
	zones := decode[list[model.Zone]](t, e.do(http.MethodGet, "/api/layouts/"+layout.ID+"/zones", owner, nil))
	require.Equal(t, 1, zones.Count)
	assert.Equal(t, ownPlaylist.ID, zones.Items[0].PlaylistID)
}
