package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/marquee/internal/db"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/api"
)

const testSecret = "test-secret"

func newRouter(t *testing.T) (*gin.Engine, db.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := db.Open(context.Background(), db.Options{DataFile: filepath.Join(t.TempDir(), "data.json")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cfg := Config{JWTSecret: testSecret, SessionTTL: time.Hour, MaxLoginAttempts: 3, LockoutDuration: time.Minute}
	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api"}, AuthPublicModule(cfg, store))
	api.MountGroup(r, api.GroupConfig{Prefix: "/api", Auth: true, SecretKey: testSecret, Store: store}, AuthSessionModule(cfg, store))
	return r, store
}

func do(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tokenOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
		User  struct {
			PasswordHash string `json:"passwordHash"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	assert.Empty(t, resp.User.PasswordHash)
	return resp.Token
}

func register(r *gin.Engine, email string) *httptest.ResponseRecorder {
	return do(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"tenantName": "Acme",
		"subdomain":  "acme",
		"email":      email,
		"password":   "password123",
	})
}

func TestRegisterAndProfile(t *testing.T) {
	r, store := newRouter(t)

	token := tokenOf(t, register(r, "Owner@Acme.com"))

	w := do(r, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		User   struct{ Email, Role string } `json:"user"`
		Tenant struct{ Name, Subdomain string } `json:"tenant"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "owner@acme.com", me.User.Email)
	assert.Equal(t, "owner", me.User.Role)
	assert.Equal(t, "Acme", me.Tenant.Name)

	assert.Equal(t, http.StatusConflict, register(r, "owner@acme.com").Code)

	user, err := store.FindUserByEmail(context.Background(), "owner@acme.com")
	require.NoError(t, err)
	logs, err := store.GetAuditLogsByTenant(context.Background(), user.TenantID, 0)
	require.NoError(t, err)
	require.NotEmpty(t, logs)
	assert.Equal(t, "register", logs[len(logs)-1].Action)

	name := "Olivia"
	w = do(r, http.MethodPut, "/api/auth/me", token, gin.H{"name": name})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), name)
}

func TestRegisterValidation(t *testing.T) {
	r, _ := newRouter(t)
	w := do(r, http.MethodPost, "/api/auth/register", "", gin.H{"tenantName": "Acme", "email": "not-an-email", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginLockout(t *testing.T) {
	r, store := newRouter(t)
	tokenOf(t, register(r, "owner@acme.com"))

	bad := gin.H{"email": "owner@acme.com", "password": "wrong-password"}
	good := gin.H{"email": "OWNER@acme.com", "password": "password123"}

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/api/auth/login", "", bad).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/api/auth/login", "", bad).Code)

	user, err := store.FindUserByEmail(context.Background(), "owner@acme.com")
	require.NoError(t, err)
	assert.Equal(t, 2, user.LoginAttempts)

	// a success in between resets the counter
	tokenOf(t, do(r, http.MethodPost, "/api/auth/login", "", good))
	user, err = store.FindUserByEmail(context.Background(), "owner@acme.com")
	require.NoError(t, err)
	assert.Equal(t, 0, user.LoginAttempts)
	assert.NotNil(t, user.LastLoginAt)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/api/auth/login", "", bad).Code)
	}
	assert.Equal(t, http.StatusLocked, do(r, http.MethodPost, "/api/auth/login", "", good).Code)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "nobody@acme.com", "password": "x"}).Code)
}

func TestLogoutRevokesSession(t *testing.T) {
	r, _ := newRouter(t)
	token := tokenOf(t, register(r, "owner@acme.com"))

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/auth/logout", token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/auth/me", token, nil).Code)
}
