package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/marquee/internal/db"
	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

const testSecret = "test-secret"

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateJWT(Claims{UserID: "u1", TenantID: "t1", SessionToken: "s1"}, time.Now().Add(time.Hour), testSecret)
	require.NoError(t, err)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, Claims{UserID: "u1", TenantID: "t1", SessionToken: "s1"}, claims)

	_, err = ParseToken(token, "other-secret")
	assert.Error(t, err)

	expired, err := GenerateJWT(Claims{UserID: "u1", SessionToken: "s1"}, time.Now().Add(-time.Minute), testSecret)
	require.NoError(t, err)
	_, err = ParseToken(expired, testSecret)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "battery staple"))
}

type fixture struct {
	store  db.Store
	user   *model.User
	token  string
	router *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	store, err := db.Open(ctx, db.Options{DataFile: filepath.Join(t.TempDir(), "data.json")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	tenant, err := store.CreateTenant(ctx, model.Tenant{Name: "Acme"})
	require.NoError(t, err)
	user, err := store.CreateUser(ctx, model.User{TenantID: tenant.ID, Email: "a@acme.com"})
	require.NoError(t, err)
	sess, err := store.CreateSession(ctx, model.Session{UserID: user.ID, TenantID: tenant.ID, Token: NewSessionToken(), ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	token, err := GenerateJWT(Claims{UserID: user.ID, TenantID: tenant.ID, SessionToken: sess.Token}, sess.ExpiresAt, testSecret)
	require.NoError(t, err)

	r := gin.New()
	r.Use(JWTMiddleware(testSecret, store))
	r.GET("/whoami", func(c *gin.Context) {
		u, _ := GetCurrentUser(c)
		s, _ := GetCurrentSession(c)
		c.JSON(http.StatusOK, gin.H{"id": u.ID, "session": s.Token})
	})

	return &fixture{store: store, user: user, token: token, router: r}
}

func (f *fixture) call(header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestJWTMiddleware(t *testing.T) {
	f := newFixture(t)

	t.Run("valid session", func(t *testing.T) {
		w := f.call("Bearer " + f.token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), f.user.ID)
	})

	t.Run("missing or malformed header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, f.call("").Code)
		assert.Equal(t, http.StatusUnauthorized, f.call("Token "+f.token).Code)
		assert.Equal(t, http.StatusUnauthorized, f.call("Bearer nonsense").Code)
	})

	t.Run("disabled user", func(t *testing.T) {
		disabled := model.UserDisabled
		_, err := f.store.UpdateUser(context.Background(), f.user.ID, model.UserPatch{Status: &disabled}, "")
		require.NoError(t, err)
		defer func() {
			active := model.UserActive
			_, _ = f.store.UpdateUser(context.Background(), f.user.ID, model.UserPatch{Status: &active}, "")
		}()
		assert.Equal(t, http.StatusForbidden, f.call("Bearer "+f.token).Code)
	})

	t.Run("revoked session", func(t *testing.T) {
		n, err := f.store.DeleteUserSessions(context.Background(), f.user.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		w := f.call("Bearer " + f.token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "session expired")
	})
}
