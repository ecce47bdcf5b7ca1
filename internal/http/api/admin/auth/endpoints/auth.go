package endpoints

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/marquee/internal/db"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/api"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/api/admin/auth/packets"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// Config carries the session and lockout policy.
type Config struct {
	JWTSecret        string
	SessionTTL       time.Duration
	MaxLoginAttempts int
	LockoutDuration  time.Duration
}

// AuthPublicModule mounts public auth endpoints (/auth/register, /auth/login)
func AuthPublicModule(cfg Config, store db.Store) api.Module {
	ctl := newAccountManager(cfg, store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/auth/register", ctl.register)
		c.PUBLIC_POST("/auth/login", ctl.userLogin)
	})
}

// AuthSessionModule mounts private session/profile endpoints (JWT required)
func AuthSessionModule(cfg Config, store db.Store) api.Module {
	ctl := newAccountManager(cfg, store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/auth/logout", ctl.logout)
		c.GET("/auth/me", ctl.getCurrentProfile)
		c.PUT("/auth/me", ctl.updateCurrentProfile)
	})
}

type AccountManager struct {
	cfg   Config
	store db.Store
}

func newAccountManager(cfg Config, store db.Store) *AccountManager {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.MaxLoginAttempts <= 0 {
		cfg.MaxLoginAttempts = 5
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = 15 * time.Minute
	}
	return &AccountManager{cfg: cfg, store: store}
}

// issueSession stores a new session for user and signs a token naming it.
func (a *AccountManager) issueSession(ctx *gin.Context, user *model.User) (*packets.TokenResponse, *api.APIError) {
	expires := time.Now().Add(a.cfg.SessionTTL)
	sess, err := a.store.CreateSession(ctx.Request.Context(), model.Session{
		UserID:    user.ID,
		TenantID:  user.TenantID,
		Token:     middleware.NewSessionToken(),
		ExpiresAt: expires,
		UserAgent: ctx.Request.UserAgent(),
		IPAddress: ctx.ClientIP(),
	})
	if err != nil {
		return nil, api.StoreError(err, "session")
	}

	token, err := middleware.GenerateJWT(middleware.Claims{
		UserID:       user.ID,
		TenantID:     user.TenantID,
		SessionToken: sess.Token,
	}, sess.ExpiresAt, a.cfg.JWTSecret)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not generate token"}
	}

	return &packets.TokenResponse{
		Token:     token,
		ExpiresAt: sess.ExpiresAt.Format(time.RFC3339),
		User:      packets.NewProfileResponse(user),
	}, nil
}

func (a *AccountManager) audit(ctx *gin.Context, user *model.User, action string, details model.JSON) {
	_, err := a.store.CreateAuditLog(ctx.Request.Context(), model.AuditLog{
		TenantID:   user.TenantID,
		UserID:     user.ID,
		Action:     action,
		Resource:   "user",
		ResourceID: user.ID,
		Details:    details,
		IPAddress:  ctx.ClientIP(),
	})
	if err != nil {
		log.Error().Err(err).Str("action", action).Str("user_id", user.ID).Msg("could not write audit log")
	}
}

// POST /api/auth/register
func (a *AccountManager) register(ctx *gin.Context) (any, *api.APIError) {
	var request packets.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err)
	}
	rctx := ctx.Request.Context()

	if existing, err := a.store.FindUserByEmail(rctx, request.Email); err == nil && existing != nil {
		log.Warn().Str("email", request.Email).Msg("register email already registered")
		return nil, &api.APIError{Code: http.StatusConflict, Message: "email already registered"}
	}

	hashed, err := middleware.HashPassword(request.Password)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not hash password"}
	}

	tenant, err := a.store.CreateTenant(rctx, model.Tenant{Name: request.TenantName, Subdomain: request.Subdomain})
	if err != nil {
		return nil, api.StoreError(err, "tenant")
	}

	user := model.User{
		TenantID:     tenant.ID,
		Email:        request.Email,
		PasswordHash: hashed,
		Role:         model.RoleOwner,
	}
	if request.Name != nil {
		user.Name = *request.Name
	}
	created, err := a.store.CreateUser(rctx, user)
	if err != nil {
		if derr := a.store.DeleteTenant(rctx, tenant.ID); derr != nil {
			log.Error().Err(derr).Str("tenant_id", tenant.ID).Msg("could not remove tenant after failed registration")
		}
		return nil, api.StoreError(err, "user")
	}

	a.audit(ctx, created, "register", model.JSON{"tenantName": tenant.Name})
	return a.issueSession(ctx, created)
}

// POST /api/auth/login
func (a *AccountManager) userLogin(ctx *gin.Context) (any, *api.APIError) {
	var request packets.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err)
	}
	rctx := ctx.Request.Context()

	user, err := a.store.FindUserByEmail(rctx, request.Email)
	if errors.Is(err, db.ErrNotFound) {
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: middleware.ErrInvalidCredentials.Error()}
	}
	if err != nil {
		return nil, api.StoreError(err, "user")
	}

	now := time.Now().UTC()
	if user.Status != model.UserActive {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "account disabled"}
	}
	if user.LockedUntil != nil && user.LockedUntil.After(now) {
		return nil, &api.APIError{Code: http.StatusLocked, Message: "account locked, try again later"}
	}

	if !middleware.CheckPassword(user.PasswordHash, request.Password) {
		a.recordFailedLogin(ctx, user, now)
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: middleware.ErrInvalidCredentials.Error()}
	}

	zero := 0
	updated, err := a.store.UpdateUser(rctx, user.ID, model.UserPatch{
		LoginAttempts: &zero,
		ClearLock:     true,
		LastLoginAt:   &now,
	}, user.TenantID)
	if err != nil {
		return nil, api.StoreError(err, "user")
	}

	a.audit(ctx, updated, "login", nil)
	return a.issueSession(ctx, updated)
}

// recordFailedLogin counts a bad password and locks the account once the
// limit is reached. The counter restarts after a lock.
func (a *AccountManager) recordFailedLogin(ctx *gin.Context, user *model.User, now time.Time) {
	attempts := user.LoginAttempts + 1
	patch := model.UserPatch{LoginAttempts: &attempts}
	locked := attempts >= a.cfg.MaxLoginAttempts
	if locked {
		until := now.Add(a.cfg.LockoutDuration)
		zero := 0
		patch.LoginAttempts = &zero
		patch.LockedUntil = &until
	}

	if _, err := a.store.UpdateUser(ctx.Request.Context(), user.ID, patch, user.TenantID); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("could not record failed login")
		return
	}
	if locked {
		log.Warn().Str("user_id", user.ID).Int("attempts", attempts).Msg("account locked after failed logins")
	}
	a.audit(ctx, user, "login_failed", model.JSON{"attempts": float64(attempts), "locked": locked})
}

// POST /api/auth/logout
func (a *AccountManager) logout(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	sess, ok := middleware.GetCurrentSession(ctx)
	if !ok {
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: "unauthorized"}
	}
	if err := a.store.DeleteSession(ctx.Request.Context(), sess.Token); err != nil {
		return nil, api.StoreError(err, "session")
	}
	a.audit(ctx, user, "logout", nil)
	return gin.H{"success": true}, nil
}

// GET /api/auth/me
func (a *AccountManager) getCurrentProfile(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	tenant, err := a.store.FindTenantByID(ctx.Request.Context(), user.TenantID)
	if err != nil {
		return nil, api.StoreError(err, "tenant")
	}
	return packets.MeResponse{User: packets.NewProfileResponse(user), Tenant: tenant}, nil
}

// PUT /api/auth/me
func (a *AccountManager) updateCurrentProfile(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.UpdateCurrentProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err)
	}

	patch := model.UserPatch{Email: request.Email, Name: request.Name}
	if request.Password != nil {
		hashed, err := middleware.HashPassword(*request.Password)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not hash password"}
		}
		patch.PasswordHash = &hashed
	}

	updated, err := a.store.UpdateUser(ctx.Request.Context(), user.ID, patch, user.TenantID)
	if err != nil {
		if errors.Is(err, db.ErrConflict) {
			return nil, &api.APIError{Code: http.StatusConflict, Message: "email already in use"}
		}
		return nil, api.StoreError(err, "user")
	}
	a.audit(ctx, updated, "update_profile", nil)
	return packets.NewProfileResponse(updated), nil
}
