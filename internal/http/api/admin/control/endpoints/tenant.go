package endpoints

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/marquee/internal/db"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/api"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

const defaultAuditLimit = 100

type TenantController struct {
	controller
}

// TenantModule mounts tenant settings, user management and the audit trail.
func TenantModule(store db.Store) api.Module {
	ctl := &TenantController{controller{store: store}}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/tenant", ctl.getTenant)
		c.PUT("/tenant", ctl.updateTenant)

		c.GET("/users", ctl.listUsers)
		c.POST("/users", ctl.createUser)
		c.PUT("/users/:id", ctl.updateUser)
		c.DELETE("/users/:id", ctl.deleteUser)

		c.GET("/audit-logs", ctl.listAuditLogs)
	})
}

// GET /api/tenant
func (t *TenantController) getTenant(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	tenant, err := t.store.FindTenantByID(ctx.Request.Context(), user.TenantID)
	if err != nil {
		return nil, api.StoreError(err, "tenant")
	}
	return tenant, nil
}

// PUT /api/tenant
func (t *TenantController) updateTenant(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := canAdminister(user); apiErr != nil {
		return nil, apiErr
	}
	var request packets.UpdateTenantRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err)
	}

	tenant, err := t.store.UpdateTenant(ctx.Request.Context(), user.TenantID, request.ToPatch())
	if err != nil {
		return nil, api.StoreError(err, "tenant")
	}
	t.audit(ctx, user, "update", "tenant", tenant.ID, nil)
	return tenant, nil
}

// GET /api/users
func (t *TenantController) listUsers(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := canAdminister(user); apiErr != nil {
		return nil, apiErr
	}
	all, err := t.store.GetUsersByTenant(ctx.Request.Context(), user.TenantID)
	if err != nil {
		return nil, api.StoreError(err, "users")
	}
	out := make([]packets.UserResponse, 0, len(all))
	for _, u := range all {
		out = append(out, packets.NewUserResponse(u))
	}
	return packets.NewList(out), nil
}

// POST /api/users invites a user into the caller's tenant.
func (t *TenantController) createUser(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := canAdminister(user); apiErr != nil {
		return nil, apiErr
	}
	var request packets.CreateUserRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err)
	}

	hashed, err := middleware.HashPassword(request.Password)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not hash password"}
	}
	role := model.Role(request.Role)
	if role == "" {
		role = model.RoleEditor
	}
	u := model.User{TenantID: user.TenantID, Email: request.Email, PasswordHash: hashed, Role: role}
	if request.Name != nil {
		u.Name = *request.Name
	}

	created, err := t.store.CreateUser(ctx.Request.Context(), u)
	if err != nil {
		if errors.Is(err, db.ErrConflict) {
			return nil, &api.APIError{Code: http.StatusConflict, Message: "email already registered"}
		}
		return nil, api.StoreError(err, "user")
	}
	t.audit(ctx, user, "create", "user", created.ID, model.JSON{"role": string(created.Role)})
	return packets.NewUserResponse(*created), nil
}

// PUT /api/users/:id
func (t *TenantController) updateUser(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := canAdminister(user); apiErr != nil {
		return nil, apiErr
	}
	var request packets.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err)
	}
	id := ctx.Param("id")
	if id == user.ID && (request.Role != nil || request.Status != nil) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "cannot change your own role or status"}
	}

	rctx := ctx.Request.Context()
	updated, err := t.store.UpdateUser(rctx, id, request.ToPatch(), user.TenantID)
	if err != nil {
		return nil, api.StoreError(err, "user")
	}
	if updated.Status == model.UserDisabled {
		n, err := t.store.DeleteUserSessions(rctx, updated.ID)
		if err != nil {
			log.Error().Err(err).Str("user_id", updated.ID).Msg("could not revoke sessions of disabled user")
		} else if n > 0 {
			log.Info().Str("user_id", updated.ID).Int("sessions", n).Msg("revoked sessions of disabled user")
		}
	}
	t.audit(ctx, user, "update", "user", updated.ID, nil)
	return packets.NewUserResponse(*updated), nil
}

// DELETE /api/users/:id
func (t *TenantController) deleteUser(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := canAdminister(user); apiErr != nil {
		return nil, apiErr
	}
	id := ctx.Param("id")
	if id == user.ID {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "cannot delete your own account"}
	}
	if err := t.store.DeleteUser(ctx.Request.Context(), id, user.TenantID); err != nil {
		return nil, api.StoreError(err, "user")
	}
	t.audit(ctx, user, "delete", "user", id, nil)
	return nil, nil
}

// GET /api/audit-logs?limit=50
func (t *TenantController) listAuditLogs(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := canAdminister(user); apiErr != nil {
		return nil, apiErr
	}
	limit := defaultAuditLimit
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid limit"}
		}
		limit = n
	}
	logs, err := t.store.GetAuditLogsByTenant(ctx.Request.Context(), user.TenantID, limit)
	if err != nil {
		return nil, api.StoreError(err, "audit logs")
	}
	return packets.NewList(logs), nil
}
