package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/marquee/internal/db"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/api"
	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// controller holds what every control endpoint needs. Every store call is
// scoped to the caller's tenant.
type controller struct {
	store db.Store
}

// audit records a mutation. A failed audit write is logged and otherwise
// ignored so it never fails the request that caused it.
func (c *controller) audit(ctx *gin.Context, user *model.User, action, resource, resourceID string, details model.JSON) {
	_, err := c.store.CreateAuditLog(ctx.Request.Context(), model.AuditLog{
		TenantID:   user.TenantID,
		UserID:     user.ID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Details:    details,
		IPAddress:  ctx.ClientIP(),
	})
	if err != nil {
		log.Error().Err(err).
			Str("action", action).
			Str("resource", resource).
			Str("resource_id", resourceID).
			Msg("could not write audit log")
	}
}

// refError reports a reference to a record outside the caller's tenant as a
// bad request.
func refError(what, id string, err error) *api.APIError {
	if errors.Is(err, db.ErrNotFound) {
		return &api.APIError{Code: http.StatusBadRequest, Message: "unknown " + what + " " + id}
	}
	return api.StoreError(err, what)
}

// canEdit rejects viewers.
func canEdit(user *model.User) *api.APIError {
	if user.Role == model.RoleViewer {
		return &api.APIError{Code: http.StatusForbidden, Message: "read-only account"}
	}
	return nil
}

// canAdminister allows owners and admins only.
func canAdminister(user *model.User) *api.APIError {
	if user.Role != model.RoleOwner && user.Role != model.RoleAdmin {
		return &api.APIError{Code: http.StatusForbidden, Message: "administrator role required"}
	}
	return nil
}
