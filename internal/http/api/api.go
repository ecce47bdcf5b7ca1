package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/marquee/internal/db"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

type APIError struct {
	Code    int
	Message string
}

type HandlerFuncWithAuth func(ctx *gin.Context, user *model.User) (any, *APIError)
type HandlerFunc func(ctx *gin.Context) (any, *APIError)

// Controller is the gin group a Module attaches its endpoints to.
type Controller struct {
	Group *gin.RouterGroup
}

func (c *Controller) GET(path string, h HandlerFuncWithAuth) {
	c.Group.GET(path, ResolveEndpointWithAuth(h))
}

func (c *Controller) POST(path string, h HandlerFuncWithAuth) {
	c.Group.POST(path, ResolveEndpointWithAuth(h))
}

func (c *Controller) PUT(path string, h HandlerFuncWithAuth) {
	c.Group.PUT(path, ResolveEndpointWithAuth(h))
}

func (c *Controller) DELETE(path string, h HandlerFuncWithAuth) {
	c.Group.DELETE(path, ResolveEndpointWithAuth(h))
}

func (c *Controller) PUBLIC_POST(path string, h HandlerFunc) {
	c.Group.POST(path, ResolveEndpoint(h))
}

func ResolveEndpointWithAuth(h HandlerFuncWithAuth) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := middleware.GetCurrentUser(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		result, apiErr := h(ctx, user)
		respond(ctx, result, apiErr)
	}
}

func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		respond(ctx, result, apiErr)
	}
}

func respond(ctx *gin.Context, result any, apiErr *APIError) {
	if apiErr != nil {
		ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
		return
	}
	if result == nil {
		ctx.Status(http.StatusNoContent)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// StoreError maps a store failure onto a response. what names the record for
// the client ("device", "playlist", ...).
func StoreError(err error, what string) *APIError {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return &APIError{Code: http.StatusNotFound, Message: what + " not found"}
	case errors.Is(err, db.ErrConflict):
		return &APIError{Code: http.StatusConflict, Message: what + " conflicts with an existing record"}
	case errors.Is(err, db.ErrValidation):
		return &APIError{Code: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, db.ErrPartial):
		log.Error().Err(err).Str("record", what).Msg("write partially applied")
		return &APIError{Code: http.StatusInternalServerError, Message: what + " was only partially saved"}
	default:
		log.Error().Err(err).Str("record", what).Msg("store failure")
		return &APIError{Code: http.StatusInternalServerError, Message: "internal error"}
	}
}

func BadRequest(err error) *APIError {
	return &APIError{Code: http.StatusBadRequest, Message: err.Error()}
}
