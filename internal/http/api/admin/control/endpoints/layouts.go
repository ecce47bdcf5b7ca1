package endpoints

import (
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/marquee/internal/db"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/api"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

type LayoutController struct {
	controller
}

// LayoutModule mounts all authenticated /layouts endpoints.
func LayoutModule(store db.Store) api.Module {
	ctl := &LayoutController{controller{store: store}}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/layouts", ctl.listLayouts)
		c.POST("/layouts", ctl.createLayout)
		c.GET("/layouts/:id", ctl.getLayout)
		c.GET("/layouts/:id/zones", ctl.listZones)
		c.PUT("/layouts/:id", ctl.updateLayout)
		c.DELETE("/layouts/:id", ctl.deleteLayout)
	})
}

// checkZoneRefs makes sure every media, playlist and widget a zone shows
// belongs to the tenant.
func (l *LayoutController) checkZoneRefs(ctx *gin.Context, tenantID string, zones []packets.ZoneRequest) *api.APIError {
	rctx := ctx.Request.Context()
	for _, z := range zones {
		if z.MediaID != "" {
			if _, err := l.store.FindMediaItemByID(rctx, z.MediaID, tenantID); err != nil {
				return refError("media", z.MediaID, err)
			}
		}
		if z.PlaylistID != "" {
			if _, err := l.store.FindPlaylistByID(rctx, z.PlaylistID, tenantID); err != nil {
				return refError("playlist", z.PlaylistID, err)
			}
		}
		if z.WidgetInstanceID != "" {
			if _, err := l.store.FindWidgetInstanceByID(rctx, z.WidgetInstanceID, tenantID); err != nil {
				return refError("widget", z.WidgetInstanceID, err)
			}
		}
	}
	return nil
}

// GET /api/layouts
func (l *LayoutController) listLayouts(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := l.store.GetLayoutsByTenant(ctx.Request.Context(), user.TenantID)
	if err != nil {
		return nil, api.StoreError(err, "layouts")
	}
	return packets.NewList(all), nil
}

// POST /api/layouts
func (l *LayoutController) createLayout(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := canEdit(user); apiErr != nil {
		return nil, apiErr
	}
	var request packets.CreateLayoutRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err)
	}
	if apiErr := l.checkZoneRefs(ctx, user.TenantID, request.Zones); apiErr != nil {
		return nil, apiErr
	}

	layout, err := l.store.CreateLayout(ctx.Request.Context(), request.ToModel(user.TenantID))
	if err != nil {
		return nil, api.StoreError(err, "layout")
	}
	l.audit(ctx, user, "create", "layout", layout.ID, model.JSON{"name": layout.Name, "zones": float64(len(layout.Zones))})
	return layout, nil
}

// GET /api/layouts/:id
func (l *LayoutController) getLayout(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	layout, err := l.store.FindLayoutByID(ctx.Request.Context(), ctx.Param("id"), user.TenantID)
	if err != nil {
		return nil, api.StoreError(err, "layout")
	}
	return layout, nil
}

// GET /api/layouts/:id/zones
func (l *LayoutController) listZones(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	rctx := ctx.Request.Context()
	id := ctx.Param("id")
	// zone lookups are unscoped, so ownership is checked on the parent
	if _, err := l.store.FindLayoutByID(rctx, id, user.TenantID); err != nil {
		return nil, api.StoreError(err, "layout")
	}
	zones, err := l.store.GetZonesByLayoutID(rctx, id)
	if err != nil {
		return nil, api.StoreError(err, "zones")
	}
	return packets.NewList(zones), nil
}

// PUT /api/layouts/:id
func (l *LayoutController) updateLayout(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := canEdit(user); apiErr != nil {
		return nil, apiErr
	}
	var request packets.UpdateLayoutRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err)
	}
	if request.Zones != nil {
		if apiErr := l.checkZoneRefs(ctx, user.TenantID, *request.Zones); apiErr != nil {
			return nil, apiErr
		}
	}

	layout, err := l.store.UpdateLayout(ctx.Request.Context(), ctx.Param("id"), request.ToPatch(), user.TenantID)
	if err != nil {
		return nil, api.StoreError(err, "layout")
	}
	l.audit(ctx, user, "update", "layout", layout.ID, model.JSON{"zonesReplaced": request.Zones != nil})
	return layout, nil
}

// DELETE /api/layouts/:id
func (l *LayoutController) deleteLayout(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := canEdit(user); apiErr != nil {
		return nil, apiErr
	}
	id := ctx.Param("id")
	if err := l.store.DeleteLayout(ctx.Request.Context(), id, user.TenantID); err != nil {
		return nil, api.StoreError(err, "layout")
	}
	l.audit(ctx, user, "delete", "layout", id, nil)
	return nil, nil
}
