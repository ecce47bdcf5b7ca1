package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/marquee/internal/db"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/api"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

type PlaylistController struct {
	controller
}

// PlaylistModule mounts all authenticated /playlists endpoints.
func PlaylistModule(store db.Store) api.Module {
	ctl := &PlaylistController{controller{store: store}}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/playlists", ctl.listPlaylists)
		c.POST("/playlists", ctl.createPlaylist)
		c.GET("/playlists/:id", ctl.getPlaylist)
		c.GET("/playlists/:id/items", ctl.listItems)
		c.PUT("/playlists/:id", ctl.updatePlaylist)
		c.DELETE("/playlists/:id", ctl.deletePlaylist)
	})
}

// GET /api/playlists
func (p *PlaylistController) listPlaylists(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := p.store.GetPlaylistsByTenant(ctx.Request.Context(), user.TenantID)
	if err != nil {
		return nil, api.StoreError(err, "playlists")
	}
	return packets.NewList(all), nil
}

// checkMedia makes sure every item points at media the tenant owns.
func (p *PlaylistController) checkMedia(ctx *gin.Context, tenantID string, items []packets.PlaylistItemRequest) *api.APIError {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if seen[it.MediaID] {
			continue
		}
		seen[it.MediaID] = true
		if _, err := p.store.FindMediaItemByID(ctx.Request.Context(), it.MediaID, tenantID); err != nil {
			log.Warn().Err(err).Str("media_id", it.MediaID).Msg("[playlist] unknown media in items")
			return &api.APIError{Code: http.StatusBadRequest, Message: "unknown media " + it.MediaID}
		}
	}
	return nil
}

// POST /api/playlists
func (p *PlaylistController) createPlaylist(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := canEdit(user); apiErr != nil {
		return nil, apiErr
	}
	var request packets.CreatePlaylistRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err)
	}
	if apiErr := p.checkMedia(ctx, user.TenantID, request.Items); apiErr != nil {
		return nil, apiErr
	}

	playlist, err := p.store.CreatePlaylist(ctx.Request.Context(), request.ToModel(user.TenantID))
	if err != nil {
		return nil, api.StoreError(err, "playlist")
	}
	p.audit(ctx, user, "create", "playlist", playlist.ID, model.JSON{"name": playlist.Name, "items": float64(len(playlist.Items))})
	return playlist, nil
}

// GET /api/playlists/:id
func (p *PlaylistController) getPlaylist(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	playlist, err := p.store.FindPlaylistByID(ctx.Request.Context(), ctx.Param("id"), user.TenantID)
	if err != nil {
		return nil, api.StoreError(err, "playlist")
	}
	return playlist, nil
}

// GET /api/playlists/:id/items
func (p *PlaylistController) listItems(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	rctx := ctx.Request.Context()
	id := ctx.Param("id")
	if _, err := p.store.FindPlaylistByID(rctx, id, user.TenantID); err != nil {
		return nil, api.StoreError(err, "playlist")
	}
	items, err := p.store.GetPlaylistItems(rctx, id)
	if err != nil {
		return nil, api.StoreError(err, "playlist items")
	}
	return packets.NewList(items), nil
}

// PUT /api/playlists/:id
func (p *PlaylistController) updatePlaylist(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := canEdit(user); apiErr != nil {
		return nil, apiErr
	}
	var request packets.UpdatePlaylistRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err)
	}
	if request.Items != nil {
		if apiErr := p.checkMedia(ctx, user.TenantID, *request.Items); apiErr != nil {
			return nil, apiErr
		}
	}

	playlist, err := p.store.UpdatePlaylist(ctx.Request.Context(), ctx.Param("id"), request.ToPatch(), user.TenantID)
	if err != nil {
		return nil, api.StoreError(err, "playlist")
	}
	p.audit(ctx, user, "update", "playlist", playlist.ID, model.JSON{"itemsReplaced": request.Items != nil})
	return playlist, nil
}

// DELETE /api/playlists/:id
func (p *PlaylistController) deletePlaylist(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := canEdit(user); apiErr != nil {
		return nil, apiErr
	}
	id := ctx.Param("id")
	if err := p.store.DeletePlaylist(ctx.Request.Context(), id, user.TenantID); err != nil {
		return nil, api.StoreError(err, "playlist")
	}
	p.audit(ctx, user, "delete", "playlist", id, nil)
	return nil, nil
}
