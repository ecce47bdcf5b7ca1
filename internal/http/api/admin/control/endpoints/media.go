package endpoints

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/marquee/internal/db"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/api"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/marquee/internal/model"
	"github.com/Nixie-Tech-LLC/marquee/internal/storage"
)

type MediaController struct {
	controller
	storage storage.Storage
}

// MediaModule mounts all authenticated /media endpoints
func MediaModule(store db.Store, storage storage.Storage) api.Module {
	ctl := &MediaController{controller: controller{store: store}, storage: storage}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/media", ctl.listMedia)
		c.POST("/media", ctl.createMedia)
		c.POST("/media/upload", ctl.uploadMedia)
		c.GET("/media/:id", ctl.getMedia)
		c.PUT("/media/:id", ctl.updateMedia)
		c.DELETE("/media/:id", ctl.deleteMedia)
	})
}

// GET /api/media?type=video
func (m *MediaController) listMedia(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := m.store.GetMediaItemsByTenant(ctx.Request.Context(), user.TenantID)
	if err != nil {
		return nil, api.StoreError(err, "media")
	}

	if typeFilter := ctx.Query("type"); typeFilter != "" {
		filtered := make([]model.MediaItem, 0, len(all))
		for _, x := range all {
			if string(x.Type) == typeFilter {
				filtered = append(filtered, x)
			}
		}
		all = filtered
	}
	return packets.NewList(all), nil
}

// POST /api/media registers an item hosted elsewhere.
func (m *MediaController) createMedia(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := canEdit(user); apiErr != nil {
		return nil, apiErr
	}
	var request packets.CreateMediaItemRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err)
	}

	item, err := m.store.CreateMediaItem(ctx.Request.Context(), request.ToModel(user.TenantID))
	if err != nil {
		return nil, api.StoreError(err, "media")
	}
	m.audit(ctx, user, "create", "media", item.ID, model.JSON{"name": item.Name, "type": string(item.Type)})
	return item, nil
}

// POST /api/media/upload (multipart: file, name, type, duration)
func (m *MediaController) uploadMedia(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := canEdit(user); apiErr != nil {
		return nil, apiErr
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "file is required"}
	}

	name := ctx.PostForm("name")
	if name == "" {
		name = fileHeader.Filename
	}
	duration := 0
	if raw := ctx.PostForm("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil || duration < 0 {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid duration"}
		}
	}

	contentType := storage.ContentType(fileHeader.Filename)
	mediaType := model.MediaType(ctx.PostForm("type"))
	if mediaType == "" {
		mediaType = mediaTypeFor(contentType)
	}
	if mediaType == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "unsupported file type"}
	}

	url, err := m.storage.SaveFile(fileHeader, user.TenantID, fileHeader.Filename)
	if err != nil {
		log.Error().Err(err).Str("tenant_id", user.TenantID).Str("filename", fileHeader.Filename).Msg("[media] upload failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not store file"}
	}

	item, err := m.store.CreateMediaItem(ctx.Request.Context(), model.MediaItem{
		TenantID: user.TenantID,
		Name:     name,
		Type:     mediaType,
		URL:      url,
		Size:     fileHeader.Size,
		Duration: duration,
		MimeType: contentType,
	})
	if err != nil {
		return nil, api.StoreError(err, "media")
	}
	m.audit(ctx, user, "upload", "media", item.ID, model.JSON{"name": item.Name, "size": float64(item.Size)})
	return item, nil
}

// GET /api/media/:id
func (m *MediaController) getMedia(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	item, err := m.store.FindMediaItemByID(ctx.Request.Context(), ctx.Param("id"), user.TenantID)
	if err != nil {
		return nil, api.StoreError(err, "media")
	}
	return item, nil
}

// PUT /api/media/:id
func (m *MediaController) updateMedia(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := canEdit(user); apiErr != nil {
		return nil, apiErr
	}
	var request packets.UpdateMediaItemRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err)
	}

	item, err := m.store.UpdateMediaItem(ctx.Request.Context(), ctx.Param("id"), request.ToPatch(), user.TenantID)
	if err != nil {
		return nil, api.StoreError(err, "media")
	}
	m.audit(ctx, user, "update", "media", item.ID, nil)
	return item, nil
}

// DELETE /api/media/:id
func (m *MediaController) deleteMedia(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := canEdit(user); apiErr != nil {
		return nil, apiErr
	}
	id := ctx.Param("id")
	if err := m.store.DeleteMediaItem(ctx.Request.Context(), id, user.TenantID); err != nil {
		return nil, api.StoreError(err, "media")
	}
	m.audit(ctx, user, "delete", "media", id, nil)
	return nil, nil
}

func mediaTypeFor(contentType string) model.MediaType {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return model.MediaImage
	case strings.HasPrefix(contentType, "video/"):
		return model.MediaVideo
	case strings.HasPrefix(contentType, "audio/"):
		return model.MediaAudio
	case contentType == "application/pdf":
		return model.MediaPDF
	case contentType == "text/html":
		return model.MediaHTML
	}
	return ""
}
