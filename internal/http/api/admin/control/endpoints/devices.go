package endpoints

import (
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/marquee/internal/db"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/api"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

type DeviceController struct {
	controller
}

// DeviceModule mounts all authenticated /devices endpoints.
func DeviceModule(store db.Store) api.Module {
	ctl := &DeviceController{controller{store: store}}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/devices", ctl.listDevices)
		c.POST("/devices", ctl.createDevice)
		c.GET("/devices/:id", ctl.getDevice)
		c.PUT("/devices/:id", ctl.updateDevice)
		c.DELETE("/devices/:id", ctl.deleteDevice)
		c.GET("/devices/:id/schedules", ctl.listDeviceSchedules)
	})
}

// checkPlaylist accepts an empty id, which means no current playlist.
func (d *DeviceController) checkPlaylist(ctx *gin.Context, tenantID, id string) *api.APIError {
	if id == "" {
		return nil
	}
	if _, err := d.store.FindPlaylistByID(ctx.Request.Context(), id, tenantID); err != nil {
		return refError("playlist", id, err)
	}
	return nil
}

// GET /api/devices
func (d *DeviceController) listDevices(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := d.store.GetDevicesByTenant(ctx.Request.Context(), user.TenantID)
	if err != nil {
		return nil, api.StoreError(err, "devices")
	}
	return packets.NewList(all), nil
}

// POST /api/devices
func (d *DeviceController) createDevice(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := canEdit(user); apiErr != nil {
		return nil, apiErr
	}
	var request packets.CreateDeviceRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err)
	}
	if apiErr := d.checkPlaylist(ctx, user.TenantID, request.CurrentPlaylistID); apiErr != nil {
		return nil, apiErr
	}

	device, err := d.store.CreateDevice(ctx.Request.Context(), request.ToModel(user.TenantID))
	if err != nil {
		return nil, api.StoreError(err, "device")
	}
	d.audit(ctx, user, "create", "device", device.ID, model.JSON{"name": device.Name})
	return device, nil
}

// GET /api/devices/:id
func (d *DeviceController) getDevice(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	device, err := d.store.FindDeviceByID(ctx.Request.Context(), ctx.Param("id"), user.TenantID)
	if err != nil {
		return nil, api.StoreError(err, "device")
	}
	return device, nil
}

// PUT /api/devices/:id
func (d *DeviceController) updateDevice(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := canEdit(user); apiErr != nil {
		return nil, apiErr
	}
	var request packets.UpdateDeviceRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err)
	}
	if request.CurrentPlaylistID != nil {
		if apiErr := d.checkPlaylist(ctx, user.TenantID, *request.CurrentPlaylistID); apiErr != nil {
			return nil, apiErr
		}
	}

	device, err := d.store.UpdateDevice(ctx.Request.Context(), ctx.Param("id"), request.ToPatch(), user.TenantID)
	if err != nil {
		return nil, api.StoreError(err, "device")
	}
	d.audit(ctx, user, "update", "device", device.ID, nil)
	return device, nil
}

// DELETE /api/devices/:id
func (d *DeviceController) deleteDevice(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := canEdit(user); apiErr != nil {
		return nil, apiErr
	}
	id := ctx.Param("id")
	if err := d.store.DeleteDevice(ctx.Request.Context(), id, user.TenantID); err != nil {
		return nil, api.StoreError(err, "device")
	}
	d.audit(ctx, user, "delete", "device", id, nil)
	return nil, nil
}

// GET /api/devices/:id/schedules
func (d *DeviceController) listDeviceSchedules(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	rctx := ctx.Request.Context()
	id := ctx.Param("id")
	if _, err := d.store.FindDeviceByID(rctx, id, user.TenantID); err != nil {
		return nil, api.StoreError(err, "device")
	}
	all, err := d.store.GetSchedulesByDevice(rctx, id, user.TenantID)
	if err != nil {
		return nil, api.StoreError(err, "schedules")
	}
	return packets.NewList(all), nil
}
