package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/marquee/internal/db"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/api"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

type ScheduleController struct {
	controller
}

// ScheduleModule mounts all authenticated /schedules endpoints.
func ScheduleModule(store db.Store) api.Module {
	ctl := &ScheduleController{controller{store: store}}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/schedules", ctl.listSchedules)
		c.POST("/schedules", ctl.createSchedule)
		c.GET("/schedules/:id", ctl.getSchedule)
		c.PUT("/schedules/:id", ctl.updateSchedule)
		c.DELETE("/schedules/:id", ctl.deleteSchedule)
	})
}

// checkRefs makes sure the playlist and devices belong to the tenant.
func (s *ScheduleController) checkRefs(ctx *gin.Context, tenantID string, playlistID *string, deviceIDs []string) *api.APIError {
	rctx := ctx.Request.Context()
	if playlistID != nil {
		if _, err := s.store.FindPlaylistByID(rctx, *playlistID, tenantID); err != nil {
			return &api.APIError{Code: http.StatusBadRequest, Message: "unknown playlist " + *playlistID}
		}
	}
	for _, id := range deviceIDs {
		if _, err := s.store.FindDeviceByID(rctx, id, tenantID); err != nil {
			return &api.APIError{Code: http.StatusBadRequest, Message: "unknown device " + id}
		}
	}
	return nil
}

// GET /api/schedules
func (s *ScheduleController) listSchedules(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := s.store.GetSchedulesByTenant(ctx.Request.Context(), user.TenantID)
	if err != nil {
		return nil, api.StoreError(err, "schedules")
	}
	return packets.NewList(all), nil
}

// POST /api/schedules
func (s *ScheduleController) createSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := canEdit(user); apiErr != nil {
		return nil, apiErr
	}
	var request packets.CreateScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err)
	}
	if apiErr := s.checkRefs(ctx, user.TenantID, &request.PlaylistID, request.DeviceIDs); apiErr != nil {
		return nil, apiErr
	}

	schedule, err := s.store.CreateSchedule(ctx.Request.Context(), request.ToModel(user.TenantID))
	if err != nil {
		return nil, api.StoreError(err, "schedule")
	}
	s.audit(ctx, user, "create", "schedule", schedule.ID, model.JSON{"name": schedule.Name, "devices": float64(len(schedule.DeviceIDs))})
	return schedule, nil
}

// GET /api/schedules/:id
func (s *ScheduleController) getSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	schedule, err := s.store.FindScheduleByID(ctx.Request.Context(), ctx.Param("id"), user.TenantID)
	if err != nil {
		return nil, api.StoreError(err, "schedule")
	}
	return schedule, nil
}

// PUT /api/schedules/:id
func (s *ScheduleController) updateSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := canEdit(user); apiErr != nil {
		return nil, apiErr
	}
	var request packets.UpdateScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err)
	}
	var deviceIDs []string
	if request.DeviceIDs != nil {
		deviceIDs = *request.DeviceIDs
	}
	if apiErr := s.checkRefs(ctx, user.TenantID, request.PlaylistID, deviceIDs); apiErr != nil {
		return nil, apiErr
	}

	schedule, err := s.store.UpdateSchedule(ctx.Request.Context(), ctx.Param("id"), request.ToPatch(), user.TenantID)
	if err != nil {
		return nil, api.StoreError(err, "schedule")
	}
	s.audit(ctx, user, "update", "schedule", schedule.ID, model.JSON{"devicesReplaced": request.DeviceIDs != nil})
	return schedule, nil
}

// DELETE /api/schedules/:id
func (s *ScheduleController) deleteSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := canEdit(user); apiErr != nil {
		return nil, apiErr
	}
	id := ctx.Param("id")
	if err := s.store.DeleteSchedule(ctx.Request.Context(), id, user.TenantID); err != nil {
		return nil, api.StoreError(err, "schedule")
	}
	s.audit(ctx, user, "delete", "schedule", id, nil)
	return nil, nil
}
