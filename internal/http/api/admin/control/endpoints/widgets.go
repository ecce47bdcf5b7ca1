package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/marquee/internal/db"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/api"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/api/admin/control/packets"
	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

type WidgetController struct {
	controller
}

// WidgetModule mounts the template catalog and the tenant's widget instances.
func WidgetModule(store db.Store) api.Module {
	ctl := &WidgetController{controller{store: store}}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/widgets/templates", ctl.listTemplates)
		c.GET("/widgets/templates/:id", ctl.getTemplate)

		c.GET("/widgets", ctl.listInstances)
		c.POST("/widgets", ctl.createInstance)
		c.GET("/widgets/:id", ctl.getInstance)
		c.PUT("/widgets/:id", ctl.updateInstance)
		c.DELETE("/widgets/:id", ctl.deleteInstance)
	})
}

// GET /api/widgets/templates
func (w *WidgetController) listTemplates(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := w.store.GetWidgetTemplates(ctx.Request.Context())
	if err != nil {
		return nil, api.StoreError(err, "widget templates")
	}
	return packets.NewList(all), nil
}

// GET /api/widgets/templates/:id
func (w *WidgetController) getTemplate(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	tmpl, err := w.store.FindWidgetTemplateByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		return nil, api.StoreError(err, "widget template")
	}
	return tmpl, nil
}

func (w *WidgetController) checkTemplate(ctx *gin.Context, id string) *api.APIError {
	_, err := w.store.FindWidgetTemplateByID(ctx.Request.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		return &api.APIError{Code: http.StatusBadRequest, Message: "unknown widget template " + id}
	}
	if err != nil {
		return api.StoreError(err, "widget template")
	}
	return nil
}

// GET /api/widgets
func (w *WidgetController) listInstances(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := w.store.GetWidgetInstancesByTenant(ctx.Request.Context(), user.TenantID)
	if err != nil {
		return nil, api.StoreError(err, "widgets")
	}
	return packets.NewList(all), nil
}

// POST /api/widgets
func (w *WidgetController) createInstance(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := canEdit(user); apiErr != nil {
		return nil, apiErr
	}
	var request packets.CreateWidgetInstanceRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err)
	}
	if apiErr := w.checkTemplate(ctx, request.TemplateID); apiErr != nil {
		return nil, apiErr
	}

	inst, err := w.store.CreateWidgetInstance(ctx.Request.Context(), model.WidgetInstance{
		TenantID:   user.TenantID,
		TemplateID: request.TemplateID,
		Name:       request.Name,
		Config:     request.Config,
	})
	if err != nil {
		return nil, api.StoreError(err, "widget")
	}
	w.audit(ctx, user, "create", "widget", inst.ID, model.JSON{"templateId": inst.TemplateID})
	return inst, nil
}

// GET /api/widgets/:id
func (w *WidgetController) getInstance(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	inst, err := w.store.FindWidgetInstanceByID(ctx.Request.Context(), ctx.Param("id"), user.TenantID)
	if err != nil {
		return nil, api.StoreError(err, "widget")
	}
	return inst, nil
}

// PUT /api/widgets/:id
func (w *WidgetController) updateInstance(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := canEdit(user); apiErr != nil {
		return nil, apiErr
	}
	var request packets.UpdateWidgetInstanceRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err)
	}
	if request.TemplateID != nil {
		if apiErr := w.checkTemplate(ctx, *request.TemplateID); apiErr != nil {
			return nil, apiErr
		}
	}

	inst, err := w.store.UpdateWidgetInstance(ctx.Request.Context(), ctx.Param("id"), request.ToPatch(), user.TenantID)
	if err != nil {
		return nil, api.StoreError(err, "widget")
	}
	w.audit(ctx, user, "update", "widget", inst.ID, nil)
	return inst, nil
}

// DELETE /api/widgets/:id
func (w *WidgetController) deleteInstance(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := canEdit(user); apiErr != nil {
		return nil, apiErr
	}
	id := ctx.Param("id")
	if err := w.store.DeleteWidgetInstance(ctx.Request.Context(), id, user.TenantID); err != nil {
		return nil, api.StoreError(err, "widget")
	}
	w.audit(ctx, user, "delete", "widget", id, nil)
	return nil, nil
}
