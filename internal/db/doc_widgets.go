package db

import (
	"context"
	"sort"
	"time"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// @ WIDGET TEMPLATE

func (s *docStore) FindWidgetTemplateByID(_ context.Context, id string) (*model.WidgetTemplate, error) {
	var out *model.WidgetTemplate
	err := s.read("find widget template", func(d *document) error {
		i := indexOf(d.WidgetTemplates, func(t model.WidgetTemplate) bool { return t.ID == id })
		if i < 0 {
			return notFound("widget template", id)
		}
		t := cloneWidgetTemplate(d.WidgetTemplates[i])
		out = &t
		return nil
	})
	return out, err
}

func (s *docStore) GetWidgetTemplates(_ context.Context) ([]model.WidgetTemplate, error) {
	var out []model.WidgetTemplate
	err := s.read("list widget templates", func(d *document) error {
		out = cloneAll(d.WidgetTemplates, cloneWidgetTemplate)
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, err
}

func (s *docStore) CreateWidgetTemplate(_ context.Context, t model.WidgetTemplate) (*model.WidgetTemplate, error) {
	if err := prepareWidgetTemplate(&t, now()); err != nil {
		return nil, err
	}
	err := s.write("create widget template", func(d *document) error {
		if indexOf(d.WidgetTemplates, func(o model.WidgetTemplate) bool { return o.ID == t.ID }) >= 0 {
			return conflict("widget template", "id", t.ID)
		}
		d.WidgetTemplates = append(d.WidgetTemplates, cloneWidgetTemplate(t))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// @ WIDGET INSTANCE

func (s *docStore) FindWidgetInstanceByID(_ context.Context, id, tenantID string) (*model.WidgetInstance, error) {
	var out *model.WidgetInstance
	err := s.read("find widget instance", func(d *document) error {
		i := indexOf(d.WidgetInstances, func(w model.WidgetInstance) bool { return w.ID == id && owned(tenantID, w.TenantID) })
		if i < 0 {
			return notFound("widget instance", id)
		}
		w := cloneWidgetInstance(d.WidgetInstances[i])
		out = &w
		return nil
	})
	return out, err
}

func (s *docStore) GetWidgetInstancesByTenant(_ context.Context, tenantID string) ([]model.WidgetInstance, error) {
	var out []model.WidgetInstance
	err := s.read("list widget instances", func(d *document) error {
		out = cloneAll(filter(d.WidgetInstances, func(w model.WidgetInstance) bool { return w.TenantID == tenantID }), cloneWidgetInstance)
		return nil
	})
	byCreated(out, func(w model.WidgetInstance) time.Time { return w.CreatedAt }, func(w model.WidgetInstance) string { return w.ID })
	return out, err
}

// CreateWidgetInstance always appends; identical instances are kept apart.
func (s *docStore) CreateWidgetInstance(_ context.Context, w model.WidgetInstance) (*model.WidgetInstance, error) {
	if err := prepareWidgetInstance(&w, now()); err != nil {
		return nil, err
	}
	err := s.write("create widget instance", func(d *document) error {
		if indexOf(d.WidgetInstances, func(o model.WidgetInstance) bool { return o.ID == w.ID }) >= 0 {
			return conflict("widget instance", "id", w.ID)
		}
		d.WidgetInstances = append(d.WidgetInstances, cloneWidgetInstance(w))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *docStore) UpdateWidgetInstance(_ context.Context, id string, patch model.WidgetInstancePatch, tenantID string) (*model.WidgetInstance, error) {
	var out model.WidgetInstance
	err := s.write("update widget instance", func(d *document) error {
		i := indexOf(d.WidgetInstances, func(w model.WidgetInstance) bool { return w.ID == id && owned(tenantID, w.TenantID) })
		if i < 0 {
			return notFound("widget instance", id)
		}
		applyWidgetInstancePatch(&d.WidgetInstances[i], patch, now())
		out = cloneWidgetInstance(d.WidgetInstances[i])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *docStore) DeleteWidgetInstance(_ context.Context, id, tenantID string) error {
	return s.write("delete widget instance", func(d *document) error {
		var n int
		d.WidgetInstances, n = removeWhere(d.WidgetInstances, func(w model.WidgetInstance) bool {
			return w.ID == id && owned(tenantID, w.TenantID)
		})
		if n == 0 {
			return notFound("widget instance", id)
		}
		return nil
	})
}
