package db

import (
	"context"
	"errors"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// @ WIDGET TEMPLATE

func (s *pgStore) FindWidgetTemplateByID(ctx context.Context, id string) (*model.WidgetTemplate, error) {
	var r widgetTemplateRow
	err := s.get(ctx, "find widget template", &r, widgetTemplatesTable.selectFrom()+" WHERE id = $1", id)
	if errors.Is(err, ErrNotFound) {
		return nil, notFound("widget template", id)
	}
	if err != nil {
		return nil, err
	}
	t, err := widgetTemplateFromRow(r)
	if err != nil {
		return nil, backendErr("decode widget template", err)
	}
	return &t, nil
}

func (s *pgStore) GetWidgetTemplates(ctx context.Context) ([]model.WidgetTemplate, error) {
	var rows []widgetTemplateRow
	q := widgetTemplatesTable.selectFrom() + " ORDER BY category, name"
	if err := s.selectRows(ctx, "list widget templates", &rows, q); err != nil {
		return nil, err
	}
	out := make([]model.WidgetTemplate, 0, len(rows))
	for _, r := range rows {
		t, err := widgetTemplateFromRow(r)
		if err != nil {
			return nil, backendErr("decode widget template", err)
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *pgStore) CreateWidgetTemplate(ctx context.Context, t model.WidgetTemplate) (*model.WidgetTemplate, error) {
	if err := prepareWidgetTemplate(&t, now()); err != nil {
		return nil, err
	}
	row, err := widgetTemplateToRow(t)
	if err != nil {
		return nil, backendErr("encode widget template", err)
	}
	if _, err := s.namedExec(ctx, "create widget template", widgetTemplatesTable.insert(), row); err != nil {
		return nil, err
	}
	return &t, nil
}

// @ WIDGET INSTANCE

func (s *pgStore) FindWidgetInstanceByID(ctx context.Context, id, tenantID string) (*model.WidgetInstance, error) {
	var r widgetInstanceRow
	q, args := scoped(widgetInstancesTable.selectFrom()+" WHERE id = $1", tenantID, id)
	err := s.get(ctx, "find widget instance", &r, q, args...)
	if errors.Is(err, ErrNotFound) {
		return nil, notFound("widget instance", id)
	}
	if err != nil {
		return nil, err
	}
	w, err := widgetInstanceFromRow(r)
	if err != nil {
		return nil, backendErr("decode widget instance", err)
	}
	return &w, nil
}

func (s *pgStore) GetWidgetInstancesByTenant(ctx context.Context, tenantID string) ([]model.WidgetInstance, error) {
	var rows []widgetInstanceRow
	q := widgetInstancesTable.selectFrom() + " WHERE tenant_id = $1 ORDER BY created_at, id"
	if err := s.selectRows(ctx, "list widget instances", &rows, q, tenantID); err != nil {
		return nil, err
	}
	out := make([]model.WidgetInstance, 0, len(rows))
	for _, r := range rows {
		w, err := widgetInstanceFromRow(r)
		if err != nil {
			return nil, backendErr("decode widget instance", err)
		}
		out = append(out, w)
	}
	return out, nil
}

func (s *pgStore) CreateWidgetInstance(ctx context.Context, w model.WidgetInstance) (*model.WidgetInstance, error) {
	if err := prepareWidgetInstance(&w, now()); err != nil {
		return nil, err
	}
	row, err := widgetInstanceToRow(w)
	if err != nil {
		return nil, backendErr("encode widget instance", err)
	}
	if _, err := s.namedExec(ctx, "create widget instance", widgetInstancesTable.insert(), row); err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *pgStore) UpdateWidgetInstance(ctx context.Context, id string, patch model.WidgetInstancePatch, tenantID string) (*model.WidgetInstance, error) {
	w, err := s.FindWidgetInstanceByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	applyWidgetInstancePatch(w, patch, now())
	row, err := widgetInstanceToRow(*w)
	if err != nil {
		return nil, backendErr("encode widget instance", err)
	}
	if err := s.updateRow(ctx, "widget instance", widgetInstancesTable, id, row); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *pgStore) DeleteWidgetInstance(ctx context.Context, id, tenantID string) error {
	return s.deleteScoped(ctx, "widget instance", widgetInstancesTable, id, tenantID)
}
