package db

import (
	"context"
	"errors"

	"github.com/lib/pq"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// @ LAYOUT

func (s *pgStore) loadZones(ctx context.Context, layoutIDs ...string) (map[string][]model.Zone, error) {
	out := make(map[string][]model.Zone, len(layoutIDs))
	if len(layoutIDs) == 0 {
		return out, nil
	}
	var rows []zoneRow
	q := zonesTable.selectFrom() + " WHERE layout_id = ANY($1) ORDER BY layout_id, position"
	if err := s.selectRows(ctx, "list zones", &rows, q, pq.Array(layoutIDs)); err != nil {
		return nil, err
	}
	for _, r := range rows {
		z, err := zoneFromRow(r)
		if err != nil {
			return nil, backendErr("decode zone", err)
		}
		out[z.LayoutID] = append(out[z.LayoutID], z)
	}
	return out, nil
}

func (s *pgStore) insertZones(ctx context.Context, zones []model.Zone) error {
	if len(zones) == 0 {
		return nil
	}
	rows := make([]zoneRow, 0, len(zones))
	for _, z := range zones {
		r, err := zoneToRow(z)
		if err != nil {
			return backendErr("encode zone", err)
		}
		rows = append(rows, r)
	}
	_, err := s.namedExec(ctx, "create zones", zonesTable.insert(), rows)
	return err
}

func (s *pgStore) FindLayoutByID(ctx context.Context, id, tenantID string) (*model.Layout, error) {
	var r layoutRow
	q, args := scoped(layoutsTable.selectFrom()+" WHERE id = $1", tenantID, id)
	err := s.get(ctx, "find layout", &r, q, args...)
	if errors.Is(err, ErrNotFound) {
		return nil, notFound("layout", id)
	}
	if err != nil {
		return nil, err
	}
	l := layoutFromRow(r)
	zones, err := s.loadZones(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	l.Zones = zones[l.ID]
	return &l, nil
}

func (s *pgStore) GetLayoutsByTenant(ctx context.Context, tenantID string) ([]model.Layout, error) {
	var rows []layoutRow
	q := layoutsTable.selectFrom() + " WHERE tenant_id = $1 ORDER BY created_at, id"
	if err := s.selectRows(ctx, "list layouts", &rows, q, tenantID); err != nil {
		return nil, err
	}
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	zones, err := s.loadZones(ctx, ids...)
	if err != nil {
		return nil, err
	}
	out := make([]model.Layout, 0, len(rows))
	for _, r := range rows {
		l := layoutFromRow(r)
		l.Zones = zones[l.ID]
		out = append(out, l)
	}
	return out, nil
}

func (s *pgStore) GetZonesByLayoutID(ctx context.Context, layoutID string) ([]model.Zone, error) {
	zones, err := s.loadZones(ctx, layoutID)
	if err != nil {
		return nil, err
	}
	return zones[layoutID], nil
}

func (s *pgStore) CreateLayout(ctx context.Context, l model.Layout) (*model.Layout, error) {
	if err := prepareLayout(&l, now()); err != nil {
		return nil, err
	}
	if _, err := s.namedExec(ctx, "create layout", layoutsTable.insert(), layoutToRow(l)); err != nil {
		return nil, err
	}
	if err := s.insertZones(ctx, l.Zones); err != nil {
		_, cerr := s.exec(ctx, "undo create layout", "DELETE FROM layouts WHERE id = $1", l.ID)
		return nil, partial("create layout", err, cerr)
	}
	return &l, nil
}

func (s *pgStore) UpdateLayout(ctx context.Context, id string, patch model.LayoutPatch, tenantID string) (*model.Layout, error) {
	l, err := s.FindLayoutByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	applyLayoutPatch(l, patch, now())
	if err := s.updateRow(ctx, "layout", layoutsTable, id, layoutToRow(*l)); err != nil {
		return nil, err
	}
	if patch.Zones == nil {
		return l, nil
	}
	if _, err := s.exec(ctx, "delete zones", "DELETE FROM zones WHERE layout_id = $1", id); err != nil {
		return nil, partial("update layout", err, nil)
	}
	if err := s.insertZones(ctx, l.Zones); err != nil {
		return nil, partial("update layout", err, nil)
	}
	return l, nil
}

func (s *pgStore) DeleteLayout(ctx context.Context, id, tenantID string) error {
	if err := s.requireOwned(ctx, "layout", layoutsTable, id, tenantID); err != nil {
		return err
	}
	if _, err := s.exec(ctx, "delete zones", "DELETE FROM zones WHERE layout_id = $1", id); err != nil {
		return err
	}
	return s.deleteScoped(ctx, "layout", layoutsTable, id, tenantID)
}
