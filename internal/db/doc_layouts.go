package db

import (
	"context"
	"sort"
	"time"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// @ LAYOUT

func zonesOf(d *document, layoutID string) []model.Zone {
	zones := cloneAll(filter(d.Zones, func(z model.Zone) bool { return z.LayoutID == layoutID }), cloneZone)
	sort.SliceStable(zones, func(i, j int) bool { return zones[i].Position < zones[j].Position })
	return zones
}

// withZones returns l with copies of its zones attached; the stored parent
// carries none.
func withZones(d *document, l model.Layout) model.Layout {
	l.Zones = zonesOf(d, l.ID)
	return l
}

// checkZoneIDs lets a layout reuse its own zone ids when its set is replaced.
func checkZoneIDs(d *document, layoutID string, zones []model.Zone) error {
	ids := make([]string, len(zones))
	for i, z := range zones {
		ids[i] = z.ID
	}
	return checkChildIDs("zone", ids, func(id string) bool {
		return indexOf(d.Zones, func(z model.Zone) bool { return z.ID == id && z.LayoutID != layoutID }) >= 0
	})
}

func (s *docStore) FindLayoutByID(_ context.Context, id, tenantID string) (*model.Layout, error) {
	var out *model.Layout
	err := s.read("find layout", func(d *document) error {
		i := indexOf(d.Layouts, func(l model.Layout) bool { return l.ID == id && owned(tenantID, l.TenantID) })
		if i < 0 {
			return notFound("layout", id)
		}
		l := withZones(d, d.Layouts[i])
		out = &l
		return nil
	})
	return out, err
}

func (s *docStore) GetLayoutsByTenant(_ context.Context, tenantID string) ([]model.Layout, error) {
	var out []model.Layout
	err := s.read("list layouts", func(d *document) error {
		for _, l := range d.Layouts {
			if l.TenantID == tenantID {
				out = append(out, withZones(d, l))
			}
		}
		return nil
	})
	byCreated(out, func(l model.Layout) time.Time { return l.CreatedAt }, func(l model.Layout) string { return l.ID })
	return out, err
}

func (s *docStore) GetZonesByLayoutID(_ context.Context, layoutID string) ([]model.Zone, error) {
	var out []model.Zone
	err := s.read("list zones", func(d *document) error {
		out = zonesOf(d, layoutID)
		return nil
	})
	return out, err
}

func (s *docStore) CreateLayout(_ context.Context, l model.Layout) (*model.Layout, error) {
	if err := prepareLayout(&l, now()); err != nil {
		return nil, err
	}
	err := s.write("create layout", func(d *document) error {
		if indexOf(d.Layouts, func(o model.Layout) bool { return o.ID == l.ID }) >= 0 {
			return conflict("layout", "id", l.ID)
		}
		if err := checkZoneIDs(d, l.ID, l.Zones); err != nil {
			return err
		}
		parent := l
		parent.Zones = nil
		d.Layouts = append(d.Layouts, parent)
		d.Zones = append(d.Zones, cloneZones(l.Zones)...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *docStore) UpdateLayout(_ context.Context, id string, patch model.LayoutPatch, tenantID string) (*model.Layout, error) {
	var out model.Layout
	err := s.write("update layout", func(d *document) error {
		i := indexOf(d.Layouts, func(l model.Layout) bool { return l.ID == id && owned(tenantID, l.TenantID) })
		if i < 0 {
			return notFound("layout", id)
		}
		l := withZones(d, d.Layouts[i])
		applyLayoutPatch(&l, patch, now())
		if patch.Zones != nil {
			if err := checkZoneIDs(d, id, l.Zones); err != nil {
				return err
			}
		}

		parent := l
		parent.Zones = nil
		d.Layouts[i] = parent
		if patch.Zones != nil {
			d.Zones, _ = removeWhere(d.Zones, func(z model.Zone) bool { return z.LayoutID == id })
			d.Zones = append(d.Zones, cloneZones(l.Zones)...)
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *docStore) DeleteLayout(_ context.Context, id, tenantID string) error {
	return s.write("delete layout", func(d *document) error {
		if indexOf(d.Layouts, func(l model.Layout) bool { return l.ID == id && owned(tenantID, l.TenantID) }) < 0 {
			return notFound("layout", id)
		}
		d.Zones, _ = removeWhere(d.Zones, func(z model.Zone) bool { return z.LayoutID == id })
		d.Layouts, _ = removeWhere(d.Layouts, func(l model.Layout) bool { return l.ID == id })
		return nil
	})
}
