package db

import (
	"time"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// The document backend keeps records in memory, so everything it stores or
// hands out is copied here first. Empty values also get one shape for both
// backends: an empty JSON object or list reads back as nil.

func cloneJSON(m model.JSON) model.JSON {
	if len(m) == 0 {
		return nil
	}
	out := make(model.JSON, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case model.JSON:
		out := make(model.JSON, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func cloneSlice[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

func cloneTenant(t model.Tenant) model.Tenant {
	t.Settings = cloneJSON(t.Settings)
	return t
}

func cloneUser(u model.User) model.User {
	u.LockedUntil = cloneTime(u.LockedUntil)
	u.LastLoginAt = cloneTime(u.LastLoginAt)
	return u
}

func cloneAuditLog(l model.AuditLog) model.AuditLog {
	l.Details = cloneJSON(l.Details)
	return l
}

func cloneDevice(d model.Device) model.Device {
	d.LastSeen = cloneTime(d.LastSeen)
	d.Metadata = cloneJSON(d.Metadata)
	return d
}

func cloneMediaItem(m model.MediaItem) model.MediaItem {
	m.Metadata = cloneJSON(m.Metadata)
	return m
}

func cloneZone(z model.Zone) model.Zone {
	z.Settings = cloneJSON(z.Settings)
	return z
}

func cloneZones(zones []model.Zone) []model.Zone {
	if zones == nil {
		return nil
	}
	out := make([]model.Zone, len(zones))
	for i, z := range zones {
		out[i] = cloneZone(z)
	}
	return out
}

func cloneLayout(l model.Layout) model.Layout {
	l.Zones = cloneZones(l.Zones)
	return l
}

func clonePlaylist(p model.Playlist) model.Playlist {
	p.Items = cloneSlice(p.Items)
	return p
}

func cloneSchedule(s model.Schedule) model.Schedule {
	s.DaysOfWeek = cloneSlice(s.DaysOfWeek)
	s.DeviceIDs = cloneSlice(s.DeviceIDs)
	return s
}

func cloneWidgetTemplate(t model.WidgetTemplate) model.WidgetTemplate {
	t.ConfigSchema = cloneJSON(t.ConfigSchema)
	t.DefaultConfig = cloneJSON(t.DefaultConfig)
	return t
}

func cloneWidgetInstance(w model.WidgetInstance) model.WidgetInstance {
	w.Config = cloneJSON(w.Config)
	return w
}

// cloneAll copies every record of a read result.
func cloneAll[T any](items []T, clone func(T) T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = clone(it)
	}
	return out
}
