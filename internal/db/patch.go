package db

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// Creation defaults, naming normalization and partial-update merge rules live
// here so both backends apply exactly the same semantics.

// now is truncated to microseconds, the precision PostgreSQL keeps, so a record
// reads back identical to what was written regardless of backend.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func newID() string {
	return uuid.NewString()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeHost(host string) string {
	return strings.ToLower(strings.TrimSpace(host))
}

// owned reports whether a record of recordTenant is visible under the tenantID
// filter.
func owned(tenantID, recordTenant string) bool {
	return tenantID == "" || tenantID == recordTenant
}

func uniqueIDs(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func totalDuration(items []model.PlaylistItem) int {
	total := 0
	for _, it := range items {
		total += it.Duration
	}
	return total
}

// @ CREATE

func prepareTenant(t *model.Tenant, ts time.Time) error {
	if t.ID == "" {
		t.ID = newID()
	}
	t.Domain = normalizeHost(t.Domain)
	t.Subdomain = normalizeHost(t.Subdomain)
	if t.Plan == "" {
		t.Plan = "free"
	}
	if t.Status == "" {
		t.Status = model.TenantActive
	}
	t.Settings = cloneJSON(t.Settings)
	t.CreatedAt, t.UpdatedAt = ts, ts
	return nil
}

func prepareUser(u *model.User, ts time.Time) error {
	if u.TenantID == "" {
		return invalid("user", "tenant id is required")
	}
	u.Email = normalizeEmail(u.Email)
	if u.Email == "" {
		return invalid("user", "email is required")
	}
	if u.ID == "" {
		u.ID = newID()
	}
	if u.Role == "" {
		u.Role = model.RoleViewer
	}
	if u.Status == "" {
		u.Status = model.UserActive
	}
	u.LockedUntil = cloneTime(u.LockedUntil)
	u.LastLoginAt = cloneTime(u.LastLoginAt)
	u.CreatedAt, u.UpdatedAt = ts, ts
	return nil
}

func prepareSession(s *model.Session, ts time.Time) error {
	if s.Token == "" || s.UserID == "" {
		return invalid("session", "user id and token are required")
	}
	if s.ID == "" {
		s.ID = newID()
	}
	s.CreatedAt = ts
	s.ExpiresAt = s.ExpiresAt.UTC().Truncate(time.Microsecond)
	return nil
}

func prepareAuditLog(l *model.AuditLog, ts time.Time) error {
	if l.TenantID == "" {
		return invalid("audit log", "tenant id is required")
	}
	if l.ID == "" {
		l.ID = newID()
	}
	if l.Timestamp.IsZero() {
		l.Timestamp = ts
	}
	l.Timestamp = l.Timestamp.UTC().Truncate(time.Microsecond)
	l.Details = cloneJSON(l.Details)
	return nil
}

func prepareDevice(d *model.Device, ts time.Time) error {
	if d.TenantID == "" {
		return invalid("device", "tenant id is required")
	}
	if d.ID == "" {
		d.ID = newID()
	}
	if d.Status == "" {
		d.Status = model.DeviceOffline
	}
	d.LastSeen = cloneTime(d.LastSeen)
	d.Metadata = cloneJSON(d.Metadata)
	d.CreatedAt, d.UpdatedAt = ts, ts
	return nil
}

func prepareMediaItem(m *model.MediaItem, ts time.Time) error {
	if m.TenantID == "" {
		return invalid("media item", "tenant id is required")
	}
	if m.ID == "" {
		m.ID = newID()
	}
	m.Metadata = cloneJSON(m.Metadata)
	m.CreatedAt, m.UpdatedAt = ts, ts
	return nil
}

func prepareLayout(l *model.Layout, ts time.Time) error {
	if l.TenantID == "" {
		return invalid("layout", "tenant id is required")
	}
	if l.ID == "" {
		l.ID = newID()
	}
	l.Zones = prepareZones(l.ID, l.Zones, ts)
	l.CreatedAt, l.UpdatedAt = ts, ts
	return nil
}

// prepareZones returns a copy of zones bound to layoutID, ordered by slice
// position.
func prepareZones(layoutID string, zones []model.Zone, ts time.Time) []model.Zone {
	out := make([]model.Zone, len(zones))
	for i, z := range zones {
		if z.ID == "" {
			z.ID = newID()
		}
		z.LayoutID = layoutID
		z.Position = i
		z.Settings = cloneJSON(z.Settings)
		z.CreatedAt, z.UpdatedAt = ts, ts
		out[i] = z
	}
	return out
}

func preparePlaylist(p *model.Playlist, ts time.Time) error {
	if p.TenantID == "" {
		return invalid("playlist", "tenant id is required")
	}
	if p.ID == "" {
		p.ID = newID()
	}
	p.Items = prepareItems(p.ID, p.Items, ts)
	p.Duration = totalDuration(p.Items)
	p.CreatedAt, p.UpdatedAt = ts, ts
	return nil
}

// prepareItems assigns OrderIndex from slice order, which keeps it unique
// within the playlist.
func prepareItems(playlistID string, items []model.PlaylistItem, ts time.Time) []model.PlaylistItem {
	out := make([]model.PlaylistItem, len(items))
	for i, it := range items {
		if it.ID == "" {
			it.ID = newID()
		}
		it.PlaylistID = playlistID
		it.OrderIndex = i
		it.CreatedAt = ts
		out[i] = it
	}
	return out
}

func prepareSchedule(s *model.Schedule, ts time.Time) error {
	if s.TenantID == "" {
		return invalid("schedule", "tenant id is required")
	}
	if s.ID == "" {
		s.ID = newID()
	}
	s.DeviceIDs = uniqueIDs(s.DeviceIDs)
	s.DaysOfWeek = cloneSlice(s.DaysOfWeek)
	s.CreatedAt, s.UpdatedAt = ts, ts
	return nil
}

func prepareWidgetTemplate(t *model.WidgetTemplate, ts time.Time) error {
	if t.ID == "" {
		t.ID = newID()
	}
	t.ConfigSchema = cloneJSON(t.ConfigSchema)
	t.DefaultConfig = cloneJSON(t.DefaultConfig)
	t.CreatedAt, t.UpdatedAt = ts, ts
	return nil
}

func prepareWidgetInstance(w *model.WidgetInstance, ts time.Time) error {
	if w.TenantID == "" {
		return invalid("widget instance", "tenant id is required")
	}
	if w.ID == "" {
		w.ID = newID()
	}
	w.Config = cloneJSON(w.Config)
	w.CreatedAt, w.UpdatedAt = ts, ts
	return nil
}

// @ MERGE
// Every apply* merges the supplied fields over the current record and stamps
// UpdatedAt. Absent (nil) fields keep their current value; a supplied JSON
// object replaces the stored one, and an empty one clears it.

func applyTenantPatch(t *model.Tenant, p model.TenantPatch, ts time.Time) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Domain != nil {
		t.Domain = normalizeHost(*p.Domain)
	}
	if p.Subdomain != nil {
		t.Subdomain = normalizeHost(*p.Subdomain)
	}
	if p.Plan != nil {
		t.Plan = *p.Plan
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Branding != nil {
		t.Branding = *p.Branding
	}
	if p.Settings != nil {
		t.Settings = cloneJSON(p.Settings)
	}
	t.UpdatedAt = ts
}

func applyUserPatch(u *model.User, p model.UserPatch, ts time.Time) {
	if p.Email != nil {
		u.Email = normalizeEmail(*p.Email)
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
	if p.LoginAttempts != nil {
		u.LoginAttempts = *p.LoginAttempts
	}
	if p.ClearLock {
		u.LockedUntil = nil
	} else if p.LockedUntil != nil {
		until := p.LockedUntil.UTC().Truncate(time.Microsecond)
		u.LockedUntil = &until
	}
	if p.LastLoginAt != nil {
		at := p.LastLoginAt.UTC().Truncate(time.Microsecond)
		u.LastLoginAt = &at
	}
	u.UpdatedAt = ts
}

func applyDevicePatch(d *model.Device, p model.DevicePatch, ts time.Time) {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.LastSeen != nil {
		seen := p.LastSeen.UTC().Truncate(time.Microsecond)
		d.LastSeen = &seen
	}
	if p.CurrentPlaylistID != nil {
		d.CurrentPlaylistID = *p.CurrentPlaylistID
	}
	if p.GroupName != nil {
		d.GroupName = *p.GroupName
	}
	if p.Location != nil {
		d.Location = *p.Location
	}
	if p.Orientation != nil {
		d.Orientation = *p.Orientation
	}
	if p.Resolution != nil {
		d.Resolution = *p.Resolution
	}
	if p.Metadata != nil {
		d.Metadata = cloneJSON(p.Metadata)
	}
	d.UpdatedAt = ts
}

func applyMediaItemPatch(m *model.MediaItem, p model.MediaItemPatch, ts time.Time) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Type != nil {
		m.Type = *p.Type
	}
	if p.URL != nil {
		m.URL = *p.URL
	}
	if p.ThumbnailURL != nil {
		m.ThumbnailURL = *p.ThumbnailURL
	}
	if p.Size != nil {
		m.Size = *p.Size
	}
	if p.Duration != nil {
		m.Duration = *p.Duration
	}
	if p.MimeType != nil {
		m.MimeType = *p.MimeType
	}
	if p.Metadata != nil {
		m.Metadata = cloneJSON(p.Metadata)
	}
	m.UpdatedAt = ts
}

func applyLayoutPatch(l *model.Layout, p model.LayoutPatch, ts time.Time) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.Width != nil {
		l.Width = *p.Width
	}
	if p.Height != nil {
		l.Height = *p.Height
	}
	if p.BackgroundColor != nil {
		l.BackgroundColor = *p.BackgroundColor
	}
	if p.Zones != nil {
		l.Zones = prepareZones(l.ID, *p.Zones, ts)
	}
	l.UpdatedAt = ts
}

func applyPlaylistPatch(pl *model.Playlist, p model.PlaylistPatch, ts time.Time) {
	if p.Name != nil {
		pl.Name = *p.Name
	}
	if p.Description != nil {
		pl.Description = *p.Description
	}
	if p.Loop != nil {
		pl.Loop = *p.Loop
	}
	if p.Shuffle != nil {
		pl.Shuffle = *p.Shuffle
	}
	if p.Priority != nil {
		pl.Priority = *p.Priority
	}
	if p.Items != nil {
		pl.Items = prepareItems(pl.ID, *p.Items, ts)
	}
	pl.Duration = totalDuration(pl.Items)
	pl.UpdatedAt = ts
}

func applySchedulePatch(s *model.Schedule, p model.SchedulePatch, ts time.Time) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.PlaylistID != nil {
		s.PlaylistID = *p.PlaylistID
	}
	if p.StartDate != nil {
		s.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		s.EndDate = *p.EndDate
	}
	if p.StartTime != nil {
		s.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		s.EndTime = *p.EndTime
	}
	if p.DaysOfWeek != nil {
		s.DaysOfWeek = append([]int(nil), (*p.DaysOfWeek)...)
	}
	if p.Priority != nil {
		s.Priority = *p.Priority
	}
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}
	if p.DeviceIDs != nil {
		s.DeviceIDs = uniqueIDs(*p.DeviceIDs)
	}
	s.UpdatedAt = ts
}

func applyWidgetInstancePatch(w *model.WidgetInstance, p model.WidgetInstancePatch, ts time.Time) {
	if p.TemplateID != nil {
		w.TemplateID = *p.TemplateID
	}
	if p.Name != nil {
		w.Name = *p.Name
	}
	if p.Config != nil {
		w.Config = cloneJSON(p.Config)
	}
	w.UpdatedAt = ts
}
