package db

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

/*
Column mapping for the relational backend.

Each entity has a row struct whose db tags are the store's column names, one
table declaration listing the same columns, and a pair of converters between the
row and the model record. The mapping is spelled out per entity on purpose:
irregular fields are handled here deliberately rather than by a generic
camelCase -> snake_case transform:

  - Tenant.Branding, *.Metadata, *.Settings, *.Config, *Schema live in JSONB
    columns as nested objects, not flattened columns
  - an empty JSON object is written as {} and read back as nil, the same
    rule the document backend applies on the way in
  - AuditLog.Timestamp is stored in created_at
  - Schedule.DaysOfWeek is an INTEGER[] column
  - optional references (current_playlist_id, media_id, ...) are NULL, not ''
  - Tenant.Domain/Subdomain are NULL when empty so the UNIQUE index ignores them
  - Layout.Zones, Playlist.Items and Schedule.DeviceIDs have no column at all;
    they are child tables
*/

type table struct {
	name    string
	columns []string
}

// immutable columns are never rewritten by an update.
var immutable = map[string]bool{"id": true, "tenant_id": true, "created_at": true}

func (t table) selectFrom() string {
	return "SELECT " + strings.Join(t.columns, ", ") + " FROM " + t.name
}

func (t table) insert() string {
	return "INSERT INTO " + t.name + " (" + strings.Join(t.columns, ", ") +
		") VALUES (:" + strings.Join(t.columns, ", :") + ")"
}

func (t table) update() string {
	sets := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		if immutable[c] {
			continue
		}
		sets = append(sets, c+" = :"+c)
	}
	return "UPDATE " + t.name + " SET " + strings.Join(sets, ", ") + " WHERE id = :id"
}

var (
	tenantsTable = table{"tenants", []string{
		"id", "name", "domain", "subdomain", "plan", "status", "branding", "settings", "created_at", "updated_at",
	}}
	usersTable = table{"users", []string{
		"id", "tenant_id", "email", "name", "password_hash", "role", "status",
		"login_attempts", "locked_until", "last_login_at", "created_at", "updated_at",
	}}
	sessionsTable = table{"user_sessions", []string{
		"id", "user_id", "tenant_id", "token", "expires_at", "user_agent", "ip_address", "created_at",
	}}
	auditLogsTable = table{"audit_logs", []string{
		"id", "tenant_id", "user_id", "action", "resource", "resource_id", "details", "ip_address", "created_at",
	}}
	devicesTable = table{"devices", []string{
		"id", "tenant_id", "name", "status", "last_seen", "current_playlist_id", "group_name",
		"location", "orientation", "resolution", "metadata", "created_at", "updated_at",
	}}
	mediaItemsTable = table{"media_items", []string{
		"id", "tenant_id", "name", "type", "url", "thumbnail_url", "size", "duration",
		"mime_type", "metadata", "created_at", "updated_at",
	}}
	layoutsTable = table{"layouts", []string{
		"id", "tenant_id", "name", "description", "width", "height", "background_color", "created_at", "updated_at",
	}}
	zonesTable = table{"zones", []string{
		"id", "layout_id", "name", "x", "y", "width", "height", "z_index", "position", "type",
		"media_id", "playlist_id", "widget_instance_id", "background_color", "border_radius",
		"settings", "created_at", "updated_at",
	}}
	playlistsTable = table{"playlists", []string{
		"id", "tenant_id", "name", "description", "loop", "shuffle", "priority", "duration", "created_at", "updated_at",
	}}
	playlistItemsTable = table{"playlist_items", []string{
		"id", "playlist_id", "media_id", "duration", "order_index", "transition", "transition_duration", "created_at",
	}}
	schedulesTable = table{"schedules", []string{
		"id", "tenant_id", "name", "playlist_id", "start_date", "end_date", "start_time", "end_time",
		"days_of_week", "priority", "is_active", "created_at", "updated_at",
	}}
	scheduleDevicesTable = table{"schedule_devices", []string{
		"schedule_id", "device_id", "position", "created_at",
	}}
	widgetTemplatesTable = table{"widget_templates", []string{
		"id", "name", "description", "category", "config_schema", "default_config",
		"html_url", "thumbnail_url", "created_at", "updated_at",
	}}
	widgetInstancesTable = table{"widget_instances", []string{
		"id", "tenant_id", "template_id", "name", "config", "created_at", "updated_at",
	}}
)

// ----- value helpers -----

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	u := t.Time.UTC()
	return &u
}

func encodeJSON(v any) (types.JSONText, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return types.JSONText("{}"), nil
	}
	return types.JSONText(b), nil
}

func decodeJSON(raw types.JSONText) (model.JSON, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var m model.JSON
	if err := raw.Unmarshal(&m); err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, nil
	}
	return m, nil
}

// ----- tenants -----

type tenantRow struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	Domain    sql.NullString `db:"domain"`
	Subdomain sql.NullString `db:"subdomain"`
	Plan      string         `db:"plan"`
	Status    string         `db:"status"`
	Branding  types.JSONText `db:"branding"`
	Settings  types.JSONText `db:"settings"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func tenantToRow(t model.Tenant) (tenantRow, error) {
	branding, err := encodeJSON(t.Branding)
	if err != nil {
		return tenantRow{}, err
	}
	settings, err := encodeJSON(t.Settings)
	if err != nil {
		return tenantRow{}, err
	}
	return tenantRow{
		ID:        t.ID,
		Name:      t.Name,
		Domain:    nullString(t.Domain),
		Subdomain: nullString(t.Subdomain),
		Plan:      t.Plan,
		Status:    string(t.Status),
		Branding:  branding,
		Settings:  settings,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}, nil
}

func tenantFromRow(r tenantRow) (model.Tenant, error) {
	t := model.Tenant{
		ID:        r.ID,
		Name:      r.Name,
		Domain:    r.Domain.String,
		Subdomain: r.Subdomain.String,
		Plan:      r.Plan,
		Status:    model.TenantStatus(r.Status),
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
	if len(r.Branding) > 0 {
		if err := r.Branding.Unmarshal(&t.Branding); err != nil {
			return model.Tenant{}, err
		}
	}
	settings, err := decodeJSON(r.Settings)
	if err != nil {
		return model.Tenant{}, err
	}
	t.Settings = settings
	return t, nil
}

// ----- users, sessions, audit logs -----

type userRow struct {
	ID            string       `db:"id"`
	TenantID      string       `db:"tenant_id"`
	Email         string       `db:"email"`
	Name          string       `db:"name"`
	PasswordHash  string       `db:"password_hash"`
	Role          string       `db:"role"`
	Status        string       `db:"status"`
	LoginAttempts int          `db:"login_attempts"`
	LockedUntil   sql.NullTime `db:"locked_until"`
	LastLoginAt   sql.NullTime `db:"last_login_at"`
	CreatedAt     time.Time    `db:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at"`
}

func userToRow(u model.User) userRow {
	return userRow{
		ID:            u.ID,
		TenantID:      u.TenantID,
		Email:         u.Email,
		Name:          u.Name,
		PasswordHash:  u.PasswordHash,
		Role:          string(u.Role),
		Status:        string(u.Status),
		LoginAttempts: u.LoginAttempts,
		LockedUntil:   nullTime(u.LockedUntil),
		LastLoginAt:   nullTime(u.LastLoginAt),
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func userFromRow(r userRow) model.User {
	return model.User{
		ID:            r.ID,
		TenantID:      r.TenantID,
		Email:         r.Email,
		Name:          r.Name,
		PasswordHash:  r.PasswordHash,
		Role:          model.Role(r.Role),
		Status:        model.UserStatus(r.Status),
		LoginAttempts: r.LoginAttempts,
		LockedUntil:   timePtr(r.LockedUntil),
		LastLoginAt:   timePtr(r.LastLoginAt),
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
	}
}

type sessionRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	TenantID  string    `db:"tenant_id"`
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
	UserAgent string    `db:"user_agent"`
	IPAddress string    `db:"ip_address"`
	CreatedAt time.Time `db:"created_at"`
}

func sessionToRow(s model.Session) sessionRow {
	return sessionRow{
		ID:        s.ID,
		UserID:    s.UserID,
		TenantID:  s.TenantID,
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		UserAgent: s.UserAgent,
		IPAddress: s.IPAddress,
		CreatedAt: s.CreatedAt,
	}
}

func sessionFromRow(r sessionRow) model.Session {
	return model.Session{
		ID:        r.ID,
		UserID:    r.UserID,
		TenantID:  r.TenantID,
		Token:     r.Token,
		ExpiresAt: r.ExpiresAt.UTC(),
		UserAgent: r.UserAgent,
		IPAddress: r.IPAddress,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

type auditLogRow struct {
	ID         string         `db:"id"`
	TenantID   string         `db:"tenant_id"`
	UserID     sql.NullString `db:"user_id"`
	Action     string         `db:"action"`
	Resource   string         `db:"resource"`
	ResourceID string         `db:"resource_id"`
	Details    types.JSONText `db:"details"`
	IPAddress  string         `db:"ip_address"`
	CreatedAt  time.Time      `db:"created_at"`
}

func auditLogToRow(l model.AuditLog) (auditLogRow, error) {
	details, err := encodeJSON(l.Details)
	if err != nil {
		return auditLogRow{}, err
	}
	return auditLogRow{
		ID:         l.ID,
		TenantID:   l.TenantID,
		UserID:     nullString(l.UserID),
		Action:     l.Action,
		Resource:   l.Resource,
		ResourceID: l.ResourceID,
		Details:    details,
		IPAddress:  l.IPAddress,
		CreatedAt:  l.Timestamp,
	}, nil
}

func auditLogFromRow(r auditLogRow) (model.AuditLog, error) {
	details, err := decodeJSON(r.Details)
	if err != nil {
		return model.AuditLog{}, err
	}
	return model.AuditLog{
		ID:         r.ID,
		TenantID:   r.TenantID,
		UserID:     r.UserID.String,
		Action:     r.Action,
		Resource:   r.Resource,
		ResourceID: r.ResourceID,
		Details:    details,
		IPAddress:  r.IPAddress,
		Timestamp:  r.CreatedAt.UTC(),
	}, nil
}

// ----- devices, media -----

type deviceRow struct {
	ID                string         `db:"id"`
	TenantID          string         `db:"tenant_id"`
	Name              string         `db:"name"`
	Status            string         `db:"status"`
	LastSeen          sql.NullTime   `db:"last_seen"`
	CurrentPlaylistID sql.NullString `db:"current_playlist_id"`
	GroupName         string         `db:"group_name"`
	Location          string         `db:"location"`
	Orientation       string         `db:"orientation"`
	Resolution        string         `db:"resolution"`
	Metadata          types.JSONText `db:"metadata"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

func deviceToRow(d model.Device) (deviceRow, error) {
	meta, err := encodeJSON(d.Metadata)
	if err != nil {
		return deviceRow{}, err
	}
	return deviceRow{
		ID:                d.ID,
		TenantID:          d.TenantID,
		Name:              d.Name,
		Status:            string(d.Status),
		LastSeen:          nullTime(d.LastSeen),
		CurrentPlaylistID: nullString(d.CurrentPlaylistID),
		GroupName:         d.GroupName,
		Location:          d.Location,
		Orientation:       d.Orientation,
		Resolution:        d.Resolution,
		Metadata:          meta,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}, nil
}

func deviceFromRow(r deviceRow) (model.Device, error) {
	meta, err := decodeJSON(r.Metadata)
	if err != nil {
		return model.Device{}, err
	}
	return model.Device{
		ID:                r.ID,
		TenantID:          r.TenantID,
		Name:              r.Name,
		Status:            model.DeviceStatus(r.Status),
		LastSeen:          timePtr(r.LastSeen),
		CurrentPlaylistID: r.CurrentPlaylistID.String,
		GroupName:         r.GroupName,
		Location:          r.Location,
		Orientation:       r.Orientation,
		Resolution:        r.Resolution,
		Metadata:          meta,
		CreatedAt:         r.CreatedAt.UTC(),
		UpdatedAt:         r.UpdatedAt.UTC(),
	}, nil
}

type mediaItemRow struct {
	ID           string         `db:"id"`
	TenantID     string         `db:"tenant_id"`
	Name         string         `db:"name"`
	Type         string         `db:"type"`
	URL          string         `db:"url"`
	ThumbnailURL string         `db:"thumbnail_url"`
	Size         int64          `db:"size"`
	Duration     int            `db:"duration"`
	MimeType     string         `db:"mime_type"`
	Metadata     types.JSONText `db:"metadata"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func mediaItemToRow(m model.MediaItem) (mediaItemRow, error) {
	meta, err := encodeJSON(m.Metadata)
	if err != nil {
		return mediaItemRow{}, err
	}
	return mediaItemRow{
		ID:           m.ID,
		TenantID:     m.TenantID,
		Name:         m.Name,
		Type:         string(m.Type),
		URL:          m.URL,
		ThumbnailURL: m.ThumbnailURL,
		Size:         m.Size,
		Duration:     m.Duration,
		MimeType:     m.MimeType,
		Metadata:     meta,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

func mediaItemFromRow(r mediaItemRow) (model.MediaItem, error) {
	meta, err := decodeJSON(r.Metadata)
	if err != nil {
		return model.MediaItem{}, err
	}
	return model.MediaItem{
		ID:           r.ID,
		TenantID:     r.TenantID,
		Name:         r.Name,
		Type:         model.MediaType(r.Type),
		URL:          r.URL,
		ThumbnailURL: r.ThumbnailURL,
		Size:         r.Size,
		Duration:     r.Duration,
		MimeType:     r.MimeType,
		Metadata:     meta,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}, nil
}

// ----- layouts, zones -----

type layoutRow struct {
	ID              string    `db:"id"`
	TenantID        string    `db:"tenant_id"`
	Name            string    `db:"name"`
	Description     string    `db:"description"`
	Width           int       `db:"width"`
	Height          int       `db:"height"`
	BackgroundColor string    `db:"background_color"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func layoutToRow(l model.Layout) layoutRow {
	return layoutRow{
		ID:              l.ID,
		TenantID:        l.TenantID,
		Name:            l.Name,
		Description:     l.Description,
		Width:           l.Width,
		Height:          l.Height,
		BackgroundColor: l.BackgroundColor,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

func layoutFromRow(r layoutRow) model.Layout {
	return model.Layout{
		ID:              r.ID,
		TenantID:        r.TenantID,
		Name:            r.Name,
		Description:     r.Description,
		Width:           r.Width,
		Height:          r.Height,
		BackgroundColor: r.BackgroundColor,
		CreatedAt:       r.CreatedAt.UTC(),
		UpdatedAt:       r.UpdatedAt.UTC(),
	}
}

type zoneRow struct {
	ID               string         `db:"id"`
	LayoutID         string         `db:"layout_id"`
	Name             string         `db:"name"`
	X                int            `db:"x"`
	Y                int            `db:"y"`
	Width            int            `db:"width"`
	Height           int            `db:"height"`
	ZIndex           int            `db:"z_index"`
	Position         int            `db:"position"`
	Type             string         `db:"type"`
	MediaID          sql.NullString `db:"media_id"`
	PlaylistID       sql.NullString `db:"playlist_id"`
	WidgetInstanceID sql.NullString `db:"widget_instance_id"`
	BackgroundColor  string         `db:"background_color"`
	BorderRadius     int            `db:"border_radius"`
	Settings         types.JSONText `db:"settings"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

func zoneToRow(z model.Zone) (zoneRow, error) {
	settings, err := encodeJSON(z.Settings)
	if err != nil {
		return zoneRow{}, err
	}
	return zoneRow{
		ID:               z.ID,
		LayoutID:         z.LayoutID,
		Name:             z.Name,
		X:                z.X,
		Y:                z.Y,
		Width:            z.Width,
		Height:           z.Height,
		ZIndex:           z.ZIndex,
		Position:         z.Position,
		Type:             z.Type,
		MediaID:          nullString(z.MediaID),
		PlaylistID:       nullString(z.PlaylistID),
		WidgetInstanceID: nullString(z.WidgetInstanceID),
		BackgroundColor:  z.BackgroundColor,
		BorderRadius:     z.BorderRadius,
		Settings:         settings,
		CreatedAt:        z.CreatedAt,
		UpdatedAt:        z.UpdatedAt,
	}, nil
}

func zoneFromRow(r zoneRow) (model.Zone, error) {
	settings, err := decodeJSON(r.Settings)
	if err != nil {
		return model.Zone{}, err
	}
	return model.Zone{
		ID:               r.ID,
		LayoutID:         r.LayoutID,
		Name:             r.Name,
		X:                r.X,
		Y:                r.Y,
		Width:            r.Width,
		Height:           r.Height,
		ZIndex:           r.ZIndex,
		Position:         r.Position,
		Type:             r.Type,
		MediaID:          r.MediaID.String,
		PlaylistID:       r.PlaylistID.String,
		WidgetInstanceID: r.WidgetInstanceID.String,
		BackgroundColor:  r.BackgroundColor,
		BorderRadius:     r.BorderRadius,
		Settings:         settings,
		CreatedAt:        r.CreatedAt.UTC(),
		UpdatedAt:        r.UpdatedAt.UTC(),
	}, nil
}

// ----- playlists, items -----

type playlistRow struct {
	ID          string    `db:"id"`
	TenantID    string    `db:"tenant_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Loop        bool      `db:"loop"`
	Shuffle     bool      `db:"shuffle"`
	Priority    int       `db:"priority"`
	Duration    int       `db:"duration"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func playlistToRow(p model.Playlist) playlistRow {
	return playlistRow{
		ID:          p.ID,
		TenantID:    p.TenantID,
		Name:        p.Name,
		Description: p.Description,
		Loop:        p.Loop,
		Shuffle:     p.Shuffle,
		Priority:    p.Priority,
		Duration:    p.Duration,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func playlistFromRow(r playlistRow) model.Playlist {
	return model.Playlist{
		ID:          r.ID,
		TenantID:    r.TenantID,
		Name:        r.Name,
		Description: r.Description,
		Loop:        r.Loop,
		Shuffle:     r.Shuffle,
		Priority:    r.Priority,
		Duration:    r.Duration,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

type playlistItemRow struct {
	ID                 string    `db:"id"`
	PlaylistID         string    `db:"playlist_id"`
	MediaID            string    `db:"media_id"`
	Duration           int       `db:"duration"`
	OrderIndex         int       `db:"order_index"`
	Transition         string    `db:"transition"`
	TransitionDuration int       `db:"transition_duration"`
	CreatedAt          time.Time `db:"created_at"`
}

func playlistItemToRow(it model.PlaylistItem) playlistItemRow {
	return playlistItemRow{
		ID:                 it.ID,
		PlaylistID:         it.PlaylistID,
		MediaID:            it.MediaID,
		Duration:           it.Duration,
		OrderIndex:         it.OrderIndex,
		Transition:         it.Transition,
		TransitionDuration: it.TransitionDuration,
		CreatedAt:          it.CreatedAt,
	}
}

func playlistItemFromRow(r playlistItemRow) model.PlaylistItem {
	return model.PlaylistItem{
		ID:                 r.ID,
		PlaylistID:         r.PlaylistID,
		MediaID:            r.MediaID,
		Duration:           r.Duration,
		OrderIndex:         r.OrderIndex,
		Transition:         r.Transition,
		TransitionDuration: r.TransitionDuration,
		CreatedAt:          r.CreatedAt.UTC(),
	}
}

// ----- schedules, device links -----

type scheduleRow struct {
	ID         string        `db:"id"`
	TenantID   string        `db:"tenant_id"`
	Name       string        `db:"name"`
	PlaylistID string        `db:"playlist_id"`
	StartDate  string        `db:"start_date"`
	EndDate    string        `db:"end_date"`
	StartTime  string        `db:"start_time"`
	EndTime    string        `db:"end_time"`
	DaysOfWeek pq.Int64Array `db:"days_of_week"`
	Priority   int           `db:"priority"`
	IsActive   bool          `db:"is_active"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
}

func scheduleToRow(s model.Schedule) scheduleRow {
	days := make(pq.Int64Array, len(s.DaysOfWeek))
	for i, d := range s.DaysOfWeek {
		days[i] = int64(d)
	}
	return scheduleRow{
		ID:         s.ID,
		TenantID:   s.TenantID,
		Name:       s.Name,
		PlaylistID: s.PlaylistID,
		StartDate:  s.StartDate,
		EndDate:    s.EndDate,
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		DaysOfWeek: days,
		Priority:   s.Priority,
		IsActive:   s.IsActive,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func scheduleFromRow(r scheduleRow) model.Schedule {
	var days []int
	for _, d := range r.DaysOfWeek {
		days = append(days, int(d))
	}
	return model.Schedule{
		ID:         r.ID,
		TenantID:   r.TenantID,
		Name:       r.Name,
		PlaylistID: r.PlaylistID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		DaysOfWeek: days,
		Priority:   r.Priority,
		IsActive:   r.IsActive,
		CreatedAt:  r.CreatedAt.UTC(),
		UpdatedAt:  r.UpdatedAt.UTC(),
	}
}

type scheduleDeviceRow struct {
	ScheduleID string    `db:"schedule_id"`
	DeviceID   string    `db:"device_id"`
	Position   int       `db:"position"`
	CreatedAt  time.Time `db:"created_at"`
}

func scheduleDeviceRows(scheduleID string, deviceIDs []string, ts time.Time) []scheduleDeviceRow {
	rows := make([]scheduleDeviceRow, len(deviceIDs))
	for i, id := range deviceIDs {
		rows[i] = scheduleDeviceRow{ScheduleID: scheduleID, DeviceID: id, Position: i, CreatedAt: ts}
	}
	return rows
}

// ----- widgets -----

type widgetTemplateRow struct {
	ID            string         `db:"id"`
	Name          string         `db:"name"`
	Description   string         `db:"description"`
	Category      string         `db:"category"`
	ConfigSchema  types.JSONText `db:"config_schema"`
	DefaultConfig types.JSONText `db:"default_config"`
	HTMLURL       string         `db:"html_url"`
	ThumbnailURL  string         `db:"thumbnail_url"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func widgetTemplateToRow(t model.WidgetTemplate) (widgetTemplateRow, error) {
	schema, err := encodeJSON(t.ConfigSchema)
	if err != nil {
		return widgetTemplateRow{}, err
	}
	defaults, err := encodeJSON(t.DefaultConfig)
	if err != nil {
		return widgetTemplateRow{}, err
	}
	return widgetTemplateRow{
		ID:            t.ID,
		Name:          t.Name,
		Description:   t.Description,
		Category:      t.Category,
		ConfigSchema:  schema,
		DefaultConfig: defaults,
		HTMLURL:       t.HTMLURL,
		ThumbnailURL:  t.ThumbnailURL,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}, nil
}

func widgetTemplateFromRow(r widgetTemplateRow) (model.WidgetTemplate, error) {
	schema, err := decodeJSON(r.ConfigSchema)
	if err != nil {
		return model.WidgetTemplate{}, err
	}
	defaults, err := decodeJSON(r.DefaultConfig)
	if err != nil {
		return model.WidgetTemplate{}, err
	}
	return model.WidgetTemplate{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		Category:      r.Category,
		ConfigSchema:  schema,
		DefaultConfig: defaults,
		HTMLURL:       r.HTMLURL,
		ThumbnailURL:  r.ThumbnailURL,
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
	}, nil
}

type widgetInstanceRow struct {
	ID         string         `db:"id"`
	TenantID   string         `db:"tenant_id"`
	TemplateID string         `db:"template_id"`
	Name       string         `db:"name"`
	Config     types.JSONText `db:"config"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func widgetInstanceToRow(w model.WidgetInstance) (widgetInstanceRow, error) {
	cfg, err := encodeJSON(w.Config)
	if err != nil {
		return widgetInstanceRow{}, err
	}
	return widgetInstanceRow{
		ID:         w.ID,
		TenantID:   w.TenantID,
		TemplateID: w.TemplateID,
		Name:       w.Name,
		Config:     cfg,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}, nil
}

func widgetInstanceFromRow(r widgetInstanceRow) (model.WidgetInstance, error) {
	cfg, err := decodeJSON(r.Config)
	if err != nil {
		return model.WidgetInstance{}, err
	}
	return model.WidgetInstance{
		ID:         r.ID,
		TenantID:   r.TenantID,
		TemplateID: r.TemplateID,
		Name:       r.Name,
		Config:     cfg,
		CreatedAt:  r.CreatedAt.UTC(),
		UpdatedAt:  r.UpdatedAt.UTC(),
	}, nil
}
