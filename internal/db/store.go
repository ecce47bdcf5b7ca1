// exposes a Store interface that is passed to API calls w/ param requirements
package db

import (
	"context"
	"time"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// Tenant-owned operations take a trailing tenantID. An empty tenantID means the
// call is unscoped; any other value makes a record owned by a different tenant
// behave exactly as if it did not exist.

type TenantStore interface {
	FindTenantByID(ctx context.Context, id string) (*model.Tenant, error)
	FindTenantByDomain(ctx context.Context, domain string) (*model.Tenant, error)
	FindTenantBySubdomain(ctx context.Context, subdomain string) (*model.Tenant, error)
	GetTenants(ctx context.Context) ([]model.Tenant, error)
	CreateTenant(ctx context.Context, t model.Tenant) (*model.Tenant, error)
	UpdateTenant(ctx context.Context, id string, patch model.TenantPatch) (*model.Tenant, error)
	DeleteTenant(ctx context.Context, id string) error
}

type UserStore interface {
	FindUserByID(ctx context.Context, id, tenantID string) (*model.User, error)
	// FindUserByEmail matches case-insensitively.
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUsersByTenant(ctx context.Context, tenantID string) ([]model.User, error)
	CreateUser(ctx context.Context, u model.User) (*model.User, error)
	UpdateUser(ctx context.Context, id string, patch model.UserPatch, tenantID string) (*model.User, error)
	// DeleteUser also removes the user's sessions.
	DeleteUser(ctx context.Context, id, tenantID string) error
}

type SessionStore interface {
	CreateSession(ctx context.Context, s model.Session) (*model.Session, error)
	// FindSessionByToken treats an expired session as not found.
	FindSessionByToken(ctx context.Context, token string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteUserSessions(ctx context.Context, userID string) (int, error)
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)
}

type AuditStore interface {
	CreateAuditLog(ctx context.Context, l model.AuditLog) (*model.AuditLog, error)
	// GetAuditLogsByTenant returns newest first; limit <= 0 means no limit.
	GetAuditLogsByTenant(ctx context.Context, tenantID string, limit int) ([]model.AuditLog, error)
}

type DeviceStore interface {
	FindDeviceByID(ctx context.Context, id, tenantID string) (*model.Device, error)
	GetDevicesByTenant(ctx context.Context, tenantID string) ([]model.Device, error)
	CreateDevice(ctx context.Context, d model.Device) (*model.Device, error)
	UpdateDevice(ctx context.Context, id string, patch model.DevicePatch, tenantID string) (*model.Device, error)
	// DeleteDevice also removes the device's schedule links.
	DeleteDevice(ctx context.Context, id, tenantID string) error
}

type MediaStore interface {
	FindMediaItemByID(ctx context.Context, id, tenantID string) (*model.MediaItem, error)
	GetMediaItemsByTenant(ctx context.Context, tenantID string) ([]model.MediaItem, error)
	CreateMediaItem(ctx context.Context, m model.MediaItem) (*model.MediaItem, error)
	UpdateMediaItem(ctx context.Context, id string, patch model.MediaItemPatch, tenantID string) (*model.MediaItem, error)
	DeleteMediaItem(ctx context.Context, id, tenantID string) error
}

type LayoutStore interface {
	FindLayoutByID(ctx context.Context, id, tenantID string) (*model.Layout, error)
	GetLayoutsByTenant(ctx context.Context, tenantID string) ([]model.Layout, error)
	GetZonesByLayoutID(ctx context.Context, layoutID string) ([]model.Zone, error)
	CreateLayout(ctx context.Context, l model.Layout) (*model.Layout, error)
	UpdateLayout(ctx context.Context, id string, patch model.LayoutPatch, tenantID string) (*model.Layout, error)
	DeleteLayout(ctx context.Context, id, tenantID string) error
}

type PlaylistStore interface {
	FindPlaylistByID(ctx context.Context, id, tenantID string) (*model.Playlist, error)
	GetPlaylistsByTenant(ctx context.Context, tenantID string) ([]model.Playlist, error)
	GetPlaylistItems(ctx context.Context, playlistID string) ([]model.PlaylistItem, error)
	CreatePlaylist(ctx context.Context, p model.Playlist) (*model.Playlist, error)
	UpdatePlaylist(ctx context.Context, id string, patch model.PlaylistPatch, tenantID string) (*model.Playlist, error)
	DeletePlaylist(ctx context.Context, id, tenantID string) error
}

type ScheduleStore interface {
	FindScheduleByID(ctx context.Context, id, tenantID string) (*model.Schedule, error)
	GetSchedulesByTenant(ctx context.Context, tenantID string) ([]model.Schedule, error)
	GetSchedulesByDevice(ctx context.Context, deviceID, tenantID string) ([]model.Schedule, error)
	CreateSchedule(ctx context.Context, s model.Schedule) (*model.Schedule, error)
	UpdateSchedule(ctx context.Context, id string, patch model.SchedulePatch, tenantID string) (*model.Schedule, error)
	DeleteSchedule(ctx context.Context, id, tenantID string) error
}

type WidgetStore interface {
	FindWidgetTemplateByID(ctx context.Context, id string) (*model.WidgetTemplate, error)
	GetWidgetTemplates(ctx context.Context) ([]model.WidgetTemplate, error)
	CreateWidgetTemplate(ctx context.Context, t model.WidgetTemplate) (*model.WidgetTemplate, error)

	FindWidgetInstanceByID(ctx context.Context, id, tenantID string) (*model.WidgetInstance, error)
	GetWidgetInstancesByTenant(ctx context.Context, tenantID string) ([]model.WidgetInstance, error)
	CreateWidgetInstance(ctx context.Context, w model.WidgetInstance) (*model.WidgetInstance, error)
	UpdateWidgetInstance(ctx context.Context, id string, patch model.WidgetInstancePatch, tenantID string) (*model.WidgetInstance, error)
	DeleteWidgetInstance(ctx context.Context, id, tenantID string) error
}

// Store is the data-access contract shared by every backend.
type Store interface {
	TenantStore
	UserStore
	SessionStore
	AuditStore
	DeviceStore
	MediaStore
	LayoutStore
	PlaylistStore
	ScheduleStore
	WidgetStore

	// Backend names the storage medium ("postgres" or "document").
	Backend() string
	Close() error
}

// compile-time checks that both backends implement Store
var (
	_ Store = (*pgStore)(nil)
	_ Store = (*docStore)(nil)
)
