package model

import "time"

type DeviceStatus string

const (
	DeviceOnline      DeviceStatus = "online"
	DeviceOffline     DeviceStatus = "offline"
	DeviceMaintenance DeviceStatus = "maintenance"
)

// Device represents a display endpoint in a tenant's fleet.
type Device struct {
	ID                string       `json:"id"`
	TenantID          string       `json:"tenantId"`
	Name              string       `json:"name"`
	Status            DeviceStatus `json:"status"`
	LastSeen          *time.Time   `json:"lastSeen,omitempty"`
	CurrentPlaylistID string       `json:"currentPlaylistId,omitempty"`
	GroupName         string       `json:"groupName,omitempty"`
	Location          string       `json:"location,omitempty"`
	Orientation       string       `json:"orientation,omitempty"`
	Resolution        string       `json:"resolution,omitempty"`
	Metadata          JSON         `json:"metadata,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

type DevicePatch struct {
	Name              *string       `json:"name,omitempty"`
	Status            *DeviceStatus `json:"status,omitempty"`
	LastSeen          *time.Time    `json:"lastSeen,omitempty"`
	CurrentPlaylistID *string       `json:"currentPlaylistId,omitempty"`
	GroupName         *string       `json:"groupName,omitempty"`
	Location          *string       `json:"location,omitempty"`
	Orientation       *string       `json:"orientation,omitempty"`
	Resolution        *string       `json:"resolution,omitempty"`
	Metadata          JSON          `json:"metadata,omitempty"`
}
