package model

import "time"

type Schedule struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenantId"`
	Name       string    `json:"name"`
	PlaylistID string    `json:"playlistId"`
	StartDate  string    `json:"startDate,omitempty"` // YYYY-MM-DD
	EndDate    string    `json:"endDate,omitempty"`
	StartTime  string    `json:"startTime,omitempty"` // HH:MM
	EndTime    string    `json:"endTime,omitempty"`
	DaysOfWeek []int     `json:"daysOfWeek,omitempty"` // 0 = Sunday
	Priority   int       `json:"priority"`
	IsActive   bool      `json:"isActive"`
	DeviceIDs  []string  `json:"deviceIds,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ScheduleDeviceLink is a join row between a schedule and a device.
type ScheduleDeviceLink struct {
	ScheduleID string    `json:"scheduleId"`
	DeviceID   string    `json:"deviceId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SchedulePatch replaces the device associations when DeviceIDs is non-nil.
type SchedulePatch struct {
	Name       *string   `json:"name,omitempty"`
	PlaylistID *string   `json:"playlistId,omitempty"`
	StartDate  *string   `json:"startDate,omitempty"`
	EndDate    *string   `json:"endDate,omitempty"`
	StartTime  *string   `json:"startTime,omitempty"`
	EndTime    *string   `json:"endTime,omitempty"`
	DaysOfWeek *[]int    `json:"daysOfWeek,omitempty"`
	Priority   *int      `json:"priority,omitempty"`
	IsActive   *bool     `json:"isActive,omitempty"`
	DeviceIDs  *[]string `json:"deviceIds,omitempty"`
}
