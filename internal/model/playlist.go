package model

import "time"

// Playlist.Duration is derived: the sum of its item durations.
type Playlist struct {
	ID          string         `json:"id"`
	TenantID    string         `json:"tenantId"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Loop        bool           `json:"loop"`
	Shuffle     bool           `json:"shuffle"`
	Priority    int            `json:"priority"`
	Duration    int            `json:"duration"`
	Items       []PlaylistItem `json:"items,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type PlaylistItem struct {
	ID                 string    `json:"id"`
	PlaylistID         string    `json:"playlistId"`
	MediaID            string    `json:"mediaId"`
	Duration           int       `json:"duration"`
	OrderIndex         int       `json:"orderIndex"`
	Transition         string    `json:"transition,omitempty"`
	TransitionDuration int       `json:"transitionDuration"`
	CreatedAt          time.Time `json:"createdAt"`
}

// PlaylistPatch replaces the whole item sequence when Items is non-nil.
type PlaylistPatch struct {
	Name        *string         `json:"name,omitempty"`
	Description *string         `json:"description,omitempty"`
	Loop        *bool           `json:"loop,omitempty"`
	Shuffle     *bool           `json:"shuffle,omitempty"`
	Priority    *int            `json:"priority,omitempty"`
	Items       *[]PlaylistItem `json:"items,omitempty"`
}
