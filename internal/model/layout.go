package model

import "time"

type Layout struct {
	ID              string    `json:"id"`
	TenantID        string    `json:"tenantId"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Width           int       `json:"width"`
	Height          int       `json:"height"`
	BackgroundColor string    `json:"backgroundColor,omitempty"`
	Zones           []Zone    `json:"zones,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Zone is a rectangular region of a layout. At most one of MediaID,
// PlaylistID and WidgetInstanceID is normally set.
type Zone struct {
	ID               string    `json:"id"`
	LayoutID         string    `json:"layoutId"`
	Name             string    `json:"name,omitempty"`
	X                int       `json:"x"`
	Y                int       `json:"y"`
	Width            int       `json:"width"`
	Height           int       `json:"height"`
	ZIndex           int       `json:"zIndex"`
	Position         int       `json:"position"`
	Type             string    `json:"type"`
	MediaID          string    `json:"mediaId,omitempty"`
	PlaylistID       string    `json:"playlistId,omitempty"`
	WidgetInstanceID string    `json:"widgetInstanceId,omitempty"`
	BackgroundColor  string    `json:"backgroundColor,omitempty"`
	BorderRadius     int       `json:"borderRadius"`
	Settings         JSON      `json:"settings,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// LayoutPatch replaces the whole zone set when Zones is non-nil.
type LayoutPatch struct {
	Name            *string `json:"name,omitempty"`
	Description     *string `json:"description,omitempty"`
	Width           *int    `json:"width,omitempty"`
	Height          *int    `json:"height,omitempty"`
	BackgroundColor *string `json:"backgroundColor,omitempty"`
	Zones           *[]Zone `json:"zones,omitempty"`
}
