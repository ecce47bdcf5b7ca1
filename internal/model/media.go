package model

import "time"

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
	MediaAudio MediaType = "audio"
	MediaHTML  MediaType = "html"
	MediaWeb   MediaType = "web"
	MediaPDF   MediaType = "pdf"
	MediaRSS   MediaType = "rss"
)

type MediaItem struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenantId"`
	Name         string    `json:"name"`
	Type         MediaType `json:"type"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	Size         int64     `json:"size"`
	Duration     int       `json:"duration"` // seconds
	MimeType     string    `json:"mimeType,omitempty"`
	Metadata     JSON      `json:"metadata,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type MediaItemPatch struct {
	Name         *string    `json:"name,omitempty"`
	Type         *MediaType `json:"type,omitempty"`
	URL          *string    `json:"url,omitempty"`
	ThumbnailURL *string    `json:"thumbnailUrl,omitempty"`
	Size         *int64     `json:"size,omitempty"`
	Duration     *int       `json:"duration,omitempty"`
	MimeType     *string    `json:"mimeType,omitempty"`
	Metadata     JSON       `json:"metadata,omitempty"`
}
