package model

import "time"

// WidgetTemplate is global; it carries no tenant.
type WidgetTemplate struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category"`
	ConfigSchema  JSON      `json:"configSchema,omitempty"`
	DefaultConfig JSON      `json:"defaultConfig,omitempty"`
	HTMLURL       string    `json:"htmlUrl"`
	ThumbnailURL  string    `json:"thumbnailUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type WidgetInstance struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenantId"`
	TemplateID string    `json:"templateId"`
	Name       string    `json:"name"`
	Config     JSON      `json:"config,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type WidgetInstancePatch struct {
	TemplateID *string `json:"templateId,omitempty"`
	Name       *string `json:"name,omitempty"`
	Config     JSON    `json:"config,omitempty"`
}
