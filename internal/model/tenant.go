package model

import "time"

type TenantStatus string

const (
	TenantActive    TenantStatus = "active"
	TenantSuspended TenantStatus = "suspended"
)

// Branding is stored as a single nested object, not as columns.
type Branding struct {
	LogoURL        string `json:"logoUrl,omitempty"`
	PrimaryColor   string `json:"primaryColor,omitempty"`
	SecondaryColor string `json:"secondaryColor,omitempty"`
	FontFamily     string `json:"fontFamily,omitempty"`
}

type Tenant struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Domain    string       `json:"domain,omitempty"`
	Subdomain string       `json:"subdomain,omitempty"`
	Plan      string       `json:"plan"`
	Status    TenantStatus `json:"status"`
	Branding  Branding     `json:"branding"`
	Settings  JSON         `json:"settings,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

type TenantPatch struct {
	Name      *string       `json:"name,omitempty"`
	Domain    *string       `json:"domain,omitempty"`
	Subdomain *string       `json:"subdomain,omitempty"`
	Plan      *string       `json:"plan,omitempty"`
	Status    *TenantStatus `json:"status,omitempty"`
	Branding  *Branding     `json:"branding,omitempty"`
	Settings  JSON          `json:"settings,omitempty"`
}
