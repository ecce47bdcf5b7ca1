package packets

import (
	"time"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

type ProfileResponse struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenantId"`
	Email       string     `json:"email"`
	Name        string     `json:"name,omitempty"`
	Role        model.Role `json:"role"`
	LastLoginAt string     `json:"lastLoginAt,omitempty"`
	CreatedAt   string     `json:"createdAt"`
	UpdatedAt   string     `json:"updatedAt"`
}

// NewProfileResponse never carries the password hash or lockout state.
func NewProfileResponse(u *model.User) ProfileResponse {
	resp := ProfileResponse{
		ID:        u.ID,
		TenantID:  u.TenantID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
	if u.LastLoginAt != nil {
		resp.LastLoginAt = u.LastLoginAt.Format(time.RFC3339)
	}
	return resp
}

type TokenResponse struct {
	Token     string          `json:"token"`
	ExpiresAt string          `json:"expiresAt"`
	User      ProfileResponse `json:"user"`
}

type MeResponse struct {
	User   ProfileResponse `json:"user"`
	Tenant *model.Tenant   `json:"tenant"`
}
