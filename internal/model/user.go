package model

import "time"

type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserDisabled UserStatus = "disabled"
)

type User struct {
	ID            string     `json:"id"`
	TenantID      string     `json:"tenantId"`
	Email         string     `json:"email"`
	Name          string     `json:"name,omitempty"`
	PasswordHash  string     `json:"passwordHash"`
	Role          Role       `json:"role"`
	Status        UserStatus `json:"status"`
	LoginAttempts int        `json:"loginAttempts"`
	LockedUntil   *time.Time `json:"lockedUntil,omitempty"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// UserPatch carries a partial user update. ClearLock resets LockedUntil to nil,
// which a nil pointer cannot express.
type UserPatch struct {
	Email         *string     `json:"email,omitempty"`
	Name          *string     `json:"name,omitempty"`
	PasswordHash  *string     `json:"passwordHash,omitempty"`
	Role          *Role       `json:"role,omitempty"`
	Status        *UserStatus `json:"status,omitempty"`
	LoginAttempts *int        `json:"loginAttempts,omitempty"`
	LockedUntil   *time.Time  `json:"lockedUntil,omitempty"`
	ClearLock     bool        `json:"clearLock,omitempty"`
	LastLoginAt   *time.Time  `json:"lastLoginAt,omitempty"`
}

type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	TenantID  string    `json:"tenantId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserAgent string    `json:"userAgent,omitempty"`
	IPAddress string    `json:"ipAddress,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuditLog rows are append-only.
type AuditLog struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenantId"`
	UserID     string    `json:"userId,omitempty"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resourceId,omitempty"`
	Details    JSON      `json:"details,omitempty"`
	IPAddress  string    `json:"ipAddress,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
