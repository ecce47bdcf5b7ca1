package packets

import (
	"time"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// ListResponse wraps every collection endpoint.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

func NewList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Count: len(items)}
}

// UserResponse mirrors model.User without credentials.
type UserResponse struct {
	ID          string           `json:"id"`
	Email       string           `json:"email"`
	Name        string           `json:"name,omitempty"`
	Role        model.Role       `json:"role"`
	Status      model.UserStatus `json:"status"`
	Locked      bool             `json:"locked"`
	LastLoginAt string           `json:"lastLoginAt,omitempty"`
	CreatedAt   string           `json:"createdAt"`
}

func NewUserResponse(u model.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		Locked:    u.LockedUntil != nil && u.LockedUntil.After(time.Now()),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
	if u.LastLoginAt != nil {
		resp.LastLoginAt = u.LastLoginAt.Format(time.RFC3339)
	}
	return resp
}
