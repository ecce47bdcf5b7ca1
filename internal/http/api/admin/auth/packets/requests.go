package packets

// body for registering a new tenant together with its owner account
type RegisterRequest struct {
	TenantName string  `json:"tenantName" binding:"required"`
	Subdomain  string  `json:"subdomain" binding:"omitempty,hostname_rfc1123"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=8"`
	Name       *string `json:"name"`
}

// body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateCurrentProfileRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Name     *string `json:"name"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}
