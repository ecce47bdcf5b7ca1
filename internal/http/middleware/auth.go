package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// ErrInvalidCredentials is reported for an unknown email or a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

const (
	currentUserKey    = "currentUser"
	currentSessionKey = "currentSession"
)

// uses bcrypt to hash a plaintext password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// compares a bcrypt hash with the plaintext.
func CheckPassword(hash, plain string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	return err == nil
}

// retrieves *model.User from Gin context (after JWTMiddleware has run).
func GetCurrentUser(c *gin.Context) (*model.User, bool) {
	u, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := u.(*model.User)
	return user, ok
}

// retrieves the *model.Session backing the request's token.
func GetCurrentSession(c *gin.Context) (*model.Session, bool) {
	s, exists := c.Get(currentSessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := s.(*model.Session)
	return sess, ok
}
