package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/marquee/internal/db"
	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// Claims identifies a session. SessionToken ("jti") is the Session.Token the
// token was issued for.
type Claims struct {
	UserID       string
	TenantID     string
	SessionToken string
}

// NewSessionToken returns a fresh random session token.
func NewSessionToken() string {
	return uuid.NewString()
}

// signs a token embedding the user in "sub", the tenant in "tid" and the
// session in "jti".
func GenerateJWT(claims Claims, expiresAt time.Time, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": claims.UserID,
		"tid": claims.TenantID,
		"jti": claims.SessionToken,
		"exp": expiresAt.Unix(),
	})
	return token.SignedString([]byte(secret))
}

// verifies the JWT and returns its claims.
func ParseToken(tokenString, secret string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Claims{}, errors.New("invalid token")
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid claims")
	}
	sub, _ := mc["sub"].(string)
	tid, _ := mc["tid"].(string)
	jti, _ := mc["jti"].(string)
	if sub == "" || jti == "" {
		return Claims{}, errors.New("invalid sub or jti claim")
	}
	return Claims{UserID: sub, TenantID: tid, SessionToken: jti}, nil
}

// checks "Authorization: Bearer <token>", verifies it, requires the session it
// names to still exist, loads the user and sets "currentUser" in context.
func JWTMiddleware(secret string, store db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing auth header"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid auth header"})
			return
		}

		claims, err := ParseToken(parts[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		sess, err := store.FindSessionByToken(c.Request.Context(), claims.SessionToken)
		if err != nil || sess.UserID != claims.UserID {
			if err != nil && !errors.Is(err, db.ErrNotFound) {
				log.Error().Err(err).Msg("session lookup failed")
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}

		user, err := store.FindUserByID(c.Request.Context(), claims.UserID, claims.TenantID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		if user.Status != model.UserActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account disabled"})
			return
		}
		c.Set(currentUserKey, user)
		c.Set(currentSessionKey, sess)
		c.Next()
	}
}
