package middleware

import (
	"net/http"
	"strings"

	"mavuso/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	// AuthCookieName is the session cookie set at sign-in.
	AuthCookieName = "auth-token"

	userIDKey    = "user_id"
	userEmailKey = "user_email"
)

// RequireAuth resolves the session cookie (Authorization: Bearer as fallback)
// to a user row. Malformed, expired, and unknown tokens are all rejected the
// same way; the client only learns "not authenticated".
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		svc := services.AuthService{}
		user, err := svc.UserFromToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		c.Set(userIDKey, user.ID)
		c.Set(userEmailKey, user.Email)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(AuthCookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// CurrentUserID returns the authenticated user id, 0 when unauthenticated.
func CurrentUserID(c *gin.Context) int64 {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// OptionalUserID resolves the session token on routes that do not require
// auth. A missing or bad token is simply an anonymous caller.
func OptionalUserID(c *gin.Context) int64 {
	if id := CurrentUserID(c); id > 0 {
		return id
	}
	token := tokenFromRequest(c)
	if token == "" {
		return 0
	}
	svc := services.AuthService{}
	user, err := svc.UserFromToken(token)
	if err != nil {
		return 0
	}
	return user.ID
}
