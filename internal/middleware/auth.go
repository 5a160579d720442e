package middleware

import (
	"strings"

	"noteful-api/pkg/auth"
	"noteful-api/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	AuthUserKey = "auth_user"
	UserIDKey   = "user_id"
)

// AuthMiddleware guards every route below it: requests without a
// valid bearer token never reach a handler, so handlers can rely on
// an authenticated caller identity being present.
func AuthMiddleware(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(AuthUserKey, claims)
		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// GetCurrentUserID returns the authenticated caller's identity.
func GetCurrentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	return id, ok
}
