package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"inkwell/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func sessionKey(userID, sessionID string) string {
	return fmt.Sprintf("session:%s:%s", userID, sessionID)
}

// AuthMiddleware gates routes that require an authenticated caller. When a
// session store is supplied, tokens whose session was destroyed are rejected
// even if the signature is still valid.
func AuthMiddleware(jwtService *jwt.Service, sessions *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, jwtService)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		if sessions != nil {
			exists, err := sessions.Exists(c.Request.Context(), sessionKey(claims.UserID, claims.SessionID)).Result()
			if err != nil || exists == 0 {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
				c.Abort()
				return
			}
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)
		c.Set("session_id", claims.SessionID)
		c.Next()
	}
}

// OptionalAuthMiddleware populates the caller identity when a valid token is
// present and otherwise lets the request through anonymously.
func OptionalAuthMiddleware(jwtService *jwt.Service, sessions *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, jwtService)
		if !ok {
			c.Next()
			return
		}

		if sessions != nil {
			exists, err := sessions.Exists(c.Request.Context(), sessionKey(claims.UserID, claims.SessionID)).Result()
			if err != nil || exists == 0 {
				c.Next()
				return
			}
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)
		c.Set("session_id", claims.SessionID)
		c.Next()
	}
}

// GuestMiddleware gates routes reserved for anonymous callers, mirroring the
// requires-anonymous redirect of the web client.
func GuestMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := bearerClaims(c, jwtService); ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "Already authenticated"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerClaims(c *gin.Context, jwtService *jwt.Service) (*jwt.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, false
	}

	claims, err := jwtService.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return nil, false
	}
	return claims, true
}
