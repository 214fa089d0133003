package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// Context keys set by VerifyToken for downstream handlers.
const (
	ContextEmail = "email"
	ContextRole  = "role"
)

// VerifyToken checks the Authorization header for a bearer token signed with
// secret and stores the email and role claims in the request context. A
// missing token is 401, a token that fails verification is 403.
func VerifyToken(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		email, _ := claims["email"].(string)
		role, _ := claims["role"].(string)
		c.Set(ContextEmail, email)
		c.Set(ContextRole, role)
		c.Next()
	}
}

// RequireAdmin rejects any request whose verified role is not admin. It must
// run after VerifyToken.
func RequireAdmin() gin.HandlerFunc {
	return requireRole("admin", "admin access required")
}

// RequireModerator rejects any request whose verified role is not moderator.
func RequireModerator() gin.HandlerFunc {
	return requireRole("moderator", "moderator access required")
}

func requireRole(role, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != role {
			c.JSON(http.StatusForbidden, gin.H{"error": message})
			c.Abort()
			return
		}
		c.Next()
	}
}
