package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"karesave-backend/pkg/auth"
)

const RoleAdmin = "admin"

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
}

func NewAuthMiddleware(jwtManager *auth.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager}
}

// AuthRequired middleware validates JWT token
func (a *AuthMiddleware) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Authorization header required"})
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Invalid authorization header format"})
			return
		}

		claims, err := a.jwtManager.ValidateAccessToken(tokenParts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Invalid token"})
			return
		}

		// Set user information in context
		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("email", claims.Email)
		c.Next()
	}
}

// RoleRequired middleware checks if user has required role
func (a *AuthMiddleware) RoleRequired(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString("role")
		if userRole == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": "Role information missing"})
			return
		}

		for _, requiredRole := range requiredRoles {
			if userRole == requiredRole {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": "Insufficient permissions"})
	}
}

// AdminRequired middleware ensures user is an admin
func (a *AuthMiddleware) AdminRequired() gin.HandlerFunc {
	return a.RoleRequired(RoleAdmin)
}

// GetUserID helper function to extract user ID from context
func GetUserID(c *gin.Context) string {
	return c.GetString("user_id")
}

// GetUserRole helper function to extract user role from context
func GetUserRole(c *gin.Context) string {
	return c.GetString("role")
}
