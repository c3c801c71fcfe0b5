package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"finledger/internal/auth"
	"finledger/internal/models"
)

// UserResolver resolves a token's identity claim back to a live user.
type UserResolver interface {
	GetUserByID(id uint) (*models.User, error)
}

// Auth verifies the bearer token on each request and stores the user
// identity in the context. The claimed user id is re-resolved against
// the credential store, so tokens for deleted accounts stop working
// even before they expire.
func Auth(tokens *auth.TokenIssuer, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"code": "UNAUTHORIZED", "message": "Authorization header is required"}})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"code": "UNAUTHORIZED", "message": "Invalid authorization header format"}})
			c.Abort()
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"code": "INVALID_TOKEN", "message": "Invalid or expired token"}})
			c.Abort()
			return
		}

		user, err := users.GetUserByID(claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"code": "INVALID_TOKEN", "message": "Invalid or expired token"}})
			c.Abort()
			return
		}

		c.Set("userID", user.ID)
		c.Set("username", user.Username)
		c.Next()
	}
}
