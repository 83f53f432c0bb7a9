package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/ecommerce-api/auth"
	"github.com/shopora/ecommerce-api/models"
)

const userKey = "current_user"

// Authenticate resolves the Bearer token on the request, loads the user and
// stores it on the context. Requests without a valid token pass through
// anonymously; the policy layer decides whether that is acceptable per route.
func Authenticate(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims, err := auth.ParseToken(jwtSecret, tokenString)
		if err != nil || claims["token_type"] != "access" {
			c.Next()
			return
		}
		userID, ok := claims["user_id"].(float64)
		if !ok {
			c.Next()
			return
		}

		var user models.User
		if err := db.Preload("Profile").First(&user, uint(userID)).Error; err != nil {
			c.Next()
			return
		}
		if !user.IsActive {
			c.Next()
			return
		}

		c.Set(userKey, &user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user for the request, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, exists := c.Get(userKey)
	if !exists {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// MustCurrentUser is for handlers behind an Authenticated (or stricter)
// policy; it aborts with 401 if the middleware chain let an anonymous
// request through.
func MustCurrentUser(c *gin.Context) (*models.User, bool) {
	user := CurrentUser(c)
	if user == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
		return nil, false
	}
	return user, true
}
