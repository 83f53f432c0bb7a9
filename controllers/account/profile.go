package accountcontroller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/ecommerce-api/config"
	"github.com/shopora/ecommerce-api/middleware"
	"github.com/shopora/ecommerce-api/uploads"
)

type updateMeRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
}

// GET /api/auth/me
func Me(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.MustCurrentUser(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, SerializeUser(user, cfg.Media.URL))
	}
}

// PUT /api/auth/me
func UpdateMe(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.MustCurrentUser(c)
		if !ok {
			return
		}
		var req updateMeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
			return
		}
		if req.FirstName != nil {
			user.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			user.LastName = *req.LastName
		}
		if req.Email != nil {
			user.Email = *req.Email
		}
		if err := db.Save(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "A user with that email already exists"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
			}
			return
		}
		c.JSON(http.StatusOK, SerializeUser(user, cfg.Media.URL))
	}
}

// GET /api/auth/me/profile
func GetProfile(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.MustCurrentUser(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, SerializeProfile(&user.Profile, cfg.Media.URL))
	}
}

// PUT /api/auth/me/profile
// Multipart so the avatar can ride along with the text fields.
func UpdateProfile(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.MustCurrentUser(c)
		if !ok {
			return
		}
		profile := &user.Profile

		if v, ok := c.GetPostForm("mobile"); ok {
			profile.Mobile = v
		}
		if v, ok := c.GetPostForm("address"); ok {
			profile.Address = v
		}
		if v, ok := c.GetPostForm("city"); ok {
			profile.City = v
		}
		if v, ok := c.GetPostForm("country"); ok {
			profile.Country = v
		}
		if v, ok := c.GetPostForm("birthdate"); ok {
			parsed, err := time.Parse("2006-01-02", v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "birthdate must be YYYY-MM-DD"})
				return
			}
			profile.Birthdate = &parsed
		}

		oldAvatar := ""
		if file, err := c.FormFile("avatar"); err == nil {
			path, err := uploads.Save(c, file, cfg.Media.Root, "avatars")
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store avatar"})
				return
			}
			oldAvatar = profile.Avatar
			profile.Avatar = path
		}

		if err := db.Save(profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
		if oldAvatar != "" {
			uploads.Remove(cfg.Media.Root, oldAvatar)
		}
		c.JSON(http.StatusOK, SerializeProfile(profile, cfg.Media.URL))
	}
}
