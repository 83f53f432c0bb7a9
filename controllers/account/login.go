package accountcontroller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/shopora/ecommerce-api/auth"
	"github.com/shopora/ecommerce-api/config"
	"github.com/shopora/ecommerce-api/models"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type googleLoginRequest struct {
	IDToken    string `json:"id_token" binding:"required"`
	SessionKey string `json:"session_key"`
}

const badCredentials = "No active account found with the given credentials"

// POST /api/auth/token
// The response does not distinguish unknown user, wrong password and
// inactive account.
func Login(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
			return
		}

		var user models.User
		err := db.Where("username = ? OR email = ?", req.Username, req.Username).First(&user).Error
		if err != nil || !user.IsActive || !auth.CheckPassword(user.PasswordHash, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": badCredentials})
			return
		}

		pair, err := auth.IssuePair(cfg.Auth, &user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue tokens"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"access": pair.Access, "refresh": pair.Refresh})
	}
}

// POST /api/auth/token/refresh
func RefreshToken(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "refresh is required"})
			return
		}
		access, userID, err := auth.RefreshAccess(cfg.Auth, req.Refresh)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired"})
			return
		}
		var user models.User
		if err := db.First(&user, userID).Error; err != nil || !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"access": access})
	}
}

// POST /api/auth/social/google
// Verifies the Google ID token, provisions the account on first login and
// folds any guest cart into the user's cart.
func GoogleLogin(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req googleLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id_token is required"})
			return
		}

		identity, err := auth.VerifyGoogleIDToken(c.Request.Context(), cfg.Auth.GoogleClientID, req.IDToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid Google token"})
			return
		}

		var user models.User
		err = db.Preload("Profile").Where("email = ?", identity.Email).First(&user).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = newGoogleUser(identity)
			if err := db.Create(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
				return
			}
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		case !user.IsActive:
			c.JSON(http.StatusUnauthorized, gin.H{"detail": badCredentials})
			return
		}

		if req.SessionKey != "" {
			if err := mergeGuestCart(db, &user, req.SessionKey); err != nil {
				log.Error().Err(err).Uint("user_id", user.ID).Msg("guest cart merge failed")
			}
		}

		pair, err := auth.IssuePair(cfg.Auth, &user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue tokens"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"access": pair.Access, "refresh": pair.Refresh})
	}
}

func newGoogleUser(identity *auth.GoogleIdentity) models.User {
	username := strings.Split(identity.Email, "@")[0]
	first, last := splitName(identity.Name)
	return models.User{
		Username:     username,
		Email:        identity.Email,
		FirstName:    first,
		LastName:     last,
		PasswordHash: "!", // unusable, social accounts authenticate via Google
		IsActive:     true,
		Provider:     "google",
		Profile:      models.Profile{Avatar: identity.Picture},
	}
}

func splitName(full string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(full), " ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}

// mergeGuestCart moves the guest cart's items into the user's cart,
// summing quantities for products present in both, then drops the guest
// cart.
func mergeGuestCart(db *gorm.DB, user *models.User, sessionKey string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var guest models.Cart
		err := tx.Preload("Items").Where("session_key = ?", sessionKey).First(&guest).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		var mine models.Cart
		err = tx.Where("user_id = ?", user.ID).First(&mine).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			mine = models.Cart{UserID: &user.ID}
			if err := tx.Create(&mine).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		for _, item := range guest.Items {
			var existing models.CartItem
			err := tx.Where("cart_id = ? AND product_id = ?", mine.ID, item.ProductID).First(&existing).Error
			switch {
			case err == nil:
				existing.Quantity += item.Quantity
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				moved := models.CartItem{CartID: mine.ID, ProductID: item.ProductID, Quantity: item.Quantity}
				if err := tx.Create(&moved).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}

		if err := tx.Where("cart_id = ?", guest.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&guest).Error
	})
}
