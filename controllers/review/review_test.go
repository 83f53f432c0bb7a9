package reviewcontroller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shopora/ecommerce-api/auth"
	"github.com/shopora/ecommerce-api/config"
	"github.com/shopora/ecommerce-api/middleware"
	"github.com/shopora/ecommerce-api/models"
)

func setupReviewTest(t *testing.T) (*gorm.DB, *config.Config, *gin.Engine) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Profile{},
		&models.Category{}, &models.Brand{}, &models.Tag{},
		&models.Product{}, &models.ProductImage{}, &models.Review{},
	))

	cfg := &config.Config{
		Auth:  config.AuthConfig{JWTSecret: "test-secret", AccessTTL: time.Hour, RefreshTTL: 24 * time.Hour},
		Media: config.MediaConfig{URL: "/media"},
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Authenticate(db, cfg.Auth.JWTSecret))
	r.GET("/products/:id/reviews", ListReviews(db, cfg))
	r.POST("/products/:id/reviews", middleware.Require("reviews", "create"), CreateReview(db, cfg))
	return db, cfg, r
}

func seedReviewProduct(t *testing.T, db *gorm.DB) (*models.User, *models.Product) {
	t.Helper()
	user := models.User{Username: "buyer", Email: "buyer@example.com", PasswordHash: "x", IsActive: true, Profile: models.Profile{}}
	require.NoError(t, db.Create(&user).Error)
	product := models.Product{SellerID: user.ID, Title: "Kettle", Price: decimal.RequireFromString("30.00")}
	require.NoError(t, db.Create(&product).Error)
	return &user, &product
}

func postReview(t *testing.T, cfg *config.Config, r *gin.Engine, user *models.User, productID uint, body gin.H) *httptest.ResponseRecorder {
	t.Helper()
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/products/%d/reviews", productID), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		pair, err := auth.IssuePair(cfg.Auth, user)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+pair.Access)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateReviewOncePerUser(t *testing.T) {
	db, cfg, r := setupReviewTest(t)
	user, product := seedReviewProduct(t, db)

	w := postReview(t, cfg, r, user, product.ID, gin.H{"rating": 4, "comment": "solid"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = postReview(t, cfg, r, user, product.ID, gin.H{"rating": 5, "comment": "changed my mind"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Review{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateReviewValidation(t *testing.T) {
	db, cfg, r := setupReviewTest(t)
	user, product := seedReviewProduct(t, db)

	w := postReview(t, cfg, r, user, product.ID, gin.H{"rating": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postReview(t, cfg, r, user, product.ID, gin.H{"rating": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postReview(t, cfg, r, user, 9999, gin.H{"rating": 3})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// anonymous writes are rejected, reads are open
	w = postReview(t, cfg, r, nil, product.ID, gin.H{"rating": 3})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/products/%d/reviews", product.ID), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
