package cartcontroller

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

func setupCartTest(t *testing.T) (*gorm.DB, *config.Config, *gin.Engine) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Profile{},
		&models.Category{}, &models.Brand{}, &models.Tag{},
		&models.Product{}, &models.ProductImage{},
		&models.Review{}, &models.Wishlist{},
		&models.Cart{}, &models.CartItem{},
	))

	cfg := &config.Config{
		Auth:  config.AuthConfig{JWTSecret: "test-secret", AccessTTL: time.Hour, RefreshTTL: 24 * time.Hour},
		Media: config.MediaConfig{URL: "/media"},
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Authenticate(db, cfg.Auth.JWTSecret))
	g := r.Group("/carts")
	g.GET("", ListCarts(db, cfg))
	g.POST("", CreateCart(db, cfg))
	g.GET("/my", MyCart(db, cfg))
	g.POST("/session", CreateSession())
	g.DELETE("/:id", DeleteCart(db))
	g.GET("/:id/items", ListCartItems(db, cfg))
	g.POST("/:id/items", AddCartItem(db, cfg))
	g.PATCH("/:id/items/:item_id", UpdateCartItem(db, cfg))
	g.POST("/:id/items/:item_id/adjust", AdjustCartItem(db, cfg))
	g.DELETE("/:id/items/:item_id", RemoveCartItem(db))

	return db, cfg, r
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		IsActive:     true,
		Profile:      models.Profile{},
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedProduct(t *testing.T, db *gorm.DB, seller *models.User, price string, discount int) *models.Product {
	t.Helper()
	product := models.Product{
		SellerID:        seller.ID,
		Title:           "Widget",
		Price:           decimal.RequireFromString(price),
		Stock:           10,
		DiscountPercent: discount,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func accessToken(t *testing.T, cfg *config.Config, user *models.User) string {
	t.Helper()
	pair, err := auth.IssuePair(cfg.Auth, user)
	require.NoError(t, err)
	return "Bearer " + pair.Access
}

func do(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMyCartCreatesOnFirstUse(t *testing.T) {
	db, cfg, r := setupCartTest(t)
	user := seedUser(t, db, "alice")

	w := do(r, http.MethodGet, "/carts/my", accessToken(t, cfg, user), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotZero(t, resp.ID)
	require.NotNil(t, resp.UserID)
	assert.Equal(t, user.ID, *resp.UserID)

	// second call reuses the same cart
	w = do(r, http.MethodGet, "/carts/my", accessToken(t, cfg, user), nil)
	var again CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &again))
	assert.Equal(t, resp.ID, again.ID)
}

func TestMyCartWithoutIdentityIsEmptyNotError(t *testing.T) {
	_, _, r := setupCartTest(t)

	w := do(r, http.MethodGet, "/carts/my", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.ID)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.Subtotal.IsZero())
}

func TestAddCartItemUpsertsByProduct(t *testing.T) {
	db, cfg, r := setupCartTest(t)
	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, user, "10.00", 0)
	token := accessToken(t, cfg, user)

	cart := models.Cart{UserID: &user.ID}
	require.NoError(t, db.Create(&cart).Error)
	itemsPath := fmt.Sprintf("/carts/%d/items", cart.ID)

	w := do(r, http.MethodPost, itemsPath, token, gin.H{"product_id": product.ID, "quantity": 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = do(r, http.MethodPost, itemsPath, token, gin.H{"product_id": product.ID, "quantity": 3})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var items []models.CartItem
	require.NoError(t, db.Where("cart_id = ?", cart.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAdjustDecreaseFloorsAtOne(t *testing.T) {
	db, cfg, r := setupCartTest(t)
	user := seedUser(t, db, "alice")
	product := seedProduct(t, db, user, "10.00", 0)
	token := accessToken(t, cfg, user)

	cart := models.Cart{UserID: &user.ID}
	require.NoError(t, db.Create(&cart).Error)
	item := models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 2}
	require.NoError(t, db.Create(&item).Error)

	path := fmt.Sprintf("/carts/%d/items/%d/adjust", cart.ID, item.ID)
	w := do(r, http.MethodPost, path, token, gin.H{"action": "decrease", "quantity": 5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.CartItem
	require.NoError(t, db.First(&updated, item.ID).Error)
	assert.Equal(t, 1, updated.Quantity)

	w = do(r, http.MethodPost, path, token, gin.H{"action": "increase", "quantity": 4})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.First(&updated, item.ID).Error)
	assert.Equal(t, 5, updated.Quantity)
}

func TestCartScopedToIdentity(t *testing.T) {
	db, cfg, r := setupCartTest(t)
	alice := seedUser(t, db, "alice")
	mallory := seedUser(t, db, "mallory")

	cart := models.Cart{UserID: &alice.ID}
	require.NoError(t, db.Create(&cart).Error)

	// another user's cart id reads as missing
	w := do(r, http.MethodGet, fmt.Sprintf("/carts/%d/items", cart.ID), accessToken(t, cfg, mallory), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// and so does a guest request without the right session key
	w = do(r, http.MethodGet, fmt.Sprintf("/carts/%d/items", cart.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, fmt.Sprintf("/carts/%d/items", cart.ID), accessToken(t, cfg, alice), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuestCartViaSessionKey(t *testing.T) {
	db, _, r := setupCartTest(t)
	seller := seedUser(t, db, "seller")
	product := seedProduct(t, db, seller, "100.00", 25)

	w := do(r, http.MethodPost, "/carts/session", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var session map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	key := session["session_key"]
	require.NotEmpty(t, key)

	w = do(r, http.MethodGet, "/carts/my?session_key="+key, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotZero(t, resp.ID)

	path := fmt.Sprintf("/carts/%d/items?session_key=%s", resp.ID, key)
	w = do(r, http.MethodPost, path, "", gin.H{"product_id": product.ID, "quantity": 3})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(r, http.MethodGet, "/carts/my?session_key="+key, "", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("225.00")), "subtotal = %s", resp.Subtotal)
}

func TestCartSubtotalAppliesDiscounts(t *testing.T) {
	db, cfg, r := setupCartTest(t)
	user := seedUser(t, db, "alice")
	discounted := seedProduct(t, db, user, "100.00", 25)
	plain := seedProduct(t, db, user, "100.00", 0)

	cart := models.Cart{UserID: &user.ID}
	require.NoError(t, db.Create(&cart).Error)
	require.NoError(t, db.Create(&models.CartItem{CartID: cart.ID, ProductID: discounted.ID, Quantity: 3}).Error)
	require.NoError(t, db.Create(&models.CartItem{CartID: cart.ID, ProductID: plain.ID, Quantity: 1}).Error)

	w := do(r, http.MethodGet, "/carts/my", accessToken(t, cfg, user), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("325.00")), "subtotal = %s", resp.Subtotal)
}

func TestCreateCartRejectsSecondForSameUser(t *testing.T) {
	db, cfg, r := setupCartTest(t)
	user := seedUser(t, db, "alice")
	token := accessToken(t, cfg, user)

	w := do(r, http.MethodPost, "/carts", token, gin.H{})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(r, http.MethodPost, "/carts", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
