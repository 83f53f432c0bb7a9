package productcontroller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
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
	"github.com/shopora/ecommerce-api/pagination"
)

func setupProductTest(t *testing.T) (*gorm.DB, *config.Config, *gin.Engine) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Profile{},
		&models.Category{}, &models.Brand{}, &models.Tag{},
		&models.Product{}, &models.ProductImage{},
		&models.Review{}, &models.Wishlist{}, &models.CartItem{}, &models.Cart{},
	))

	cfg := &config.Config{
		Auth:     config.AuthConfig{JWTSecret: "test-secret", AccessTTL: time.Hour, RefreshTTL: 24 * time.Hour},
		Media:    config.MediaConfig{URL: "/media", Root: t.TempDir()},
		PageSize: 2,
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Authenticate(db, cfg.Auth.JWTSecret))
	g := r.Group("/products")
	g.GET("", GetProducts(db, cfg))
	g.GET("/featured", GetFeaturedProducts(db, cfg))
	g.GET("/:id", GetProductByID(db, cfg))
	g.POST("", middleware.Require("products", "create"), CreateProduct(db, cfg))
	g.PUT("/:id", middleware.Require("products", "update"), UpdateProduct(db, cfg))
	g.DELETE("/:id", middleware.Require("products", "delete"), DeleteProduct(db, cfg))
	return db, cfg, r
}

func newSeller(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		IsActive:     true,
		Profile:      models.Profile{IsSeller: true},
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func newProduct(t *testing.T, db *gorm.DB, seller *models.User, title string, mutate func(*models.Product)) *models.Product {
	t.Helper()
	product := models.Product{
		SellerID: seller.ID,
		Title:    title,
		Price:    decimal.RequireFromString("10.00"),
		Stock:    5,
	}
	if mutate != nil {
		mutate(&product)
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func authHeader(t *testing.T, cfg *config.Config, user *models.User) string {
	t.Helper()
	pair, err := auth.IssuePair(cfg.Auth, user)
	require.NoError(t, err)
	return "Bearer " + pair.Access
}

func listProducts(t *testing.T, r *gin.Engine, query url.Values) pagination.Page {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/products?"+query.Encode(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page pagination.Page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	return page
}

func TestListProductsFiltersAndPaginates(t *testing.T) {
	db, _, r := setupProductTest(t)
	seller := newSeller(t, db, "seller")

	lamps := models.Category{Name: "Lamps", Slug: "lamps"}
	require.NoError(t, db.Create(&lamps).Error)
	acme := models.Brand{Name: "Acme", Slug: "acme"}
	require.NoError(t, db.Create(&acme).Error)
	modern := models.Tag{Name: "Modern", Slug: "modern"}
	require.NoError(t, db.Create(&modern).Error)

	newProduct(t, db, seller, "Desk Lamp", func(p *models.Product) {
		p.CategoryID = &lamps.ID
		p.BrandID = &acme.ID
		p.Tags = []models.Tag{modern}
	})
	newProduct(t, db, seller, "Floor Lamp", func(p *models.Product) {
		p.CategoryID = &lamps.ID
	})
	newProduct(t, db, seller, "Office Chair", nil)

	all := listProducts(t, r, url.Values{})
	assert.EqualValues(t, 3, all.Count)
	assert.Len(t, all.Results, 2) // page size

	page2 := listProducts(t, r, url.Values{"page": {"2"}})
	assert.Len(t, page2.Results, 1)

	byCategory := listProducts(t, r, url.Values{"category": {"lamps"}})
	assert.EqualValues(t, 2, byCategory.Count)

	byBrand := listProducts(t, r, url.Values{"brand": {"acme"}})
	assert.EqualValues(t, 1, byBrand.Count)

	byTag := listProducts(t, r, url.Values{"tags": {"modern"}})
	assert.EqualValues(t, 1, byTag.Count)

	bySearch := listProducts(t, r, url.Values{"search": {"lamp"}})
	assert.EqualValues(t, 2, bySearch.Count)

	none := listProducts(t, r, url.Values{"search": {"sofa"}})
	assert.EqualValues(t, 0, none.Count)
}

func TestProductResponseAppliesDiscount(t *testing.T) {
	db, _, r := setupProductTest(t)
	seller := newSeller(t, db, "seller")
	product := newProduct(t, db, seller, "Discounted", func(p *models.Product) {
		p.Price = decimal.RequireFromString("100.00")
		p.DiscountPercent = 25
	})

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/products/%d", product.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Price.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, resp.FinalPrice.Equal(decimal.RequireFromString("75.00")), "final = %s", resp.FinalPrice)
}

func TestUpdateProductOwnership(t *testing.T) {
	db, cfg, r := setupProductTest(t)
	owner := newSeller(t, db, "owner")
	intruder := newSeller(t, db, "intruder")
	staff := newSeller(t, db, "staff")
	require.NoError(t, db.Model(staff).Update("is_staff", true).Error)

	product := newProduct(t, db, owner, "Bookshelf", nil)

	update := func(token string) *httptest.ResponseRecorder {
		form := url.Values{"title": {"Tall Bookshelf"}}
		req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/products/%d", product.ID), strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if token != "" {
			req.Header.Set("Authorization", token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, update("").Code)
	assert.Equal(t, http.StatusForbidden, update(authHeader(t, cfg, intruder)).Code)
	assert.Equal(t, http.StatusOK, update(authHeader(t, cfg, owner)).Code)
	assert.Equal(t, http.StatusOK, update(authHeader(t, cfg, staff)).Code)
}

func TestDeleteProductCleansUpReferences(t *testing.T) {
	db, cfg, r := setupProductTest(t)
	owner := newSeller(t, db, "owner")
	product := newProduct(t, db, owner, "Doomed", nil)

	cart := models.Cart{UserID: &owner.ID}
	require.NoError(t, db.Create(&cart).Error)
	require.NoError(t, db.Create(&models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1}).Error)
	require.NoError(t, db.Create(&models.Wishlist{UserID: owner.ID, ProductID: product.ID}).Error)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/products/%d", product.ID), nil)
	req.Header.Set("Authorization", authHeader(t, cfg, owner))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var products, cartItems, wishes int64
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	require.NoError(t, db.Model(&models.CartItem{}).Count(&cartItems).Error)
	require.NoError(t, db.Model(&models.Wishlist{}).Count(&wishes).Error)
	assert.Zero(t, products)
	assert.Zero(t, cartItems)
	assert.Zero(t, wishes)
}
