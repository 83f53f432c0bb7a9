// Package taxonomycontroller provides CRUD for the three catalog vocabularies
// (categories, brands, tags). They share one shape, a unique name and a unique
// slug, so the handlers are generated from a small descriptor per type.
package taxonomycontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/shopora/ecommerce-api/models"
)

type upsertRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug"`
}

type entry struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Kind abstracts over Category/Brand/Tag without reflection in handlers.
type Kind struct {
	list  func(db *gorm.DB) ([]entry, error)
	get   func(db *gorm.DB, id string) (any, *entry, error)
	make  func(name, slugValue string) any
	apply func(model any, name, slugValue string)
}

var Categories = Kind{
	list: func(db *gorm.DB) ([]entry, error) {
		var rows []models.Category
		err := db.Order("name").Find(&rows).Error
		out := make([]entry, 0, len(rows))
		for _, r := range rows {
			out = append(out, entry{r.ID, r.Name, r.Slug})
		}
		return out, err
	},
	get: func(db *gorm.DB, id string) (any, *entry, error) {
		var row models.Category
		if err := db.First(&row, "id = ?", id).Error; err != nil {
			return nil, nil, err
		}
		return &row, &entry{row.ID, row.Name, row.Slug}, nil
	},
	make: func(name, slugValue string) any {
		return &models.Category{Name: name, Slug: slugValue}
	},
	apply: func(model any, name, slugValue string) {
		row := model.(*models.Category)
		row.Name, row.Slug = name, slugValue
	},
}

var Brands = Kind{
	list: func(db *gorm.DB) ([]entry, error) {
		var rows []models.Brand
		err := db.Order("name").Find(&rows).Error
		out := make([]entry, 0, len(rows))
		for _, r := range rows {
			out = append(out, entry{r.ID, r.Name, r.Slug})
		}
		return out, err
	},
	get: func(db *gorm.DB, id string) (any, *entry, error) {
		var row models.Brand
		if err := db.First(&row, "id = ?", id).Error; err != nil {
			return nil, nil, err
		}
		return &row, &entry{row.ID, row.Name, row.Slug}, nil
	},
	make: func(name, slugValue string) any {
		return &models.Brand{Name: name, Slug: slugValue}
	},
	apply: func(model any, name, slugValue string) {
		row := model.(*models.Brand)
		row.Name, row.Slug = name, slugValue
	},
}

var Tags = Kind{
	list: func(db *gorm.DB) ([]entry, error) {
		var rows []models.Tag
		err := db.Order("name").Find(&rows).Error
		out := make([]entry, 0, len(rows))
		for _, r := range rows {
			out = append(out, entry{r.ID, r.Name, r.Slug})
		}
		return out, err
	},
	get: func(db *gorm.DB, id string) (any, *entry, error) {
		var row models.Tag
		if err := db.First(&row, "id = ?", id).Error; err != nil {
			return nil, nil, err
		}
		return &row, &entry{row.ID, row.Name, row.Slug}, nil
	},
	make: func(name, slugValue string) any {
		return &models.Tag{Name: name, Slug: slugValue}
	},
	apply: func(model any, name, slugValue string) {
		row := model.(*models.Tag)
		row.Name, row.Slug = name, slugValue
	},
}

// List returns every entry ordered by name.
func List(db *gorm.DB, k Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := k.list(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entries"})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// Get returns a single entry by id.
func Get(db *gorm.DB, k Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, out, err := k.get(db, c.Param("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entry"})
			}
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// Create inserts a new entry. The slug is derived from the name when the
// client does not supply one.
func Create(db *gorm.DB, k Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req upsertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Slug == "" {
			req.Slug = slug.Make(req.Name)
		}
		model := k.make(req.Name, req.Slug)
		if err := db.Create(model).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Name or slug already exists"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
			}
			return
		}
		c.JSON(http.StatusCreated, model)
	}
}

// Update renames an entry, regenerating the slug unless one is supplied.
func Update(db *gorm.DB, k Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		model, _, err := k.get(db, c.Param("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entry"})
			}
			return
		}
		var req upsertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Slug == "" {
			req.Slug = slug.Make(req.Name)
		}
		k.apply(model, req.Name, req.Slug)
		if err := db.Save(model).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Name or slug already exists"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update entry"})
			}
			return
		}
		c.JSON(http.StatusOK, model)
	}
}

// Delete removes an entry; products referencing it fall back to NULL.
func Delete(db *gorm.DB, k Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		model, _, err := k.get(db, c.Param("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entry"})
			}
			return
		}
		// Tags hang off a join table, so the links go first.
		if tag, ok := model.(*models.Tag); ok {
			if err := db.Model(tag).Association("Products").Clear(); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear product links"})
				return
			}
		}
		if err := db.Delete(model).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
	}
}
