package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	taxonomycontroller "github.com/shopora/ecommerce-api/controllers/taxonomy"
	"github.com/shopora/ecommerce-api/middleware"
)

// registerTaxonomy mounts the shared CRUD surface for one vocabulary.
func registerTaxonomy(g *gin.RouterGroup, db *gorm.DB, k taxonomycontroller.Kind, resource string) {
	g.GET("", taxonomycontroller.List(db, k))
	g.GET("/:id", taxonomycontroller.Get(db, k))

	write := middleware.Require(resource, "write")
	g.POST("", write, taxonomycontroller.Create(db, k))
	g.PUT("/:id", write, taxonomycontroller.Update(db, k))
	g.DELETE("/:id", write, taxonomycontroller.Delete(db, k))
}
