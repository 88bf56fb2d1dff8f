// Package catalog - product catalog API controller (read side).
package catalog

import (
	"net/http"

	"shop/api/ctxutil"
	"shop/api/response"
	catalogapp "shop/application/catalog"
	"shop/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller catalog controller
type Controller struct {
	catalogService *catalogapp.ApplicationService
}

// NewController creates the catalog controller
func NewController(catalogService *catalogapp.ApplicationService) *Controller {
	return &Controller{
		catalogService: catalogService,
	}
}

// RegisterRoutes registers catalog routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	productGroup := router.Group("/products")
	{
		productGroup.GET("/:id", c.GetProduct)
	}
}

// GetProduct returns one product
// GET /api/v1/products/:id
func (c *Controller) GetProduct(ctx *gin.Context) {
	productID := ctx.Param("id")
	if productID == "" {
		response.HandleError(ctx, errors.BadRequest("product ID is required"), "product ID is required", http.StatusBadRequest)
		return
	}

	product, err := c.catalogService.GetProduct(ctxutil.WithRequestID(ctx), productID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "product retrieved successfully")
}
