// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/webstore/backend/internal/services"
	"github.com/webstore/backend/internal/utils"
)

type ProductHandler struct {
	catalogService *services.CatalogService
}

func NewProductHandler(catalogService *services.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	category := c.Query("category")

	products, err := h.catalogService.ListProducts(category)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	params := utils.GetPaginationParams(c)
	utils.SuccessResponse(c, gin.H{
		"products": utils.Window(products, params),
		"total":    len(products),
	})
}

// GET /products/categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories()
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"categories": categories,
	})
}

// GET /products/count
func (h *ProductHandler) GetProductCount(c *gin.Context) {
	count, err := h.catalogService.ProductCount()
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"count": count,
	})
}

// GET /products/:name
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.FindProduct(c.Param("name"))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
	})
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	product, err := h.catalogService.AddProduct(&req)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"product": product,
	})
}

// POST /products/:name/increase
func (h *ProductHandler) IncreaseQuantity(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	product, err := h.catalogService.IncreaseQuantity(c.Param("name"), req.Quantity)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
	})
}

// POST /products/:name/decrease
func (h *ProductHandler) DecreaseQuantity(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	product, err := h.catalogService.DecreaseQuantity(c.Param("name"), req.Quantity)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
	})
}
