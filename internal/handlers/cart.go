// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/webstore/backend/internal/services"
	"github.com/webstore/backend/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

type addToCartRequest struct {
	ProductName string  `json:"productName" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
}

// POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	user, err := h.cartService.AddToCart(userID, req.ProductName, req.Price)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"user": user,
	})
}

// DELETE /cart/items/:productName
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}

	user, err := h.cartService.RemoveFromCart(userID, c.Param("productName"))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"user": user,
	})
}

// POST /cart/checkout
func (h *CartHandler) Checkout(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}

	result, err := h.cartService.Checkout(userID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// GET /cart/total
func (h *CartHandler) CartTotal(c *gin.Context) {
	userID, ok := actingUserID(c)
	if !ok {
		return
	}

	total, err := h.cartService.CartTotal(userID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"total": total,
	})
}
