package api

import (
	"net/http"

	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type cartHandler struct {
	carts CartService
}

type addItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type cartResponse struct {
	domain.Cart
	Total domain.Money `json:"total"`
}

func (h *cartHandler) get(c *gin.Context) {
	cart, err := h.carts.Get(c.Request.Context(), principal(c).UserID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cartResponse{Cart: cart, Total: cart.Total(h.carts.Currency())}})
}

func (h *cartHandler) addItem(c *gin.Context) {
	var req addItemRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	item, err := h.carts.AddItem(c.Request.Context(), principal(c).UserID, req.ProductID, req.Quantity)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item added to cart successfully", "item": item})
}

func (h *cartHandler) updateItem(c *gin.Context) {
	itemID, err := uuidParam(c, "item_id")
	if err != nil {
		fail(c, err)
		return
	}

	var req updateItemRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	if err := h.carts.UpdateItem(c.Request.Context(), principal(c).UserID, itemID, req.Quantity); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart item updated successfully"})
}

func (h *cartHandler) removeItem(c *gin.Context) {
	itemID, err := uuidParam(c, "item_id")
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.carts.RemoveItem(c.Request.Context(), principal(c).UserID, itemID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart successfully"})
}

func (h *cartHandler) clear(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context(), principal(c).UserID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared successfully"})
}
