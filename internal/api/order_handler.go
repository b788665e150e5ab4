package api

import (
	"net/http"

	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/gin-gonic/gin"
)

type orderHandler struct {
	orders OrderService
}

type checkoutRequest struct {
	PaymentMethod   string                  `json:"payment_method" binding:"required"`
	ShippingAddress *domain.ShippingAddress `json:"shipping_address" binding:"required"`
	Notes           *string                 `json:"notes"`
}

func (h *orderHandler) list(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context(), principal(c).UserID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *orderHandler) get(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	order, err := h.orders.Get(c.Request.Context(), id, principal(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (h *orderHandler) checkout(c *gin.Context) {
	var req checkoutRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	order, err := h.orders.Checkout(c.Request.Context(), principal(c).UserID, domain.CheckoutRequest{
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: *req.ShippingAddress,
		Notes:           req.Notes,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Order created successfully", "order": order})
}

func (h *orderHandler) pay(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	order, err := h.orders.Pay(c.Request.Context(), id, principal(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment successful", "order": order})
}

func (h *orderHandler) cancel(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	order, err := h.orders.Cancel(c.Request.Context(), id, principal(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order": order})
}
