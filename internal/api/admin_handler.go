package api

import (
	"net/http"

	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/gin-gonic/gin"
)

type adminHandler struct {
	admin AdminService
	users UserService
}

type advanceOrderRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

func (h *adminHandler) listCarts(c *gin.Context) {
	page, err := pageFrom(c)
	if err != nil {
		fail(c, err)
		return
	}

	carts, info, err := h.admin.ListCarts(c.Request.Context(), page)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"carts": carts, "pagination": info})
}

func (h *adminHandler) getCart(c *gin.Context) {
	userID, err := uuidParam(c, "userId")
	if err != nil {
		fail(c, err)
		return
	}

	cart, err := h.admin.GetCart(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

func (h *adminHandler) clearCart(c *gin.Context) {
	userID, err := uuidParam(c, "userId")
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.admin.ClearCart(c.Request.Context(), userID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared successfully"})
}

func (h *adminHandler) cartStats(c *gin.Context) {
	stats, err := h.admin.CartStats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (h *adminHandler) listOrders(c *gin.Context) {
	page, err := pageFrom(c)
	if err != nil {
		fail(c, err)
		return
	}

	var status *domain.OrderStatus
	if raw := optionalQuery(c, "status"); raw != nil {
		value := domain.OrderStatus(*raw)
		status = &value
	}

	orders, info, err := h.admin.ListOrders(c.Request.Context(), status, page)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "pagination": info})
}

func (h *adminHandler) getOrder(c *gin.Context) {
	orderID, err := uuidParam(c, "orderId")
	if err != nil {
		fail(c, err)
		return
	}

	order, err := h.admin.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (h *adminHandler) cancelOrder(c *gin.Context) {
	orderID, err := uuidParam(c, "orderId")
	if err != nil {
		fail(c, err)
		return
	}

	order, err := h.admin.CancelOrder(c.Request.Context(), orderID, principal(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order": order})
}

func (h *adminHandler) advanceOrder(c *gin.Context) {
	orderID, err := uuidParam(c, "orderId")
	if err != nil {
		fail(c, err)
		return
	}

	var req advanceOrderRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	order, err := h.admin.AdvanceOrder(c.Request.Context(), orderID, req.Status)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully", "order": order})
}

func (h *adminHandler) listUsers(c *gin.Context) {
	page, err := pageFrom(c)
	if err != nil {
		fail(c, err)
		return
	}

	var role *domain.Role
	if raw := optionalQuery(c, "role"); raw != nil {
		value := domain.Role(*raw)
		role = &value
	}

	users, info, err := h.users.List(c.Request.Context(), domain.UserFilter{
		Role:   role,
		Search: optionalQuery(c, "search"),
		Page:   page,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "pagination": info})
}

func (h *adminHandler) getUser(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *adminHandler) updateUser(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	var patch domain.UserPatch
	if err := bindJSON(c, &patch); err != nil {
		fail(c, err)
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, patch, principal(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user": user})
}

func (h *adminHandler) deleteUser(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
