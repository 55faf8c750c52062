package handlers

import (
	"net/http"
	"strconv"

	"agromarket/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService services.OrderService
	hub          *EventHub
}

func NewOrderHandler(orderService services.OrderService, hub *EventHub) *OrderHandler {
	return &OrderHandler{orderService: orderService, hub: hub}
}

// POST /api/checkout
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, err := h.orderService.Checkout(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.hub != nil {
		h.hub.Broadcast("order_placed", order)
	}
	c.JSON(http.StatusCreated, order)
}

// GET /api/orders — consumer history
func (h *OrderHandler) MyOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orders, err := h.orderService.GetUserOrders(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GET /api/orders/:order_id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, err := h.orderService.GetOrderByID(userID, uint(orderID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// GET /api/farmer/orders — orders containing the farmer's products
func (h *OrderHandler) FarmerOrders(c *gin.Context) {
	farmerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orders, err := h.orderService.GetFarmerOrders(farmerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}
