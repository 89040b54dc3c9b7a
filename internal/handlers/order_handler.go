package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
	"storefront/internal/service"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{service: svc}
}

// POST /api/orders
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req models.OrderRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err, "")
		return
	}

	order, err := h.service.Place(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "product")
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GET /api/admin/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.service.List(c.Request.Context(), models.OrderFilter{
		Status:   models.OrderStatus(c.Query("status")),
		Customer: c.Query("customer"),
	})
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// PATCH /api/admin/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := parseObjectID(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	var req models.OrderStatusRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err, "")
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err, "order")
		return
	}
	c.JSON(http.StatusOK, order)
}

// DELETE /api/admin/orders/:id
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, err := parseObjectID(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "order")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "order deleted successfully"})
}
