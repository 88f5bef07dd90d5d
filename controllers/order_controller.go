package controllers

import (
	"net/http"

	"storefront-backend/models"
	"storefront-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderController handles HTTP requests for order operations.
type OrderController struct {
	orderService services.OrderService
}

// NewOrderController creates a new OrderController.
func NewOrderController(orderService services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// ListOrders handles GET /api/orders with an optional status filter.
func (oc *OrderController) ListOrders(ctx *gin.Context) {
	status := ctx.Query("status")
	limit, offset := parseLimitOffset(ctx)

	orders, total, svcErr := oc.orderService.ListOrders(ctx.Request.Context(), status, limit, offset)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"orders": orders, "total": total})
}

// GetOrder handles GET /api/orders/:id. The path value may be an order id
// or an order number such as ORD-1756227123456042.
func (oc *OrderController) GetOrder(ctx *gin.Context) {
	idOrNumber := ctx.Param("id")

	order, svcErr := oc.orderService.GetOrder(ctx.Request.Context(), idOrNumber)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, order)
}

// CreateOrder handles POST /api/orders.
func (oc *OrderController) CreateOrder(ctx *gin.Context) {
	var req models.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, svcErr := oc.orderService.CreateOrder(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, order)
}

// UpdateOrderStatus handles PUT /api/orders/:id/status. The status value is
// stored verbatim; there is no transition check.
func (oc *OrderController) UpdateOrderStatus(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	svcErr := oc.orderService.UpdateOrderStatus(ctx.Request.Context(), id, req.Status)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
}
