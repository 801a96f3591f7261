package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/printshop-task-api/internal/derivation"
	"github.com/yukikurage/printshop-task-api/internal/dto"
	apierrors "github.com/yukikurage/printshop-task-api/internal/errors"
	"github.com/yukikurage/printshop-task-api/internal/middleware"
	"github.com/yukikurage/printshop-task-api/internal/models"
	"github.com/yukikurage/printshop-task-api/internal/services"
	"github.com/yukikurage/printshop-task-api/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// CreateOrderRequest is the request body for placing an order
type CreateOrderRequest struct {
	CustomerName string             `json:"customer_name" binding:"required"`
	Items        []dto.OrderItemDTO `json:"items" binding:"required,min=1,dive"`
	DeliveryDate string             `json:"delivery_date"`
	Notes        string             `json:"notes"`
}

// UpdateOrderStatusRequest is the request body for moving an order along its lifecycle
type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// CreateOrder stores an order and derives its production tasks
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.orderService.CreateOrder(c.Request.Context(), services.CreateOrderInput{
		CustomerName: req.CustomerName,
		Items:        dto.ToOrderItems(req.Items),
		DeliveryDate: req.DeliveryDate,
		Notes:        req.Notes,
	})
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order":       dto.ToOrderDTO(*result.Order),
		"diagnostics": nonNilDiagnostics(result.Diagnostics),
	})
}

// ListOrders returns a page of orders, optionally filtered by status
func (h *OrderHandler) ListOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := services.ListOrdersInput{
		Page:     params.Page,
		PageSize: params.Limit,
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := models.OrderStatus(statusStr)
		input.Status = &status
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), input)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaginatedResponse[dto.OrderListItemDTO]{
		Data: dto.ToOrderListItems(orders),
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetOrder returns an order with its task forest
// Order is already loaded by the LoadOrder middleware
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, ok := middleware.GetOrder(c)
	if !ok {
		apierrors.InternalError(c, "Order not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderDTO(order))
}

// UpdateOrderStatus changes an order's lifecycle status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderDTO(*order))
}

// DeleteOrder removes an order and its tasks
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.orderService.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

// PreviewOrderTasks derives a fresh task forest for an order without saving it
func (h *OrderHandler) PreviewOrderTasks(c *gin.Context) {
	result, err := h.orderService.PreviewOrderTasks(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDerivationDTO(*result))
}

func respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		apierrors.NotFound(c, "Order not found")
	case errors.Is(err, services.ErrCustomerNameRequired),
		errors.Is(err, services.ErrOrderItemsRequired),
		errors.Is(err, services.ErrOrderItemProductMissed),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidOrderStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidStatusChange):
		apierrors.InvalidOperation(c, err.Error())
	default:
		log.Printf("order request failed: %v", err)
		apierrors.InternalError(c, "Internal server error")
	}
}

func nonNilDiagnostics(diags []derivation.Diagnostic) []derivation.Diagnostic {
	if diags == nil {
		return []derivation.Diagnostic{}
	}
	return diags
}
