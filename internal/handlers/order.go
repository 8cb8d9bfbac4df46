// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/web-prodavnica/backend/internal/i18n"
	"github.com/web-prodavnica/backend/internal/models"
	"github.com/web-prodavnica/backend/internal/orders"
	"github.com/web-prodavnica/backend/internal/services"
	"github.com/web-prodavnica/backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func placedResponse(c *gin.Context, result *orders.PlaceOrderResult) {
	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(utils.GetLangFromContext(c), i18n.KeyOrderPlaced),
		"order":    result.Order,
		"total":    result.Total,
		"warnings": result.Warnings,
	})
}

// POST /orders
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.PlaceOrderRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	result, err := h.orderService.PlaceOrder(c.Request.Context(), userID, &req, utils.GetLangFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	placedResponse(c, result)
}

// GET /orders
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c)

	list, total, err := h.orderService.ListUserOrders(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(list, total, params))
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id, userID, isAdmin(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order": order,
	})
}

// GET /admin/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	params := services.OrderSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
		Status:           models.OrderStatus(c.Query("status")),
	}
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyValidationID), nil)
			return
		}
		params.UserID = &userID
	}

	list, total, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(list, total, params.PaginationParams))
}

// POST /admin/orders
func (h *OrderHandler) AdminCreateOrder(c *gin.Context) {
	var req services.AdminCreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.orderService.AdminCreateOrder(c.Request.Context(), &req, utils.GetLangFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	placedResponse(c, result)
}

// PUT /admin/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderStatusUpdated),
		"order":   order,
	})
}

// DELETE /admin/orders/:id
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderDeleted),
	})
}
