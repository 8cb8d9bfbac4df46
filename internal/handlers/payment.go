// internal/handlers/payment.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/web-prodavnica/backend/internal/i18n"
	"github.com/web-prodavnica/backend/internal/services"
	"github.com/web-prodavnica/backend/internal/utils"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// POST /checkout
func (h *PaymentHandler) CreateCheckout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	session, err := h.paymentService.CreateCheckout(c.Request.Context(), userID, lang)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPaymentSessionCreated),
		"session": session,
	})
}

// POST /checkout/complete
func (h *PaymentHandler) CompleteCheckout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.CompleteCheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.paymentService.CompleteCheckout(c.Request.Context(), userID, &req, lang)
	if err != nil {
		respondError(c, err)
		return
	}

	body := gin.H{
		"message":  i18n.T(lang, i18n.KeyPaymentCompleted),
		"order":    result.Order,
		"total":    result.Total,
		"warnings": result.Warnings,
		"replayed": result.Replayed,
	}
	if result.Replayed {
		utils.SuccessResponse(c, body)
		return
	}
	utils.CreatedResponse(c, body)
}
