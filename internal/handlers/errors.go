// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/web-prodavnica/backend/internal/i18n"
	"github.com/web-prodavnica/backend/internal/models"
	"github.com/web-prodavnica/backend/internal/orders"
	"github.com/web-prodavnica/backend/internal/services"
	"github.com/web-prodavnica/backend/internal/utils"
)

type errorMapping struct {
	err    error
	status int
	code   string
	key    string
}

var errorMappings = []errorMapping{
	{services.ErrProductNotFound, http.StatusNotFound, "NOT_FOUND", i18n.KeyProductNotFound},
	{services.ErrProductInUse, http.StatusConflict, "CONFLICT", i18n.KeyProductInUse},
	{services.ErrInvalidPrice, http.StatusBadRequest, "VALIDATION_ERROR", i18n.KeyProductBadPrice},
	{services.ErrCartItemNotFound, http.StatusNotFound, "NOT_FOUND", i18n.KeyCartItemNotFound},
	{services.ErrCartEmpty, http.StatusBadRequest, "CART_EMPTY", i18n.KeyCartEmpty},
	{services.ErrAlreadyFavorite, http.StatusConflict, "CONFLICT", i18n.KeyFavoriteExists},
	{services.ErrFavoriteNotFound, http.StatusNotFound, "NOT_FOUND", i18n.KeyFavoriteNotFound},
	{services.ErrOrderNotFound, http.StatusNotFound, "NOT_FOUND", i18n.KeyOrderNotFound},
	{services.ErrUnknownStatus, http.StatusBadRequest, "VALIDATION_ERROR", i18n.KeyOrderUnknownStatus},
	{services.ErrUserNotFound, http.StatusNotFound, "NOT_FOUND", i18n.KeyUserNotFound},
	{services.ErrEmailTaken, http.StatusConflict, "CONFLICT", i18n.KeyAuthUserExists},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED", i18n.KeyAuthInvalidCredentials},
	{services.ErrWrongPassword, http.StatusUnauthorized, "UNAUTHORIZED", i18n.KeyUserWrongPassword},
	{services.ErrUserHasOrders, http.StatusConflict, "CONFLICT", i18n.KeyUserHasOrders},
	{services.ErrCannotDeleteSelf, http.StatusBadRequest, "BAD_REQUEST", i18n.KeyAdminCannotDeleteSelf},
	{services.ErrDeliveryNotFound, http.StatusNotFound, "NOT_FOUND", i18n.KeyDeliveryNotFound},
	{services.ErrInvalidCheckout, http.StatusBadRequest, "INVALID_CHECKOUT", i18n.KeyPaymentInvalidSession},
	{services.ErrAmountMismatch, http.StatusConflict, "AMOUNT_MISMATCH", i18n.KeyPaymentAmountMismatch},
}

// respondError writes the response for an error returned by a service.
func respondError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	if oe, ok := orders.AsError(err); ok {
		respondOrderError(c, oe)
		return
	}

	if utils.IsValidationError(err) {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	var transition *services.TransitionError
	if errors.As(err, &transition) {
		utils.ErrorResponse(c, http.StatusConflict, "INVALID_STATUS_TRANSITION",
			i18n.T(lang, i18n.KeyOrderInvalidStatus, transition.From, transition.To), nil)
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			utils.ErrorResponse(c, m.status, m.code, i18n.T(lang, m.key), nil)
			return
		}
	}

	logrus.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.FullPath(),
	}).Error("Request failed")
	utils.InternalErrorResponse(c, "")
}

func respondOrderError(c *gin.Context, oe *orders.Error) {
	lang := utils.GetLangFromContext(c)

	switch oe.Kind {
	case orders.KindInvalidRequest:
		utils.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR",
			i18n.T(lang, i18n.KeyValidationInvalid, "order"), gin.H{"reason": oe.Message})
	case orders.KindProductNotFound:
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND",
			i18n.T(lang, i18n.KeyProductNotFound), gin.H{"product_id": oe.ProductID})
	case orders.KindInsufficientStock:
		utils.OutOfStockResponse(c,
			i18n.T(lang, i18n.KeyProductOutOfStock, oe.ProductID, oe.Requested, oe.Available),
			gin.H{
				"product_id": oe.ProductID,
				"requested":  oe.Requested,
				"available":  oe.Available,
			})
	default:
		logrus.WithError(oe).WithField("path", c.FullPath()).Error("Order persistence failed")
		utils.RetryableResponse(c)
	}
}

// bindJSON decodes and validates the body into req, answering 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	lang := utils.GetLangFromContext(c)

	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}

// currentUser returns the authenticated user's id, answering 401 when absent.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
	}
	return id, ok
}

func isAdmin(c *gin.Context) bool {
	role, _ := utils.GetUserRoleFromContext(c)
	return role == string(models.UserRoleAdmin)
}
