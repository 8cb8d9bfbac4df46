// internal/handlers/favorite.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/web-prodavnica/backend/internal/i18n"
	"github.com/web-prodavnica/backend/internal/services"
	"github.com/web-prodavnica/backend/internal/utils"
)

type FavoriteHandler struct {
	favoriteService *services.FavoriteService
}

func NewFavoriteHandler(favoriteService *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
	}
}

// GET /favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	products, err := h.favoriteService.List(c.Request.Context(), userID, utils.GetLangFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"products": products,
	})
}

// GET /favorites/:productId
func (h *FavoriteHandler) Check(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	productID, ok := utils.ParseIDParam(c, "productId")
	if !ok {
		return
	}

	favorite, err := h.favoriteService.IsFavorite(c.Request.Context(), userID, productID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"favorite": favorite,
	})
}

// POST /favorites/:productId
func (h *FavoriteHandler) Add(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	productID, ok := utils.ParseIDParam(c, "productId")
	if !ok {
		return
	}

	if err := h.favoriteService.Add(c.Request.Context(), userID, productID); err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFavoriteAdded),
	})
}

// DELETE /favorites/:productId
func (h *FavoriteHandler) Remove(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	productID, ok := utils.ParseIDParam(c, "productId")
	if !ok {
		return
	}

	if err := h.favoriteService.Remove(c.Request.Context(), userID, productID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFavoriteRemoved),
	})
}
