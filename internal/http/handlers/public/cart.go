package public

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/rarebeats-player/internal/http/response"
	"github.com/rarebeats-player/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

var cartItemIDPattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

// CartItemRequest 加入购物车请求
type CartItemRequest struct {
	ProductID   uint             `json:"product_id" binding:"required,gt=0"`
	VariationID *uint            `json:"variation_id"`
	Name        string           `json:"name" binding:"required"`
	LicenseType string           `json:"license_type" binding:"required"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	AudioURL    string           `json:"audio_url"`
	ImageURL    string           `json:"image_url"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	result, err := h.CartService.List(c.Request.Context())
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules)
		return
	}
	response.Success(c, result)
}

// AddToCart 加入购物车，每次调用新增一行
func (h *Handler) AddToCart(c *gin.Context) {
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, response.CodeInvalidCartItem, "Invalid cart item", err)
		return
	}
	item, err := h.CartService.Add(c.Request.Context(), service.AddCartItemInput{
		ProductID:   req.ProductID,
		VariationID: req.VariationID,
		Name:        req.Name,
		LicenseType: req.LicenseType,
		Price:       *req.Price,
		AudioURL:    req.AudioURL,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCartItem) {
			respondError(c, http.StatusBadRequest, response.CodeInvalidCartItem, err.Error(), nil)
			return
		}
		respondWithMappedError(c, err, cartErrorRules)
		return
	}
	response.Success(c, item)
}

// RemoveCartItem 删除单行
func (h *Handler) RemoveCartItem(c *gin.Context) {
	id := c.Param("id")
	if !cartItemIDPattern.MatchString(id) {
		response.NotFound(c, "Item not found")
		return
	}
	if err := h.CartService.Remove(c.Request.Context(), id); err != nil {
		respondWithMappedError(c, err, cartErrorRules)
		return
	}
	response.Message(c, "Item removed from cart")
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.CartService.Clear(c.Request.Context()); err != nil {
		respondWithMappedError(c, err, cartErrorRules)
		return
	}
	response.Message(c, "Cart cleared")
}
