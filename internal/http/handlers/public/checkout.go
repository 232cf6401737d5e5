package public

import (
	"github.com/rarebeats-player/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CreateCheckout 把暂存购物车转入原生购物车并返回跳转地址
func (h *Handler) CreateCheckout(c *gin.Context) {
	result, err := h.CheckoutService.CreateCheckout(c.Request.Context())
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules)
		return
	}
	response.Success(c, result)
}
