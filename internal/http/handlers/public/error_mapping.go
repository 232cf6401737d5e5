package public

import (
	"errors"
	"net/http"

	"github.com/rarebeats-player/internal/http/response"
	"github.com/rarebeats-player/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target  error
	status  int
	code    string
	message string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.status, rule.code, rule.message, nil)
			return
		}
	}
	respondError(c, http.StatusInternalServerError, response.CodeInternal, "Internal server error", err)
}

var productErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, status: http.StatusNotFound, code: response.CodeNotFound, message: "Product not found"},
	{target: service.ErrInvalidProductFilter, status: http.StatusBadRequest, code: response.CodeInvalidParam, message: "bpm_min must not exceed bpm_max"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrCartItemNotFound, status: http.StatusNotFound, code: response.CodeNotFound, message: "Item not found"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrEmptyCart, status: http.StatusBadRequest, code: response.CodeEmptyCart, message: "Cart is empty"},
	{target: service.ErrNativeCartUnavailable, status: http.StatusServiceUnavailable, code: response.CodeUnavailable, message: "Checkout is not available"},
}
