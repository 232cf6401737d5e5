package response

// 错误码（REST 风格的机器可读错误类型）
const (
	CodeNotFound        = "not_found"
	CodeNoRoute         = "rest_no_route"
	CodeEmptyCart       = "empty_cart"
	CodeInvalidCartItem = "invalid_cart_item"
	CodeInvalidParam    = "rest_invalid_param"
	CodeInvalidNonce    = "rest_cookie_invalid_nonce"
	CodeForbidden       = "rest_forbidden"
	CodeTooManyRequests = "too_many_requests"
	CodeUnavailable     = "service_unavailable"
	CodeInternal        = "internal_error"
)
