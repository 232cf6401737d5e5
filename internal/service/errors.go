package service

import "errors"

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrCartItemNotFound      = errors.New("item not found")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrInvalidCartItem       = errors.New("invalid cart item")
	ErrInvalidProductFilter  = errors.New("invalid product filter")
	ErrNativeCartUnavailable = errors.New("native cart unavailable")
	ErrInvalidNonce          = errors.New("invalid nonce")
)
