package woocommerce

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

type cartLine struct {
	productID   uint
	variationID *uint
	quantity    int
}

// LinkCart 以 add-to-cart 链接承载的原生购物车
// 结账时由浏览器打开链接，平台据此填充自身购物车
type LinkCart struct {
	mu      sync.Mutex
	cartURL string
	lines   []cartLine
}

// NewLinkCart 创建链接购物车，cartURL 形如 https://shop.example.com/cart/
func NewLinkCart(cartURL string) *LinkCart {
	return &LinkCart{cartURL: strings.TrimSpace(cartURL)}
}

// Empty 清空已累积的行
func (c *LinkCart) Empty(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	return nil
}

// AddLine 追加一行
func (c *LinkCart) AddLine(ctx context.Context, productID uint, variationID *uint, quantity int) error {
	if productID == 0 {
		return fmt.Errorf("woocommerce link cart: product id required")
	}
	if quantity <= 0 {
		quantity = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, cartLine{productID: productID, variationID: variationID, quantity: quantity})
	return nil
}

// CheckoutURL 生成 {cart}?add-to-cart=P&variation_id=V&... 链接
func (c *LinkCart) CheckoutURL(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.lines) == 0 {
		return c.cartURL, nil
	}
	params := make([]string, 0, len(c.lines))
	for _, line := range c.lines {
		param := fmt.Sprintf("add-to-cart=%d", line.productID)
		if line.variationID != nil && *line.variationID > 0 {
			param += fmt.Sprintf("&variation_id=%d", *line.variationID)
		}
		if line.quantity > 1 {
			param += fmt.Sprintf("&quantity=%d", line.quantity)
		}
		params = append(params, param)
	}
	separator := "?"
	if strings.Contains(c.cartURL, "?") {
		separator = "&"
	}
	return c.cartURL + separator + strings.Join(params, "&"), nil
}
