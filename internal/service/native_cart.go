package service

import (
	"context"

	"github.com/rarebeats-player/internal/repository"
)

// NativeCart 商城平台自身的购物车（结账交接目标）
type NativeCart interface {
	Empty(ctx context.Context) error
	AddLine(ctx context.Context, productID uint, variationID *uint, quantity int) error
	CheckoutURL(ctx context.Context) (string, error)
}

// DatabaseNativeCart 数据库承载的原生购物车，结账地址固定为购物车页面
type DatabaseNativeCart struct {
	repo    repository.NativeCartRepository
	cartURL string
}

// NewDatabaseNativeCart 创建数据库原生购物车
func NewDatabaseNativeCart(repo repository.NativeCartRepository, cartURL string) *DatabaseNativeCart {
	return &DatabaseNativeCart{repo: repo, cartURL: cartURL}
}

// Empty 清空
func (c *DatabaseNativeCart) Empty(ctx context.Context) error {
	if c == nil || c.repo == nil {
		return ErrNativeCartUnavailable
	}
	return c.repo.Empty(ctx)
}

// AddLine 追加一行
func (c *DatabaseNativeCart) AddLine(ctx context.Context, productID uint, variationID *uint, quantity int) error {
	if c == nil || c.repo == nil {
		return ErrNativeCartUnavailable
	}
	return c.repo.AddLine(ctx, productID, variationID, quantity)
}

// CheckoutURL 返回购物车页面地址
func (c *DatabaseNativeCart) CheckoutURL(ctx context.Context) (string, error) {
	if c == nil || c.cartURL == "" {
		return "", ErrNativeCartUnavailable
	}
	return c.cartURL, nil
}
