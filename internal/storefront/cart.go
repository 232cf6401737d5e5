package storefront

import (
	"context"
	"fmt"
	"sort"

	"github.com/rarebeats-player/internal/logger"
)

// LicenseKey 许可选择键 "{productID}-{variationID}"
func LicenseKey(productID, variationID uint) string {
	return fmt.Sprintf("%d-%d", productID, variationID)
}

// ToggleLicense 切换许可选中状态，返回切换后是否选中
func (s *Session) ToggleLicense(productID uint, variation Variation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := LicenseKey(productID, variation.ID)
	if _, ok := s.selected[key]; ok {
		delete(s.selected, key)
		return false
	}
	s.selected[key] = variation
	return true
}

// IsLicenseSelected 许可是否选中
func (s *Session) IsLicenseSelected(productID, variationID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.selected[LicenseKey(productID, variationID)]
	return ok
}

// SelectedLicenses 已选许可键（有序）
func (s *Session) SelectedLicenses() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.selected))
	for key := range s.selected {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// LicenseOptions 商品的许可规格：优先使用列表内嵌数据，否则请求详情，不做缓存
func (s *Session) LicenseOptions(ctx context.Context, product Product) ([]Variation, error) {
	if len(product.VariationsData) > 0 {
		return product.VariationsData, nil
	}
	if len(product.Variations) == 0 {
		return []Variation{}, nil
	}
	detail, err := s.api.GetProduct(ctx, product.ID)
	if err != nil {
		logger.Warnw("storefront_load_variations_failed", "product_id", product.ID, "error", err)
		return nil, err
	}
	if detail.VariationsData == nil {
		return []Variation{}, nil
	}
	return detail.VariationsData, nil
}

// AddToCart 加入购物车后重新拉取快照，并取消该许可的选中
func (s *Session) AddToCart(ctx context.Context, product Product, variation Variation) error {
	variationID := variation.ID
	label := variation.LicenseLabel()
	item := AddCartItem{
		ProductID:   product.ID,
		VariationID: &variationID,
		Name:        product.Name,
		LicenseType: label,
		Price:       variation.Price,
		AudioURL:    product.AudioURL,
		ImageURL:    product.ImageSrc(),
	}
	if _, err := s.api.AddToCart(ctx, item); err != nil {
		logger.Warnw("storefront_add_to_cart_failed", "product_id", product.ID, "variation_id", variation.ID, "error", err)
		s.notifier.Error("Failed to add to cart")
		return err
	}
	if err := s.refreshCart(ctx); err != nil {
		logger.Warnw("storefront_load_cart_failed", "error", err)
	}
	s.notifier.Success(label + " added to cart")

	s.mu.Lock()
	delete(s.selected, LicenseKey(product.ID, variation.ID))
	s.mu.Unlock()
	return nil
}

// RemoveFromCart 删除单行后重新拉取快照
func (s *Session) RemoveFromCart(ctx context.Context, itemID string) error {
	if err := s.api.RemoveFromCart(ctx, itemID); err != nil {
		logger.Warnw("storefront_remove_from_cart_failed", "item_id", itemID, "error", err)
		s.notifier.Error("Failed to remove from cart")
		return err
	}
	if err := s.refreshCart(ctx); err != nil {
		logger.Warnw("storefront_load_cart_failed", "error", err)
	}
	s.notifier.Success("Removed from cart")
	return nil
}

// ClearCart 清空购物车后重新拉取快照
func (s *Session) ClearCart(ctx context.Context) error {
	if err := s.api.ClearCart(ctx); err != nil {
		logger.Warnw("storefront_clear_cart_failed", "error", err)
		s.notifier.Error("Failed to clear cart")
		return err
	}
	if err := s.refreshCart(ctx); err != nil {
		logger.Warnw("storefront_load_cart_failed", "error", err)
	}
	s.notifier.Success("Cart cleared")
	return nil
}

// Checkout 创建结账并跳转，本地快照为空时不发请求
func (s *Session) Checkout(ctx context.Context) (*CheckoutResult, error) {
	if s.CartCount() == 0 {
		s.notifier.Error("Your cart is empty")
		return nil, ErrCartEmpty
	}
	result, err := s.api.Checkout(ctx)
	if err != nil {
		logger.Warnw("storefront_checkout_failed", "error", err)
		s.notifier.Error("Failed to proceed to checkout")
		return nil, err
	}
	if s.navigator != nil {
		if err := s.navigator.Navigate(result.CheckoutURL); err != nil {
			return result, err
		}
	}
	return result, nil
}
