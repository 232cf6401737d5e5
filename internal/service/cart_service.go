package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rarebeats-player/internal/logger"
	"github.com/rarebeats-player/internal/models"
	"github.com/rarebeats-player/internal/repository"

	"github.com/shopspring/decimal"
)

// AddCartItemInput 加入购物车输入
type AddCartItemInput struct {
	ProductID   uint
	VariationID *uint
	Name        string
	LicenseType string
	Price       decimal.Decimal // 未取整的原始金额
	AudioURL    string
	ImageURL    string
}

// CartListResult 购物车快照
type CartListResult struct {
	Items []models.CartItem `json:"items"`
	Total models.Money      `json:"total"`
}

// CartService 暂存购物车服务（全局共享，每次调用独立提交）
type CartService struct {
	cartRepo repository.CartRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository) *CartService {
	return &CartService{cartRepo: cartRepo}
}

// Add 校验并写入一行，返回含生成 ID 的记录
func (s *CartService) Add(ctx context.Context, input AddCartItemInput) (*models.CartItem, error) {
	if err := validateCartItem(input); err != nil {
		return nil, err
	}
	var variationID *uint
	if input.VariationID != nil {
		id := *input.VariationID
		variationID = &id
	}
	item := &models.CartItem{
		ProductID:   input.ProductID,
		VariationID: variationID,
		Name:        strings.TrimSpace(input.Name),
		LicenseType: strings.TrimSpace(input.LicenseType),
		Price:       models.NewMoneyFromDecimal(input.Price),
		AudioURL:    strings.TrimSpace(input.AudioURL),
		ImageURL:    strings.TrimSpace(input.ImageURL),
	}
	if err := s.cartRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	logger.Infow("cart_item_added",
		"item_id", item.ID,
		"product_id", item.ProductID,
		"license_type", item.LicenseType,
		"price", item.Price.String(),
	)
	return item, nil
}

// List 返回全部行与价格合计
func (s *CartService) List(ctx context.Context) (*CartListResult, error) {
	items, err := s.cartRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return &CartListResult{Items: items, Total: SumCartItems(items)}, nil
}

// Remove 删除单行，不存在时返回 ErrCartItemNotFound
func (s *CartService) Remove(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrCartItemNotFound
	}
	affected, err := s.cartRepo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	logger.Infow("cart_item_removed", "item_id", id)
	return nil
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context) error {
	if err := s.cartRepo.Clear(ctx); err != nil {
		return err
	}
	logger.Infow("cart_cleared")
	return nil
}

// SumCartItems 价格合计（定点运算，与顺序无关）
func SumCartItems(items []models.CartItem) models.Money {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Decimal)
	}
	return models.NewMoneyFromDecimal(total)
}

// maxCartItemPrice 对应 decimal(10,2) 列的上限
var maxCartItemPrice = decimal.New(1, 8)

func validateCartItem(input AddCartItemInput) error {
	if input.ProductID == 0 {
		return fmt.Errorf("%w: product_id is required", ErrInvalidCartItem)
	}
	if input.VariationID != nil && *input.VariationID == 0 {
		return fmt.Errorf("%w: variation_id must be positive", ErrInvalidCartItem)
	}
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCartItem)
	}
	if strings.TrimSpace(input.LicenseType) == "" {
		return fmt.Errorf("%w: license_type is required", ErrInvalidCartItem)
	}
	if input.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidCartItem)
	}
	if !input.Price.Equal(input.Price.Round(2)) {
		return fmt.Errorf("%w: price must have at most 2 decimal places", ErrInvalidCartItem)
	}
	if input.Price.GreaterThanOrEqual(maxCartItemPrice) {
		return fmt.Errorf("%w: price must be below %s", ErrInvalidCartItem, maxCartItemPrice.String())
	}
	for field, raw := range map[string]string{"audio_url": input.AudioURL, "image_url": input.ImageURL} {
		if !isOptionalHTTPURL(raw) {
			return fmt.Errorf("%w: %s must be an http(s) url", ErrInvalidCartItem, field)
		}
	}
	return nil
}

func isOptionalHTTPURL(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return true
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
