package service

import (
	"context"
	"fmt"

	"github.com/rarebeats-player/internal/logger"
	"github.com/rarebeats-player/internal/queue"
	"github.com/rarebeats-player/internal/repository"
)

// CheckoutResult 结账交接结果
type CheckoutResult struct {
	CheckoutURL string `json:"checkout_url"`
	TotalItems  int    `json:"total_items"`
}

// CheckoutService 把暂存购物车转入原生购物车
type CheckoutService struct {
	cartRepo    repository.CartRepository
	nativeCart  NativeCart
	queueClient *queue.Client
}

// NewCheckoutService 创建结账服务
func NewCheckoutService(cartRepo repository.CartRepository, nativeCart NativeCart, queueClient *queue.Client) *CheckoutService {
	return &CheckoutService{
		cartRepo:    cartRepo,
		nativeCart:  nativeCart,
		queueClient: queueClient,
	}
}

// CreateCheckout 重置原生购物车并逐行转入；暂存购物车保持不变
func (s *CheckoutService) CreateCheckout(ctx context.Context) (*CheckoutResult, error) {
	items, err := s.cartRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if s.nativeCart == nil {
		return nil, ErrNativeCartUnavailable
	}

	if err := s.nativeCart.Empty(ctx); err != nil {
		return nil, fmt.Errorf("reset native cart: %w", err)
	}
	itemIDs := make([]string, 0, len(items))
	for _, item := range items {
		if err := s.nativeCart.AddLine(ctx, item.ProductID, item.VariationID, 1); err != nil {
			return nil, fmt.Errorf("transfer cart item %s: %w", item.ID, err)
		}
		itemIDs = append(itemIDs, item.ID)
	}
	checkoutURL, err := s.nativeCart.CheckoutURL(ctx)
	if err != nil {
		return nil, err
	}

	result := &CheckoutResult{CheckoutURL: checkoutURL, TotalItems: len(items)}
	total := SumCartItems(items)
	logger.Infow("checkout_created", "total_items", result.TotalItems, "total", total.String())

	if err := s.queueClient.EnqueueCheckoutCreated(queue.CheckoutCreatedPayload{
		CheckoutURL: checkoutURL,
		ItemIDs:     itemIDs,
		TotalItems:  result.TotalItems,
		Total:       total.String(),
	}); err != nil {
		logger.Warnw("checkout_created_enqueue_failed", "error", err)
	}
	return result, nil
}
