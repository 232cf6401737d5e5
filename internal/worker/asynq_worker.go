package worker

import (
	"context"

	"github.com/rarebeats-player/internal/logger"
	"github.com/rarebeats-player/internal/provider"
	"github.com/rarebeats-player/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCheckoutCreated, c.handleCheckoutCreated)
}

// handleCheckoutCreated 记录结账交接；按配置移除已转入原生购物车的暂存行
func (c *Consumer) handleCheckoutCreated(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_checkout_created_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseCheckoutCreatedPayload(task.Payload())
	if err != nil {
		logger.Warnw("worker_checkout_created_unmarshal_failed", "error", err)
		return err
	}
	logger.Infow("worker_checkout_created",
		"checkout_url", payload.CheckoutURL,
		"total_items", payload.TotalItems,
		"total", payload.Total,
	)

	if c.Config == nil || !c.Config.Checkout.ClearStagingAfterCheckout {
		return nil
	}
	if len(payload.ItemIDs) == 0 {
		logger.Debugw("worker_checkout_created_skip_empty_items")
		return nil
	}
	if c.CartRepo == nil {
		logger.Warnw("worker_checkout_created_skip_cart_repo_nil")
		return nil
	}
	removed, err := c.CartRepo.DeleteByIDs(ctx, payload.ItemIDs)
	if err != nil {
		logger.Warnw("worker_checkout_created_clear_staging_failed", "item_ids", payload.ItemIDs, "error", err)
		return err
	}
	logger.Infow("worker_checkout_created_staging_cleared", "removed", removed)
	return nil
}
