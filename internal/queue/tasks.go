package queue

import (
	"encoding/json"

	"github.com/rarebeats-player/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCheckoutCreated 结账完成事件
	TaskCheckoutCreated = constants.TaskCheckoutCreated
)

// CheckoutCreatedPayload 结账完成任务载荷
type CheckoutCreatedPayload struct {
	CheckoutURL string   `json:"checkout_url"`
	ItemIDs     []string `json:"item_ids"` // 本次转入原生购物车的暂存行
	TotalItems  int      `json:"total_items"`
	Total       string   `json:"total"`
}

// NewCheckoutCreatedTask 创建结账完成任务
func NewCheckoutCreatedTask(payload CheckoutCreatedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCheckoutCreated, body), nil
}

// ParseCheckoutCreatedPayload 解析结账完成任务载荷
func ParseCheckoutCreatedPayload(body []byte) (CheckoutCreatedPayload, error) {
	var payload CheckoutCreatedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return CheckoutCreatedPayload{}, err
	}
	return payload, nil
}
