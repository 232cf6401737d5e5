package public

import "github.com/rarebeats-player/internal/provider"

// Handler 前台接口处理器入口
// 说明：目录、购物车、结账与嵌入页均由该处理器提供。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
