package public

import (
	"bytes"
	"net/http"

	"github.com/rarebeats-player/internal/http/response"
	"github.com/rarebeats-player/internal/logger"

	"github.com/gin-gonic/gin"
)

const htmlContentType = "text/html; charset=utf-8"

// GetEmbed 输出嵌入占位片段（含一次性资源注入）
func (h *Handler) GetEmbed(c *gin.Context) {
	h.renderEmbed(c, false)
}

// GetEmbedPage 输出独立宿主页面
func (h *Handler) GetEmbedPage(c *gin.Context) {
	h.renderEmbed(c, true)
}

func (h *Handler) renderEmbed(c *gin.Context, document bool) {
	nonce, err := h.NonceService.Issue()
	if err != nil {
		respondError(c, http.StatusInternalServerError, response.CodeInternal, "Failed to issue nonce", err)
		return
	}
	page := h.EmbedRenderer.NewPage(nonce)
	height := c.Query("height")

	var buf bytes.Buffer
	if document {
		err = page.RenderDocument(&buf, height)
	} else {
		err = page.RenderMarker(&buf, height)
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, response.CodeInternal, "Failed to render player", err)
		return
	}
	if h.EmbedRenderer.Assets().Empty() {
		logger.Debugw("embed_render_without_bundle")
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, htmlContentType, buf.Bytes())
}
