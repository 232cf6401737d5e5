package public

import (
	"net/http"

	"github.com/rarebeats-player/internal/http/handlers/shared"
	"github.com/rarebeats-player/internal/http/response"
	"github.com/rarebeats-player/internal/service"

	"github.com/gin-gonic/gin"
)

// GetIndex 命名空间根
func (h *Handler) GetIndex(c *gin.Context) {
	response.Message(c, "RareBeats API")
}

// GetProducts 商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	input := service.ProductListInput{
		Genre:             c.Query("genre"),
		Mood:              c.Query("mood"),
		Key:               c.Query("key"),
		IncludeVariations: shared.QueryBool(c, "include_variations"),
	}
	for _, param := range []struct {
		name   string
		target **int
	}{
		{"bpm_min", &input.BPMMin},
		{"bpm_max", &input.BPMMax},
	} {
		value, ok := shared.QueryOptionalInt(c, param.name)
		if !ok {
			respondError(c, http.StatusBadRequest, response.CodeInvalidParam, "Invalid parameter: "+param.name, nil)
			return
		}
		*param.target = value
	}
	page, ok := shared.QueryOptionalInt(c, "page")
	if !ok {
		respondError(c, http.StatusBadRequest, response.CodeInvalidParam, "Invalid parameter: page", nil)
		return
	}
	if page != nil {
		input.Page = *page
	}
	perPage, ok := shared.QueryOptionalInt(c, "per_page")
	if !ok {
		respondError(c, http.StatusBadRequest, response.CodeInvalidParam, "Invalid parameter: per_page", nil)
		return
	}
	if perPage != nil {
		input.PerPage = *perPage
	}

	result, err := h.CatalogService.ListProducts(c.Request.Context(), input)
	if err != nil {
		respondWithMappedError(c, err, productErrorRules)
		return
	}
	response.Success(c, result)
}

// GetProduct 商品详情（含已解析的许可规格）
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := shared.ParamUint(c, "id")
	if !ok {
		response.NotFound(c, "Product not found")
		return
	}
	product, err := h.CatalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondWithMappedError(c, err, productErrorRules)
		return
	}
	response.Success(c, product)
}

// GetFilters 可用筛选项
func (h *Handler) GetFilters(c *gin.Context) {
	response.Success(c, h.CatalogService.GetFacets(c.Request.Context()))
}
