package service

import (
	"context"
	"sort"
	"strings"

	"github.com/rarebeats-player/internal/cache"
	"github.com/rarebeats-player/internal/constants"
	"github.com/rarebeats-player/internal/logger"
	"github.com/rarebeats-player/internal/models"
	"github.com/rarebeats-player/internal/repository"

	"golang.org/x/sync/errgroup"
)

// ImageView 商品图片
type ImageView struct {
	Src string `json:"src"`
}

// VariationView 规格（许可）输出
type VariationView struct {
	ID           uint                        `json:"id"`
	Price        models.Money                `json:"price"`
	RegularPrice models.Money                `json:"regular_price"`
	Description  string                      `json:"description,omitempty"`
	Attributes   []models.VariationAttribute `json:"attributes"`
}

// ProductView 商品输出
type ProductView struct {
	ID             uint            `json:"id"`
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	Description    string          `json:"description,omitempty"`
	Price          models.Money    `json:"price"`
	Type           string          `json:"type"`
	Status         string          `json:"status"`
	Genre          string          `json:"genre"`
	BPM            *int            `json:"bpm"`
	Mood           string          `json:"mood"`
	MusicKey       string          `json:"music_key"`
	AudioURL       string          `json:"audio_url"`
	Images         []ImageView     `json:"images"`
	Variations     []uint          `json:"variations"`
	VariationsData []VariationView `json:"variations_data,omitempty"`
}

// ProductListInput 商品列表查询参数
type ProductListInput struct {
	Genre             string
	Mood              string
	Key               string
	BPMMin            *int
	BPMMax            *int
	Page              int
	PerPage           int
	IncludeVariations bool
}

// ProductListResult 商品列表结果
type ProductListResult struct {
	Products []ProductView `json:"products"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
}

// BPMRange BPM 区间
type BPMRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FacetResult 可用筛选项
type FacetResult struct {
	Genres   []string `json:"genres"`
	Moods    []string `json:"moods"`
	Keys     []string `json:"keys"`
	BPMRange BPMRange `json:"bpm_range"`
}

// CatalogOptions 目录分页配置
type CatalogOptions struct {
	DefaultPerPage int
	MaxPerPage     int
}

// CatalogService 商品目录服务
type CatalogService struct {
	store          repository.ProductStore
	defaultPerPage int
	maxPerPage     int
}

// NewCatalogService 创建目录服务
func NewCatalogService(store repository.ProductStore, opts CatalogOptions) *CatalogService {
	defaultPerPage := opts.DefaultPerPage
	if defaultPerPage <= 0 {
		defaultPerPage = constants.DefaultPerPage
	}
	maxPerPage := opts.MaxPerPage
	if maxPerPage <= 0 {
		maxPerPage = constants.DefaultMaxPerPage
	}
	if defaultPerPage > maxPerPage {
		defaultPerPage = maxPerPage
	}
	return &CatalogService{
		store:          store,
		defaultPerPage: defaultPerPage,
		maxPerPage:     maxPerPage,
	}
}

// ListProducts 查询已发布商品，BPM 区间在取回后过滤
func (s *CatalogService) ListProducts(ctx context.Context, input ProductListInput) (*ProductListResult, error) {
	if input.BPMMin != nil && input.BPMMax != nil && *input.BPMMin > *input.BPMMax {
		return nil, ErrInvalidProductFilter
	}
	page := input.Page
	if page < 1 {
		page = 1
	}
	perPage := input.PerPage
	if perPage <= 0 {
		perPage = s.defaultPerPage
	}
	if perPage > s.maxPerPage {
		perPage = s.maxPerPage
	}

	items, err := s.store.Query(ctx, repository.ProductQuery{
		Genre:          input.Genre,
		Mood:           input.Mood,
		Key:            input.Key,
		Status:         constants.ProductStatusPublish,
		Page:           page,
		PerPage:        perPage,
		WithVariations: input.IncludeVariations,
	})
	if err != nil {
		return nil, err
	}

	products := make([]ProductView, 0, len(items))
	for i := range items {
		view := toProductView(&items[i], input.IncludeVariations)
		if !withinBPMBounds(view.BPM, input.BPMMin, input.BPMMax) {
			continue
		}
		products = append(products, view)
	}
	return &ProductListResult{
		Products: products,
		Total:    len(products),
		Page:     page,
	}, nil
}

// GetProduct 获取商品详情（附带规格）
func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*ProductView, error) {
	if id == 0 {
		return nil, ErrProductNotFound
	}
	item, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrProductNotFound
	}
	view := toProductView(item, true)
	if view.VariationsData == nil {
		view.VariationsData = []VariationView{}
	}
	return &view, nil
}

// ResolveVariations 解析商品的许可规格，不做缓存
func (s *CatalogService) ResolveVariations(ctx context.Context, productID uint) ([]VariationView, error) {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return product.VariationsData, nil
}

// GetFacets 计算可用筛选项，数据源失败时退回默认值
func (s *CatalogService) GetFacets(ctx context.Context) FacetResult {
	var cached FacetResult
	if hit, err := cache.GetCatalogFacets(ctx, &cached); err != nil {
		logger.Debugw("catalog_facets_cache_get_failed", "error", err)
	} else if hit {
		return cached
	}

	var (
		result FacetResult
		err    error
	)
	if source, ok := s.store.(repository.FacetSource); ok {
		result, err = s.facetsFromSource(ctx, source)
	} else {
		result, err = s.facetsFromScan(ctx)
	}
	if err != nil {
		logger.Warnw("catalog_facets_failed", "error", err)
		return defaultFacets()
	}
	if err := cache.SetCatalogFacets(ctx, result); err != nil {
		logger.Debugw("catalog_facets_cache_set_failed", "error", err)
	}
	return result
}

func (s *CatalogService) facetsFromSource(ctx context.Context, source repository.FacetSource) (FacetResult, error) {
	result := defaultFacets()
	var bpmValues []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		result.Genres, err = source.DistinctMeta(gctx, constants.MetaGenre)
		return err
	})
	g.Go(func() (err error) {
		result.Moods, err = source.DistinctMeta(gctx, constants.MetaMood)
		return err
	})
	g.Go(func() (err error) {
		result.Keys, err = source.DistinctMeta(gctx, constants.MetaKey)
		return err
	})
	g.Go(func() (err error) {
		bpmValues, err = source.BPMValues(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return FacetResult{}, err
	}
	result.Genres = sortedDistinct(result.Genres)
	result.Moods = sortedDistinct(result.Moods)
	result.Keys = sortedDistinct(result.Keys)
	result.BPMRange = bpmRange(bpmValues)
	return result, nil
}

func (s *CatalogService) facetsFromScan(ctx context.Context) (FacetResult, error) {
	items, err := s.store.Query(ctx, repository.ProductQuery{
		Status:  constants.ProductStatusPublish,
		Page:    1,
		PerPage: s.maxPerPage,
	})
	if err != nil {
		return FacetResult{}, err
	}
	var genres, moods, keys, bpms []string
	for _, item := range items {
		genres = append(genres, item.Genre)
		moods = append(moods, item.Mood)
		keys = append(keys, item.Key)
		bpms = append(bpms, item.BPM)
	}
	return FacetResult{
		Genres:   sortedDistinct(genres),
		Moods:    sortedDistinct(moods),
		Keys:     sortedDistinct(keys),
		BPMRange: bpmRange(bpms),
	}, nil
}

func defaultFacets() FacetResult {
	return FacetResult{
		Genres:   []string{},
		Moods:    []string{},
		Keys:     []string{},
		BPMRange: BPMRange{Min: constants.DefaultBPMMin, Max: constants.DefaultBPMMax},
	}
}

func sortedDistinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	sort.Strings(result)
	return result
}

func bpmRange(values []string) BPMRange {
	result := BPMRange{Min: constants.DefaultBPMMin, Max: constants.DefaultBPMMax}
	found := false
	for _, raw := range values {
		bpm := models.ParseBPM(raw)
		if bpm == nil {
			continue
		}
		if !found {
			result.Min, result.Max = *bpm, *bpm
			found = true
			continue
		}
		if *bpm < result.Min {
			result.Min = *bpm
		}
		if *bpm > result.Max {
			result.Max = *bpm
		}
	}
	return result
}

// withinBPMBounds 只有边界与商品 BPM 同时存在时才参与比较
func withinBPMBounds(bpm *int, lower, upper *int) bool {
	if bpm == nil {
		return true
	}
	if lower != nil && *bpm < *lower {
		return false
	}
	if upper != nil && *bpm > *upper {
		return false
	}
	return true
}

func toProductView(item *repository.CatalogProduct, withVariations bool) ProductView {
	view := ProductView{
		ID:          item.ID,
		Name:        item.Name,
		Slug:        item.Slug,
		Description: item.Description,
		Price:       item.Price,
		Type:        item.Type,
		Status:      item.Status,
		Genre:       item.Genre,
		BPM:         models.ParseBPM(item.BPM),
		Mood:        item.Mood,
		MusicKey:    item.Key,
		AudioURL:    item.AudioURL,
		Images:      []ImageView{},
		Variations:  append([]uint{}, item.VariationIDs...),
	}
	if strings.TrimSpace(item.ImageURL) != "" {
		view.Images = append(view.Images, ImageView{Src: item.ImageURL})
	}
	if withVariations {
		view.VariationsData = make([]VariationView, 0, len(item.Variations))
		for _, variation := range item.Variations {
			view.VariationsData = append(view.VariationsData, toVariationView(variation))
		}
	}
	return view
}

func toVariationView(variation repository.CatalogVariation) VariationView {
	attrs := make([]models.VariationAttribute, 0, len(variation.Attributes))
	for _, attr := range variation.Attributes {
		attrs = append(attrs, models.VariationAttribute{
			Name:   AttributeDisplayName(attr.Name),
			Option: attr.Option,
		})
	}
	return VariationView{
		ID:           variation.ID,
		Price:        variation.Price,
		RegularPrice: variation.RegularPrice,
		Description:  variation.Description,
		Attributes:   attrs,
	}
}
