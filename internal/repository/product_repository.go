package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rarebeats-player/internal/constants"
	"github.com/rarebeats-player/internal/models"

	"gorm.io/gorm"
)

// ProductStore 只读商品目录
type ProductStore interface {
	Query(ctx context.Context, query ProductQuery) ([]CatalogProduct, error)
	GetByID(ctx context.Context, id uint) (*CatalogProduct, error)
}

// FacetSource 可选能力：由数据源直接计算筛选项
type FacetSource interface {
	DistinctMeta(ctx context.Context, key string) ([]string, error)
	BPMValues(ctx context.Context) ([]string, error)
}

// ProductWriter 商品写入（仅种子数据使用）
type ProductWriter interface {
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Save(ctx context.Context, product *models.Product) error
}

// GormProductStore GORM 实现
type GormProductStore struct {
	db *gorm.DB
}

// NewProductStore 创建商品目录仓库
func NewProductStore(db *gorm.DB) *GormProductStore {
	return &GormProductStore{db: db}
}

var (
	_ ProductStore  = (*GormProductStore)(nil)
	_ FacetSource   = (*GormProductStore)(nil)
	_ ProductWriter = (*GormProductStore)(nil)
)

// Query 按属性过滤并分页查询商品
func (r *GormProductStore) Query(ctx context.Context, query ProductQuery) ([]CatalogProduct, error) {
	status := strings.TrimSpace(query.Status)
	if status == "" {
		status = constants.ProductStatusPublish
	}

	tx := r.db.WithContext(ctx).Model(&models.Product{}).
		Preload("Meta").
		Preload("Variations", publishedVariations).
		Where("status = ?", status)

	condition := metaLikeCondition(r.db)
	for _, filter := range []struct{ key, value string }{
		{constants.MetaGenre, query.Genre},
		{constants.MetaMood, query.Mood},
		{constants.MetaKey, query.Key},
	} {
		value := strings.TrimSpace(filter.value)
		if value == "" {
			continue
		}
		tx = tx.Where(condition, filter.key, containsPattern(value))
	}

	tx = applyPagination(tx, query.Page, query.PerPage)

	var products []models.Product
	if err := tx.Order("created_at DESC, id DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	result := make([]CatalogProduct, 0, len(products))
	for i := range products {
		item, err := toCatalogProduct(&products[i], query.WithVariations)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

// GetByID 获取任意未删除商品，附带完整规格
func (r *GormProductStore) GetByID(ctx context.Context, id uint) (*CatalogProduct, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Preload("Meta").
		Preload("Variations", publishedVariations).
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	item, err := toCatalogProduct(&product, true)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DistinctMeta 已发布商品某属性的去重非空取值（升序）
func (r *GormProductStore) DistinctMeta(ctx context.Context, key string) ([]string, error) {
	var values []string
	err := r.publishedMeta(ctx, key).
		Distinct("pm.meta_value").
		Order("pm.meta_value ASC").
		Pluck("pm.meta_value", &values).Error
	if err != nil {
		return nil, fmt.Errorf("distinct meta %s: %w", key, err)
	}
	return values, nil
}

// BPMValues 已发布商品的全部 BPM 原始值
func (r *GormProductStore) BPMValues(ctx context.Context) ([]string, error) {
	var values []string
	if err := r.publishedMeta(ctx, constants.MetaBPM).Pluck("pm.meta_value", &values).Error; err != nil {
		return nil, fmt.Errorf("bpm values: %w", err)
	}
	return values, nil
}

func (r *GormProductStore) publishedMeta(ctx context.Context, key string) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("product_meta AS pm").
		Joins("JOIN products ON products.id = pm.product_id AND products.deleted_at IS NULL").
		Where("products.status = ?", constants.ProductStatusPublish).
		Where("pm.meta_key = ? AND pm.meta_value <> ''", key)
}

// ExistsBySlug 判断 slug 是否已存在
func (r *GormProductStore) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save 创建商品及其属性、规格
func (r *GormProductStore) Save(ctx context.Context, product *models.Product) error {
	if product == nil {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(product).Error
	})
}

func publishedVariations(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", constants.ProductStatusPublish).Order("menu_order ASC, id ASC")
}

func toCatalogProduct(product *models.Product, withVariations bool) (CatalogProduct, error) {
	item := CatalogProduct{
		ID:           product.ID,
		Name:         product.Name,
		Slug:         product.Slug,
		Description:  product.Description,
		Price:        product.PriceAmount,
		Type:         product.Type,
		Status:       product.Status,
		Genre:        product.MetaValue(constants.MetaGenre),
		BPM:          product.MetaValue(constants.MetaBPM),
		Mood:         product.MetaValue(constants.MetaMood),
		Key:          product.MetaValue(constants.MetaKey),
		AudioURL:     product.MetaValue(constants.MetaAudioURL),
		ImageURL:     product.ImageURL,
		VariationIDs: make([]uint, 0, len(product.Variations)),
	}
	for i := range product.Variations {
		variation := &product.Variations[i]
		item.VariationIDs = append(item.VariationIDs, variation.ID)
		if !withVariations {
			continue
		}
		attrs, err := variation.AttributeList()
		if err != nil {
			return CatalogProduct{}, fmt.Errorf("decode variation %d attributes: %w", variation.ID, err)
		}
		item.Variations = append(item.Variations, CatalogVariation{
			ID:           variation.ID,
			ProductID:    variation.ProductID,
			Description:  variation.Description,
			Price:        variation.PriceAmount,
			RegularPrice: variation.RegularPriceAmount,
			Attributes:   attrs,
		})
	}
	return item, nil
}
