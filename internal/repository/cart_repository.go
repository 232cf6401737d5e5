package repository

import (
	"context"
	"fmt"

	"github.com/rarebeats-player/internal/models"

	"gorm.io/gorm"
)

// CartRepository 暂存购物车数据访问接口
type CartRepository interface {
	Create(ctx context.Context, item *models.CartItem) error
	List(ctx context.Context) ([]models.CartItem, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
	Clear(ctx context.Context) error
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// Create 新增购物车行
func (r *GormCartRepository) Create(ctx context.Context, item *models.CartItem) error {
	if item == nil {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("create cart item: %w", err)
	}
	return nil
}

// List 按加入时间顺序列出购物车行
func (r *GormCartRepository) List(ctx context.Context) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	return items, nil
}

// DeleteByID 删除单行，返回影响行数
func (r *GormCartRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CartItem{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete cart item %s: %w", id, result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteByIDs 批量删除指定行
func (r *GormCartRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.CartItem{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete cart items: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Clear 清空购物车
func (r *GormCartRepository) Clear(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
