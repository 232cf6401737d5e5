package repository

import (
	"context"
	"fmt"

	"github.com/rarebeats-player/internal/models"

	"gorm.io/gorm"
)

// NativeCartRepository 原生结账购物车数据访问接口
type NativeCartRepository interface {
	Empty(ctx context.Context) error
	AddLine(ctx context.Context, productID uint, variationID *uint, quantity int) error
	Lines(ctx context.Context) ([]models.NativeCartLine, error)
}

// GormNativeCartRepository GORM 实现
type GormNativeCartRepository struct {
	db *gorm.DB
}

// NewNativeCartRepository 创建原生购物车仓库
func NewNativeCartRepository(db *gorm.DB) *GormNativeCartRepository {
	return &GormNativeCartRepository{db: db}
}

// Empty 清空原生购物车
func (r *GormNativeCartRepository) Empty(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.NativeCartLine{}).Error; err != nil {
		return fmt.Errorf("empty native cart: %w", err)
	}
	return nil
}

// AddLine 追加一行
func (r *GormNativeCartRepository) AddLine(ctx context.Context, productID uint, variationID *uint, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}
	line := &models.NativeCartLine{
		ProductID:   productID,
		VariationID: variationID,
		Quantity:    quantity,
	}
	if err := r.db.WithContext(ctx).Create(line).Error; err != nil {
		return fmt.Errorf("add native cart line: %w", err)
	}
	return nil
}

// Lines 列出原生购物车行
func (r *GormNativeCartRepository) Lines(ctx context.Context) ([]models.NativeCartLine, error) {
	var lines []models.NativeCartLine
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("list native cart lines: %w", err)
	}
	return lines, nil
}
