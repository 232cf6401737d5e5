package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem 暂存购物车行（全局共享，无数量字段，不去重）
type CartItem struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`                  // 不透明唯一ID
	ProductID   uint      `gorm:"not null;index" json:"product_id"`                       // 商品ID
	VariationID *uint     `gorm:"index" json:"variation_id"`                              // 规格ID（可空）
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`                 // 展示名称
	LicenseType string    `gorm:"type:varchar(100);not null" json:"license_type"`         // 许可名称
	Price       Money     `gorm:"type:decimal(10,2);not null" json:"price"`               // 单价
	AudioURL    string    `gorm:"type:varchar(500);not null;default:''" json:"audio_url"` // 试听地址
	ImageURL    string    `gorm:"type:varchar(500);not null;default:''" json:"image_url"` // 封面地址
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                                // 创建时间
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}

// BeforeCreate 生成随机 UUID
func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
