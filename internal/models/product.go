package models

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Product 商品表（平台拥有，前台只读）
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                            // 主键
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`                          // 商品名称
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`                                // 唯一标识
	Description string         `gorm:"type:text" json:"description"`                                    // 描述
	PriceAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`              // 基础价格
	Type        string         `gorm:"type:varchar(20);not null;default:'simple';index" json:"type"`    // 类型（simple/variable）
	Status      string         `gorm:"type:varchar(20);not null;default:'publish';index" json:"status"` // 状态（publish/draft/private）
	ImageURL    string         `gorm:"type:varchar(1024)" json:"image_url"`                             // 主图地址
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                               // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                         // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                      // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                                  // 软删除时间

	// 关联
	Meta       []ProductMeta      `gorm:"foreignKey:ProductID" json:"meta,omitempty"`       // 键值属性
	Variations []ProductVariation `gorm:"foreignKey:ProductID" json:"variations,omitempty"` // 规格（许可）列表
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// MetaValue 读取指定键的属性值，不存在返回空串
func (p *Product) MetaValue(key string) string {
	if p == nil {
		return ""
	}
	for _, meta := range p.Meta {
		if meta.MetaKey == key {
			return meta.MetaValue
		}
	}
	return ""
}

// SetMeta 写入或覆盖属性值
func (p *Product) SetMeta(key, value string) {
	for i := range p.Meta {
		if p.Meta[i].MetaKey == key {
			p.Meta[i].MetaValue = value
			return
		}
	}
	p.Meta = append(p.Meta, ProductMeta{ProductID: p.ID, MetaKey: key, MetaValue: value})
}

// ParseBPM 将文本 BPM 解析为整数，空值或非数字返回 nil
func ParseBPM(raw string) *int {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	value, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil
	}
	return &value
}
