package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// VariationAttribute 规格属性（有序名值对，首项为许可等级）
type VariationAttribute struct {
	Name   string `json:"name"`
	Option string `json:"option"`
}

// ProductVariation 商品规格（许可等级）表
type ProductVariation struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                       // 主键
	ProductID          uint           `gorm:"not null;index" json:"product_id"`                           // 父商品ID
	Description        string         `gorm:"type:text" json:"description"`                               // 规格说明
	PriceAmount        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`         // 售价
	RegularPriceAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"regular_price"` // 原价
	Attributes         datatypes.JSON `gorm:"type:json" json:"attributes"`                                // 有序属性 [{name, option}]
	Status             string         `gorm:"type:varchar(20);not null;default:'publish'" json:"status"`  // 状态
	MenuOrder          int            `gorm:"default:0;index" json:"menu_order"`                          // 展示顺序
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt          time.Time      `json:"updated_at"`                                                 // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间
}

// TableName 指定表名
func (ProductVariation) TableName() string {
	return "product_variations"
}

// AttributeList 解析有序属性
func (v *ProductVariation) AttributeList() ([]VariationAttribute, error) {
	if v == nil || len(v.Attributes) == 0 {
		return []VariationAttribute{}, nil
	}
	var attrs []VariationAttribute
	if err := json.Unmarshal(v.Attributes, &attrs); err != nil {
		return nil, err
	}
	return attrs, nil
}

// SetAttributes 写入有序属性
func (v *ProductVariation) SetAttributes(attrs []VariationAttribute) error {
	if attrs == nil {
		attrs = []VariationAttribute{}
	}
	raw, err := json.Marshal(attrs)
	if err != nil {
		return err
	}
	v.Attributes = datatypes.JSON(raw)
	return nil
}
