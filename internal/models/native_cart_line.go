package models

import "time"

// NativeCartLine 原生结账购物车行（代表商城平台自身的购物车）
type NativeCartLine struct {
	ID          uint      `gorm:"primarykey" json:"id"`               // 主键
	ProductID   uint      `gorm:"not null;index" json:"product_id"`   // 商品ID
	VariationID *uint     `json:"variation_id"`                       // 规格ID（可空）
	Quantity    int       `gorm:"not null;default:1" json:"quantity"` // 数量
	CreatedAt   time.Time `json:"created_at"`                         // 创建时间
}

// TableName 指定表名
func (NativeCartLine) TableName() string {
	return "native_cart_lines"
}
