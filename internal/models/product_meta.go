package models

// ProductMeta 商品键值属性表（genre/bpm/mood/key/audio_url）
type ProductMeta struct {
	ID        uint   `gorm:"primarykey" json:"id"`                                                        // 主键
	ProductID uint   `gorm:"not null;uniqueIndex:idx_product_meta_key" json:"product_id"`                 // 商品ID
	MetaKey   string `gorm:"type:varchar(64);not null;uniqueIndex:idx_product_meta_key;index" json:"key"` // 属性键
	MetaValue string `gorm:"type:varchar(1024);not null;default:''" json:"value"`                         // 属性值（文本存储）
}

// TableName 指定表名
func (ProductMeta) TableName() string {
	return "product_meta"
}
