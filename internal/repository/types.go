package repository

import "github.com/rarebeats-player/internal/models"

// ProductQuery 商品目录查询条件
type ProductQuery struct {
	Genre          string // 包含匹配，不区分大小写
	Mood           string
	Key            string
	Status         string // 为空时按 publish 处理
	Page           int
	PerPage        int
	WithVariations bool // 是否附带完整规格
}

// CatalogVariation 与平台无关的规格投影
type CatalogVariation struct {
	ID           uint
	ProductID    uint
	Description  string
	Price        models.Money
	RegularPrice models.Money
	Attributes   []models.VariationAttribute // 原始属性名（可能带 pa_ 前缀）
}

// CatalogProduct 与平台无关的商品投影
type CatalogProduct struct {
	ID           uint
	Name         string
	Slug         string
	Description  string
	Price        models.Money
	Type         string
	Status       string
	Genre        string
	BPM          string // 原始文本，由服务层解析
	Mood         string
	Key          string
	AudioURL     string
	ImageURL     string
	VariationIDs []uint
	Variations   []CatalogVariation // 仅 WithVariations 或 GetByID 时填充
}
