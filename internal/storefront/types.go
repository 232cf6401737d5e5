package storefront

import (
	"github.com/shopspring/decimal"
)

// Image 商品图片
type Image struct {
	Src string `json:"src"`
}

// Attribute 规格属性
type Attribute struct {
	Name   string `json:"name"`
	Option string `json:"option"`
}

// Variation 许可规格
type Variation struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name,omitempty"`
	Price        decimal.Decimal `json:"price"`
	RegularPrice decimal.Decimal `json:"regular_price"`
	Attributes   []Attribute     `json:"attributes"`
}

// LicenseLabel 许可名称：首个属性值，其次规格名，最后为 "License"
func (v Variation) LicenseLabel() string {
	if len(v.Attributes) > 0 && v.Attributes[0].Option != "" {
		return v.Attributes[0].Option
	}
	if v.Name != "" {
		return v.Name
	}
	return "License"
}

// Product 商品
type Product struct {
	ID             uint            `json:"id"`
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	Price          decimal.Decimal `json:"price"`
	Type           string          `json:"type"`
	Genre          string          `json:"genre"`
	BPM            *int            `json:"bpm"`
	Mood           string          `json:"mood"`
	MusicKey       string          `json:"music_key"`
	AudioURL       string          `json:"audio_url"`
	Images         []Image         `json:"images"`
	Variations     []uint          `json:"variations"`
	VariationsData []Variation     `json:"variations_data,omitempty"`
}

// HasAudio 是否可试听
func (p Product) HasAudio() bool {
	return p.AudioURL != ""
}

// ImageSrc 首图地址，无图返回空串
func (p Product) ImageSrc() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].Src
}

// ProductList 商品列表响应
type ProductList struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
}

// BPMRange BPM 区间
type BPMRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Facets 可用筛选项
type Facets struct {
	Genres   []string `json:"genres"`
	Moods    []string `json:"moods"`
	Keys     []string `json:"keys"`
	BPMRange BPMRange `json:"bpm_range"`
}

// DefaultFacets 筛选项加载前的默认值
func DefaultFacets() Facets {
	return Facets{
		Genres:   []string{},
		Moods:    []string{},
		Keys:     []string{},
		BPMRange: BPMRange{Min: 60, Max: 200},
	}
}

// CartItem 购物车行
type CartItem struct {
	ID          string          `json:"id"`
	ProductID   uint            `json:"product_id"`
	VariationID *uint           `json:"variation_id"`
	Name        string          `json:"name"`
	LicenseType string          `json:"license_type"`
	Price       decimal.Decimal `json:"price"`
	AudioURL    string          `json:"audio_url"`
	ImageURL    string          `json:"image_url"`
}

// Cart 购物车快照
type Cart struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// AddCartItem 加入购物车请求体
type AddCartItem struct {
	ProductID   uint            `json:"product_id"`
	VariationID *uint           `json:"variation_id,omitempty"`
	Name        string          `json:"name"`
	LicenseType string          `json:"license_type"`
	Price       decimal.Decimal `json:"price"`
	AudioURL    string          `json:"audio_url"`
	ImageURL    string          `json:"image_url"`
}

// CheckoutResult 结账响应
type CheckoutResult struct {
	CheckoutURL string `json:"checkout_url"`
	TotalItems  int    `json:"total_items"`
}
