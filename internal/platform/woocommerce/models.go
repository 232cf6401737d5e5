package woocommerce

import (
	"encoding/json"
	"strconv"
	"strings"
)

// wcProduct /wp-json/wc/v3/products 返回体（仅取所需字段）
type wcProduct struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	Price       string       `json:"price"`
	Type        string       `json:"type"`
	Status      string       `json:"status"`
	Images      []wcImage    `json:"images"`
	Variations  []uint       `json:"variations"`
	MetaData    []wcMetaData `json:"meta_data"`
}

type wcImage struct {
	Src string `json:"src"`
}

type wcMetaData struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

type wcVariation struct {
	ID           uint          `json:"id"`
	Description  string        `json:"description"`
	Price        string        `json:"price"`
	RegularPrice string        `json:"regular_price"`
	Status       string        `json:"status"`
	Attributes   []wcAttribute `json:"attributes"`
}

type wcAttribute struct {
	Name   string `json:"name"`
	Option string `json:"option"`
}

// metaMap 把 meta_data 展平为文本键值，非字符串值按 JSON 字面量转换
func (p wcProduct) metaMap() map[string]string {
	result := make(map[string]string, len(p.MetaData))
	for _, meta := range p.MetaData {
		result[meta.Key] = metaText(meta.Value)
	}
	return result
}

func metaText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b)
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "null" {
		return ""
	}
	return trimmed
}
