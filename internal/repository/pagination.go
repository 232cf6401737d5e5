package repository

import (
	"math"

	"gorm.io/gorm"
)

// applyPagination page 从 1 开始，perPage <= 0 时不分页
func applyPagination(query *gorm.DB, page, perPage int) *gorm.DB {
	if query == nil || perPage <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	// 偏移量超出 int 范围时结果必然为空
	if page-1 > math.MaxInt/perPage {
		return query.Where("1 = 0")
	}
	return query.Limit(perPage).Offset((page - 1) * perPage)
}
