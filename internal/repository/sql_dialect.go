package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// metaLikeCondition 构建商品属性子查询条件（属性键 + 不区分大小写的包含匹配）。
func metaLikeCondition(db *gorm.DB) string {
	return metaLikeConditionByDialect(dbDialectName(db))
}

func metaLikeConditionByDialect(dialect string) string {
	return fmt.Sprintf(
		"EXISTS (SELECT 1 FROM product_meta pm WHERE pm.product_id = products.id AND pm.meta_key = ? AND pm.meta_value %s ? ESCAPE '\\')",
		likeOperatorByDialect(dialect),
	)
}

// containsPattern 转义通配符后生成包含匹配模式。
func containsPattern(raw string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(raw) + "%"
}
