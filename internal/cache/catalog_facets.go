package cache

import (
	"context"
	"time"
)

const (
	catalogFacetsKey      = "catalog:facets"
	catalogFacetsCacheTTL = 5 * time.Minute
)

// GetCatalogFacets 读取筛选项快照
func GetCatalogFacets(ctx context.Context, dest interface{}) (bool, error) {
	return getJSON(ctx, catalogFacetsKey, dest)
}

// SetCatalogFacets 写入筛选项快照
func SetCatalogFacets(ctx context.Context, value interface{}) error {
	return setJSON(ctx, catalogFacetsKey, value, catalogFacetsCacheTTL)
}

// DelCatalogFacets 商品变更后清除筛选项快照
func DelCatalogFacets(ctx context.Context) error {
	return del(ctx, catalogFacetsKey)
}
