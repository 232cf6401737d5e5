package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rarebeats-player/internal/models"
	"github.com/rarebeats-player/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name)), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{},
		&models.ProductMeta{},
		&models.ProductVariation{},
		&models.CartItem{},
		&models.NativeCartLine{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// fakeProductStore 内存目录，不实现 FacetSource
type fakeProductStore struct {
	products []repository.CatalogProduct
	err      error
	queries  []repository.ProductQuery
}

func (f *fakeProductStore) Query(ctx context.Context, query repository.ProductQuery) ([]repository.CatalogProduct, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	result := make([]repository.CatalogProduct, 0, len(f.products))
	for _, p := range f.products {
		if query.Genre != "" && !strings.EqualFold(query.Genre, p.Genre) {
			continue
		}
		if !query.WithVariations {
			p.Variations = nil
		}
		result = append(result, p)
	}
	return result, nil
}

func (f *fakeProductStore) GetByID(ctx context.Context, id uint) (*repository.CatalogProduct, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.products {
		if f.products[i].ID == id {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

type nativeCartCall struct {
	op          string
	productID   uint
	variationID *uint
	quantity    int
}

// recordingNativeCart 记录调用顺序
type recordingNativeCart struct {
	calls  []nativeCartCall
	url    string
	addErr error
}

func (r *recordingNativeCart) Empty(ctx context.Context) error {
	r.calls = append(r.calls, nativeCartCall{op: "empty"})
	return nil
}

func (r *recordingNativeCart) AddLine(ctx context.Context, productID uint, variationID *uint, quantity int) error {
	if r.addErr != nil {
		return r.addErr
	}
	r.calls = append(r.calls, nativeCartCall{op: "add", productID: productID, variationID: variationID, quantity: quantity})
	return nil
}

func (r *recordingNativeCart) CheckoutURL(ctx context.Context) (string, error) {
	return r.url, nil
}

func intPtr(v int) *int {
	return &v
}

func uintPtr(v uint) *uint {
	return &v
}
