//go:build integration
// +build integration

package repository

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/rarebeats-player/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	tables := []interface{}{
		&models.NativeCartLine{},
		&models.CartItem{},
		&models.ProductVariation{},
		&models.ProductMeta{},
		&models.Product{},
	}
	_ = db.Migrator().DropTable(tables...)
	if err := db.AutoMigrate(
		&models.Product{},
		&models.ProductMeta{},
		&models.ProductVariation{},
		&models.CartItem{},
		&models.NativeCartLine{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(tables...)
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestPostgresMetaFilterIsCaseInsensitive(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	store := NewProductStore(db)
	createBeat(t, store, beatFixture{slug: "dark-trap", genre: "Trap", bpm: "140", mood: "Dark", key: "Am", tiers: map[string]string{"Basic": "29.99"}})
	createBeat(t, store, beatFixture{slug: "lofi", genre: "Lo-Fi", bpm: "85", mood: "Chill", key: "C"})
	createBeat(t, store, beatFixture{slug: "pct", genre: "100% Drill", bpm: "145", mood: "Aggressive", key: "F#m"})

	items, err := store.Query(context.Background(), ProductQuery{Genre: "TRAP", WithVariations: true})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(items) != 1 || items[0].Slug != "dark-trap" || len(items[0].Variations) != 1 {
		t.Fatalf("unexpected trap result: %+v", items)
	}

	items, err = store.Query(context.Background(), ProductQuery{Genre: "100%"})
	if err != nil {
		t.Fatalf("query with wildcard failed: %v", err)
	}
	if len(items) != 1 || items[0].Slug != "pct" {
		t.Fatalf("percent sign should match literally: %+v", items)
	}
}

func TestPostgresFacetsAndCart(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	store := NewProductStore(db)
	createBeat(t, store, beatFixture{slug: "a", genre: "Trap", bpm: "140", mood: "Dark", key: "Am"})
	createBeat(t, store, beatFixture{slug: "b", genre: "Drill", bpm: "145", mood: "Dark", key: "F#m"})

	genres, err := store.DistinctMeta(context.Background(), "genre")
	if err != nil {
		t.Fatalf("distinct genres failed: %v", err)
	}
	if strings.Join(genres, ",") != "Drill,Trap" {
		t.Fatalf("unexpected genres: %v", genres)
	}

	carts := NewCartRepository(db)
	item := &models.CartItem{ProductID: 1, Name: "A", LicenseType: "Basic", Price: models.MustMoney("19.99")}
	if err := carts.Create(context.Background(), item); err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
	items, err := carts.List(context.Background())
	if err != nil || len(items) != 1 || items[0].Price.String() != "19.99" {
		t.Fatalf("unexpected cart rows: %+v err=%v", items, err)
	}
}
