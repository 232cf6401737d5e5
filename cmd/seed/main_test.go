package main

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rarebeats-player/internal/models"
	"github.com/rarebeats-player/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:seed_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ProductMeta{}, &models.ProductVariation{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func TestSeedBeatsIsIdempotent(t *testing.T) {
	db := openSeedDB(t)
	store := repository.NewProductStore(db)
	ctx := context.Background()

	created, err := seedBeats(ctx, store)
	if err != nil {
		t.Fatalf("first seed failed: %v", err)
	}
	if created != 5 {
		t.Fatalf("want 5 created got %d", created)
	}
	created, err = seedBeats(ctx, store)
	if err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	if created != 0 {
		t.Fatalf("second seed should create nothing, got %d", created)
	}

	var products int64
	db.Model(&models.Product{}).Count(&products)
	var variations int64
	db.Model(&models.ProductVariation{}).Count(&variations)
	if products != 5 || variations != 15 {
		t.Fatalf("unexpected rows products=%d variations=%d", products, variations)
	}
}

func TestSeedBeatsMetadata(t *testing.T) {
	db := openSeedDB(t)
	if _, err := seedBeats(context.Background(), repository.NewProductStore(db)); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	var drill models.Product
	if err := db.Preload("Meta").Preload("Variations").Where("slug = ?", "aggressive-drill-beat").First(&drill).Error; err != nil {
		t.Fatalf("load drill beat failed: %v", err)
	}
	if drill.MetaValue("key") != "F#m" || drill.MetaValue("bpm") != "145" {
		t.Fatalf("unexpected meta: key=%s bpm=%s", drill.MetaValue("key"), drill.MetaValue("bpm"))
	}
	if len(drill.Variations) != 3 {
		t.Fatalf("want 3 variations got %d", len(drill.Variations))
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Smooth R&B Beat":  "smooth-r-b-beat",
		"Chill Lo-Fi Beat": "chill-lo-fi-beat",
		"  Dark  Trap ":    "dark-trap",
	}
	for input, want := range cases {
		if got := slugify(input); got != want {
			t.Fatalf("slugify(%q) want %s got %s", input, want, got)
		}
	}
}
