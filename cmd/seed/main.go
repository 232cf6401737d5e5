package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rarebeats-player/internal/cache"
	"github.com/rarebeats-player/internal/config"
	"github.com/rarebeats-player/internal/constants"
	"github.com/rarebeats-player/internal/logger"
	"github.com/rarebeats-player/internal/models"
	"github.com/rarebeats-player/internal/repository"
)

// sampleBeat 示例曲目
type sampleBeat struct {
	Name        string
	Description string
	Genre       string
	BPM         string
	Mood        string
	Key         string
	AudioURL    string
}

// sampleLicense 示例许可
type sampleLicense struct {
	Option      string
	Price       string
	Description string
}

var sampleBeats = []sampleBeat{
	{
		Name:        "Dark Trap Beat",
		Description: "Hard-hitting trap beat with dark melodies and 808s",
		Genre:       "Trap",
		BPM:         "140",
		Mood:        "Dark",
		Key:         "Am",
		AudioURL:    "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3",
	},
	{
		Name:        "Chill Lo-Fi Beat",
		Description: "Relaxing lo-fi beat perfect for studying or relaxing",
		Genre:       "Lo-Fi",
		BPM:         "85",
		Mood:        "Chill",
		Key:         "C",
		AudioURL:    "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-2.mp3",
	},
	{
		Name:        "Uplifting Pop Beat",
		Description: "Energetic pop beat with catchy melodies",
		Genre:       "Pop",
		BPM:         "120",
		Mood:        "Uplifting",
		Key:         "G",
		AudioURL:    "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-3.mp3",
	},
	{
		Name:        "Aggressive Drill Beat",
		Description: "Heavy drill beat with hard-hitting drums",
		Genre:       "Drill",
		BPM:         "145",
		Mood:        "Aggressive",
		Key:         "F#m",
		AudioURL:    "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-4.mp3",
	},
	{
		Name:        "Smooth R&B Beat",
		Description: "Smooth R&B instrumental with soulful vibes",
		Genre:       "R&B",
		BPM:         "90",
		Mood:        "Smooth",
		Key:         "Dm",
		AudioURL:    "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-5.mp3",
	},
}

var sampleLicenses = []sampleLicense{
	{Option: "Basic", Price: "29.99", Description: "MP3 lease, unlimited streams"},
	{Option: "Premium", Price: "79.99", Description: "WAV + Stems, unlimited distribution"},
	{Option: "Exclusive", Price: "299.99", Description: "Full exclusive rights, all files included"},
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	ctx := context.Background()
	created, err := seedBeats(ctx, repository.NewProductStore(models.DB))
	if err != nil {
		stdLog.Fatalf("Failed to seed beats: %v", err)
	}
	stdLog.Printf("Seeded %d beats (%d already present)", created, len(sampleBeats)-created)

	// 商品变更后清除筛选项缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		stdLog.Printf("Redis unavailable, skip facet cache purge: %v", err)
		return
	}
	defer cache.Close()
	if err := cache.DelCatalogFacets(ctx); err != nil {
		stdLog.Printf("Failed to purge facet cache: %v", err)
	}
}

// seedBeats 按 slug 幂等写入示例曲目，返回新建数量
func seedBeats(ctx context.Context, writer repository.ProductWriter) (int, error) {
	created := 0
	for i, beat := range sampleBeats {
		slug := slugify(beat.Name)
		exists, err := writer.ExistsBySlug(ctx, slug)
		if err != nil {
			return created, err
		}
		if exists {
			logger.Infow("seed_beat_exists", "slug", slug)
			continue
		}
		product, err := buildProduct(beat, slug, i)
		if err != nil {
			return created, err
		}
		if err := writer.Save(ctx, product); err != nil {
			return created, fmt.Errorf("save %s: %w", slug, err)
		}
		logger.Infow("seed_beat_created", "slug", slug, "product_id", product.ID)
		created++
	}
	return created, nil
}

func buildProduct(beat sampleBeat, slug string, sortOrder int) (*models.Product, error) {
	product := &models.Product{
		Name:        beat.Name,
		Slug:        slug,
		Description: beat.Description,
		PriceAmount: models.MustMoney(sampleLicenses[0].Price),
		Type:        constants.ProductTypeVariable,
		Status:      constants.ProductStatusPublish,
		SortOrder:   sortOrder,
	}
	product.SetMeta(constants.MetaGenre, beat.Genre)
	product.SetMeta(constants.MetaBPM, beat.BPM)
	product.SetMeta(constants.MetaMood, beat.Mood)
	product.SetMeta(constants.MetaKey, beat.Key)
	product.SetMeta(constants.MetaAudioURL, beat.AudioURL)

	for order, license := range sampleLicenses {
		variation := models.ProductVariation{
			Description:        license.Description,
			PriceAmount:        models.MustMoney(license.Price),
			RegularPriceAmount: models.MustMoney(license.Price),
			Status:             constants.ProductStatusPublish,
			MenuOrder:          order,
		}
		if err := variation.SetAttributes([]models.VariationAttribute{
			{Name: constants.AttributeTaxonomyPrefix + "license-type", Option: license.Option},
		}); err != nil {
			return nil, err
		}
		product.Variations = append(product.Variations, variation)
	}
	return product, nil
}

func slugify(name string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash && b.Len() > 0:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
