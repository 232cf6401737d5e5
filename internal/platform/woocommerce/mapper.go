package woocommerce

import (
	"github.com/rarebeats-player/internal/constants"
	"github.com/rarebeats-player/internal/models"
	"github.com/rarebeats-player/internal/repository"
)

func mapProduct(p wcProduct) repository.CatalogProduct {
	meta := p.metaMap()
	item := repository.CatalogProduct{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		Price:        parseMoney(p.Price),
		Type:         p.Type,
		Status:       p.Status,
		Genre:        meta[constants.MetaGenre],
		BPM:          meta[constants.MetaBPM],
		Mood:         meta[constants.MetaMood],
		Key:          meta[constants.MetaKey],
		AudioURL:     meta[constants.MetaAudioURL],
		VariationIDs: append([]uint{}, p.Variations...),
	}
	if len(p.Images) > 0 {
		item.ImageURL = p.Images[0].Src
	}
	return item
}

func mapVariation(productID uint, v wcVariation) repository.CatalogVariation {
	attrs := make([]models.VariationAttribute, 0, len(v.Attributes))
	for _, attr := range v.Attributes {
		attrs = append(attrs, models.VariationAttribute{Name: attr.Name, Option: attr.Option})
	}
	return repository.CatalogVariation{
		ID:           v.ID,
		ProductID:    productID,
		Description:  v.Description,
		Price:        parseMoney(v.Price),
		RegularPrice: parseMoney(v.RegularPrice),
		Attributes:   attrs,
	}
}

// parseMoney 平台价格为字符串，非法值按 0 处理
func parseMoney(raw string) models.Money {
	m, err := models.ParseMoney(raw)
	if err != nil {
		return models.Money{}
	}
	return m
}
