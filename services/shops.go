package services

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Bey1222/yonk-backend/models"
)

// ShopListing is a shop with its open state evaluated at listing time.
type ShopListing struct {
	models.Shop
	Open bool `json:"open"`
}

// ShopService serves category listings sorted by subscription tier then
// rating, with each shop's open state evaluated against the current hour.
type ShopService struct {
	api CatalogAPI
	log *zap.Logger
	now func() time.Time
}

func NewShopService(api CatalogAPI, log *zap.Logger) *ShopService {
	return &ShopService{api: api, log: log, now: time.Now}
}

// ListByCategory fetches shops for the category and orders them Elite
// first, then Premium, then Basic, higher rating first within a tier.
func (s *ShopService) ListByCategory(ctx context.Context, tag models.CategoryTag) ([]ShopListing, error) {
	shops, err := s.api.FetchShopsByCategory(ctx, tag)
	if err != nil {
		return nil, err
	}

	SortShops(shops)

	hour := s.now().Hour()
	listings := make([]ShopListing, 0, len(shops))
	for _, shop := range shops {
		listings = append(listings, ShopListing{
			Shop: shop,
			Open: IsOpen(shop.Opens, shop.Closes, hour),
		})
	}
	return listings, nil
}

// SortShops orders shops by tier rank, then rating descending, then name
// for a stable display order.
func SortShops(shops []models.Shop) {
	sort.SliceStable(shops, func(i, j int) bool {
		if shops[i].Tier.Rank() != shops[j].Tier.Rank() {
			return shops[i].Tier.Rank() < shops[j].Tier.Rank()
		}
		if shops[i].Rating != shops[j].Rating {
			return shops[i].Rating > shops[j].Rating
		}
		return shops[i].Name < shops[j].Name
	})
}
