package services

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Bey1222/yonk-backend/models"
)

// DirectoryCache holds fetched shops, each merged with its product list,
// keyed by shop id. Entries never expire within a session. Concurrent
// lookups for the same uncached id coalesce into a single upstream fetch.
// A failed fetch leaves the key absent so the next lookup retries; the
// returned error tells callers whether the shop is missing upstream or the
// upstream was unreachable.
type DirectoryCache struct {
	api      CatalogAPI
	validate *validator.Validate
	log      *zap.Logger

	mu    sync.RWMutex
	shops map[string]*models.ShopRecord
	group singleflight.Group
}

func NewDirectoryCache(api CatalogAPI, log *zap.Logger) *DirectoryCache {
	return &DirectoryCache{
		api:      api,
		validate: validator.New(),
		log:      log,
		shops:    make(map[string]*models.ShopRecord),
	}
}

// GetShop returns the cached record for the shop, fetching shop and product
// list on first reference.
func (d *DirectoryCache) GetShop(ctx context.Context, shopID string) (*models.ShopRecord, error) {
	d.mu.RLock()
	record, ok := d.shops[shopID]
	d.mu.RUnlock()
	if ok {
		return record, nil
	}

	result, err, _ := d.group.Do(shopID, func() (any, error) {
		// Re-check under the flight: a previous flight may have
		// populated the entry between the RLock and Do.
		d.mu.RLock()
		cached, ok := d.shops[shopID]
		d.mu.RUnlock()
		if ok {
			return cached, nil
		}
		return d.fetch(ctx, shopID)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.ShopRecord), nil
}

func (d *DirectoryCache) fetch(ctx context.Context, shopID string) (*models.ShopRecord, error) {
	shop, err := d.api.FetchShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if err := d.validate.Struct(shop); err != nil {
		d.log.Warn("rejecting invalid shop record", zap.String("shop_id", shopID), zap.Error(err))
		return nil, ErrShopNotFound
	}

	products, err := d.api.FetchShopProducts(ctx, shopID)
	if err != nil {
		return nil, err
	}

	record := &models.ShopRecord{
		Shop:     *shop,
		Products: d.ingest(products, shopID),
	}

	d.mu.Lock()
	d.shops[shopID] = record
	d.mu.Unlock()
	return record, nil
}

// ingest validates fetched products, dropping any that violate the schema
// or carry a discount at or above the base price.
func (d *DirectoryCache) ingest(products []models.Product, shopID string) []models.Product {
	kept := make([]models.Product, 0, len(products))
	for _, p := range products {
		if err := d.validate.Struct(p); err != nil {
			d.log.Warn("dropping invalid product",
				zap.String("shop_id", shopID),
				zap.String("product_id", p.ID),
				zap.Error(err),
			)
			continue
		}
		if !p.ValidDiscount() {
			d.log.Warn("dropping product with discount >= base price",
				zap.String("shop_id", shopID),
				zap.String("product_id", p.ID),
			)
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// Snapshot returns all cached records. Order is unspecified.
func (d *DirectoryCache) Snapshot() []*models.ShopRecord {
	d.mu.RLock()
	defer d.mu.RUnlock()
	records := make([]*models.ShopRecord, 0, len(d.shops))
	for _, r := range d.shops {
		records = append(records, r)
	}
	return records
}

// Len reports the number of cached shops.
func (d *DirectoryCache) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.shops)
}
