package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Bey1222/yonk-backend/models"
)

// fakeCatalogAPI is an in-memory CatalogAPI that counts upstream fetches.
type fakeCatalogAPI struct {
	mu sync.Mutex

	shops      map[string]models.Shop
	products   map[string][]models.Product
	byCategory map[models.CategoryTag][]models.Product

	shopErr    error
	productErr error
	fetchDelay time.Duration

	shopFetches     map[string]int
	productFetches  map[string]int
	categoryFetches int
}

func newFakeCatalogAPI() *fakeCatalogAPI {
	return &fakeCatalogAPI{
		shops:          make(map[string]models.Shop),
		products:       make(map[string][]models.Product),
		byCategory:     make(map[models.CategoryTag][]models.Product),
		shopFetches:    make(map[string]int),
		productFetches: make(map[string]int),
	}
}

func (f *fakeCatalogAPI) addShop(shop models.Shop, products ...models.Product) {
	f.shops[shop.ID] = shop
	f.products[shop.ID] = products
	for _, p := range products {
		f.byCategory[p.Category] = append(f.byCategory[p.Category], p)
	}
}

func (f *fakeCatalogAPI) FetchShop(_ context.Context, shopID string) (*models.Shop, error) {
	if f.fetchDelay > 0 {
		time.Sleep(f.fetchDelay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shopFetches[shopID]++
	if f.shopErr != nil {
		return nil, f.shopErr
	}
	shop, ok := f.shops[shopID]
	if !ok {
		return nil, ErrShopNotFound
	}
	return &shop, nil
}

func (f *fakeCatalogAPI) FetchShopProducts(_ context.Context, shopID string) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.productFetches[shopID]++
	if f.productErr != nil {
		return nil, f.productErr
	}
	return f.products[shopID], nil
}

func (f *fakeCatalogAPI) FetchShopsByCategory(_ context.Context, tag models.CategoryTag) ([]models.Shop, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.shopErr != nil {
		return nil, f.shopErr
	}
	var shops []models.Shop
	for _, s := range f.shops {
		if s.Category == tag {
			shops = append(shops, s)
		}
	}
	return shops, nil
}

func (f *fakeCatalogAPI) FetchProductsByCategory(_ context.Context, tag models.CategoryTag, _ string) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categoryFetches++
	if f.productErr != nil {
		return nil, f.productErr
	}
	return f.byCategory[tag], nil
}

func (f *fakeCatalogAPI) AddToCart(_ context.Context, _ UpstreamCartRequest) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

func (f *fakeCatalogAPI) ReduceQuantity(_ context.Context, _ UpstreamCartRequest) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

func (f *fakeCatalogAPI) shopFetchCount(shopID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shopFetches[shopID]
}
