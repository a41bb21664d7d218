package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Bey1222/yonk-backend/models"
)

type memoryWishlistRepo struct {
	wishlists map[string]*models.Wishlist
}

func newMemoryWishlistRepo() *memoryWishlistRepo {
	return &memoryWishlistRepo{wishlists: make(map[string]*models.Wishlist)}
}

func (m *memoryWishlistRepo) Get(_ context.Context, userID string) (*models.Wishlist, error) {
	wishlist, ok := m.wishlists[userID]
	if !ok {
		return nil, nil
	}
	copied := *wishlist
	copied.Items = append([]models.WishlistItem(nil), wishlist.Items...)
	return &copied, nil
}

func (m *memoryWishlistRepo) Save(_ context.Context, wishlist *models.Wishlist) error {
	m.wishlists[wishlist.UserID] = wishlist
	return nil
}

func (m *memoryWishlistRepo) Delete(_ context.Context, userID string) error {
	delete(m.wishlists, userID)
	return nil
}

func favoriteItem() models.WishlistItem {
	return models.WishlistItem{
		ProductID: "p1",
		Name:      "Jollof Rice",
		Price:     1500,
		Image:     "https://cdn.example.com/p1.png",
		Shop:      models.ShopSummary{Name: "Mama Ngozi Kitchen"},
	}
}

func TestWishlistAddIsIdempotent(t *testing.T) {
	svc := NewWishlistService(newMemoryWishlistRepo(), zap.NewNop())
	ctx := context.Background()

	first, err := svc.Add(ctx, "u1", favoriteItem())
	assert.NoError(t, err)
	assert.Len(t, first.Items, 1)

	second, err := svc.Add(ctx, "u1", favoriteItem())
	assert.NoError(t, err)
	assert.Len(t, second.Items, 1, "second add of the same product is a no-op")
}

func TestWishlistAddRejectsMissingProductID(t *testing.T) {
	svc := NewWishlistService(newMemoryWishlistRepo(), zap.NewNop())

	item := favoriteItem()
	item.ProductID = ""
	_, err := svc.Add(context.Background(), "u1", item)
	assert.ErrorIs(t, err, ErrMissingProductID)
}

func TestWishlistRemoveByProductID(t *testing.T) {
	svc := NewWishlistService(newMemoryWishlistRepo(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.Add(ctx, "u1", favoriteItem())
	assert.NoError(t, err)

	other := favoriteItem()
	other.ProductID = "p2"
	other.Name = "Fried Rice"
	_, err = svc.Add(ctx, "u1", other)
	assert.NoError(t, err)

	wishlist, err := svc.Remove(ctx, "u1", "p1")
	assert.NoError(t, err)
	assert.Len(t, wishlist.Items, 1)
	assert.Equal(t, "p2", wishlist.Items[0].ProductID)
}

func TestWishlistRemoveUnknownProduct(t *testing.T) {
	svc := NewWishlistService(newMemoryWishlistRepo(), zap.NewNop())

	_, err := svc.Remove(context.Background(), "u1", "ghost")
	assert.ErrorIs(t, err, ErrWishlistItemNotFound)
}

func TestWishlistClear(t *testing.T) {
	svc := NewWishlistService(newMemoryWishlistRepo(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.Add(ctx, "u1", favoriteItem())
	assert.NoError(t, err)
	assert.NoError(t, svc.Clear(ctx, "u1"))

	wishlist, err := svc.Get(ctx, "u1")
	assert.NoError(t, err)
	assert.Empty(t, wishlist.Items)
}
