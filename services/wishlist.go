package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Bey1222/yonk-backend/models"
)

// ErrWishlistItemNotFound means no wishlist entry carries the product id.
var ErrWishlistItemNotFound = errors.New("wishlist item not found")

// WishlistRepository persists one wishlist per user.
type WishlistRepository interface {
	Get(ctx context.Context, userID string) (*models.Wishlist, error)
	Save(ctx context.Context, wishlist *models.Wishlist) error
	Delete(ctx context.Context, userID string) error
}

// WishlistService keeps at most one entry per product id. Removal is by
// product id, never by positional index.
type WishlistService struct {
	repo WishlistRepository
	log  *zap.Logger
}

func NewWishlistService(repo WishlistRepository, log *zap.Logger) *WishlistService {
	return &WishlistService{repo: repo, log: log}
}

// Get returns the user's wishlist, empty if none is stored.
func (s *WishlistService) Get(ctx context.Context, userID string) (*models.Wishlist, error) {
	wishlist, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wishlist == nil {
		wishlist = &models.Wishlist{UserID: userID, Items: []models.WishlistItem{}}
	}
	return wishlist, nil
}

// Add appends the item unless its product id is already present, in which
// case it is a no-op.
func (s *WishlistService) Add(ctx context.Context, userID string, item models.WishlistItem) (*models.Wishlist, error) {
	if item.ProductID == "" {
		s.log.Warn("rejecting wishlist add without product id", zap.String("user_id", userID))
		return nil, ErrMissingProductID
	}

	wishlist, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, existing := range wishlist.Items {
		if existing.ProductID == item.ProductID {
			return wishlist, nil
		}
	}

	wishlist.Items = append(wishlist.Items, item)
	if err := s.repo.Save(ctx, wishlist); err != nil {
		return nil, err
	}
	return wishlist, nil
}

// Remove deletes the entry for the given product id.
func (s *WishlistService) Remove(ctx context.Context, userID, productID string) (*models.Wishlist, error) {
	wishlist, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range wishlist.Items {
		if wishlist.Items[i].ProductID != productID {
			continue
		}
		wishlist.Items = append(wishlist.Items[:i], wishlist.Items[i+1:]...)
		if err := s.repo.Save(ctx, wishlist); err != nil {
			return nil, err
		}
		return wishlist, nil
	}
	return nil, ErrWishlistItemNotFound
}

// Clear empties the wishlist.
func (s *WishlistService) Clear(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userID)
}
