package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Bey1222/yonk-backend/models"
)

var (
	// ErrMissingProductID rejects basket adds without a product id. The
	// basket is left untouched.
	ErrMissingProductID = errors.New("basket line requires a product id")

	// ErrLineNotFound means no basket line carries the given line id.
	ErrLineNotFound = errors.New("basket line not found")

	// ErrSelectionNotFound means the line has no selection by that name.
	ErrSelectionNotFound = errors.New("selection not found on basket line")
)

// BasketRepository persists one basket per user.
type BasketRepository interface {
	Get(ctx context.Context, userID string) (*models.Basket, error)
	Save(ctx context.Context, basket *models.Basket) error
	Delete(ctx context.Context, userID string) error
}

// BasketService implements point-of-sale basket semantics: every add
// appends an independent line, even when it duplicates an earlier
// product+variant selection. Lines are addressed by their line id; quantity
// adjustment on an existing selection is the only in-place mutation.
type BasketService struct {
	repo BasketRepository
	log  *zap.Logger
}

func NewBasketService(repo BasketRepository, log *zap.Logger) *BasketService {
	return &BasketService{repo: repo, log: log}
}

// Get returns the user's basket, empty if none is stored.
func (s *BasketService) Get(ctx context.Context, userID string) (*models.Basket, error) {
	basket, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if basket == nil {
		basket = &models.Basket{UserID: userID, Lines: []models.BasketLine{}}
	}
	return basket, nil
}

// AddLine appends a new line with a fresh line id. Selections with a
// quantity below 1 are raised to 1.
func (s *BasketService) AddLine(ctx context.Context, userID string, line models.BasketLine) (*models.Basket, error) {
	if line.ProductID == "" {
		s.log.Warn("rejecting basket add without product id", zap.String("user_id", userID))
		return nil, ErrMissingProductID
	}

	basket, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	line.LineID = uuid.NewString()
	for i := range line.Selections {
		if line.Selections[i].Quantity < 1 {
			line.Selections[i].Quantity = 1
		}
	}
	basket.Lines = append(basket.Lines, line)

	if err := s.repo.Save(ctx, basket); err != nil {
		return nil, err
	}
	return basket, nil
}

// AdjustQuantity sets the quantity of one selection on one line.
func (s *BasketService) AdjustQuantity(ctx context.Context, userID, lineID, selection string, quantity int) (*models.Basket, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}

	basket, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range basket.Lines {
		if basket.Lines[i].LineID != lineID {
			continue
		}
		for j := range basket.Lines[i].Selections {
			if basket.Lines[i].Selections[j].Name != selection {
				continue
			}
			basket.Lines[i].Selections[j].Quantity = quantity
			if err := s.repo.Save(ctx, basket); err != nil {
				return nil, err
			}
			return basket, nil
		}
		return nil, ErrSelectionNotFound
	}
	return nil, ErrLineNotFound
}

// RemoveLine deletes exactly one line by its line id.
func (s *BasketService) RemoveLine(ctx context.Context, userID, lineID string) (*models.Basket, error) {
	basket, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range basket.Lines {
		if basket.Lines[i].LineID != lineID {
			continue
		}
		basket.Lines = append(basket.Lines[:i], basket.Lines[i+1:]...)
		if err := s.repo.Save(ctx, basket); err != nil {
			return nil, err
		}
		return basket, nil
	}
	return nil, ErrLineNotFound
}

// Clear empties the basket unconditionally.
func (s *BasketService) Clear(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userID)
}
