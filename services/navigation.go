package services

import (
	"errors"
	"fmt"

	"github.com/Bey1222/yonk-backend/models"
)

// Destination names the screen a category's detail view lives on. Every
// destination accepts the same canonical ShopSummary parameters, so the
// table only maps category to screen.
type Destination struct {
	Screen string `json:"screen"`
}

var destinations = map[models.CategoryTag]Destination{
	models.CategoryFood:      {Screen: "RestaurantDetails"},
	models.CategoryMedicine:  {Screen: "PharmacyDetails"},
	models.CategoryTech:      {Screen: "TechDetails"},
	models.CategoryHousehold: {Screen: "HouseholdDetails"},
	models.CategoryWardrobe:  {Screen: "WardrobeDetails"},
}

// ErrUnknownCategory signals a category tag with no destination. Callers
// must abort the navigation; this indicates a data/code mismatch, not a
// transient condition.
var ErrUnknownCategory = errors.New("unknown category")

// ResolveCategory maps a raw category tag, case-insensitively, to its
// destination screen.
func ResolveCategory(raw string) (Destination, error) {
	tag, ok := models.ParseCategory(raw)
	if !ok {
		return Destination{}, fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
	}
	return ResolveCategoryTag(tag)
}

// ResolveCategoryTag maps a parsed tag to its destination screen.
func ResolveCategoryTag(tag models.CategoryTag) (Destination, error) {
	dest, ok := destinations[tag]
	if !ok {
		return Destination{}, fmt.Errorf("%w: %q", ErrUnknownCategory, tag)
	}
	return dest, nil
}
