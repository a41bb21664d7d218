package models

import "strings"

// CategoryTag classifies a shop and its products. The set is closed: every
// tag the upstream catalog can attach to a product must appear here, and the
// navigation table in the services package must cover all of them.
type CategoryTag string

const (
	CategoryFood      CategoryTag = "FOOD"
	CategoryMedicine  CategoryTag = "MEDICINE"
	CategoryTech      CategoryTag = "TECH"
	CategoryHousehold CategoryTag = "HOUSEHOLD"
	CategoryWardrobe  CategoryTag = "WARDROBE"
)

// AllCategories returns every known category tag.
func AllCategories() []CategoryTag {
	return []CategoryTag{
		CategoryFood,
		CategoryMedicine,
		CategoryTech,
		CategoryHousehold,
		CategoryWardrobe,
	}
}

// ParseCategory resolves a tag case-insensitively.
func ParseCategory(s string) (CategoryTag, bool) {
	tag := CategoryTag(strings.ToUpper(strings.TrimSpace(s)))
	switch tag {
	case CategoryFood, CategoryMedicine, CategoryTech, CategoryHousehold, CategoryWardrobe:
		return tag, true
	}
	return "", false
}

// Lower returns the tag in the lower-cased form used on search results.
func (t CategoryTag) Lower() string {
	return strings.ToLower(string(t))
}

// Tier is a shop's subscription level. It influences sort order in listings
// and nothing else.
type Tier string

const (
	TierElite   Tier = "Elite"
	TierPremium Tier = "Premium"
	TierBasic   Tier = "Basic"
)

// Rank orders tiers for sorting, lower is better.
func (t Tier) Rank() int {
	switch t {
	case TierElite:
		return 0
	case TierPremium:
		return 1
	default:
		return 2
	}
}
