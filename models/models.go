package models

import (
	"fmt"
	"strings"
	"time"
)

// Variant is a size or option of a product with its own price.
type Variant struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=1"`
}

// AddOn is an extra attached to a variant (e.g. a topping).
type AddOn struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Product struct {
	ID            string             `json:"id" validate:"required"`
	Name          string             `json:"name" validate:"required"`
	Price         float64            `json:"price" validate:"gt=0"`
	DiscountPrice *float64           `json:"discount_price,omitempty"`
	Images        []string           `json:"images"`
	Category      CategoryTag        `json:"category"`
	ShopID        string             `json:"shop_id"`
	Variants      []Variant          `json:"variants,omitempty"`
	AddOns        map[string][]AddOn `json:"add_ons,omitempty"`
}

// ValidDiscount reports whether the discount price, when present, is
// strictly below the base price.
func (p Product) ValidDiscount() bool {
	return p.DiscountPrice == nil || *p.DiscountPrice < p.Price
}

// FirstImage returns the leading image URI or "".
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

type Shop struct {
	ID           string      `json:"id" validate:"required"`
	Name         string      `json:"name" validate:"required"`
	Avatar       string      `json:"avatar"`
	Address      Address     `json:"address"`
	Category     CategoryTag `json:"category"`
	Rating       float64     `json:"rating" validate:"gte=0,lte=5"`
	DeliveryTime string      `json:"delivery_time"`
	Opens        string      `json:"opens"`
	Closes       string      `json:"closes"`
	Tier         Tier        `json:"tier"`
}

// Summary returns the canonical display shape destination screens consume.
func (s Shop) Summary() ShopSummary {
	return ShopSummary{
		Name:     s.Name,
		Image:    s.Avatar,
		Location: s.Location(),
	}
}

// Location renders the address as a single display label.
func (s Shop) Location() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.Address.Street, s.Address.City, s.Address.State} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// ShopSummary is the one parameter shape every destination screen accepts
// for the owning shop, regardless of category.
type ShopSummary struct {
	Name     string `json:"name"`
	Image    string `json:"image"`
	Location string `json:"location"`
}

// ShopRecord is a directory cache entry: a shop merged with its fetched
// product list.
type ShopRecord struct {
	Shop     Shop      `json:"shop"`
	Products []Product `json:"products"`
}

// Selection is a chosen size/variant on a basket line.
type Selection struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// BasketLine is one checkout line. Every add creates a new line with a fresh
// LineID, even for identical selections; lines are removed by LineID. The
// shop fields are snapshotted at add time so the line survives directory
// cache misses.
type BasketLine struct {
	LineID     string             `json:"line_id"`
	ProductID  string             `json:"product_id"`
	Name       string             `json:"name"`
	Image      string             `json:"image"`
	Selections []Selection        `json:"selections"`
	AddOns     map[string][]AddOn `json:"add_ons,omitempty"`
	Note       string             `json:"note,omitempty"`
	Shop       ShopSummary        `json:"shop"`
}

// Total sums selections and add-ons for the line.
func (l BasketLine) Total() float64 {
	var total float64
	for _, sel := range l.Selections {
		qty := sel.Quantity
		if qty < 1 {
			qty = 1
		}
		total += sel.Price * float64(qty)
	}
	for _, addOns := range l.AddOns {
		for _, a := range addOns {
			total += a.Price
		}
	}
	return total
}

type Basket struct {
	UserID    string       `json:"user_id"`
	Lines     []BasketLine `json:"lines"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Total sums every line in the basket.
func (b Basket) Total() float64 {
	var total float64
	for _, l := range b.Lines {
		total += l.Total()
	}
	return total
}

type WishlistItem struct {
	ProductID string      `json:"product_id"`
	Name      string      `json:"name"`
	Price     float64     `json:"price"`
	Image     string      `json:"image"`
	Shop      ShopSummary `json:"shop"`
}

type Wishlist struct {
	UserID    string         `json:"user_id"`
	Items     []WishlistItem `json:"items"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// SearchResult is a transient projection of a product enriched with its
// owning shop's display fields and the destination screen for its category.
type SearchResult struct {
	ProductID     string      `json:"product_id"`
	Name          string      `json:"name"`
	Price         float64     `json:"price"`
	DiscountPrice *float64    `json:"discount_price,omitempty"`
	Image         string      `json:"image"`
	Category      string      `json:"category"`
	Screen        string      `json:"screen"`
	Shop          ShopSummary `json:"shop"`
}

func (r SearchResult) String() string {
	return fmt.Sprintf("%s (%s) @ %s", r.Name, r.Category, r.Shop.Name)
}
