package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Gender is the audience a fragrance is marketed to
type Gender string

const (
	GenderHomme  Gender = "HOMME"
	GenderFemme  Gender = "FEMME"
	GenderUnisex Gender = "UNISEX"
)

// Valid reports whether g is one of the known genders
func (g Gender) Valid() bool {
	switch g {
	case GenderHomme, GenderFemme, GenderUnisex:
		return true
	}
	return false
}

// Product represents a fragrance in the catalog
type Product struct {
	ID            uuid.UUID           `json:"id" db:"id"`
	Slug          string              `json:"slug" db:"slug"`
	Name          string              `json:"name" db:"name"`
	Description   string              `json:"description" db:"description"`
	Price         decimal.Decimal     `json:"price" db:"price"`
	OriginalPrice decimal.NullDecimal `json:"originalPrice" db:"original_price"`
	Volume        *int                `json:"volume" db:"volume"` // milliliters
	Concentration *string             `json:"concentration" db:"concentration"`
	Gender        Gender              `json:"gender" db:"gender"`
	TopNotes      []string            `json:"topNotes" db:"top_notes"`
	HeartNotes    []string            `json:"heartNotes" db:"heart_notes"`
	BaseNotes     []string            `json:"baseNotes" db:"base_notes"`
	Images        []string            `json:"images" db:"images"`
	Featured      bool                `json:"featured" db:"featured"`
	InStock       bool                `json:"inStock" db:"in_stock"`
	BrandID       uuid.UUID           `json:"brandId" db:"brand_id"`
	CategoryID    uuid.UUID           `json:"categoryId" db:"category_id"`
	CreatedAt     time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time           `json:"updatedAt" db:"updated_at"`

	Brand         *Brand    `json:"brand,omitempty"`
	Category      *Category `json:"category,omitempty"`
	FavoriteCount int       `json:"favoriteCount"`
}

// Brand represents a perfume house
type Brand struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Slug         string    `json:"slug" db:"slug"`
	Description  string    `json:"description" db:"description"`
	Website      string    `json:"website" db:"website"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	ProductCount int       `json:"productCount"`
}

// Category represents an olfactory family
type Category struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Slug         string    `json:"slug" db:"slug"`
	Description  string    `json:"description" db:"description"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	ProductCount int       `json:"productCount"`
}

// ProductDetail is a single product as seen by a (possibly anonymous) viewer
type ProductDetail struct {
	*Product
	IsFavorite bool `json:"isFavorite"`
}
