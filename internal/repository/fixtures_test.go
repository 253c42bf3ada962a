package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"maison-gda/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var fixtureConcentrations = []string{"EDP", "EDT", "Parfum"}

// catalogFixture is a 20 product catalog over four brands and two
// categories. Prices repeat every five rows. Rows 0-5 are FEMME in brands
// 0 and 1, rows 6-9 HOMME in brand 0, rows 10-13 FEMME in brand 2 and rows
// 14-19 UNISEX in brand 3.
type catalogFixture struct {
	brands     []*domain.Brand
	categories []*domain.Category
	products   []*domain.Product
}

func seedCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	resetTables(t)

	ctx := context.Background()
	brandRepo := NewBrandRepository(testDB)
	categoryRepo := NewCategoryRepository(testDB)
	productRepo := NewProductRepository(testDB)

	fx := &catalogFixture{}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, name := range []string{"Maison Ambre", "Atelier Iris", "Bois Sacré", "Citrus Club"} {
		brand := &domain.Brand{
			ID:        uuid.New(),
			Name:      name,
			Slug:      domain.Slugify(name),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := brandRepo.Create(ctx, brand); err != nil {
			t.Fatalf("failed to create brand: %v", err)
		}
		fx.brands = append(fx.brands, brand)
	}

	for _, name := range []string{"Oriental", "Floral"} {
		category := &domain.Category{ID: uuid.New(), Name: name, Slug: domain.Slugify(name), CreatedAt: base}
		if err := categoryRepo.Create(ctx, category); err != nil {
			t.Fatalf("failed to create category: %v", err)
		}
		fx.categories = append(fx.categories, category)
	}

	for i := 0; i < 20; i++ {
		var brand *domain.Brand
		var gender domain.Gender
		switch {
		case i < 6:
			brand, gender = fx.brands[i%2], domain.GenderFemme
		case i < 10:
			brand, gender = fx.brands[0], domain.GenderHomme
		case i < 14:
			brand, gender = fx.brands[2], domain.GenderFemme
		default:
			brand, gender = fx.brands[3], domain.GenderUnisex
		}

		description := "Un sillage boisé et lumineux."
		if i == 7 {
			description = "Un accord gourmand de Vanille Bourbon."
		}

		concentration := fixtureConcentrations[i%3]
		volume := 50 + 25*(i%3)
		name := fmt.Sprintf("Essence %02d", i)

		product := &domain.Product{
			ID:            uuid.New(),
			Slug:          domain.Slugify(name),
			Name:          name,
			Description:   description,
			Price:         decimal.NewFromInt(int64(40 + (i%5)*10)).Add(decimal.RequireFromString("0.50")),
			Volume:        &volume,
			Concentration: &concentration,
			Gender:        gender,
			TopNotes:      []string{"Bergamote", "Poivre rose"},
			HeartNotes:    []string{"Jasmin"},
			BaseNotes:     []string{"Musc", "Ambre"},
			Images:        []string{fmt.Sprintf("https://images.example.com/%02d.jpg", i)},
			Featured:      i%4 == 0,
			InStock:       i%5 != 0,
			BrandID:       brand.ID,
			CategoryID:    fx.categories[i%2].ID,
			// (i*7)%20 is a permutation, so creation order differs from insertion order
			CreatedAt: base.Add(time.Duration((i*7)%20) * time.Hour),
			UpdatedAt: base,
		}
		if i == 3 {
			product.OriginalPrice = decimal.NewNullDecimal(decimal.NewFromInt(120))
		}

		if err := productRepo.Create(ctx, product); err != nil {
			t.Fatalf("failed to create product %d: %v", i, err)
		}
		fx.products = append(fx.products, product)
	}

	return fx
}

func (fx *catalogFixture) brandName(id uuid.UUID) string {
	for _, b := range fx.brands {
		if b.ID == id {
			return b.Name
		}
	}
	return ""
}

func (fx *catalogFixture) categoryName(id uuid.UUID) string {
	for _, c := range fx.categories {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

// matches evaluates filter against a fixture product in memory
func (fx *catalogFixture) matches(p *domain.Product, filter domain.ProductFilter) bool {
	in := func(values []string, v string) bool {
		if len(values) == 0 {
			return true
		}
		for _, s := range values {
			if s == v {
				return true
			}
		}
		return false
	}

	if !in(filter.Selected(domain.DimensionGender), string(p.Gender)) ||
		!in(filter.Selected(domain.DimensionConcentration), *p.Concentration) ||
		!in(filter.Selected(domain.DimensionBrand), p.BrandID.String()) ||
		!in(filter.Selected(domain.DimensionCategory), p.CategoryID.String()) {
		return false
	}
	if filter.Featured && !p.Featured {
		return false
	}
	if filter.InStock && !p.InStock {
		return false
	}

	if term := strings.ToLower(filter.SearchTerm()); term != "" {
		fields := []string{p.Name, p.Description, fx.brandName(p.BrandID), fx.categoryName(p.CategoryID)}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), term) {
				return true
			}
		}
		return false
	}

	return true
}

func (fx *catalogFixture) expectedIDs(filter domain.ProductFilter) map[uuid.UUID]bool {
	ids := map[uuid.UUID]bool{}
	for _, p := range fx.products {
		if fx.matches(p, filter) {
			ids[p.ID] = true
		}
	}
	return ids
}
