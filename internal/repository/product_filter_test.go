package repository

import (
	"regexp"
	"strconv"
	"testing"

	"maison-gda/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestBuildProductPredicate_Empty(t *testing.T) {
	clause, args := buildProductPredicate(domain.ProductFilter{Search: "  "}, 1)
	assert.Empty(t, clause)
	assert.Empty(t, args)
}

func TestBuildProductPredicate_DimensionsInFixedOrder(t *testing.T) {
	var filter domain.ProductFilter
	filter.Add(domain.DimensionCategory, "c1")
	filter.Add(domain.DimensionBrand, "b1", "b2")
	filter.Add(domain.DimensionGender, "FEMME")
	filter.Featured = true
	filter.InStock = true
	filter.Search = " 50%_off "

	clause, args := buildProductPredicate(filter, 3)

	assert.Equal(t,
		"WHERE p.gender IN ($3) AND p.brand_id IN ($4, $5) AND p.category_id IN ($6)"+
			" AND p.featured = TRUE AND p.in_stock = TRUE"+
			" AND (p.name ILIKE $7 OR p.description ILIKE $7 OR b.name ILIKE $7 OR c.name ILIKE $7)",
		clause,
	)
	assert.Equal(t, []interface{}{"FEMME", "b1", "b2", "c1", `%50\%\_off%`}, args)
}

func TestBuildProductOrder(t *testing.T) {
	assert.Equal(t, "ORDER BY p.price ASC, p.id ASC", buildProductOrder(domain.SortByPrice, domain.SortAsc))
	assert.Equal(t, "ORDER BY p.name DESC, p.id ASC", buildProductOrder(domain.SortByName, domain.SortDesc))
	assert.Equal(t, "ORDER BY p.created_at DESC, p.id ASC", buildProductOrder("stock; DROP TABLE products", "sideways"))
}

var placeholderPattern = regexp.MustCompile(`\$(\d+)`)

func TestProperty_PlaceholdersMatchArguments(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("placeholders are numbered consecutively from the start index", prop.ForAll(
		func(genders, brands []string, search string, start int) bool {
			var filter domain.ProductFilter
			filter.Add(domain.DimensionGender, genders...)
			filter.Add(domain.DimensionBrand, brands...)
			filter.Search = search

			clause, args := buildProductPredicate(filter, start)
			if len(args) == 0 {
				return clause == ""
			}

			seen := map[int]bool{}
			for _, m := range placeholderPattern.FindAllStringSubmatch(clause, -1) {
				n, _ := strconv.Atoi(m[1])
				seen[n] = true
			}
			if len(seen) != len(args) {
				return false
			}
			for i := range args {
				if !seen[start+i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
		gen.SliceOf(gen.AlphaString()),
		gen.AlphaString(),
		gen.IntRange(1, 5),
	))

	properties.TestingRun(t)
}
