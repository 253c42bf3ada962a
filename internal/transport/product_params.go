package transport

import (
	"net/url"
	"strconv"
	"strings"

	"maison-gda/internal/domain"
	"maison-gda/internal/middleware"
)

// listProductsParams is the raw query string of GET /api/products
type listProductsParams struct {
	Gender        []string `query:"gender" validate:"dive,oneof=HOMME FEMME UNISEX"`
	Concentration []string `query:"concentration" validate:"dive,max=50"`
	BrandID       []string `query:"brandId" validate:"dive,uuid"`
	CategoryID    []string `query:"categoryId" validate:"dive,uuid"`
	Search        string   `query:"search" validate:"max=200"`
	SortBy        string   `query:"sortBy" validate:"oneof=createdAt name price"`
	SortOrder     string   `query:"sortOrder" validate:"oneof=asc desc"`
	Page          int      `query:"page" validate:"gte=1,lte=1000000"`
	Limit         int      `query:"limit" validate:"gte=1,lte=100"`
	Featured      bool     `query:"featured"`
	InStock       bool     `query:"inStock"`
}

// parseListProductsParams reads the listing query string. Integer fields that
// do not parse are reported as validation errors.
func parseListProductsParams(q url.Values) (listProductsParams, []middleware.ValidationError) {
	params := listProductsParams{
		Gender:        upper(multiValue(q, "gender")),
		Concentration: multiValue(q, "concentration"),
		BrandID:       multiValue(q, "brandId"),
		CategoryID:    multiValue(q, "categoryId"),
		Search:        q.Get("search"),
		SortBy:        withDefault(q.Get("sortBy"), string(domain.SortByCreatedAt)),
		SortOrder:     withDefault(strings.ToLower(q.Get("sortOrder")), string(domain.SortDesc)),
		Featured:      q.Get("featured") == "true",
		InStock:       q.Get("inStock") == "true",
	}

	var errs []middleware.ValidationError
	var ok bool
	if params.Page, ok = intParam(q, "page", domain.DefaultPage); !ok {
		errs = append(errs, middleware.ValidationError{Field: "page", Message: "Must be an integer"})
	}
	if params.Limit, ok = intParam(q, "limit", domain.DefaultPageLimit); !ok {
		errs = append(errs, middleware.ValidationError{Field: "limit", Message: "Must be an integer"})
	}

	return params, errs
}

// Query converts validated parameters into a catalog query
func (p listProductsParams) Query() domain.ProductQuery {
	filter := domain.ProductFilter{
		Featured: p.Featured,
		InStock:  p.InStock,
		Search:   p.Search,
	}
	filter.Add(domain.DimensionGender, p.Gender...)
	filter.Add(domain.DimensionConcentration, p.Concentration...)
	filter.Add(domain.DimensionBrand, p.BrandID...)
	filter.Add(domain.DimensionCategory, p.CategoryID...)

	return domain.ProductQuery{
		Filter:    filter,
		SortBy:    domain.SortField(p.SortBy),
		SortOrder: domain.SortOrder(p.SortOrder),
		Page:      p.Page,
		Limit:     p.Limit,
	}
}

// multiValue accepts both repeated keys (brandId=a&brandId=b) and
// comma-separated values (brandId=a,b)
func multiValue(q url.Values, key string) []string {
	var values []string
	for _, raw := range q[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
	}
	return values
}

func upper(values []string) []string {
	for i, v := range values {
		values[i] = strings.ToUpper(v)
	}
	return values
}

func withDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}

func intParam(q url.Values, key string, def int) (int, bool) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
