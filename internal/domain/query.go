package domain

import "strings"

// Dimension is one independently filterable, multi-valued product attribute
type Dimension string

const (
	DimensionGender        Dimension = "gender"
	DimensionConcentration Dimension = "concentration"
	DimensionBrand         Dimension = "brandId"
	DimensionCategory      Dimension = "categoryId"
)

// Dimensions lists every multi-valued dimension in the order predicates are built
var Dimensions = []Dimension{
	DimensionGender,
	DimensionConcentration,
	DimensionBrand,
	DimensionCategory,
}

// ProductFilter is the set of catalog constraints for one listing request.
// Values inside a dimension are alternatives; dimensions are all required.
type ProductFilter struct {
	Values   map[Dimension][]string `json:"values,omitempty"`
	Featured bool                   `json:"featured,omitempty"`
	InStock  bool                   `json:"inStock,omitempty"`
	Search   string                 `json:"search,omitempty"`
}

// Add selects values for a dimension. Blank and repeated values are ignored.
func (f *ProductFilter) Add(d Dimension, values ...string) {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || f.has(d, v) {
			continue
		}
		if f.Values == nil {
			f.Values = make(map[Dimension][]string)
		}
		f.Values[d] = append(f.Values[d], v)
	}
}

func (f *ProductFilter) has(d Dimension, v string) bool {
	for _, existing := range f.Values[d] {
		if existing == v {
			return true
		}
	}
	return false
}

// Selected returns the values chosen for d, nil when d is unconstrained
func (f ProductFilter) Selected(d Dimension) []string {
	return f.Values[d]
}

// SearchTerm returns the trimmed free-text term; empty means no search
func (f ProductFilter) SearchTerm() string {
	return strings.TrimSpace(f.Search)
}

// SortField is a column a product listing can be ordered by
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByName      SortField = "name"
	SortByPrice     SortField = "price"
)

// SortOrder is the direction of a product listing
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	DefaultPage      = 1
	DefaultPageLimit = 12
	MaxPageLimit     = 100
	// MaxPage keeps (page-1)*limit well inside int range
	MaxPage = 1_000_000
)

// ProductQuery is a filter plus ordering and paging
type ProductQuery struct {
	Filter    ProductFilter `json:"filter"`
	SortBy    SortField     `json:"sortBy"`
	SortOrder SortOrder     `json:"sortOrder"`
	Page      int           `json:"page"`
	Limit     int           `json:"limit"`
}

// Normalize fills defaults for unset or out-of-range ordering and paging
func (q ProductQuery) Normalize() ProductQuery {
	switch q.SortBy {
	case SortByCreatedAt, SortByName, SortByPrice:
	default:
		q.SortBy = SortByCreatedAt
	}
	if q.SortOrder != SortAsc && q.SortOrder != SortDesc {
		q.SortOrder = SortDesc
	}
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	return q
}

// Offset is the number of matching rows preceding the requested page
func (q ProductQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Pagination describes where a page sits in the full result set
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NewPagination derives page metadata from the total match count
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// ProductPage is one page of a product listing
type ProductPage struct {
	Products   []*Product `json:"products"`
	Pagination Pagination `json:"pagination"`
}
