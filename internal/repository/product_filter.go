package repository

import (
	"fmt"
	"strings"

	"maison-gda/internal/domain"
)

// dimensionColumns maps each filter dimension onto its products column
var dimensionColumns = map[domain.Dimension]string{
	domain.DimensionGender:        "p.gender",
	domain.DimensionConcentration: "p.concentration",
	domain.DimensionBrand:         "p.brand_id",
	domain.DimensionCategory:      "p.category_id",
}

// sortColumns is the whitelist of ORDER BY targets
var sortColumns = map[domain.SortField]string{
	domain.SortByCreatedAt: "p.created_at",
	domain.SortByName:      "p.name",
	domain.SortByPrice:     "p.price",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildProductPredicate renders filter as a WHERE clause whose placeholders
// start at $startIndex. It returns an empty clause when nothing is constrained.
// Values within a dimension are OR'ed through IN; everything else is AND'ed.
func buildProductPredicate(filter domain.ProductFilter, startIndex int) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := startIndex

	for _, dim := range domain.Dimensions {
		values := filter.Selected(dim)
		if len(values) == 0 {
			continue
		}

		placeholders := make([]string, len(values))
		for i, v := range values {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, v)
			argIndex++
		}
		conditions = append(conditions, fmt.Sprintf("%s IN (%s)", dimensionColumns[dim], strings.Join(placeholders, ", ")))
	}

	if filter.Featured {
		conditions = append(conditions, "p.featured = TRUE")
	}
	if filter.InStock {
		conditions = append(conditions, "p.in_stock = TRUE")
	}

	if term := filter.SearchTerm(); term != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(p.name ILIKE $%[1]d OR p.description ILIKE $%[1]d OR b.name ILIKE $%[1]d OR c.name ILIKE $%[1]d)",
			argIndex,
		))
		args = append(args, "%"+likeEscaper.Replace(term)+"%")
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// buildProductOrder renders the ORDER BY clause with an id tiebreak so that
// consecutive pages never overlap.
func buildProductOrder(sortBy domain.SortField, order domain.SortOrder) string {
	column, ok := sortColumns[sortBy]
	if !ok {
		column = sortColumns[domain.SortByCreatedAt]
	}

	direction := "DESC"
	if order == domain.SortAsc {
		direction = "ASC"
	}

	return fmt.Sprintf("ORDER BY %s %s, p.id ASC", column, direction)
}
