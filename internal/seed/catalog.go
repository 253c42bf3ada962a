package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

//go:embed catalog.json
var catalogJSON []byte

// featuredProducts is the fixed set of products placed on the front page
var featuredProducts = map[string]bool{
	"Vanilla Exotica":             true,
	"La Rose Bleue":               true,
	"Soleil de Jeddah Mango Kiss": true,
	"Numero 5":                    true,
	"Instant Crush":               true,
	"Hacivat":                     true,
	"Lune Feline":                 true,
	"Retourne-Toi":                true,
}

const (
	defaultConcentration = "Eau de Parfum"
	favoritesPerUser     = 5
)

// markup is added to the price to form the crossed-out original price
var markup = decimal.NewFromInt(15)

type catalog struct {
	Brands     []taxonEntry   `json:"brands"`
	Categories []taxonEntry   `json:"categories"`
	Products   []productEntry `json:"products"`
}

type taxonEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type productEntry struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Volume      int             `json:"volume"`
	TopNotes    []string        `json:"topNotes"`
	HeartNotes  []string        `json:"heartNotes"`
	BaseNotes   []string        `json:"baseNotes"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
}

// loadCatalog decodes the demonstration catalog and checks that every
// product references a known brand and category
func loadCatalog() (*catalog, error) {
	var c catalog
	if err := json.Unmarshal(catalogJSON, &c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	brands := names(c.Brands)
	categories := names(c.Categories)
	for _, p := range c.Products {
		if !brands[p.Brand] {
			return nil, fmt.Errorf("product %q references unknown brand %q", p.Name, p.Brand)
		}
		if !categories[p.Category] {
			return nil, fmt.Errorf("product %q references unknown category %q", p.Name, p.Category)
		}
	}

	return &c, nil
}

func names(entries []taxonEntry) map[string]bool {
	set := make(map[string]bool, len(entries))
	for _, e := range entries {
		set[e.Name] = true
	}
	return set
}
