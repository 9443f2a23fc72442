package catalog

import (
	"sort"
	"strings"

	"github.com/bajakarsa/bilahstore/internal/domain"
	"github.com/montanaflynn/stats"
)

// Wildcard matches every value when used in a FilterSpec field.
const Wildcard = "all"

// Fallback facet ranges used when the candidate set is empty.
const (
	DefaultPriceFloor   = 0
	DefaultPriceCeiling = 10000000
	DefaultBladeFloor   = 0
	DefaultBladeCeiling = 50
)

// FilterSpec describes one storefront query. Empty Search and Wildcard
// string fields match everything; a zero max bound disables that bound.
type FilterSpec struct {
	Type     string `json:"type" query:"type"`
	Category string `json:"category" query:"category"`
	Search   string `json:"search" query:"search"`
	Steel    string `json:"steel" query:"steel"`
	Handle   string `json:"handle" query:"handle"`
	Maker    string `json:"maker" query:"maker"`

	PriceMin float64 `json:"priceMin" query:"priceMin"`
	PriceMax float64 `json:"priceMax" query:"priceMax"`
	BladeMin float64 `json:"bladeMin" query:"bladeMin"`
	BladeMax float64 `json:"bladeMax" query:"bladeMax"`

	SortBy    string `json:"sortBy" query:"sortBy"`       // price | title | category
	SortOrder string `json:"sortOrder" query:"sortOrder"` // asc | desc
}

// Range is an inclusive [Min, Max] facet bound.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Facets lists the filter options derived from the whole candidate set,
// independent of the currently applied filter so that selecting one filter
// never shrinks the other dropdowns.
type Facets struct {
	Steels      []string `json:"steels"`
	Handles     []string `json:"handles"`
	Makers      []string `json:"makers"`
	PriceRange  Range    `json:"priceRange"`
	BladeLength Range    `json:"bladeLength"`
}

// QueryResult is the filtered view plus the pre-filter facets.
type QueryResult struct {
	Results []domain.UnifiedProduct `json:"results"`
	Facets  Facets                  `json:"facets"`
}

func filterActive(v string) bool {
	return v != "" && v != Wildcard
}

func matches(p domain.UnifiedProduct, f FilterSpec) bool {
	if filterActive(f.Type) && string(p.Type) != f.Type {
		return false
	}
	if filterActive(f.Category) && p.Category != f.Category {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	if filterActive(f.Steel) && p.Steel != f.Steel {
		return false
	}
	if filterActive(f.Handle) && p.HandleMaterial != f.Handle {
		return false
	}
	if filterActive(f.Maker) {
		made := p.CreatedBy != nil && p.CreatedBy.Name == f.Maker
		updated := p.UpdatedBy != nil && p.UpdatedBy.Name == f.Maker
		if !made && !updated {
			return false
		}
	}
	if p.Price < f.PriceMin {
		return false
	}
	if f.PriceMax > 0 && p.Price > f.PriceMax {
		return false
	}
	if p.BladeLengthCm < f.BladeMin {
		return false
	}
	if f.BladeMax > 0 && p.BladeLengthCm > f.BladeMax {
		return false
	}
	return true
}

func sortProducts(list []domain.UnifiedProduct, sortBy, sortOrder string) {
	desc := sortOrder == "desc"
	less := func(a, b domain.UnifiedProduct) bool {
		switch sortBy {
		case "title":
			return a.Title < b.Title
		case "category":
			return a.Category < b.Category
		default:
			return a.Price < b.Price
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if desc {
			return less(list[j], list[i])
		}
		return less(list[i], list[j])
	})
}

// Query filters and sorts the given products. Facets are always derived
// from the full input set, not the filtered result.
func Query(all []domain.UnifiedProduct, f FilterSpec) QueryResult {
	results := make([]domain.UnifiedProduct, 0, len(all))
	for _, p := range all {
		if matches(p, f) {
			results = append(results, p)
		}
	}
	if f.SortBy != "" {
		sortProducts(results, f.SortBy, f.SortOrder)
	}
	return QueryResult{Results: results, Facets: DeriveFacets(all)}
}

// DeriveFacets computes the distinct filter option sets over products.
func DeriveFacets(products []domain.UnifiedProduct) Facets {
	steelSet := map[string]struct{}{}
	handleSet := map[string]struct{}{}
	makerSet := map[string]struct{}{}
	var prices, blades []float64

	for _, p := range products {
		if p.Steel != "" {
			steelSet[p.Steel] = struct{}{}
		}
		if p.HandleMaterial != "" {
			handleSet[p.HandleMaterial] = struct{}{}
		}
		if p.CreatedBy != nil && p.CreatedBy.Name != "" {
			makerSet[p.CreatedBy.Name] = struct{}{}
		}
		if p.UpdatedBy != nil && p.UpdatedBy.Name != "" {
			makerSet[p.UpdatedBy.Name] = struct{}{}
		}
		if p.Price > 0 {
			prices = append(prices, p.Price)
		}
		if p.BladeLengthCm > 0 {
			blades = append(blades, p.BladeLengthCm)
		}
	}

	return Facets{
		Steels:      sortedKeys(steelSet),
		Handles:     sortedKeys(handleSet),
		Makers:      sortedKeys(makerSet),
		PriceRange:  rangeOf(prices, DefaultPriceFloor, DefaultPriceCeiling),
		BladeLength: rangeOf(blades, DefaultBladeFloor, DefaultBladeCeiling),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func rangeOf(values []float64, floor, ceiling float64) Range {
	if len(values) == 0 {
		return Range{Min: floor, Max: ceiling}
	}
	lo, err := stats.Min(values)
	if err != nil {
		lo = floor
	}
	hi, err := stats.Max(values)
	if err != nil {
		hi = ceiling
	}
	return Range{Min: lo, Max: hi}
}
