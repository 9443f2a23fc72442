package domain

// Category sets are closed: the storefront filter UI and the CSV importer
// both reject anything outside them. Order here is display order.
var (
	KnifeCategories = []string{"Tactical", "Bushcraft", "Kitchen", "Butcher"}
	ToolCategories  = []string{"Axe", "Machete", "Swords"}
)

// legacyCategoryMap remaps category names that existed before the unified
// schema. Keys are the stored legacy value, verbatim.
var legacyCategoryMap = map[string]struct {
	Type     ProductType
	Category string
}{
	"Hunting":  {TypeKnife, "Tactical"},
	"Outdoor":  {TypeKnife, "Bushcraft"},
	"Survival": {TypeKnife, "Bushcraft"},
	"Chef":     {TypeKnife, "Kitchen"},
	"Dapur":    {TypeKnife, "Kitchen"},
	"Golok":    {TypeTool, "Machete"},
	"Kapak":    {TypeTool, "Axe"},
	"Pedang":   {TypeTool, "Swords"},
}

// IsKnifeCategory reports membership in the knife category set.
func IsKnifeCategory(category string) bool {
	for _, c := range KnifeCategories {
		if c == category {
			return true
		}
	}
	return false
}

// IsToolCategory reports membership in the tool category set.
func IsToolCategory(category string) bool {
	for _, c := range ToolCategories {
		if c == category {
			return true
		}
	}
	return false
}

// IsValidCategory reports membership in either canonical set.
func IsValidCategory(category string) bool {
	return IsKnifeCategory(category) || IsToolCategory(category)
}

// AllCategories returns the full canonical category list, knives first.
func AllCategories() []string {
	out := make([]string, 0, len(KnifeCategories)+len(ToolCategories))
	out = append(out, KnifeCategories...)
	return append(out, ToolCategories...)
}

// ClassifyCategory resolves any category string to its product type and
// canonical category name. Legacy categories are remapped; anything
// unrecognized keeps its category and defaults to knife so that old stored
// records stay readable. Total over all inputs, never fails.
func ClassifyCategory(category string) (ProductType, string) {
	if IsKnifeCategory(category) {
		return TypeKnife, category
	}
	if IsToolCategory(category) {
		return TypeTool, category
	}
	if m, ok := legacyCategoryMap[category]; ok {
		return m.Type, m.Category
	}
	return TypeKnife, category
}
