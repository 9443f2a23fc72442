package domain

// ProductType discriminates the two product families carried by the store.
type ProductType string

const (
	TypeKnife ProductType = "knife"
	TypeTool  ProductType = "tool"
)

// Valid reports whether t is one of the known product types.
func (t ProductType) Valid() bool {
	return t == TypeKnife || t == TypeTool
}

// Attribution identifies the admin account that created or updated a record.
type Attribution struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UnifiedProduct is the canonical product schema. Every historical shape
// (single-image legacy products, category-specific knife/tool records)
// converts into this one via catalog.Normalize.
type UnifiedProduct struct {
	ID       string      `json:"id" form:"id"`
	Title    string      `json:"title" form:"title"`
	Price    float64     `json:"price" form:"price"`
	Type     ProductType `json:"type" form:"type"`
	Category string      `json:"category" form:"category"`

	// Images is the source of truth; Image mirrors Images[0] for older
	// clients and is never read back once Images is populated.
	Images []string `json:"images"`
	Image  string   `json:"image,omitempty"`

	Steel          string `json:"steel" form:"steel"`
	HandleMaterial string `json:"handleMaterial" form:"handleMaterial"`
	BladeStyle     string `json:"bladeStyle" form:"bladeStyle"`
	HandleStyle    string `json:"handleStyle" form:"handleStyle"`

	BladeLengthCm    float64  `json:"bladeLengthCm" form:"bladeLengthCm"`
	HandleLengthCm   float64  `json:"handleLengthCm" form:"handleLengthCm"`
	BladeThicknessMm *float64 `json:"bladeThicknessMm,omitempty" form:"bladeThicknessMm"`
	WeightGr         *float64 `json:"weightGr,omitempty" form:"weightGr"`

	Description string                 `json:"description,omitempty" form:"description"`
	Specs       map[string]interface{} `json:"specs,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`

	CreatedBy *Attribution `json:"createdBy,omitempty"`
	UpdatedBy *Attribution `json:"updatedBy,omitempty"`
}

// RawProduct is the loose input shape accepted by the normalizer: every
// field optional, legacy aliases included. Values arrive from admin form
// payloads, stored JSON of any vintage, or CSV/XLSX rows.
type RawProduct struct {
	ID       string  `json:"id" form:"id"`
	Title    string  `json:"title" form:"title"`
	Price    float64 `json:"price" form:"price"`
	Type     string  `json:"type" form:"type"`
	Category string  `json:"category" form:"category"`

	Images []string `json:"images"`
	Image  string   `json:"image" form:"image"`

	Steel          string `json:"steel" form:"steel"`
	HandleMaterial string `json:"handleMaterial" form:"handleMaterial"`
	BladeStyle     string `json:"bladeStyle" form:"bladeStyle"`
	HandleStyle    string `json:"handleStyle" form:"handleStyle"`

	BladeLengthCm  float64 `json:"bladeLengthCm" form:"bladeLengthCm"`
	BladeLength    float64 `json:"bladeLength" form:"bladeLength"`
	HandleLengthCm float64 `json:"handleLengthCm" form:"handleLengthCm"`
	HandleLength   float64 `json:"handleLength" form:"handleLength"`

	BladeThicknessMm *float64 `json:"bladeThicknessMm" form:"bladeThicknessMm"`
	WeightGr         *float64 `json:"weightGr" form:"weightGr"`

	Description string                 `json:"description" form:"description"`
	Specs       map[string]interface{} `json:"specs"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`

	CreatedBy *Attribution `json:"createdBy"`
	UpdatedBy *Attribution `json:"updatedBy"`
}
