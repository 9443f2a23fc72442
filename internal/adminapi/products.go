package adminapi

import (
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/bajakarsa/bilahstore/internal/catalog"
	"github.com/bajakarsa/bilahstore/internal/domain"
	"github.com/bajakarsa/bilahstore/internal/webserver"
)

// productPayload is the admin form/JSON body. Numeric fields arrive as
// either strings or numbers depending on the client, so they bind loosely
// and get coerced afterwards.
type productPayload struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Price    interface{} `json:"price"`
	Type     string      `json:"type"`
	Category string      `json:"category"`

	Images []string `json:"images"`
	Image  string   `json:"image"`

	Steel          string `json:"steel"`
	HandleMaterial string `json:"handleMaterial"`
	BladeStyle     string `json:"bladeStyle"`
	HandleStyle    string `json:"handleStyle"`

	BladeLengthCm    interface{} `json:"bladeLengthCm"`
	BladeLength      interface{} `json:"bladeLength"`
	HandleLengthCm   interface{} `json:"handleLengthCm"`
	HandleLength     interface{} `json:"handleLength"`
	BladeThicknessMm interface{} `json:"bladeThicknessMm"`
	WeightGr         interface{} `json:"weightGr"`

	Description string                 `json:"description"`
	Specs       map[string]interface{} `json:"specs"`
}

func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products", updateProduct)
	webserver.ApiDELETE("/products", deleteProduct)
}

func coerceNumber(v interface{}) float64 {
	if v == nil {
		return 0
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func coerceOptionalNumber(v interface{}) *float64 {
	if v == nil {
		return nil
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return nil
	}
	f := coerceNumber(v)
	if f == 0 {
		return nil
	}
	return &f
}

func (p productPayload) toRaw() domain.RawProduct {
	return domain.RawProduct{
		ID:               strings.TrimSpace(p.ID),
		Title:            strings.TrimSpace(p.Title),
		Price:            coerceNumber(p.Price),
		Type:             strings.TrimSpace(p.Type),
		Category:         strings.TrimSpace(p.Category),
		Images:           p.Images,
		Image:            strings.TrimSpace(p.Image),
		Steel:            strings.TrimSpace(p.Steel),
		HandleMaterial:   strings.TrimSpace(p.HandleMaterial),
		BladeStyle:       strings.TrimSpace(p.BladeStyle),
		HandleStyle:      strings.TrimSpace(p.HandleStyle),
		BladeLengthCm:    coerceNumber(p.BladeLengthCm),
		BladeLength:      coerceNumber(p.BladeLength),
		HandleLengthCm:   coerceNumber(p.HandleLengthCm),
		HandleLength:     coerceNumber(p.HandleLength),
		BladeThicknessMm: coerceOptionalNumber(p.BladeThicknessMm),
		WeightGr:         coerceOptionalNumber(p.WeightGr),
		Description:      p.Description,
		Specs:            p.Specs,
	}
}

// validateProduct returns the list of missing or invalid field names.
// Every problem is reported together so the admin form can mark all bad
// fields in one round trip.
func validateProduct(p domain.UnifiedProduct) []string {
	var missing []string
	if p.Title == "" {
		missing = append(missing, "title")
	}
	if p.Price <= 0 || math.IsInf(p.Price, 0) {
		missing = append(missing, "price")
	}
	if !domain.IsValidCategory(p.Category) {
		missing = append(missing, "category")
	}
	if len(p.Images) == 0 {
		missing = append(missing, "images")
	}
	if p.Steel == "" {
		missing = append(missing, "steel")
	}
	if p.HandleMaterial == "" {
		missing = append(missing, "handleMaterial")
	}
	if p.BladeStyle == "" {
		missing = append(missing, "bladeStyle")
	}
	if p.HandleStyle == "" {
		missing = append(missing, "handleStyle")
	}
	if p.BladeLengthCm <= 0 {
		missing = append(missing, "bladeLengthCm")
	}
	if p.HandleLengthCm <= 0 {
		missing = append(missing, "handleLengthCm")
	}
	return missing
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)
	products, err := GetStore(c).Products()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to read products", err.Error())
	}

	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		ql := strings.ToLower(q)
		filtered := products[:0]
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Title), ql) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	total := int64(len(products))
	start := (page - 1) * pageSize
	if start > len(products) {
		start = len(products)
	}
	end := start + pageSize
	if end > len(products) {
		end = len(products)
	}
	return paged(c, products[start:end], total, page, pageSize)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}

	raw := payload.toRaw()
	if raw.ID == "" {
		raw.ID = catalog.NewProductID()
	}
	now := time.Now().Format(time.RFC3339)
	raw.CreatedAt = now
	raw.UpdatedAt = now
	if who := currentAttribution(c); who != nil {
		raw.CreatedBy = who
		raw.UpdatedBy = who
	}

	product := catalog.Normalize(raw)
	if missing := validateProduct(product); len(missing) > 0 {
		return fail(c, http.StatusBadRequest, "VALIDATION_FAILED",
			"Field yang kurang: "+strings.Join(missing, ", "), missing)
	}

	pstore := GetStore(c)
	products, err := pstore.Products()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to read products", err.Error())
	}
	products = append(products, product)
	if err := pstore.SaveProducts(products); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to save product", err.Error())
	}

	zap.L().Info("product created", zap.String("id", product.ID), zap.String("title", product.Title))
	return ok(c, product)
}

func updateProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	id := strings.TrimSpace(payload.ID)
	if id == "" {
		return fail(c, http.StatusBadRequest, "MISSING_ID", "Product id is required", nil)
	}

	pstore := GetStore(c)
	products, err := pstore.Products()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to read products", err.Error())
	}

	idx := -1
	for i, p := range products {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}

	merged := mergePatch(products[idx], payload)
	merged.UpdatedAt = time.Now().Format(time.RFC3339)
	if who := currentAttribution(c); who != nil {
		merged.UpdatedBy = who
	}

	if missing := validateProduct(merged); len(missing) > 0 {
		return fail(c, http.StatusBadRequest, "VALIDATION_FAILED",
			"Field yang kurang: "+strings.Join(missing, ", "), missing)
	}

	products[idx] = merged
	if err := pstore.SaveProducts(products); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to save product", err.Error())
	}

	zap.L().Info("product updated", zap.String("id", merged.ID))
	return ok(c, merged)
}

// mergePatch overlays the payload's present fields onto the stored
// record, then renormalizes so derived fields (type, image alias) stay
// consistent.
func mergePatch(existing domain.UnifiedProduct, payload productPayload) domain.UnifiedProduct {
	patch := payload.toRaw()

	raw := domain.RawProduct{
		ID:               existing.ID,
		Title:            existing.Title,
		Price:            existing.Price,
		Type:             string(existing.Type),
		Category:         existing.Category,
		Images:           existing.Images,
		Image:            existing.Image,
		Steel:            existing.Steel,
		HandleMaterial:   existing.HandleMaterial,
		BladeStyle:       existing.BladeStyle,
		HandleStyle:      existing.HandleStyle,
		BladeLengthCm:    existing.BladeLengthCm,
		HandleLengthCm:   existing.HandleLengthCm,
		BladeThicknessMm: existing.BladeThicknessMm,
		WeightGr:         existing.WeightGr,
		Description:      existing.Description,
		Specs:            existing.Specs,
		CreatedAt:        existing.CreatedAt,
		UpdatedAt:        existing.UpdatedAt,
		CreatedBy:        existing.CreatedBy,
		UpdatedBy:        existing.UpdatedBy,
	}

	if patch.Title != "" {
		raw.Title = patch.Title
	}
	if patch.Price > 0 {
		raw.Price = patch.Price
	}
	if patch.Type != "" {
		raw.Type = patch.Type
	}
	if patch.Category != "" {
		raw.Category = patch.Category
	}
	if len(patch.Images) > 0 {
		raw.Images = patch.Images
		raw.Image = ""
	} else if patch.Image != "" {
		raw.Images = nil
		raw.Image = patch.Image
	}
	if patch.Steel != "" {
		raw.Steel = patch.Steel
	}
	if patch.HandleMaterial != "" {
		raw.HandleMaterial = patch.HandleMaterial
	}
	if patch.BladeStyle != "" {
		raw.BladeStyle = patch.BladeStyle
	}
	if patch.HandleStyle != "" {
		raw.HandleStyle = patch.HandleStyle
	}
	if v := patch.BladeLengthCm + patch.BladeLength; v > 0 {
		raw.BladeLengthCm = patch.BladeLengthCm
		raw.BladeLength = patch.BladeLength
	}
	if v := patch.HandleLengthCm + patch.HandleLength; v > 0 {
		raw.HandleLengthCm = patch.HandleLengthCm
		raw.HandleLength = patch.HandleLength
	}
	if patch.BladeThicknessMm != nil {
		raw.BladeThicknessMm = patch.BladeThicknessMm
	}
	if patch.WeightGr != nil {
		raw.WeightGr = patch.WeightGr
	}
	if payload.Description != "" {
		raw.Description = payload.Description
	}
	if payload.Specs != nil {
		raw.Specs = payload.Specs
	}

	return catalog.Normalize(raw)
}

func deleteProduct(c echo.Context) error {
	id := strings.TrimSpace(c.QueryParam("id"))
	if id == "" {
		// allow id in the body for form-style clients
		var payload struct {
			ID string `json:"id" form:"id"`
		}
		_ = c.Bind(&payload)
		id = strings.TrimSpace(payload.ID)
	}
	if id == "" {
		return fail(c, http.StatusBadRequest, "MISSING_ID", "Product id is required", nil)
	}

	pstore := GetStore(c)
	products, err := pstore.Products()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to read products", err.Error())
	}

	kept := make([]domain.UnifiedProduct, 0, len(products))
	found := false
	for _, p := range products {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	if err := pstore.SaveProducts(kept); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to delete product", err.Error())
	}

	zap.L().Info("product deleted", zap.String("id", id))
	return ok(c, map[string]interface{}{"id": id})
}
