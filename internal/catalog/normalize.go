package catalog

import (
	"strconv"
	"time"

	"github.com/bajakarsa/bilahstore/internal/domain"
	"github.com/labstack/gommon/random"
)

const base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewProductID generates a product id of the form
// p_<base36 unix-millis><4 random base36 chars>. Unique with overwhelming
// probability; collisions are not handled downstream.
func NewProductID() string {
	return "p_" + strconv.FormatInt(time.Now().UnixMilli(), 36) +
		random.String(4, base36Chars)
}

// Normalize converts any raw or legacy product shape into the canonical
// UnifiedProduct. Best-effort and total: malformed values degrade to zero
// values, nothing is rejected here. Validation is the API layer's job.
// Normalizing an already-canonical product yields an equal product.
func Normalize(raw domain.RawProduct) domain.UnifiedProduct {
	ptype, category := domain.ClassifyCategory(raw.Category)
	// An explicit type field wins over the category-derived one, but only
	// when it is a recognized value.
	if explicit := domain.ProductType(raw.Type); explicit.Valid() {
		ptype = explicit
	}

	images := raw.Images
	if len(images) == 0 && raw.Image != "" {
		images = []string{raw.Image}
	}
	if images == nil {
		images = []string{}
	}

	image := raw.Image
	if len(images) > 0 {
		image = images[0]
	}

	bladeLen := raw.BladeLengthCm
	if bladeLen == 0 {
		bladeLen = raw.BladeLength
	}
	handleLen := raw.HandleLengthCm
	if handleLen == 0 {
		handleLen = raw.HandleLength
	}

	createdAt := raw.CreatedAt
	updatedAt := raw.UpdatedAt
	if createdAt == "" {
		createdAt = time.Now().Format(time.RFC3339)
	}
	if updatedAt == "" {
		updatedAt = time.Now().Format(time.RFC3339)
	}

	return domain.UnifiedProduct{
		ID:               raw.ID,
		Title:            raw.Title,
		Price:            raw.Price,
		Type:             ptype,
		Category:         category,
		Images:           images,
		Image:            image,
		Steel:            raw.Steel,
		HandleMaterial:   raw.HandleMaterial,
		BladeStyle:       raw.BladeStyle,
		HandleStyle:      raw.HandleStyle,
		BladeLengthCm:    bladeLen,
		HandleLengthCm:   handleLen,
		BladeThicknessMm: raw.BladeThicknessMm,
		WeightGr:         raw.WeightGr,
		Description:      raw.Description,
		Specs:            raw.Specs,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
		CreatedBy:        raw.CreatedBy,
		UpdatedBy:        raw.UpdatedBy,
	}
}

// Renormalize runs an already-canonical product back through Normalize,
// used when reading stored data of unknown vintage.
func Renormalize(p domain.UnifiedProduct) domain.UnifiedProduct {
	return Normalize(domain.RawProduct{
		ID:               p.ID,
		Title:            p.Title,
		Price:            p.Price,
		Type:             string(p.Type),
		Category:         p.Category,
		Images:           p.Images,
		Image:            p.Image,
		Steel:            p.Steel,
		HandleMaterial:   p.HandleMaterial,
		BladeStyle:       p.BladeStyle,
		HandleStyle:      p.HandleStyle,
		BladeLengthCm:    p.BladeLengthCm,
		HandleLengthCm:   p.HandleLengthCm,
		BladeThicknessMm: p.BladeThicknessMm,
		WeightGr:         p.WeightGr,
		Description:      p.Description,
		Specs:            p.Specs,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		CreatedBy:        p.CreatedBy,
		UpdatedBy:        p.UpdatedBy,
	})
}
