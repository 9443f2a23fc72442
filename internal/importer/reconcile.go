package importer

import (
	"fmt"
	"strings"

	"github.com/bajakarsa/bilahstore/internal/catalog"
	"github.com/bajakarsa/bilahstore/internal/domain"
)

// MergeMode governs how imported rows reconcile against stored products.
type MergeMode string

const (
	// ModeAppend adds only rows whose id and title are both new.
	ModeAppend MergeMode = "append"
	// ModeUpdate overwrites matching ids and adds the rest.
	ModeUpdate MergeMode = "update"
	// ModeReplace keeps every row; the caller persists the result as the
	// complete new collection, discarding whatever was stored before.
	ModeReplace MergeMode = "replace"
)

// ParseMergeMode maps a request string onto a MergeMode, defaulting to
// append for anything unrecognized.
func ParseMergeMode(s string) MergeMode {
	switch MergeMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeUpdate:
		return ModeUpdate
	case ModeReplace:
		return ModeReplace
	default:
		return ModeAppend
	}
}

// ImportStats counts per-row dispositions of one import batch.
type ImportStats struct {
	Added   int      `json:"added"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// ReconcileResult carries the rows to persist, in file order, plus stats.
type ReconcileResult struct {
	ToPersist []domain.UnifiedProduct
	Stats     ImportStats
}

// Reconcile applies the merge mode row by row against the existing
// product set. Rows lacking an id get one generated. A row that panics
// during conversion is recorded in Stats.Errors and excluded; the batch
// never aborts.
func Reconcile(rows []domain.RawProduct, existing []domain.UnifiedProduct, mode MergeMode) ReconcileResult {
	ids := make(map[string]struct{}, len(existing))
	titles := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		ids[p.ID] = struct{}{}
		titles[strings.ToLower(p.Title)] = struct{}{}
	}

	result := ReconcileResult{Stats: ImportStats{Errors: []string{}}}

	for i, raw := range rows {
		product, err := convertRowSafe(raw)
		if err != nil {
			result.Stats.Errors = append(result.Stats.Errors,
				fmt.Sprintf("baris %d (%s): %v", i+1, raw.Title, err))
			continue
		}

		_, idKnown := ids[product.ID]
		_, titleKnown := titles[strings.ToLower(product.Title)]

		switch mode {
		case ModeAppend:
			if idKnown || titleKnown {
				result.Stats.Skipped++
				continue
			}
			result.Stats.Added++
		case ModeUpdate:
			if idKnown {
				result.Stats.Updated++
			} else {
				result.Stats.Added++
			}
		case ModeReplace:
			result.Stats.Added++
		}
		result.ToPersist = append(result.ToPersist, product)
	}
	return result
}

// convertRowSafe normalizes one row, trapping panics from malformed data
// that slipped past the parser so a bad row cannot sink the batch.
func convertRowSafe(raw domain.RawProduct) (product domain.UnifiedProduct, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("konversi gagal: %v", r)
		}
	}()
	if raw.ID == "" {
		raw.ID = catalog.NewProductID()
	}
	return catalog.Normalize(raw), nil
}
