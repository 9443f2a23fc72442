package adminapi

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/bajakarsa/bilahstore/internal/domain"
	"github.com/bajakarsa/bilahstore/internal/importer"
	"github.com/bajakarsa/bilahstore/internal/webserver"
)

func registerImportRoutes() {
	webserver.ApiPOST("/products/import", importProducts)
}

// importProducts ingests a CSV or XLSX catalog file. Multipart form:
// `file` plus an optional `mode` of append|update|replace (append by
// default). Partial success is normal; per-row problems land in
// stats.errors without aborting the batch.
func importProducts(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "MISSING_FILE", "File tidak ditemukan", nil)
	}
	mode := importer.ParseMergeMode(c.FormValue("mode"))

	f, err := fileHeader.Open()
	if err != nil {
		return fail(c, http.StatusBadRequest, "UNREADABLE_FILE", "File tidak bisa dibaca", err.Error())
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return fail(c, http.StatusBadRequest, "UNREADABLE_FILE", "File tidak bisa dibaca", err.Error())
	}

	var rows []domain.RawProduct
	if strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
		rows, err = importer.ParseProductXLSX(data)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_XLSX", "File XLSX tidak valid", err.Error())
		}
	} else {
		rows = importer.ParseProductCSV(string(data))
	}
	if len(rows) == 0 {
		return fail(c, http.StatusBadRequest, "EMPTY_CSV", "File CSV kosong atau tidak valid", nil)
	}

	// Stamp attribution on every row before reconciliation.
	if who := currentAttribution(c); who != nil {
		for i := range rows {
			rows[i].CreatedBy = who
			rows[i].UpdatedBy = who
		}
	}

	application := GetApp(c)
	pstore := application.Store()
	existing, err := pstore.Products()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to read products", err.Error())
	}

	result := importer.Reconcile(rows, existing, mode)

	var newList []domain.UnifiedProduct
	switch mode {
	case importer.ModeReplace:
		// Wholesale replacement: the imported file becomes the catalog.
		newList = result.ToPersist
	case importer.ModeUpdate:
		byID := make(map[string]domain.UnifiedProduct, len(result.ToPersist))
		for _, p := range result.ToPersist {
			byID[p.ID] = p
		}
		for _, p := range existing {
			if updated, found := byID[p.ID]; found {
				newList = append(newList, updated)
				delete(byID, p.ID)
			} else {
				newList = append(newList, p)
			}
		}
		for _, p := range result.ToPersist {
			if _, pending := byID[p.ID]; pending {
				newList = append(newList, p)
			}
		}
	default:
		newList = append(existing, result.ToPersist...)
	}

	if err := pstore.SaveProducts(newList); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to save products", err.Error())
	}

	batchID := application.NextBatchID()
	zap.L().Info("catalog import",
		zap.String("batch", batchID),
		zap.String("mode", string(mode)),
		zap.String("file", fileHeader.Filename),
		zap.Int("rows", len(rows)),
		zap.Int("added", result.Stats.Added),
		zap.Int("updated", result.Stats.Updated),
		zap.Int("skipped", result.Stats.Skipped),
		zap.Int("errors", len(result.Stats.Errors)))

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"stats":   result.Stats,
		"message": importMessage(result.Stats),
	})
}

func importMessage(stats importer.ImportStats) string {
	parts := []string{}
	if stats.Added > 0 {
		parts = append(parts, "ditambah "+strconv.Itoa(stats.Added))
	}
	if stats.Updated > 0 {
		parts = append(parts, "diperbarui "+strconv.Itoa(stats.Updated))
	}
	if stats.Skipped > 0 {
		parts = append(parts, "dilewati "+strconv.Itoa(stats.Skipped))
	}
	if len(parts) == 0 {
		return "Impor selesai"
	}
	return "Impor selesai: " + strings.Join(parts, ", ")
}
