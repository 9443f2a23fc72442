package importer

import (
	"math"
	"strings"
	"unicode"

	"github.com/bajakarsa/bilahstore/internal/domain"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Column aliases accepted in header rows, English and Indonesian. Matching
// happens on the normalized form (lowercased, whitespace/hyphen/underscore
// stripped), so "Handle Material", "handle_material" and "Bahan Gagang"
// all resolve.
var fieldAliases = map[string][]string{
	"id":               {"id"},
	"title":            {"title", "judul", "nama", "namaproduk"},
	"price":            {"price", "harga"},
	"type":             {"type", "tipe", "jenis"},
	"category":         {"category", "kategori"},
	"images":           {"images", "gambar", "foto"},
	"image":            {"image", "gambarproduk"},
	"steel":            {"steel", "baja", "jenisbaja"},
	"handleMaterial":   {"handlematerial", "bahangagang", "gagang"},
	"bladeStyle":       {"bladestyle", "gayabilah", "modelbilah"},
	"handleStyle":      {"handlestyle", "gayagagang", "modelgagang"},
	"bladeLengthCm":    {"bladelengthcm", "panjangbilah", "panjangbilahcm"},
	"bladeLength":      {"bladelength"},
	"handleLengthCm":   {"handlelengthcm", "panjanggagang", "panjanggagangcm"},
	"handleLength":     {"handlelength"},
	"bladeThicknessMm": {"bladethicknessmm", "bladethickness", "tebalbilah"},
	"weightGr":         {"weightgr", "weight", "berat"},
	"description":      {"description", "deskripsi", "keterangan"},
	"specs":            {"specs", "spesifikasi"},
}

// Columns that must resolve for the file to parse at all. Image and the
// two length fields are handled separately because either alias column
// satisfies them.
var requiredColumns = []string{
	"title", "price", "category", "steel", "handleMaterial", "bladeStyle", "handleStyle",
}

// skipReason explains why a data row was dropped. Internal only: the
// parser's contract is silent skip, but keeping the reason explicit makes
// the row validator testable on its own.
type skipReason string

const (
	skipNone          skipReason = ""
	skipEmptyTitle    skipReason = "empty title"
	skipEmptyImage    skipReason = "empty image"
	skipBadCategory   skipReason = "unknown category"
	skipBadNumber     skipReason = "non-finite number"
	skipEmptyMaterial skipReason = "empty material field"
)

// ParseProductCSV parses UTF-8 comma-separated text into product rows.
// Quote-aware per RFC4180 (doubled-quote escape), blank lines ignored.
// If any required column is missing from the header the whole file is
// rejected and an empty result returned. Invalid data rows are skipped
// silently.
func ParseProductCSV(text string) []domain.RawProduct {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) < 2 {
		return nil
	}

	table := make([][]string, 0, len(lines))
	for _, line := range lines {
		table = append(table, tokenizeLine(line))
	}
	return parseTable(table)
}

// parseTable runs header resolution and per-row conversion over an
// already-tokenized table. Shared by the CSV and XLSX front ends.
func parseTable(table [][]string) []domain.RawProduct {
	cols := resolveColumns(table[0])
	if cols == nil {
		return nil
	}

	var rows []domain.RawProduct
	for _, cells := range table[1:] {
		row, reason := convertRow(cols, cells)
		if reason != skipNone {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// tokenizeLine splits one CSV line on commas outside quotes. A doubled
// quote inside a quoted field emits a literal quote. Every field is
// trimmed afterwards, quoted or not; legacy files depend on that.
func tokenizeLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"' && inQuotes:
			if i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = false
			}
		case ch == '"':
			inQuotes = true
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	return append(fields, strings.TrimSpace(cur.String()))
}

// normalizeHeader lowercases and strips whitespace, hyphens and
// underscores so header matching survives formatting differences.
func normalizeHeader(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

// columnIndex maps canonical field names to header positions; -1 means
// the column is absent.
type columnIndex map[string]int

func findColumn(headers []string, aliases []string) int {
	for _, alias := range aliases {
		for i, h := range headers {
			if h == alias {
				return i
			}
		}
	}
	return -1
}

// resolveColumns locates every known field in the header row. Returns nil
// when a hard-required column, the image column pair, or either length
// column pair cannot be found (fail-closed at file level).
func resolveColumns(header []string) columnIndex {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = normalizeHeader(h)
	}

	cols := columnIndex{}
	for field, aliases := range fieldAliases {
		cols[field] = findColumn(normalized, aliases)
	}

	for _, field := range requiredColumns {
		if cols[field] < 0 {
			return nil
		}
	}
	if cols["images"] < 0 && cols["image"] < 0 {
		return nil
	}
	if cols["bladeLengthCm"] < 0 && cols["bladeLength"] < 0 {
		return nil
	}
	if cols["handleLengthCm"] < 0 && cols["handleLength"] < 0 {
		return nil
	}
	return cols
}

func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

// stripValueQuotes removes one matching pair of surrounding single or
// double quotes. Secondary cleanup for values like "Drop Point" embedded
// inside an already-unquoted cell; distinct from tokenizer quoting.
func stripValueQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '\'' || first == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// coerceRequired converts a required numeric cell. Empty cells become 0;
// anything unparseable or non-finite fails the row.
func coerceRequired(cell string) (float64, bool) {
	if cell == "" {
		return 0, true
	}
	v, err := cast.ToFloat64E(cell)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// coerceOptional converts an optional numeric cell. Empty or unparseable
// stays absent.
func coerceOptional(cell string) *float64 {
	if cell == "" {
		return nil
	}
	v, err := cast.ToFloat64E(cell)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// convertRow validates and converts a single tokenized data row.
func convertRow(cols columnIndex, cells []string) (domain.RawProduct, skipReason) {
	title := stripValueQuotes(cellAt(cells, cols["title"]))
	if title == "" {
		return domain.RawProduct{}, skipEmptyTitle
	}

	imageCell := cellAt(cells, cols["images"])
	if imageCell == "" {
		imageCell = cellAt(cells, cols["image"])
	}
	if imageCell == "" {
		return domain.RawProduct{}, skipEmptyImage
	}
	var images []string
	for _, part := range strings.Split(imageCell, ";") {
		part = stripValueQuotes(strings.TrimSpace(part))
		if part != "" {
			images = append(images, part)
		}
	}
	if len(images) == 0 {
		return domain.RawProduct{}, skipEmptyImage
	}

	category := stripValueQuotes(cellAt(cells, cols["category"]))
	if !domain.IsValidCategory(category) {
		return domain.RawProduct{}, skipBadCategory
	}

	ptype := strings.ToLower(stripValueQuotes(cellAt(cells, cols["type"])))
	if !domain.ProductType(ptype).Valid() {
		if domain.IsToolCategory(category) {
			ptype = string(domain.TypeTool)
		} else {
			ptype = string(domain.TypeKnife)
		}
	}

	price, ok := coerceRequired(cellAt(cells, cols["price"]))
	if !ok {
		return domain.RawProduct{}, skipBadNumber
	}
	bladeCell := cellAt(cells, cols["bladeLengthCm"])
	if bladeCell == "" {
		bladeCell = cellAt(cells, cols["bladeLength"])
	}
	bladeLen, ok := coerceRequired(bladeCell)
	if !ok {
		return domain.RawProduct{}, skipBadNumber
	}
	handleCell := cellAt(cells, cols["handleLengthCm"])
	if handleCell == "" {
		handleCell = cellAt(cells, cols["handleLength"])
	}
	handleLen, ok := coerceRequired(handleCell)
	if !ok {
		return domain.RawProduct{}, skipBadNumber
	}

	steel := stripValueQuotes(cellAt(cells, cols["steel"]))
	handleMat := stripValueQuotes(cellAt(cells, cols["handleMaterial"]))
	bladeStyle := stripValueQuotes(cellAt(cells, cols["bladeStyle"]))
	handleStyle := stripValueQuotes(cellAt(cells, cols["handleStyle"]))
	if steel == "" || handleMat == "" || bladeStyle == "" || handleStyle == "" {
		return domain.RawProduct{}, skipEmptyMaterial
	}

	row := domain.RawProduct{
		ID:               cellAt(cells, cols["id"]),
		Title:            title,
		Price:            price,
		Type:             ptype,
		Category:         category,
		Images:           images,
		Steel:            steel,
		HandleMaterial:   handleMat,
		BladeStyle:       bladeStyle,
		HandleStyle:      handleStyle,
		BladeLengthCm:    bladeLen,
		HandleLengthCm:   handleLen,
		BladeThicknessMm: coerceOptional(cellAt(cells, cols["bladeThicknessMm"])),
		WeightGr:         coerceOptional(cellAt(cells, cols["weightGr"])),
		Description:      stripValueQuotes(cellAt(cells, cols["description"])),
	}

	if specsCell := cellAt(cells, cols["specs"]); specsCell != "" {
		var specs map[string]interface{}
		if err := json.Unmarshal([]byte(specsCell), &specs); err == nil {
			row.Specs = specs
		}
		// invalid JSON: specs stays absent, row is still good
	}

	return row, skipNone
}
