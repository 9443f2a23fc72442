package importer

import (
	"reflect"
	"strings"
	"testing"
)

const fullHeader = "Title,Price,Category,Images,Steel,HandleMaterial,BladeLengthCm,HandleLengthCm,BladeStyle,HandleStyle"

func TestParseWellFormedRoundTrip(t *testing.T) {
	csv := fullHeader + "\n" +
		"Tanto X,500000,Tactical,/img1.jpg;/img2.jpg,D2,G10,12,11,Tanto,Textured\n" +
		"Santoku Pro,900000,Kitchen,/img3.jpg,VG-10,Walnut,17,13,Santoku,Octagonal\n"

	rows := ParseProductCSV(csv)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows got %d", len(rows))
	}
	if rows[0].Title != "Tanto X" || rows[1].Title != "Santoku Pro" {
		t.Errorf("rows out of order: %q, %q", rows[0].Title, rows[1].Title)
	}

	first := rows[0]
	if first.Type != "knife" {
		t.Errorf("type = %q, want knife inferred from Tactical", first.Type)
	}
	if !reflect.DeepEqual(first.Images, []string{"/img1.jpg", "/img2.jpg"}) {
		t.Errorf("images = %v", first.Images)
	}
	if first.Price != 500000 {
		t.Errorf("price = %v, want 500000", first.Price)
	}
	if first.BladeLengthCm != 12 || first.HandleLengthCm != 11 {
		t.Errorf("lengths = %v/%v", first.BladeLengthCm, first.HandleLengthCm)
	}
}

func TestParseQuotedComma(t *testing.T) {
	csv := "Title,Price,Category,Images,Steel,HandleMaterial,BladeLengthCm,HandleLengthCm,BladeStyle,HandleStyle,Description\n" +
		`Tanto X,500000,Tactical,/i.jpg,D2,G10,12,11,Tanto,Textured,"Rp 1,000,000 class"`
	rows := ParseProductCSV(csv)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row got %d", len(rows))
	}
	if rows[0].Description != "Rp 1,000,000 class" {
		t.Errorf("quoted comma mishandled: %q", rows[0].Description)
	}
}

func TestParseEscapedQuote(t *testing.T) {
	csv := "Title,Price,Category,Images,Steel,HandleMaterial,BladeLengthCm,HandleLengthCm,BladeStyle,HandleStyle,Description\n" +
		`Tanto X,500000,Tactical,/i.jpg,D2,G10,12,11,Tanto,Textured,"He said ""hi"""`
	rows := ParseProductCSV(csv)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row got %d", len(rows))
	}
	if rows[0].Description != `He said "hi"` {
		t.Errorf("escaped quote mishandled: %q", rows[0].Description)
	}
}

func TestParseValueQuoteStripping(t *testing.T) {
	csv := fullHeader + "\n" +
		`Tanto X,500000,Tactical,/i.jpg,D2,G10,12,11,"""Drop Point""",Textured`
	rows := ParseProductCSV(csv)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row got %d", len(rows))
	}
	if rows[0].BladeStyle != "Drop Point" {
		t.Errorf("bladeStyle = %q, want secondary quotes stripped", rows[0].BladeStyle)
	}
}

func TestParseMissingRequiredColumnFailsClosed(t *testing.T) {
	required := []string{"Title", "Price", "Category", "Steel", "HandleMaterial", "BladeStyle", "HandleStyle", "Images", "BladeLengthCm", "HandleLengthCm"}
	for _, drop := range required {
		var cols []string
		for _, c := range strings.Split(fullHeader, ",") {
			if c != drop {
				cols = append(cols, c)
			}
		}
		csv := strings.Join(cols, ",") + "\n" +
			strings.Join(make([]string, len(cols)), "x,") + "x"
		if rows := ParseProductCSV(csv); len(rows) != 0 {
			t.Errorf("dropping %s: got %d rows, want whole-file rejection", drop, len(rows))
		}
	}
}

func TestParseIndonesianHeaders(t *testing.T) {
	csv := "Judul,Harga,Kategori,Gambar,Baja,Bahan Gagang,Panjang Bilah,Panjang Gagang,Gaya Bilah,Gaya Gagang\n" +
		"Golok Raja,700000,Machete,/g.jpg,5160,Sono,30,14,Full Flat,Contoured"
	rows := ParseProductCSV(csv)
	if len(rows) != 1 {
		t.Fatalf("bilingual headers not resolved, got %d rows", len(rows))
	}
	if rows[0].Type != "tool" {
		t.Errorf("type = %q, want tool inferred from Machete", rows[0].Type)
	}
	if rows[0].Steel != "5160" || rows[0].HandleMaterial != "Sono" {
		t.Errorf("material fields = %q/%q", rows[0].Steel, rows[0].HandleMaterial)
	}
}

func TestParseLegacyAliasColumns(t *testing.T) {
	// unsuffixed length names and singular image count as the column pair
	csv := "Title,Price,Category,Image,Steel,HandleMaterial,BladeLength,HandleLength,BladeStyle,HandleStyle\n" +
		"Old One,300000,Kitchen,/old.jpg,1095,Oak,15,12,Clip,Smooth"
	rows := ParseProductCSV(csv)
	if len(rows) != 1 {
		t.Fatalf("legacy alias columns not accepted, got %d rows", len(rows))
	}
	if rows[0].BladeLengthCm != 15 || rows[0].HandleLengthCm != 12 {
		t.Errorf("legacy lengths = %v/%v", rows[0].BladeLengthCm, rows[0].HandleLengthCm)
	}
	if !reflect.DeepEqual(rows[0].Images, []string{"/old.jpg"}) {
		t.Errorf("images = %v", rows[0].Images)
	}
}

func TestParseSkipsInvalidRows(t *testing.T) {
	csv := fullHeader + "\n" +
		",500000,Tactical,/i.jpg,D2,G10,12,11,Tanto,Textured\n" + // empty title
		"No Image,500000,Tactical,,D2,G10,12,11,Tanto,Textured\n" + // empty image
		"Bad Cat,500000,Gadget,/i.jpg,D2,G10,12,11,Tanto,Textured\n" + // unknown category
		"Bad Price,abc,Tactical,/i.jpg,D2,G10,12,11,Tanto,Textured\n" + // unparseable price
		"No Steel,500000,Tactical,/i.jpg,,G10,12,11,Tanto,Textured\n" + // empty steel
		"Good One,500000,Tactical,/i.jpg,D2,G10,12,11,Tanto,Textured\n"
	rows := ParseProductCSV(csv)
	if len(rows) != 1 {
		t.Fatalf("expected only the valid row, got %d", len(rows))
	}
	if rows[0].Title != "Good One" {
		t.Errorf("kept row = %q", rows[0].Title)
	}
}

func TestParseBlankLinesAndCRLF(t *testing.T) {
	csv := fullHeader + "\r\n\r\n" +
		"Tanto X,500000,Tactical,/i.jpg,D2,G10,12,11,Tanto,Textured\r\n\r\n"
	rows := ParseProductCSV(csv)
	if len(rows) != 1 {
		t.Fatalf("CRLF/blank-line input got %d rows, want 1", len(rows))
	}
}

func TestParseNoDataRows(t *testing.T) {
	if rows := ParseProductCSV(fullHeader); rows != nil {
		t.Errorf("header-only input = %v, want empty", rows)
	}
	if rows := ParseProductCSV(""); rows != nil {
		t.Errorf("empty input = %v, want empty", rows)
	}
}

func TestParseSpecsColumn(t *testing.T) {
	csv := fullHeader + ",Specs\n" +
		`Tanto X,500000,Tactical,/i.jpg,D2,G10,12,11,Tanto,Textured,"{""hrc"": 60, ""finish"": ""stonewash""}"` + "\n" +
		"Plain,400000,Tactical,/i.jpg,D2,G10,12,11,Tanto,Textured,not-json"
	rows := ParseProductCSV(csv)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows got %d", len(rows))
	}
	if rows[0].Specs == nil || rows[0].Specs["finish"] != "stonewash" {
		t.Errorf("specs = %v", rows[0].Specs)
	}
	if rows[1].Specs != nil {
		t.Errorf("invalid specs JSON should be ignored, got %v", rows[1].Specs)
	}
}

func TestParseOptionalNumericColumns(t *testing.T) {
	csv := fullHeader + ",BladeThicknessMm,WeightGr\n" +
		"Tanto X,500000,Tactical,/i.jpg,D2,G10,12,11,Tanto,Textured,4.5,\n"
	rows := ParseProductCSV(csv)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row got %d", len(rows))
	}
	if rows[0].BladeThicknessMm == nil || *rows[0].BladeThicknessMm != 4.5 {
		t.Errorf("bladeThicknessMm = %v", rows[0].BladeThicknessMm)
	}
	if rows[0].WeightGr != nil {
		t.Errorf("empty optional cell should stay absent, got %v", *rows[0].WeightGr)
	}
}

func TestTokenizeTrimsAllFields(t *testing.T) {
	fields := tokenizeLine(` a , " b " ,c`)
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(fields, want) {
		t.Errorf("tokenize = %v, want %v (unconditional trim)", fields, want)
	}
}
