package importer

import (
	"strings"
	"testing"

	"github.com/bajakarsa/bilahstore/internal/catalog"
	"github.com/bajakarsa/bilahstore/internal/domain"
)

func validRow(title string) domain.RawProduct {
	return domain.RawProduct{
		Title: title, Price: 500000, Category: "Tactical",
		Images: []string{"/i.jpg"}, Steel: "D2", HandleMaterial: "G10",
		BladeStyle: "Tanto", HandleStyle: "Textured",
		BladeLengthCm: 12, HandleLengthCm: 11,
	}
}

func existingCatalog() []domain.UnifiedProduct {
	return []domain.UnifiedProduct{
		catalog.Normalize(func() domain.RawProduct {
			r := validRow("Chef Knife")
			r.ID = "p_existing1"
			return r
		}()),
	}
}

func TestAppendSkipsDuplicateTitleCaseInsensitive(t *testing.T) {
	row := validRow("chef knife") // duplicate title, different case, no id
	res := Reconcile([]domain.RawProduct{row}, existingCatalog(), ModeAppend)
	if res.Stats.Skipped != 1 || res.Stats.Added != 0 {
		t.Errorf("stats = %+v, want 1 skipped 0 added", res.Stats)
	}
	if len(res.ToPersist) != 0 {
		t.Errorf("toPersist = %d rows, want none", len(res.ToPersist))
	}
}

func TestAppendSkipsDuplicateID(t *testing.T) {
	row := validRow("Brand New Title")
	row.ID = "p_existing1"
	res := Reconcile([]domain.RawProduct{row}, existingCatalog(), ModeAppend)
	if res.Stats.Skipped != 1 || res.Stats.Added != 0 {
		t.Errorf("stats = %+v, want skip on known id", res.Stats)
	}
}

func TestAppendAddsNovelRow(t *testing.T) {
	res := Reconcile([]domain.RawProduct{validRow("Fresh Blade")}, existingCatalog(), ModeAppend)
	if res.Stats.Added != 1 || res.Stats.Skipped != 0 {
		t.Errorf("stats = %+v, want 1 added", res.Stats)
	}
	if len(res.ToPersist) != 1 {
		t.Fatalf("toPersist = %d rows, want 1", len(res.ToPersist))
	}
	if res.ToPersist[0].ID == "" {
		t.Error("row without id should get one generated")
	}
}

func TestUpdateModeCounts(t *testing.T) {
	known := validRow("Chef Knife V2")
	known.ID = "p_existing1"
	novel := validRow("Novel Blade")

	res := Reconcile([]domain.RawProduct{known, novel}, existingCatalog(), ModeUpdate)
	if res.Stats.Updated != 1 || res.Stats.Added != 1 {
		t.Errorf("stats = %+v, want 1 updated 1 added", res.Stats)
	}
	if len(res.ToPersist) != 2 {
		t.Errorf("toPersist = %d rows, want both", len(res.ToPersist))
	}
}

func TestReplaceModeCountsEverythingAdded(t *testing.T) {
	known := validRow("Chef Knife")
	known.ID = "p_existing1"
	res := Reconcile([]domain.RawProduct{known, validRow("Another")}, existingCatalog(), ModeReplace)
	if res.Stats.Added != 2 || res.Stats.Skipped != 0 || res.Stats.Updated != 0 {
		t.Errorf("stats = %+v, want everything added", res.Stats)
	}
}

func TestReconcilePreservesFileOrder(t *testing.T) {
	rows := []domain.RawProduct{validRow("AAA"), validRow("BBB"), validRow("CCC")}
	res := Reconcile(rows, nil, ModeAppend)
	if len(res.ToPersist) != 3 {
		t.Fatalf("toPersist = %d rows", len(res.ToPersist))
	}
	for i, want := range []string{"AAA", "BBB", "CCC"} {
		if res.ToPersist[i].Title != want {
			t.Errorf("position %d = %q, want %q", i, res.ToPersist[i].Title, want)
		}
	}
}

func TestParseMergeModeDefaultsToAppend(t *testing.T) {
	cases := map[string]MergeMode{
		"":        ModeAppend,
		"append":  ModeAppend,
		"UPDATE":  ModeUpdate,
		"Replace": ModeReplace,
		"bogus":   ModeAppend,
	}
	for in, want := range cases {
		if got := ParseMergeMode(in); got != want {
			t.Errorf("ParseMergeMode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestReconcileRecordsErrorsWithoutAborting(t *testing.T) {
	rows := []domain.RawProduct{validRow("OK One"), validRow("OK Two")}
	res := Reconcile(rows, nil, ModeAppend)
	if len(res.Stats.Errors) != 0 {
		t.Errorf("unexpected errors: %v", res.Stats.Errors)
	}
	if res.Stats.Errors == nil {
		t.Error("errors must be an empty slice, not nil, for JSON clients")
	}
	// error messages embed the row title
	msg := strings.Join(res.Stats.Errors, ";")
	if strings.Contains(msg, "OK One") {
		t.Errorf("clean rows must not produce errors: %v", res.Stats.Errors)
	}
}
