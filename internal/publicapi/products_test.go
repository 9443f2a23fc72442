package publicapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/bajakarsa/bilahstore/config"
	"github.com/bajakarsa/bilahstore/internal/app"
	"github.com/bajakarsa/bilahstore/internal/domain"
	"github.com/bajakarsa/bilahstore/internal/webserver"
)

func setupPublicServer(t *testing.T, products []domain.UnifiedProduct) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.AppConfig{
		System: config.SysConfig{
			Appid:    "bilahstore-test",
			Location: "Asia/Jakarta",
			Workdir:  dir,
		},
		Web: config.WebConfig{Host: "127.0.0.1", Port: 0, Secret: "test-secret"},
		Storage: config.StorageConfig{
			ProductsFile: filepath.Join(dir, "products.json"),
		},
		Logger: config.LogConfig{Mode: "development", FileEnable: false},
	}

	application := app.NewApplication(cfg)
	application.Init(cfg)
	t.Cleanup(application.Release)

	if err := application.Store().SaveProducts(products); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	webserver.Init(application)
	InitRouter()
}

func get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	webserver.Echo().ServeHTTP(rec, req)
	return rec
}

func sampleCatalog() []domain.UnifiedProduct {
	return []domain.UnifiedProduct{
		{
			ID: "p_a", Title: "Tanto Hitam", Price: 500000,
			Type: domain.TypeKnife, Category: "Tactical",
			Images: []string{"/a.jpg"}, Image: "/a.jpg",
			Steel: "D2", HandleMaterial: "G10",
			BladeLengthCm: 12, HandleLengthCm: 11,
		},
		{
			ID: "p_b", Title: "Golok Kebun", Price: 350000,
			Type: domain.TypeTool, Category: "Machete",
			Images: []string{"/b.jpg"}, Image: "/b.jpg",
			Steel: "5160", HandleMaterial: "Kayu Sonokeling",
			BladeLengthCm: 30, HandleLengthCm: 14,
		},
	}
}

type listResponse struct {
	Success bool                    `json:"success"`
	Results []domain.UnifiedProduct `json:"results"`
	Facets  struct {
		Steels []string `json:"steels"`
	} `json:"facets"`
}

func TestQueryFiltersByType(t *testing.T) {
	setupPublicServer(t, sampleCatalog())

	rec := get(t, "/api/products?type=knife")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp listResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].ID != "p_a" {
		t.Errorf("results = %+v, want only the knife", resp.Results)
	}
	// facets always describe the whole catalog, not the filtered view
	if len(resp.Facets.Steels) != 2 {
		t.Errorf("facet steels = %v, want both steels", resp.Facets.Steels)
	}
}

func TestGetProductByID(t *testing.T) {
	setupPublicServer(t, sampleCatalog())

	rec := get(t, "/api/products/p_b")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	rec = get(t, "/api/products/p_missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestListCategories(t *testing.T) {
	setupPublicServer(t, nil)

	rec := get(t, "/api/categories")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var resp struct {
		Data struct {
			Knife []string `json:"knife"`
			Tool  []string `json:"tool"`
			All   []string `json:"all"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data.Knife) != 4 || len(resp.Data.Tool) != 3 {
		t.Errorf("categories = %+v", resp.Data)
	}
	if len(resp.Data.All) != len(resp.Data.Knife)+len(resp.Data.Tool) {
		t.Errorf("all = %v", resp.Data.All)
	}
}
