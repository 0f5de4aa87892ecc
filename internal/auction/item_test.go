package auction

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.json")

	content := `{"8831": "Dreamfoil", "2325": "Bleach"}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if len(catalog) != 2 {
		t.Fatalf("LoadCatalog() size = %d, want 2", len(catalog))
	}
	if catalog["dreamfoil"] != "8831" {
		t.Errorf("catalog[dreamfoil] = %q, want 8831", catalog["dreamfoil"])
	}
	if catalog["bleach"] != "2325" {
		t.Errorf("catalog[bleach] = %q, want 2325", catalog["bleach"])
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	if _, err := LoadCatalog("/nonexistent/items.json"); err == nil {
		t.Error("LoadCatalog() expected error for missing file")
	}
}

func TestFormatPrices(t *testing.T) {
	a := &Item{ID: "1", Name: "dreamfoil", Price: 12233}
	b := &Item{ID: "2", Name: "bleach", Price: 500}
	unknown := &Item{ID: "3", Name: "copper bar"}

	tests := []struct {
		name  string
		items []*Item
		want  string
	}{
		{"nothing", nil, "nothing found"},
		{"single", []*Item{a}, "Average price for 'dreamfoil': 1g 22s 33c"},
		{"multiple", []*Item{a, b}, "Avg prices: dreamfoil: 1g 22s 33c; bleach: 5s"},
		{"unfetched price", []*Item{unknown}, "Average price for 'copper bar': ?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPrices(tt.items); got != tt.want {
				t.Errorf("FormatPrices() = %q, want %q", got, tt.want)
			}
		})
	}
}
