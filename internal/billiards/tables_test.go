package billiards

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltInCatalog(t *testing.T) {
	c := testCatalog(t)
	tables := c.Tables()
	want := []TableType{"rectangle", "l_shape", "circle", "bunimovich", "lorentz"}
	if len(tables) != len(want) {
		t.Fatalf("expected %d tables, got %d", len(want), len(tables))
	}
	for i, tt := range want {
		if tables[i].Type != tt {
			t.Errorf("table %d = %q, want %q", i, tables[i].Type, tt)
		}
		if tables[i].Engine == "" || tables[i].PreviewKey == "" {
			t.Errorf("table %q missing engine or preview", tt)
		}
	}

	rect, _ := c.Lookup("rectangle")
	if !rect.Resizable() || rect.Domain != Rectangular(2, 2) {
		t.Errorf("unexpected rectangle spec %+v", rect)
	}
	circle, _ := c.Lookup("circle")
	if circle.Resizable() || circle.Domain != Circular(2) {
		t.Errorf("unexpected circle spec %+v", circle)
	}
	if _, err := c.Lookup("hexagon"); !errors.Is(err, ErrUnknownTable) {
		t.Errorf("expected ErrUnknownTable, got %v", err)
	}
}

func TestParseCatalogErrors(t *testing.T) {
	tests := map[string]string{
		"empty":     "tables: []",
		"no type":   "tables:\n  - domain: {shape: circular, radius: 1}",
		"duplicate": "tables:\n  - type: a\n    domain: {shape: circular, radius: 1}\n  - type: a\n    domain: {shape: circular, radius: 1}",
		"bad shape": "tables:\n  - type: a\n    domain: {shape: star}",
		"bad range": "tables:\n  - type: a\n    domain: {shape: circular, radius: 1}\n    resize: {min: 1, max: 2}",
		"not yaml":  "tables: [",
	}
	for name, doc := range tests {
		if _, err := ParseCatalog([]byte(doc)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	doc := "tables:\n  - type: square\n    preview: sq.png\n    domain: {shape: rectangular, width: 3, height: 3}\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatal(err)
	}
	sq, err := c.Lookup("square")
	if err != nil {
		t.Fatal(err)
	}
	if sq.Engine != "square" {
		t.Errorf("engine should default to the table type, got %q", sq.Engine)
	}
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
