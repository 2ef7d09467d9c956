package csv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestLoader_ReadChemicals(t *testing.T) {
	input := `abbreviation,name,molecular_weight,density
PbI2,lead iodide,461.01,6.16
GBL,gamma-butyrolactone,86.09,1.12
`
	chemicals, err := NewLoader().ReadChemicals(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Failed to read chemicals: %v", err)
	}
	if len(chemicals) != 2 {
		t.Fatalf("Expected 2 chemicals, got %d", len(chemicals))
	}
	if chemicals[0].Abbreviation != "PbI2" || !chemicals[0].Density.Equal(decimal.RequireFromString("6.16")) {
		t.Errorf("Unexpected first chemical %+v", chemicals[0])
	}
}

func TestLoader_ReadChemicals_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expectError string
	}{
		{"header only", "abbreviation,name,molecular_weight,density\n", "chemicals CSV must have header and at least one data row"},
		{"bad header", "abbr,name,mw,density\nX,x,1,1\n", "chemicals CSV header mismatch"},
		{"bad weight", "abbreviation,name,molecular_weight,density\nX,x,heavy,1\n", "chemicals CSV row 2: invalid molecular_weight: heavy"},
		{"zero density", "abbreviation,name,molecular_weight,density\nX,x,1,0\n", "chemicals CSV row 2: density must be positive for X, got 0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader().ReadChemicals(strings.NewReader(tc.input))
			if err == nil {
				t.Fatalf("Expected error for %s", tc.name)
			}
			if !strings.Contains(err.Error(), tc.expectError) {
				t.Errorf("Expected error containing '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestLoader_ReadVolumes(t *testing.T) {
	input := `Reagent1 (ul),Reagent3 (ul)
100,
250.5,40
`
	vt, err := NewLoader().ReadVolumes(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Failed to read volumes: %v", err)
	}
	if len(vt.Columns) != 2 {
		t.Fatalf("Expected 2 columns, got %d", len(vt.Columns))
	}
	if vt.Columns[1].Reagent != 3 {
		t.Errorf("Expected second column to be reagent 3, got %d", vt.Columns[1].Reagent)
	}
	if !vt.Columns[0].Sum().Equal(decimal.RequireFromString("350.5")) {
		t.Errorf("Expected sum 350.5, got %s", vt.Columns[0].Sum())
	}
	if !vt.Columns[1].Volumes[0].IsZero() {
		t.Errorf("Expected blank cell to be zero, got %s", vt.Columns[1].Volumes[0])
	}
}

func TestLoader_ReadVolumes_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"unknown header", "Solvent (ul)\n1\n"},
		{"duplicate header", "Reagent1 (ul),Reagent1 (ul)\n1,2\n"},
		{"negative volume", "Reagent1 (ul)\n-5\n"},
		{"not a number", "Reagent1 (ul)\nlots\n"},
		{"header only", "Reagent1 (ul)\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewLoader().ReadVolumes(strings.NewReader(tc.input)); err == nil {
				t.Fatalf("Expected error for %s", tc.name)
			}
		})
	}
}

func TestLoader_LoadFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "volumes.csv")
	if err := os.WriteFile(path, []byte("Reagent2 (ul)\n12\n"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	vt, err := NewLoader().LoadVolumes(path)
	if err != nil {
		t.Fatalf("Failed to load volumes: %v", err)
	}
	if vt.Experiments() != 1 {
		t.Errorf("Expected 1 experiment, got %d", vt.Experiments())
	}

	if _, err := NewLoader().LoadChemicals(filepath.Join(dir, "missing.csv")); err == nil {
		t.Error("Expected error for missing chemicals file")
	}
}
