package lineitems

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vsinha/reagentprep/pkg/domain/entities"
)

func testConfig(maxReagents, maxChemicals int) entities.LabConfig {
	return entities.LabConfig{
		Name:                           "TEST",
		MaxReagents:                    maxReagents,
		MaxReagentChemicals:            maxChemicals,
		ReagentInterfaceAmountStartRow: 17,
	}
}

func reagent(t *testing.T, key entities.ReagentKey, chems ...entities.ChemicalAbbr) *entities.Reagent {
	t.Helper()
	r, err := entities.NewReagent(key, chems, nil)
	if err != nil {
		t.Fatalf("Failed to create reagent: %v", err)
	}
	return r
}

func labels(items []entities.LineItem) []string {
	out := make([]string, len(items))
	for i, li := range items {
		out[i] = li.ReagentName() + ":" + li.Label()
	}
	return out
}

func TestBuild_PadsChemicalsAndGaps(t *testing.T) {
	reagents := entities.Reagents{
		1: reagent(t, 1, "NaCl", "H2O"),
		3: reagent(t, 3, "GBL"),
	}

	items, err := Build(reagents, testConfig(3, 2))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := []string{
		"Reagent1:Final Volume = ", "Reagent1:NaCl", "Reagent1:H2O",
		"Reagent2:Final Volume = ", "Reagent2:null", "Reagent2:null",
		"Reagent3:Final Volume = ", "Reagent3:GBL", "Reagent3:null",
	}
	if diff := cmp.Diff(want, labels(items)); diff != "" {
		t.Errorf("line items mismatch (-want +got):\n%s", diff)
	}

	for i, li := range items {
		if li.Index != i {
			t.Errorf("Row %d has index %d", i, li.Index)
		}
		wantPos := i % 3
		if li.Position != wantPos {
			t.Errorf("Row %d expected position %d, got %d", i, wantPos, li.Position)
		}
	}
}

func TestBuild_RowCountIsFixed(t *testing.T) {
	testCases := []struct {
		name     string
		reagents entities.Reagents
		maxR     int
		maxC     int
	}{
		{"empty run", entities.Reagents{}, 7, 4},
		{"single reagent", entities.Reagents{1: reagent(t, 1, "A")}, 7, 4},
		{"last slot only", entities.Reagents{5: reagent(t, 5, "A", "B", "C")}, 5, 3},
		{"all slots full", entities.Reagents{1: reagent(t, 1, "A", "B"), 2: reagent(t, 2, "C", "D")}, 2, 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			items, err := Build(tc.reagents, testConfig(tc.maxR, tc.maxC))
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if len(items) != tc.maxR*(tc.maxC+1) {
				t.Errorf("Expected %d rows, got %d", tc.maxR*(tc.maxC+1), len(items))
			}
		})
	}
}

func TestBuild_UnpopulatedSlotIsNullBlock(t *testing.T) {
	items, err := Build(entities.Reagents{2: reagent(t, 2, "GBL")}, testConfig(2, 3))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	block := items[:4]
	if block[0].Kind != entities.MarkerLine {
		t.Errorf("Expected marker first, got %s", block[0].Kind)
	}
	for _, li := range block[1:] {
		if li.Kind != entities.NullLine || li.Reagent != 1 {
			t.Errorf("Expected null row for Reagent1, got %+v", li)
		}
	}
}

func TestBuild_RejectsConfigMismatch(t *testing.T) {
	testCases := []struct {
		name     string
		reagents entities.Reagents
		cfg      entities.LabConfig
	}{
		{"key above max", entities.Reagents{4: reagent(t, 4, "A")}, testConfig(3, 2)},
		{"too many chemicals", entities.Reagents{1: reagent(t, 1, "A", "B", "C")}, testConfig(3, 2)},
		{"key mismatch", entities.Reagents{2: reagent(t, 1, "A")}, testConfig(3, 2)},
		{"nil reagent", entities.Reagents{1: nil}, testConfig(3, 2)},
		{"invalid config", entities.Reagents{}, testConfig(0, 2)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Build(tc.reagents, tc.cfg)
			if !errors.Is(err, entities.ErrConfigMismatch) {
				t.Fatalf("Expected ErrConfigMismatch, got %v", err)
			}
		})
	}
}
