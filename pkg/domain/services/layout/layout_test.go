package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/vsinha/reagentprep/pkg/domain/entities"
)

func vols(values ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromInt(v)
	}
	return out
}

func sites(wells []Well) []string {
	out := make([]string, len(wells))
	for i, w := range wells {
		out[i] = w.Site
	}
	return out
}

func TestLiquidClass_Thresholds(t *testing.T) {
	testCases := []struct {
		volume int64
		want   string
	}{
		{0, LowVolumeClass},
		{49, LowVolumeClass},
		{50, StandardVolumeClass},
		{299, StandardVolumeClass},
		{300, HighVolumeClass},
		{1200, HighVolumeClass},
	}
	for _, tc := range testCases {
		if got := LiquidClass(decimal.NewFromInt(tc.volume)); got != tc.want {
			t.Errorf("volume %d: expected %s, got %s", tc.volume, tc.want, got)
		}
	}
}

func TestLiquidClasses_PerSlot(t *testing.T) {
	vt := &entities.VolumeTable{Columns: []entities.VolumeColumn{
		{Name: "Reagent1 (ul)", Reagent: 1, Volumes: vols(10, 320)},
		{Name: "Reagent2 (ul)", Reagent: 2, Volumes: vols(60, 0)},
	}}
	got := LiquidClasses(vt, 3)
	want := []string{HighVolumeClass, StandardVolumeClass, LowVolumeClass}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("liquid classes mismatch (-want +got):\n%s", diff)
	}
}

func TestPadVolumeColumns(t *testing.T) {
	vt := &entities.VolumeTable{Columns: []entities.VolumeColumn{
		{Name: "Reagent3 (ul)", Reagent: 3, Volumes: vols(1, 2)},
		{Name: "Reagent1 (ul)", Reagent: 1, Volumes: vols(5, 6)},
	}}
	padded := PadVolumeColumns(vt, 4)

	var names []string
	for _, col := range padded.Columns {
		names = append(names, col.Name)
	}
	want := []string{"Reagent1 (ul)", "Reagent2 (ul)", "Reagent3 (ul)", "Reagent4 (ul)"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
	if len(padded.Columns[1].Volumes) != 2 || !padded.Columns[1].Volumes[1].IsZero() {
		t.Errorf("Expected zero-filled Reagent2 column, got %v", padded.Columns[1].Volumes)
	}
	if len(vt.Columns) != 2 {
		t.Error("PadVolumeColumns must not modify its input")
	}
}

func TestWellList(t *testing.T) {
	wells := WellList("Plate1", 10)
	want := []string{"A1", "C1", "E1", "G1", "B1", "D1", "F1", "H1", "A2", "C2"}
	if diff := cmp.Diff(want, sites(wells)); diff != "" {
		t.Errorf("well order mismatch (-want +got):\n%s", diff)
	}
	for _, w := range wells {
		if w.Labware != "Plate1" {
			t.Errorf("Expected labware Plate1, got %s", w.Labware)
		}
	}
	if len(WellList("Plate1", 0)) != 0 {
		t.Error("Expected no wells for zero count")
	}
}

func TestWellListWF3(t *testing.T) {
	got := sites(WellListWF3("Tray", 12))
	want := []string{"A1", "C1", "E1", "G1", "B2", "D2", "F2", "H2", "A3", "C3", "E3", "G3"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("WF3 well order mismatch (-want +got):\n%s", diff)
	}
}

func TestWellListWF3Small(t *testing.T) {
	wells, err := WellListWF3Small("Tray", 6)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := []string{"A1", "C1", "E1", "G1", "A3", "C3"}
	if diff := cmp.Diff(want, sites(wells)); diff != "" {
		t.Errorf("WF3 small well order mismatch (-want +got):\n%s", diff)
	}

	if _, err := WellListWF3Small("Tray", 25); err == nil {
		t.Error("Expected error beyond tray capacity")
	}
}

func TestSplitWF3(t *testing.T) {
	vt := &entities.VolumeTable{Columns: []entities.VolumeColumn{
		{Name: "Reagent1 (ul)", Reagent: 1, Volumes: vols(1, 2, 3, 4, 5)},
		{Name: "Reagent2 (ul)", Reagent: 2, Volumes: vols(10, 20, 30, 40, 50)},
	}}
	split := SplitWF3(vt, []entities.ReagentKey{2})

	toInts := func(ds []decimal.Decimal) []int64 {
		out := make([]int64, len(ds))
		for i, d := range ds {
			out[i] = d.IntPart()
		}
		return out
	}

	wantNormal := []int64{1, 2, 3, 4, 0, 0, 0, 0, 5, 0, 0, 0, 0}
	wantSplit := []int64{0, 0, 0, 0, 10, 20, 30, 40, 0, 0, 0, 0, 50}
	if diff := cmp.Diff(wantNormal, toInts(split.Columns[0].Volumes)); diff != "" {
		t.Errorf("normal column mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantSplit, toInts(split.Columns[1].Volumes)); diff != "" {
		t.Errorf("split column mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitWF3_FullGroups(t *testing.T) {
	vt := &entities.VolumeTable{Columns: []entities.VolumeColumn{
		{Name: "Reagent1 (ul)", Reagent: 1, Volumes: vols(1, 2, 3, 4, 5, 6, 7, 8)},
	}}
	split := SplitWF3(vt, nil)
	if got := split.Experiments(); got != 16 {
		t.Errorf("Expected 16 rows, got %d", got)
	}
}

func TestECLColumns(t *testing.T) {
	reagents := entities.Reagents{
		1: {Key: 1, Identity: `Model[Sample, "GBL"]`, PreRxnTemperature: "25"},
		3: {Key: 3, Identity: `Model[Sample, "PbI2 stock"]`},
	}

	if diff := cmp.Diff([]string{`Model[Sample, "GBL"]`, "null", `Model[Sample, "PbI2 stock"]`, "null"},
		ReagentIdentities(reagents, 4)); diff != "" {
		t.Errorf("identities mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{ECLPipettingModel, "null", ECLPipettingModel},
		ECLLiquidClasses(reagents, 2)); diff != "" {
		t.Errorf("liquid classes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"25", "null", "null"}, ECLTemperatures(reagents, 3)); diff != "" {
		t.Errorf("temperatures mismatch (-want +got):\n%s", diff)
	}
}
