package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLabConfig_Validate(t *testing.T) {
	cfg := LabConfig{Name: "LBL", MaxReagents: 7, MaxReagentChemicals: 4, ReagentInterfaceAmountStartRow: 17}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected valid config: %v", err)
	}
	if cfg.TableSize() != 35 {
		t.Errorf("Expected table size 35, got %d", cfg.TableSize())
	}
	if cfg.Alias() != "Reagent" {
		t.Errorf("Expected default alias, got %s", cfg.Alias())
	}

	bad := cfg
	bad.MaxReagentChemicals = 0
	if err := bad.Validate(); err == nil {
		t.Error("Expected error for zero max_reagent_chemicals")
	}

	bad = cfg
	bad.Name = ""
	if err := bad.Validate(); err == nil {
		t.Error("Expected error for empty lab name")
	}
}

func TestLabConfig_ValidateTable(t *testing.T) {
	cfg := LabConfig{MaxReagents: 2, MaxReagentChemicals: 3}
	if err := cfg.ValidateTable(); err != nil {
		t.Errorf("Expected table constants alone to be valid: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected full validation to require a name and start row")
	}

	cfg.MaxReagents = 0
	if err := cfg.ValidateTable(); err == nil {
		t.Error("Expected error for zero max_reagents")
	}
}

func TestVolumeTable_Columns(t *testing.T) {
	d := decimal.NewFromInt
	vt := VolumeTable{Columns: []VolumeColumn{
		{Name: "Reagent1 (ul)", Reagent: 1, Volumes: []decimal.Decimal{d(10), d(350), d(0)}},
		{Name: "Reagent3 (ul)", Reagent: 3, Volumes: []decimal.Decimal{d(5)}},
	}}

	if vt.Experiments() != 3 {
		t.Errorf("Expected 3 experiments, got %d", vt.Experiments())
	}
	col, ok := vt.Column(1)
	if !ok {
		t.Fatal("Expected column for reagent 1")
	}
	if !col.Sum().Equal(d(360)) {
		t.Errorf("Expected sum 360, got %s", col.Sum())
	}
	if !col.Max().Equal(d(350)) {
		t.Errorf("Expected max 350, got %s", col.Max())
	}
	if _, ok := vt.Column(2); ok {
		t.Error("Did not expect a column for reagent 2")
	}
}

func TestParseReagentColumn(t *testing.T) {
	key, ok := ParseReagentColumn("Reagent12 (ul)")
	if !ok || key != 12 {
		t.Errorf("Expected key 12, got %d (%v)", key, ok)
	}
	for _, bad := range []string{"Reagent (ul)", "Reagent0 (ul)", "Reagent1", "Solvent1 (ul)"} {
		if _, ok := ParseReagentColumn(bad); ok {
			t.Errorf("Did not expect %q to parse", bad)
		}
	}
	if ReagentColumnName(4) != "Reagent4 (ul)" {
		t.Errorf("Unexpected column name %s", ReagentColumnName(4))
	}
}

func TestRun_IsWorkflow3(t *testing.T) {
	cases := map[string]bool{"1.1": false, "3": true, "3.5": true, "4": false}
	for ver, want := range cases {
		r := &Run{ExpWorkflowVer: decimal.RequireFromString(ver)}
		if r.IsWorkflow3() != want {
			t.Errorf("Version %s: expected %v", ver, want)
		}
	}
}
