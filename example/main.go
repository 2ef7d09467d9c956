package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/reagentprep/pkg/application/services"
	"github.com/vsinha/reagentprep/pkg/domain/entities"
	"github.com/vsinha/reagentprep/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/reagentprep/pkg/interfaces/cli/output"
)

func main() {
	ctx := context.Background()

	// Chemical property inventory
	chemicals := memory.NewChemicalRepository(4)
	setupChemicals(chemicals)

	// A 2 M brine and a lead iodide perovskite precursor in GBL
	brine, err := entities.NewReagent(1,
		[]entities.ChemicalAbbr{"NaCl", "H2O"},
		map[int]decimal.Decimal{1: decimal.NewFromInt(2)})
	if err != nil {
		fmt.Printf("❌ Invalid reagent: %v\n", err)
		return
	}
	precursor, err := entities.NewReagent(2,
		[]entities.ChemicalAbbr{"PbI2", "DMSO", "GBL"},
		map[int]decimal.Decimal{1: decimal.RequireFromString("1.0"), 2: decimal.RequireFromString("1.3")})
	if err != nil {
		fmt.Printf("❌ Invalid reagent: %v\n", err)
		return
	}

	run := &entities.Run{
		RunID:             "example_run",
		Lab:               "LBL",
		ReagentDeadVolume: decimal.RequireFromString("3.0"),
		Solvents:          entities.NewSolventSet("H2O", "DMSO", "GBL"),
		Reagents:          entities.Reagents{1: brine, 2: precursor},
	}

	// Planned dispense volumes for four experiments (µL)
	volumes := &entities.VolumeTable{Columns: []entities.VolumeColumn{
		{Name: entities.ReagentColumnName(1), Reagent: 1, Volumes: ul(100, 150, 200, 250)},
		{Name: entities.ReagentColumnName(2), Reagent: 2, Volumes: ul(300, 250, 200, 150)},
	}}

	lab := entities.LabConfig{
		Name:                           "LBL",
		MaxReagents:                    3,
		MaxReagentChemicals:            3,
		ReagentInterfaceAmountStartRow: 17,
	}

	fmt.Println("🧪 Resolving nominal amounts...")
	for _, strategy := range []string{"simple", "v1"} {
		spec, err := services.NewPrepService(nil).BuildReagentSpec(ctx, run, volumes, chemicals, lab, strategy)
		if err != nil {
			fmt.Printf("❌ Resolution failed: %v\n", err)
			return
		}
		if err := output.Generate(spec, output.Config{Format: "text"}); err != nil {
			fmt.Printf("❌ Output failed: %v\n", err)
			return
		}
	}
}

func setupChemicals(repo *memory.ChemicalRepository) {
	rows := []struct {
		abbr, name, mw, density string
	}{
		{"NaCl", "sodium chloride", "58.44", "2.16"},
		{"H2O", "water", "18.015", "1.0"},
		{"PbI2", "lead(II) iodide", "461.01", "6.16"},
		{"DMSO", "dimethyl sulfoxide", "78.13", "1.1"},
		{"GBL", "gamma-butyrolactone", "86.09", "1.12"},
	}
	for _, r := range rows {
		chem, err := entities.NewChemicalProperties(entities.ChemicalAbbr(r.abbr), r.name,
			decimal.RequireFromString(r.mw), decimal.RequireFromString(r.density))
		if err == nil {
			err = repo.SaveChemical(chem)
		}
		if err != nil {
			fmt.Printf("⚠️  Skipping %s: %v\n", r.abbr, err)
		}
	}
}

func ul(values ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromInt(v)
	}
	return out
}
