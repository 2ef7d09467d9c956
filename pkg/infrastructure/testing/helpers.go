package testing

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/reagentprep/pkg/domain/entities"
	"github.com/vsinha/reagentprep/pkg/infrastructure/repositories/memory"
)

// PerovskiteLab is the lab layout used by the perovskite scenario
var PerovskiteLab = entities.LabConfig{
	Name:                           "LBL",
	MaxReagents:                    3,
	MaxReagentChemicals:            3,
	ReagentInterfaceAmountStartRow: 17,
}

// BuildChemicalTestData returns a repository with the common perovskite
// and brine chemicals
func BuildChemicalTestData() *memory.ChemicalRepository {
	rows := []struct {
		abbr, name, mw, density string
	}{
		{"NaCl", "sodium chloride", "58.44", "2.16"},
		{"H2O", "water", "18.015", "1.0"},
		{"PbI2", "lead(II) iodide", "461.01", "6.16"},
		{"DMSO", "dimethyl sulfoxide", "78.13", "1.1"},
		{"GBL", "gamma-butyrolactone", "86.09", "1.12"},
		{"FAH", "formic acid", "46.03", "1.22"},
	}

	repo := memory.NewChemicalRepository(len(rows))
	for _, r := range rows {
		chem, err := entities.NewChemicalProperties(entities.ChemicalAbbr(r.abbr), r.name,
			decimal.RequireFromString(r.mw), decimal.RequireFromString(r.density))
		if err != nil {
			panic(err)
		}
		if err := repo.SaveChemical(chem); err != nil {
			panic(err)
		}
	}
	return repo
}

// BuildPerovskiteTestData builds a two-experiment run with a GBL solvent in
// slot 1 and a lead iodide precursor in slot 2. Slot 3 is left empty. The
// precursor target is 500 mL including the 3 mL dead volume.
func BuildPerovskiteTestData() (*memory.ChemicalRepository, *entities.Run, *entities.VolumeTable) {
	solvent, err := entities.NewReagent(1, []entities.ChemicalAbbr{"GBL"}, nil)
	if err != nil {
		panic(err)
	}
	precursor, err := entities.NewReagent(2,
		[]entities.ChemicalAbbr{"PbI2", "DMSO", "GBL"},
		map[int]decimal.Decimal{
			1: decimal.RequireFromString("1.0"),
			2: decimal.RequireFromString("2.0"),
		})
	if err != nil {
		panic(err)
	}
	precursor.PrepTemperature = "75"
	precursor.PrepStirRate = "450"
	precursor.PrepDuration = "3600"
	precursor.PreRxnTemperature = "70"

	run := &entities.Run{
		RunID:                     "2019-06-21T10_15_00_LBL",
		Lab:                       PerovskiteLab.Name,
		Date:                      "2019-06-21",
		Time:                      "10:15",
		ExpWorkflowVer:            decimal.RequireFromString("1.1"),
		ChallengeProblem:          "perovskite",
		Temperature1Nominal:       decimal.NewFromInt(80),
		Temperature2Nominal:       decimal.NewFromInt(105),
		StirRate:                  decimal.NewFromInt(750),
		DurationStir1:             decimal.NewFromInt(900),
		DurationStir2:             decimal.NewFromInt(1200),
		DurationReaction:          decimal.NewFromInt(12600),
		PlateContainer:            "Symyx_96_well_0003",
		WellCount:                 2,
		ReagentDeadVolume:         decimal.NewFromInt(3),
		ReagentsPreRxnTemperature: decimal.NewFromInt(70),
		Solvents:                  entities.NewSolventSet("GBL", "DMSO"),
		Reagents:                  entities.Reagents{1: solvent, 2: precursor},
	}

	volumes := &entities.VolumeTable{Columns: []entities.VolumeColumn{
		{
			Name:    entities.ReagentColumnName(1),
			Reagent: 1,
			Volumes: []decimal.Decimal{decimal.NewFromInt(40), decimal.NewFromInt(60)},
		},
		{
			Name:    entities.ReagentColumnName(2),
			Reagent: 2,
			Volumes: []decimal.Decimal{decimal.NewFromInt(248000), decimal.NewFromInt(249000)},
		},
	}}

	return BuildChemicalTestData(), run, volumes
}
