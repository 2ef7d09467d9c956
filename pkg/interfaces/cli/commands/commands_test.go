package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/reagentprep/pkg/infrastructure/repositories/sqlite"
)

const testSettings = `robo_version: "2.59"
labs:
  LBL:
    max_reagents: 2
    max_reagent_chemicals: 2
    reagent_interface_amount_startrow: 17
`

const testRunYAML = `run_id: salt_water
lab: LBL
exp_workflow_ver: 1.1
plate_container: Symyx_96_well_0003
well_count: 2
reagent_dead_volume: 0.001
solvents: [H2O]
reagents:
  1:
    chemicals: [NaCl, H2O]
    concentrations:
      conc_item1: 2.0
`

const testVolumes = "Reagent1 (ul)\n400000\n599999\n"

const testChemicals = `abbreviation,name,molecular_weight,density
NaCl,sodium chloride,58.44,2.16
H2O,water,18.015,1.0
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runDir(t *testing.T) (dir, settings string) {
	t.Helper()
	dir = t.TempDir()
	writeFile(t, dir, RunFileName, testRunYAML)
	writeFile(t, dir, VolumesFileName, testVolumes)
	writeFile(t, dir, ChemicalsFileName, testChemicals)
	settings = writeFile(t, t.TempDir(), "settings.yaml", testSettings)
	return dir, settings
}

func TestPrepareCommand_Execute(t *testing.T) {
	dir, settings := runDir(t)

	cmd := NewPrepareCommand(Config{RunDir: dir, SettingsFile: settings}, nil)
	require.NoError(t, cmd.Execute(context.Background()))

	for _, name := range []string{
		"salt_water_RobotInput.xlsx",
		"salt_water_ReagentInterface.xlsx",
		"salt_water_reagent_spec.csv",
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "expected %s", name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "salt_water_reagent_spec.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "Final Volume = ,Reagent1,1000,milliliter,", lines[1])
	assert.Equal(t, "NaCl,Reagent1,116.88,gram,", lines[2])
	assert.Equal(t, "H2O,Reagent1,945.89,milliliter,", lines[3])
	assert.Equal(t, "Final Volume = ,Reagent2,null,null,null", lines[4])
}

func TestPrepareCommand_SimpleStrategyAndOutputDir(t *testing.T) {
	dir, settings := runDir(t)
	out := t.TempDir()

	cmd := NewPrepareCommand(Config{
		RunDir:       dir,
		SettingsFile: settings,
		Strategy:     "simple",
		OutputDir:    out,
	}, nil)
	require.NoError(t, cmd.Execute(context.Background()))

	data, err := os.ReadFile(filepath.Join(out, "salt_water_reagent_spec.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "H2O,Reagent1,1000,milliliter,")
}

func TestPrepareCommand_ChemicalDatabase(t *testing.T) {
	dir, settings := runDir(t)
	db := filepath.Join(t.TempDir(), "chemicals.db")
	require.NoError(t, os.Remove(filepath.Join(dir, ChemicalsFileName)))

	csvPath := writeFile(t, t.TempDir(), "chemicals.csv", testChemicals)
	require.NoError(t, NewImportChemicalsCommand(csvPath, db, nil).Execute(context.Background()))

	repo, err := sqlite.Open(db)
	require.NoError(t, err)
	all, err := repo.GetAllChemicals()
	require.NoError(t, err)
	assert.Len(t, all, 2)
	require.NoError(t, repo.Close())

	cmd := NewPrepareCommand(Config{RunDir: dir, SettingsFile: settings, ChemicalsDB: db}, nil)
	require.NoError(t, cmd.Execute(context.Background()))
}

func TestPrepareCommand_Errors(t *testing.T) {
	dir, settings := runDir(t)

	testCases := []struct {
		name        string
		config      Config
		expectError string
	}{
		{"no settings", Config{RunDir: dir}, "must specify a settings file"},
		{"no inputs", Config{SettingsFile: settings}, "must specify either a run directory"},
		{"missing run dir", Config{RunDir: filepath.Join(dir, "nope"), SettingsFile: settings}, "file not found"},
		{"unknown lab", Config{RunDir: dir, SettingsFile: settings, Lab: "HC"}, `unknown lab "HC"`},
		{"bad strategy", Config{RunDir: dir, SettingsFile: settings, Strategy: "df"}, "unsupported nominal strategy"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewPrepareCommand(tc.config, nil).Execute(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectError)
		})
	}
}

func TestImportChemicalsCommand_Errors(t *testing.T) {
	err := NewImportChemicalsCommand("", "x.db", nil).Execute(context.Background())
	assert.ErrorContains(t, err, "chemicals CSV file is required")

	err = NewImportChemicalsCommand(filepath.Join(t.TempDir(), "missing.csv"), "x.db", nil).Execute(context.Background())
	assert.ErrorContains(t, err, "error loading chemicals")
}
