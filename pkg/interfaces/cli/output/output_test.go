package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/reagentprep/pkg/application/dto"
	"github.com/vsinha/reagentprep/pkg/domain/entities"
)

func testSpec() *dto.ReagentSpec {
	return &dto.ReagentSpec{
		Strategy: "v1",
		Rows: []entities.ReagentSpecRow{
			{
				LineItem: entities.LineItem{Index: 0, Reagent: 1, Kind: entities.MarkerLine},
				Nominal:  entities.NewNominal(0, decimal.RequireFromString("1000"), entities.Milliliter),
			},
			{
				LineItem: entities.LineItem{Index: 1, Reagent: 1, Kind: entities.ChemicalLine, Chemical: "NaCl", Position: 1},
				Nominal:  entities.NewNominal(1, decimal.RequireFromString("116.88"), entities.Gram),
			},
			{
				LineItem: entities.LineItem{Index: 2, Reagent: 1, Kind: entities.NullLine, Position: 2},
				Nominal:  entities.NullNominal(2),
			},
		},
		TargetVolumes: entities.TargetVolumes{1: decimal.NewFromInt(1000000)},
	}
}

func TestGenerate_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(testSpec(), Config{Format: "csv", Writer: &buf}))

	want := strings.Join([]string{
		"chemabbr,reagentnames,nominal_amount,Unit,actualsnull",
		"Final Volume = ,Reagent1,1000,milliliter,",
		"NaCl,Reagent1,116.88,gram,",
		"null,Reagent1,null,null,null",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestGenerate_CSVFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Generate(testSpec(), Config{Format: "csv", OutputDir: dir, RunID: "R1", Writer: &bytes.Buffer{}}))

	data, err := os.ReadFile(filepath.Join(dir, "R1_reagent_spec.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "chemabbr,reagentnames"))
}

func TestGenerate_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(testSpec(), Config{Format: "json", Writer: &buf}))

	var doc jsonSpec
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "v1", doc.Strategy)
	assert.Equal(t, "1000000", doc.TargetVolumes["Reagent1"])
	require.Len(t, doc.Rows, 3)
	assert.Equal(t, "116.88", doc.Rows[1].NominalAmount)
	assert.Equal(t, "null", doc.Rows[2].ActualsNull)
}

func TestGenerate_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(testSpec(), Config{Format: "text", Writer: &buf}))
	assert.Contains(t, buf.String(), "Reagent Specification (v1)")
	assert.Contains(t, buf.String(), "116.88")
	assert.Contains(t, buf.String(), "Reagent1   1000000")
}

func TestGenerate_UnknownFormat(t *testing.T) {
	err := Generate(testSpec(), Config{Format: "xml"})
	assert.ErrorContains(t, err, "unsupported output format: xml")
}
