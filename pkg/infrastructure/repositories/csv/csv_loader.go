package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/reagentprep/pkg/domain/entities"
)

// Loader handles loading run data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

var chemicalsHeader = []string{"abbreviation", "name", "molecular_weight", "density"}

// LoadChemicals loads chemical property records from a CSV file
func (l *Loader) LoadChemicals(filename string) ([]*entities.ChemicalProperties, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open chemicals file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadChemicals(file)
}

// ReadChemicals reads chemical property records from CSV
func (l *Loader) ReadChemicals(r io.Reader) ([]*entities.ChemicalProperties, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read chemicals CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("chemicals CSV must have header and at least one data row")
	}

	header := records[0]
	if !validateHeader(header, chemicalsHeader) {
		return nil, fmt.Errorf("chemicals CSV header mismatch. Expected: %v, Got: %v", chemicalsHeader, header)
	}

	var chemicals []*entities.ChemicalProperties
	for i, record := range records[1:] {
		if len(record) != len(chemicalsHeader) {
			return nil, fmt.Errorf("chemicals CSV row %d: expected %d columns, got %d", i+2, len(chemicalsHeader), len(record))
		}

		chem, err := parseChemical(record)
		if err != nil {
			return nil, fmt.Errorf("chemicals CSV row %d: %w", i+2, err)
		}

		chemicals = append(chemicals, chem)
	}

	return chemicals, nil
}

// LoadVolumes loads the planned reagent volume table from a CSV file
func (l *Loader) LoadVolumes(filename string) (*entities.VolumeTable, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open volumes file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadVolumes(file)
}

// ReadVolumes reads a volume table whose headers are "Reagent<k> (ul)" and
// whose rows are one experiment each. Blank cells are zero volume.
func (l *Loader) ReadVolumes(r io.Reader) (*entities.VolumeTable, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read volumes CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("volumes CSV must have header and at least one data row")
	}

	vt := &entities.VolumeTable{}
	seen := make(map[entities.ReagentKey]bool)
	for _, name := range records[0] {
		name = strings.TrimSpace(name)
		key, ok := entities.ParseReagentColumn(name)
		if !ok {
			return nil, fmt.Errorf("volumes CSV header %q: expected Reagent<k> (ul)", name)
		}
		if seen[key] {
			return nil, fmt.Errorf("volumes CSV header %q appears twice", name)
		}
		seen[key] = true
		vt.Columns = append(vt.Columns, entities.VolumeColumn{Name: name, Reagent: key})
	}

	for i, record := range records[1:] {
		if len(record) != len(vt.Columns) {
			return nil, fmt.Errorf("volumes CSV row %d: expected %d columns, got %d", i+2, len(vt.Columns), len(record))
		}
		for j, cell := range record {
			vol, err := parseVolume(cell)
			if err != nil {
				return nil, fmt.Errorf("volumes CSV row %d, %s: %w", i+2, vt.Columns[j].Name, err)
			}
			vt.Columns[j].Volumes = append(vt.Columns[j].Volumes, vol)
		}
	}

	return vt, nil
}

// Helper functions for parsing CSV records

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseChemical(record []string) (*entities.ChemicalProperties, error) {
	abbr := entities.ChemicalAbbr(strings.TrimSpace(record[0]))
	name := strings.TrimSpace(record[1])

	mw, err := decimal.NewFromString(strings.TrimSpace(record[2]))
	if err != nil {
		return nil, fmt.Errorf("invalid molecular_weight: %s", record[2])
	}

	density, err := decimal.NewFromString(strings.TrimSpace(record[3]))
	if err != nil {
		return nil, fmt.Errorf("invalid density: %s", record[3])
	}

	return entities.NewChemicalProperties(abbr, name, mw, density)
}

func parseVolume(cell string) (decimal.Decimal, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return decimal.Zero, nil
	}
	vol, err := decimal.NewFromString(cell)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid volume: %s", cell)
	}
	if vol.IsNegative() {
		return decimal.Zero, fmt.Errorf("volume cannot be negative: %s", cell)
	}
	return vol, nil
}
