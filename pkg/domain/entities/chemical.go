package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ChemicalAbbr is the short identifier used for a chemical in recipes and
// in the chemical property table
type ChemicalAbbr string

const (
	// FinalVolumeMarker labels the row that carries a reagent's total volume
	FinalVolumeMarker = "Final Volume = "

	// NullValue is written to every cell that has no physical counterpart
	NullValue = "null"

	// FormicAcidAbbr is always treated as a liquid regardless of the solvent list
	FormicAcidAbbr ChemicalAbbr = "FAH"
)

// ChemicalProperties is the reference record for a chemical
type ChemicalProperties struct {
	Abbreviation    ChemicalAbbr
	Name            string
	MolecularWeight decimal.Decimal // g/mol
	Density         decimal.Decimal // g/mL
}

// NewChemicalProperties creates a validated ChemicalProperties record
func NewChemicalProperties(abbr ChemicalAbbr, name string, molecularWeight, density decimal.Decimal) (*ChemicalProperties, error) {
	if abbr == "" {
		return nil, fmt.Errorf("chemical abbreviation cannot be empty")
	}
	if !molecularWeight.IsPositive() {
		return nil, fmt.Errorf("molecular weight must be positive for %s, got %s", abbr, molecularWeight)
	}
	if !density.IsPositive() {
		return nil, fmt.Errorf("density must be positive for %s, got %s", abbr, density)
	}

	return &ChemicalProperties{
		Abbreviation:    abbr,
		Name:            name,
		MolecularWeight: molecularWeight,
		Density:         density,
	}, nil
}

// SolventSet holds the abbreviations handled as volume-contributing liquids
type SolventSet map[ChemicalAbbr]struct{}

// NewSolventSet builds a SolventSet from a list of abbreviations
func NewSolventSet(abbrs ...ChemicalAbbr) SolventSet {
	set := make(SolventSet, len(abbrs))
	for _, abbr := range abbrs {
		set[abbr] = struct{}{}
	}
	return set
}

// IsLiquid reports whether abbr is dispensed by volume
func (s SolventSet) IsLiquid(abbr ChemicalAbbr) bool {
	if abbr == FormicAcidAbbr {
		return true
	}
	_, ok := s[abbr]
	return ok
}
