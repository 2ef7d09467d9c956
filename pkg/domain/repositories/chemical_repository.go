package repositories

import "github.com/vsinha/reagentprep/pkg/domain/entities"

// ChemicalRepository provides access to chemical property reference data
type ChemicalRepository interface {
	GetChemical(abbr entities.ChemicalAbbr) (*entities.ChemicalProperties, error)
	GetAllChemicals() ([]*entities.ChemicalProperties, error)
	LoadChemicals(chemicals []*entities.ChemicalProperties) error
}

// ChemicalLookup is the read side of ChemicalRepository used during resolution
type ChemicalLookup interface {
	GetChemical(abbr entities.ChemicalAbbr) (*entities.ChemicalProperties, error)
}
