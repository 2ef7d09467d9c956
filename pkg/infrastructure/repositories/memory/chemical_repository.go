package memory

import (
	"fmt"

	"github.com/vsinha/reagentprep/pkg/domain/entities"
	"github.com/vsinha/reagentprep/pkg/domain/repositories"
)

// ChemicalRepository provides in-memory chemical property storage
type ChemicalRepository struct {
	chemicals    []entities.ChemicalProperties
	chemicalsMap map[entities.ChemicalAbbr]int
}

// NewChemicalRepository creates a new in-memory chemical repository
func NewChemicalRepository(expectedChemicals int) *ChemicalRepository {
	return &ChemicalRepository{
		chemicals:    make([]entities.ChemicalProperties, 0, expectedChemicals),
		chemicalsMap: make(map[entities.ChemicalAbbr]int, expectedChemicals),
	}
}

// Verify interface compliance
var _ repositories.ChemicalRepository = (*ChemicalRepository)(nil)

// LoadChemicals loads chemical records into the repository
func (r *ChemicalRepository) LoadChemicals(chemicals []*entities.ChemicalProperties) error {
	for _, chem := range chemicals {
		if err := r.SaveChemical(chem); err != nil {
			return err
		}
	}
	return nil
}

// SaveChemical adds a chemical record, rejecting duplicate abbreviations
func (r *ChemicalRepository) SaveChemical(chem *entities.ChemicalProperties) error {
	if chem == nil {
		return fmt.Errorf("chemical cannot be nil")
	}
	if _, exists := r.chemicalsMap[chem.Abbreviation]; exists {
		return fmt.Errorf("chemical already exists: %s", chem.Abbreviation)
	}
	r.chemicalsMap[chem.Abbreviation] = len(r.chemicals)
	r.chemicals = append(r.chemicals, *chem)
	return nil
}

// GetChemical returns the property record for an abbreviation
func (r *ChemicalRepository) GetChemical(abbr entities.ChemicalAbbr) (*entities.ChemicalProperties, error) {
	index, exists := r.chemicalsMap[abbr]
	if !exists {
		return nil, fmt.Errorf("%w: %s", entities.ErrUnknownChemical, abbr)
	}
	return &r.chemicals[index], nil
}

// GetAllChemicals returns all chemical records in load order
func (r *ChemicalRepository) GetAllChemicals() ([]*entities.ChemicalProperties, error) {
	chemicals := make([]*entities.ChemicalProperties, 0, len(r.chemicals))
	for i := range r.chemicals {
		chemicals = append(chemicals, &r.chemicals[i])
	}
	return chemicals, nil
}
