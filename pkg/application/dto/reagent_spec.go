package dto

import (
	"github.com/vsinha/reagentprep/pkg/domain/entities"
)

// ReagentSpec contains the complete output of a nominal amount calculation
type ReagentSpec struct {
	Strategy      string
	Rows          []entities.ReagentSpecRow
	TargetVolumes entities.TargetVolumes
}

// RowsFor returns the rows belonging to one reagent block, marker first
func (s *ReagentSpec) RowsFor(key entities.ReagentKey) []entities.ReagentSpecRow {
	var rows []entities.ReagentSpecRow
	for _, row := range s.Rows {
		if row.Reagent == key {
			rows = append(rows, row)
		}
	}
	return rows
}
