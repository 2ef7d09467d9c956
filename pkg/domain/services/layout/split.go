package layout

import (
	"github.com/vsinha/reagentprep/pkg/domain/entities"
)

// splitGroup is the number of experiments dispensed per half-tray in
// workflow 3
const splitGroup = 4

// SplitWF3 spreads each group of four experiments over eight tray rows.
// The first four rows receive the non-split reagents, the next four the
// split reagents (e.g. antisolvents), and every other cell is zero.
func SplitWF3(vt *entities.VolumeTable, splitReagents []entities.ReagentKey) *entities.VolumeTable {
	split := make(map[entities.ReagentKey]bool, len(splitReagents))
	for _, k := range splitReagents {
		split[k] = true
	}

	n := vt.Experiments()
	size := 2 * n
	if last := targetRow(n-1) + splitGroup + 1; n > 0 && last > size {
		size = last
	}

	out := &entities.VolumeTable{}
	for _, col := range vt.Columns {
		vols := zeros(size)
		for row := 0; row < n; row++ {
			dst := targetRow(row)
			if split[col.Reagent] {
				dst += splitGroup
			}
			vols[dst] = col.At(row)
		}
		out.Columns = append(out.Columns, entities.VolumeColumn{
			Name:    col.Name,
			Reagent: col.Reagent,
			Volumes: vols,
		})
	}
	return out
}

// targetRow is the output row of the non-split half for experiment row
func targetRow(row int) int {
	group := row / splitGroup
	return group*2*splitGroup + row%splitGroup
}
