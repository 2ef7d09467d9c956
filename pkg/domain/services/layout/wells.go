package layout

import (
	"fmt"
)

// Well is one tray position and the labware it belongs to
type Well struct {
	Site    string
	Labware string
}

// The robot draws from the solvent wells in this row order
var (
	standardRowOrder = []string{"A", "C", "E", "G", "B", "D", "F", "H"}
	oddRowOrder      = []string{"A", "C", "E", "G"}
	evenRowOrder     = []string{"B", "D", "F", "H"}
	smallWF3Columns  = []int{1, 3, 5, 7, 9, 11}
)

// WellList returns wellCount tray sites visiting rows A,C,E,G,B,D,F,H in
// each column before moving to the next column.
func WellList(container string, wellCount int) []Well {
	var wells []Well
	for col := 1; len(wells) < wellCount; col++ {
		for _, row := range standardRowOrder {
			wells = append(wells, Well{Site: fmt.Sprintf("%s%d", row, col), Labware: container})
		}
	}
	return truncate(wells, wellCount)
}

// WellListWF3 returns sites for the split workflow 3 tray: odd columns use
// rows A,C,E,G and even columns use rows B,D,F,H.
func WellListWF3(container string, wellCount int) []Well {
	var wells []Well
	for col := 1; len(wells) < wellCount; col += 2 {
		for _, row := range oddRowOrder {
			wells = append(wells, Well{Site: fmt.Sprintf("%s%d", row, col), Labware: container})
		}
		for _, row := range evenRowOrder {
			wells = append(wells, Well{Site: fmt.Sprintf("%s%d", row, col+1), Labware: container})
		}
	}
	return truncate(wells, wellCount)
}

// WellListWF3Small returns the workflow 3 sites without the antisolvent
// wells: rows A,C,E,G of the odd columns only.
func WellListWF3Small(container string, wellCount int) ([]Well, error) {
	capacity := len(oddRowOrder) * len(smallWF3Columns)
	if wellCount > capacity {
		return nil, fmt.Errorf("workflow 3 tray holds %d experiment wells, got %d", capacity, wellCount)
	}
	var wells []Well
	for _, col := range smallWF3Columns {
		if len(wells) >= wellCount {
			break
		}
		for _, row := range oddRowOrder {
			wells = append(wells, Well{Site: fmt.Sprintf("%s%d", row, col), Labware: container})
		}
	}
	return truncate(wells, wellCount), nil
}

func truncate(wells []Well, n int) []Well {
	if n < 0 {
		n = 0
	}
	if len(wells) > n {
		return wells[:n]
	}
	return wells
}
