// Package layout computes the per-experiment tray and reagent tables that
// the robot input files are assembled from.
package layout

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vsinha/reagentprep/pkg/domain/entities"
)

// Pipetting liquid classes known to the Nimbus
const (
	HighVolumeClass     = "HighVolume_Water_DispenseJet_Empty"
	StandardVolumeClass = "StandardVolume_Water_DispenseJet_Empty"
	LowVolumeClass      = "Tip_50ul_Water_DispenseJet_Empty"
)

var (
	highVolumeThreshold     = decimal.NewFromInt(300)
	standardVolumeThreshold = decimal.NewFromInt(50)
)

// LiquidClass picks the pipette class for the largest dispense volume (µL)
func LiquidClass(maxVolume decimal.Decimal) string {
	switch {
	case maxVolume.GreaterThanOrEqual(highVolumeThreshold):
		return HighVolumeClass
	case maxVolume.GreaterThanOrEqual(standardVolumeThreshold):
		return StandardVolumeClass
	default:
		return LowVolumeClass
	}
}

// LiquidClasses returns one liquid class per reagent slot 1..maxReagents.
// Slots with no volume column are treated as zero volume.
func LiquidClasses(vt *entities.VolumeTable, maxReagents int) []string {
	classes := make([]string, 0, maxReagents)
	for k := entities.ReagentKey(1); int(k) <= maxReagents; k++ {
		maxVol := decimal.Zero
		if col, ok := vt.Column(k); ok {
			maxVol = col.Max()
		}
		classes = append(classes, LiquidClass(maxVol))
	}
	return classes
}

// PadVolumeColumns returns a copy of vt holding a column for every reagent
// slot 1..maxReagents, with zero volumes where none was planned, ordered by
// reagent number.
func PadVolumeColumns(vt *entities.VolumeTable, maxReagents int) *entities.VolumeTable {
	rows := vt.Experiments()
	padded := &entities.VolumeTable{}
	for _, col := range vt.Columns {
		padded.Columns = append(padded.Columns, entities.VolumeColumn{
			Name:    col.Name,
			Reagent: col.Reagent,
			Volumes: append([]decimal.Decimal(nil), col.Volumes...),
		})
	}
	for k := entities.ReagentKey(1); int(k) <= maxReagents; k++ {
		if _, ok := vt.Column(k); ok {
			continue
		}
		padded.Columns = append(padded.Columns, entities.VolumeColumn{
			Name:    entities.ReagentColumnName(k),
			Reagent: k,
			Volumes: zeros(rows),
		})
	}
	sort.SliceStable(padded.Columns, func(i, j int) bool {
		return padded.Columns[i].Reagent < padded.Columns[j].Reagent
	})
	return padded
}

func zeros(n int) []decimal.Decimal {
	out := make([]decimal.Decimal, n)
	for i := range out {
		out[i] = decimal.Zero
	}
	return out
}
