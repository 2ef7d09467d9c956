package entities

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
)

var reagentColumnPattern = regexp.MustCompile(`^Reagent(\d+) \(ul\)$`)

// ReagentColumnName returns the volume column header for a reagent
func ReagentColumnName(key ReagentKey) string {
	return fmt.Sprintf("Reagent%d (ul)", int(key))
}

// ParseReagentColumn extracts the reagent key from a "Reagent<k> (ul)" header
func ParseReagentColumn(name string) (ReagentKey, bool) {
	m := reagentColumnPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	k, err := strconv.Atoi(m[1])
	if err != nil || k < 1 {
		return 0, false
	}
	return ReagentKey(k), true
}

// VolumeColumn holds one reagent's planned dispense volume (µL) per experiment
type VolumeColumn struct {
	Name    string
	Reagent ReagentKey
	Volumes []decimal.Decimal
}

// VolumeTable is the planned reagent volume table, one row per experiment
type VolumeTable struct {
	Columns []VolumeColumn
}

// Experiments returns the number of experiment rows
func (vt *VolumeTable) Experiments() int {
	n := 0
	for _, col := range vt.Columns {
		if len(col.Volumes) > n {
			n = len(col.Volumes)
		}
	}
	return n
}

// Column returns the column for a reagent, if present
func (vt *VolumeTable) Column(key ReagentKey) (*VolumeColumn, bool) {
	for i := range vt.Columns {
		if vt.Columns[i].Reagent == key {
			return &vt.Columns[i], true
		}
	}
	return nil, false
}

// Sum returns the total planned volume of the column
func (c VolumeColumn) Sum() decimal.Decimal {
	return decimal.Sum(decimal.Zero, c.Volumes...)
}

// Max returns the largest planned volume of the column
func (c VolumeColumn) Max() decimal.Decimal {
	max := decimal.Zero
	for i, v := range c.Volumes {
		if i == 0 || v.GreaterThan(max) {
			max = v
		}
	}
	return max
}

// At returns the volume for an experiment row, zero when the row is absent
func (c VolumeColumn) At(row int) decimal.Decimal {
	if row < 0 || row >= len(c.Volumes) {
		return decimal.Zero
	}
	return c.Volumes[row]
}
