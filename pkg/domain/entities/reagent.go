package entities

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ReagentKey is the 1-based reagent slot number
type ReagentKey int

// Name returns the reagent label used in the line-item table, e.g. Reagent3
func (k ReagentKey) Name() string {
	return fmt.Sprintf("Reagent%d", int(k))
}

const concentrationPrefix = "conc_item"

// ConcentrationKey renders the stored concentration key for a chemical position
func ConcentrationKey(item int) string {
	return fmt.Sprintf("%s%d", concentrationPrefix, item)
}

// ParseConcentrationKey extracts the chemical position from a conc_item<N> key
func ParseConcentrationKey(key string) (int, error) {
	if !strings.HasPrefix(key, concentrationPrefix) {
		return 0, fmt.Errorf("invalid concentration key %q: expected %s<N>", key, concentrationPrefix)
	}
	item, err := strconv.Atoi(strings.TrimPrefix(key, concentrationPrefix))
	if err != nil || item < 1 {
		return 0, fmt.Errorf("invalid concentration key %q: expected %s<N>", key, concentrationPrefix)
	}
	return item, nil
}

// Reagent is a prepared stock mixture dispensed as a unit into experiments.
// Chemicals are kept in recipe order; Concentrations are molarities indexed
// by 1-based chemical position.
type Reagent struct {
	Key               ReagentKey
	Chemicals         []ChemicalAbbr
	Concentrations    map[int]decimal.Decimal
	Identity          string
	PrepTemperature   string
	PrepStirRate      string
	PrepDuration      string
	PreRxnTemperature string
}

// NewReagent creates a validated Reagent
func NewReagent(key ReagentKey, chemicals []ChemicalAbbr, concentrations map[int]decimal.Decimal) (*Reagent, error) {
	if key < 1 {
		return nil, fmt.Errorf("reagent key must be positive, got %d", key)
	}
	if len(chemicals) == 0 {
		return nil, fmt.Errorf("reagent %d must list at least one chemical", key)
	}
	for i, chem := range chemicals {
		if chem == "" {
			return nil, fmt.Errorf("reagent %d chemical %d cannot be empty", key, i+1)
		}
	}
	if concentrations == nil {
		concentrations = make(map[int]decimal.Decimal)
	}

	return &Reagent{
		Key:            key,
		Chemicals:      append([]ChemicalAbbr(nil), chemicals...),
		Concentrations: concentrations,
	}, nil
}

// Concentration returns the molarity stored for a chemical position
func (r *Reagent) Concentration(item int) (decimal.Decimal, error) {
	conc, ok := r.Concentrations[item]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s %s", ErrMissingConcentration, r.Key.Name(), ConcentrationKey(item))
	}
	return conc, nil
}

// IsLastChemical reports whether the 1-based position is the end of the recipe
func (r *Reagent) IsLastChemical(item int) bool {
	return item == len(r.Chemicals)
}

// Reagents maps reagent slots to their specifications
type Reagents map[ReagentKey]*Reagent

// Keys returns the populated reagent keys in ascending order
func (rs Reagents) Keys() []ReagentKey {
	keys := make([]ReagentKey, 0, len(rs))
	for k := range rs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// MaxKey returns the highest populated reagent key, or 0 when empty
func (rs Reagents) MaxKey() ReagentKey {
	var max ReagentKey
	for k := range rs {
		if k > max {
			max = k
		}
	}
	return max
}

// TargetVolumes maps reagent slots to target final volumes in microliters
type TargetVolumes map[ReagentKey]decimal.Decimal
