// Package lineitems builds the fixed-layout chemical line-item table of the
// reagent preparation interface.
package lineitems

import (
	"fmt"

	"github.com/vsinha/reagentprep/pkg/domain/entities"
)

// Build lays out one block of cfg.BlockSize() rows per reagent slot
// 1..cfg.MaxReagents. Each block is a final-volume marker followed by the
// recipe chemicals and null padding. Slots with no reagent get a marker and
// nulls only, so every slot keeps a static row offset.
func Build(reagents entities.Reagents, cfg entities.LabConfig) ([]entities.LineItem, error) {
	if err := Validate(reagents, cfg); err != nil {
		return nil, err
	}

	items := make([]entities.LineItem, 0, cfg.TableSize())
	add := func(li entities.LineItem) {
		li.Index = len(items)
		items = append(items, li)
	}

	for k := entities.ReagentKey(1); int(k) <= cfg.MaxReagents; k++ {
		add(entities.LineItem{Reagent: k, Kind: entities.MarkerLine})

		var chemicals []entities.ChemicalAbbr
		if r, ok := reagents[k]; ok {
			chemicals = r.Chemicals
		}
		for pos := 1; pos <= cfg.MaxReagentChemicals; pos++ {
			if pos <= len(chemicals) {
				add(entities.LineItem{Reagent: k, Kind: entities.ChemicalLine, Chemical: chemicals[pos-1], Position: pos})
				continue
			}
			add(entities.LineItem{Reagent: k, Kind: entities.NullLine, Position: pos})
		}
	}

	return items, nil
}

// Validate rejects reagent sets that cannot fit the lab layout
func Validate(reagents entities.Reagents, cfg entities.LabConfig) error {
	if err := cfg.ValidateTable(); err != nil {
		return fmt.Errorf("%w: %v", entities.ErrConfigMismatch, err)
	}
	for _, k := range reagents.Keys() {
		r := reagents[k]
		if r == nil {
			return fmt.Errorf("%w: %s has no specification", entities.ErrConfigMismatch, k.Name())
		}
		if k < 1 || int(k) > cfg.MaxReagents {
			return fmt.Errorf("%w: %s outside 1..%d for lab %s",
				entities.ErrConfigMismatch, k.Name(), cfg.MaxReagents, cfg.Name)
		}
		if r.Key != k {
			return fmt.Errorf("%w: %s stored under key %d", entities.ErrConfigMismatch, r.Key.Name(), k)
		}
		if len(r.Chemicals) == 0 {
			return fmt.Errorf("%w: %s has no chemicals", entities.ErrConfigMismatch, k.Name())
		}
		if len(r.Chemicals) > cfg.MaxReagentChemicals {
			return fmt.Errorf("%w: %s lists %d chemicals, lab %s allows %d",
				entities.ErrConfigMismatch, k.Name(), len(r.Chemicals), cfg.Name, cfg.MaxReagentChemicals)
		}
	}
	return nil
}
