package layout

import (
	"github.com/vsinha/reagentprep/pkg/domain/entities"
)

// ECLPipettingModel is the pipetting method requested for every ECL reagent
const ECLPipettingModel = `Model[Method, Pipetting, "StandardVolume_GBL_DispenseJet_Empty"]`

// perReagent renders one cell per reagent slot 1..max(slots, highest key),
// writing "null" for slots without a reagent
func perReagent(reagents entities.Reagents, slots int, cell func(*entities.Reagent) string) []string {
	n := slots
	if int(reagents.MaxKey()) > n {
		n = int(reagents.MaxKey())
	}
	out := make([]string, 0, n)
	for k := entities.ReagentKey(1); int(k) <= n; k++ {
		r, ok := reagents[k]
		if !ok {
			out = append(out, entities.NullValue)
			continue
		}
		out = append(out, cell(r))
	}
	return out
}

// ReagentIdentities lists the ECL model identity of each reagent slot
func ReagentIdentities(reagents entities.Reagents, slots int) []string {
	return perReagent(reagents, slots, func(r *entities.Reagent) string {
		if r.Identity == "" {
			return entities.NullValue
		}
		return r.Identity
	})
}

// ECLLiquidClasses lists the pipetting model of each reagent slot
func ECLLiquidClasses(reagents entities.Reagents, slots int) []string {
	return perReagent(reagents, slots, func(*entities.Reagent) string {
		return ECLPipettingModel
	})
}

// ECLTemperatures lists the pre-reaction transport temperature of each slot
func ECLTemperatures(reagents entities.Reagents, slots int) []string {
	return perReagent(reagents, slots, func(r *entities.Reagent) string {
		if r.PreRxnTemperature == "" {
			return entities.NullValue
		}
		return r.PreRxnTemperature
	})
}
