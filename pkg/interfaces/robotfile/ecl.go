package robotfile

import (
	"github.com/vsinha/reagentprep/pkg/domain/entities"
	"github.com/vsinha/reagentprep/pkg/domain/services/layout"
)

// ECLOutput builds the robot file submitted to the execution-language lab.
// Every list in the condition block is indexed by reagent slot.
func ECLOutput(run *entities.Run, vt *entities.VolumeTable, cfg entities.LabConfig) Output {
	slots := cfg.MaxReagents
	if int(run.Reagents.MaxKey()) > slots {
		slots = int(run.Reagents.MaxKey())
	}
	names := make([]string, slots)
	for i := range names {
		names[i] = entities.ReagentKey(i + 1).Name()
	}

	sites, labware := wellFrame(layout.WellList(run.PlateContainer, run.WellCount), "Labware ID:")
	parameters := parameterFrame(
		[]string{
			"Temperature (C):",
			"Stir Rate (rpm):",
			"Mixing time1 (s):",
			"Mixing time2 (s):",
			"Reaction time (s):",
			"",
		},
		[]any{
			run.Temperature2Nominal,
			run.StirRate,
			run.DurationStir1,
			run.DurationStir2,
			run.DurationReaction,
			"",
		},
	)
	conditions := (&Frame{}).
		Add("Reagents", toCells(names)...).
		Add("Reagent identity", toCells(layout.ReagentIdentities(run.Reagents, slots))...).
		Add("Liquid Class", toCells(layout.ECLLiquidClasses(run.Reagents, slots))...).
		Add("Reagent Temperature", toCells(layout.ECLTemperatures(run.Reagents, slots))...)

	frame := Concat(sites, volumeFrame(layout.PadVolumeColumns(vt, cfg.MaxReagents)), labware, parameters, conditions)
	return Output{Filename: run.RunID + "_RobotInput" + fileExt, Frame: frame}
}
