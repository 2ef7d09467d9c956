package robotfile

import (
	"fmt"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/vsinha/reagentprep/pkg/domain/entities"
	"github.com/vsinha/reagentprep/pkg/domain/services/layout"
)

// Labs with a robot file layout of their own
const (
	LabLBL = "LBL"
	LabMIT = "MIT_PVLab"
)

const fileExt = ".xlsx"

// Output is a frame and the file name it is written to
type Output struct {
	Filename string
	Frame    *Frame
}

// Writer writes robot input workbooks into a directory
type Writer struct {
	dir    string
	logger *zap.Logger
}

// NewWriter creates a writer for dir. A nil logger discards output.
func NewWriter(dir string, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{dir: dir, logger: logger}
}

// WriteNimbus writes the Nimbus robot files for the run and returns their
// paths in write order.
func (w *Writer) WriteNimbus(run *entities.Run, vt *entities.VolumeTable, cfg entities.LabConfig) ([]string, error) {
	outputs, err := NimbusOutputs(run, vt, cfg)
	if err != nil {
		return nil, err
	}
	return w.write(outputs)
}

// WriteECL writes the execution-language robot file for the run
func (w *Writer) WriteECL(run *entities.Run, vt *entities.VolumeTable, cfg entities.LabConfig) (string, error) {
	paths, err := w.write([]Output{ECLOutput(run, vt, cfg)})
	if err != nil {
		return "", err
	}
	return paths[0], nil
}

func (w *Writer) write(outputs []Output) ([]string, error) {
	paths := make([]string, 0, len(outputs))
	for _, out := range outputs {
		path := filepath.Join(w.dir, out.Filename)
		if err := WriteWorkbook(out.Frame, path); err != nil {
			return nil, err
		}
		w.logger.Info("robot file written",
			zap.String("path", path),
			zap.Int("rows", out.Frame.Rows()))
		paths = append(paths, path)
	}
	return paths, nil
}

// NimbusOutputs builds the Nimbus robot files for a run without writing them.
// Workflow 3 runs produce the split-tray RUNME file followed by the
// RobotInput file used for reporting; all other runs produce one file.
func NimbusOutputs(run *entities.Run, vt *entities.VolumeTable, cfg entities.LabConfig) ([]Output, error) {
	volumes := layout.PadVolumeColumns(vt, cfg.MaxReagents)
	classes := layout.LiquidClasses(volumes, cfg.MaxReagents)
	conditions := reactionConditions(run, classes, cfg.Alias())

	if run.IsWorkflow3() {
		return workflow3Outputs(run, volumes, conditions)
	}

	var frame *Frame
	if cfg.Name == LabMIT {
		index := make([]any, run.WellCount)
		labware := make([]any, run.WellCount)
		for i := range index {
			index[i] = i + 1
			labware[i] = run.PlateContainer
		}
		frame = Concat(
			(&Frame{}).Add("Experiment Index", index...),
			volumeFrame(volumes),
			(&Frame{}).Add("Labware ID", labware...),
			spinCoatingParameters(run),
			conditions,
		)
	} else {
		sites, labware := wellFrame(layout.WellList(run.PlateContainer, run.WellCount), "Labware ID:")
		frame = Concat(sites, volumeFrame(volumes), labware, reactionParameters(run), conditions)
	}

	name := run.RunID + "_ExperimentSpecification" + fileExt
	if cfg.Name == LabLBL {
		name = run.RunID + "_RobotInput" + fileExt
	}
	return []Output{{Filename: name, Frame: aliasColumns(frame, cfg.Alias())}}, nil
}

func workflow3Outputs(run *entities.Run, volumes *entities.VolumeTable, conditions *Frame) ([]Output, error) {
	trayWells := layout.WellListWF3(run.PlateContainer, run.WellCount*2)
	sites, labware := wellFrame(trayWells, "Labware ID:")
	runme := Concat(
		sites,
		volumeFrame(layout.SplitWF3(volumes, run.WF3Split)),
		labware,
		workflow3ShortParameters(run),
		conditions,
	)

	reportWells, err := layout.WellListWF3Small(run.PlateContainer, run.WellCount)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", run.RunID, err)
	}
	sites, labware = wellFrame(reportWells, "Labware ID:")
	report := Concat(sites, volumeFrame(volumes), labware, workflow3Parameters(run), conditions)

	return []Output{
		{Filename: run.RunID + "_RUNME_RobotFile" + fileExt, Frame: runme},
		{Filename: run.RunID + "_RobotInput" + fileExt, Frame: report},
	}, nil
}

// reactionConditions lists the liquid class and temperature of each slot
func reactionConditions(run *entities.Run, classes []string, alias string) *Frame {
	n := len(classes)
	names := make([]any, n)
	identities := make([]any, n)
	temps := make([]any, n)
	for i := 0; i < n; i++ {
		names[i] = alias + strconv.Itoa(i+1)
		identities[i] = strconv.Itoa(i + 1)
		temps[i] = run.ReagentsPreRxnTemperature
	}
	return (&Frame{}).
		Add(alias+"s", names...).
		Add(alias+" identity", identities...).
		Add("Liquid Class", toCells(classes)...).
		Add(alias+" Temperature", temps...)
}

func parameterFrame(labels []string, values []any) *Frame {
	return (&Frame{}).
		Add("Reaction Parameters", toCells(labels)...).
		Add("Parameter Values", values...)
}

func reactionParameters(run *entities.Run) *Frame {
	a1, a2 := run.Action(0), run.Action(1)
	return parameterFrame(
		[]string{
			"Temperature (C):",
			"Stir Rate (rpm):",
			"Mixing time1 (s):",
			"Mixing time2 (s):",
			"Reaction time (s):",
			"Preheat Temperature (C):",
			a1.Description,
			a2.Description,
		},
		[]any{
			run.Temperature2Nominal,
			run.StirRate,
			run.DurationStir1,
			run.DurationStir2,
			run.DurationReaction,
			run.Temperature1Nominal,
			a1.Value,
			a2.Value,
		},
	)
}

func spinCoatingParameters(run *entities.Run) *Frame {
	a1, a2 := run.Action(0), run.Action(1)
	return parameterFrame(
		[]string{
			"Spincoating Temperature ( C )",
			"Spincoating Speed (rpm):",
			"Spincoating Duration (s)",
			"Spincoating Duration 2 (s)",
			"Annealing Temperature ( C )",
			"Annealing Duration (s)",
			a1.Description,
			a2.Description,
			"",
		},
		[]any{
			run.Temperature1Nominal,
			run.StirRate,
			run.DurationStir1,
			run.DurationStir2,
			run.Temperature2Nominal,
			run.DurationReaction,
			a1.Value,
			a2.Value,
			"",
		},
	)
}

func workflow3Parameters(run *entities.Run) *Frame {
	a1, a2 := run.Action(0), run.Action(1)
	return parameterFrame(
		[]string{
			"Temperature (C):",
			"Stir Rate (rpm):",
			"Mixing time (s):",
			"Mixing time2 (s):",
			"Reaction time (s):",
			"Temperature Cool (C):",
			a1.Description,
			a2.Description,
		},
		[]any{
			run.Temperature1Nominal,
			run.StirRate,
			run.DurationStir1,
			run.DurationStir2,
			run.DurationReaction,
			run.Temperature2Nominal,
			a1.Value,
			a2.Value,
		},
	)
}

// workflow3ShortParameters only carries the mixing step; the RUNME file
// keeps the eight parameter rows so the method reads a fixed range.
func workflow3ShortParameters(run *entities.Run) *Frame {
	return parameterFrame(
		[]string{"Temperature (C):", "Stir Rate (rpm):", "Mixing time (s):", "", "", "", "", ""},
		[]any{run.Temperature1Nominal, run.StirRate, run.DurationStir1, "", "", "", "", ""},
	)
}
