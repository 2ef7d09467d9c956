package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/vsinha/reagentprep/pkg/application/dto"
	"github.com/vsinha/reagentprep/pkg/application/services"
	"github.com/vsinha/reagentprep/pkg/domain/entities"
	"github.com/vsinha/reagentprep/pkg/domain/repositories"
	"github.com/vsinha/reagentprep/pkg/infrastructure/config"
	"github.com/vsinha/reagentprep/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/reagentprep/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/reagentprep/pkg/infrastructure/repositories/sqlite"
	"github.com/vsinha/reagentprep/pkg/interfaces/cli/output"
	"github.com/vsinha/reagentprep/pkg/interfaces/robotfile"
	"github.com/vsinha/reagentprep/pkg/interfaces/sheets"
)

// File names looked up inside a run directory
const (
	RunFileName       = "run.yaml"
	VolumesFileName   = "volumes.csv"
	ChemicalsFileName = "chemicals.csv"
)

// LabECL is the lab whose robot reads the execution-language file
const LabECL = "ECL"

// Config holds configuration for the prepare and nominals commands
type Config struct {
	RunDir        string
	RunFile       string
	VolumesFile   string
	ChemicalsFile string
	ChemicalsDB   string
	SettingsFile  string
	Lab           string
	Strategy      string
	OutputDir     string
	InterfaceFile string
	Format        string
	NominalsOnly  bool
	Verbose       bool
}

// PrepareCommand turns a planned run into robot files, the reagent
// interface workbook and the reagent specification table
type PrepareCommand struct {
	config Config
	logger *zap.Logger
}

// NewPrepareCommand creates a new prepare command with the given configuration
func NewPrepareCommand(config Config, logger *zap.Logger) *PrepareCommand {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrepareCommand{config: config, logger: logger}
}

// inputs is everything loaded before any calculation starts
type inputs struct {
	settings  *config.Settings
	lab       entities.LabConfig
	strategy  string
	run       *entities.Run
	volumes   *entities.VolumeTable
	chemicals repositories.ChemicalRepository
	closer    func() error
}

// Execute runs the command
func (c *PrepareCommand) Execute(ctx context.Context) error {
	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	files, err := c.resolveInputFiles()
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}
	c.logger.Debug("input files resolved", zap.Any("files", files))

	in, err := c.load(files)
	if err != nil {
		return err
	}
	defer func() {
		if err := in.closer(); err != nil {
			c.logger.Warn("failed to close chemical store", zap.Error(err))
		}
	}()

	spec, err := services.NewPrepService(c.logger).
		BuildReagentSpec(ctx, in.run, in.volumes, in.chemicals, in.lab, in.strategy)
	if err != nil {
		return fmt.Errorf("error building reagent specification: %w", err)
	}

	if c.config.NominalsOnly {
		return output.Generate(spec, output.Config{
			Format:  c.config.Format,
			RunID:   in.run.RunID,
			Verbose: c.config.Verbose,
		})
	}

	outputDir := c.outputDir()
	if err := c.writeRobotFiles(in, outputDir); err != nil {
		return err
	}
	if err := c.uploadInterface(in, spec, outputDir); err != nil {
		return err
	}

	format := c.config.Format
	if format == "" || format == "text" {
		format = "csv"
	}
	err = output.Generate(spec, output.Config{
		Format:    format,
		OutputDir: outputDir,
		RunID:     in.run.RunID,
		Verbose:   c.config.Verbose,
	})
	if err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	c.logger.Info("run prepared",
		zap.String("run", in.run.RunID),
		zap.String("lab", in.lab.Name),
		zap.String("strategy", spec.Strategy),
		zap.String("output_dir", outputDir))
	return nil
}

func (c *PrepareCommand) load(files map[string]string) (*inputs, error) {
	settings, err := config.LoadSettings(files["Settings"])
	if err != nil {
		return nil, fmt.Errorf("error loading settings: %w", err)
	}

	run, err := config.LoadRun(files["Run"])
	if err != nil {
		return nil, fmt.Errorf("error loading run: %w", err)
	}

	labName := c.config.Lab
	if labName == "" {
		labName = run.Lab
	}
	lab, err := settings.Lab(labName)
	if err != nil {
		return nil, err
	}

	strategy := c.config.Strategy
	if strategy == "" {
		strategy = settings.StrategyFor(labName)
	}

	loader := csv.NewLoader()
	volumes, err := loader.LoadVolumes(files["Volumes"])
	if err != nil {
		return nil, fmt.Errorf("error loading volumes: %w", err)
	}

	in := &inputs{
		settings: settings,
		lab:      lab,
		strategy: strategy,
		run:      run,
		volumes:  volumes,
		closer:   func() error { return nil },
	}

	if c.config.ChemicalsDB != "" {
		repo, err := sqlite.Open(c.config.ChemicalsDB)
		if err != nil {
			return nil, fmt.Errorf("error opening chemical database: %w", err)
		}
		in.chemicals = repo
		in.closer = repo.Close
	} else {
		chemicals, err := loader.LoadChemicals(files["Chemicals"])
		if err != nil {
			return nil, fmt.Errorf("error loading chemicals: %w", err)
		}
		repo := memory.NewChemicalRepository(len(chemicals))
		if err := repo.LoadChemicals(chemicals); err != nil {
			return nil, fmt.Errorf("failed to load chemicals into repository: %w", err)
		}
		in.chemicals = repo
	}

	c.logger.Debug("data loaded",
		zap.String("run", run.RunID),
		zap.String("lab", lab.Name),
		zap.String("strategy", strategy),
		zap.Int("reagents", len(run.Reagents)),
		zap.Int("experiments", volumes.Experiments()))
	return in, nil
}

func (c *PrepareCommand) writeRobotFiles(in *inputs, outputDir string) error {
	writer := robotfile.NewWriter(outputDir, c.logger)
	if in.lab.Name == LabECL {
		if _, err := writer.WriteECL(in.run, in.volumes, in.lab); err != nil {
			return fmt.Errorf("error writing ECL robot file: %w", err)
		}
		return nil
	}
	if _, err := writer.WriteNimbus(in.run, in.volumes, in.lab); err != nil {
		return fmt.Errorf("error writing Nimbus robot files: %w", err)
	}
	return nil
}

func (c *PrepareCommand) uploadInterface(in *inputs, spec *dto.ReagentSpec, outputDir string) (retErr error) {
	path := c.config.InterfaceFile
	if path == "" {
		path = filepath.Join(outputDir, in.run.RunID+"_ReagentInterface.xlsx")
	}

	wb, err := sheets.OpenWorkbook(path, "")
	if err != nil {
		return err
	}
	defer func() {
		if err := wb.Close(); err != nil && retErr == nil {
			retErr = err
		}
	}()

	uploader := sheets.NewUploader(in.settings.RoboVersion, c.logger)
	if err := uploader.Upload(wb, in.run, spec, in.lab); err != nil {
		return fmt.Errorf("error uploading reagent interface: %w", err)
	}
	if err := wb.Save(); err != nil {
		return fmt.Errorf("failed to save reagent interface %s: %w", path, err)
	}
	c.logger.Info("reagent interface written", zap.String("path", path))
	return nil
}

// validateInputs validates the command configuration
func (c *PrepareCommand) validateInputs() error {
	if c.config.SettingsFile == "" {
		return fmt.Errorf("must specify a settings file with --config")
	}
	if c.config.RunDir == "" &&
		(c.config.RunFile == "" || c.config.VolumesFile == "" ||
			(c.config.ChemicalsFile == "" && c.config.ChemicalsDB == "")) {
		return fmt.Errorf("must specify either a run directory or the run, volumes and chemicals files")
	}
	return nil
}

// resolveInputFiles determines the actual file paths to use
func (c *PrepareCommand) resolveInputFiles() (map[string]string, error) {
	runPath, volumesPath, chemicalsPath := c.config.RunFile, c.config.VolumesFile, c.config.ChemicalsFile
	if c.config.RunDir != "" {
		if runPath == "" {
			runPath = filepath.Join(c.config.RunDir, RunFileName)
		}
		if volumesPath == "" {
			volumesPath = filepath.Join(c.config.RunDir, VolumesFileName)
		}
		if chemicalsPath == "" {
			chemicalsPath = filepath.Join(c.config.RunDir, ChemicalsFileName)
		}
	}

	files := map[string]string{
		"Settings": c.config.SettingsFile,
		"Run":      runPath,
		"Volumes":  volumesPath,
	}
	if c.config.ChemicalsDB == "" {
		files["Chemicals"] = chemicalsPath
	}

	// Validate files exist
	for name, path := range files {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}

	return files, nil
}

func (c *PrepareCommand) outputDir() string {
	switch {
	case c.config.OutputDir != "":
		return c.config.OutputDir
	case c.config.RunDir != "":
		return c.config.RunDir
	default:
		return "."
	}
}
