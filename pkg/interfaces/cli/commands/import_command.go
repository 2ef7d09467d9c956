package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vsinha/reagentprep/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/reagentprep/pkg/infrastructure/repositories/sqlite"
)

// ImportChemicalsCommand copies a chemicals CSV into the SQLite store
type ImportChemicalsCommand struct {
	csvFile  string
	database string
	logger   *zap.Logger
}

// NewImportChemicalsCommand creates the import command
func NewImportChemicalsCommand(csvFile, database string, logger *zap.Logger) *ImportChemicalsCommand {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportChemicalsCommand{csvFile: csvFile, database: database, logger: logger}
}

// Execute runs the import
func (c *ImportChemicalsCommand) Execute(ctx context.Context) (retErr error) {
	if c.csvFile == "" {
		return fmt.Errorf("validation error: a chemicals CSV file is required")
	}

	chemicals, err := csv.NewLoader().LoadChemicals(c.csvFile)
	if err != nil {
		return fmt.Errorf("error loading chemicals: %w", err)
	}

	repo, err := sqlite.Open(c.database)
	if err != nil {
		return fmt.Errorf("error opening chemical database: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil && retErr == nil {
			retErr = err
		}
	}()

	if err := repo.Import(ctx, chemicals); err != nil {
		return fmt.Errorf("error importing chemicals: %w", err)
	}

	c.logger.Info("chemicals imported",
		zap.String("source", c.csvFile),
		zap.String("database", c.database),
		zap.Int("count", len(chemicals)))
	return nil
}
