package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/reagentprep/pkg/application/dto"
	"github.com/vsinha/reagentprep/pkg/domain/entities"
	"github.com/vsinha/reagentprep/pkg/domain/repositories"
	"github.com/vsinha/reagentprep/pkg/domain/services/lineitems"
	"github.com/vsinha/reagentprep/pkg/domain/services/nominals"
)

var microlitersPerMilliliter = decimal.NewFromInt(1000)

// PrepService assembles the reagent preparation table for a run
type PrepService struct {
	logger *zap.Logger
}

// NewPrepService creates a new prep service. A nil logger discards output.
func NewPrepService(logger *zap.Logger) *PrepService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrepService{logger: logger}
}

// TargetVolumes returns the volume (µL) of each reagent to prepare: the sum of
// its planned dispenses plus the dead volume left in the reservoir.
func TargetVolumes(vt *entities.VolumeTable, deadVolumeUL decimal.Decimal) entities.TargetVolumes {
	targets := make(entities.TargetVolumes, len(vt.Columns))
	for _, col := range vt.Columns {
		targets[col.Reagent] = col.Sum().Add(deadVolumeUL)
	}
	return targets
}

// BuildReagentSpec builds the line-item table for the run's reagents,
// resolves nominal amounts with the named strategy and joins the two.
func (s *PrepService) BuildReagentSpec(
	ctx context.Context,
	run *entities.Run,
	vt *entities.VolumeTable,
	chemicals repositories.ChemicalLookup,
	cfg entities.LabConfig,
	strategy string,
) (*dto.ReagentSpec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	resolver, err := nominals.NewResolver(strategy, s.logger)
	if err != nil {
		return nil, err
	}

	items, err := lineitems.Build(run.Reagents, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build line items: %w", err)
	}

	deadVolume := run.ReagentDeadVolume.Mul(microlitersPerMilliliter)
	targets := TargetVolumes(vt, deadVolume)

	s.logger.Debug("resolving nominal amounts",
		zap.String("run", run.RunID),
		zap.String("lab", cfg.Name),
		zap.String("strategy", resolver.Name()),
		zap.Int("line_items", len(items)),
	)

	rows, err := resolver.Resolve(nominals.Request{
		Reagents:      run.Reagents,
		LineItems:     items,
		TargetVolumes: targets,
		Solvents:      run.Solvents,
		Chemicals:     chemicals,
		Config:        cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve nominals for run %s: %w", run.RunID, err)
	}

	joined, err := Join(items, rows)
	if err != nil {
		return nil, err
	}

	return &dto.ReagentSpec{
		Strategy:      resolver.Name(),
		Rows:          joined,
		TargetVolumes: targets,
	}, nil
}

// Join concatenates line items and nominal rows position by position
func Join(items []entities.LineItem, rows []entities.NominalRow) ([]entities.ReagentSpecRow, error) {
	if len(items) != len(rows) {
		return nil, fmt.Errorf("%w: %d line items but %d nominal rows",
			entities.ErrConfigMismatch, len(items), len(rows))
	}
	joined := make([]entities.ReagentSpecRow, len(items))
	for i := range items {
		joined[i] = entities.ReagentSpecRow{LineItem: items[i], Nominal: rows[i]}
	}
	return joined, nil
}
