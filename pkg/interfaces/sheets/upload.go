package sheets

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/vsinha/reagentprep/pkg/application/dto"
	"github.com/vsinha/reagentprep/pkg/domain/entities"
)

// AliasPlaceholder is replaced by the lab's reagent alias in the template
const AliasPlaceholder = "<Reagent>"

// D3:F11 holds one row of preparation settings per reagent slot
const (
	prepInfoFirstRow = 3
	prepInfoRows     = 9
)

var prepInfoColumns = []string{"D", "E", "F"}

// ReagentHeaderCells returns the cell of column on the first row of every
// reagent block of the specification table.
func ReagentHeaderCells(column string, cfg entities.LabConfig) []string {
	cells := make([]string, 0, cfg.MaxReagents)
	for i := 0; i < cfg.MaxReagents; i++ {
		row := cfg.ReagentInterfaceAmountStartRow + i*cfg.BlockSize()
		cells = append(cells, fmt.Sprintf("%s%d", column, row))
	}
	return cells
}

// Uploader writes a run's reagent preparation information into a sheet
type Uploader struct {
	roboVersion string
	logger      *zap.Logger
}

// NewUploader creates an uploader stamping roboVersion into the run
// information block. A nil logger discards output.
func NewUploader(roboVersion string, logger *zap.Logger) *Uploader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Uploader{roboVersion: roboVersion, logger: logger}
}

// Upload fills every section of the reagent interface
func (u *Uploader) Upload(sheet Sheet, run *entities.Run, spec *dto.ReagentSpec, cfg entities.LabConfig) error {
	u.logger.Info("starting reagent interface upload",
		zap.String("run", run.RunID),
		zap.String("lab", cfg.Name))

	steps := []struct {
		name string
		fn   func() error
	}{
		{"aliased cells", func() error { return UploadAliasedCells(sheet, cfg) }},
		{"reagent prep info", func() error { return UploadReagentPrepInfo(sheet, run.Reagents, cfg) }},
		{"run information", func() error { return UploadRunInformation(sheet, run, u.roboVersion) }},
		{"reagent specifications", func() error { return UploadReagentSpecifications(sheet, spec, cfg) }},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("failed to upload %s: %w", step.name, err)
		}
	}
	return nil
}

// UploadAliasedCells replaces the alias placeholder in the title cells and
// the reagent header cells of column A
func UploadAliasedCells(sheet Sheet, cfg entities.LabConfig) error {
	cells := append([]string{"C1", "C2"}, ReagentHeaderCells("A", cfg)...)
	for _, cell := range cells {
		current, err := sheet.Cell(cell)
		if err != nil {
			return err
		}
		if err := sheet.UpdateCell(cell, strings.ReplaceAll(current, AliasPlaceholder, cfg.Alias())); err != nil {
			return err
		}
	}
	return nil
}

// UploadReagentPrepInfo writes temperature, stir rate and duration of each
// reagent into D3:F11, one row per reagent slot, and the pre-reaction
// temperatures next to each reagent block in column H.
func UploadReagentPrepInfo(sheet Sheet, reagents entities.Reagents, cfg entities.LabConfig) error {
	var values []string
	slot := entities.ReagentKey(1)
	for _, key := range reagents.Keys() {
		for ; slot < key; slot++ {
			values = append(values, entities.NullValue, entities.NullValue, entities.NullValue)
		}
		r := reagents[key]
		values = append(values, r.PrepTemperature, r.PrepStirRate, r.PrepDuration)
		slot++
	}

	// Cells past the last specified reagent keep their template values
	for i, v := range values {
		if i >= prepInfoRows*len(prepInfoColumns) {
			break
		}
		cell := fmt.Sprintf("%s%d", prepInfoColumns[i%len(prepInfoColumns)], prepInfoFirstRow+i/len(prepInfoColumns))
		if err := sheet.UpdateCell(cell, v); err != nil {
			return err
		}
	}

	for i, cell := range ReagentHeaderCells("H", cfg) {
		payload := entities.NullValue
		if r, ok := reagents[entities.ReagentKey(i+1)]; ok && r.PreRxnTemperature != "" {
			payload = r.PreRxnTemperature
		}
		if err := sheet.UpdateCell(cell, payload); err != nil {
			return err
		}
	}
	return nil
}

// UploadRunInformation writes the run header block and blanks the notes
func UploadRunInformation(sheet Sheet, run *entities.Run, roboVersion string) error {
	cells := []struct {
		cell  string
		value any
	}{
		{"B2", run.Date},
		{"B3", run.Time},
		{"B4", run.Lab},
		{"B6", run.RunID},
		{"B7", run.ExpWorkflowVer},
		{"B8", roboVersion},
		{"B9", run.ChallengeProblem},
		{"B12", entities.NullValue},
		{"B13", entities.NullValue},
		{"B14", entities.NullValue},
	}
	for _, c := range cells {
		if err := sheet.UpdateCell(c.cell, c.value); err != nil {
			return err
		}
	}
	return nil
}

// UploadReagentSpecifications writes the line-item table from the lab's
// start row: chemical in B, nominal amount in C, actuals placeholder in D
// and unit in E.
func UploadReagentSpecifications(sheet Sheet, spec *dto.ReagentSpec, cfg entities.LabConfig) error {
	start := cfg.ReagentInterfaceAmountStartRow
	for i, row := range spec.Rows {
		r := start + i
		var amount any = entities.NullValue
		if row.Nominal.Amount.Valid {
			amount = row.Nominal.Amount.Decimal
		}
		cells := []struct {
			col   string
			value any
		}{
			{"B", row.Label()},
			{"C", amount},
			{"D", row.Nominal.ActualsString()},
			{"E", row.Nominal.Unit.String()},
		}
		for _, c := range cells {
			if err := sheet.UpdateCell(fmt.Sprintf("%s%d", c.col, r), c.value); err != nil {
				return err
			}
		}
	}
	return nil
}
