package robotfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet the Nimbus method reads its parameters from
const SheetName = "NIMBUS_reaction"

// WriteWorkbook writes the frame to a new workbook at path: a header row
// followed by one row per frame row.
func WriteWorkbook(frame *Frame, path string) (retErr error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil && retErr == nil {
			retErr = err
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for col, c := range frame.Columns {
		if err := setCell(f, col+1, 1, c.Name); err != nil {
			return err
		}
		for row, v := range c.Values {
			if v == nil {
				continue
			}
			if err := setCell(f, col+1, row+2, v); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if d, ok := value.(decimal.Decimal); ok {
		value = d.InexactFloat64()
	}
	if err := f.SetCellValue(SheetName, cell, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", cell, err)
	}
	return nil
}
