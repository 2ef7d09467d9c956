package sheets

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Workbook is a Sheet backed by one worksheet of a local xlsx file
type Workbook struct {
	file  *excelize.File
	sheet string
	path  string
}

// OpenWorkbook opens the workbook at path, or starts an empty one when the
// file does not exist yet. An empty sheet name selects the first worksheet.
func OpenWorkbook(path, sheet string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		f = excelize.NewFile()
		if sheet != "" {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to name sheet: %w", err)
			}
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		f.Close()
		return nil, fmt.Errorf("workbook %s has no sheet %q", path, sheet)
	}
	return &Workbook{file: f, sheet: sheet, path: path}, nil
}

// Cell returns the formatted value of a cell
func (w *Workbook) Cell(cell string) (string, error) {
	return w.file.GetCellValue(w.sheet, cell)
}

// UpdateCell sets a cell value. Decimals are stored as numbers.
func (w *Workbook) UpdateCell(cell string, value any) error {
	if d, ok := value.(decimal.Decimal); ok {
		value = d.InexactFloat64()
	}
	return w.file.SetCellValue(w.sheet, cell, value)
}

// Save writes the workbook back to its path
func (w *Workbook) Save() error {
	return w.file.SaveAs(w.path)
}

// Close releases the workbook
func (w *Workbook) Close() error {
	return w.file.Close()
}
