package spreadsheet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/diillson/momcarebot/internal/domain/entity"
	"github.com/diillson/momcarebot/internal/domain/repository"
	"github.com/diillson/momcarebot/internal/shared/types"
	"github.com/xuri/excelize/v2"
)

// XLSXRepositoryImpl reads worksheets from .xlsx workbooks.
type XLSXRepositoryImpl struct{}

// NewXLSXRepository creates a SpreadsheetRepository backed by excelize.
func NewXLSXRepository() repository.SpreadsheetRepository {
	return &XLSXRepositoryImpl{}
}

// ReadSheet loads the named worksheet as a grid of raw cell values. Formula
// cells yield their cached result and number-formatted cells their underlying
// number, so "£200" formatting in the sheet does not leak into the values.
func (r *XLSXRepositoryImpl) ReadSheet(ctx context.Context, path string, sheet string) (entity.Grid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", types.ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("error accessing spreadsheet: %w", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening spreadsheet: %w", err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: '%s' (found: %s)", types.ErrSheetNotFound, sheet, strings.Join(f.GetSheetList(), ", "))
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("error reading sheet '%s': %w", sheet, err)
	}

	grid := make(entity.Grid, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			if strings.TrimSpace(v) == "" {
				continue
			}
			cells[j] = v
		}
		grid[i] = cells
	}
	return grid, nil
}
