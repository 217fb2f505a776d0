package repository

import (
	"context"

	"github.com/diillson/momcarebot/internal/domain/entity"
)

// SpreadsheetRepository reads a worksheet into a raw grid.
type SpreadsheetRepository interface {
	ReadSheet(ctx context.Context, path string, sheet string) (entity.Grid, error)
}
