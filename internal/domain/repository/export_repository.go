package repository

import (
	"github.com/diillson/momcarebot/internal/domain/entity"
)

// ExportRepository writes plan documents to disk.
type ExportRepository interface {
	// RenderPlanPDF writes the document to outPath, replacing any existing file,
	// and returns the absolute path written.
	RenderPlanPDF(doc entity.PlanDocument, outPath string) (string, error)
}
