package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/diillson/momcarebot/internal/domain/entity"
	"github.com/diillson/momcarebot/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl renders plan documents to PDF.
type ExportRepositoryImpl struct{}

// NewExportRepository creates the PDF ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

const (
	pageMargin = 20.0
	cellPad    = 2.0
	lineHeight = 5.0
)

type rgb [3]int

var (
	darkFill   = rgb{17, 24, 39}
	tealFill   = rgb{15, 118, 110}
	stripeFill = rgb{249, 250, 251}
	gridColor  = rgb{209, 213, 219}
	footerText = rgb{107, 114, 128}
	bodyText   = rgb{50, 50, 50}
	white      = rgb{255, 255, 255}
)

// tableStyle describes how one table is drawn.
type tableStyle struct {
	widths     []float64
	headerFill rgb
	// lastRowDark renders the final row like the header, for totals.
	lastRowDark bool
}

// RenderPlanPDF lays the plan document out on A4 pages.
func (r *ExportRepositoryImpl) RenderPlanPDF(doc entity.PlanDocument, outPath string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", filepath.Dir(outPath), err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(doc.Title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pageW, _ := pdf.GetPageSize()
		half := (pageW - 2*pageMargin) / 2
		pdf.SetY(-13)
		pdf.SetX(pageMargin)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(footerText[0], footerText[1], footerText[2])
		pdf.CellFormat(half, 5, tr(doc.FooterLabel), "", 0, "L", false, 0, "")
		pdf.CellFormat(half, 5, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 12, tr(doc.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10.5)
	pdf.SetTextColor(bodyText[0], bodyText[1], bodyText[2])
	pdf.CellFormat(0, 6, tr(doc.Subtitle), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	section := func(title string) {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")
		pdf.Ln(1)
	}
	paragraph := func(text string) {
		pdf.SetFont("Helvetica", "", 10.5)
		pdf.SetTextColor(bodyText[0], bodyText[1], bodyText[2])
		pdf.MultiCell(0, lineHeight+0.5, tr(text), "", "L", false)
	}

	section("Plan summary")
	paragraph(doc.Summary)

	section("Your income baseline")
	drawTable(pdf, tr, doc.IncomeHeader, doc.IncomeRows, tableStyle{
		widths:     []float64{85, 85},
		headerFill: darkFill,
	})

	section("Monthly support budget (recommended)")
	paragraph(doc.SupportLine)
	pdf.Ln(2)
	budgetRows := append(append([][]string{}, doc.BudgetRows...), doc.TotalRow)
	drawTable(pdf, tr, doc.BudgetHeader, budgetRows, tableStyle{
		widths:      []float64{66, 30, 32, 42},
		headerFill:  tealFill,
		lastRowDark: true,
	})

	section(doc.ChecklistTitle)
	for _, item := range doc.Checklist {
		paragraph("- " + item)
	}

	section("Notes")
	paragraph(doc.Notes)

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outPath)
}

// drawTable draws a header row plus body rows with wrapped cells. Rows that do
// not fit on the current page move to the next one.
func drawTable(pdf *gofpdf.Fpdf, tr func(string) string, header []string, rows [][]string, style tableStyle) {
	pdf.SetDrawColor(gridColor[0], gridColor[1], gridColor[2])
	pdf.SetLineWidth(0.2)

	drawRow(pdf, tr, header, style.widths, style.headerFill, white, "B")
	for i, row := range rows {
		switch {
		case style.lastRowDark && i == len(rows)-1:
			drawRow(pdf, tr, row, style.widths, darkFill, white, "B")
		case i%2 == 1:
			drawRow(pdf, tr, row, style.widths, stripeFill, bodyText, "")
		default:
			drawRow(pdf, tr, row, style.widths, white, bodyText, "")
		}
	}
	pdf.Ln(2)
}

func drawRow(pdf *gofpdf.Fpdf, tr func(string) string, cells []string, widths []float64, fill, text rgb, fontStyle string) {
	pdf.SetFont("Helvetica", fontStyle, 10)

	maxLines := 1
	for i, w := range widths {
		if i >= len(cells) {
			break
		}
		lines := len(pdf.SplitLines([]byte(tr(cells[i])), w-2*cellPad))
		if lines > maxLines {
			maxLines = lines
		}
	}
	height := float64(maxLines)*lineHeight + 2*cellPad

	_, pageH := pdf.GetPageSize()
	if pdf.GetY()+height > pageH-pageMargin {
		pdf.AddPage()
	}

	x, y := pdf.GetX(), pdf.GetY()
	pdf.SetFillColor(fill[0], fill[1], fill[2])
	pdf.SetTextColor(text[0], text[1], text[2])
	for i, w := range widths {
		pdf.Rect(x, y, w, height, "FD")
		if i < len(cells) {
			pdf.SetXY(x+cellPad, y+cellPad)
			pdf.MultiCell(w-2*cellPad, lineHeight, tr(cells[i]), "", "L", false)
		}
		x += w
	}
	pdf.SetXY(pageMargin, y+height)
}
