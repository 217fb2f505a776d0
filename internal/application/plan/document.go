package plan

import (
	"fmt"
	"time"

	"github.com/diillson/momcarebot/internal/domain/entity"
)

// DefaultFXNote is printed under Notes when no other note is given.
const DefaultFXNote = "NGN values are plan estimates (rate may change)."

// Checklist is the fixed operational advice printed on every plan document.
var Checklist = []string{
	"Set a fixed transfer date each month and keep it consistent.",
	"Enroll her in a state health insurance scheme / NHIS equivalent (state-dependent).",
	"Name one trusted local contact for check-ins and emergencies.",
	"Build an emergency fund gradually (start with NGN 100k–200k).",
	"Weekly call rhythm: 1–2 calls per week to support emotional wellbeing after retirement.",
}

// DocumentOptions carries the parts of the document that do not come from the plan.
type DocumentOptions struct {
	PreparedFor string
	Date        time.Time
	FXNote      string
}

// BuildDocument maps a plan onto the content of the plan PDF.
func BuildDocument(p entity.CarePlan, opts DocumentOptions) entity.PlanDocument {
	title := fmt.Sprintf("Mom Care Plan %d", opts.Date.Year())

	subtitle := "Date: " + opts.Date.Format("02 Jan 2006")
	footer := title
	if opts.PreparedFor != "" {
		subtitle = fmt.Sprintf("Prepared for: %s  |  %s", opts.PreparedFor, subtitle)
		footer = fmt.Sprintf("%s | Prepared by %s", title, opts.PreparedFor)
	}

	note := opts.FXNote
	if note == "" {
		note = DefaultFXNote
	}

	support := fmt.Sprintf("Total monthly support: GBP %s.", Pounds(p.TotalSupportPrimary))
	if p.TotalSupportSecondary != nil {
		support = fmt.Sprintf("Total monthly support: GBP %s (approx NGN %s).",
			Pounds(p.TotalSupportPrimary), Naira(*p.TotalSupportSecondary))
	}

	rows := make([][]string, 0, len(p.Items))
	for _, item := range p.Items {
		rows = append(rows, []string{
			item.Category,
			"GBP " + Pounds(item.AmountPrimary),
			nairaCell(item.AmountSecondary),
			item.Notes,
		})
	}

	return entity.PlanDocument{
		Title:    title,
		Subtitle: subtitle,
		Summary: "This plan supports your mum after retirement in Nigeria with stability, health coverage, " +
			"and emergency readiness, without over-stretching your finances.",
		IncomeHeader: []string{"Item", "Amount"},
		IncomeRows: [][]string{
			{"Weekly income (avg)", "GBP " + Pounds(p.WeeklyIncome)},
			{"Monthly income (estimate)", "GBP " + Pounds(p.MonthlyIncome)},
			{"Support budget rule", "Target 15–20% of income for sustainability"},
		},
		SupportLine:    support,
		BudgetHeader:   []string{"Category", "GBP / month", "NGN approx", "Notes"},
		BudgetRows:     rows,
		TotalRow:       []string{"TOTAL", "GBP " + Pounds(p.TotalSupportPrimary), nairaCell(p.TotalSupportSecondary), "Safe & sustainable baseline"},
		ChecklistTitle: "Operational checklist (Nigeria)",
		Checklist:      append([]string(nil), Checklist...),
		Notes:          note,
		FooterLabel:    footer,
	}
}

func nairaCell(v *float64) string {
	if v == nil {
		return "-"
	}
	return "NGN " + Naira(*v)
}
