package plan

import (
	"fmt"
	"strings"

	"github.com/diillson/momcarebot/internal/domain/entity"
	"github.com/diillson/momcarebot/internal/shared/types"
	"github.com/shopspring/decimal"
)

// Sheet columns, 1-based.
const (
	ColLabel     = 1
	ColPrimary   = 2
	ColSecondary = 3
	ColNotes     = 4
)

// Row labels the extractor anchors on.
const (
	LabelWeeklyIncome    = "Weekly Income"
	LabelMonthlyIncome   = "Monthly Income"
	LabelBreakdownHeader = "MONTHLY SUPPORT BREAKDOWN"
	LabelTotalSupport    = "TOTAL MONTHLY SUPPORT"
	LabelRemaining       = "REMAINING FOR YOU"
)

// Extract builds a CarePlan from the support plan sheet.
//
// Rows are located by their label in the first column rather than by fixed
// coordinates, so rows may be inserted or moved in the sheet. The only hard
// failures are missing income rows and a missing breakdown header; any cell
// that does not hold a number is treated as empty.
func Extract(grid entity.Grid) (entity.CarePlan, error) {
	weeklyRow, err := requireRow(grid, LabelWeeklyIncome)
	if err != nil {
		return entity.CarePlan{}, err
	}
	monthlyRow, err := requireRow(grid, LabelMonthlyIncome)
	if err != nil {
		return entity.CarePlan{}, err
	}

	plan := entity.CarePlan{
		WeeklyIncome:  valueOrZero(Primary(grid.Cell(weeklyRow, ColPrimary))),
		MonthlyIncome: valueOrZero(Primary(grid.Cell(monthlyRow, ColPrimary))),
		Items:         []entity.BudgetItem{},
	}

	headerRow, err := requireRow(grid, LabelBreakdownHeader)
	if err != nil {
		return entity.CarePlan{}, err
	}

scan:
	for r := headerRow + 1; r <= grid.Rows(); r++ {
		label := grid.Text(r, ColLabel)
		if label == "" {
			continue
		}

		switch strings.ToUpper(label) {
		case LabelTotalSupport:
			plan.TotalSupportPrimary = valueOrZero(Primary(grid.Cell(r, ColPrimary)))
			plan.TotalSupportSecondary = Secondary(grid.Cell(r, ColSecondary))
			break scan
		case LabelRemaining:
			break scan
		}

		amount := Primary(grid.Cell(r, ColPrimary))
		if amount == nil {
			continue
		}

		plan.Items = append(plan.Items, entity.BudgetItem{
			Category:        label,
			AmountPrimary:   *amount,
			AmountSecondary: Secondary(grid.Cell(r, ColSecondary)),
			Notes:           grid.Text(r, ColNotes),
		})
	}

	if plan.TotalSupportPrimary == 0 && len(plan.Items) > 0 {
		plan.TotalSupportPrimary = SumPrimary(plan.Items)
	}

	return plan, nil
}

// SumPrimary adds up the primary amounts of items.
func SumPrimary(items []entity.BudgetItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(item.AmountPrimary))
	}
	return total.InexactFloat64()
}

// FindRow returns the 1-based row whose first column equals label, ignoring
// case and surrounding whitespace, or 0 when there is none.
func FindRow(grid entity.Grid, label string) int {
	want := strings.ToLower(strings.TrimSpace(label))
	for r := 1; r <= grid.Rows(); r++ {
		if strings.ToLower(grid.Text(r, ColLabel)) == want {
			return r
		}
	}
	return 0
}

func requireRow(grid entity.Grid, label string) (int, error) {
	row := FindRow(grid, label)
	if row == 0 {
		return 0, fmt.Errorf("%w: %q", types.ErrMissingAnchorRow, label)
	}
	return row, nil
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
