package entity

// BudgetItem is one line of planned support read from the breakdown block.
type BudgetItem struct {
	Category        string   `json:"category"`
	AmountPrimary   float64  `json:"amount_primary"`
	AmountSecondary *float64 `json:"amount_secondary,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// CarePlan is the parsed support plan for one period.
//
// TotalSupportPrimary comes from the totals row when the sheet has one and is
// then kept as-is even if it differs from the sum of the items. Without a
// totals row it is the sum of Items[*].AmountPrimary.
type CarePlan struct {
	WeeklyIncome          float64      `json:"weekly_income"`
	MonthlyIncome         float64      `json:"monthly_income"`
	TotalSupportPrimary   float64      `json:"total_support_primary"`
	TotalSupportSecondary *float64     `json:"total_support_secondary,omitempty"`
	Items                 []BudgetItem `json:"items"`
}

// FindItem returns the first item whose category satisfies match.
func (p CarePlan) FindItem(match func(BudgetItem) bool) (BudgetItem, bool) {
	for _, item := range p.Items {
		if match(item) {
			return item, true
		}
	}
	return BudgetItem{}, false
}
