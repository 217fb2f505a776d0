package entity

// PlanDocument is the layout-independent content of the plan PDF.
type PlanDocument struct {
	Title          string
	Subtitle       string
	Summary        string
	IncomeHeader   []string
	IncomeRows     [][]string
	SupportLine    string
	BudgetHeader   []string
	BudgetRows     [][]string
	TotalRow       []string
	ChecklistTitle string
	Checklist      []string
	Notes          string
	FooterLabel    string
}
