package plan

import (
	"fmt"
	"math"
	"strings"

	"github.com/diillson/momcarebot/internal/domain/entity"
	"github.com/dustin/go-humanize"
)

const (
	messageTitle    = "🧾 MomCareBot — Monthly Support Plan"
	messageReminder = "✅ Reminder: keep it consistent + save emergency fund monthly."
)

// FormatMessage renders the plan as a Telegram text message.
func FormatMessage(p entity.CarePlan) string {
	lines := []string{
		messageTitle,
		fmt.Sprintf("Income: £%.0f/week (~£%.0f/month)", p.WeeklyIncome, p.MonthlyIncome),
		"Planned support: £" + Pounds(p.TotalSupportPrimary) + approxNaira(p.TotalSupportSecondary),
		"",
		"Breakdown:",
	}
	for _, item := range p.Items {
		lines = append(lines, fmt.Sprintf("• %s: £%s%s", item.Category, Pounds(item.AmountPrimary), approxNaira(item.AmountSecondary)))
	}
	lines = append(lines, "", messageReminder)
	return strings.Join(lines, "\n")
}

// FormatEmergencyReminder renders the weekly savings reminder for item.
func FormatEmergencyReminder(item entity.BudgetItem) string {
	return fmt.Sprintf("💰 MomCareBot: Emergency savings reminder — £%s%s",
		Pounds(item.AmountPrimary), approxNaira(item.AmountSecondary))
}

// Pounds formats a primary amount with no decimals.
func Pounds(v float64) string {
	return fmt.Sprintf("%.0f", v)
}

// Naira formats a secondary amount with no decimals and thousands separators.
func Naira(v float64) string {
	r := math.RoundToEven(v)
	if r == 0 {
		r = 0 // drop the sign of -0
	}
	return humanize.Commaf(r)
}

func approxNaira(v *float64) string {
	if v == nil {
		return ""
	}
	return " (≈ ₦" + Naira(*v) + ")"
}
