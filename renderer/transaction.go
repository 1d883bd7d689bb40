package renderer

import (
	"fmt"

	"github.com/etnz/rentbook"
)

// Payment renders a payment to a one line description.
func Payment(p rentbook.Payment, currency string) string {
	amount := p.Amount.Format(currency)
	var s string
	switch p.Type {
	case rentbook.Rent:
		s = fmt.Sprintf("%s: received rent of %s", p.Date, amount)
		if p.MonthKey != "" {
			s += " for " + p.MonthKey
		}
	case rentbook.Deposit:
		s = fmt.Sprintf("%s: received deposit of %s", p.Date, amount)
	case rentbook.LateFee:
		s = fmt.Sprintf("%s: received late fee of %s", p.Date, amount)
	case rentbook.Equity:
		s = fmt.Sprintf("%s: paid %s of principal", p.Date, amount)
	case rentbook.Expense:
		s = fmt.Sprintf("%s: spent %s on %s", p.Date, amount, rentbook.ResolveExpenseCategory(p))
	default:
		s = fmt.Sprintf("%s: %s of %s", p.Date, p.Type, amount)
	}
	if p.Method != "" {
		s += " (" + p.Method + ")"
	}
	if p.Note != "" {
		s += ", " + p.Note
	}
	return s
}
