package rentbook

import (
	"cmp"
	"slices"
)

// RevenueBreakdown splits the revenue of an income statement.
type RevenueBreakdown struct {
	Rent    Money
	Deposit Money
	Other   Money // late fees.
	Total   Money
}

// CategoryAmount is the total of one expense category.
type CategoryAmount struct {
	Category string
	Amount   Money
}

// IncomeStatement is the profit and loss statement of a calendar year.
type IncomeStatement struct {
	Year          int
	Revenue       RevenueBreakdown
	Expenses      []CategoryAmount // sorted by category.
	TotalExpenses Money
	NetIncome     Money
}

// NewIncomeStatement computes the profit and loss of the payments dated in year.
// Payments without a date are ignored.
func NewIncomeStatement(payments []Payment, year int) *IncomeStatement {
	s := &IncomeStatement{Year: year}
	expenses := make(map[string]Money)
	for _, p := range payments {
		if p.Date.IsZero() || p.Date.Year() != year {
			continue
		}
		switch p.Type {
		case Rent:
			s.Revenue.Rent = s.Revenue.Rent.Add(p.Amount)
		case Deposit:
			s.Revenue.Deposit = s.Revenue.Deposit.Add(p.Amount)
		case LateFee:
			s.Revenue.Other = s.Revenue.Other.Add(p.Amount)
		case Expense:
			c := ResolveExpenseCategory(p)
			expenses[c] = expenses[c].Add(p.Amount)
			s.TotalExpenses = s.TotalExpenses.Add(p.Amount)
		}
	}
	s.Revenue.Total = Sum(s.Revenue.Rent, s.Revenue.Deposit, s.Revenue.Other)
	for c, amount := range expenses {
		s.Expenses = append(s.Expenses, CategoryAmount{Category: c, Amount: amount})
	}
	slices.SortFunc(s.Expenses, func(a, b CategoryAmount) int { return cmp.Compare(a.Category, b.Category) })
	s.NetIncome = s.Revenue.Total.Sub(s.TotalExpenses)
	return s
}

// Expense returns the total of a category, zero if absent.
func (s *IncomeStatement) Expense(category string) Money {
	for _, c := range s.Expenses {
		if c.Category == category {
			return c.Amount
		}
	}
	return Money{}
}
