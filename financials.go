package rentbook

import "github.com/etnz/rentbook/date"

// PropertyFinancials is a snapshot of the equity and returns of one property.
type PropertyFinancials struct {
	PropertyID       string
	TotalEquityPaid  Money // down payment plus equity payments.
	RemainingBalance Money
	PercentPaid      Percent
	IsFullyPaid      bool
	CurrentValue     Money
	ValuationDelta   Money // positive for an appreciation.
	TotalRevenue     Money
	TotalExpenses    Money
	NetIncome        Money
	IsPersonal       bool
	// ROI is the appreciation of a personal-use property, or the
	// cash-on-cash return (net income over equity) of a rental.
	ROI         Percent
	CapRate     Percent // rentals only, 0 without a purchase date.
	MonthsOwned int     // at least 1 for rentals with a purchase date, else 0.
}

// CalculatePropertyFinancials derives the financial snapshot of a property
// from all the payments of the book. Payments of other properties are ignored.
func CalculatePropertyFinancials(p Property, payments []Payment, now date.Date) PropertyFinancials {
	f := PropertyFinancials{
		PropertyID:      p.ID,
		TotalEquityPaid: p.DownPayment,
		IsPersonal:      p.Type == PersonalUse,
	}
	for _, tx := range payments {
		if tx.PropertyID != p.ID {
			continue
		}
		switch {
		case tx.Type == Equity:
			f.TotalEquityPaid = f.TotalEquityPaid.Add(tx.Amount)
		case tx.Type == Expense:
			f.TotalExpenses = f.TotalExpenses.Add(tx.Amount)
		case tx.Type.IsRevenue():
			f.TotalRevenue = f.TotalRevenue.Add(tx.Amount)
		}
	}

	f.RemainingBalance = MaxMoney(Money{}, p.PurchasePrice.Sub(f.TotalEquityPaid))
	if p.PurchasePrice.IsPositive() {
		f.PercentPaid = min(100, Ratio(f.TotalEquityPaid, p.PurchasePrice))
	}
	f.IsFullyPaid = f.PercentPaid >= 100
	f.CurrentValue = p.CurrentValue()
	f.ValuationDelta = f.CurrentValue.Sub(p.PurchasePrice)
	f.NetIncome = f.TotalRevenue.Sub(f.TotalExpenses)

	if f.IsPersonal {
		f.ROI = Ratio(f.ValuationDelta, p.PurchasePrice)
		return f
	}

	f.ROI = Ratio(f.NetIncome, f.TotalEquityPaid)
	if p.PurchaseDate.IsZero() {
		// State rejects such properties; the holding period is unknown.
		return f
	}
	f.MonthsOwned = max(1, date.MonthsBetween(p.PurchaseDate, now))
	annualized := f.NetIncome.DivInt(f.MonthsOwned).MulInt(12)
	f.CapRate = Ratio(annualized, p.PurchasePrice)
	return f
}

// PortfolioFinancials sums the financial snapshots of several properties.
type PortfolioFinancials struct {
	Properties       []PropertyFinancials
	TotalEquityPaid  Money
	RemainingBalance Money
	CurrentValue     Money
	PurchasePrice    Money
	TotalRevenue     Money
	TotalExpenses    Money
	NetIncome        Money
}

// NewPortfolioFinancials computes the snapshot of every property and their totals.
func NewPortfolioFinancials(properties []Property, payments []Payment, now date.Date) PortfolioFinancials {
	var pf PortfolioFinancials
	for _, p := range properties {
		f := CalculatePropertyFinancials(p, payments, now)
		pf.Properties = append(pf.Properties, f)
		pf.TotalEquityPaid = pf.TotalEquityPaid.Add(f.TotalEquityPaid)
		pf.RemainingBalance = pf.RemainingBalance.Add(f.RemainingBalance)
		pf.CurrentValue = pf.CurrentValue.Add(f.CurrentValue)
		pf.PurchasePrice = pf.PurchasePrice.Add(p.PurchasePrice)
		pf.TotalRevenue = pf.TotalRevenue.Add(f.TotalRevenue)
		pf.TotalExpenses = pf.TotalExpenses.Add(f.TotalExpenses)
		pf.NetIncome = pf.NetIncome.Add(f.NetIncome)
	}
	return pf
}
