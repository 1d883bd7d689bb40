package rentbook

import (
	"fmt"

	"github.com/etnz/rentbook/date"
)

// Dashboard gathers the headline metrics of the whole book.
type Dashboard struct {
	Date             date.Date
	TotalRevenue     Money // rent, deposits and late fees.
	TotalExpenses    Money
	NetIncome        Money
	OutstandingRent  Money // overdue and partial installments of active tenants.
	OccupancyRate    Percent
	ActiveTenants    int
	RentalProperties int
}

// NewDashboard computes the dashboard metrics on day now.
func NewDashboard(properties []Property, tenants []Tenant, payments []Payment, now date.Date) (*Dashboard, error) {
	d := &Dashboard{Date: now}
	for _, p := range payments {
		switch {
		case p.Type == Expense:
			d.TotalExpenses = d.TotalExpenses.Add(p.Amount)
		case p.Type.IsRevenue():
			d.TotalRevenue = d.TotalRevenue.Add(p.Amount)
		}
	}
	d.NetIncome = d.TotalRevenue.Sub(d.TotalExpenses)

	for _, t := range tenants {
		if !t.IsActive() {
			continue
		}
		d.ActiveTenants++
		installments, err := GenerateLedger(t, payments, now)
		if err != nil {
			return nil, fmt.Errorf("cannot compute outstanding rent: %w", err)
		}
		for _, i := range installments {
			if i.IsOutstanding() {
				d.OutstandingRent = d.OutstandingRent.Add(i.Shortfall())
			}
		}
	}

	for _, p := range properties {
		if p.IsRental() {
			d.RentalProperties++
		}
	}
	if d.RentalProperties > 0 {
		d.OccupancyRate = Percent(float64(d.ActiveTenants) / float64(d.RentalProperties) * 100)
	}
	return d, nil
}
