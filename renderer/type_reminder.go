package renderer

import (
	"cmp"
	"slices"

	"github.com/etnz/rentbook"
	"github.com/etnz/rentbook/date"
)

// Reminder is the digest of what a landlord should chase: unpaid rent and
// leases about to end.
type Reminder struct {
	// Date the digest was computed on.
	Date date.Date `json:"date"`
	// Currency used to format the amounts.
	Currency string `json:"currency"`
	// Overdue lists the installments not fully paid, oldest first.
	Overdue []ReminderRent `json:"overdue"`
	// TotalOverdue is the sum of the missing amounts.
	TotalOverdue rentbook.Money `json:"totalOverdue"`
	// Leases lists the active leases ending within the horizon, soonest first.
	Leases []ReminderLease `json:"leases"`
}

// ReminderRent is one installment with a shortfall.
type ReminderRent struct {
	Tenant    string                     `json:"tenant"`
	Email     string                     `json:"email,omitempty"`
	Property  string                     `json:"property"`
	Month     string                     `json:"month"`
	DueDate   date.Date                  `json:"dueDate"`
	Shortfall rentbook.Money             `json:"shortfall"`
	Status    rentbook.InstallmentStatus `json:"status"`
}

// ReminderLease is a lease ending soon.
type ReminderLease struct {
	Tenant   string    `json:"tenant"`
	Property string    `json:"property"`
	LeaseEnd date.Date `json:"leaseEnd"`
	DaysLeft int       `json:"daysLeft"`
}

// NewReminder computes the digest of the book on day now. Leases ending
// within horizonDays are listed.
//
// Only installments already overdue, or partially paid, are reported: a rent
// not yet due is not chased.
func NewReminder(s *rentbook.State, now date.Date, horizonDays int) (*Reminder, error) {
	r := &Reminder{
		Date:     now,
		Currency: s.Currency,
		Overdue:  make([]ReminderRent, 0),
		Leases:   make([]ReminderLease, 0),
	}
	for _, t := range s.Tenants {
		installments, err := rentbook.GenerateLedger(t, s.Payments, now)
		if err != nil {
			return nil, err
		}
		property := propertyName(s, t.PropertyID)
		for _, i := range installments {
			if i.Status != rentbook.Overdue && !(i.Status == rentbook.Partial && i.DueDate.Before(now)) {
				continue
			}
			r.Overdue = append(r.Overdue, ReminderRent{
				Tenant:    t.Name,
				Email:     t.Email,
				Property:  property,
				Month:     i.MonthKey,
				DueDate:   i.DueDate,
				Shortfall: i.Shortfall(),
				Status:    i.Status,
			})
			r.TotalOverdue = r.TotalOverdue.Add(i.Shortfall())
		}
	}
	slices.SortStableFunc(r.Overdue, func(a, b ReminderRent) int {
		if c := cmp.Compare(a.Month, b.Month); c != 0 {
			return c
		}
		return cmp.Compare(a.Tenant, b.Tenant)
	})

	for _, l := range rentbook.LeaseWatchlist(s.Tenants, now, horizonDays) {
		r.Leases = append(r.Leases, ReminderLease{
			Tenant:   l.Tenant.Name,
			Property: propertyName(s, l.Tenant.PropertyID),
			LeaseEnd: l.Tenant.LeaseEnd,
			DaysLeft: l.DaysLeft,
		})
	}
	return r, nil
}

// IsEmpty reports whether there is nothing to chase.
func (r *Reminder) IsEmpty() bool { return len(r.Overdue) == 0 && len(r.Leases) == 0 }

// Amount formats an amount in the digest currency.
func (r *Reminder) Amount(m rentbook.Money) string { return m.Format(r.Currency) }

// propertyName returns the name of a property, or its ID when unknown.
func propertyName(s *rentbook.State, id string) string {
	if p, ok := s.Property(id); ok {
		return p.Name
	}
	return id
}
