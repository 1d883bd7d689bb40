package rentbook

import (
	"slices"

	"github.com/etnz/rentbook/date"
)

// InstallmentStatus is the fulfillment state of a monthly rent obligation.
type InstallmentStatus string

const (
	Paid    InstallmentStatus = "paid"
	Partial InstallmentStatus = "partial"
	Overdue InstallmentStatus = "overdue"
	Pending InstallmentStatus = "pending"
)

// Installment is one month of rent owed by a tenant.
type Installment struct {
	MonthKey   string
	DueDate    date.Date
	AmountDue  Money
	AmountPaid Money
	Status     InstallmentStatus
}

// Shortfall returns what remains to be paid on this installment, never negative.
func (i Installment) Shortfall() Money {
	return MaxMoney(Money{}, i.AmountDue.Sub(i.AmountPaid))
}

// IsOutstanding reports whether the installment is overdue or partially paid.
func (i Installment) IsOutstanding() bool { return i.Status == Overdue || i.Status == Partial }

// GenerateLedger projects the monthly rent obligations of a tenant and
// allocates the tenant's rent payments to them, oldest obligation first.
//
// The schedule runs from the month of the lease start to the month after the
// lease end for past tenants, or to the month after now for the others.
// Rent payments are pooled regardless of their date: a late payment settles
// the earliest unpaid month first.
//
// Installments are returned newest first. Use [Chronological] for the
// opposite order.
func GenerateLedger(t Tenant, payments []Payment, now date.Date) ([]Installment, error) {
	if err := validateLease(t); err != nil {
		return nil, err
	}

	start := t.LeaseStart.StartOfMonth()
	end := now.AddMonths(1)
	if t.Status == Past && !t.LeaseEnd.IsZero() {
		end = t.LeaseEnd.AddMonths(1)
	}

	var installments []Installment
	for month := range (date.Range{From: start, To: end}).Months() {
		installments = append(installments, Installment{
			MonthKey:  date.MonthKey(month),
			DueDate:   date.Clamp(month.Year(), month.Month(), t.RentDueDay),
			AmountDue: t.RentAmount,
		})
	}

	pool := rentPaid(t.ID, payments)
	for i := range installments {
		if !pool.IsPositive() {
			break
		}
		allocated := MinMoney(installments[i].AmountDue, pool)
		installments[i].AmountPaid = allocated
		pool = pool.Sub(allocated)
	}

	for i := range installments {
		installments[i].Status = installmentStatus(installments[i], t, now)
	}

	slices.Reverse(installments)
	return installments, nil
}

func installmentStatus(i Installment, t Tenant, now date.Date) InstallmentStatus {
	switch {
	case i.AmountPaid.GreaterThanOrEqual(i.AmountDue):
		return Paid
	case i.AmountPaid.IsPositive():
		return Partial
	case i.DueDate.Before(now) || t.Status == Past:
		return Overdue
	default:
		return Pending
	}
}

// validateLease rejects tenants whose schedule cannot be built.
func validateLease(t Tenant) error {
	if t.LeaseStart.IsZero() {
		return invalidTenant(t, "leaseStart", "is missing")
	}
	if t.RentDueDay < 1 || t.RentDueDay > 31 {
		return invalidTenant(t, "rentDueDay", "must be between 1 and 31")
	}
	if t.RentAmount.IsNegative() {
		return invalidTenant(t, "rentAmount", "must not be negative")
	}
	return nil
}

// rentPaid sums the rent payments of a tenant.
func rentPaid(tenantID string, payments []Payment) (total Money) {
	for _, p := range payments {
		if p.TenantID == tenantID && p.Type == Rent {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// Chronological returns a copy of a ledger, oldest installment first.
func Chronological(installments []Installment) []Installment {
	out := slices.Clone(installments)
	slices.Reverse(out)
	return out
}

// LedgerTotals summarizes a ledger.
type LedgerTotals struct {
	Due       Money
	Paid      Money
	Shortfall Money
	Count     map[InstallmentStatus]int
}

// NewLedgerTotals sums the installments of a ledger.
func NewLedgerTotals(installments []Installment) LedgerTotals {
	totals := LedgerTotals{Count: make(map[InstallmentStatus]int)}
	for _, i := range installments {
		totals.Due = totals.Due.Add(i.AmountDue)
		totals.Paid = totals.Paid.Add(i.AmountPaid)
		totals.Shortfall = totals.Shortfall.Add(i.Shortfall())
		totals.Count[i.Status]++
	}
	return totals
}
