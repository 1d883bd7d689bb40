package renderer

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/rentbook"
	"github.com/etnz/rentbook/date"
	md "github.com/nao1215/markdown"
)

// LedgerMarkdown renders the rent ledger of a tenant, newest month first as
// returned by [rentbook.GenerateLedger], followed by the payments received.
func LedgerMarkdown(s *rentbook.State, t rentbook.Tenant, installments []rentbook.Installment) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	cur := s.Currency

	doc.H1(fmt.Sprintf("Rent Ledger of %s", t.Name))
	doc.PlainText(fmt.Sprintf("%s, %s due on day %d. Lease from %s to %s (%s).",
		propertyName(s, t.PropertyID), t.RentAmount.Format(cur), t.RentDueDay,
		t.LeaseStart, dateOrDash(t.LeaseEnd), t.Status))

	doc.H2("Installments")
	table := md.TableSet{Header: []string{"Month", "Due Date", "Due", "Paid", "Status"}}
	for _, i := range installments {
		table.Rows = append(table.Rows, []string{
			i.MonthKey,
			i.DueDate.String(),
			i.AmountDue.Format(cur),
			i.AmountPaid.Format(cur),
			statusLabel(i.Status),
		})
	}
	totals := rentbook.NewLedgerTotals(installments)
	table.Rows = append(table.Rows, []string{
		md.Bold("Total"), "",
		md.Bold(totals.Due.Format(cur)),
		md.Bold(totals.Paid.Format(cur)),
		md.Bold("missing " + totals.Shortfall.Format(cur)),
	})
	doc.Table(table)

	var received []rentbook.Payment
	for _, p := range s.Payments {
		if p.TenantID == t.ID {
			received = append(received, p)
		}
	}
	if len(received) > 0 {
		slices.SortStableFunc(received, func(a, b rentbook.Payment) int { return compareDates(b.Date, a.Date) })
		doc.H2("Payments")
		lines := make([]string, 0, len(received))
		for _, p := range received {
			lines = append(lines, Payment(p, cur))
		}
		doc.BulletList(lines...)
	}
	return doc.String()
}

// statusLabel renders an installment status, emphasizing what needs attention.
func statusLabel(s rentbook.InstallmentStatus) string {
	switch s {
	case rentbook.Overdue:
		return md.Bold(strings.ToUpper(string(s)))
	case rentbook.Partial:
		return md.Bold(string(s))
	default:
		return string(s)
	}
}

func compareDates(a, b date.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

// MoveOutMarkdown renders the settlement of a tenant leaving on day on.
// committed tells whether the settlement was recorded in the book or is a
// projection.
func MoveOutMarkdown(s *rentbook.State, t rentbook.Tenant, m rentbook.MoveOutFinancials, on date.Date, committed bool) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	cur := s.Currency

	doc.H1(fmt.Sprintf("Move-Out of %s on %s", t.Name, on))
	doc.Table(md.TableSet{
		Header: []string{"Item", "Amount"},
		Rows: [][]string{
			{"Deposit Held", m.DepositHeld.Format(cur)},
			{"Unpaid Rent", m.UnpaidRent.Format(cur)},
			{md.Bold("Net Refundable"), md.Bold(m.NetRefundable.Format(cur))},
		},
	})
	switch {
	case m.NetRefundable.IsNegative():
		doc.PlainText(fmt.Sprintf("%s still owes %s.", t.Name, m.NetRefundable.Neg().Format(cur)))
	case m.NetRefundable.IsPositive():
		doc.PlainText(fmt.Sprintf("Refund %s to %s.", m.NetRefundable.Format(cur), t.Name))
	default:
		doc.PlainText("Nothing to refund, nothing owed.")
	}
	if !committed {
		doc.PlainText("")
		doc.PlainText("Projection only: nothing was recorded.")
	}
	return doc.String()
}
