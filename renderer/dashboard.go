package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/etnz/rentbook"
	md "github.com/nao1215/markdown"
)

// DashboardMarkdown renders the overview of the book: key figures, the cash
// chart of the last months and the leases ending soon.
func DashboardMarkdown(s *rentbook.State, d *rentbook.Dashboard, chart []rentbook.ChartPoint, leases []rentbook.ExpiringLease) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Dashboard on %s", d.Date))
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Revenue", d.TotalRevenue.Format(s.Currency)},
			{"Total Expenses", d.TotalExpenses.Format(s.Currency)},
			{md.Bold("Net Income"), md.Bold(d.NetIncome.Format(s.Currency))},
			{"Outstanding Rent", d.OutstandingRent.Format(s.Currency)},
			{"Occupancy", fmt.Sprintf("%s (%d tenants, %d rentals)", d.OccupancyRate, d.ActiveTenants, d.RentalProperties)},
		},
	})

	var b strings.Builder
	b.WriteString(doc.String())
	ConditionalBlock(&b, func(w io.Writer) bool {
		return section(w, func(doc *md.Markdown) bool {
			if len(chart) == 0 {
				return false
			}
			doc.H2("Cash Flow")
			chartTable(doc, chart, s.Currency)
			return true
		})
	})
	ConditionalBlock(&b, func(w io.Writer) bool {
		return section(w, func(doc *md.Markdown) bool {
			if len(leases) == 0 {
				return false
			}
			doc.H2("Leases Ending Soon")
			leasesTable(doc, s, leases)
			return true
		})
	})
	return b.String()
}

// ChartMarkdown renders the monthly income and expense series.
func ChartMarkdown(points []rentbook.ChartPoint, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Monthly Cash Flow")
	if len(points) == 0 {
		doc.PlainText("No month to show.")
		return doc.String()
	}
	chartTable(doc, points, currency)
	return doc.String()
}

func chartTable(doc *md.Markdown, points []rentbook.ChartPoint, currency string) {
	var top rentbook.Money
	for _, p := range points {
		top = rentbook.MaxMoney(top, rentbook.MaxMoney(p.Income, p.Expense))
	}
	table := md.TableSet{Header: []string{"Month", "Income", "Expense", "Net", "In", "Out"}}
	for _, p := range points {
		table.Rows = append(table.Rows, []string{
			p.Label,
			p.Income.Format(currency),
			p.Expense.Format(currency),
			signed(p.Income.Sub(p.Expense), currency),
			bar(p.Income, top, 20),
			bar(p.Expense, top, 20),
		})
	}
	doc.Table(table)
}

// LeasesMarkdown renders the lease watchlist.
func LeasesMarkdown(s *rentbook.State, leases []rentbook.ExpiringLease, horizonDays int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Lease Watchlist, next %d days", horizonDays))
	if len(leases) == 0 {
		doc.PlainText(fmt.Sprintf("No active lease ends in the next %d days.", horizonDays))
		return doc.String()
	}
	leasesTable(doc, s, leases)
	return doc.String()
}

func leasesTable(doc *md.Markdown, s *rentbook.State, leases []rentbook.ExpiringLease) {
	table := md.TableSet{Header: []string{"Tenant", "Property", "Lease End", "Days Left"}}
	for _, l := range leases {
		table.Rows = append(table.Rows, []string{
			l.Tenant.Name,
			propertyName(s, l.Tenant.PropertyID),
			l.Tenant.LeaseEnd.String(),
			strconv.Itoa(l.DaysLeft),
		})
	}
	doc.Table(table)
}
