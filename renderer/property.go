package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/rentbook"
	md "github.com/nao1215/markdown"
)

// PropertyMarkdown renders the financial snapshot of one property.
func PropertyMarkdown(p rentbook.Property, f rentbook.PropertyFinancials, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(p.Name)
	if p.Address != "" {
		doc.PlainText(p.Address)
	}
	doc.PlainText(fmt.Sprintf("%s property bought on %s for %s.", p.Type, dateOrDash(p.PurchaseDate), p.PurchasePrice.Format(currency)))

	doc.H2("Equity")
	status := fmt.Sprintf("%s paid", f.PercentPaid)
	if f.IsFullyPaid {
		status = "fully paid"
	}
	doc.Table(md.TableSet{
		Header: []string{"Item", "Amount"},
		Rows: [][]string{
			{"Equity Paid", f.TotalEquityPaid.Format(currency)},
			{"Remaining Balance", f.RemainingBalance.Format(currency)},
			{"Status", status},
			{"Current Value", f.CurrentValue.Format(currency)},
			{"Valuation Change", signed(f.ValuationDelta, currency)},
		},
	})

	doc.H2("Performance")
	rows := [][]string{
		{"Revenue", f.TotalRevenue.Format(currency)},
		{"Expenses", f.TotalExpenses.Format(currency)},
		{md.Bold("Net Income"), md.Bold(f.NetIncome.Format(currency))},
	}
	if f.IsPersonal {
		rows = append(rows, []string{"Appreciation", f.ROI.SignedString()})
	} else {
		rows = append(rows,
			[]string{"Cash-on-Cash ROI", f.ROI.SignedString()},
			[]string{"Cap Rate", f.CapRate.String()},
			[]string{"Months Owned", fmt.Sprint(f.MonthsOwned)},
		)
	}
	doc.Table(md.TableSet{Header: []string{"Metric", "Value"}, Rows: rows})
	return doc.String()
}

// PortfolioMarkdown renders the snapshot of every property and their totals.
func PortfolioMarkdown(s *rentbook.State, pf rentbook.PortfolioFinancials) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	cur := s.Currency

	doc.H1("Properties")
	if len(pf.Properties) == 0 {
		doc.PlainText("No property in the book.")
		return doc.String()
	}
	table := md.TableSet{Header: []string{"Property", "Type", "Value", "Equity", "Balance", "Net Income", "ROI"}}
	for _, f := range pf.Properties {
		p, _ := s.Property(f.PropertyID)
		table.Rows = append(table.Rows, []string{
			p.Name,
			string(p.Type),
			f.CurrentValue.Format(cur),
			f.TotalEquityPaid.Format(cur),
			f.RemainingBalance.Format(cur),
			f.NetIncome.Format(cur),
			f.ROI.SignedString(),
		})
	}
	table.Rows = append(table.Rows, []string{
		md.Bold("Total"), "",
		md.Bold(pf.CurrentValue.Format(cur)),
		md.Bold(pf.TotalEquityPaid.Format(cur)),
		md.Bold(pf.RemainingBalance.Format(cur)),
		md.Bold(pf.NetIncome.Format(cur)),
		"",
	})
	doc.Table(table)
	return doc.String()
}
