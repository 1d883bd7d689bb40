package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/rentbook"
	md "github.com/nao1215/markdown"
)

// IncomeStatementMarkdown renders the profit and loss of a year.
func IncomeStatementMarkdown(st *rentbook.IncomeStatement, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Profit & Loss %d", st.Year))

	doc.H2("Revenue")
	doc.Table(md.TableSet{
		Header: []string{"Source", "Amount"},
		Rows: [][]string{
			{"Rent", st.Revenue.Rent.Format(currency)},
			{"Deposits", st.Revenue.Deposit.Format(currency)},
			{"Other", st.Revenue.Other.Format(currency)},
			{md.Bold("Total Revenue"), md.Bold(st.Revenue.Total.Format(currency))},
		},
	})

	doc.H2("Expenses")
	rows := make([][]string, 0, len(st.Expenses)+1)
	for _, e := range st.Expenses {
		rows = append(rows, []string{e.Category, e.Amount.Format(currency)})
	}
	rows = append(rows, []string{md.Bold("Total Expenses"), md.Bold(st.TotalExpenses.Format(currency))})
	doc.Table(md.TableSet{Header: []string{"Category", "Amount"}, Rows: rows})

	doc.PlainText(md.Bold(fmt.Sprintf("Net Income: %s", st.NetIncome.Format(currency))))
	return doc.String()
}

// SummaryMarkdown renders the monthly and yearly summaries, newest first.
// At most months monthly rows are shown, all of them when months is not positive.
func SummaryMarkdown(s rentbook.PeriodSummaries, currency string, months int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Financial Summary")
	if len(s.Monthly) == 0 && len(s.Yearly) == 0 {
		doc.PlainText("No payment recorded.")
		return doc.String()
	}

	monthly := s.Monthly
	if months > 0 && len(monthly) > months {
		monthly = monthly[:months]
	}
	doc.H2("Monthly")
	doc.Table(summaryTable(monthly, "Month", currency))
	doc.H2("Yearly")
	doc.Table(summaryTable(s.Yearly, "Year", currency))
	return doc.String()
}

func summaryTable(rows []rentbook.PeriodSummary, label, currency string) md.TableSet {
	table := md.TableSet{Header: []string{label, "Income", "Expense", "Net"}}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{
			r.Period,
			r.Income.Format(currency),
			r.Expense.Format(currency),
			signed(r.Net, currency),
		})
	}
	return table
}
