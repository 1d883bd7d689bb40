// Package sheet exports the book summaries to an XLSX workbook.
//
// The workbook has three sheets: Monthly and Yearly with the income, expense
// and net of each period, newest first, and "P&L <year>" with the income
// statement of one year.
package sheet

import (
	"fmt"
	"io"

	"github.com/etnz/rentbook"
	"github.com/xuri/excelize/v2"
)

// Sheet names.
const (
	Monthly = "Monthly"
	Yearly  = "Yearly"
)

// IncomeStatementSheet returns the name of the P&L sheet of a year.
func IncomeStatementSheet(year int) string { return fmt.Sprintf("P&L %d", year) }

// amountFormat is the builtin "#,##0.00" number format.
const amountFormat = 4

// Export writes the workbook of the payments, with the P&L of year.
func Export(w io.Writer, payments []rentbook.Payment, year int) error {
	f := excelize.NewFile()
	defer f.Close()

	x := &exporter{f: f}
	x.styles()

	summaries := rentbook.NewPeriodSummaries(payments)
	if err := f.SetSheetName("Sheet1", Monthly); err != nil {
		return err
	}
	x.summary(Monthly, "Month", summaries.Monthly)

	x.newSheet(Yearly)
	x.summary(Yearly, "Year", summaries.Yearly)

	pl := IncomeStatementSheet(year)
	x.newSheet(pl)
	x.incomeStatement(pl, rentbook.NewIncomeStatement(payments, year))

	if x.err != nil {
		return fmt.Errorf("could not build workbook: %w", x.err)
	}
	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("could not write workbook: %w", err)
	}
	return nil
}

// exporter writes cells and keeps the first error, so that the layout code
// reads top down.
type exporter struct {
	f      *excelize.File
	err    error
	header int // style IDs
	amount int
	total  int
}

func (x *exporter) check(err error) {
	if x.err == nil {
		x.err = err
	}
}

func (x *exporter) styles() {
	var err error
	x.header, err = x.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	x.check(err)
	x.amount, err = x.f.NewStyle(&excelize.Style{NumFmt: amountFormat})
	x.check(err)
	x.total, err = x.f.NewStyle(&excelize.Style{NumFmt: amountFormat, Font: &excelize.Font{Bold: true}})
	x.check(err)
}

func (x *exporter) newSheet(name string) {
	_, err := x.f.NewSheet(name)
	x.check(err)
}

// row writes values from column A of row r.
func (x *exporter) row(sheet string, r int, values ...any) {
	cell, err := excelize.CoordinatesToCellName(1, r)
	x.check(err)
	x.check(x.f.SetSheetRow(sheet, cell, &values))
}

// style applies a style to the columns from..to of row r.
func (x *exporter) style(sheet string, r int, from, to int, style int) {
	first, err := excelize.CoordinatesToCellName(from, r)
	x.check(err)
	last, err := excelize.CoordinatesToCellName(to, r)
	x.check(err)
	x.check(x.f.SetCellStyle(sheet, first, last, style))
}

func (x *exporter) summary(sheet, label string, periods []rentbook.PeriodSummary) {
	x.row(sheet, 1, label, "Income", "Expense", "Net")
	x.style(sheet, 1, 1, 4, x.header)
	for i, p := range periods {
		r := i + 2
		x.row(sheet, r, p.Period, p.Income.InexactFloat64(), p.Expense.InexactFloat64(), p.Net.InexactFloat64())
		x.style(sheet, r, 2, 4, x.amount)
	}
	x.check(x.f.SetColWidth(sheet, "A", "A", 12))
	x.check(x.f.SetColWidth(sheet, "B", "D", 16))
	x.check(x.f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}))
}

func (x *exporter) incomeStatement(sheet string, st *rentbook.IncomeStatement) {
	r := 1
	line := func(label string, m rentbook.Money, style int) {
		x.row(sheet, r, label, m.InexactFloat64())
		x.style(sheet, r, 2, 2, style)
		r++
	}
	heading := func(label string) {
		x.row(sheet, r, label, "Amount")
		x.style(sheet, r, 1, 2, x.header)
		r++
	}

	heading("Revenue")
	line("Rent", st.Revenue.Rent, x.amount)
	line("Deposits", st.Revenue.Deposit, x.amount)
	line("Other", st.Revenue.Other, x.amount)
	line("Total Revenue", st.Revenue.Total, x.total)
	r++

	heading("Expenses")
	for _, e := range st.Expenses {
		line(e.Category, e.Amount, x.amount)
	}
	line("Total Expenses", st.TotalExpenses, x.total)
	r++

	line("Net Income", st.NetIncome, x.total)
	x.check(x.f.SetColWidth(sheet, "A", "A", 24))
	x.check(x.f.SetColWidth(sheet, "B", "B", 16))
}
