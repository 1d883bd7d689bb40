package sheet

import (
	"bytes"
	"testing"

	"github.com/etnz/rentbook"
	"github.com/etnz/rentbook/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func payments() []rentbook.Payment {
	return []rentbook.Payment{
		{ID: "r1", PropertyID: "p1", TenantID: "t1", Amount: rentbook.M(1000), Date: date.New(2023, 12, 2), Type: rentbook.Rent},
		{ID: "r2", PropertyID: "p1", TenantID: "t1", Amount: rentbook.M(1000), Date: date.New(2024, 1, 2), Type: rentbook.Rent},
		{ID: "d1", PropertyID: "p1", TenantID: "t1", Amount: rentbook.M(2000), Date: date.New(2024, 1, 2), Type: rentbook.Deposit},
		{ID: "e1", PropertyID: "p1", Amount: rentbook.M(120.5), Date: date.New(2024, 1, 20), Type: rentbook.Expense, ExpenseCategory: "Repairs"},
		{ID: "e2", PropertyID: "p1", Amount: rentbook.M(300), Date: date.New(2024, 2, 1), Type: rentbook.Expense, Note: "Taxes: land"},
	}
}

func open(t *testing.T, year int) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, payments(), year))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func raw(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return v
}

func TestExport_Sheets(t *testing.T) {
	f := open(t, 2024)
	assert.Equal(t, []string{"Monthly", "Yearly", "P&L 2024"}, f.GetSheetList())
}

func TestExport_Monthly(t *testing.T) {
	f := open(t, 2024)
	rows, err := f.GetRows(Monthly)
	require.NoError(t, err)
	require.Len(t, rows, 4) // header and three months.

	assert.Equal(t, "Month", rows[0][0])
	// Newest first.
	assert.Equal(t, "2024-02", raw(t, f, Monthly, "A2"))
	assert.Equal(t, "2024-01", raw(t, f, Monthly, "A3"))
	assert.Equal(t, "3000", raw(t, f, Monthly, "B3"))
	assert.Equal(t, "120.5", raw(t, f, Monthly, "C3"))
	assert.Equal(t, "2879.5", raw(t, f, Monthly, "D3"))
	assert.Equal(t, "-300", raw(t, f, Monthly, "D2"))
}

func TestExport_Yearly(t *testing.T) {
	f := open(t, 2024)
	assert.Equal(t, "2024", raw(t, f, Yearly, "A2"))
	assert.Equal(t, "2023", raw(t, f, Yearly, "A3"))
	assert.Equal(t, "1000", raw(t, f, Yearly, "B3"))
}

func TestExport_IncomeStatement(t *testing.T) {
	f := open(t, 2024)
	sheet := IncomeStatementSheet(2024)

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	var labels []string
	for _, r := range rows {
		if len(r) > 0 {
			labels = append(labels, r[0])
		}
	}
	assert.Equal(t, []string{
		"Revenue", "Rent", "Deposits", "Other", "Total Revenue",
		"Expenses", "Repairs", "Taxes", "Total Expenses",
		"Net Income",
	}, labels)

	assert.Equal(t, "3000", raw(t, f, sheet, "B5"))   // total revenue
	assert.Equal(t, "420.5", raw(t, f, sheet, "B10")) // total expenses
	assert.Equal(t, "2579.5", raw(t, f, sheet, "B12"))
}

func TestExport_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, nil, 2024))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(Monthly)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
