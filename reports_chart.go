package rentbook

import "github.com/etnz/rentbook/date"

// ChartPoint is the cash in and out of one month.
type ChartPoint struct {
	MonthKey string
	Label    string // short month name, e.g. "Jan 2024".
	Income   Money  // every payment that is not an expense.
	Expense  Money
}

// DefaultChartMonths is the number of months of the dashboard chart.
const DefaultChartMonths = 6

// ChartSeries returns the income and expense of the trailing months,
// including the month of now, oldest first.
func ChartSeries(payments []Payment, now date.Date, months int) []ChartPoint {
	if months <= 0 {
		return nil
	}
	points := make([]ChartPoint, months)
	index := make(map[string]int, months)
	for i := range points {
		month := now.AddMonths(i - months + 1)
		points[i] = ChartPoint{MonthKey: date.MonthKey(month), Label: month.Format("Jan 2006")}
		index[points[i].MonthKey] = i
	}
	for _, p := range payments {
		key, ok := p.Month()
		if !ok {
			continue
		}
		i, ok := index[key]
		if !ok {
			continue
		}
		if p.Type == Expense {
			points[i].Expense = points[i].Expense.Add(p.Amount)
		} else {
			points[i].Income = points[i].Income.Add(p.Amount)
		}
	}
	return points
}
