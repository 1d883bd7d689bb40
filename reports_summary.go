package rentbook

import (
	"cmp"
	"slices"

	"github.com/etnz/rentbook/date"
)

// PeriodSummary is the income and expense of one month or one year.
type PeriodSummary struct {
	Period  string // "YYYY-MM" or "YYYY".
	Income  Money  // rent, deposits and late fees.
	Expense Money
	Net     Money
}

// PeriodSummaries holds the monthly and yearly summaries, newest first.
type PeriodSummaries struct {
	Monthly []PeriodSummary
	Yearly  []PeriodSummary
}

// NewPeriodSummaries groups all payments by month and by year.
//
// A payment's MonthKey, when set, decides its bucket. Payments with neither a
// month key nor a date are skipped. Equity payments count in neither income
// nor expense but still open their buckets.
func NewPeriodSummaries(payments []Payment) PeriodSummaries {
	monthly := make(map[string]*PeriodSummary)
	yearly := make(map[string]*PeriodSummary)
	add := func(buckets map[string]*PeriodSummary, key string, p Payment) {
		s, ok := buckets[key]
		if !ok {
			s = &PeriodSummary{Period: key}
			buckets[key] = s
		}
		switch {
		case p.Type == Expense:
			s.Expense = s.Expense.Add(p.Amount)
		case p.Type.IsRevenue():
			s.Income = s.Income.Add(p.Amount)
		}
		s.Net = s.Income.Sub(s.Expense)
	}

	for _, p := range payments {
		key, ok := p.Month()
		if !ok {
			continue
		}
		on, err := date.ParseMonthKey(key)
		if err != nil {
			continue
		}
		add(monthly, date.Monthly.Key(on), p)
		add(yearly, date.Yearly.Key(on), p)
	}
	return PeriodSummaries{Monthly: sortedDesc(monthly), Yearly: sortedDesc(yearly)}
}

func sortedDesc(buckets map[string]*PeriodSummary) []PeriodSummary {
	out := make([]PeriodSummary, 0, len(buckets))
	for _, s := range buckets {
		out = append(out, *s)
	}
	slices.SortFunc(out, func(a, b PeriodSummary) int { return cmp.Compare(b.Period, a.Period) })
	return out
}
