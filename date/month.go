package date

import (
	"fmt"
	"math"
	"time"
)

// MonthKey formats the year and month of d as "YYYY-MM".
func MonthKey(d Date) string { return fmt.Sprintf("%04d-%02d", d.y, int(d.m)) }

// YearKey formats the year of d as "YYYY".
func YearKey(d Date) string { return fmt.Sprintf("%04d", d.y) }

// ParseMonthKey parses a "YYYY-MM" key into the first day of that month.
func ParseMonthKey(key string) (Date, error) {
	on, err := time.Parse("2006-01", key)
	if err != nil {
		return Date{}, fmt.Errorf("invalid month key %q want format %q: %w", key, "YYYY-MM", err)
	}
	return New(on.Year(), on.Month(), 1), nil
}

// StartOfMonth returns the first day of d's month.
func (d Date) StartOfMonth() Date { return New(d.y, d.m, 1) }

// EndOfMonth returns the last day of d's month.
func (d Date) EndOfMonth() Date { return New(d.y, d.m+1, 0) }

// AddMonths returns the first day of the month i months after d's month.
//
// Unlike time.AddDate it never overflows into the following month.
func (d Date) AddMonths(i int) Date { return New(d.y, d.m+time.Month(i), 1) }

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int { return New(year, month+1, 0).Day() }

// Clamp returns the date for day in the given month, clamped to the month
// length: day 30 of February is the last day of February.
func Clamp(year int, month time.Month, day int) Date {
	if n := DaysIn(year, month); day > n {
		day = n
	}
	if day < 1 {
		day = 1
	}
	return New(year, month, day)
}

// DaysBetween returns the number of days from a to b, rounded up. It is
// negative when b is before a.
func DaysBetween(a, b Date) int {
	return int(math.Ceil(b.time().Sub(a.time()).Hours() / 24))
}

// MonthsBetween returns the whole calendar month difference from a to b,
// ignoring the day of month.
func MonthsBetween(a, b Date) int {
	return (b.y-a.y)*12 + int(b.m) - int(a.m)
}
