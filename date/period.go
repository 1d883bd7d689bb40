package date

import (
	"fmt"
	"strings"
)

// Period is the granularity of a summary bucket.
type Period int

const (
	Monthly Period = iota
	Yearly
)

func (p Period) String() string {
	switch p {
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// Key returns the bucket label of d for this period, "YYYY-MM" or "YYYY".
//
// Labels of the same period sort lexicographically in chronological order.
func (p Period) Key(d Date) string {
	switch p {
	case Monthly:
		return MonthKey(d)
	case Yearly:
		return YearKey(d)
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

func ParsePeriod(p string) (Period, error) {
	p = strings.ToLower(p)
	switch p {
	case "monthly", "month", "m":
		return Monthly, nil
	case "yearly", "year", "y":
		return Yearly, nil
	default:
		return Monthly, fmt.Errorf("unknown period %s", p)
	}
}
