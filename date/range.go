package date

import "iter"

// Range represents a range of dates, boundaries included. A zero boundary
// leaves that side open.
type Range struct{ From, To Date }

// NewRange creates a new date range. If 'from' is after 'to', they are swapped.
func NewRange(from, to Date) Range {
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool {
	return (r.From.IsZero() || !date.Before(r.From)) && (r.To.IsZero() || !date.After(r.To))
}

// Months returns an iterator that yields the first day of each month
// overlapping the range. Both boundaries must be set.
func (r Range) Months() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for m := r.From.StartOfMonth(); !m.After(r.To); m = m.AddMonths(1) {
			if !yield(m) {
				return
			}
		}
	}
}
