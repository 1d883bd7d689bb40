package rentbook

import (
	"cmp"
	"slices"

	"github.com/etnz/rentbook/date"
)

// DefaultWatchlistDays is how far ahead the lease watchlist looks.
const DefaultWatchlistDays = 60

// ExpiringLease is an active lease ending soon.
type ExpiringLease struct {
	Tenant   Tenant
	DaysLeft int
}

// LeaseWatchlist returns the active leases ending within horizonDays of now,
// including those ending today, soonest first.
func LeaseWatchlist(tenants []Tenant, now date.Date, horizonDays int) []ExpiringLease {
	var out []ExpiringLease
	for _, t := range tenants {
		if !t.IsActive() || t.LeaseEnd.IsZero() {
			continue
		}
		left := date.DaysBetween(now, t.LeaseEnd)
		if left < 0 || left > horizonDays {
			continue
		}
		out = append(out, ExpiringLease{Tenant: t, DaysLeft: left})
	}
	slices.SortStableFunc(out, func(a, b ExpiringLease) int { return cmp.Compare(a.DaysLeft, b.DaysLeft) })
	return out
}
