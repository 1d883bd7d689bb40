// Package rentbook is the financial derivation engine of a small real estate
// book: properties, tenants and the payments between them.
//
// The core functionalities include:
//   - Rent ledger: projecting the monthly rent obligations of a tenant and
//     allocating the rent received to them, oldest first.
//   - Move-out settlement: what is left of a tenant's deposit once unpaid rent
//     is covered.
//   - Property analysis: equity paid, remaining balance, valuation, ROI and
//     cap rate of each property.
//   - Reports: dashboard metrics, income and expense chart, yearly profit and
//     loss, monthly and yearly summaries, and the expiring lease watchlist.
//   - Data persistence: the book is a single [State], encoded as a versioned,
//     human readable JSON snapshot, and fed by CSV imports.
//
// Every function of the engine is pure: it reads the records it is given and
// an explicit "now" date, and never modifies them. This package serves as the
// foundational logic for the `rbk` command-line tool.
package rentbook
