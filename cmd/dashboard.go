package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rentbook"
	"github.com/etnz/rentbook/renderer"
	"github.com/google/subcommands"
)

// dashboardCmd holds the flags for the 'dashboard' subcommand.
type dashboardCmd struct {
	date string
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "display the key figures of the books" }
func (*dashboardCmd) Usage() string {
	return `rbk dashboard [-d <date>]

  Displays revenue, expenses, net income, outstanding rent and occupancy,
  the cash flow of the last months and the leases ending soon.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date for the dashboard. See 'rbk topic dates' for supported date formats.")
}

func (c *dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withBook(ctx, func(a *app, s *rentbook.State) error {
		d, err := rentbook.NewDashboard(s.Properties, s.Tenants, s.Payments, on)
		if err != nil {
			return fmt.Errorf("could not compute the dashboard: %w", err)
		}
		chart := rentbook.ChartSeries(s.Payments, on, rentbook.DefaultChartMonths)
		leases := rentbook.LeaseWatchlist(s.Tenants, on, a.cfg.Remind.HorizonDays)
		printMarkdown(renderer.DashboardMarkdown(s, d, chart, leases))
		return nil
	})
}

// chartCmd holds the flags for the 'chart' subcommand.
type chartCmd struct {
	date   string
	months int
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "display the monthly cash flow" }
func (*chartCmd) Usage() string {
	return `rbk chart [-d <date>] [-n <months>]

  Displays income and expenses of the trailing months, the month of the date included.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Last month of the chart. See 'rbk topic dates' for supported date formats.")
	f.IntVar(&c.months, "n", rentbook.DefaultChartMonths, "Number of months")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.months <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -n must be positive.")
		return subcommands.ExitUsageError
	}
	return withBook(ctx, func(a *app, s *rentbook.State) error {
		printMarkdown(renderer.ChartMarkdown(rentbook.ChartSeries(s.Payments, on, c.months), s.Currency))
		return nil
	})
}

// leasesCmd holds the flags for the 'leases' subcommand.
type leasesCmd struct {
	date string
	days int
}

func (*leasesCmd) Name() string     { return "leases" }
func (*leasesCmd) Synopsis() string { return "list the leases ending soon" }
func (*leasesCmd) Usage() string {
	return `rbk leases [-d <date>] [-days <n>]

  Lists the active leases ending within the next days.
`
}

func (c *leasesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Start of the horizon. See 'rbk topic dates' for supported date formats.")
	f.IntVar(&c.days, "days", 0, "Horizon in days, remind.horizon_days by default")
}

func (c *leasesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withBook(ctx, func(a *app, s *rentbook.State) error {
		days := c.days
		if days <= 0 {
			days = a.cfg.Remind.HorizonDays
		}
		printMarkdown(renderer.LeasesMarkdown(s, rentbook.LeaseWatchlist(s.Tenants, on, days), days))
		return nil
	})
}
