package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/rentbook"
	"github.com/etnz/rentbook/date"
	"github.com/etnz/rentbook/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	months int
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display income and expenses per month and per year" }
func (*summaryCmd) Usage() string {
	return `rbk summary [-n <months>]

  Displays income, expense and net of every month and every year, newest first.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.months, "n", 12, "Number of months to show, 0 for all")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(ctx, func(a *app, s *rentbook.State) error {
		printMarkdown(renderer.SummaryMarkdown(rentbook.NewPeriodSummaries(s.Payments), s.Currency, c.months))
		return nil
	})
}

// pnlCmd holds the flags for the 'pnl' subcommand.
type pnlCmd struct {
	year int
}

func (*pnlCmd) Name() string     { return "pnl" }
func (*pnlCmd) Synopsis() string { return "display the profit and loss statement of a year" }
func (*pnlCmd) Usage() string {
	return `rbk pnl [-y <year>]

  Displays the revenue by source and the expenses by category of a calendar year.
`
}

func (c *pnlCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "y", date.Today().Year(), "Year of the statement")
}

func (c *pnlCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(ctx, func(a *app, s *rentbook.State) error {
		printMarkdown(renderer.IncomeStatementMarkdown(rentbook.NewIncomeStatement(s.Payments, c.year), s.Currency))
		return nil
	})
}

// propertyCmd holds the flags for the 'property' subcommand.
type propertyCmd struct {
	date string
}

func (*propertyCmd) Name() string     { return "property" }
func (*propertyCmd) Synopsis() string { return "display the financials of properties" }
func (*propertyCmd) Usage() string {
	return `rbk property [-d <date>] [<property>...]

  Displays equity, value, net income, ROI and cap rate of the named properties,
  or the portfolio overview when none is named.
`
}

func (c *propertyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the financials. See 'rbk topic dates' for supported date formats.")
}

func (c *propertyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withBook(ctx, func(a *app, s *rentbook.State) error {
		if f.NArg() == 0 {
			printMarkdown(renderer.PortfolioMarkdown(s, rentbook.NewPortfolioFinancials(s.Properties, s.Payments, on)))
			return nil
		}
		var b strings.Builder
		for _, ref := range f.Args() {
			p, err := s.FindProperty(ref)
			if err != nil {
				return err
			}
			b.WriteString(renderer.PropertyMarkdown(p, rentbook.CalculatePropertyFinancials(p, s.Payments, on), s.Currency))
			b.WriteString("\n")
		}
		printMarkdown(b.String())
		return nil
	})
}
