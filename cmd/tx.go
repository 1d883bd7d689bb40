package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/etnz/rentbook"
	"github.com/etnz/rentbook/date"
	"github.com/etnz/rentbook/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	start    string
	date     string
	property string
	tenant   string
	head     int
	tail     int
	ids      bool
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the payments of the book" }
func (*txCmd) Usage() string {
	return `rbk tx [-s <start_date>] [-d <end_date>] [-p <property>] [-t <tenant>] [-head <n>] [-tail <n>] [-ids]

  Lists payments in chronological order, with options for filtering and limiting the output.
  Use -ids to show the payment IDs expected by 'rbk receipt'.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.start, "s", "", "The start date of the range.")
	f.StringVar(&p.date, "d", "", "The end date of the range.")
	f.StringVar(&p.property, "p", "", "Only the payments of this property.")
	f.StringVar(&p.tenant, "t", "", "Only the payments of this tenant.")
	f.IntVar(&p.head, "head", 0, "Show only the first N payments.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N payments.")
	f.BoolVar(&p.ids, "ids", false, "Show the payment IDs.")
}

func (p *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.head > 0 && p.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}
	var from, to date.Date
	var err error
	if p.start != "" {
		if from, err = parseDay(p.start); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if p.date != "" {
		if to, err = parseDay(p.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	return withBook(ctx, func(a *app, s *rentbook.State) error {
		var propertyID, tenantID string
		if p.property != "" {
			pr, err := s.FindProperty(p.property)
			if err != nil {
				return err
			}
			propertyID = pr.ID
		}
		if p.tenant != "" {
			t, err := s.FindTenant(p.tenant)
			if err != nil {
				return err
			}
			tenantID = t.ID
		}

		payments := filterPayments(s.Payments, date.NewRange(from, to), propertyID, tenantID)
		if p.head > 0 && len(payments) > p.head {
			payments = payments[:p.head]
		}
		if p.tail > 0 && len(payments) > p.tail {
			payments = payments[len(payments)-p.tail:]
		}

		var b strings.Builder
		b.WriteString("# Payments\n\n")
		if len(payments) == 0 {
			b.WriteString("No payment.\n")
		}
		for _, pay := range payments {
			if p.ids {
				fmt.Fprintf(&b, "* `%s` %s\n", pay.ID, renderer.Payment(pay, s.Currency))
				continue
			}
			fmt.Fprintf(&b, "* %s\n", renderer.Payment(pay, s.Currency))
		}
		printMarkdown(b.String())
		return nil
	})
}

// filterPayments returns the matching payments sorted by date. Empty IDs match everything.
func filterPayments(payments []rentbook.Payment, r date.Range, propertyID, tenantID string) []rentbook.Payment {
	var out []rentbook.Payment
	for _, p := range payments {
		switch {
		case !r.Contains(p.Date):
		case propertyID != "" && p.PropertyID != propertyID:
		case tenantID != "" && p.TenantID != tenantID:
		default:
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b rentbook.Payment) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		}
		return 0
	})
	return out
}
