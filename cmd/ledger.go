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

// ledgerCmd holds the flags for the 'ledger' subcommand.
type ledgerCmd struct {
	date string
}

func (*ledgerCmd) Name() string     { return "ledger" }
func (*ledgerCmd) Synopsis() string { return "display the rent ledger of a tenant" }
func (*ledgerCmd) Usage() string {
	return `rbk ledger [-d <date>] <tenant>

  Displays every monthly installment of the tenant's lease, what was paid
  and its status, then the tenant's payments. See 'rbk topic ledger'.
`
}

func (c *ledgerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the ledger. See 'rbk topic dates' for supported date formats.")
}

func (c *ledgerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one tenant is required.")
		return subcommands.ExitUsageError
	}
	on, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withBook(ctx, func(a *app, s *rentbook.State) error {
		t, err := s.FindTenant(f.Arg(0))
		if err != nil {
			return err
		}
		installments, err := rentbook.GenerateLedger(t, s.Payments, on)
		if err != nil {
			return fmt.Errorf("could not generate the ledger of %s: %w", t.Name, err)
		}
		printMarkdown(renderer.LedgerMarkdown(s, t, installments))
		return nil
	})
}

// moveOutCmd holds the flags for the 'moveout' subcommand.
type moveOutCmd struct {
	date   string
	commit bool
}

func (*moveOutCmd) Name() string     { return "moveout" }
func (*moveOutCmd) Synopsis() string { return "settle the deposit of a tenant moving out" }
func (*moveOutCmd) Usage() string {
	return `rbk moveout [-d <date>] [-commit] <tenant>

  Computes the move-out settlement of the tenant: deposit held, unpaid rent
  and the amount to refund. Nothing is recorded unless -commit is set.
  See 'rbk topic settlement'.
`
}

func (c *moveOutCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Move-out date. See 'rbk topic dates' for supported date formats.")
	f.BoolVar(&c.commit, "commit", false, "Record the move-out and its settlement")
}

func (c *moveOutCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one tenant is required.")
		return subcommands.ExitUsageError
	}
	on, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withBook(ctx, func(a *app, s *rentbook.State) error {
		t, err := s.FindTenant(f.Arg(0))
		if err != nil {
			return err
		}
		if !c.commit {
			m, err := rentbook.CalculateMoveOutFinancials(t, s.Payments, on)
			if err != nil {
				return err
			}
			printMarkdown(renderer.MoveOutMarkdown(s, t, m, on, false))
			return nil
		}

		var m rentbook.MoveOutFinancials
		n, err := a.update(ctx, func(s *rentbook.State) (n *rentbook.State, err error) {
			n, m, err = s.MoveOut(t.ID, on)
			return n, err
		})
		if err != nil {
			return err
		}
		a.log.WithField("tenant", t.Name).Infof("moved out on %s", on)
		printMarkdown(renderer.MoveOutMarkdown(n, t, m, on, true))
		return nil
	})
}
