package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/rentbook"
	"github.com/etnz/rentbook/date"
	"github.com/etnz/rentbook/receipt"
	"github.com/etnz/rentbook/sheet"
	"github.com/google/subcommands"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	dryRun bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import payments from a CSV file" }
func (*importCmd) Usage() string {
	return `rbk import [-n] <file.csv>

  Imports payments from a CSV file with the columns Date, Amount, Property Name,
  Category and Note. Rows that cannot be imported are reported and skipped.
  See 'rbk topic import'.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.dryRun, "n", false, "Dry run: report what would be imported without saving")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one CSV file is required.")
		return subcommands.ExitUsageError
	}
	file := f.Arg(0)
	return withBook(ctx, func(a *app, _ *rentbook.State) error {
		r, err := os.Open(file)
		if err != nil {
			return err
		}
		defer r.Close()

		var res *rentbook.ImportResult
		save := func(s *rentbook.State) (*rentbook.State, error) {
			if res, err = rentbook.ImportCSV(r, s); err != nil {
				return nil, fmt.Errorf("could not import %q: %w", file, err)
			}
			return s.AddPayments(res.Payments...)
		}
		if c.dryRun {
			s, err := a.load(ctx)
			if err != nil {
				return err
			}
			if _, err := save(s); err != nil {
				return err
			}
		} else if _, err := a.update(ctx, save); err != nil {
			return err
		}

		for _, skip := range res.Skipped {
			a.log.WithField("line", skip.Line).Warn(skip.Reason)
		}
		verb := "Imported"
		if c.dryRun {
			verb = "Would import"
		}
		fmt.Fprintf(stdout, "%s %d payments, skipped %d rows.\n", verb, len(res.Payments), len(res.Skipped))
		return nil
	})
}

// backupCmd holds the flags for the 'backup' subcommand.
type backupCmd struct {
	output string
}

func (*backupCmd) Name() string     { return "backup" }
func (*backupCmd) Synopsis() string { return "write the whole book as a JSON snapshot" }
func (*backupCmd) Usage() string {
	return `rbk backup [-o <file.json>]

  Writes the book as a JSON snapshot, on stdout by default. See 'rbk topic snapshot'.
`
}

func (c *backupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file")
}

func (c *backupCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(ctx, func(a *app, s *rentbook.State) error {
		return writeTo(c.output, func(w io.Writer) error { return rentbook.EncodeState(w, s) })
	})
}

// restoreCmd holds the flags for the 'restore' subcommand.
type restoreCmd struct {
	force bool
}

func (*restoreCmd) Name() string     { return "restore" }
func (*restoreCmd) Synopsis() string { return "replace the book with a JSON snapshot" }
func (*restoreCmd) Usage() string {
	return `rbk restore [-f] <file.json>

  Replaces the whole book with the snapshot. A book that is not empty is only
  replaced with -f.
`
}

func (c *restoreCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "f", false, "Replace a book that is not empty")
}

func (c *restoreCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one snapshot file is required.")
		return subcommands.ExitUsageError
	}
	file := f.Arg(0)
	return withBook(ctx, func(a *app, _ *rentbook.State) error {
		r, err := os.Open(file)
		if err != nil {
			return err
		}
		defer r.Close()
		snapshot, skipped, err := rentbook.DecodeState(r)
		if err != nil {
			return fmt.Errorf("could not read snapshot %q: %w", file, err)
		}
		for _, rec := range skipped {
			a.log.WithField("record", fmt.Sprintf("%s[%d]", rec.List, rec.Index)).Warn(rec.Reason)
		}
		if err := snapshot.Validate(); err != nil {
			return fmt.Errorf("invalid snapshot %q: %w", file, err)
		}

		_, err = a.update(ctx, func(s *rentbook.State) (*rentbook.State, error) {
			if !c.force && (len(s.Properties) > 0 || len(s.Tenants) > 0 || len(s.Payments) > 0) {
				return nil, errors.New("the book is not empty, use -f to replace it")
			}
			return snapshot, nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Restored %d properties, %d tenants and %d payments, skipped %d records.\n", len(snapshot.Properties), len(snapshot.Tenants), len(snapshot.Payments), len(skipped))
		return nil
	})
}

// receiptCmd holds the flags for the 'receipt' subcommand.
type receiptCmd struct {
	output string
	issuer string
	tenant string
	month  string
}

func (*receiptCmd) Name() string     { return "receipt" }
func (*receiptCmd) Synopsis() string { return "print the PDF receipt of a rent payment" }
func (*receiptCmd) Usage() string {
	return `rbk receipt -o <file.pdf> [-issuer <name>] (<payment-id> | -t <tenant> -month <YYYY-MM>)

  Prints the receipt of a rent payment as a PDF. The payment is given by its
  ID, see 'rbk tx -ids', or by its tenant and month, the latest one winning.
`
}

func (c *receiptCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output PDF file")
	f.StringVar(&c.issuer, "issuer", "", "Name of the landlord signing the receipt")
	f.StringVar(&c.tenant, "t", "", "Tenant name or ID")
	f.StringVar(&c.month, "month", "", "Month of the rent (YYYY-MM), the current one by default")
}

func (c *receiptCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.output == "" {
		fmt.Fprintln(os.Stderr, "Error: -o is required.")
		return subcommands.ExitUsageError
	}
	if (f.NArg() == 1) == (c.tenant != "") {
		fmt.Fprintln(os.Stderr, "Error: give either a payment ID or -t.")
		return subcommands.ExitUsageError
	}
	return withBook(ctx, func(a *app, s *rentbook.State) error {
		id := f.Arg(0)
		if c.tenant != "" {
			var err error
			if id, err = rentPaymentOf(s, c.tenant, c.month); err != nil {
				return err
			}
		}
		r, err := receipt.New(s, id)
		if err != nil {
			return err
		}
		r.Issuer = c.issuer
		if err := writeTo(c.output, r.Write); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote receipt %s to %s\n", r.Number, c.output)
		return nil
	})
}

// rentPaymentOf returns the ID of the latest rent payment of a tenant for a month.
func rentPaymentOf(s *rentbook.State, tenant, month string) (string, error) {
	t, err := s.FindTenant(tenant)
	if err != nil {
		return "", err
	}
	if month == "" {
		month = date.MonthKey(date.Today())
	}
	var id string
	var latest date.Date
	for _, p := range s.Payments {
		key, _ := p.Month()
		if p.TenantID != t.ID || p.Type != rentbook.Rent || key != month {
			continue
		}
		if id == "" || !p.Date.Before(latest) {
			id, latest = p.ID, p.Date
		}
	}
	if id == "" {
		return "", fmt.Errorf("no rent from %s for %s: %w", t.Name, month, rentbook.ErrNotFound)
	}
	return id, nil
}

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	output string
	year   int
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the summaries and a P&L to a spreadsheet" }
func (*exportCmd) Usage() string {
	return `rbk export -o <file.xlsx> [-y <year>]

  Writes an Excel workbook with the Monthly and Yearly summaries and the
  profit and loss statement of the year.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output XLSX file")
	f.IntVar(&c.year, "y", date.Today().Year(), "Year of the profit and loss statement")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.output == "" {
		fmt.Fprintln(os.Stderr, "Error: -o is required.")
		return subcommands.ExitUsageError
	}
	return withBook(ctx, func(a *app, s *rentbook.State) error {
		err := writeTo(c.output, func(w io.Writer) error { return sheet.Export(w, s.Payments, c.year) })
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Exported to %s\n", c.output)
		return nil
	})
}

// writeTo calls write on the file name, or on stdout when name is empty.
func writeTo(name string, write func(io.Writer) error) error {
	if name == "" {
		return write(stdout)
	}
	w, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(w); err != nil {
		w.Close()
		return fmt.Errorf("could not write %q: %w", name, err)
	}
	return w.Close()
}
