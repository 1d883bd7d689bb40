// Package cmd implements the rbk CLI application to keep the books of rental properties.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/rentbook"
	"github.com/etnz/rentbook/config"
	"github.com/etnz/rentbook/date"
	"github.com/etnz/rentbook/store"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&dashboardCmd{}, "reports")
	c.Register(&chartCmd{}, "reports")
	c.Register(&leasesCmd{}, "reports")
	c.Register(&propertyCmd{}, "reports")
	c.Register(&pnlCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
	c.Register(&ledgerCmd{}, "reports")
	c.Register(&txCmd{}, "reports")

	c.Register(&addPropertyCmd{}, "records")
	c.Register(&addTenantCmd{}, "records")
	c.Register(&payCmd{}, "records")
	c.Register(&moveOutCmd{}, "records")
	c.Register(&importCmd{}, "records")

	c.Register(&backupCmd{}, "files")
	c.Register(&restoreCmd{}, "files")
	c.Register(&receiptCmd{}, "files")
	c.Register(&exportCmd{}, "files")

	c.Register(&remindCmd{}, "reminders")
	c.Register(&watchCmd{}, "reminders")

	c.Register(&AssistCmd{}, "help")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", config.DefaultFile, "Path to the configuration file")
var storeLocation = flag.String("store", "", "Book location, a JSON file or a sqlite:/postgres:// DSN. Overrides the configuration.")
var rawMarkdown = flag.Bool("markdown", false, "Print reports as raw markdown")
var Verbose = flag.Bool("v", false, "Verbose output")

// stdout receives the reports.
var stdout io.Writer = os.Stdout

// app is what a command needs: its configuration, logger and book.
type app struct {
	cfg   *config.Config
	log   *logrus.Logger
	store store.Store
}

// openApp loads the configuration, sets up the logger and opens the store.
func openApp() (*app, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *storeLocation != "" {
		if config.IsDSN(*storeLocation) {
			cfg.Store = config.StoreConfig{DSN: *storeLocation}
		} else {
			cfg.Store = config.StoreConfig{Path: *storeLocation}
		}
	}
	log, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg.Store, log)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log, store: st}, nil
}

// newLogger configures the standard logrus logger.
func newLogger(cfg config.LogConfig) (*logrus.Logger, error) {
	log := logrus.StandardLogger()
	log.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	if *Verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return log, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warnf("could not close the store: %v", err)
	}
}

// load returns the book. An empty book takes the configured currency.
func (a *app) load(ctx context.Context) (*rentbook.State, error) {
	s, err := a.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(s.Properties) == 0 && len(s.Tenants) == 0 && len(s.Payments) == 0 {
		s.Currency = a.cfg.Currency
	}
	return s, nil
}

// update applies f to the book and saves the result.
func (a *app) update(ctx context.Context, f func(*rentbook.State) (*rentbook.State, error)) (*rentbook.State, error) {
	s, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	n, err := f(s)
	if err != nil {
		return nil, err
	}
	if err := a.store.Save(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// withBook opens the app, loads the book and calls run. Errors are printed
// on stderr.
func withBook(ctx context.Context, run func(a *app, s *rentbook.State) error) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	s, err := a.load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := run(a, s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// parseDay parses a date flag, today when empty. See 'rbk topic dates'.
func parseDay(s string) (date.Date, error) {
	return date.ParseRelative(s, date.Today())
}

// printMarkdown renders md for the terminal.
func printMarkdown(md string) {
	if *rawMarkdown {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		logrus.Debugf("could not render markdown: %v", err)
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
