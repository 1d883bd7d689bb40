package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/etnz/rentbook"
	"github.com/etnz/rentbook/notify"
	"github.com/google/subcommands"
)

// notifier returns the reminder notifier of the app. The digest is printed
// when print is set or when mailing is not configured.
func (a *app) notifier(print bool) *notify.Notifier {
	to := a.cfg.Remind.To
	var m notify.Mailer
	if print || !a.cfg.CanMail() {
		m = notify.WriterMailer{W: stdout}
		if len(to) == 0 {
			to = []string{"stdout"}
		}
	} else {
		m = notify.NewSMTPMailer(a.cfg.SMTP)
	}
	return notify.New(a.store, m, to, a.cfg.Remind.HorizonDays, a.log)
}

// remindCmd holds the flags for the 'remind' subcommand.
type remindCmd struct {
	print  bool
	always bool
}

func (*remindCmd) Name() string     { return "remind" }
func (*remindCmd) Synopsis() string { return "send the reminder digest once" }
func (*remindCmd) Usage() string {
	return `rbk remind [-print] [-always]

  Sends the digest of overdue rents and leases ending soon to remind.to.
  See 'rbk topic reminders'.
`
}

func (c *remindCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.print, "print", false, "Print the digest instead of mailing it")
	f.BoolVar(&c.always, "always", false, "Send the digest even when there is nothing to report")
}

func (c *remindCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(ctx, func(a *app, _ *rentbook.State) error {
		r, err := a.notifier(c.print).Remind(ctx, c.always)
		if err != nil {
			return fmt.Errorf("could not send the reminder: %w", err)
		}
		if r.IsEmpty() && !c.always {
			fmt.Fprintln(stdout, "Nothing to remind.")
		}
		return nil
	})
}

// watchCmd holds the flags for the 'watch' subcommand.
type watchCmd struct {
	schedule string
	print    bool
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "send the reminder digest on a schedule" }
func (*watchCmd) Usage() string {
	return `rbk watch [-schedule <cron>] [-print]

  Keeps running and sends the reminder digest on the cron schedule, until interrupted.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.schedule, "schedule", "", "Cron schedule, remind.schedule by default")
	f.BoolVar(&c.print, "print", false, "Print the digest instead of mailing it")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return withBook(ctx, func(a *app, _ *rentbook.State) error {
		schedule := c.schedule
		if schedule == "" {
			schedule = a.cfg.Remind.Schedule
		}
		return a.notifier(c.print).Watch(ctx, schedule)
	})
}
