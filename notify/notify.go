// Package notify sends the rent reminder digest, once or on a schedule.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/rentbook/date"
	"github.com/etnz/rentbook/renderer"
	"github.com/etnz/rentbook/store"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Notifier computes the reminder digest of a book and mails it.
type Notifier struct {
	store       store.Store
	mailer      Mailer
	to          []string
	horizonDays int
	log         *logrus.Logger

	// Today returns the day the digest is computed for.
	Today func() date.Date
}

// New returns a notifier mailing the digest of the book in st to the recipients.
func New(st store.Store, m Mailer, to []string, horizonDays int, log *logrus.Logger) *Notifier {
	return &Notifier{
		store:       st,
		mailer:      m,
		to:          to,
		horizonDays: horizonDays,
		log:         log,
		Today:       date.Today,
	}
}

// Remind computes the digest and mails it. Nothing is sent when there is
// nothing to chase, unless always is set.
func (n *Notifier) Remind(ctx context.Context, always bool) (*renderer.Reminder, error) {
	if len(n.to) == 0 {
		return nil, errors.New("no recipient for the reminder")
	}
	s, err := n.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	r, err := renderer.NewReminder(s, n.Today(), n.horizonDays)
	if err != nil {
		return nil, fmt.Errorf("could not compute reminder: %w", err)
	}
	log := n.log.WithFields(logrus.Fields{
		"date":    r.Date.String(),
		"overdue": len(r.Overdue),
		"leases":  len(r.Leases),
	})
	if r.IsEmpty() && !always {
		log.Info("nothing to remind")
		return r, nil
	}
	if err := n.mailer.Send(n.to, Subject(r), renderer.RenderReminder(r)); err != nil {
		return nil, err
	}
	log.Infof("reminder sent to %d recipients", len(n.to))
	return r, nil
}

// Subject returns the email subject of a digest.
func Subject(r *renderer.Reminder) string {
	if r.IsEmpty() {
		return fmt.Sprintf("Rent reminder %s: all clear", r.Date)
	}
	return fmt.Sprintf("Rent reminder %s: %d unpaid, %d leases ending", r.Date, len(r.Overdue), len(r.Leases))
}

// Watch sends the reminder on the cron schedule until ctx is done.
//
// A failed run is logged and does not stop the schedule.
func (n *Notifier) Watch(ctx context.Context, schedule string) error {
	c := cron.New(cron.WithLogger(cron.PrintfLogger(n.log)))
	_, err := c.AddFunc(schedule, func() {
		if _, err := n.Remind(ctx, false); err != nil {
			n.log.Errorf("reminder failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}
	n.log.Infof("watching, reminders on %q", schedule)
	c.Start()
	<-ctx.Done()
	// Wait for a running reminder to finish.
	<-c.Stop().Done()
	n.log.Info("stopped watching")
	return nil
}
