package notify

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/rentbook"
	"github.com/etnz/rentbook/date"
	"github.com/etnz/rentbook/store"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type message struct {
	to      []string
	subject string
	body    string
}

// outbox records the messages instead of sending them.
type outbox struct {
	sent []message
}

func (o *outbox) Send(to []string, subject, body string) error {
	o.sent = append(o.sent, message{to, subject, body})
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newNotifier returns a notifier on a book where Alice owes March 2024.
func newNotifier(t *testing.T, to ...string) (*Notifier, *outbox) {
	t.Helper()
	st := store.NewFile(filepath.Join(t.TempDir(), "book.json"), quietLogger())
	s := rentbook.NewState()
	s, p, err := s.AddProperty(rentbook.Property{Name: "Maple Street", PurchasePrice: rentbook.M(100000), PurchaseDate: date.New(2020, 1, 1)})
	require.NoError(t, err)
	s, tn, err := s.AddTenant(rentbook.Tenant{Name: "Alice", PropertyID: p.ID, RentAmount: rentbook.M(800), RentDueDay: 1, LeaseStart: date.New(2024, 2, 1)})
	require.NoError(t, err)
	s, _, err = s.AddPayment(rentbook.Payment{PropertyID: p.ID, TenantID: tn.ID, Amount: rentbook.M(800), Date: date.New(2024, 2, 1), Type: rentbook.Rent})
	require.NoError(t, err)
	require.NoError(t, st.Save(context.Background(), s))

	box := &outbox{}
	n := New(st, box, to, 60, quietLogger())
	n.Today = func() date.Date { return date.New(2024, 3, 10) }
	return n, box
}

func TestRemind(t *testing.T) {
	n, box := newNotifier(t, "me@example.com")

	r, err := n.Remind(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, r.Overdue, 1)
	assert.Equal(t, "2024-03", r.Overdue[0].Month)

	require.Len(t, box.sent, 1)
	msg := box.sent[0]
	assert.Equal(t, []string{"me@example.com"}, msg.to)
	assert.Equal(t, "Rent reminder 2024-03-10: 1 unpaid, 0 leases ending", msg.subject)
	assert.Contains(t, msg.body, "Alice")
	assert.Contains(t, msg.body, "$800.00")
}

func TestRemind_NothingToChase(t *testing.T) {
	n, box := newNotifier(t, "me@example.com")
	n.Today = func() date.Date { return date.New(2024, 2, 20) }

	r, err := n.Remind(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, r.IsEmpty())
	assert.Empty(t, box.sent)

	_, err = n.Remind(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, box.sent, 1)
	assert.Equal(t, "Rent reminder 2024-02-20: all clear", box.sent[0].subject)
}

func TestRemind_NoRecipient(t *testing.T) {
	n, _ := newNotifier(t)
	_, err := n.Remind(context.Background(), false)
	assert.Error(t, err)
}

func TestWatch(t *testing.T) {
	n, _ := newNotifier(t, "me@example.com")

	err := n.Watch(context.Background(), "every morning")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, n.Watch(ctx, "0 8 * * *"))
}

func TestNewEmail(t *testing.T) {
	body := "# Rent Reminder\n\n| Tenant | Missing |\n|:---|---:|\n| Alice | $800.00 |\n"
	e, err := newEmail("rbk@example.com", []string{"me@example.com"}, "subject", body)
	require.NoError(t, err)

	assert.Equal(t, body, string(e.Text))
	html := string(e.HTML)
	assert.Contains(t, html, "<h1>Rent Reminder</h1>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "Alice</td>")

	raw, err := e.Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(raw), "multipart/alternative")
}

func TestWriterMailer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriterMailer{W: &buf}.Send([]string{"a@example.com"}, "hello", "body"))
	assert.True(t, strings.HasPrefix(buf.String(), "To: [a@example.com]\nSubject: hello\n"))
}
