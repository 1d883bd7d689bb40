package store

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/rentbook"
	"github.com/etnz/rentbook/config"
	"github.com/etnz/rentbook/date"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// sample returns a small book with one property, one tenant and two payments.
func sample(t *testing.T) *rentbook.State {
	t.Helper()
	s := rentbook.NewState()
	s.Currency = "EUR"
	s, p, err := s.AddProperty(rentbook.Property{
		ID:                  "p1",
		Name:                "Maple Street",
		Address:             "12 Maple Street",
		Type:                rentbook.Residential,
		PurchasePrice:       rentbook.M(250000),
		PurchaseDate:        date.New(2020, 3, 15),
		DownPayment:         rentbook.M(50000),
		MonthlyAmortization: rentbook.M(1200.5),
	})
	require.NoError(t, err)
	s, tn, err := s.AddTenant(rentbook.Tenant{
		ID:         "t1",
		Name:       "Alice",
		Email:      "alice@example.com",
		PropertyID: p.ID,
		RentAmount: rentbook.M(1000),
		RentDueDay: 5,
		LeaseStart: date.New(2024, 1, 1),
		LeaseEnd:   date.New(2024, 12, 31),
		Status:     rentbook.Active,
	})
	require.NoError(t, err)
	s, err = s.AddPayments(
		rentbook.Payment{ID: "r1", PropertyID: p.ID, TenantID: tn.ID, Amount: rentbook.M(1000), Date: date.New(2024, 1, 3), Type: rentbook.Rent, Method: rentbook.MethodBank},
		rentbook.Payment{ID: "e1", PropertyID: p.ID, Amount: rentbook.M(120.25), Date: date.New(2024, 2, 10), Type: rentbook.Expense, Note: "Repairs: sink", ExpenseCategory: "Repairs"},
	)
	require.NoError(t, err)
	return s
}

func assertSameBook(t *testing.T, want, got *rentbook.State) {
	t.Helper()
	assert.Equal(t, want.Currency, got.Currency)
	require.Len(t, got.Properties, len(want.Properties))
	require.Len(t, got.Tenants, len(want.Tenants))
	require.Len(t, got.Payments, len(want.Payments))
	for i := range want.Properties {
		w, g := want.Properties[i], got.Properties[i]
		assert.Equal(t, w.ID, g.ID)
		assert.Equal(t, w.Name, g.Name)
		assert.Equal(t, w.PurchaseDate, g.PurchaseDate)
		assert.True(t, w.PurchasePrice.Equal(g.PurchasePrice), "purchase price %s != %s", w.PurchasePrice, g.PurchasePrice)
		assert.True(t, w.MonthlyAmortization.Equal(g.MonthlyAmortization))
	}
	for i := range want.Tenants {
		w, g := want.Tenants[i], got.Tenants[i]
		assert.Equal(t, w.ID, g.ID)
		assert.Equal(t, w.LeaseStart, g.LeaseStart)
		assert.Equal(t, w.LeaseEnd, g.LeaseEnd)
		assert.Equal(t, w.Status, g.Status)
		assert.True(t, w.RentAmount.Equal(g.RentAmount))
	}
	for i := range want.Payments {
		w, g := want.Payments[i], got.Payments[i]
		assert.Equal(t, w.ID, g.ID)
		assert.Equal(t, w.Date, g.Date)
		assert.Equal(t, w.Type, g.Type)
		assert.Equal(t, w.MonthKey, g.MonthKey)
		assert.Equal(t, w.ExpenseCategory, g.ExpenseCategory)
		assert.True(t, w.Amount.Equal(g.Amount), "amount %s != %s", w.Amount, g.Amount)
	}
}

func TestFile_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "book.json")
	st := NewFile(path, quietLogger())

	want := sample(t)
	require.NoError(t, st.Save(ctx, want))

	got, err := st.Load(ctx)
	require.NoError(t, err)
	assertSameBook(t, want, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestFile_MissingFile(t *testing.T) {
	st := NewFile(filepath.Join(t.TempDir(), "nope.json"), quietLogger())
	got, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Properties)
	assert.Equal(t, rentbook.DefaultCurrency, got.Currency)
}

func TestFile_Corrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	_, err := NewFile(path, quietLogger()).Load(context.Background())
	assert.Error(t, err)
}

func TestFile_SkipsBadRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	book := `{"version":1,"currency":"USD","payments":[
	  {"id":"a","propertyId":"p1","amount":10,"date":"2024-01-05","type":"Rent"},
	  {"id":"b","propertyId":"p1","amount":20,"date":"not-a-date","type":"Rent"}]}`
	require.NoError(t, os.WriteFile(path, []byte(book), 0644))

	log, hook := logtest.NewNullLogger()
	got, err := NewFile(path, log).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Payments, 1)
	assert.Equal(t, "a", got.Payments[0].ID)

	var warnings int
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
			assert.Equal(t, "payments[1]", e.Data["record"])
		}
	}
	assert.Equal(t, 1, warnings)
}

func TestSQL_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dsn := "sqlite:" + filepath.Join(t.TempDir(), "book.db")
	st, err := OpenSQL(dsn, quietLogger())
	require.NoError(t, err)
	defer st.Close()

	empty, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.Payments)

	want := sample(t)
	require.NoError(t, st.Save(ctx, want))
	got, err := st.Load(ctx)
	require.NoError(t, err)
	assertSameBook(t, want, got)

	// Saving again replaces, it does not append.
	smaller, err := want.DeletePayment("e1")
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, smaller))
	got, err = st.Load(ctx)
	require.NoError(t, err)
	assertSameBook(t, smaller, got)
}

func TestOpenSQL_UnsupportedDSN(t *testing.T) {
	_, err := OpenSQL("mysql://localhost/rent", quietLogger())
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	st, err := Open(config.StoreConfig{Path: filepath.Join(dir, "book.json")}, quietLogger())
	require.NoError(t, err)
	assert.IsType(t, &File{}, st)

	st, err = Open(config.StoreConfig{DSN: "sqlite:" + filepath.Join(dir, "book.db")}, quietLogger())
	require.NoError(t, err)
	assert.IsType(t, &SQL{}, st)
	require.NoError(t, st.Close())

	_, err = Open(config.StoreConfig{}, quietLogger())
	assert.Error(t, err)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	st := NewFile(filepath.Join(t.TempDir(), "book.json"), quietLogger())
	require.NoError(t, st.Save(ctx, sample(t)))

	_, err := Update(ctx, st, func(s *rentbook.State) (*rentbook.State, error) {
		s, _, err := s.AddPayment(rentbook.Payment{ID: "r2", PropertyID: "p1", TenantID: "t1", Amount: rentbook.M(1000), Date: date.New(2024, 2, 3), Type: rentbook.Rent})
		return s, err
	})
	require.NoError(t, err)

	got, err := st.Load(ctx)
	require.NoError(t, err)
	_, ok := got.Payment("r2")
	assert.True(t, ok)

	// A failing update leaves the book untouched.
	_, err = Update(ctx, st, func(s *rentbook.State) (*rentbook.State, error) {
		return s.DeletePayment("unknown")
	})
	assert.ErrorIs(t, err, rentbook.ErrNotFound)
	got, err = st.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Payments, 3)
}
