package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/rentbook"
	"github.com/etnz/rentbook/date"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// outline is what a rendered markdown document is made of.
type outline struct {
	headings []string
	tables   int
	rows     []int // body rows per table
}

// parse reads a markdown document the way a GFM viewer does.
func parse(t *testing.T, doc string) outline {
	t.Helper()
	src := []byte(doc)
	root := goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser().Parse(text.NewReader(src))

	var o outline
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			o.headings = append(o.headings, string(n.Text(src)))
		case east.KindTable:
			o.tables++
			o.rows = append(o.rows, 0)
		case east.KindTableRow:
			o.rows[len(o.rows)-1]++
		}
		return ast.WalkContinue, nil
	})
	return o
}

// book returns a state with a rental on Maple Street and a tenant, Alice,
// who paid January and half of February 2024.
func book() *rentbook.State {
	return &rentbook.State{
		Version:  rentbook.SnapshotVersion,
		Currency: "USD",
		Properties: []rentbook.Property{
			{ID: "p1", Name: "Maple Street", Type: rentbook.Residential, PurchasePrice: rentbook.M(200000), PurchaseDate: date.New(2023, 1, 1), DownPayment: rentbook.M(40000)},
		},
		Tenants: []rentbook.Tenant{
			{ID: "t1", Name: "Alice", Email: "alice@example.com", PropertyID: "p1", RentAmount: rentbook.M(1000), RentDueDay: 1, LeaseStart: date.New(2024, 1, 1), LeaseEnd: date.New(2024, 4, 30), Status: rentbook.Active},
		},
		Payments: []rentbook.Payment{
			{ID: "d1", PropertyID: "p1", TenantID: "t1", Amount: rentbook.M(2000), Date: date.New(2024, 1, 1), Type: rentbook.Deposit, MonthKey: "2024-01"},
			{ID: "r1", PropertyID: "p1", TenantID: "t1", Amount: rentbook.M(1000), Date: date.New(2024, 1, 2), Type: rentbook.Rent, MonthKey: "2024-01", Method: rentbook.MethodBank},
			{ID: "r2", PropertyID: "p1", TenantID: "t1", Amount: rentbook.M(500), Date: date.New(2024, 2, 3), Type: rentbook.Rent, MonthKey: "2024-02"},
			{ID: "e1", PropertyID: "p1", Amount: rentbook.M(150), Date: date.New(2024, 2, 10), Type: rentbook.Expense, Note: "Repairs: sink", MonthKey: "2024-02"},
		},
	}
}

var now = date.New(2024, 3, 15)

func TestDashboardMarkdown(t *testing.T) {
	s := book()
	d, err := rentbook.NewDashboard(s.Properties, s.Tenants, s.Payments, now)
	if err != nil {
		t.Fatalf("NewDashboard() unexpected error: %v", err)
	}
	chart := rentbook.ChartSeries(s.Payments, now, 3)
	leases := rentbook.LeaseWatchlist(s.Tenants, now, rentbook.DefaultWatchlistDays)

	got := DashboardMarkdown(s, d, chart, leases)
	o := parse(t, got)

	wantHeadings := []string{"Dashboard on 2024-03-15", "Cash Flow", "Leases Ending Soon"}
	if strings.Join(o.headings, "|") != strings.Join(wantHeadings, "|") {
		t.Errorf("DashboardMarkdown() headings = %q, want %q", o.headings, wantHeadings)
	}
	if o.tables != 3 {
		t.Errorf("DashboardMarkdown() has %d tables, want 3", o.tables)
	}
	if !strings.Contains(got, "Jan 2024") || !strings.Contains(got, "Mar 2024") {
		t.Errorf("DashboardMarkdown() chart misses a month:\n%s", got)
	}
}

func TestDashboardMarkdown_NothingToWatch(t *testing.T) {
	s := book()
	d, err := rentbook.NewDashboard(s.Properties, s.Tenants, s.Payments, now)
	if err != nil {
		t.Fatalf("NewDashboard() unexpected error: %v", err)
	}
	o := parse(t, DashboardMarkdown(s, d, nil, nil))
	if len(o.headings) != 1 || o.tables != 1 {
		t.Errorf("DashboardMarkdown() = %d headings, %d tables, want 1 and 1", len(o.headings), o.tables)
	}
}

func TestLedgerMarkdown(t *testing.T) {
	s := book()
	tenant := s.Tenants[0]
	installments, err := rentbook.GenerateLedger(tenant, s.Payments, now)
	if err != nil {
		t.Fatalf("GenerateLedger() unexpected error: %v", err)
	}

	got := LedgerMarkdown(s, tenant, installments)
	o := parse(t, got)

	if o.tables != 1 {
		t.Fatalf("LedgerMarkdown() has %d tables, want 1", o.tables)
	}
	// January to April, plus the totals row.
	if o.rows[0] != len(installments)+1 {
		t.Errorf("LedgerMarkdown() table has %d rows, want %d", o.rows[0], len(installments)+1)
	}
	for _, want := range []string{"Rent Ledger of Alice", "OVERDUE", "partial", "$2,500.00", "Payments"} {
		if !strings.Contains(got, want) {
			t.Errorf("LedgerMarkdown() does not contain %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Repairs") {
		t.Errorf("LedgerMarkdown() lists a payment of another tenant:\n%s", got)
	}
}

func TestMoveOutMarkdown(t *testing.T) {
	s := book()
	tenant := s.Tenants[0]
	testCases := []struct {
		name      string
		m         rentbook.MoveOutFinancials
		committed bool
		want      string
	}{
		{
			name: "refund",
			m:    rentbook.MoveOutFinancials{DepositHeld: rentbook.M(2000), UnpaidRent: rentbook.M(1500), NetRefundable: rentbook.M(500)},
			want: "Refund $500.00 to Alice.",
		},
		{
			name: "owed",
			m:    rentbook.MoveOutFinancials{DepositHeld: rentbook.M(500), UnpaidRent: rentbook.M(800), NetRefundable: rentbook.M(-300)},
			want: "Alice still owes $300.00.",
		},
		{
			name:      "even",
			m:         rentbook.MoveOutFinancials{},
			committed: true,
			want:      "Nothing to refund, nothing owed.",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := MoveOutMarkdown(s, tenant, tc.m, now, tc.committed)
			if !strings.Contains(got, tc.want) {
				t.Errorf("MoveOutMarkdown() does not contain %q:\n%s", tc.want, got)
			}
			if projection := strings.Contains(got, "Projection only"); projection == tc.committed {
				t.Errorf("MoveOutMarkdown(committed=%v) projection notice = %v", tc.committed, projection)
			}
		})
	}
}

func TestPropertyMarkdown(t *testing.T) {
	s := book()
	p := s.Properties[0]
	f := rentbook.CalculatePropertyFinancials(p, s.Payments, now)

	got := PropertyMarkdown(p, f, s.Currency)
	o := parse(t, got)
	wantHeadings := []string{"Maple Street", "Equity", "Performance"}
	if strings.Join(o.headings, "|") != strings.Join(wantHeadings, "|") {
		t.Errorf("PropertyMarkdown() headings = %q, want %q", o.headings, wantHeadings)
	}
	for _, want := range []string{"Cap Rate", "$160,000.00", "$3,350.00"} {
		if !strings.Contains(got, want) {
			t.Errorf("PropertyMarkdown() does not contain %q:\n%s", want, got)
		}
	}

	p.Type = rentbook.PersonalUse
	got = PropertyMarkdown(p, rentbook.CalculatePropertyFinancials(p, s.Payments, now), s.Currency)
	if strings.Contains(got, "Cap Rate") || !strings.Contains(got, "Appreciation") {
		t.Errorf("PropertyMarkdown() of a personal-use property:\n%s", got)
	}
}

func TestPortfolioMarkdown(t *testing.T) {
	s := book()
	got := PortfolioMarkdown(s, rentbook.NewPortfolioFinancials(s.Properties, s.Payments, now))
	o := parse(t, got)
	if o.tables != 1 || o.rows[0] != 2 {
		t.Errorf("PortfolioMarkdown() = %d tables %v rows, want one table of 2 rows", o.tables, o.rows)
	}

	empty := rentbook.NewState()
	if got := PortfolioMarkdown(empty, rentbook.NewPortfolioFinancials(nil, nil, now)); !strings.Contains(got, "No property") {
		t.Errorf("PortfolioMarkdown() of an empty book = %q", got)
	}
}

func TestIncomeStatementMarkdown(t *testing.T) {
	s := book()
	got := IncomeStatementMarkdown(rentbook.NewIncomeStatement(s.Payments, 2024), s.Currency)
	o := parse(t, got)
	if o.tables != 2 {
		t.Fatalf("IncomeStatementMarkdown() has %d tables, want 2", o.tables)
	}
	if o.rows[1] != 2 {
		t.Errorf("IncomeStatementMarkdown() expense table has %d rows, want 2", o.rows[1])
	}
	for _, want := range []string{"Profit & Loss 2024", "Repairs", "$3,500.00", "Net Income: $3,350.00"} {
		if !strings.Contains(got, want) {
			t.Errorf("IncomeStatementMarkdown() does not contain %q:\n%s", want, got)
		}
	}
}

func TestSummaryMarkdown(t *testing.T) {
	s := book()
	got := SummaryMarkdown(rentbook.NewPeriodSummaries(s.Payments), s.Currency, 1)
	o := parse(t, got)
	if o.tables != 2 {
		t.Fatalf("SummaryMarkdown() has %d tables, want 2", o.tables)
	}
	if o.rows[0] != 1 || o.rows[1] != 1 {
		t.Errorf("SummaryMarkdown() rows = %v, want [1 1]", o.rows)
	}
	if !strings.Contains(got, "2024-02") || strings.Contains(got, "2024-01") {
		t.Errorf("SummaryMarkdown() should only show the latest month:\n%s", got)
	}

	if got := SummaryMarkdown(rentbook.PeriodSummaries{}, "USD", 0); !strings.Contains(got, "No payment") {
		t.Errorf("SummaryMarkdown() of nothing = %q", got)
	}
}

func TestLeasesMarkdown(t *testing.T) {
	s := book()
	leases := rentbook.LeaseWatchlist(s.Tenants, now, 60)
	got := LeasesMarkdown(s, leases, 60)
	if !strings.Contains(got, "2024-04-30") || !strings.Contains(got, "46") {
		t.Errorf("LeasesMarkdown() = %s", got)
	}
	if got := LeasesMarkdown(s, nil, 30); !strings.Contains(got, "next 30 days") {
		t.Errorf("LeasesMarkdown() without lease = %q", got)
	}
}

func TestPayment(t *testing.T) {
	testCases := []struct {
		p    rentbook.Payment
		want string
	}{
		{
			p:    rentbook.Payment{Type: rentbook.Rent, Amount: rentbook.M(1000), Date: date.New(2024, 1, 2), MonthKey: "2024-01", Method: rentbook.MethodCash},
			want: "2024-01-02: received rent of $1,000.00 for 2024-01 (Cash)",
		},
		{
			p:    rentbook.Payment{Type: rentbook.Expense, Amount: rentbook.M(99.5), Date: date.New(2024, 2, 1), Note: "Utilities: water"},
			want: "2024-02-01: spent $99.50 on Utilities, Utilities: water",
		},
		{
			p:    rentbook.Payment{Type: rentbook.LateFee, Amount: rentbook.M(25), Date: date.New(2024, 2, 6)},
			want: "2024-02-06: received late fee of $25.00",
		},
		{
			p:    rentbook.Payment{Type: rentbook.Equity, Amount: rentbook.M(5000), Date: date.New(2024, 3, 1)},
			want: "2024-03-01: paid $5,000.00 of principal",
		},
	}
	for _, tc := range testCases {
		if got := Payment(tc.p, "USD"); got != tc.want {
			t.Errorf("Payment() = %q, want %q", got, tc.want)
		}
	}
}

func TestNewReminder(t *testing.T) {
	s := book()
	r, err := NewReminder(s, now, 60)
	if err != nil {
		t.Fatalf("NewReminder() unexpected error: %v", err)
	}
	// February is partial, March is overdue, April is not due yet.
	if len(r.Overdue) != 2 {
		t.Fatalf("NewReminder() overdue = %+v, want 2 installments", r.Overdue)
	}
	if r.Overdue[0].Month != "2024-02" || r.Overdue[1].Month != "2024-03" {
		t.Errorf("NewReminder() overdue months = %s, %s, want 2024-02, 2024-03", r.Overdue[0].Month, r.Overdue[1].Month)
	}
	if !r.TotalOverdue.Equal(rentbook.M(1500)) {
		t.Errorf("NewReminder() total = %s, want 1500.00", r.TotalOverdue)
	}
	if len(r.Leases) != 1 || r.Leases[0].DaysLeft != 46 {
		t.Errorf("NewReminder() leases = %+v, want Alice with 46 days left", r.Leases)
	}
	if r.Overdue[0].Property != "Maple Street" {
		t.Errorf("NewReminder() property = %q, want the property name", r.Overdue[0].Property)
	}
}

func TestRenderReminder(t *testing.T) {
	s := book()
	r, err := NewReminder(s, now, 60)
	if err != nil {
		t.Fatalf("NewReminder() unexpected error: %v", err)
	}
	got := RenderReminder(r)
	if strings.HasPrefix(got, "error") {
		t.Fatalf("RenderReminder() failed: %s", got)
	}
	o := parse(t, got)
	wantHeadings := []string{"Rent Reminder for 2024-03-15", "Outstanding Rent", "Leases Ending Soon"}
	if strings.Join(o.headings, "|") != strings.Join(wantHeadings, "|") {
		t.Errorf("RenderReminder() headings = %q, want %q\n%s", o.headings, wantHeadings, got)
	}
	// two installments plus the total, and one lease.
	if len(o.rows) != 2 || o.rows[0] != 3 || o.rows[1] != 1 {
		t.Errorf("RenderReminder() table rows = %v, want [3 1]\n%s", o.rows, got)
	}
	if !strings.Contains(got, "$1,500.00") {
		t.Errorf("RenderReminder() does not show the total:\n%s", got)
	}
}

func TestRenderReminder_Empty(t *testing.T) {
	r := &Reminder{Date: now, Currency: "USD"}
	got := RenderReminder(r)
	if !strings.Contains(got, "Nothing to report") {
		t.Errorf("RenderReminder() of an empty digest = %q", got)
	}
	if o := parse(t, got); o.tables != 0 {
		t.Errorf("RenderReminder() of an empty digest has %d tables", o.tables)
	}
}
