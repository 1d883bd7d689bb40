package rentbook

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestEncodeState_Stable(t *testing.T) {
	s := book(t)
	s, _, err := s.AddPayment(Payment{ID: "e1", PropertyID: "p1", Amount: M(12.34), Date: day("2024-02-03"), Type: Expense, ExpenseCategory: "Repairs", Note: "door"})
	if err != nil {
		t.Fatalf("AddPayment() returned unexpected error: %v", err)
	}

	var first bytes.Buffer
	if err := EncodeState(&first, s); err != nil {
		t.Fatalf("EncodeState() returned unexpected error: %v", err)
	}
	decoded, skipped, err := DecodeState(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatalf("DecodeState() returned unexpected error: %v", err)
	}
	if len(skipped) != 0 {
		t.Errorf("DecodeState() skipped %v", skipped)
	}
	var second bytes.Buffer
	if err := EncodeState(&second, decoded); err != nil {
		t.Fatalf("EncodeState() returned unexpected error: %v", err)
	}
	if first.String() != second.String() {
		t.Errorf("encode/decode sequence is not stable got \n%s\n want \n%s\n", second.String(), first.String())
	}

	if len(decoded.Payments) != 3 || decoded.Payments[2].ExpenseCategory != "Repairs" || !decoded.Payments[2].Amount.Equal(M(12.34)) {
		t.Errorf("decoded payments = %+v", decoded.Payments)
	}
	if decoded.Tenants[0].LeaseStart != day("2024-01-01") || !decoded.Tenants[0].LeaseEnd.IsZero() {
		t.Errorf("decoded tenant = %+v", decoded.Tenants[0])
	}
}

func TestEncodeState_Empty(t *testing.T) {
	var b bytes.Buffer
	if err := EncodeState(&b, NewState()); err != nil {
		t.Fatalf("EncodeState() returned unexpected error: %v", err)
	}
	want := `{
  "version": 1,
  "currency": "USD",
  "properties": [],
  "tenants": [],
  "payments": []
}
`
	if b.String() != want {
		t.Errorf("EncodeState(empty) = \n%s\n want \n%s", b.String(), want)
	}
}

func TestDecodeState(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr error
		check   func(t *testing.T, s *State)
	}{
		{
			name:  "empty input is an empty book",
			input: " \n",
			check: func(t *testing.T, s *State) {
				if s.Currency != DefaultCurrency || len(s.Payments) != 0 {
					t.Errorf("DecodeState(empty) = %+v", s)
				}
			},
		},
		{
			name:  "legacy snapshot gets month keys and currency",
			input: `{"properties":[{"id":"p1","name":"A","type":"Residential","purchasePrice":1000}],"tenants":[],"payments":[{"id":"x","propertyId":"p1","amount":"10.5","date":"2023-7-4","type":"Expense","note":"Repairs: tap"}]}`,
			check: func(t *testing.T, s *State) {
				if s.Version != SnapshotVersion || s.Currency != DefaultCurrency {
					t.Errorf("Version = %d Currency = %q", s.Version, s.Currency)
				}
				p := s.Payments[0]
				if p.MonthKey != "2023-07" || !p.Amount.Equal(M(10.5)) || p.Date != day("2023-07-04") {
					t.Errorf("legacy payment = %+v", p)
				}
			},
		},
		{
			name:  "current snapshot keeps its month keys",
			input: `{"version":1,"currency":"EUR","payments":[{"id":"x","propertyId":"p1","amount":10,"date":"2023-07-04","type":"Rent","monthKey":"2023-06"}]}`,
			check: func(t *testing.T, s *State) {
				if s.Currency != "EUR" || s.Payments[0].MonthKey != "2023-06" {
					t.Errorf("DecodeState() = %+v", s)
				}
			},
		},
		{
			name:    "newer version is rejected",
			input:   `{"version":2}`,
			wantErr: ErrUnsupportedVersion,
		},
		{
			name:    "not an object",
			input:   `[1,2]`,
			wantErr: errAny,
		},
		{
			name:    "invalid version",
			input:   `{"version":"one"}`,
			wantErr: errAny,
		},
		{
			name:  "payment with an invalid date is skipped",
			input: `{"version":1,"payments":[{"id":"a","amount":10,"date":"2024-01-05","type":"Rent"},{"id":"b","amount":20,"date":"not-a-date","type":"Rent"}]}`,
			check: func(t *testing.T, s *State) {
				if len(s.Payments) != 1 || s.Payments[0].ID != "a" {
					t.Errorf("DecodeState() payments = %+v, want only a", s.Payments)
				}
			},
		},
		{
			name:    "records that are not a list",
			input:   `{"version":1,"payments":{"id":"a"}}`,
			wantErr: errAny,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, _, err := DecodeState(strings.NewReader(tc.input))
			switch {
			case tc.wantErr == nil && err != nil:
				t.Fatalf("DecodeState() returned unexpected error: %v", err)
			case tc.wantErr == errAny && err == nil:
				t.Fatal("DecodeState() expected an error, got nil")
			case tc.wantErr != nil && tc.wantErr != errAny && !errors.Is(err, tc.wantErr):
				t.Fatalf("DecodeState() error = %v, want %v", err, tc.wantErr)
			}
			if tc.check != nil {
				tc.check(t, s)
			}
		})
	}
}

// errAny is a marker for test cases expecting any error.
var errAny = errors.New("any error")

func TestDecodeState_Skipped(t *testing.T) {
	input := `{"version":1,
	  "properties":[{"id":"p1","name":"A","purchasePrice":1000,"purchaseDate":"2020-01-01"},{"id":"p2","purchaseDate":"soon"}],
	  "tenants":[{"id":"t1","leaseStart":42}],
	  "payments":[{"id":"a","amount":10,"date":"2024-01-05","type":"Rent"},{"id":"b","amount":20,"date":"not-a-date","type":"Rent"}]}`
	s, skipped, err := DecodeState(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeState() returned unexpected error: %v", err)
	}
	if len(s.Properties) != 1 || len(s.Tenants) != 0 || len(s.Payments) != 1 {
		t.Errorf("DecodeState() = %d properties, %d tenants, %d payments, want 1, 0, 1", len(s.Properties), len(s.Tenants), len(s.Payments))
	}
	want := []struct {
		list  string
		index int
	}{{"properties", 1}, {"tenants", 0}, {"payments", 1}}
	if len(skipped) != len(want) {
		t.Fatalf("DecodeState() skipped %v, want %d records", skipped, len(want))
	}
	for i, w := range want {
		if skipped[i].List != w.list || skipped[i].Index != w.index || skipped[i].Reason == "" {
			t.Errorf("skipped[%d] = %v, want %s[%d]", i, skipped[i], w.list, w.index)
		}
	}
}
