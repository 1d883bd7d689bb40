package rentbook

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/rentbook/date"
	"github.com/google/uuid"
)

// this file contains the bulk import of transactions from a spreadsheet export.
//
// The CSV has a header row with the columns Date, Amount, Property Name,
// Category and Note, in any order and any case. The Category column decides
// the payment type: Rent, Deposit, Late Fee and Equity map to those types,
// anything else is an expense of that category (Other if not a known one).
// Rent, deposits and late fees go to the tenant whose lease covers the date,
// when the property has exactly one.

// csvColumns are the required header names, lower case.
var csvColumns = []string{"date", "amount", "property name", "category", "note"}

// SkippedRow is a CSV row that could not be imported.
type SkippedRow struct {
	Line   int // 1-based line in the file, the header being line 1.
	Reason string
}

// ImportResult lists the payments read from a CSV and the rows left out.
type ImportResult struct {
	Payments []Payment
	Skipped  []SkippedRow
}

// ImportCSV reads payments from a CSV. Properties are matched by name in s.
//
// Malformed rows do not stop the import: they are reported in the result. An
// error is only returned when the file itself cannot be read or lacks a
// required column.
func ImportCSV(r io.Reader, s *State) (*ImportResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("cannot import csv: file is empty")
		}
		return nil, fmt.Errorf("cannot read csv header: %w", err)
	}
	index := make(map[string]int)
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range csvColumns {
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("cannot import csv: missing column %q", c)
		}
	}

	res := &ImportResult{}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			line := 0
			if errors.As(err, &perr) {
				line = perr.Line
			}
			res.Skipped = append(res.Skipped, SkippedRow{Line: line, Reason: err.Error()})
			continue
		}
		line, _ := cr.FieldPos(0)
		field := func(name string) string {
			if i := index[name]; i < len(record) {
				return strings.TrimSpace(record[i])
			}
			return ""
		}
		if strings.TrimSpace(strings.Join(record, "")) == "" {
			continue
		}

		p, err := csvPayment(s, field("date"), field("amount"), field("property name"), field("category"), field("note"))
		if err != nil {
			res.Skipped = append(res.Skipped, SkippedRow{Line: line, Reason: err.Error()})
			continue
		}
		res.Payments = append(res.Payments, p)
	}
	return res, nil
}

// csvPayment converts the fields of one CSV row.
func csvPayment(s *State, on, amount, property, category, note string) (Payment, error) {
	day, err := date.Parse(on)
	if err != nil {
		return Payment{}, err
	}
	value, err := ParseMoney(strings.NewReplacer(",", "", "$", "").Replace(amount))
	if err != nil {
		return Payment{}, err
	}
	if value.IsNegative() {
		return Payment{}, fmt.Errorf("amount %s must not be negative", amount)
	}
	prop, ok := s.PropertyByName(property)
	if !ok {
		return Payment{}, fmt.Errorf("unknown property %q", property)
	}

	p := Payment{
		ID:         uuid.NewString(),
		PropertyID: prop.ID,
		Amount:     value,
		Date:       day,
		MonthKey:   date.MonthKey(day),
		Method:     MethodBank,
		Note:       note,
	}
	if t, err := ParsePaymentType(category); err == nil && t != Expense {
		p.Type = t
	} else {
		p.Type = Expense
		p.ExpenseCategory = KnownCategory(category)
	}
	if p.Type == Rent || p.Type == Deposit || p.Type == LateFee {
		p.TenantID = leaseHolder(s, prop.ID, day)
	}
	return p, nil
}

// leaseHolder returns the ID of the only tenant of a property whose lease
// covers day, or "" when there is none or more than one.
func leaseHolder(s *State, propertyID string, day date.Date) string {
	var found []string
	for _, t := range s.TenantsOf(propertyID) {
		if day.Before(t.LeaseStart.StartOfMonth()) {
			continue
		}
		if !t.LeaseEnd.IsZero() && day.After(t.LeaseEnd.EndOfMonth()) {
			continue
		}
		found = append(found, t.ID)
	}
	if len(found) != 1 {
		return ""
	}
	return found[0]
}
