package rentbook

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/rentbook/date"
	"github.com/google/uuid"
)

// SnapshotVersion is the version of the snapshot format written by this package.
const SnapshotVersion = 1

// DefaultCurrency is the display currency of a new book.
const DefaultCurrency = "USD"

// State is the whole book: every property, tenant and payment.
//
// The engine functions only read it. Mutating methods return a modified copy
// and leave the receiver untouched, so a State can be shared between reports.
type State struct {
	Version    int
	Currency   string
	Properties []Property
	Tenants    []Tenant
	Payments   []Payment
}

// NewState returns an empty book.
func NewState() *State {
	return &State{Version: SnapshotVersion, Currency: DefaultCurrency}
}

// clone returns a copy of s whose slices can be modified independently.
func (s *State) clone() *State {
	return &State{
		Version:    s.Version,
		Currency:   s.Currency,
		Properties: slices.Clone(s.Properties),
		Tenants:    slices.Clone(s.Tenants),
		Payments:   slices.Clone(s.Payments),
	}
}

// Property returns the property with that ID.
func (s *State) Property(id string) (Property, bool) {
	i := slices.IndexFunc(s.Properties, func(p Property) bool { return p.ID == id })
	if i < 0 {
		return Property{}, false
	}
	return s.Properties[i], true
}

// PropertyByName returns the property with that name, compared case-insensitively.
func (s *State) PropertyByName(name string) (Property, bool) {
	name = strings.TrimSpace(name)
	i := slices.IndexFunc(s.Properties, func(p Property) bool { return strings.EqualFold(p.Name, name) })
	if i < 0 {
		return Property{}, false
	}
	return s.Properties[i], true
}

// FindProperty resolves a property from its ID or its name.
func (s *State) FindProperty(ref string) (Property, error) {
	if p, ok := s.Property(ref); ok {
		return p, nil
	}
	if p, ok := s.PropertyByName(ref); ok {
		return p, nil
	}
	return Property{}, fmt.Errorf("property %q: %w", ref, ErrNotFound)
}

// Tenant returns the tenant with that ID.
func (s *State) Tenant(id string) (Tenant, bool) {
	i := slices.IndexFunc(s.Tenants, func(t Tenant) bool { return t.ID == id })
	if i < 0 {
		return Tenant{}, false
	}
	return s.Tenants[i], true
}

// FindTenant resolves a tenant from its ID or its name.
func (s *State) FindTenant(ref string) (Tenant, error) {
	if t, ok := s.Tenant(ref); ok {
		return t, nil
	}
	i := slices.IndexFunc(s.Tenants, func(t Tenant) bool { return strings.EqualFold(t.Name, strings.TrimSpace(ref)) })
	if i < 0 {
		return Tenant{}, fmt.Errorf("tenant %q: %w", ref, ErrNotFound)
	}
	return s.Tenants[i], nil
}

// Payment returns the payment with that ID.
func (s *State) Payment(id string) (Payment, bool) {
	i := slices.IndexFunc(s.Payments, func(p Payment) bool { return p.ID == id })
	if i < 0 {
		return Payment{}, false
	}
	return s.Payments[i], true
}

// TenantsOf returns the tenants of a property.
func (s *State) TenantsOf(propertyID string) []Tenant {
	var out []Tenant
	for _, t := range s.Tenants {
		if t.PropertyID == propertyID {
			out = append(out, t)
		}
	}
	return out
}

// Validate checks the references and invariants of every record.
// All problems are reported, joined.
func (s *State) Validate() error {
	var errs []error
	seen := make(map[string]bool)
	for _, p := range s.Properties {
		if p.ID == "" || seen[p.ID] {
			errs = append(errs, &InvalidInputError{Entity: "property", ID: p.ID, Field: "id", Reason: "is empty or duplicated"})
		}
		seen[p.ID] = true
		if p.PurchasePrice.IsNegative() {
			errs = append(errs, &InvalidInputError{Entity: "property", ID: p.ID, Field: "purchasePrice", Reason: "must not be negative"})
		}
		if p.PurchaseDate.IsZero() {
			errs = append(errs, &InvalidInputError{Entity: "property", ID: p.ID, Field: "purchaseDate", Reason: "is required"})
		}
	}
	for _, t := range s.Tenants {
		if _, ok := s.Property(t.PropertyID); !ok {
			errs = append(errs, invalidTenant(t, "propertyId", fmt.Sprintf("references unknown property %q", t.PropertyID)))
		}
		if err := validateLease(t); err != nil {
			errs = append(errs, err)
		}
		if t.Status == Past && t.LeaseEnd.IsZero() {
			errs = append(errs, invalidTenant(t, "leaseEnd", "is required for past tenants"))
		}
	}
	for _, p := range s.Payments {
		if _, ok := s.Property(p.PropertyID); !ok {
			errs = append(errs, &InvalidInputError{Entity: "payment", ID: p.ID, Field: "propertyId", Reason: fmt.Sprintf("references unknown property %q", p.PropertyID)})
		}
		if p.TenantID != "" {
			if _, ok := s.Tenant(p.TenantID); !ok {
				errs = append(errs, &InvalidInputError{Entity: "payment", ID: p.ID, Field: "tenantId", Reason: fmt.Sprintf("references unknown tenant %q", p.TenantID)})
			}
		}
		if p.Amount.IsNegative() {
			errs = append(errs, &InvalidInputError{Entity: "payment", ID: p.ID, Field: "amount", Reason: "must not be negative"})
		}
	}
	return errors.Join(errs...)
}

// AddProperty returns a new state with p appended. An ID is assigned when empty.
func (s *State) AddProperty(p Property) (*State, Property, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, ok := s.Property(p.ID); ok {
		return nil, p, fmt.Errorf("property %q already exists", p.ID)
	}
	if p.Type == "" {
		p.Type = Residential
	}
	if p.PurchasePrice.IsNegative() {
		return nil, p, &InvalidInputError{Entity: "property", ID: p.ID, Field: "purchasePrice", Reason: "must not be negative"}
	}
	if p.PurchaseDate.IsZero() {
		return nil, p, &InvalidInputError{Entity: "property", ID: p.ID, Field: "purchaseDate", Reason: "is required"}
	}
	n := s.clone()
	n.Properties = append(n.Properties, p)
	return n, p, nil
}

// AddTenant returns a new state with t appended. An ID is assigned when empty.
func (s *State) AddTenant(t Tenant) (*State, Tenant, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = Active
	}
	if _, ok := s.Property(t.PropertyID); !ok {
		return nil, t, fmt.Errorf("property %q: %w", t.PropertyID, ErrNotFound)
	}
	if err := validateLease(t); err != nil {
		return nil, t, err
	}
	n := s.clone()
	n.Tenants = append(n.Tenants, t)
	return n, t, nil
}

// AddPayment returns a new state with p appended. An ID is assigned when
// empty and the month key is derived from the date.
func (s *State) AddPayment(p Payment) (*State, Payment, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, ok := s.Property(p.PropertyID); !ok {
		return nil, p, fmt.Errorf("property %q: %w", p.PropertyID, ErrNotFound)
	}
	if p.TenantID != "" {
		if _, ok := s.Tenant(p.TenantID); !ok {
			return nil, p, fmt.Errorf("tenant %q: %w", p.TenantID, ErrNotFound)
		}
	}
	if p.Amount.IsNegative() {
		return nil, p, &InvalidInputError{Entity: "payment", ID: p.ID, Field: "amount", Reason: "must not be negative"}
	}
	if p.MonthKey == "" && !p.Date.IsZero() {
		p.MonthKey = date.MonthKey(p.Date)
	}
	n := s.clone()
	n.Payments = append(n.Payments, p)
	return n, p, nil
}

// AddPayments appends several payments, stopping at the first error.
func (s *State) AddPayments(payments ...Payment) (*State, error) {
	n := s
	for _, p := range payments {
		var err error
		if n, _, err = n.AddPayment(p); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// UpdateTenant returns a new state where the tenant with t's ID is replaced by t.
func (s *State) UpdateTenant(t Tenant) (*State, error) {
	i := slices.IndexFunc(s.Tenants, func(x Tenant) bool { return x.ID == t.ID })
	if i < 0 {
		return nil, fmt.Errorf("tenant %q: %w", t.ID, ErrNotFound)
	}
	if err := validateLease(t); err != nil {
		return nil, err
	}
	n := s.clone()
	n.Tenants[i] = t
	return n, nil
}

// DeletePayment returns a new state without the payment.
func (s *State) DeletePayment(id string) (*State, error) {
	i := slices.IndexFunc(s.Payments, func(p Payment) bool { return p.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("payment %q: %w", id, ErrNotFound)
	}
	n := s.clone()
	n.Payments = slices.Delete(n.Payments, i, i+1)
	return n, nil
}

// DeleteTenant returns a new state without the tenant and its payments.
func (s *State) DeleteTenant(id string) (*State, error) {
	if _, ok := s.Tenant(id); !ok {
		return nil, fmt.Errorf("tenant %q: %w", id, ErrNotFound)
	}
	n := s.clone()
	n.Tenants = slices.DeleteFunc(n.Tenants, func(t Tenant) bool { return t.ID == id })
	n.Payments = slices.DeleteFunc(n.Payments, func(p Payment) bool { return p.TenantID == id })
	return n, nil
}

// DeleteProperty returns a new state without the property, its tenants and its payments.
func (s *State) DeleteProperty(id string) (*State, error) {
	if _, ok := s.Property(id); !ok {
		return nil, fmt.Errorf("property %q: %w", id, ErrNotFound)
	}
	n := s.clone()
	n.Properties = slices.DeleteFunc(n.Properties, func(p Property) bool { return p.ID == id })
	n.Tenants = slices.DeleteFunc(n.Tenants, func(t Tenant) bool { return t.PropertyID == id })
	n.Payments = slices.DeleteFunc(n.Payments, func(p Payment) bool { return p.PropertyID == id })
	return n, nil
}

// MoveOut commits the move-out of a tenant on day on.
//
// The tenant becomes past, with a lease end on that day unless one is
// already set. The deposit first covers the unpaid rent, recorded as a rent
// payment balanced by a "Deposit Applied" expense; what is left is refunded,
// recorded as a "Deposit Refund" expense. The returned
// settlement is computed before those entries are added.
func (s *State) MoveOut(tenantID string, on date.Date) (*State, MoveOutFinancials, error) {
	t, ok := s.Tenant(tenantID)
	if !ok {
		return nil, MoveOutFinancials{}, fmt.Errorf("tenant %q: %w", tenantID, ErrNotFound)
	}
	if !t.IsActive() {
		return nil, MoveOutFinancials{}, fmt.Errorf("tenant %q has already moved out", t.Name)
	}
	if t.LeaseEnd.IsZero() {
		t.LeaseEnd = on
	}
	t.Status = Past

	settlement, err := CalculateMoveOutFinancials(t, s.Payments, on)
	if err != nil {
		return nil, MoveOutFinancials{}, err
	}

	n, err := s.UpdateTenant(t)
	if err != nil {
		return nil, MoveOutFinancials{}, err
	}
	if applied := MinMoney(settlement.DepositHeld, settlement.UnpaidRent); applied.IsPositive() {
		n, _, err = n.AddPayment(Payment{
			PropertyID: t.PropertyID,
			TenantID:   t.ID,
			Amount:     applied,
			Date:       on,
			Type:       Rent,
			Method:     MethodInternal,
			Note:       "Deposit applied to unpaid rent",
		})
		if err != nil {
			return nil, MoveOutFinancials{}, err
		}
		// The deposit was already counted as revenue when received: the
		// matching expense keeps the cash totals exact.
		n, _, err = n.AddPayment(Payment{
			PropertyID:      t.PropertyID,
			TenantID:        t.ID,
			Amount:          applied,
			Date:            on,
			Type:            Expense,
			Method:          MethodInternal,
			Note:            "Deposit applied to unpaid rent",
			ExpenseCategory: DepositAppliedCategory,
		})
		if err != nil {
			return nil, MoveOutFinancials{}, err
		}
	}
	if settlement.NetRefundable.IsPositive() {
		n, _, err = n.AddPayment(Payment{
			PropertyID:      t.PropertyID,
			TenantID:        t.ID,
			Amount:          settlement.NetRefundable,
			Date:            on,
			Type:            Expense,
			Method:          MethodInternal,
			Note:            "Deposit Refund: " + t.Name,
			ExpenseCategory: DepositRefundCategory,
		})
		if err != nil {
			return nil, MoveOutFinancials{}, err
		}
	}
	return n, settlement, nil
}
