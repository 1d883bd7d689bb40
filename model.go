package rentbook

import (
	"fmt"
	"strings"

	"github.com/etnz/rentbook/date"
)

// PropertyType classifies a property. Only PersonalUse changes the financial analysis.
type PropertyType string

const (
	Residential PropertyType = "Residential"
	Commercial  PropertyType = "Commercial"
	Industrial  PropertyType = "Industrial"
	PersonalUse PropertyType = "PersonalUse"
)

// ParsePropertyType parses a property type, case-insensitively.
func ParsePropertyType(s string) (PropertyType, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "")) {
	case "residential":
		return Residential, nil
	case "commercial":
		return Commercial, nil
	case "industrial":
		return Industrial, nil
	case "personaluse", "personal":
		return PersonalUse, nil
	default:
		return "", fmt.Errorf("unknown property type %q", s)
	}
}

// TenantStatus tells whether a tenant still occupies the property.
type TenantStatus string

const (
	Active TenantStatus = "active"
	Past   TenantStatus = "past"
)

// PaymentType is the kind of cash transaction.
type PaymentType string

const (
	Rent    PaymentType = "Rent"
	Deposit PaymentType = "Deposit"
	Expense PaymentType = "Expense"
	Equity  PaymentType = "Equity"
	LateFee PaymentType = "LateFee"
)

// ParsePaymentType parses a payment type, case-insensitively. "late fee" is accepted for LateFee.
func ParsePaymentType(s string) (PaymentType, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "")) {
	case "rent":
		return Rent, nil
	case "deposit":
		return Deposit, nil
	case "expense":
		return Expense, nil
	case "equity":
		return Equity, nil
	case "latefee":
		return LateFee, nil
	default:
		return "", fmt.Errorf("unknown payment type %q", s)
	}
}

// IsRevenue reports whether payments of this type count as revenue: rent, deposits and late fees.
func (t PaymentType) IsRevenue() bool { return t == Rent || t == Deposit || t == LateFee }

// Common payment methods. Method is free text; these are the values the CLI suggests.
const (
	MethodCash     = "Cash"
	MethodBank     = "Bank Transfer"
	MethodCheck    = "Check"
	MethodOnline   = "Online"
	MethodInternal = "Internal" // settlement entries generated by a move-out.
)

// Property is a real estate asset.
type Property struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	Address             string       `json:"address,omitempty"`
	Type                PropertyType `json:"type"`
	PurchasePrice       Money        `json:"purchasePrice"`
	PurchaseDate        date.Date    `json:"purchaseDate"`
	DownPayment         Money        `json:"downPayment"`
	MonthlyAmortization Money        `json:"monthlyAmortization"`
	CurrentMarketValue  Money        `json:"currentMarketValue"` // zero means unknown.
}

// CurrentValue returns the market value, or the purchase price when the market value is unknown.
func (p Property) CurrentValue() Money {
	if p.CurrentMarketValue.IsZero() {
		return p.PurchasePrice
	}
	return p.CurrentMarketValue
}

// IsRental reports whether the property is rented out, i.e. is not for personal use.
func (p Property) IsRental() bool { return p.Type != PersonalUse }

// MarshalJSON implements the json.Marshaler interface for Property.
func (p Property) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", p.ID)
	w.Append("name", p.Name)
	w.Optional("address", p.Address)
	w.Append("type", p.Type)
	w.Append("purchasePrice", p.PurchasePrice)
	w.Optional("purchaseDate", p.PurchaseDate)
	w.Optional("downPayment", p.DownPayment)
	w.Optional("monthlyAmortization", p.MonthlyAmortization)
	w.Optional("currentMarketValue", p.CurrentMarketValue)
	return w.MarshalJSON()
}

// Tenant occupies a property under a lease.
type Tenant struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Email      string       `json:"email,omitempty"`
	Phone      string       `json:"phone,omitempty"`
	PropertyID string       `json:"propertyId"`
	RentAmount Money        `json:"rentAmount"`
	RentDueDay int          `json:"rentDueDay"`
	LeaseStart date.Date    `json:"leaseStart"`
	LeaseEnd   date.Date    `json:"leaseEnd"` // zero for open-ended leases.
	Status     TenantStatus `json:"status"`
}

// IsActive reports whether the tenant still occupies the property.
func (t Tenant) IsActive() bool { return t.Status != Past }

// MarshalJSON implements the json.Marshaler interface for Tenant.
func (t Tenant) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("name", t.Name)
	w.Optional("email", t.Email)
	w.Optional("phone", t.Phone)
	w.Append("propertyId", t.PropertyID)
	w.Append("rentAmount", t.RentAmount)
	w.Append("rentDueDay", t.RentDueDay)
	w.Append("leaseStart", t.LeaseStart)
	w.Optional("leaseEnd", t.LeaseEnd)
	w.Append("status", t.Status)
	return w.MarshalJSON()
}

// Payment is a cash transaction attached to a property, and optionally to a tenant.
type Payment struct {
	ID              string      `json:"id"`
	PropertyID      string      `json:"propertyId"`
	TenantID        string      `json:"tenantId,omitempty"`
	Amount          Money       `json:"amount"`
	Date            date.Date   `json:"date"`
	Type            PaymentType `json:"type"`
	Method          string      `json:"method,omitempty"`
	Note            string      `json:"note,omitempty"`
	MonthKey        string      `json:"monthKey,omitempty"`
	ExpenseCategory string      `json:"expenseCategory,omitempty"`
}

// Month returns the month bucket of the payment: MonthKey when set, otherwise
// derived from Date. ok is false when neither is usable.
func (p Payment) Month() (key string, ok bool) {
	if p.MonthKey != "" {
		return p.MonthKey, true
	}
	if p.Date.IsZero() {
		return "", false
	}
	return date.MonthKey(p.Date), true
}

// MarshalJSON implements the json.Marshaler interface for Payment.
func (p Payment) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", p.ID)
	w.Append("propertyId", p.PropertyID)
	w.Optional("tenantId", p.TenantID)
	w.Append("amount", p.Amount)
	w.Append("date", p.Date)
	w.Append("type", p.Type)
	w.Optional("method", p.Method)
	w.Optional("note", p.Note)
	w.Optional("monthKey", p.MonthKey)
	w.Optional("expenseCategory", p.ExpenseCategory)
	return w.MarshalJSON()
}
