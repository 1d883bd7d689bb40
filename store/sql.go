package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/etnz/rentbook"
	"github.com/etnz/rentbook/date"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// bookRow holds the book level settings. There is a single row.
type bookRow struct {
	ID       uint `gorm:"primaryKey"`
	Version  int
	Currency string
}

func (bookRow) TableName() string { return "books" }

// propertyRow is a Property in the database.
type propertyRow struct {
	ID                  string `gorm:"primaryKey"`
	Position            int    `gorm:"index"`
	Name                string
	Address             string
	Type                string
	PurchasePrice       decimal.Decimal `gorm:"type:decimal(16,4)"`
	PurchaseDate        string
	DownPayment         decimal.Decimal `gorm:"type:decimal(16,4)"`
	MonthlyAmortization decimal.Decimal `gorm:"type:decimal(16,4)"`
	CurrentMarketValue  decimal.Decimal `gorm:"type:decimal(16,4)"`
}

func (propertyRow) TableName() string { return "properties" }

// tenantRow is a Tenant in the database.
type tenantRow struct {
	ID         string `gorm:"primaryKey"`
	Position   int    `gorm:"index"`
	Name       string
	Email      string
	Phone      string
	PropertyID string          `gorm:"index"`
	RentAmount decimal.Decimal `gorm:"type:decimal(16,4)"`
	RentDueDay int
	LeaseStart string
	LeaseEnd   string
	Status     string
}

func (tenantRow) TableName() string { return "tenants" }

// paymentRow is a Payment in the database.
type paymentRow struct {
	ID              string          `gorm:"primaryKey"`
	Position        int             `gorm:"index"`
	PropertyID      string          `gorm:"index"`
	TenantID        string          `gorm:"index"`
	Amount          decimal.Decimal `gorm:"type:decimal(16,4)"`
	Date            string
	Type            string
	Method          string
	Note            string
	MonthKey        string
	ExpenseCategory string
}

func (paymentRow) TableName() string { return "payments" }

// SQL stores the book in a relational database.
type SQL struct {
	db  *gorm.DB
	log *logrus.Logger
}

// OpenSQL connects to the database and migrates its schema.
//
// The DSN is either "sqlite:<file>" or a postgres URL.
func OpenSQL(dsn string, log *logrus.Logger) (*SQL, error) {
	var dialector gorm.Dialector
	switch {
	case strings.HasPrefix(dsn, "sqlite:"):
		dialector = sqlite.Open(strings.TrimPrefix(dsn, "sqlite:"))
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported dsn %q", dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(log, gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&bookRow{}, &propertyRow{}, &tenantRow{}, &paymentRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &SQL{db: db, log: log}, nil
}

func (s *SQL) Load(ctx context.Context) (*rentbook.State, error) {
	db := s.db.WithContext(ctx)

	var books []bookRow
	if err := db.Limit(1).Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to load book: %w", err)
	}
	st := rentbook.NewState()
	if len(books) > 0 && books[0].Currency != "" {
		st.Currency = books[0].Currency
	}

	var properties []propertyRow
	if err := db.Order("position").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to load properties: %w", err)
	}
	var tenants []tenantRow
	if err := db.Order("position").Find(&tenants).Error; err != nil {
		return nil, fmt.Errorf("failed to load tenants: %w", err)
	}
	var payments []paymentRow
	if err := db.Order("position").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	for _, r := range properties {
		p, err := r.property()
		if err != nil {
			return nil, err
		}
		st.Properties = append(st.Properties, p)
	}
	for _, r := range tenants {
		t, err := r.tenant()
		if err != nil {
			return nil, err
		}
		st.Tenants = append(st.Tenants, t)
	}
	for _, r := range payments {
		p, err := r.payment()
		if err != nil {
			return nil, err
		}
		st.Payments = append(st.Payments, p)
	}
	s.log.WithFields(logrus.Fields{
		"properties": len(st.Properties),
		"tenants":    len(st.Tenants),
		"payments":   len(st.Payments),
	}).Debug("loaded book from database")
	return st, nil
}

// Save replaces every row in a single transaction.
func (s *SQL) Save(ctx context.Context, st *rentbook.State) error {
	properties := make([]propertyRow, 0, len(st.Properties))
	for i, p := range st.Properties {
		properties = append(properties, newPropertyRow(i, p))
	}
	tenants := make([]tenantRow, 0, len(st.Tenants))
	for i, t := range st.Tenants {
		tenants = append(tenants, newTenantRow(i, t))
	}
	payments := make([]paymentRow, 0, len(st.Payments))
	for i, p := range st.Payments {
		payments = append(payments, newPaymentRow(i, p))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&paymentRow{}, &tenantRow{}, &propertyRow{}, &bookRow{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		if err := tx.Create(&bookRow{ID: 1, Version: rentbook.SnapshotVersion, Currency: st.Currency}).Error; err != nil {
			return err
		}
		if len(properties) > 0 {
			if err := tx.CreateInBatches(properties, 200).Error; err != nil {
				return err
			}
		}
		if len(tenants) > 0 {
			if err := tx.CreateInBatches(tenants, 200).Error; err != nil {
				return err
			}
		}
		if len(payments) > 0 {
			if err := tx.CreateInBatches(payments, 200).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save book: %w", err)
	}
	s.log.Debugf("saved book to database: %d payments", len(payments))
	return nil
}

func (s *SQL) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

func newPropertyRow(i int, p rentbook.Property) propertyRow {
	return propertyRow{
		ID:                  p.ID,
		Position:            i,
		Name:                p.Name,
		Address:             p.Address,
		Type:                string(p.Type),
		PurchasePrice:       p.PurchasePrice.Decimal(),
		PurchaseDate:        p.PurchaseDate.String(),
		DownPayment:         p.DownPayment.Decimal(),
		MonthlyAmortization: p.MonthlyAmortization.Decimal(),
		CurrentMarketValue:  p.CurrentMarketValue.Decimal(),
	}
}

func (r propertyRow) property() (rentbook.Property, error) {
	purchased, err := parseDate(r.PurchaseDate)
	if err != nil {
		return rentbook.Property{}, fmt.Errorf("property %q: %w", r.ID, err)
	}
	return rentbook.Property{
		ID:                  r.ID,
		Name:                r.Name,
		Address:             r.Address,
		Type:                rentbook.PropertyType(r.Type),
		PurchasePrice:       rentbook.M(r.PurchasePrice),
		PurchaseDate:        purchased,
		DownPayment:         rentbook.M(r.DownPayment),
		MonthlyAmortization: rentbook.M(r.MonthlyAmortization),
		CurrentMarketValue:  rentbook.M(r.CurrentMarketValue),
	}, nil
}

func newTenantRow(i int, t rentbook.Tenant) tenantRow {
	return tenantRow{
		ID:         t.ID,
		Position:   i,
		Name:       t.Name,
		Email:      t.Email,
		Phone:      t.Phone,
		PropertyID: t.PropertyID,
		RentAmount: t.RentAmount.Decimal(),
		RentDueDay: t.RentDueDay,
		LeaseStart: t.LeaseStart.String(),
		LeaseEnd:   t.LeaseEnd.String(),
		Status:     string(t.Status),
	}
}

func (r tenantRow) tenant() (rentbook.Tenant, error) {
	start, err := parseDate(r.LeaseStart)
	if err != nil {
		return rentbook.Tenant{}, fmt.Errorf("tenant %q: %w", r.ID, err)
	}
	end, err := parseDate(r.LeaseEnd)
	if err != nil {
		return rentbook.Tenant{}, fmt.Errorf("tenant %q: %w", r.ID, err)
	}
	return rentbook.Tenant{
		ID:         r.ID,
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		PropertyID: r.PropertyID,
		RentAmount: rentbook.M(r.RentAmount),
		RentDueDay: r.RentDueDay,
		LeaseStart: start,
		LeaseEnd:   end,
		Status:     rentbook.TenantStatus(r.Status),
	}, nil
}

func newPaymentRow(i int, p rentbook.Payment) paymentRow {
	return paymentRow{
		ID:              p.ID,
		Position:        i,
		PropertyID:      p.PropertyID,
		TenantID:        p.TenantID,
		Amount:          p.Amount.Decimal(),
		Date:            p.Date.String(),
		Type:            string(p.Type),
		Method:          p.Method,
		Note:            p.Note,
		MonthKey:        p.MonthKey,
		ExpenseCategory: p.ExpenseCategory,
	}
}

func (r paymentRow) payment() (rentbook.Payment, error) {
	on, err := parseDate(r.Date)
	if err != nil {
		return rentbook.Payment{}, fmt.Errorf("payment %q: %w", r.ID, err)
	}
	return rentbook.Payment{
		ID:              r.ID,
		PropertyID:      r.PropertyID,
		TenantID:        r.TenantID,
		Amount:          rentbook.M(r.Amount),
		Date:            on,
		Type:            rentbook.PaymentType(r.Type),
		Method:          r.Method,
		Note:            r.Note,
		MonthKey:        r.MonthKey,
		ExpenseCategory: r.ExpenseCategory,
	}, nil
}

// parseDate reads a date column, the empty string being the zero date.
func parseDate(s string) (date.Date, error) {
	if s == "" {
		return date.Date{}, nil
	}
	return date.Parse(s)
}
