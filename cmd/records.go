package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rentbook"
	"github.com/etnz/rentbook/date"
	"github.com/etnz/rentbook/renderer"
	"github.com/google/subcommands"
)

// moneyFlag is a flag.Value for amounts.
type moneyFlag struct{ rentbook.Money }

func (m *moneyFlag) Set(s string) (err error) {
	m.Money, err = rentbook.ParseMoney(s)
	return err
}

// addPropertyCmd holds the flags for the 'add-property' subcommand.
type addPropertyCmd struct {
	name         string
	address      string
	kind         string
	price        moneyFlag
	purchased    string
	downPayment  moneyFlag
	amortization moneyFlag
	value        moneyFlag
}

func (*addPropertyCmd) Name() string     { return "add-property" }
func (*addPropertyCmd) Synopsis() string { return "add a property to the book" }
func (*addPropertyCmd) Usage() string {
	return `rbk add-property -n <name> -price <amount> [-on <date>] [-type <type>] [-down <amount>] [-amortization <amount>] [-value <amount>] [-address <address>]

  Adds a property. Types are Residential (default), Commercial, Industrial and PersonalUse.
`
}

func (c *addPropertyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Name of the property")
	f.StringVar(&c.address, "address", "", "Postal address")
	f.StringVar(&c.kind, "type", string(rentbook.Residential), "Property type")
	f.Var(&c.price, "price", "Purchase price")
	f.StringVar(&c.purchased, "on", "", "Purchase date, today by default")
	f.Var(&c.downPayment, "down", "Down payment")
	f.Var(&c.amortization, "amortization", "Monthly amortization of the mortgage")
	f.Var(&c.value, "value", "Current market value, the purchase price when unknown")
}

func (c *addPropertyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -n is required.")
		return subcommands.ExitUsageError
	}
	kind, err := rentbook.ParsePropertyType(c.kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	on, err := parseDay(c.purchased)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withBook(ctx, func(a *app, _ *rentbook.State) error {
		var p rentbook.Property
		_, err := a.update(ctx, func(s *rentbook.State) (n *rentbook.State, err error) {
			if _, ok := s.PropertyByName(c.name); ok {
				return nil, fmt.Errorf("property %q already exists", c.name)
			}
			n, p, err = s.AddProperty(rentbook.Property{
				Name:                c.name,
				Address:             c.address,
				Type:                kind,
				PurchasePrice:       c.price.Money,
				PurchaseDate:        on,
				DownPayment:         c.downPayment.Money,
				MonthlyAmortization: c.amortization.Money,
				CurrentMarketValue:  c.value.Money,
			})
			return n, err
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Added property %s (%s)\n", p.Name, p.ID)
		return nil
	})
}

// addTenantCmd holds the flags for the 'add-tenant' subcommand.
type addTenantCmd struct {
	name     string
	email    string
	phone    string
	property string
	rent     moneyFlag
	dueDay   int
	start    string
	end      string
}

func (*addTenantCmd) Name() string     { return "add-tenant" }
func (*addTenantCmd) Synopsis() string { return "add a tenant to a property" }
func (*addTenantCmd) Usage() string {
	return `rbk add-tenant -n <name> -p <property> -rent <amount> [-due <day>] [-start <date>] [-end <date>] [-email <email>] [-phone <phone>]

  Adds an active tenant. The lease is open-ended when -end is not set.
`
}

func (c *addTenantCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Name of the tenant")
	f.StringVar(&c.email, "email", "", "Email of the tenant")
	f.StringVar(&c.phone, "phone", "", "Phone of the tenant")
	f.StringVar(&c.property, "p", "", "Property name or ID")
	f.Var(&c.rent, "rent", "Monthly rent")
	f.IntVar(&c.dueDay, "due", 1, "Day of the month the rent is due")
	f.StringVar(&c.start, "start", "", "Start of the lease, today by default")
	f.StringVar(&c.end, "end", "", "End of the lease")
}

func (c *addTenantCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.property == "" {
		fmt.Fprintln(os.Stderr, "Error: -n and -p are required.")
		return subcommands.ExitUsageError
	}
	start, err := parseDay(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
		return subcommands.ExitUsageError
	}
	var end date.Date
	if c.end != "" {
		if end, err = parseDay(c.end); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	return withBook(ctx, func(a *app, _ *rentbook.State) error {
		var t rentbook.Tenant
		_, err := a.update(ctx, func(s *rentbook.State) (n *rentbook.State, err error) {
			p, err := s.FindProperty(c.property)
			if err != nil {
				return nil, err
			}
			n, t, err = s.AddTenant(rentbook.Tenant{
				Name:       c.name,
				Email:      c.email,
				Phone:      c.phone,
				PropertyID: p.ID,
				RentAmount: c.rent.Money,
				RentDueDay: c.dueDay,
				LeaseStart: start,
				LeaseEnd:   end,
			})
			return n, err
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Added tenant %s (%s)\n", t.Name, t.ID)
		return nil
	})
}

// payCmd holds the flags for the 'pay' subcommand.
type payCmd struct {
	kind     string
	amount   moneyFlag
	on       string
	property string
	tenant   string
	method   string
	note     string
	month    string
	category string
}

func (*payCmd) Name() string     { return "pay" }
func (*payCmd) Synopsis() string { return "record a payment" }
func (*payCmd) Usage() string {
	return `rbk pay -type <type> -a <amount> (-t <tenant> | -p <property>) [-d <date>] [-m <method>] [-month <YYYY-MM>] [-c <category>] [-note <note>]

  Records a payment. Types are Rent, Deposit, LateFee, Expense and Equity.
  Rent, deposits and late fees come from a tenant, whose property is used.
  Expenses are categorized with -c: Maintenance, Repairs, Utilities, Taxes,
  Insurance, Management, Mortgage Interest, HOA, Supplies or Other.

Usage Examples:
# Alice paid her rent by bank transfer.
$ rbk pay -type rent -a 1200 -t Alice -m "Bank Transfer"

# A plumber was paid for the Maple Street house.
$ rbk pay -type expense -a 150 -p "Maple Street" -c Repairs -note "kitchen sink"
`
}

func (c *payCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "type", string(rentbook.Rent), "Payment type")
	f.Var(&c.amount, "a", "Amount")
	f.StringVar(&c.on, "d", "", "Date of the payment, today by default")
	f.StringVar(&c.property, "p", "", "Property name or ID, the tenant's property by default")
	f.StringVar(&c.tenant, "t", "", "Tenant name or ID")
	f.StringVar(&c.method, "m", rentbook.MethodBank, "Payment method")
	f.StringVar(&c.note, "note", "", "Free text note")
	f.StringVar(&c.month, "month", "", "Month the payment is for (YYYY-MM), the month of the date by default")
	f.StringVar(&c.category, "c", "", "Expense category")
}

func (c *payCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	kind, err := rentbook.ParsePaymentType(c.kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.tenant == "" && c.property == "" {
		fmt.Fprintln(os.Stderr, "Error: -t or -p is required.")
		return subcommands.ExitUsageError
	}
	on, err := parseDay(c.on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.month != "" {
		if _, err := date.ParseMonthKey(c.month); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing month: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	return withBook(ctx, func(a *app, _ *rentbook.State) error {
		var p rentbook.Payment
		n, err := a.update(ctx, func(s *rentbook.State) (n *rentbook.State, err error) {
			p = rentbook.Payment{
				Amount:   c.amount.Money,
				Date:     on,
				Type:     kind,
				Method:   c.method,
				Note:     c.note,
				MonthKey: c.month,
			}
			if kind == rentbook.Expense && c.category != "" {
				p.ExpenseCategory = rentbook.KnownCategory(c.category)
			}
			if c.tenant != "" {
				t, err := s.FindTenant(c.tenant)
				if err != nil {
					return nil, err
				}
				p.TenantID, p.PropertyID = t.ID, t.PropertyID
			}
			if c.property != "" {
				pr, err := s.FindProperty(c.property)
				if err != nil {
					return nil, err
				}
				p.PropertyID = pr.ID
			}
			n, p, err = s.AddPayment(p)
			return n, err
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, renderer.Payment(p, n.Currency))
		return nil
	})
}
