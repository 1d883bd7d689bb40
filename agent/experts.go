package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/rentbook"
	"github.com/etnz/rentbook/date"
	"github.com/etnz/rentbook/docs"
	"github.com/etnz/rentbook/renderer"
	"google.golang.org/genai"
)

// creates the facilitator
func newFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the landlord's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user owns rental properties. They come to you to know who paid, who is late, how
			profitable each property is, and what to do about it.

			Devise a plan of questions to ask to each experts and come up with the best response to the user's request.
			Answer in markdown. Quote amounts exactly as the Bookkeeper gives them.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAdvisor returns an expert of the rental market, grounded on Google Search.
func NewAdvisor(model string) *Expert {
	return &Expert{
		Name: "Advisor",
		Description: `This is a real estate advisor,
		aware of rental markets, landlord and tenant law, typical maintenance costs and financing.
		Ask the Advisor whenever you need recent or grounding information outside of the books.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in residential and commercial real estate. You can search and find about
			rents, prices, regulations, deposits, evictions and property management. You leverage Google
			Search to ground your assertions in a solid truth, and you say where a rule depends on the country.
			`}}},
		},
	}
}

// Book returns the current state of the book.
type Book func(ctx context.Context) (*rentbook.State, error)

// NewBookkeeper returns the expert in charge of the book. Its tools read the
// book through book; today is the default date of the reports.
func NewBookkeeper(model string, book Book, today func() date.Date) *Expert {
	lib := Tools(book, today)
	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. It reads the landlord's books: properties, tenants, rent ledgers,
		payments and expenses. It computes occupancy, outstanding rent, income statements, equity and returns.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are the bookkeeper of a landlord. You know how to use the Tools to extract relevant
				information from the books. You are part of a team of experts, yours is everything recorded
				in the books. They might ask you questions with approximate names: list the properties or the
				dashboard first to find out what they meant.

				Never compute what a tool already computes, and never invent a figure.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// tool declares a function rendering a markdown report from the book.
func tool(name, description string, params map[string]*genai.Schema, render func(s *rentbook.State, args map[string]any) (string, error), book Book) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: description,
			Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: params},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			s, err := book(ctx)
			if err != nil {
				return failure(id, name, fmt.Errorf("could not load the book: %w", err))
			}
			out, err := render(s, args)
			if err != nil {
				return failure(id, name, err)
			}
			return success(id, name, out)
		},
	}
}

// Tools returns the functions the Bookkeeper can call.
func Tools(book Book, today func() date.Date) []Function {
	dateParam := &genai.Schema{
		Type: genai.TypeString,
		Description: `The day of the report. Today is the default.
		Otherwise it uses a flexible date format based on YYYY-MM-DD:

		` + must(docs.GetTopic("dates")),
	}
	tenantParam := &genai.Schema{Type: genai.TypeString, Description: "The tenant name or ID."}

	return []Function{
		tool("Dashboard", "Dashboard shows the totals of the books: revenue, expenses, net income, outstanding rent, occupancy, the cash flow of the last 6 months and the leases ending soon.",
			map[string]*genai.Schema{"date": dateParam},
			func(s *rentbook.State, args map[string]any) (string, error) {
				on, err := dateArg(args, today())
				if err != nil {
					return "", err
				}
				d, err := rentbook.NewDashboard(s.Properties, s.Tenants, s.Payments, on)
				if err != nil {
					return "", err
				}
				chart := rentbook.ChartSeries(s.Payments, on, rentbook.DefaultChartMonths)
				leases := rentbook.LeaseWatchlist(s.Tenants, on, rentbook.DefaultWatchlistDays)
				return renderer.DashboardMarkdown(s, d, chart, leases), nil
			}, book),

		tool("Properties", "Properties lists every property with its tenants, and the financials of each: equity paid, remaining balance, value, net income, ROI and cap rate.",
			map[string]*genai.Schema{"date": dateParam},
			func(s *rentbook.State, args map[string]any) (string, error) {
				on, err := dateArg(args, today())
				if err != nil {
					return "", err
				}
				pf := rentbook.NewPortfolioFinancials(s.Properties, s.Payments, on)
				var b strings.Builder
				b.WriteString(renderer.PortfolioMarkdown(s, pf))
				for i, p := range s.Properties {
					b.WriteString("\n")
					b.WriteString(renderer.PropertyMarkdown(p, pf.Properties[i], s.Currency))
					for _, t := range s.TenantsOf(p.ID) {
						fmt.Fprintf(&b, "\n* tenant %s (%s), %s per month, lease %s to %s\n", t.Name, t.Status, t.RentAmount.Format(s.Currency), t.LeaseStart, t.LeaseEnd)
					}
				}
				return b.String(), nil
			}, book),

		tool("Ledger", "Ledger shows the rent ledger of a tenant: each monthly installment, what was paid and its status (paid, partial, overdue, pending), then every payment of the tenant.",
			map[string]*genai.Schema{"tenant": tenantParam, "date": dateParam},
			func(s *rentbook.State, args map[string]any) (string, error) {
				t, err := tenantArg(s, args)
				if err != nil {
					return "", err
				}
				on, err := dateArg(args, today())
				if err != nil {
					return "", err
				}
				installments, err := rentbook.GenerateLedger(t, s.Payments, on)
				if err != nil {
					return "", err
				}
				return renderer.LedgerMarkdown(s, t, installments), nil
			}, book),

		tool("MoveOut", "MoveOut projects the settlement of a tenant leaving: deposit held, unpaid rent and the net amount to refund (negative when the tenant owes money). Nothing is recorded.",
			map[string]*genai.Schema{"tenant": tenantParam, "date": dateParam},
			func(s *rentbook.State, args map[string]any) (string, error) {
				t, err := tenantArg(s, args)
				if err != nil {
					return "", err
				}
				on, err := dateArg(args, today())
				if err != nil {
					return "", err
				}
				m, err := rentbook.CalculateMoveOutFinancials(t, s.Payments, on)
				if err != nil {
					return "", err
				}
				return renderer.MoveOutMarkdown(s, t, m, on, false), nil
			}, book),

		tool("IncomeStatement", "IncomeStatement is the profit and loss of a calendar year: revenue by source and expenses by category.",
			map[string]*genai.Schema{"year": {Type: genai.TypeInteger, Description: "The year, the current one by default."}},
			func(s *rentbook.State, args map[string]any) (string, error) {
				year, err := intArg(args, "year", today().Year())
				if err != nil {
					return "", err
				}
				return renderer.IncomeStatementMarkdown(rentbook.NewIncomeStatement(s.Payments, year), s.Currency), nil
			}, book),

		tool("Summary", "Summary shows income, expense and net per month and per year, newest first.",
			map[string]*genai.Schema{"months": {Type: genai.TypeInteger, Description: "How many months to show, 12 by default."}},
			func(s *rentbook.State, args map[string]any) (string, error) {
				months, err := intArg(args, "months", 12)
				if err != nil {
					return "", err
				}
				return renderer.SummaryMarkdown(rentbook.NewPeriodSummaries(s.Payments), s.Currency, months), nil
			}, book),

		tool("Leases", "Leases lists the active leases ending within a number of days.",
			map[string]*genai.Schema{"days": {Type: genai.TypeInteger, Description: "The horizon in days, 60 by default."}},
			func(s *rentbook.State, args map[string]any) (string, error) {
				days, err := intArg(args, "days", rentbook.DefaultWatchlistDays)
				if err != nil {
					return "", err
				}
				return renderer.LeasesMarkdown(s, rentbook.LeaseWatchlist(s.Tenants, today(), days), days), nil
			}, book),

		tool("Topic", "Topic returns the user documentation of rbk on a topic: "+strings.Join(must(docs.GetAllTopics()), ", ")+".",
			map[string]*genai.Schema{"name": {Type: genai.TypeString, Description: "The topic name."}},
			func(_ *rentbook.State, args map[string]any) (string, error) {
				name, _ := args["name"].(string)
				return docs.GetTopic(name)
			}, book),
	}
}

func dateArg(args map[string]any, today date.Date) (date.Date, error) {
	v, ok := args["date"]
	if !ok {
		return today, nil
	}
	s, ok := v.(string)
	if !ok {
		return today, fmt.Errorf("argument 'date' is not a string as expected but %T", v)
	}
	on, err := date.ParseRelative(s, today)
	if err != nil {
		return today, fmt.Errorf("argument 'date' must be a valid date got %q. Below is the doc about the format date\n\n%s ", s, must(docs.GetTopic("dates")))
	}
	return on, nil
}

func tenantArg(s *rentbook.State, args map[string]any) (rentbook.Tenant, error) {
	ref, ok := args["tenant"].(string)
	if !ok || ref == "" {
		return rentbook.Tenant{}, fmt.Errorf("argument 'tenant' is required")
	}
	return s.FindTenant(ref)
}

// intArg reads an integer argument. JSON numbers arrive as float64.
func intArg(args map[string]any, name string, def int) (int, error) {
	switch v := args[name].(type) {
	case nil:
		return def, nil
	case float64:
		return int(v), nil
	case int:
		return v, nil
	default:
		return def, fmt.Errorf("argument %q is not a number but %T", name, v)
	}
}
