// Package receipt prints rent receipts as PDF.
package receipt

import (
	"errors"
	"fmt"
	"io"

	"github.com/etnz/rentbook"
	"github.com/etnz/rentbook/date"
	"github.com/jung-kurt/gofpdf"
)

// ErrNotRent is returned for a payment that is not a rent payment.
var ErrNotRent = errors.New("only rent payments have a receipt")

// Receipt holds what is printed on a rent receipt.
type Receipt struct {
	Number   string // the payment ID.
	Date     date.Date
	Issuer   string // landlord name, optional.
	Tenant   string
	Property string
	Address  string
	Period   string // month key the rent is for.
	Amount   rentbook.Money
	Currency string
	Method   string
	Note     string
}

// New prepares the receipt of a rent payment of the book.
func New(s *rentbook.State, paymentID string) (*Receipt, error) {
	p, ok := s.Payment(paymentID)
	if !ok {
		return nil, fmt.Errorf("payment %q: %w", paymentID, rentbook.ErrNotFound)
	}
	if p.Type != rentbook.Rent {
		return nil, fmt.Errorf("payment %q is %s: %w", p.ID, p.Type, ErrNotRent)
	}
	t, ok := s.Tenant(p.TenantID)
	if !ok {
		return nil, fmt.Errorf("payment %q has no tenant: %w", p.ID, rentbook.ErrNotFound)
	}
	r := &Receipt{
		Number:   p.ID,
		Date:     p.Date,
		Tenant:   t.Name,
		Amount:   p.Amount,
		Currency: s.Currency,
		Method:   p.Method,
		Note:     p.Note,
	}
	r.Period, _ = p.Month()
	if prop, ok := s.Property(p.PropertyID); ok {
		r.Property = prop.Name
		r.Address = prop.Address
	}
	return r, nil
}

// Write prints the receipt as a single A5 portrait page.
func (r *Receipt) Write(w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetTitle("Rent Receipt "+r.Number, true)
	pdf.SetCreator("rbk", false)
	pdf.SetCreationDate(r.Date.Time())
	pdf.SetCatalogSort(true) // stable output for the same receipt.
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	// Core fonts are cp1252: accents and the euro sign need translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	width := pageWidth - left - right

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(width, 10, "Rent Receipt", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(width, 5, tr("No. "+r.Number), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	row := func(label, value string) {
		if value == "" {
			return
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(35, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(width-35, 7, tr(value), "", "L", false)
	}
	row("Date", r.Date.String())
	row("Received from", r.Tenant)
	row("Property", r.Property)
	row("Address", r.Address)
	row("For the month", r.Period)
	row("Method", r.Method)
	row("Note", r.Note)
	pdf.Ln(4)

	pdf.SetFillColor(235, 235, 235)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(width, 12, tr("Amount received: "+r.Amount.Format(r.Currency)), "1", 1, "C", true, 0, "")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 10)
	x, y := pdf.GetXY()
	pdf.Line(x+width-60, y, x+width, y)
	pdf.SetX(x + width - 60)
	signature := "Landlord"
	if r.Issuer != "" {
		signature = r.Issuer
	}
	pdf.CellFormat(60, 6, tr(signature), "", 1, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("could not write receipt %q: %w", r.Number, err)
	}
	return nil
}
