package invoice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"invoice-engine/internal/domain/models"
	"invoice-engine/internal/utils"
)

const (
	// transport and extras sections always print at least this many rows
	sectionRows = 3

	sectionPassengers = "PASSENGER NAME"
	sectionTransport  = "TRANSPORTATION"
	sectionExtras     = "OTHER CHARGES"
)

// Company is the issuing agency printed in the letterhead.
type Company struct {
	Name    string
	Address string
	TaxID   string
	Phone   string
}

// Renderer builds DocumentPages for one company.
type Renderer struct {
	Company Company
	// PassengerRows is the passenger section height; shorter pages are padded.
	PassengerRows int
}

func (r Renderer) passengerRows() int {
	if r.PassengerRows > 0 {
		return r.PassengerRows
	}
	return PassengersPerPage
}

// RenderPage builds one page: header, info block, ledger, summary, footer.
// Missing optional fields (address lines, tax id, branch) print as empty.
func (r Renderer) RenderPage(rec models.BookingRecord, page PassengerPage, pageNumber, totalPages int) DocumentPage {
	totals := Totals(rec)
	return DocumentPage{
		PageNumber: pageNumber,
		TotalPages: totalPages,
		Header: Header{
			CompanyName:    r.Company.Name,
			CompanyAddress: r.Company.Address,
			CompanyTaxID:   r.Company.TaxID,
			CompanyPhone:   r.Company.Phone,
			Title:          "INVOICE",
			Subtitle:       "ORIGINAL",
		},
		Info:    infoBlock(rec),
		Ledger:  r.ledger(rec, page),
		Summary: summary(totals),
		Footer: Footer{
			Signatures: []string{"Received By", "Authorized Signature"},
			Remark:     strings.TrimSpace(rec.Remark),
			PageLabel:  fmt.Sprintf("page %d/%d", pageNumber, totalPages),
		},
	}
}

func infoBlock(rec models.BookingRecord) InfoBlock {
	c := rec.Customer
	return InfoBlock{
		Party: []Field{
			{Label: "Customer", Value: utils.NormalizeSpace(strings.TrimSpace(c.Code + " " + c.Name))},
			{Label: "Address", Value: strings.TrimSpace(c.Address1)},
			{Label: "", Value: strings.TrimSpace(c.Address2)},
			{Label: "", Value: strings.TrimSpace(c.Address3)},
			{Label: "Tax ID", Value: strings.TrimSpace(c.TaxID)},
			{Label: "Branch", Value: strings.TrimSpace(c.Branch)},
		},
		Document: []Field{
			{Label: "No.", Value: strings.TrimSpace(rec.DocumentNo)},
			{Label: "Date", Value: utils.DocDate(rec.IssueDate)},
			{Label: "Due Date", Value: utils.DocDate(rec.DueDate)},
			{Label: "Prepared By", Value: strings.TrimSpace(rec.PreparedBy)},
			{Label: "Route", Value: MergeRoute(rec.Legs, HeaderRouteCap)},
			{Label: "Supplier", Value: strings.TrimSpace(rec.Supplier.Name)},
		},
	}
}

func (r Renderer) ledger(rec models.BookingRecord, page PassengerPage) []LedgerRow {
	rows := make([]LedgerRow, 0, r.passengerRows()+2*sectionRows+3)

	rows = append(rows, LedgerRow{Kind: RowSection, Description: sectionPassengers})
	for _, p := range page {
		if p.Blank() {
			rows = append(rows, LedgerRow{Kind: RowBlank})
			continue
		}
		rows = append(rows, passengerRow(p))
	}
	rows = padRows(rows, len(page), r.passengerRows())

	rows = append(rows, LedgerRow{Kind: RowSection, Description: sectionTransport})
	transport := transportRows(rec)
	rows = append(rows, transport...)
	rows = padRows(rows, len(transport), sectionRows)

	rows = append(rows, LedgerRow{Kind: RowSection, Description: sectionExtras})
	extras := extraRows(rec.Extras)
	rows = append(rows, extras...)
	rows = padRows(rows, len(extras), sectionRows)

	return rows
}

func passengerRow(p models.PassengerLine) LedgerRow {
	name := strings.ToUpper(utils.NormalizeSpace(p.Name))
	if age := strings.TrimSpace(p.Age); age != "" {
		name += " (" + strings.ToUpper(age) + ")"
	}
	return LedgerRow{
		Kind:        RowItem,
		No:          strconv.Itoa(p.Index),
		Description: name,
		Detail:      strings.TrimSpace(strings.TrimSpace(p.TicketCode) + " " + strings.TrimSpace(p.TicketNumber)),
	}
}

// transportRows emits one row per passenger category with a nonzero quantity.
func transportRows(rec models.BookingRecord) []LedgerRow {
	route := MergeRoute(rec.Legs, HeaderRouteCap)
	cats := []struct {
		label string
		line  models.PriceLine
	}{
		{"ADULT", rec.Prices.Adult},
		{"CHILD", rec.Prices.Child},
		{"INFANT", rec.Prices.Infant},
	}

	out := make([]LedgerRow, 0, len(cats))
	for _, c := range cats {
		if c.line.Quantity <= 0 {
			continue
		}
		desc := "AIR TICKET " + c.label
		if route != "" {
			desc = "AIR TICKET " + route + " " + c.label
		}
		out = append(out, LedgerRow{
			Kind:        RowItem,
			Description: desc,
			Quantity:    strconv.Itoa(c.line.Quantity),
			UnitPrice:   utils.CurrencyWithDecimal(c.line.UnitPrice),
			Amount:      utils.CurrencyWithDecimal(c.line.Amount()),
		})
	}
	return out
}

func extraRows(extras []models.ExtraCharge) []LedgerRow {
	out := make([]LedgerRow, 0, len(extras))
	for _, x := range extras {
		if strings.TrimSpace(x.Description) == "" && extraAmount(x) == 0 {
			continue
		}
		qty := ""
		if x.Quantity > 0 {
			qty = strconv.Itoa(x.Quantity)
		}
		unit := ""
		if x.UnitPrice != 0 {
			unit = utils.CurrencyWithDecimal(x.UnitPrice)
		}
		out = append(out, LedgerRow{
			Kind:        RowItem,
			Description: strings.ToUpper(strings.TrimSpace(x.Description)),
			Quantity:    qty,
			UnitPrice:   unit,
			Amount:      utils.CurrencyWithDecimal(extraAmount(x)),
		})
	}
	return out
}

// padRows appends blank rows until a section that already holds have rows
// reaches want rows.
func padRows(rows []LedgerRow, have, want int) []LedgerRow {
	for i := have; i < want; i++ {
		rows = append(rows, LedgerRow{Kind: RowBlank})
	}
	return rows
}

func summary(t models.LedgerTotals) Summary {
	return Summary{
		Subtotal:   utils.CurrencyWithDecimal(t.Subtotal),
		TaxLabel:   "VAT " + decimal.NewFromFloat(t.TaxPercent).String() + "%",
		TaxAmount:  utils.CurrencyWithDecimal(t.TaxAmount),
		GrandTotal: utils.CurrencyWithDecimal(t.GrandTotal),
		WholeTotal: utils.CurrencyNoDecimal(t.GrandTotal),
		TotalWords: utils.NumberToWords(t.GrandTotal) + " Only",
	}
}
