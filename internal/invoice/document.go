// Package invoice turns a booking record into a fixed-layout, paginated
// invoice document model. It has no knowledge of how pages are drawn; see
// package render for the PDF backends.
package invoice

import "invoice-engine/internal/domain/models"

// PassengerPage is one page worth of passenger rows. Indexes are global.
type PassengerPage []models.PassengerLine

// RowKind tells a drawing backend how to style a ledger row.
type RowKind string

const (
	RowSection RowKind = "section"
	RowItem    RowKind = "item"
	RowBlank   RowKind = "blank"
)

// Header is the company letterhead and document title.
type Header struct {
	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address"`
	CompanyTaxID   string `json:"company_tax_id"`
	CompanyPhone   string `json:"company_phone"`
	Title          string `json:"title"`
	Subtitle       string `json:"subtitle"`
}

// Field is a label/value pair in the info block.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// InfoBlock is the two-column party/invoice block under the header.
type InfoBlock struct {
	Party    []Field `json:"party"`
	Document []Field `json:"document"`
}

// LedgerRow is one printable line of the itemized table.
type LedgerRow struct {
	Kind        RowKind `json:"kind"`
	No          string  `json:"no"`
	Description string  `json:"description"`
	Detail      string  `json:"detail"`
	Quantity    string  `json:"quantity"`
	UnitPrice   string  `json:"unit_price"`
	Amount      string  `json:"amount"`
}

// Summary carries the formatted totals.
type Summary struct {
	Subtotal   string `json:"subtotal"`
	TaxLabel   string `json:"tax_label"`
	TaxAmount  string `json:"tax_amount"`
	GrandTotal string `json:"grand_total"`
	// WholeTotal is the floored grand total, the figure TotalWords spells.
	WholeTotal string `json:"whole_total"`
	TotalWords string `json:"total_words"`
}

// Footer holds signature captions and the page label.
type Footer struct {
	Signatures []string `json:"signatures"`
	Remark     string   `json:"remark"`
	PageLabel  string   `json:"page_label"`
}

// DocumentPage is the self-contained render unit for one physical page.
type DocumentPage struct {
	PageNumber  int         `json:"page_number"`
	TotalPages  int         `json:"total_pages"`
	BreakBefore bool        `json:"break_before"`
	Header      Header      `json:"header"`
	Info        InfoBlock   `json:"info"`
	Ledger      []LedgerRow `json:"ledger"`
	Summary     Summary     `json:"summary"`
	Footer      Footer      `json:"footer"`
}

// ComposedDocument is the ordered page sequence of one invoice.
// TotalPages of every page equals len(Pages).
type ComposedDocument struct {
	DocumentNo string         `json:"document_no"`
	Pages      []DocumentPage `json:"pages"`
}

// PageCount returns len(Pages).
func (d ComposedDocument) PageCount() int {
	return len(d.Pages)
}
