package models

import "strings"

// BookingRecord is the read-only snapshot of a sale used to print an invoice.
// It is loaded fresh per request and never mutated by the document engine.
type BookingRecord struct {
	ID         int64           `json:"id"`
	DocumentNo string          `json:"document_no"`
	IssueDate  string          `json:"issue_date"`
	DueDate    string          `json:"due_date"`
	PreparedBy string          `json:"prepared_by"`
	Customer   Party           `json:"customer"`
	Supplier   Supplier        `json:"supplier"`
	Legs       []ItineraryLeg  `json:"legs"`
	Passengers []PassengerLine `json:"passengers"`
	Prices     PriceBreakdown  `json:"prices"`
	Extras     []ExtraCharge   `json:"extras"`
	Ledger     LedgerTotals    `json:"ledger"`
	Remark     string          `json:"remark"`
}

// Party is the billed customer.
type Party struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	Address3 string `json:"address3"`
	TaxID    string `json:"tax_id"`
	Branch   string `json:"branch"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Supplier is the airline/consolidator the tickets were bought from.
type Supplier struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ItineraryLeg is one point-to-point flight.
type ItineraryLeg struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	Date          string `json:"date"`
	Carrier       string `json:"carrier"`
	FlightNumber  string `json:"flight_number"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
}

// PassengerLine is one passenger row. Index is global (1-based) across pages;
// a zero Index marks a blank placeholder row.
type PassengerLine struct {
	Index        int    `json:"index"`
	Name         string `json:"name"`
	Age          string `json:"age"`
	TicketNumber string `json:"ticket_number"`
	TicketCode   string `json:"ticket_code"`
}

// Blank reports whether the line is layout padding rather than a passenger.
func (p PassengerLine) Blank() bool {
	return p.Index == 0 && strings.TrimSpace(p.Name) == ""
}

// PriceLine is quantity x unit price for one passenger category.
type PriceLine struct {
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Amount returns Quantity * UnitPrice.
func (p PriceLine) Amount() float64 {
	return float64(p.Quantity) * p.UnitPrice
}

// PriceBreakdown holds transport pricing per passenger category.
type PriceBreakdown struct {
	Adult  PriceLine `json:"adult"`
	Child  PriceLine `json:"child"`
	Infant PriceLine `json:"infant"`
}

// ExtraCharge is a non-ticket line item (insurance, baggage, service fee).
type ExtraCharge struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}

// LedgerTotals are the totals printed in the summary block.
type LedgerTotals struct {
	Subtotal   float64 `json:"subtotal"`
	TaxPercent float64 `json:"tax_percent"`
	TaxAmount  float64 `json:"tax_amount"`
	GrandTotal float64 `json:"grand_total"`
}
