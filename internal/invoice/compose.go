package invoice

import "invoice-engine/internal/domain/models"

// Composer drives Renderer once per passenger page.
type Composer struct {
	Renderer Renderer
}

// NewComposer returns a composer printing PassengersPerPage names per page.
func NewComposer(company Company) Composer {
	return Composer{Renderer: Renderer{Company: company, PassengerRows: PassengersPerPage}}
}

// Compose renders the full print run: one page per PassengersPerPage
// passengers, every page but the first marked BreakBefore. The result only
// depends on rec, so composing the same record twice gives equal documents.
func (c Composer) Compose(rec models.BookingRecord) ComposedDocument {
	capacity := c.Renderer.passengerRows()
	pages := PaginatePassengers(rec.Passengers, capacity)
	total := PageCount(len(rec.Passengers), capacity)

	doc := ComposedDocument{
		DocumentNo: rec.DocumentNo,
		Pages:      make([]DocumentPage, 0, total),
	}
	for i, pp := range pages {
		page := c.Renderer.RenderPage(rec, pp, i+1, total)
		page.BreakBefore = i > 0
		doc.Pages = append(doc.Pages, page)
	}
	return doc
}

// ComposeSummary renders the single-page summary variant: exactly
// SummaryPassengerRows passenger rows, padded with blanks.
func (c Composer) ComposeSummary(rec models.BookingRecord) ComposedDocument {
	r := c.Renderer
	r.PassengerRows = SummaryPassengerRows
	page := r.RenderPage(rec, PadPassengers(rec.Passengers, SummaryPassengerRows), 1, 1)
	return ComposedDocument{DocumentNo: rec.DocumentNo, Pages: []DocumentPage{page}}
}
