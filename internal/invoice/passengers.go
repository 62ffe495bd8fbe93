package invoice

import "invoice-engine/internal/domain/models"

const (
	// PassengersPerPage is the passenger capacity of one printed page.
	PassengersPerPage = 9
	// SummaryPassengerRows is the fixed row count of the single-page summary.
	SummaryPassengerRows = 6
)

// PaginatePassengers splits lines into pages of pageSize for a full print
// run. Numbering is global: the first row of page two is pageSize+1. An empty
// list still yields one (empty) page so a document always has a page.
func PaginatePassengers(lines []models.PassengerLine, pageSize int) []PassengerPage {
	if pageSize <= 0 {
		pageSize = PassengersPerPage
	}
	if len(lines) == 0 {
		return []PassengerPage{{}}
	}

	pages := make([]PassengerPage, 0, PageCount(len(lines), pageSize))
	for start := 0; start < len(lines); start += pageSize {
		end := min(start+pageSize, len(lines))
		page := make(PassengerPage, 0, end-start)
		for i := start; i < end; i++ {
			line := lines[i]
			line.Index = i + 1
			page = append(page, line)
		}
		pages = append(pages, page)
	}
	return pages
}

// PadPassengers returns exactly rows lines for the single-page summary: real
// passengers first, blank placeholders after. Passengers beyond rows are not
// shown; use PaginatePassengers when every name must print.
func PadPassengers(lines []models.PassengerLine, rows int) PassengerPage {
	if rows <= 0 {
		rows = SummaryPassengerRows
	}
	page := make(PassengerPage, rows)
	for i := 0; i < rows && i < len(lines); i++ {
		page[i] = lines[i]
		page[i].Index = i + 1
	}
	return page
}

// PageCount is 1 when count fits in one page, else ceil(count/capacity).
func PageCount(count, capacity int) int {
	if capacity <= 0 {
		capacity = PassengersPerPage
	}
	if count <= capacity {
		return 1
	}
	return (count + capacity - 1) / capacity
}
