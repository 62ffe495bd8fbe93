package invoice

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-engine/internal/domain/models"
)

func passengerList(n int) []models.PassengerLine {
	out := make([]models.PassengerLine, n)
	for i := range out {
		out[i] = models.PassengerLine{Name: fmt.Sprintf("PAX %d", i+1), Age: "ADT", TicketNumber: fmt.Sprintf("217%07d", i)}
	}
	return out
}

func TestPaginatePassengers(t *testing.T) {
	pages := PaginatePassengers(passengerList(20), 9)
	require.Len(t, pages, 3)
	assert.Len(t, pages[0], 9)
	assert.Len(t, pages[1], 9)
	assert.Len(t, pages[2], 2)

	want := 1
	for _, page := range pages {
		for _, p := range page {
			assert.Equal(t, want, p.Index)
			assert.Equal(t, fmt.Sprintf("PAX %d", want), p.Name)
			want++
		}
	}
	assert.Equal(t, 21, want)
}

func TestPaginatePassengersEdges(t *testing.T) {
	pages := PaginatePassengers(nil, 9)
	require.Len(t, pages, 1)
	assert.Empty(t, pages[0])

	pages = PaginatePassengers(passengerList(9), 9)
	require.Len(t, pages, 1)

	pages = PaginatePassengers(passengerList(10), 0)
	require.Len(t, pages, 2, "zero page size falls back to default capacity")
}

func TestPadPassengers(t *testing.T) {
	page := PadPassengers(passengerList(4), 6)
	require.Len(t, page, 6)
	for i := 0; i < 4; i++ {
		assert.False(t, page[i].Blank())
		assert.Equal(t, i+1, page[i].Index)
	}
	assert.True(t, page[4].Blank())
	assert.True(t, page[5].Blank())

	over := PadPassengers(passengerList(8), 6)
	assert.Len(t, over, 6)
	assert.Equal(t, "PAX 6", over[5].Name)
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 1, PageCount(0, 9))
	assert.Equal(t, 1, PageCount(9, 9))
	assert.Equal(t, 2, PageCount(10, 9))
	assert.Equal(t, 3, PageCount(20, 9))
	assert.Equal(t, 3, PageCount(27, 9))
}
