package repositories

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-engine/internal/domain"
)

var headerCols = []string{
	"id", "document_no", "issue_date", "due_date", "prepared_by",
	"customer_code", "customer_name", "customer_address1", "customer_address2", "customer_address3",
	"customer_tax_id", "customer_branch", "customer_email", "customer_phone",
	"supplier_code", "supplier_name",
	"adult_qty", "adult_price", "child_qty", "child_price", "infant_qty", "infant_price",
	"subtotal", "tax_percent", "tax_amount", "grand_total", "remark",
}

func expectHeader(mock sqlmock.Sqlmock, id int64) {
	mock.ExpectQuery(`FROM invoices\s+WHERE id=\? LIMIT 1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(headerCols).AddRow(
			id, "INV-2025/001", "2025-05-12", "2025-05-19", "Sari",
			"C001", "PT Maju Jaya", "Jl. Sudirman 1", "Jakarta", "", "01.234.567.8-999.000", "Head Office", "ap@maju.example", "021-555",
			"TG", "Thai Airways",
			2, 12500.0, 1, 9000.0, 0, 0.0,
			34000.0, 7.0, 2380.0, 36380.0, "Non-refundable",
		))
}

func expectSeqColumn(mock sqlmock.Sqlmock, table string, present bool) {
	rows := sqlmock.NewRows([]string{"column_name"})
	if present {
		rows.AddRow("seq")
	}
	mock.ExpectQuery(`FROM information_schema.columns`).WithArgs(table, "seq").WillReturnRows(rows)
}

func TestGetBookingRecordLoadsEverything(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectHeader(mock, 7)
	expectSeqColumn(mock, "invoice_legs", true)
	mock.ExpectQuery(`FROM invoice_legs\s+WHERE invoice_id=\?\s+ORDER BY seq, id`).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"origin", "destination", "flight_date", "carrier", "flight_number", "dep", "arr"}).
			AddRow("BKK", "NRT", "2025-05-12", "TG", "TG640", "23:45", "07:55").
			AddRow("NRT", "BKK", "2025-05-20", "TG", "TG641", "10:30", "15:05"))
	expectSeqColumn(mock, "invoice_passengers", true)
	mock.ExpectQuery(`FROM invoice_passengers`).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"passenger_name", "age", "ticket_number", "ticket_code"}).
			AddRow("ANDERSON/JOHN MR", "ADT", "217-1234567890", "TG").
			AddRow("ANDERSON/JANE MRS", "ADT", "217-1234567891", "TG").
			AddRow("ANDERSON/JIM MSTR", "CHD", "217-1234567892", "TG"))
	mock.ExpectQuery(`FROM information_schema.tables`).WithArgs("invoice_extras").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("invoice_extras"))
	mock.ExpectQuery(`FROM invoice_extras`).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"description", "quantity", "unit_price", "amount"}).
			AddRow("Travel insurance", 3, 400.0, 1200.0))

	rec, err := InvoiceRepository{DB: db}.GetBookingRecord(context.Background(), 7)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, "INV-2025/001", rec.DocumentNo)
	assert.Equal(t, "PT Maju Jaya", rec.Customer.Name)
	assert.Equal(t, 2, rec.Prices.Adult.Quantity)
	assert.InDelta(t, 36380.0, rec.Ledger.GrandTotal, 0.001)
	require.Len(t, rec.Legs, 2)
	assert.Equal(t, "TG641", rec.Legs[1].FlightNumber)
	require.Len(t, rec.Passengers, 3)
	assert.Equal(t, 1, rec.Passengers[0].Index)
	assert.Equal(t, 3, rec.Passengers[2].Index)
	require.Len(t, rec.Extras, 1)
	assert.Equal(t, "Travel insurance", rec.Extras[0].Description)
}

func TestGetBookingRecordWithoutExtrasTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectHeader(mock, 3)
	expectSeqColumn(mock, "invoice_legs", true)
	mock.ExpectQuery(`FROM invoice_legs`).WillReturnRows(sqlmock.NewRows([]string{"o", "d", "f", "c", "n", "dep", "arr"}))
	expectSeqColumn(mock, "invoice_passengers", true)
	mock.ExpectQuery(`FROM invoice_passengers`).WillReturnRows(sqlmock.NewRows([]string{"n", "a", "t", "c"}))
	mock.ExpectQuery(`FROM information_schema.tables`).WillReturnError(sql.ErrNoRows)

	rec, err := InvoiceRepository{DB: db}.GetBookingRecord(context.Background(), 3)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Empty(t, rec.Extras)
	assert.Empty(t, rec.Passengers)
}

func TestGetBookingRecordNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM invoices`).WithArgs(int64(99)).WillReturnRows(sqlmock.NewRows(headerCols))

	_, err = InvoiceRepository{DB: db}.GetBookingRecord(context.Background(), 99)
	assert.True(t, domain.IsNotFound(err))
}

func TestGetBookingRecordRejectsBadID(t *testing.T) {
	_, err := InvoiceRepository{}.GetBookingRecord(context.Background(), 0)
	assert.True(t, domain.IsValidation(err))
}

func TestGetBookingRecordOrdersByIDWithoutSeqColumn(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectHeader(mock, 5)
	expectSeqColumn(mock, "invoice_legs", false)
	mock.ExpectQuery(`FROM invoice_legs\s+WHERE invoice_id=\?\s+ORDER BY id\s*$`).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"o", "d", "f", "c", "n", "dep", "arr"}).
			AddRow("CGK", "SIN", "2025-06-01", "GA", "GA820", "08:00", "10:45"))
	expectSeqColumn(mock, "invoice_passengers", false)
	mock.ExpectQuery(`FROM invoice_passengers\s+WHERE invoice_id=\?\s+ORDER BY id\s*$`).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"n", "a", "t", "c"}).AddRow("LIM/ANNA MS", "ADT", "126-555", "GA"))
	mock.ExpectQuery(`FROM information_schema.tables`).WillReturnError(sql.ErrNoRows)

	rec, err := InvoiceRepository{DB: db}.GetBookingRecord(context.Background(), 5)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	require.Len(t, rec.Legs, 1)
	assert.Equal(t, "GA820", rec.Legs[0].FlightNumber)
	require.Len(t, rec.Passengers, 1)
	assert.Equal(t, 1, rec.Passengers[0].Index)
}
