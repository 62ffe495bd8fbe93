package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intconfig "invoice-engine/internal/config"
	intdb "invoice-engine/internal/db"
	"invoice-engine/internal/domain"
	"invoice-engine/internal/domain/models"
)

// InvoiceRepository reads booking snapshots for printing. It never writes.
type InvoiceRepository struct {
	DB *sql.DB
}

func (r InvoiceRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetBookingRecord loads the invoice header with its legs, passengers and
// extra charges. Legs and passengers keep their entry order.
func (r InvoiceRepository) GetBookingRecord(ctx context.Context, id int64) (models.BookingRecord, error) {
	if id <= 0 {
		return models.BookingRecord{}, domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	db := r.db()
	if db == nil {
		return models.BookingRecord{}, domain.InternalError{Msg: "database belum terhubung"}
	}

	rec, err := r.header(ctx, db, id)
	if err != nil {
		return rec, err
	}
	if rec.Legs, err = r.legs(ctx, db, id); err != nil {
		return rec, err
	}
	if rec.Passengers, err = r.passengers(ctx, db, id); err != nil {
		return rec, err
	}
	// older schemas have no extras table
	if intdb.HasTable(ctx, db, "invoice_extras") {
		if rec.Extras, err = r.extras(ctx, db, id); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

func (r InvoiceRepository) header(ctx context.Context, db *sql.DB, id int64) (models.BookingRecord, error) {
	var rec models.BookingRecord
	p := &rec.Prices
	l := &rec.Ledger
	err := db.QueryRowContext(ctx, `
		SELECT
			id, COALESCE(document_no,''),
			COALESCE(DATE_FORMAT(issue_date,'%Y-%m-%d'),''), COALESCE(DATE_FORMAT(due_date,'%Y-%m-%d'),''),
			COALESCE(prepared_by,''),
			COALESCE(customer_code,''), COALESCE(customer_name,''),
			COALESCE(customer_address1,''), COALESCE(customer_address2,''), COALESCE(customer_address3,''),
			COALESCE(customer_tax_id,''), COALESCE(customer_branch,''),
			COALESCE(customer_email,''), COALESCE(customer_phone,''),
			COALESCE(supplier_code,''), COALESCE(supplier_name,''),
			COALESCE(adult_qty,0), COALESCE(adult_price,0),
			COALESCE(child_qty,0), COALESCE(child_price,0),
			COALESCE(infant_qty,0), COALESCE(infant_price,0),
			COALESCE(subtotal,0), COALESCE(tax_percent,0), COALESCE(tax_amount,0), COALESCE(grand_total,0),
			COALESCE(remark,'')
		FROM invoices
		WHERE id=? LIMIT 1
	`, id).Scan(
		&rec.ID, &rec.DocumentNo,
		&rec.IssueDate, &rec.DueDate,
		&rec.PreparedBy,
		&rec.Customer.Code, &rec.Customer.Name,
		&rec.Customer.Address1, &rec.Customer.Address2, &rec.Customer.Address3,
		&rec.Customer.TaxID, &rec.Customer.Branch,
		&rec.Customer.Email, &rec.Customer.Phone,
		&rec.Supplier.Code, &rec.Supplier.Name,
		&p.Adult.Quantity, &p.Adult.UnitPrice,
		&p.Child.Quantity, &p.Child.UnitPrice,
		&p.Infant.Quantity, &p.Infant.UnitPrice,
		&l.Subtotal, &l.TaxPercent, &l.TaxAmount, &l.GrandTotal,
		&rec.Remark,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, domain.NotFoundError{Resource: "invoice", Err: err}
	}
	if err != nil {
		return rec, domain.InternalError{Msg: "gagal membaca invoice", Err: err}
	}
	return rec, nil
}

func (r InvoiceRepository) legs(ctx context.Context, db *sql.DB, id int64) ([]models.ItineraryLeg, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT COALESCE(origin,''), COALESCE(destination,''),
			COALESCE(DATE_FORMAT(flight_date,'%Y-%m-%d'),''),
			COALESCE(carrier,''), COALESCE(flight_number,''),
			COALESCE(departure_time,''), COALESCE(arrival_time,'')
		FROM invoice_legs
		WHERE invoice_id=?
		ORDER BY `+entryOrder(ctx, db, "invoice_legs"), id)
	if err != nil {
		return nil, domain.InternalError{Msg: "gagal membaca rute invoice", Err: err}
	}
	defer rows.Close()

	var out []models.ItineraryLeg
	for rows.Next() {
		var leg models.ItineraryLeg
		if err := rows.Scan(&leg.Origin, &leg.Destination, &leg.Date, &leg.Carrier, &leg.FlightNumber, &leg.DepartureTime, &leg.ArrivalTime); err != nil {
			return nil, domain.InternalError{Msg: "gagal membaca rute invoice", Err: err}
		}
		out = append(out, leg)
	}
	return out, rowsErr(rows, "rute invoice")
}

func (r InvoiceRepository) passengers(ctx context.Context, db *sql.DB, id int64) ([]models.PassengerLine, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT COALESCE(passenger_name,''), COALESCE(age,''),
			COALESCE(ticket_number,''), COALESCE(ticket_code,'')
		FROM invoice_passengers
		WHERE invoice_id=?
		ORDER BY `+entryOrder(ctx, db, "invoice_passengers"), id)
	if err != nil {
		return nil, domain.InternalError{Msg: "gagal membaca penumpang invoice", Err: err}
	}
	defer rows.Close()

	var out []models.PassengerLine
	for rows.Next() {
		var p models.PassengerLine
		if err := rows.Scan(&p.Name, &p.Age, &p.TicketNumber, &p.TicketCode); err != nil {
			return nil, domain.InternalError{Msg: "gagal membaca penumpang invoice", Err: err}
		}
		p.Index = len(out) + 1
		out = append(out, p)
	}
	return out, rowsErr(rows, "penumpang invoice")
}

func (r InvoiceRepository) extras(ctx context.Context, db *sql.DB, id int64) ([]models.ExtraCharge, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT COALESCE(description,''), COALESCE(quantity,0),
			COALESCE(unit_price,0), COALESCE(amount,0)
		FROM invoice_extras
		WHERE invoice_id=?
		ORDER BY id
	`, id)
	if err != nil {
		return nil, domain.InternalError{Msg: "gagal membaca biaya tambahan", Err: err}
	}
	defer rows.Close()

	var out []models.ExtraCharge
	for rows.Next() {
		var e models.ExtraCharge
		if err := rows.Scan(&e.Description, &e.Quantity, &e.UnitPrice, &e.Amount); err != nil {
			return nil, domain.InternalError{Msg: "gagal membaca biaya tambahan", Err: err}
		}
		out = append(out, e)
	}
	return out, rowsErr(rows, "biaya tambahan")
}

// entryOrder keeps entry order: by seq where the table has one, otherwise by
// insertion id.
func entryOrder(ctx context.Context, db *sql.DB, table string) string {
	if intdb.HasColumn(ctx, db, table, "seq") {
		return "seq, id"
	}
	return "id"
}

func rowsErr(rows *sql.Rows, what string) error {
	if err := rows.Err(); err != nil {
		return domain.InternalError{Msg: fmt.Sprintf("gagal membaca %s", what), Err: err}
	}
	return nil
}
