package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-engine/internal/domain"
	"invoice-engine/internal/domain/models"
	"invoice-engine/internal/invoice"
	"invoice-engine/internal/mailer"
	"invoice-engine/internal/render"
)

type stubRecords struct {
	rec models.BookingRecord
	err error
}

func (s stubRecords) GetBookingRecord(_ context.Context, id int64) (models.BookingRecord, error) {
	if s.err != nil {
		return models.BookingRecord{}, s.err
	}
	rec := s.rec
	rec.ID = id
	return rec, nil
}

type stubSender struct {
	got   []mailer.SendRequest
	reply mailer.SendResult
	err   error
}

func (s *stubSender) Send(_ context.Context, req mailer.SendRequest) (mailer.SendResult, error) {
	s.got = append(s.got, req)
	return s.reply, s.err
}

func bookingWith(passengers int) models.BookingRecord {
	rec := models.BookingRecord{
		DocumentNo: "INV-2025/001",
		IssueDate:  "2025-05-12",
		DueDate:    "2025-05-19",
		Customer:   models.Party{Code: "C001", Name: "PT Maju Jaya", Email: "ap@maju.example"},
		Legs: []models.ItineraryLeg{
			{Origin: "BKK", Destination: "NRT", Carrier: "TG", FlightNumber: "640", Date: "2025-05-12"},
			{Origin: "NRT", Destination: "BKK", Carrier: "TG", FlightNumber: "641", Date: "2025-05-20"},
		},
		Prices: models.PriceBreakdown{Adult: models.PriceLine{Quantity: passengers, UnitPrice: 12500}},
		Ledger: models.LedgerTotals{TaxPercent: 7},
	}
	for i := 0; i < passengers; i++ {
		rec.Passengers = append(rec.Passengers, models.PassengerLine{Index: i + 1, Name: fmt.Sprintf("PAX/%02d MR", i+1)})
	}
	return rec
}

func testService(rec models.BookingRecord) DocsService {
	return DocsService{
		Records:  stubRecords{rec: rec},
		Composer: invoice.NewComposer(invoice.Company{Name: "Travel Agency"}),
		Surfaces: render.RasterSurfaceFactory(render.RasterConfig{}, nil),
	}
}

func TestComposeDocumentVariants(t *testing.T) {
	svc := testService(bookingWith(20))

	doc, _, err := svc.ComposeDocument(context.Background(), 1, VariantFull)
	require.NoError(t, err)
	assert.Equal(t, 3, doc.PageCount())

	doc, _, err = svc.ComposeDocument(context.Background(), 1, VariantSummary)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.PageCount())
}

func TestGenerateInvoiceRaster(t *testing.T) {
	pdf, name, err := testService(bookingWith(12)).GenerateInvoice(context.Background(), 1, VariantFull)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Equal(t, "INVOICE_INV-2025_001.pdf", name)
}

func TestGenerateInvoiceFlow(t *testing.T) {
	svc := testService(bookingWith(3))
	svc.FlowMode = true
	svc.Surfaces = nil

	pdf, _, err := svc.GenerateInvoice(context.Background(), 1, VariantFull)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestGenerateInvoiceMissingDocumentNo(t *testing.T) {
	rec := bookingWith(1)
	rec.DocumentNo = " "
	_, _, err := testService(rec).GenerateInvoice(context.Background(), 1, VariantFull)
	assert.True(t, domain.IsMissingData(err))
}

func TestGenerateInvoicePropagatesNotFound(t *testing.T) {
	svc := testService(models.BookingRecord{})
	svc.Records = stubRecords{err: domain.NotFoundError{Resource: "invoice"}}
	_, _, err := svc.GenerateInvoice(context.Background(), 5, VariantFull)
	assert.True(t, domain.IsNotFound(err))

	_, _, err = svc.GenerateInvoice(context.Background(), 0, VariantFull)
	assert.True(t, domain.IsValidation(err))
}

func TestEmailInvoiceBuildsRequest(t *testing.T) {
	sender := &stubSender{reply: mailer.SendResult{Success: true, Message: "ok"}}
	svc := testService(bookingWith(2))
	svc.Mailer = sender

	res, err := svc.EmailInvoice(context.Background(), 1, EmailInput{Message: "Terima kasih"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	require.Len(t, sender.got, 1)

	req := sender.got[0]
	assert.Equal(t, "ap@maju.example", req.To)
	assert.Equal(t, "INVOICE_INV-2025_001.pdf", req.AttachmentName)
	assert.NotEmpty(t, req.AttachmentBase64)
	assert.Equal(t, "PT Maju Jaya", req.Metadata.ToName)
	assert.Equal(t, "12/05/2025", req.Metadata.IssueDate)
	assert.Equal(t, "26,750.00", req.Metadata.Total)
	assert.Equal(t, []string{"PAX/01 MR", "PAX/02 MR"}, req.Metadata.Passengers)
	assert.Equal(t, []string{"TG640 BKK-NRT 12/05/2025", "TG641 NRT-BKK 20/05/2025"}, req.Metadata.Flights)
}

func TestEmailInvoiceExplicitRecipientWins(t *testing.T) {
	sender := &stubSender{err: errors.New("boom")}
	svc := testService(bookingWith(1))
	svc.Mailer = sender

	_, err := svc.EmailInvoice(context.Background(), 1, EmailInput{To: "finance@other.example"})
	require.Error(t, err)
	require.Len(t, sender.got, 1)
	assert.Equal(t, "finance@other.example", sender.got[0].To)
}

func TestParseVariant(t *testing.T) {
	assert.Equal(t, VariantSummary, ParseVariant(" Summary "))
	assert.Equal(t, VariantFull, ParseVariant(""))
	assert.Equal(t, VariantFull, ParseVariant("other"))
}
