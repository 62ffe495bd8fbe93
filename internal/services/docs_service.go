package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"invoice-engine/internal/domain"
	"invoice-engine/internal/domain/models"
	"invoice-engine/internal/invoice"
	"invoice-engine/internal/mailer"
	"invoice-engine/internal/render"
	"invoice-engine/internal/repositories"
	"invoice-engine/internal/utils"
)

// RecordLoader fetches the booking snapshot for one invoice.
type RecordLoader interface {
	GetBookingRecord(ctx context.Context, id int64) (models.BookingRecord, error)
}

// Sender dispatches a rendered invoice by email.
type Sender interface {
	Send(ctx context.Context, req mailer.SendRequest) (mailer.SendResult, error)
}

// Variant selects the page layout of a document.
type Variant string

const (
	// VariantFull prints every passenger, PassengersPerPage per page.
	VariantFull Variant = "full"
	// VariantSummary prints a single page with SummaryPassengerRows rows.
	VariantSummary Variant = "summary"
)

// ParseVariant maps a query value onto a Variant; unknown values mean full.
func ParseVariant(s string) Variant {
	if strings.EqualFold(strings.TrimSpace(s), string(VariantSummary)) {
		return VariantSummary
	}
	return VariantFull
}

// DocsService turns booking records into invoice PDFs and emails them.
// It is built per request; nothing is cached between calls.
type DocsService struct {
	Records      RecordLoader
	Composer     invoice.Composer
	Surfaces     render.SurfaceFactory
	AssetTimeout time.Duration
	FlowMode     bool
	Mailer       Sender
	RequestID    string
}

// EmailInput is the user part of an email request. An empty To falls back
// to the customer's email on file.
type EmailInput struct {
	To      string
	Subject string
	Message string
	Variant Variant
}

// ComposeDocument loads the record and composes its pages.
func (s DocsService) ComposeDocument(ctx context.Context, id int64, variant Variant) (invoice.ComposedDocument, models.BookingRecord, error) {
	rec, err := s.loadRecord(ctx, id)
	if err != nil {
		return invoice.ComposedDocument{}, rec, err
	}
	var doc invoice.ComposedDocument
	if variant == VariantSummary {
		doc = s.Composer.ComposeSummary(rec)
	} else {
		doc = s.Composer.Compose(rec)
	}
	utils.LogEvent(s.RequestID, "docs", "compose",
		fmt.Sprintf("invoice_id=%d variant=%s passengers=%d pages=%d", id, variant, len(rec.Passengers), doc.PageCount()))
	return doc, rec, nil
}

// GenerateInvoice returns the PDF bytes and a download filename.
func (s DocsService) GenerateInvoice(ctx context.Context, id int64, variant Variant) ([]byte, string, error) {
	doc, rec, err := s.ComposeDocument(ctx, id, variant)
	if err != nil {
		return nil, "", err
	}
	bin, err := s.renderBinary(ctx, doc)
	if err != nil {
		return nil, "", err
	}
	pdf, err := base64.StdEncoding.DecodeString(bin.Base64)
	if err != nil {
		return nil, "", domain.InternalError{Msg: "gagal decode PDF", Err: err}
	}
	return pdf, invoiceFilename(rec), nil
}

// EmailInvoice renders the invoice and sends it as an attachment.
func (s DocsService) EmailInvoice(ctx context.Context, id int64, in EmailInput) (mailer.SendResult, error) {
	if s.Mailer == nil {
		return mailer.SendResult{}, domain.InternalError{Msg: "email belum dikonfigurasi"}
	}
	doc, rec, err := s.ComposeDocument(ctx, id, in.Variant)
	if err != nil {
		return mailer.SendResult{}, err
	}
	bin, err := s.renderBinary(ctx, doc)
	if err != nil {
		return mailer.SendResult{}, err
	}

	req := mailer.SendRequest{
		To:               utils.FirstNonEmpty(in.To, rec.Customer.Email),
		Subject:          in.Subject,
		Message:          in.Message,
		AttachmentBase64: bin.Base64,
		AttachmentName:   invoiceFilename(rec),
		Metadata:         emailMetadata(rec),
		RequestID:        s.RequestID,
	}
	return s.Mailer.Send(ctx, req)
}

func (s DocsService) renderBinary(ctx context.Context, doc invoice.ComposedDocument) (render.RenderedBinary, error) {
	if s.FlowMode {
		return render.FlowRenderer{RequestID: s.RequestID}.FlowPDF(doc)
	}
	p := render.Paginator{
		Surfaces:     s.Surfaces,
		AssetTimeout: s.AssetTimeout,
		RequestID:    s.RequestID,
	}
	return p.ToPaginatedBinary(ctx, doc)
}

func (s DocsService) loadRecord(ctx context.Context, id int64) (models.BookingRecord, error) {
	if id <= 0 {
		return models.BookingRecord{}, domain.ValidationError{Field: "id", Msg: "id tidak valid"}
	}
	loader := s.Records
	if loader == nil {
		loader = repositories.InvoiceRepository{}
	}
	rec, err := loader.GetBookingRecord(ctx, id)
	if err != nil {
		return rec, err
	}
	if strings.TrimSpace(rec.DocumentNo) == "" {
		return rec, domain.MissingDataError{Field: "document_no"}
	}
	return rec, nil
}

func emailMetadata(rec models.BookingRecord) mailer.Metadata {
	names := make([]string, 0, len(rec.Passengers))
	for _, p := range rec.Passengers {
		if !p.Blank() {
			names = append(names, utils.NormalizeSpace(p.Name))
		}
	}
	return mailer.Metadata{
		ToName:     utils.FirstNonEmpty(rec.Customer.Name, rec.Customer.Code),
		DocumentNo: rec.DocumentNo,
		IssueDate:  utils.DocDate(rec.IssueDate),
		DueDate:    utils.DocDate(rec.DueDate),
		Total:      utils.CurrencyWithDecimal(invoice.Totals(rec).GrandTotal),
		Passengers: names,
		Flights:    invoice.FlightSummary(rec.Legs),
	}
}

func invoiceFilename(rec models.BookingRecord) string {
	return "INVOICE_" + utils.SafeFilenamePart(rec.DocumentNo) + ".pdf"
}
