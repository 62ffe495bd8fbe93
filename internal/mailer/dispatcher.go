// Package mailer sends generated invoices as email attachments through a
// transactional email provider.
package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"invoice-engine/internal/domain"
	"invoice-engine/internal/metrics"
	"invoice-engine/internal/utils"
)

// DefaultMaxAttachmentBytes is the provider's attachment ceiling (10 MiB).
const DefaultMaxAttachmentBytes int64 = 10 << 20

// Config is passed explicitly; nothing is read from the environment here.
type Config struct {
	FromAddress        string
	FromName           string
	TemplateID         string
	MaxAttachmentBytes int64
	// Now stamps sent_at; defaults to time.Now.
	Now func() time.Time
}

// Provider delivers one message. Implementations must not retry.
type Provider interface {
	Name() string
	Deliver(ctx context.Context, msg Message) error
}

// Message is the provider-neutral outbound email.
type Message struct {
	FromAddress string
	FromName    string
	To          string
	ToName      string
	Subject     string
	Text        string
	HTML        string
	TemplateID  string
	Params      map[string]string
	Attachment  *Attachment
}

// Attachment is base64 content as produced by the renderer.
type Attachment struct {
	Filename    string
	ContentType string
	Base64      string
}

// Metadata fills the template parameters of the invoice email.
type Metadata struct {
	ToName     string   `json:"to_name"`
	DocumentNo string   `json:"document_no"`
	IssueDate  string   `json:"issue_date"`
	DueDate    string   `json:"due_date"`
	Total      string   `json:"total"`
	Passengers []string `json:"passengers"`
	Flights    []string `json:"flights"`
}

// SendRequest is one dispatch. AttachmentBase64 may be empty.
type SendRequest struct {
	To               string   `json:"to"`
	Subject          string   `json:"subject"`
	Message          string   `json:"message"`
	AttachmentBase64 string   `json:"attachment_base64,omitempty"`
	AttachmentName   string   `json:"attachment_name,omitempty"`
	Metadata         Metadata `json:"metadata"`
	RequestID        string   `json:"-"`
}

// SendResult is the user-facing outcome.
type SendResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Dispatcher validates and sends invoice emails.
type Dispatcher struct {
	cfg      Config
	provider Provider
	validate *validator.Validate
}

func NewDispatcher(cfg Config, provider Provider) *Dispatcher {
	if cfg.MaxAttachmentBytes <= 0 {
		cfg.MaxAttachmentBytes = DefaultMaxAttachmentBytes
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Dispatcher{cfg: cfg, provider: provider, validate: validator.New()}
}

// Send checks the recipient and attachment size locally, then makes exactly
// one provider call. Validation failures never reach the provider.
func (d *Dispatcher) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	to := strings.TrimSpace(req.To)
	if to == "" {
		return d.fail(req, "rejected", domain.MissingDataError{Field: "to"})
	}
	if err := d.validate.Var(to, "required,email"); err != nil {
		return d.fail(req, "rejected", domain.InvalidAddressError{Address: to, Err: err})
	}

	var att *Attachment
	if b64 := compactBase64(req.AttachmentBase64); b64 != "" {
		if size := DecodedSize(b64); size > d.cfg.MaxAttachmentBytes {
			return d.fail(req, "rejected", domain.OversizedAttachmentError{Size: size, Limit: d.cfg.MaxAttachmentBytes})
		}
		att = &Attachment{
			Filename:    utils.FirstNonEmpty(req.AttachmentName, attachmentName(req.Metadata.DocumentNo)),
			ContentType: "application/pdf",
			Base64:      b64,
		}
	}

	if d.provider == nil {
		return d.fail(req, "failed", domain.InternalError{Msg: "email provider belum dikonfigurasi"})
	}

	params := templateParams(req, d.cfg.Now())
	text, html, err := renderBody(params)
	if err != nil {
		return d.fail(req, "failed", domain.InternalError{Msg: "gagal menyusun isi email", Err: err})
	}

	msg := Message{
		FromAddress: d.cfg.FromAddress,
		FromName:    d.cfg.FromName,
		To:          to,
		ToName:      req.Metadata.ToName,
		Subject:     utils.FirstNonEmpty(req.Subject, defaultSubject(req.Metadata.DocumentNo)),
		Text:        text,
		HTML:        html,
		TemplateID:  d.cfg.TemplateID,
		Params:      params,
		Attachment:  att,
	}
	if err := d.provider.Deliver(ctx, msg); err != nil {
		if !domain.IsProvider(err) {
			err = domain.ProviderError{Provider: d.provider.Name(), Err: err}
		}
		return d.fail(req, "failed", err)
	}

	metrics.EmailsSent.WithLabelValues("sent").Inc()
	utils.LogEvent(req.RequestID, "mailer", "send",
		fmt.Sprintf("document_no=%s provider=%s attachment=%t", req.Metadata.DocumentNo, d.provider.Name(), att != nil))
	return SendResult{Success: true, Message: "Email berhasil dikirim ke " + to}, nil
}

func (d *Dispatcher) fail(req SendRequest, outcome string, err error) (SendResult, error) {
	metrics.EmailsSent.WithLabelValues(outcome).Inc()
	utils.LogError(req.RequestID, "mailer", "send_"+outcome, err)
	return SendResult{Success: false, Message: err.Error()}, err
}

// DecodedSize returns the byte length of base64 content without decoding it.
// Line breaks from MIME-wrapped input are not counted.
func DecodedSize(b64 string) int64 {
	s := compactBase64(b64)
	if s == "" {
		return 0
	}
	padding := 0
	for i := len(s) - 1; i >= 0 && i >= len(s)-2 && s[i] == '='; i-- {
		padding++
	}
	return int64(len(s))*3/4 - int64(padding)
}

// compactBase64 strips the data URL prefix and every whitespace character.
func compactBase64(s string) string {
	return strings.Join(strings.Fields(stripDataURL(s)), "")
}

// stripDataURL drops a "data:application/pdf;base64," prefix.
func stripDataURL(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		if _, rest, ok := strings.Cut(s, ","); ok {
			return rest
		}
	}
	return s
}

func attachmentName(documentNo string) string {
	return "INVOICE_" + utils.SafeFilenamePart(documentNo) + ".pdf"
}

func defaultSubject(documentNo string) string {
	if documentNo == "" {
		return "Invoice"
	}
	return "Invoice " + documentNo
}
