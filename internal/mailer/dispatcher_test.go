package mailer

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-engine/internal/domain"
)

type recordingProvider struct {
	mu    sync.Mutex
	calls []Message
	err   error
}

func (p *recordingProvider) Name() string { return "recording" }

func (p *recordingProvider) Deliver(_ context.Context, msg Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, msg)
	return p.err
}

func (p *recordingProvider) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

var fixedNow = func() time.Time { return time.Date(2025, 5, 12, 9, 30, 0, 0, time.UTC) }

func newTestDispatcher(p Provider) *Dispatcher {
	return NewDispatcher(Config{
		FromAddress: "billing@agency.example",
		FromName:    "Agency Billing",
		Now:         fixedNow,
	}, p)
}

func sampleRequest() SendRequest {
	return SendRequest{
		To:               "customer@example.com",
		Message:          "Please find the invoice attached.",
		AttachmentBase64: base64.StdEncoding.EncodeToString([]byte("%PDF-1.3 fake")),
		Metadata: Metadata{
			ToName:     "PT Maju Jaya",
			DocumentNo: "INV-2025/001",
			IssueDate:  "12/05/2025",
			DueDate:    "19/05/2025",
			Total:      "27,300.00",
			Passengers: []string{"ANDERSON/JOHN MR", "ANDERSON/JANE MRS"},
			Flights:    []string{"TG640 BKK-NRT 12/05/2025", "TG641 NRT-BKK 20/05/2025"},
		},
	}
}

func TestSendDeliversOnce(t *testing.T) {
	p := &recordingProvider{}
	d := newTestDispatcher(p)

	res, err := d.Send(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Contains(t, res.Message, "customer@example.com")
	require.Equal(t, 1, p.count())

	msg := p.calls[0]
	assert.Equal(t, "billing@agency.example", msg.FromAddress)
	assert.Equal(t, "Invoice INV-2025/001", msg.Subject)
	require.NotNil(t, msg.Attachment)
	assert.Equal(t, "INVOICE_INV-2025_001.pdf", msg.Attachment.Filename)
	assert.Equal(t, "application/pdf", msg.Attachment.ContentType)

	assert.Equal(t, "PT Maju Jaya", msg.Params["to_name"])
	assert.Equal(t, "2", msg.Params["passenger_count"])
	assert.Equal(t, "12/05/2025 09:30", msg.Params["sent_at"])
	assert.Contains(t, msg.Text, "TG641 NRT-BKK 20/05/2025")
	assert.Contains(t, msg.HTML, "27,300.00")
}

func TestSendRejectsInvalidAddress(t *testing.T) {
	for _, to := range []string{"not-an-email", "a@", "two@@example.com"} {
		t.Run(to, func(t *testing.T) {
			p := &recordingProvider{}
			req := sampleRequest()
			req.To = to

			res, err := newTestDispatcher(p).Send(context.Background(), req)
			require.Error(t, err)
			assert.True(t, domain.IsInvalidAddress(err))
			assert.False(t, res.Success)
			assert.Zero(t, p.count())
		})
	}
}

func TestSendRequiresRecipient(t *testing.T) {
	p := &recordingProvider{}
	req := sampleRequest()
	req.To = "   "

	_, err := newTestDispatcher(p).Send(context.Background(), req)
	assert.True(t, domain.IsMissingData(err))
	assert.Zero(t, p.count())
}

func TestSendRejectsOversizedAttachment(t *testing.T) {
	p := &recordingProvider{}
	d := NewDispatcher(Config{MaxAttachmentBytes: 1024, Now: fixedNow}, p)
	req := sampleRequest()
	req.AttachmentBase64 = base64.StdEncoding.EncodeToString(make([]byte, 1025))

	res, err := d.Send(context.Background(), req)
	require.Error(t, err)
	assert.True(t, domain.IsOversizedAttachment(err))
	assert.False(t, res.Success)
	assert.Zero(t, p.count())

	req.AttachmentBase64 = base64.StdEncoding.EncodeToString(make([]byte, 1024))
	_, err = d.Send(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, p.count())
}

func TestSendWithoutAttachment(t *testing.T) {
	p := &recordingProvider{}
	req := sampleRequest()
	req.AttachmentBase64 = ""

	_, err := newTestDispatcher(p).Send(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 1, p.count())
	assert.Nil(t, p.calls[0].Attachment)
}

func TestSendWrapsProviderFailure(t *testing.T) {
	p := &recordingProvider{err: errors.New("connection reset")}

	res, err := newTestDispatcher(p).Send(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.True(t, domain.IsProvider(err))
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "connection reset")
	assert.Equal(t, 1, p.count(), "provider failures are not retried")
}

func TestDecodedSize(t *testing.T) {
	cases := map[string]int{"": 0, "a": 1, "ab": 2, "abc": 3, "abcd": 4}
	for raw, want := range cases {
		enc := base64.StdEncoding.EncodeToString([]byte(raw))
		assert.EqualValues(t, want, DecodedSize(enc), raw)
	}
	enc := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("x", 300)))
	assert.EqualValues(t, 300, DecodedSize("data:application/pdf;base64,"+enc))
}

// wrapMIME breaks encoded content into 76-char CRLF lines.
func wrapMIME(enc string) string {
	var b strings.Builder
	for len(enc) > 76 {
		b.WriteString(enc[:76] + "\r\n")
		enc = enc[76:]
	}
	b.WriteString(enc + "\r\n")
	return b.String()
}

func TestDecodedSizeIgnoresLineBreaks(t *testing.T) {
	raw := make([]byte, 1000)
	wrapped := wrapMIME(base64.StdEncoding.EncodeToString(raw))
	require.Contains(t, wrapped, "\r\n")
	assert.EqualValues(t, 1000, DecodedSize(wrapped))
	assert.EqualValues(t, 1000, DecodedSize("data:application/pdf;base64,"+wrapped))
	assert.EqualValues(t, 1000, DecodedSize(strings.ReplaceAll(wrapped, "\r\n", "\n\t ")))
}

func TestSendAcceptsWrappedAttachmentAtLimit(t *testing.T) {
	p := &recordingProvider{}
	d := NewDispatcher(Config{MaxAttachmentBytes: 1024, Now: fixedNow}, p)
	req := sampleRequest()
	enc := base64.StdEncoding.EncodeToString(make([]byte, 1024))
	req.AttachmentBase64 = wrapMIME(enc)

	_, err := d.Send(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 1, p.count())
	assert.Equal(t, enc, p.calls[0].Attachment.Base64)
}
