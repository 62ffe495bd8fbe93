package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"invoice-engine/internal/domain"
)

const sendgridHost = "https://api.sendgrid.com"

// SendGridProvider delivers through the SendGrid v3 mail/send API.
type SendGridProvider struct {
	APIKey string
	// Host overrides the API base URL (tests, EU region).
	Host string
}

func (p SendGridProvider) Name() string { return "sendgrid" }

func (p SendGridProvider) Deliver(ctx context.Context, msg Message) error {
	if strings.TrimSpace(p.APIKey) == "" {
		return domain.ProviderError{Provider: p.Name(), Err: fmt.Errorf("api key kosong")}
	}
	host := p.Host
	if host == "" {
		host = sendgridHost
	}

	req := sendgrid.GetRequest(p.APIKey, "/v3/mail/send", host)
	req.Method = rest.Post
	req.Body = mail.GetRequestBody(buildV3Mail(msg))

	resp, err := rest.SendWithContext(ctx, req)
	if err != nil {
		return domain.ProviderError{Provider: p.Name(), Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.ProviderError{Provider: p.Name(), Status: resp.StatusCode, Err: fmt.Errorf("%s", strings.TrimSpace(resp.Body))}
	}
	return nil
}

func buildV3Mail(msg Message) *mail.SGMailV3 {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(msg.FromName, msg.FromAddress))
	m.Subject = msg.Subject

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail(msg.ToName, msg.To))
	if msg.TemplateID != "" {
		m.SetTemplateID(msg.TemplateID)
		for k, v := range msg.Params {
			p.SetDynamicTemplateData(k, v)
		}
	} else {
		m.AddContent(mail.NewContent("text/plain", msg.Text), mail.NewContent("text/html", msg.HTML))
	}
	m.AddPersonalizations(p)

	if msg.Attachment != nil {
		a := mail.NewAttachment()
		a.SetContent(msg.Attachment.Base64)
		a.SetType(msg.Attachment.ContentType)
		a.SetFilename(msg.Attachment.Filename)
		a.SetDisposition("attachment")
		m.AddAttachment(a)
	}
	return m
}
