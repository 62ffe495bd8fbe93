package mailer

import (
	"bytes"
	htmltemplate "html/template"
	"strconv"
	"strings"
	"text/template"
	"time"
)

// templateParams are the substitution values shared by the inline body and
// provider-side dynamic templates.
func templateParams(req SendRequest, now time.Time) map[string]string {
	m := req.Metadata
	return map[string]string{
		"to_name":         m.ToName,
		"to_email":        strings.TrimSpace(req.To),
		"document_no":     m.DocumentNo,
		"issue_date":      m.IssueDate,
		"due_date":        m.DueDate,
		"total":           m.Total,
		"passenger_count": strconv.Itoa(len(m.Passengers)),
		"passengers":      strings.Join(m.Passengers, ", "),
		"flights":         strings.Join(m.Flights, "\n"),
		"message":         strings.TrimSpace(req.Message),
		"sent_at":         now.Format("02/01/2006 15:04"),
	}
}

const textBody = `Dear {{.to_name}},
{{if .message}}
{{.message}}
{{end}}
Invoice No : {{.document_no}}
Date       : {{.issue_date}}
Due Date   : {{.due_date}}
Total      : {{.total}}
Passengers : {{.passengers}}
Flights    :
{{.flights}}

Sent at {{.sent_at}}
`

const htmlBody = `<p>Dear {{.to_name}},</p>
{{if .message}}<p>{{.message}}</p>{{end}}
<table>
<tr><td>Invoice No</td><td>{{.document_no}}</td></tr>
<tr><td>Date</td><td>{{.issue_date}}</td></tr>
<tr><td>Due Date</td><td>{{.due_date}}</td></tr>
<tr><td>Total</td><td>{{.total}}</td></tr>
<tr><td>Passengers</td><td>{{.passengers}}</td></tr>
<tr><td>Flights</td><td><pre>{{.flights}}</pre></td></tr>
</table>
<p><small>Sent at {{.sent_at}}</small></p>
`

var (
	textTmpl = template.Must(template.New("text").Parse(textBody))
	htmlTmpl = htmltemplate.Must(htmltemplate.New("html").Parse(htmlBody))
)

func renderBody(params map[string]string) (string, string, error) {
	var text, html bytes.Buffer
	if err := textTmpl.Execute(&text, params); err != nil {
		return "", "", err
	}
	if err := htmlTmpl.Execute(&html, params); err != nil {
		return "", "", err
	}
	return text.String(), html.String(), nil
}
