package render

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"invoice-engine/internal/domain"
	"invoice-engine/internal/invoice"
	"invoice-engine/internal/metrics"
	"invoice-engine/internal/utils"
)

// FlowRenderer writes each DocumentPage straight onto its own PDF page. No
// raster step, so text stays selectable and there is nothing to slice.
type FlowRenderer struct {
	RequestID string
}

// FlowPDF renders doc and returns the PDF bytes.
func (f FlowRenderer) FlowPDF(doc invoice.ComposedDocument) (RenderedBinary, error) {
	if len(doc.Pages) == 0 {
		return RenderedBinary{}, domain.MissingDataError{Field: "pages"}
	}
	started := time.Now()

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Vertical).
		WithLeftMargin(10).
		WithTopMargin(12).
		WithRightMargin(10).
		WithBottomMargin(10).
		Build()
	m := maroto.New(cfg)

	for _, p := range doc.Pages {
		m.AddPages(page.New().Add(flowRows(p)...))
	}

	out, err := m.Generate()
	if err != nil {
		return RenderedBinary{}, domain.InternalError{Msg: "gagal membuat PDF", Err: err}
	}
	pdfBytes := out.GetBytes()

	metrics.DocumentsRendered.WithLabelValues("flow").Inc()
	metrics.PagesRendered.Add(float64(len(doc.Pages)))
	metrics.RenderDuration.Observe(time.Since(started).Seconds())
	utils.LogEvent(f.RequestID, "render", "flow_pdf",
		fmt.Sprintf("document_no=%s pages=%d bytes=%d", doc.DocumentNo, len(doc.Pages), len(pdfBytes)))

	return RenderedBinary{
		Base64: base64.StdEncoding.EncodeToString(pdfBytes),
		Pages:  len(doc.Pages),
		Size:   len(pdfBytes),
	}, nil
}

func flowRows(p invoice.DocumentPage) []core.Row {
	small := props.Text{Size: 8}
	bold := props.Text{Size: 8, Style: fontstyle.Bold}
	right := props.Text{Size: 8, Align: align.Right}
	boldRight := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}

	rows := []core.Row{
		row.New(7).Add(
			text.NewCol(8, p.Header.CompanyName, props.Text{Size: 12, Style: fontstyle.Bold}),
			text.NewCol(4, p.Header.Title, props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Right}),
		),
		row.New(5).Add(
			text.NewCol(8, p.Header.CompanyAddress, small),
			text.NewCol(4, p.Header.Subtitle, right),
		),
		row.New(5).Add(
			text.NewCol(12, companyContact(p.Header), small),
		),
		row.New(4).Add(line.NewCol(12)),
	}

	for i := 0; i < max(len(p.Info.Party), len(p.Info.Document)); i++ {
		var left, rightField invoice.Field
		if i < len(p.Info.Party) {
			left = p.Info.Party[i]
		}
		if i < len(p.Info.Document) {
			rightField = p.Info.Document[i]
		}
		rows = append(rows, row.New(5).Add(
			text.NewCol(2, left.Label, bold),
			text.NewCol(4, left.Value, small),
			text.NewCol(2, rightField.Label, bold),
			text.NewCol(4, rightField.Value, small),
		))
	}
	rows = append(rows, row.New(4).Add(line.NewCol(12)))

	rows = append(rows, row.New(6).Add(
		text.NewCol(1, "No", bold),
		text.NewCol(5, "Description", bold),
		text.NewCol(2, "Ticket", bold),
		text.NewCol(1, "Qty", boldRight),
		text.NewCol(1, "Unit Price", boldRight),
		text.NewCol(2, "Amount", boldRight),
	))
	for _, r := range p.Ledger {
		switch r.Kind {
		case invoice.RowSection:
			rows = append(rows, row.New(6).Add(text.NewCol(12, r.Description, bold)))
		case invoice.RowBlank:
			rows = append(rows, row.New(5))
		default:
			rows = append(rows, row.New(5).Add(
				text.NewCol(1, r.No, small),
				text.NewCol(5, r.Description, small),
				text.NewCol(2, r.Detail, small),
				text.NewCol(1, r.Quantity, right),
				text.NewCol(1, r.UnitPrice, right),
				text.NewCol(2, r.Amount, right),
			))
		}
	}
	rows = append(rows, row.New(4).Add(line.NewCol(12)))

	rows = append(rows,
		summaryRow("Subtotal", p.Summary.Subtotal, small, right),
		summaryRow(p.Summary.TaxLabel, p.Summary.TaxAmount, small, right),
		summaryRow("Grand Total", p.Summary.GrandTotal, bold, boldRight),
		row.New(6).Add(text.NewCol(12, "("+p.Summary.TotalWords+")", small)),
	)
	if p.Footer.Remark != "" {
		rows = append(rows, row.New(6).Add(text.NewCol(12, "Remark: "+p.Footer.Remark, small)))
	}

	rows = append(rows, row.New(20))
	sig := make([]core.Col, 0, 3)
	for i, caption := range p.Footer.Signatures {
		if i > 1 {
			break
		}
		sig = append(sig, col.New(4).Add(
			line.New(),
			text.New(caption, props.Text{Size: 8, Align: align.Center, Top: 2}),
		))
		if i == 0 {
			sig = append(sig, col.New(4))
		}
	}
	rows = append(rows, row.New(10).Add(sig...))
	rows = append(rows, row.New(6).Add(text.NewCol(12, p.Footer.PageLabel, right)))
	return rows
}

func summaryRow(label, value string, labelProps, valueProps props.Text) core.Row {
	return row.New(5).Add(
		col.New(6),
		text.NewCol(3, label, labelProps),
		text.NewCol(3, value, valueProps),
	)
}

func companyContact(h invoice.Header) string {
	out := ""
	if h.CompanyTaxID != "" {
		out = "Tax ID: " + h.CompanyTaxID
	}
	if h.CompanyPhone != "" {
		if out != "" {
			out += "  "
		}
		out += "Tel: " + h.CompanyPhone
	}
	return out
}
