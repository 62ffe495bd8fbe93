package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/phpdave11/gofpdf"

	"invoice-engine/internal/domain"
	"invoice-engine/internal/invoice"
	"invoice-engine/internal/metrics"
	"invoice-engine/internal/utils"
)

// DefaultAssetTimeout bounds the font/image wait before rasterizing.
const DefaultAssetTimeout = 3 * time.Second

// sliverMM ignores sub-millimetre leftovers from px->mm rounding.
const sliverMM = 0.5

// Paginator rasterizes a composed document and slices it into A4 pages.
type Paginator struct {
	Surfaces     SurfaceFactory
	AssetTimeout time.Duration
	RequestID    string
}

// ToPaginatedBinary renders doc on a fresh surface, places the image on page
// one, and for multi-page documents keeps adding pages that show the same
// image shifted up by one page height until nothing is left. A single-page
// document never gets a second page, even if the raster is a bit taller than
// one band.
func (p Paginator) ToPaginatedBinary(ctx context.Context, doc invoice.ComposedDocument) (RenderedBinary, error) {
	if p.Surfaces == nil {
		return RenderedBinary{}, domain.InternalError{Msg: "render surface factory belum diset"}
	}
	started := time.Now()

	surface, err := p.Surfaces()
	if err != nil {
		return RenderedBinary{}, domain.InternalError{Msg: "gagal membuat render surface", Err: err}
	}
	defer surface.Release()

	p.waitAssets(ctx, surface)

	img, err := surface.Rasterize(doc)
	if err != nil {
		return RenderedBinary{}, domain.InternalError{Msg: "gagal rasterize dokumen", Err: err}
	}

	pdfBytes, pages, err := slicePages(img, len(doc.Pages))
	if err != nil {
		return RenderedBinary{}, domain.InternalError{Msg: "gagal membuat PDF", Err: err}
	}

	metrics.DocumentsRendered.WithLabelValues("raster").Inc()
	metrics.PagesRendered.Add(float64(pages))
	metrics.RenderDuration.Observe(time.Since(started).Seconds())
	utils.LogEvent(p.RequestID, "render", "raster_pdf",
		fmt.Sprintf("document_no=%s logical_pages=%d pdf_pages=%d bytes=%d", doc.DocumentNo, len(doc.Pages), pages, len(pdfBytes)))

	return RenderedBinary{
		Base64: base64.StdEncoding.EncodeToString(pdfBytes),
		Pages:  pages,
		Size:   len(pdfBytes),
	}, nil
}

// waitAssets gives the surface a bounded time to load fonts and images.
// A timeout is logged and rendering continues with what loaded.
func (p Paginator) waitAssets(ctx context.Context, surface Surface) {
	timeout := p.AssetTimeout
	if timeout <= 0 {
		timeout = DefaultAssetTimeout
	}
	wctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := surface.WaitReady(wctx)
	if err == nil {
		return
	}
	if domain.IsRenderTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		metrics.AssetTimeouts.Inc()
	}
	utils.LogError(p.RequestID, "render", "wait_assets", err)
}

// slicePages places img on A4 pages. logicalPages decides whether the band
// loop runs at all.
func slicePages(img image.Image, logicalPages int) ([]byte, int, error) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, 0, errors.New("empty raster image")
	}

	var raw bytes.Buffer
	if err := png.Encode(&raw, img); err != nil {
		return nil, 0, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("document", opts, &raw)

	imgW := PageWidthMM
	imgH := float64(b.Dy()) * PageWidthMM / float64(b.Dx())
	heightLeft := imgH

	pdf.AddPage()
	pdf.ImageOptions("document", 0, 0, imgW, imgH, false, opts, 0, "")
	heightLeft -= PageHeightMM

	if logicalPages > 1 {
		for heightLeft > sliverMM {
			pdf.AddPage()
			pdf.ImageOptions("document", 0, heightLeft-imgH, imgW, imgH, false, opts, 0, "")
			heightLeft -= PageHeightMM
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, 0, err
	}
	pages := pdf.PageCount()

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, 0, err
	}
	return out.Bytes(), pages, nil
}
