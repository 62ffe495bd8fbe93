// Package render turns a composed invoice into a printable PDF. The default
// path draws the document onto an off-screen raster surface and slices the
// image into A4 bands; FlowPDF writes the same pages natively.
package render

import (
	"context"
	"image"

	"invoice-engine/internal/invoice"
)

const (
	// A4 in millimetres, the unit used for the PDF.
	PageWidthMM  = 210.0
	PageHeightMM = 297.0

	// DefaultRasterWidth is A4 width in pixels at 96 dpi.
	DefaultRasterWidth = 794
)

// Surface is an off-screen drawing target scoped to one generation call.
// Release must be called on every exit path.
type Surface interface {
	// WaitReady blocks until fonts and images are loaded or ctx ends. A
	// non-nil error is informational; Rasterize still works with what loaded.
	WaitReady(ctx context.Context) error
	// Rasterize draws all pages of doc onto one tall image.
	Rasterize(doc invoice.ComposedDocument) (image.Image, error)
	Release()
}

// SurfaceFactory creates a fresh Surface per call.
type SurfaceFactory func() (Surface, error)

// RenderedBinary is the finished PDF. The caller owns it.
type RenderedBinary struct {
	Base64 string `json:"base64"`
	Pages  int    `json:"pages"`
	Size   int    `json:"size"`
}

// BandHeightPx is the pixel height of one A4 band for an image width.
func BandHeightPx(width int) int {
	return int(float64(width)*PageHeightMM/PageWidthMM + 0.5)
}
