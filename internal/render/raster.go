package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"invoice-engine/internal/invoice"
)

// pixel layout of one page; all values at DefaultRasterWidth
const (
	margin     = 40
	lineH      = 18
	rowH       = 20
	logoSize   = 64
	headerH    = 96
	footerH    = 150
	summaryH   = 4*lineH + 24
	sectionGap = 12
)

var (
	inkColor     = color.RGBA{0x1f, 0x1f, 0x1f, 0xff}
	ruleColor    = color.RGBA{0x9e, 0x9e, 0x9e, 0xff}
	sectionColor = color.RGBA{0xee, 0xee, 0xee, 0xff}
	headColor    = color.RGBA{0xd9, 0xd9, 0xd9, 0xff}
)

// RasterConfig configures the raster surface.
type RasterConfig struct {
	Width    int
	LogoRef  string
	StampRef string
}

// RasterSurface draws invoice pages onto an in-memory RGBA image.
type RasterSurface struct {
	cfg      RasterConfig
	loader   AssetLoader
	assets   *assetSet
	face     font.Face
	released bool
}

// NewRasterSurface returns a surface that loads its letterhead images with
// loader. loader may be nil when no images are configured.
func NewRasterSurface(cfg RasterConfig, loader AssetLoader) *RasterSurface {
	if cfg.Width <= 0 {
		cfg.Width = DefaultRasterWidth
	}
	return &RasterSurface{
		cfg:    cfg,
		loader: loader,
		assets: newAssetSet(map[string]string{"logo": cfg.LogoRef, "stamp": cfg.StampRef}),
		face:   basicfont.Face7x13,
	}
}

// RasterSurfaceFactory builds a new RasterSurface per generation call.
func RasterSurfaceFactory(cfg RasterConfig, loader AssetLoader) SurfaceFactory {
	return func() (Surface, error) {
		return NewRasterSurface(cfg, loader), nil
	}
}

// WaitReady loads letterhead images. The bitmap font is compiled in and is
// always ready.
func (s *RasterSurface) WaitReady(ctx context.Context) error {
	return s.assets.wait(ctx, s.loader)
}

// Release drops loaded images. The surface cannot be used afterwards.
func (s *RasterSurface) Release() {
	s.released = true
	s.assets.clear()
}

// Rasterize draws every page top to bottom. Each page takes at least one A4
// band so explicit page breaks land on band boundaries.
func (s *RasterSurface) Rasterize(doc invoice.ComposedDocument) (image.Image, error) {
	if s.released {
		return nil, errors.New("raster surface already released")
	}
	if len(doc.Pages) == 0 {
		return nil, errors.New("document has no pages")
	}

	band := BandHeightPx(s.cfg.Width)
	heights := make([]int, len(doc.Pages))
	total := 0
	for i, p := range doc.Pages {
		heights[i] = max(pageContentHeight(p), band)
		total += heights[i]
	}

	img := image.NewRGBA(image.Rect(0, 0, s.cfg.Width, total))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	c := canvas{img: img, face: s.face, width: s.cfg.Width}
	top := 0
	for i, p := range doc.Pages {
		s.drawPage(c, p, top, heights[i])
		top += heights[i]
	}
	return img, nil
}

func pageContentHeight(p invoice.DocumentPage) int {
	infoRows := max(len(p.Info.Party), len(p.Info.Document))
	return margin + headerH +
		infoRows*lineH + 2*sectionGap +
		(len(p.Ledger)+1)*rowH + sectionGap +
		summaryH + footerH + margin
}

func (s *RasterSurface) drawPage(c canvas, p invoice.DocumentPage, top, height int) {
	y := top + margin
	y = s.drawHeader(c, p.Header, y)
	y = drawInfo(c, p.Info, y)
	y = drawLedger(c, p.Ledger, y)
	drawSummary(c, p.Summary, y)
	s.drawFooter(c, p.Footer, top+height-margin-footerH)
}

func (s *RasterSurface) drawHeader(c canvas, h invoice.Header, y int) int {
	x := margin
	if logo := s.assets.get("logo"); logo != nil {
		c.drawImage(logo, image.Rect(margin, y, margin+logoSize, y+logoSize))
		x += logoSize + 12
	}
	c.bold(x, y+12, h.CompanyName)
	c.text(x, y+12+lineH, h.CompanyAddress)
	if h.CompanyTaxID != "" {
		c.text(x, y+12+2*lineH, "Tax ID: "+h.CompanyTaxID)
	}
	if h.CompanyPhone != "" {
		c.text(x, y+12+3*lineH, "Tel: "+h.CompanyPhone)
	}

	right := c.width - margin
	c.boldRight(right, y+12, h.Title)
	c.textRight(right, y+12+lineH, h.Subtitle)

	y += headerH - 8
	c.hline(margin, right, y, ruleColor)
	return y + 8
}

func drawInfo(c canvas, info invoice.InfoBlock, y int) int {
	y += sectionGap
	mid := c.width / 2
	colW := mid - margin - 10
	for i := 0; i < max(len(info.Party), len(info.Document)); i++ {
		base := y + i*lineH + 12
		if i < len(info.Party) {
			c.text(margin, base, c.fit(fieldText(info.Party[i]), colW))
		}
		if i < len(info.Document) {
			c.text(mid+10, base, c.fit(fieldText(info.Document[i]), colW))
		}
	}
	return y + max(len(info.Party), len(info.Document))*lineH + sectionGap
}

func fieldText(f invoice.Field) string {
	if f.Label == "" {
		return "           " + f.Value
	}
	return padRight(f.Label, 10) + ": " + f.Value
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

// column x positions of the ledger table
type ledgerCols struct {
	no, desc, detail, qty, unit, amount int
}

func columns(width int) ledgerCols {
	right := width - margin - 4
	return ledgerCols{
		no:     margin + 4,
		desc:   margin + 36,
		detail: margin + 300,
		qty:    right - 250,
		unit:   right - 130,
		amount: right,
	}
}

func drawLedger(c canvas, rows []invoice.LedgerRow, y int) int {
	cols := columns(c.width)
	right := c.width - margin

	c.fill(image.Rect(margin, y, right, y+rowH), headColor)
	base := y + 14
	c.bold(cols.no, base, "No")
	c.bold(cols.desc, base, "Description")
	c.bold(cols.detail, base, "Ticket")
	c.boldRight(cols.qty, base, "Qty")
	c.boldRight(cols.unit, base, "Unit Price")
	c.boldRight(cols.amount, base, "Amount")
	y += rowH

	for _, r := range rows {
		base = y + 14
		switch r.Kind {
		case invoice.RowSection:
			c.fill(image.Rect(margin, y, right, y+rowH), sectionColor)
			c.bold(cols.desc, base, r.Description)
		case invoice.RowItem:
			c.text(cols.no, base, r.No)
			c.text(cols.desc, base, c.fit(r.Description, cols.detail-cols.desc-8))
			c.text(cols.detail, base, c.fit(r.Detail, cols.qty-cols.detail-40))
			c.textRight(cols.qty, base, r.Quantity)
			c.textRight(cols.unit, base, r.UnitPrice)
			c.textRight(cols.amount, base, r.Amount)
		}
		y += rowH
		c.hline(margin, right, y, sectionColor)
	}
	c.hline(margin, right, y, ruleColor)
	return y + sectionGap
}

func drawSummary(c canvas, s invoice.Summary, y int) {
	right := c.width - margin - 4
	label := right - 230
	lines := []struct{ k, v string }{
		{"Subtotal", s.Subtotal},
		{s.TaxLabel, s.TaxAmount},
		{"Grand Total", s.GrandTotal},
	}
	for i, l := range lines {
		base := y + 12 + i*lineH
		if i == len(lines)-1 {
			c.bold(label, base, l.k)
			c.boldRight(right, base, l.v)
			continue
		}
		c.text(label, base, l.k)
		c.textRight(right, base, l.v)
	}
	c.text(margin, y+12+3*lineH, c.fit("("+s.TotalWords+")", c.width-2*margin))
}

func (s *RasterSurface) drawFooter(c canvas, f invoice.Footer, y int) {
	right := c.width - margin
	if f.Remark != "" {
		c.text(margin, y+12, c.fit("Remark: "+f.Remark, right-margin))
	}

	lineY := y + 100
	sigW := 200
	if stamp := s.assets.get("stamp"); stamp != nil && len(f.Signatures) > 1 {
		c.drawImage(stamp, image.Rect(right-sigW+60, lineY-70, right-60, lineY-6))
	}
	for i, caption := range f.Signatures {
		x0 := margin
		if i > 0 {
			x0 = right - sigW
		}
		c.hline(x0, x0+sigW, lineY, inkColor)
		c.text(x0+(sigW-c.measure(caption))/2, lineY+14, caption)
		if i == 1 {
			break
		}
	}
	c.textRight(right, y+footerH-4, f.PageLabel)
}

type canvas struct {
	img   *image.RGBA
	face  font.Face
	width int
}

func (c canvas) measure(s string) int {
	return font.MeasureString(c.face, s).Ceil()
}

func (c canvas) text(x, baseline int, s string) {
	if s == "" {
		return
	}
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(inkColor),
		Face: c.face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(s)
}

// bold fakes a bold weight by overdrawing one pixel to the right.
func (c canvas) bold(x, baseline int, s string) {
	c.text(x, baseline, s)
	c.text(x+1, baseline, s)
}

func (c canvas) textRight(right, baseline int, s string) {
	c.text(right-c.measure(s), baseline, s)
}

func (c canvas) boldRight(right, baseline int, s string) {
	c.bold(right-c.measure(s)-1, baseline, s)
}

func (c canvas) hline(x0, x1, y int, col color.Color) {
	draw.Draw(c.img, image.Rect(x0, y, x1, y+1), image.NewUniform(col), image.Point{}, draw.Src)
}

func (c canvas) fill(r image.Rectangle, col color.Color) {
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

// drawImage scales src into box keeping its aspect ratio.
func (c canvas) drawImage(src image.Image, box image.Rectangle) {
	sb := src.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 {
		return
	}
	w, h := box.Dx(), box.Dy()
	if sb.Dx()*h > sb.Dy()*w {
		h = sb.Dy() * w / sb.Dx()
	} else {
		w = sb.Dx() * h / sb.Dy()
	}
	dst := image.Rect(box.Min.X, box.Min.Y, box.Min.X+w, box.Min.Y+h)
	xdraw.CatmullRom.Scale(c.img, dst, src, sb, xdraw.Over, nil)
}

// fit shortens s until it is at most maxPx wide.
func (c canvas) fit(s string, maxPx int) string {
	if c.measure(s) <= maxPx {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && c.measure(string(r)+"..") > maxPx {
		r = r[:len(r)-1]
	}
	return string(r) + ".."
}
