package sink

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	errs "github.com/matzehuels/timespiral/pkg/errors"
	"github.com/matzehuels/timespiral/pkg/layout"
	"github.com/matzehuels/timespiral/pkg/render"
	"github.com/matzehuels/timespiral/pkg/render/styles"
)

// MaxPNGPixels bounds the pixel count of a rendered PNG.
const MaxPNGPixels = 1 << 26

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
	rsvg    bool
}

// WithPNGSVGOptions passes drawing options through; they mean the same as
// for RenderSVG.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithRSVG rasterises the SVG output with rsvg-convert instead of drawing
// natively. Text then uses system fonts.
func WithRSVG() PNGOption {
	return func(r *pngRenderer) { r.rsvg = true }
}

// RenderPNG renders the layout as PNG.
func RenderPNG(l *layout.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if !(r.scale > 0) {
		return nil, errs.New(errs.ErrCodeConfiguration, "png scale must be positive, got %v", r.scale)
	}
	if px := math.Ceil(l.Width*r.scale) * math.Ceil(l.Height*r.scale); !(px <= MaxPNGPixels) {
		return nil, errs.New(errs.ErrCodeConfiguration,
			"png of %gx%g at scale %g exceeds %d pixels", l.Width, l.Height, r.scale, MaxPNGPixels)
	}
	if r.rsvg {
		return render.ToPNG(RenderSVG(l, r.svgOpts...), r.scale)
	}

	s := newSVGRenderer(r.svgOpts...)
	w, h := int(math.Ceil(l.Width*r.scale)), int(math.Ceil(l.Height*r.scale))
	dc := gg.NewContext(w, h)
	if s.background != "" {
		dc.SetColor(parseColor(s.background, "#ffffff"))
		dc.Clear()
	}
	dc.Scale(r.scale, r.scale)
	dc.Translate(l.Width/2, l.Height/2)

	if s.axis {
		drawAxis(dc, l)
	}
	drawBars(dc, l, &s)
	if s.ticks {
		drawTicks(dc, l, &s)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func drawAxis(dc *gg.Context, l *layout.Layout) {
	if l.Path == nil {
		return
	}
	for i, p := range l.Path.Points() {
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
		} else {
			dc.LineTo(p.X, p.Y)
		}
	}
	dc.SetColor(parseColor("#ccc", "#ccc"))
	dc.SetLineWidth(0.5)
	dc.Stroke()
}

func drawBars(dc *gg.Context, l *layout.Layout, s *svgRenderer) {
	w := l.BarWidth
	for _, b := range l.Bars {
		dc.Push()
		dc.RotateAbout(gg.Radians(b.Angle), b.X, b.Y0)
		if s.rounded {
			dc.DrawRoundedRectangle(b.X, b.Y, w, b.Size, min(w, b.Size)/2)
		} else {
			dc.DrawRectangle(b.X, b.Y, w, b.Size)
		}
		dc.SetColor(parseColor(s.fill(b), fallbackFill))
		dc.Fill()
		dc.Pop()
	}
}

func drawTicks(dc *gg.Context, l *layout.Layout, s *svgRenderer) {
	g := newTickGeometry(l)
	c := parseColor(s.tickStyle.Color, styles.DefaultTickColor)
	k := s.tickStyle.FontSize / styles.FaceHeight
	dy := g.textDY(s.tickStyle.FontSize)

	dc.SetFontFace(styles.Face)
	for _, t := range l.Ticks {
		dc.Push()
		dc.RotateAbout(gg.Radians(t.Angle), t.X, t.Y0)
		dc.SetColor(c)
		dc.SetLineWidth(1)
		dc.SetDash(1, 1)
		dc.DrawLine(t.X+g.offset, t.Y0+g.hw, t.X+g.offset, t.Y0-t.Offset-g.lineOffset)
		dc.Stroke()
		dc.SetDash()
		dc.Pop()

		dc.Push()
		dc.RotateAbout(gg.Radians(t.Angle+180), t.X, t.Y0)
		dc.Translate(t.X-g.offset+3, t.Y0+t.Offset+dy)
		dc.Scale(k, k)
		dc.SetColor(c)
		dc.DrawString(t.Label, 0, 0)
		dc.Pop()
	}
}

// parseColor reads a hex color, falling back to def for anything else
// (CSS names are only understood by the SVG output).
func parseColor(s, def string) colorful.Color {
	if c, err := colorful.Hex(s); err == nil {
		return c
	}
	c, _ := colorful.Hex(def)
	return c
}
