package sink

import (
	"fmt"

	"github.com/matzehuels/timespiral/pkg/color"
	"github.com/matzehuels/timespiral/pkg/dataset"
	"github.com/matzehuels/timespiral/pkg/layout"
	"github.com/matzehuels/timespiral/pkg/render/styles"
)

// fallbackFill colors bars when no resolver is attached.
const fallbackFill = "#41b6c4"

// SVGOption configures SVG rendering via [RenderSVG]. The same options
// drive [RenderPNG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	colors      *color.Resolver
	fills       []string
	ticks       bool
	rounded     bool
	axis        bool
	titleFormat styles.Format
	tickStyle   styles.TickStyle
	background  string
}

// WithColors fills bars using r.
func WithColors(r *color.Resolver) SVGOption { return func(s *svgRenderer) { s.colors = r } }

// WithFills fills bar i with fills[i], overriding any resolver. It is used
// when re-rendering a layout read back with [ReadJSON].
func WithFills(fills []string) SVGOption { return func(s *svgRenderer) { s.fills = fills } }

// WithTicks draws the month ticks and their labels.
func WithTicks() SVGOption { return func(s *svgRenderer) { s.ticks = true } }

// WithRounded rounds bar corners to half the bar width.
func WithRounded() SVGOption { return func(s *svgRenderer) { s.rounded = true } }

// WithAxis strokes the spiral the bars are laid out along.
func WithAxis() SVGOption { return func(s *svgRenderer) { s.axis = true } }

// WithTitleFormat sets the number format of bar titles.
func WithTitleFormat(f styles.Format) SVGOption { return func(s *svgRenderer) { s.titleFormat = f } }

// WithTickStyle sets tick color and label size.
func WithTickStyle(t styles.TickStyle) SVGOption { return func(s *svgRenderer) { s.tickStyle = t } }

// WithBackground paints the canvas before drawing.
func WithBackground(c string) SVGOption { return func(s *svgRenderer) { s.background = c } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	f, _ := styles.ParseFormat(styles.DefaultTitleFormat)
	r := svgRenderer{titleFormat: f, tickStyle: styles.DefaultTickStyle()}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *svgRenderer) fill(b layout.Bar) string {
	if b.Index < len(r.fills) && r.fills[b.Index] != "" {
		return r.fills[b.Index]
	}
	if r.colors != nil {
		return r.colors.Resolve(dataset.Observation{Date: b.Date, Value: b.Value})
	}
	return fallbackFill
}

// title is the tooltip text of a bar: the date as Y-M-D, unpadded, and the
// formatted value on a second line.
func (r *svgRenderer) title(b layout.Bar) string {
	return fmt.Sprintf("%d-%d-%d\n%s", b.Date.Year(), int(b.Date.Month()), b.Date.Day(), r.titleFormat.Apply(b.Value))
}

// tickGeometry holds the per-chart constants of tick drawing.
type tickGeometry struct {
	w, hw      float64
	offset     float64 // horizontal shift of line and label from the bar
	lineOffset float64 // extra line length when bars grow outward
	centered   bool
}

func newTickGeometry(l *layout.Layout) tickGeometry {
	w := l.BarWidth
	g := tickGeometry{w: w, hw: w / 2, centered: l.Centered}
	if l.Skinny {
		g.offset = w + w/2
	} else {
		g.offset = w / 2
	}
	if !l.Centered {
		g.lineOffset = l.LabelHeight
	}
	return g
}

// textDY is the baseline shift of tick labels in pixels.
func (g tickGeometry) textDY(fontSize float64) float64 {
	if g.centered {
		return g.w
	}
	return fontSize
}
