package sink

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/timespiral/pkg/layout"
	"github.com/matzehuels/timespiral/pkg/render/styles"
)

// RenderSVG renders the layout as a standalone SVG document.
func RenderSVG(l *layout.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(l.Width), num(l.Height), num(l.Width), num(l.Height))
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", styles.EscapeXML(r.background))
	}
	fmt.Fprintf(&buf, `  <g transform="translate(%s,%s)">`+"\n", num(l.Width/2), num(l.Height/2))

	renderAxis(&buf, l, r.axis)
	renderBars(&buf, l, &r)
	if r.ticks {
		renderTicks(&buf, l, &r)
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func renderAxis(buf *bytes.Buffer, l *layout.Layout, visible bool) {
	if l.Path == nil {
		return
	}
	stroke := "none"
	if visible {
		stroke = "#ccc"
	}
	buf.WriteString(`    <path id="axis" fill="none" stroke="` + stroke + `" stroke-width="0.5" d="`)
	for i, p := range l.Path.Points() {
		if i == 0 {
			buf.WriteByte('M')
		} else {
			buf.WriteByte('L')
		}
		buf.WriteString(num(p.X))
		buf.WriteByte(',')
		buf.WriteString(num(p.Y))
	}
	buf.WriteString("\"/>\n")
}

func renderBars(buf *bytes.Buffer, l *layout.Layout, r *svgRenderer) {
	w := l.BarWidth
	var rounded string
	if r.rounded {
		rounded = fmt.Sprintf(` rx="%s" ry="%s"`, num(w/2), num(w/2))
	}
	for _, b := range l.Bars {
		fmt.Fprintf(buf, `    <rect class="bar" fill="%s" x="%s" y="%s" width="%s" height="%s"%s transform="rotate(%s,%s,%s)"><title>%s</title></rect>`+"\n",
			styles.EscapeXML(r.fill(b)), num(b.X), num(b.Y), num(w), num(b.Size), rounded,
			num(b.Angle), num(b.X), num(b.Y0), styles.EscapeXML(r.title(b)))
	}
}

func renderTicks(buf *bytes.Buffer, l *layout.Layout, r *svgRenderer) {
	g := newTickGeometry(l)
	color := styles.EscapeXML(r.tickStyle.Color)
	size := num(r.tickStyle.FontSize) + "px"
	dy := num(g.textDY(r.tickStyle.FontSize))

	for _, t := range l.Ticks {
		fmt.Fprintf(buf, `    <g class="tick" fill="%s" font-size="%s">`+"\n", color, size)
		fmt.Fprintf(buf, `      <line stroke="%s" stroke-width="1" stroke-dasharray="1,1" x1="%s" y1="%s" x2="%s" y2="%s" transform="rotate(%s,%s,%s)"/>`+"\n",
			color,
			num(t.X+g.offset), num(t.Y0+g.hw),
			num(t.X+g.offset), num(t.Y0-t.Offset-g.lineOffset),
			num(t.Angle), num(t.X), num(t.Y0))
		fmt.Fprintf(buf, `      <text dy="%s" x="%s" y="%s" transform="rotate(%s,%s,%s)">%s</text>`+"\n",
			dy, num(t.X-g.offset+3), num(t.Y0+t.Offset),
			num(t.Angle+180), num(t.X), num(t.Y0),
			styles.EscapeXML(t.Label))
		buf.WriteString("    </g>\n")
	}
}

// num formats a coordinate with at most three decimals.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}
