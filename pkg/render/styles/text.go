package styles

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	errs "github.com/matzehuels/timespiral/pkg/errors"
)

// CSS pixel conversions.
const (
	pxPerPt = 96.0 / 72.0
	pxPerEm = 16.0
)

// TextMeasurer reports the rendered size of a string.
type TextMeasurer interface {
	// Measure returns the width and height in pixels of text set at the
	// given font size in pixels.
	Measure(text string, sizePx float64) (w, h float64)
}

// BasicMetrics measures text in the basicfont 7×13 face, scaled linearly
// to the requested size.
type BasicMetrics struct{}

// Face is the bitmap face BasicMetrics measures, at its native size.
var Face font.Face = basicfont.Face7x13

// FaceHeight is the native line height of Face in pixels.
const FaceHeight = 13.0

// Measure implements TextMeasurer.
func (BasicMetrics) Measure(text string, sizePx float64) (w, h float64) {
	k := sizePx / FaceHeight
	adv := font.MeasureString(Face, text)
	return float64(adv) / 64 * k, FaceHeight * k
}

// CharHeight returns the height of the letter box used to reserve room for
// one line of tick labels.
func CharHeight(m TextMeasurer, sizePx float64) float64 {
	_, h := m.Measure("M", sizePx)
	return h
}

// ParseFontSize converts a CSS font-size token to pixels. Bare numbers and
// px are pixels; pt and em are converted at 96 dpi and a 16px em.
func ParseFontSize(token string) (float64, error) {
	s := strings.TrimSpace(strings.ToLower(token))
	unit := 1.0
	switch {
	case strings.HasSuffix(s, "px"):
		s = strings.TrimSuffix(s, "px")
	case strings.HasSuffix(s, "pt"):
		s, unit = strings.TrimSuffix(s, "pt"), pxPerPt
	case strings.HasSuffix(s, "em"):
		s, unit = strings.TrimSuffix(s, "em"), pxPerEm
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !(v > 0) {
		return 0, errs.New(errs.ErrCodeInvalidStyle, "invalid font size %q (use e.g. 8pt, 11px or 0.75em)", token)
	}
	return v * unit, nil
}

// EscapeXML escapes s for use in SVG text and attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
