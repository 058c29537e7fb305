package sink

import (
	"encoding/json"

	errs "github.com/matzehuels/timespiral/pkg/errors"
	"github.com/matzehuels/timespiral/pkg/layout"
	"github.com/matzehuels/timespiral/pkg/spiral"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	svgOpts []SVGOption
	options any
}

// WithJSONSVGOptions resolves bar fills and titles with the given drawing
// options, so the export matches the SVG of the same options.
func WithJSONSVGOptions(opts ...SVGOption) JSONOption {
	return func(r *jsonRenderer) { r.svgOpts = opts }
}

// WithJSONOptions records the options the layout was computed from, for
// documentation or round-trip rendering.
func WithJSONOptions(v any) JSONOption { return func(r *jsonRenderer) { r.options = v } }

type jsonOutput struct {
	Width       float64             `json:"width"`
	Height      float64             `json:"height"`
	Centered    bool                `json:"centered"`
	Skinny      bool                `json:"skinny"`
	Geometry    spiral.Geometry     `json:"geometry"`
	LayerHeight float64             `json:"layer_height"`
	MaxRadius   float64             `json:"max_radius"`
	BarWidth    float64             `json:"bar_width"`
	LabelHeight float64             `json:"label_height"`
	Bars        []jsonBar           `json:"bars"`
	Offsets     []layout.TickOffset `json:"offsets,omitempty"`
	Ticks       []layout.Tick       `json:"ticks"`
	Options     any                 `json:"options,omitempty"`
}

type jsonBar struct {
	layout.Bar
	Fill  string `json:"fill"`
	Title string `json:"title"`
}

// RenderJSON exports the layout as a pretty-printed JSON document. Bars
// carry their resolved fill color and title text, so the export can be
// drawn again by [ReadJSON] and [RenderSVG] without the dataset.
func RenderJSON(l *layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	s := newSVGRenderer(r.svgOpts...)

	bars := make([]jsonBar, len(l.Bars))
	for i, b := range l.Bars {
		bars[i] = jsonBar{Bar: b, Fill: s.fill(b), Title: s.title(b)}
	}
	ticks := l.Ticks
	if ticks == nil {
		ticks = []layout.Tick{}
	}

	out := jsonOutput{
		Width:       l.Width,
		Height:      l.Height,
		Centered:    l.Centered,
		Skinny:      l.Skinny,
		Geometry:    l.Geometry,
		LayerHeight: l.LayerHeight,
		MaxRadius:   l.MaxRadius,
		BarWidth:    l.BarWidth,
		LabelHeight: l.LabelHeight,
		Bars:        bars,
		Offsets:     l.Offsets,
		Ticks:       ticks,
		Options:     r.options,
	}
	return json.MarshalIndent(out, "", "  ")
}

// ReadJSON parses a document written by RenderJSON. It returns the layout,
// with its spiral rebuilt from the recorded geometry, and the bar fills in
// bar order for use with [WithFills].
func ReadJSON(data []byte) (*layout.Layout, []string, error) {
	var in jsonOutput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode layout json")
	}

	l := &layout.Layout{
		Width:       in.Width,
		Height:      in.Height,
		Centered:    in.Centered,
		Skinny:      in.Skinny,
		Geometry:    in.Geometry,
		LayerHeight: in.LayerHeight,
		MaxRadius:   in.MaxRadius,
		BarWidth:    in.BarWidth,
		LabelHeight: in.LabelHeight,
		Bars:        make([]layout.Bar, len(in.Bars)),
		Offsets:     in.Offsets,
		Ticks:       in.Ticks,
	}
	fills := make([]string, len(in.Bars))
	for i, b := range in.Bars {
		l.Bars[i] = b.Bar
		fills[i] = b.Fill
	}

	g := in.Geometry
	if g.Layers > 0 && g.Precision > 0 {
		path, err := spiral.New(g.InnerRadius, g.OuterRadius, g.Layers, g.Precision)
		if err != nil {
			return nil, nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "layout json geometry")
		}
		l.Path = path
	}
	return l, fills, nil
}
