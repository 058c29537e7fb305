package layout

import (
	"time"

	"github.com/matzehuels/timespiral/pkg/dataset"
	"github.com/matzehuels/timespiral/pkg/scale"
	"github.com/matzehuels/timespiral/pkg/spiral"
)

// Bar is one observation placed on the spiral. The rect is drawn at (X, Y)
// with the layout's BarWidth as width and Size as height, then rotated by
// Angle degrees about (X, Y0).
type Bar struct {
	Index     int       `json:"index"`
	Date      time.Time `json:"date"`
	Value     float64   `json:"value"`
	ArcLength float64   `json:"arc_length"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Y0        float64   `json:"y0"`
	Size      float64   `json:"size"`
	Angle     float64   `json:"angle"`
	// Offset is the label offset of the tick drawn at this bar, if any.
	Offset float64 `json:"offset"`
}

// TickOffset records the tallest bar near the start of a month when bars
// are centered.
type TickOffset struct {
	Index     int     `json:"index"`
	ArcLength float64 `json:"arc_length"`
	MaxSize   float64 `json:"max_size"`
}

// Tick is a labelled calendar boundary drawn alongside its bar.
type Tick struct {
	Date      time.Time `json:"date"`
	BarIndex  int       `json:"bar_index"`
	ArcLength float64   `json:"arc_length"`
	X         float64   `json:"x"`
	Y0        float64   `json:"y0"`
	Angle     float64   `json:"angle"`
	Offset    float64   `json:"offset"`
	Label     string    `json:"label"`
}

// Layout is the result of one layout pass.
type Layout struct {
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	Centered    bool            `json:"centered"`
	Skinny      bool            `json:"skinny"`
	Geometry    spiral.Geometry `json:"geometry"`
	LayerHeight float64         `json:"layer_height"`
	MaxRadius   float64         `json:"max_radius"`
	BarWidth    float64         `json:"bar_width"`
	LabelHeight float64         `json:"label_height"`
	Bars        []Bar           `json:"bars"`
	Offsets     []TickOffset    `json:"offsets,omitempty"`
	Ticks       []Tick          `json:"ticks"`

	// Path and Scales are kept for renderers; they are not serialised.
	Path   *spiral.Path `json:"-"`
	Scales scale.Set    `json:"-"`
}

// Compute lays out ds along a spiral described by cfg.
//
// The dataset must be non-empty with finite values and is trusted to be
// sorted by date. Every problem is reported before any geometry is built,
// so a failed pass returns no partial layout.
func Compute(ds *dataset.Dataset, cfg Config) (*Layout, error) {
	if err := ds.Validate(false); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	layerHeight := cfg.LayerHeight()
	maxRadius := cfg.MaxRadius()
	path, err := spiral.New(cfg.InnerRadius, maxRadius, cfg.Layers, cfg.Precision)
	if err != nil {
		return nil, err
	}

	lo, hi := ds.Extent()
	scales := scale.NewSet(ds.First().Date, ds.Last().Date, lo, hi, path.Length(), cfg.MinBarSize, layerHeight)

	lay := &Layout{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Centered:    cfg.Centered,
		Skinny:      cfg.Skinny,
		Geometry:    path.Geometry(),
		LayerHeight: layerHeight,
		MaxRadius:   maxRadius,
		BarWidth:    barWidth(path.Length(), ds.Len(), cfg.Skinny),
		LabelHeight: cfg.LabelHeight,
		Path:        path,
		Scales:      scales,
	}
	lay.Bars = placeBars(ds, path, scales, lay.BarWidth, cfg.Centered)
	if cfg.Centered {
		lay.Offsets = centerOffsets(lay.Bars, cfg.CenterWindow)
	}
	lay.Ticks = placeTicks(lay, ds, cfg)
	return lay, nil
}

// TickAt returns the tick drawn at the given bar, if any.
func (l *Layout) TickAt(barIndex int) (Tick, bool) {
	for _, t := range l.Ticks {
		if t.BarIndex == barIndex {
			return t, true
		}
	}
	return Tick{}, false
}
