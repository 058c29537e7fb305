package layout

import (
	errs "github.com/matzehuels/timespiral/pkg/errors"
	"github.com/matzehuels/timespiral/pkg/spiral"
)

// Tick intervals.
const (
	IntervalMonthly = "monthly"
	IntervalAuto    = "auto"
)

// Defaults for Config.
const (
	DefaultWidth        = 800
	DefaultHeight       = 600
	DefaultInnerRadius  = 50
	DefaultLayers       = 5
	DefaultPrecision    = 32
	DefaultCenterWindow = 5
	DefaultTickCount    = 10
	DefaultMinBarSize   = 5
)

// MaxCanvasSize bounds Width and Height.
const MaxCanvasSize = 16384

// Config holds the geometry inputs of a layout pass.
type Config struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	InnerRadius float64 `json:"inner_radius"`
	// Layers is the number of half-turns the spiral winds through.
	Layers int `json:"layers"`
	// Precision is the number of spiral samples per half-turn.
	Precision int `json:"precision"`

	// Centered bars straddle the spiral instead of growing outward.
	Centered bool `json:"centered"`
	// Skinny bars take half the spacing between observations.
	Skinny bool `json:"skinny"`

	// Interval is IntervalMonthly or IntervalAuto.
	Interval string `json:"interval"`
	// TickCount is the approximate tick count for IntervalAuto.
	TickCount int `json:"tick_count"`
	// CenterWindow is the number of bars, starting at a month's first day,
	// whose tallest size pushes that month's label outward.
	CenterWindow int `json:"center_window"`
	// MinBarSize is the size of the smallest value's bar.
	MinBarSize float64 `json:"min_bar_size"`
	// LabelHeight is the height of one line of tick label text.
	LabelHeight float64 `json:"label_height"`
}

// DefaultConfig returns the stock 800×600 five-layer geometry with skinny,
// base-aligned bars and monthly ticks.
func DefaultConfig() Config {
	return Config{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		InnerRadius:  DefaultInnerRadius,
		Layers:       DefaultLayers,
		Precision:    DefaultPrecision,
		Skinny:       true,
		Interval:     IntervalMonthly,
		TickCount:    DefaultTickCount,
		CenterWindow: DefaultCenterWindow,
		MinBarSize:   DefaultMinBarSize,
	}
}

// withDefaults fills the zero-valued tuning knobs. Canvas and spiral
// dimensions are left alone so that Validate reports them.
func (c Config) withDefaults() Config {
	if c.Interval == "" {
		c.Interval = IntervalMonthly
	}
	if c.TickCount == 0 {
		c.TickCount = DefaultTickCount
	}
	if c.CenterWindow == 0 {
		c.CenterWindow = DefaultCenterWindow
	}
	if c.MinBarSize == 0 {
		c.MinBarSize = DefaultMinBarSize
	}
	return c
}

// Validate reports the first configuration problem, if any.
func (c Config) Validate() error {
	c = c.withDefaults()
	checks := []error{
		errs.ValidatePositive("width", c.Width),
		errs.ValidatePositive("height", c.Height),
		errs.ValidateAtMost("width", c.Width, MaxCanvasSize),
		errs.ValidateAtMost("height", c.Height, MaxCanvasSize),
		errs.ValidateNonNegative("inner radius", c.InnerRadius),
		errs.ValidatePositiveInt("layers", c.Layers),
		errs.ValidatePositiveInt("precision", c.Precision),
		errs.ValidatePositiveInt("tick count", c.TickCount),
		errs.ValidatePositiveInt("center window", c.CenterWindow),
		errs.ValidateNonNegative("minimum bar size", c.MinBarSize),
		errs.ValidateNonNegative("label height", c.LabelHeight),
		errs.ValidateOneOf("tick interval", c.Interval, IntervalMonthly, IntervalAuto),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}

	if c.Layers > spiral.MaxPoints || c.Precision > (spiral.MaxPoints-1)/(2*c.Layers) {
		return errs.New(errs.ErrCodeConfiguration,
			"precision %d with %d layers exceeds %d spiral points", c.Precision, c.Layers, spiral.MaxPoints)
	}
	if lh := c.LayerHeight(); !(lh > 0) {
		return errs.New(errs.ErrCodeConfiguration,
			"inner radius %g leaves no room for bars on a %gx%g canvas with %d layers (layer height %g)",
			c.InnerRadius, c.Width, c.Height, c.Layers, lh)
	}
	if c.MinBarSize > c.LayerHeight() {
		return errs.New(errs.ErrCodeConfiguration,
			"minimum bar size %g exceeds the layer height %g", c.MinBarSize, c.LayerHeight())
	}
	return nil
}

// LayerHeight is the radial room available to one winding's bars.
func (c Config) LayerHeight() float64 {
	return (c.available()-c.InnerRadius)/float64(c.Layers+1) - c.LabelHeight
}

// MaxRadius is the radius the spiral ends at.
func (c Config) MaxRadius() float64 {
	return c.available() - c.LayerHeight()
}

func (c Config) available() float64 {
	return min(c.Width, c.Height) / 2
}
