// Package pipeline provides the render pass of timespiral.
//
// This package implements the complete import → layout → render pipeline
// shared by the CLI and the HTTP API, so that both entry points apply the
// same defaults, validation and caching.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Import: Load dated observations from a CSV, JSON or Parquet file
//  2. Layout: Place one bar per observation along the spiral and derive ticks
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, Parquet)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Formats = []string{"svg", "png"}
//	ds, err := runner.Import(ctx, "sales.csv", opts.Fields)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, ds, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/timespiral/pkg/cache"
	"github.com/matzehuels/timespiral/pkg/color"
	"github.com/matzehuels/timespiral/pkg/dataset"
	errs "github.com/matzehuels/timespiral/pkg/errors"
	"github.com/matzehuels/timespiral/pkg/layout"
	"github.com/matzehuels/timespiral/pkg/render/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 600.0

	// DefaultInnerRadius is the radius the spiral starts at.
	DefaultInnerRadius = 50.0

	// DefaultLayers is the default number of spiral half-turns.
	DefaultLayers = 5

	// DefaultPrecision is the default number of samples per half-turn.
	DefaultPrecision = 32

	// DefaultScale is the PNG pixel density.
	DefaultScale = 2.0

	// MaxScale bounds the PNG pixel density.
	MaxScale = 16.0
)

// Style values.
const (
	AlignBase   = "base"
	AlignCenter = "center"

	BarWidthSkinny = "skinny"
	BarWidthWide   = "wide"
)

// Format constants for output formats.
const (
	FormatSVG     = "svg"
	FormatPNG     = "png"
	FormatPDF     = "pdf"
	FormatJSON    = "json"
	FormatParquet = "parquet"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:     true,
	FormatPNG:     true,
	FormatPDF:     true,
	FormatJSON:    true,
	FormatParquet: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Style controls how the chart is drawn.
type Style struct {
	Align        string `json:"align,omitempty" toml:"align"`         // base or center
	BarWidth     string `json:"bar_width,omitempty" toml:"bar_width"` // skinny or wide
	Rounded      bool   `json:"rounded" toml:"rounded"`
	ColorBy      string `json:"color_by,omitempty" toml:"color_by"`
	TickInterval string `json:"tick_interval,omitempty" toml:"tick_interval"`
	ShowTicks    bool   `json:"show_ticks" toml:"show_ticks"`
	TickColor    string `json:"tick_color,omitempty" toml:"tick_color"`
	TickSize     string `json:"tick_size,omitempty" toml:"tick_size"`
	TitleFormat  string `json:"title_format,omitempty" toml:"title_format"`
	ReverseColor bool   `json:"reverse_color,omitempty" toml:"reverse_color"`
	ShowAxis     bool   `json:"show_axis,omitempty" toml:"show_axis"`
	Background   string `json:"background,omitempty" toml:"background"`
}

// Options contains all configuration for the render pipeline.
// It decodes from both JSON (API requests) and TOML (config files).
type Options struct {
	// Layout options
	Width        float64        `json:"width,omitempty" toml:"width"`
	Height       float64        `json:"height,omitempty" toml:"height"`
	InnerRadius  float64        `json:"inner_radius,omitempty" toml:"inner_radius"`
	Layers       int            `json:"layers,omitempty" toml:"layers"`
	Precision    int            `json:"precision,omitempty" toml:"precision"`
	CenterWindow int            `json:"center_window,omitempty" toml:"center_window"`
	TickCount    int            `json:"tick_count,omitempty" toml:"tick_count"`
	Fields       dataset.Fields `json:"field" toml:"field"`
	Strict       bool           `json:"strict,omitempty" toml:"strict"` // reject unsorted dates

	// Render options
	Style   Style    `json:"style" toml:"style"`
	Palette string   `json:"palette,omitempty" toml:"palette"`
	Stops   []string `json:"stops,omitempty" toml:"stops"` // custom palette, overrides Palette
	Scheme  string   `json:"scheme,omitempty" toml:"scheme"`
	Formats []string `json:"formats,omitempty" toml:"formats"`
	Scale   float64  `json:"scale,omitempty" toml:"scale"` // PNG pixel density
	Refresh bool     `json:"refresh,omitempty" toml:"-"`   // bypass cached results

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// DefaultOptions returns the stock chart: 800×600, five layers, skinny
// rounded base-aligned bars colored by value with YlGnBu, and grey 8pt
// monthly ticks.
func DefaultOptions() Options {
	return Options{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		InnerRadius:  DefaultInnerRadius,
		Layers:       DefaultLayers,
		Precision:    DefaultPrecision,
		CenterWindow: layout.DefaultCenterWindow,
		TickCount:    layout.DefaultTickCount,
		Fields:       dataset.DefaultFields(),
		Style: Style{
			Align:        AlignBase,
			BarWidth:     BarWidthSkinny,
			Rounded:      true,
			ColorBy:      color.ByValue,
			TickInterval: layout.IntervalMonthly,
			ShowTicks:    true,
			TickColor:    styles.DefaultTickColor,
			TickSize:     styles.DefaultTickSize,
			TitleFormat:  styles.DefaultTitleFormat,
		},
		Palette: color.DefaultPalette,
		Scheme:  color.DefaultScheme,
		Formats: []string{FormatSVG},
		Scale:   DefaultScale,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed chart geometry.
	Layout *layout.Layout

	// DatasetHash is the content hash of the dataset.
	DatasetHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Observations int
	Bars         int
	Ticks        int
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json, parquet)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Validate checks the enumerated style values.
func (s Style) Validate() error {
	checks := []error{
		errs.ValidateOneOf("align", s.Align, AlignBase, AlignCenter),
		errs.ValidateOneOf("bar width", s.BarWidth, BarWidthSkinny, BarWidthWide),
		errs.ValidateOneOf("color by", s.ColorBy, color.ByValue, color.ByTime),
		errs.ValidateOneOf("tick interval", s.TickInterval, layout.IntervalMonthly, layout.IntervalAuto),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if _, err := styles.ParseFontSize(s.TickSize); err != nil {
		return err
	}
	if _, err := styles.ParseFormat(s.TitleFormat); err != nil {
		return err
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults fills zero values from DefaultOptions and checks
// the enumerated values. Boolean style switches are taken as given.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := o.Style.Validate(); err != nil {
		return err
	}
	if err := errs.ValidatePositive("scale", o.Scale); err != nil {
		return err
	}
	if err := errs.ValidateAtMost("scale", o.Scale, MaxScale); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills zero-valued fields from DefaultOptions.
func (o *Options) SetDefaults() {
	d := DefaultOptions()
	if o.Width == 0 {
		o.Width = d.Width
	}
	if o.Height == 0 {
		o.Height = d.Height
	}
	if o.InnerRadius == 0 {
		o.InnerRadius = d.InnerRadius
	}
	if o.Layers == 0 {
		o.Layers = d.Layers
	}
	if o.Precision == 0 {
		o.Precision = d.Precision
	}
	if o.CenterWindow == 0 {
		o.CenterWindow = d.CenterWindow
	}
	if o.TickCount == 0 {
		o.TickCount = d.TickCount
	}
	if o.Fields.Date == "" {
		o.Fields.Date = d.Fields.Date
	}
	if o.Fields.Value == "" {
		o.Fields.Value = d.Fields.Value
	}
	if o.Style.Align == "" {
		o.Style.Align = d.Style.Align
	}
	if o.Style.BarWidth == "" {
		o.Style.BarWidth = d.Style.BarWidth
	}
	if o.Style.ColorBy == "" {
		o.Style.ColorBy = d.Style.ColorBy
	}
	if o.Style.TickInterval == "" {
		o.Style.TickInterval = d.Style.TickInterval
	}
	if o.Style.TickColor == "" {
		o.Style.TickColor = d.Style.TickColor
	}
	if o.Style.TickSize == "" {
		o.Style.TickSize = d.Style.TickSize
	}
	if o.Style.TitleFormat == "" {
		o.Style.TitleFormat = d.Style.TitleFormat
	}
	if o.Palette == "" {
		o.Palette = d.Palette
	}
	if o.Scheme == "" {
		o.Scheme = d.Scheme
	}
	if len(o.Formats) == 0 {
		o.Formats = d.Formats
	}
	if o.Scale == 0 {
		o.Scale = d.Scale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Centered reports whether bars straddle the spiral.
func (o *Options) Centered() bool { return o.Style.Align == AlignCenter }

// Skinny reports whether bars take half the spacing between observations.
func (o *Options) Skinny() bool { return o.Style.BarWidth != BarWidthWide }

// TickStyle returns the resolved tick color and font size.
func (o *Options) TickStyle() styles.TickStyle {
	ts := styles.DefaultTickStyle()
	if o.Style.TickColor != "" {
		ts.Color = o.Style.TickColor
	}
	if size, err := styles.ParseFontSize(o.Style.TickSize); err == nil {
		ts.FontSize = size
	}
	return ts
}

// LabelHeight is the height of the letter box of one tick label. Room for
// it is reserved in every layer.
func (o *Options) LabelHeight() float64 {
	return styles.CharHeight(styles.BasicMetrics{}, o.TickStyle().FontSize)
}

// LayoutConfig converts the options into the layout engine's input.
func (o *Options) LayoutConfig() layout.Config {
	return layout.Config{
		Width:        o.Width,
		Height:       o.Height,
		InnerRadius:  o.InnerRadius,
		Layers:       o.Layers,
		Precision:    o.Precision,
		Centered:     o.Centered(),
		Skinny:       o.Skinny(),
		Interval:     o.Style.TickInterval,
		TickCount:    o.TickCount,
		CenterWindow: o.CenterWindow,
		MinBarSize:   layout.DefaultMinBarSize,
		LabelHeight:  o.LabelHeight(),
	}
}

// ColorConfig converts the options into the color resolver's input.
func (o *Options) ColorConfig() color.Config {
	return color.Config{
		By:      o.Style.ColorBy,
		Reverse: o.Style.ReverseColor,
		Palette: o.Palette,
		Stops:   o.Stops,
		Scheme:  o.Scheme,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	c := o.LayoutConfig()
	return cache.LayoutKeyOpts{
		Width:        c.Width,
		Height:       c.Height,
		InnerRadius:  c.InnerRadius,
		Layers:       c.Layers,
		Precision:    c.Precision,
		Centered:     c.Centered,
		Skinny:       c.Skinny,
		Interval:     c.Interval,
		TickCount:    c.TickCount,
		CenterWindow: c.CenterWindow,
		LabelHeight:  c.LabelHeight,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:      format,
		Rounded:     o.Style.Rounded,
		ShowTicks:   o.Style.ShowTicks,
		ShowAxis:    o.Style.ShowAxis,
		ColorBy:     o.Style.ColorBy,
		Reverse:     o.Style.ReverseColor,
		Palette:     o.Palette,
		Stops:       o.Stops,
		Scheme:      o.Scheme,
		TickColor:   o.Style.TickColor,
		TickSize:    o.Style.TickSize,
		TitleFormat: o.Style.TitleFormat,
		Background:  o.Style.Background,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
