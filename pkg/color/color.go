// Package color assigns a fill color to every observation of a chart.
//
// Two modes are supported. In value mode a sequential palette is stretched
// over the dataset's value extent, so the color follows the bar length. In
// time mode every calendar month spanned by the dataset gets its own color
// from a categorical scheme, cycling when the scheme runs out.
//
// The domain is computed once by [NewResolver]; [Resolver.Resolve] is a
// lookup and is safe for concurrent use.
package color

import (
	"fmt"
	"maps"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/timespiral/pkg/dataset"
	errs "github.com/matzehuels/timespiral/pkg/errors"
)

// Color modes.
const (
	ByValue = "value"
	ByTime  = "time"
)

// Config selects how bars are colored.
type Config struct {
	// By is ByValue or ByTime. Empty means ByValue.
	By string `json:"by" toml:"by"`
	// Reverse flips the value domain so high values take the light end.
	Reverse bool `json:"reverse" toml:"reverse"`
	// Palette names the sequential palette for value mode.
	Palette string `json:"palette" toml:"palette"`
	// Stops, when set, replaces Palette with custom hex colors.
	Stops []string `json:"stops,omitempty" toml:"stops"`
	// Scheme names the categorical scheme for time mode.
	Scheme string `json:"scheme" toml:"scheme"`
}

// Resolver answers the fill color of an observation.
type Resolver struct {
	by string

	interp Interpolator
	d0, d1 float64

	first  time.Time
	months map[string]string
	cycle  []string
}

// NewResolver derives the color domain from ds. ds must not be empty.
func NewResolver(cfg Config, ds *dataset.Dataset) (*Resolver, error) {
	if ds.Len() == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "dataset is empty")
	}
	switch cfg.By {
	case "", ByValue:
		return newValueResolver(cfg, ds)
	case ByTime:
		return newTimeResolver(cfg, ds)
	default:
		return nil, errs.New(errs.ErrCodeConfiguration, "invalid color mode %q (must be one of: %s, %s)", cfg.By, ByValue, ByTime)
	}
}

func newValueResolver(cfg Config, ds *dataset.Dataset) (*Resolver, error) {
	var (
		interp Interpolator
		err    error
	)
	if len(cfg.Stops) > 0 {
		interp, err = Basis(cfg.Stops)
	} else {
		interp, err = Sequential(orDefault(cfg.Palette, DefaultPalette))
	}
	if err != nil {
		return nil, err
	}

	lo, hi := ds.Extent()
	if cfg.Reverse {
		lo, hi = hi, lo
	}
	return &Resolver{by: ByValue, interp: interp, d0: lo, d1: hi}, nil
}

func newTimeResolver(cfg Config, ds *dataset.Dataset) (*Resolver, error) {
	scheme, err := Categorical(orDefault(cfg.Scheme, DefaultScheme))
	if err != nil {
		return nil, err
	}
	cycle := make([]string, len(scheme))
	for i, c := range scheme {
		cycle[i] = c.Hex()
	}

	first := monthOf(ds.First().Date)
	last := ds.Last().Date
	if last.Before(first) {
		first, last = monthOf(last), ds.First().Date
	}

	months := make(map[string]string)
	for m, i := first, 0; !m.After(last); m, i = m.AddDate(0, 1, 0), i+1 {
		months[MonthKey(m)] = cycle[i%len(cycle)]
	}
	return &Resolver{by: ByTime, first: first, months: months, cycle: cycle}, nil
}

// Mode reports ByValue or ByTime.
func (r *Resolver) Mode() string { return r.by }

// Resolve returns the fill color of o as #rrggbb.
func (r *Resolver) Resolve(o dataset.Observation) string {
	if r.by == ByTime {
		return r.month(o.Date)
	}
	return r.Value(o.Value)
}

// Value returns the value-mode color of v.
func (r *Resolver) Value(v float64) string {
	t := 0.5
	if r.d1 != r.d0 {
		t = (v - r.d0) / (r.d1 - r.d0)
	}
	return r.interp(t).Hex()
}

// Months returns the month keys and their colors in time mode.
func (r *Resolver) Months() map[string]string {
	return maps.Clone(r.months)
}

func (r *Resolver) month(t time.Time) string {
	if c, ok := r.months[MonthKey(t)]; ok {
		return c
	}
	// Months outside the dataset's span keep cycling from the first month.
	m := monthOf(t)
	n := (m.Year()-r.first.Year())*12 + int(m.Month()) - int(r.first.Month())
	n %= len(r.cycle)
	if n < 0 {
		n += len(r.cycle)
	}
	return r.cycle[n]
}

// MonthKey returns the "year.month" key of t's calendar month, month
// numbered from 1.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%d.%d", t.Year(), int(t.Month()))
}

// Hex normalises a CSS hex color (#rgb or #rrggbb) to lower-case #rrggbb.
func Hex(s string) (string, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInvalidStyle, err, "color %q", s)
	}
	return c.Hex(), nil
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
