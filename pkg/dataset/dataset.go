// Package dataset holds the dated observations a time spiral is drawn from.
//
// A [Dataset] is an ordered, immutable sequence of [Observation] values.
// Dates are calendar days: every constructor normalises them to midnight
// UTC with [Day], so two observations taken on the same day always compare
// equal regardless of the source's time-of-day or zone.
//
// Datasets are loaded from CSV, JSON or Parquet files with [Import]; the
// column (or key) names used for the date and value are configurable via
// [Fields].
package dataset

import (
	"fmt"
	"iter"
	"time"

	errs "github.com/matzehuels/timespiral/pkg/errors"
)

// Observation is a single dated value.
type Observation struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Fields maps the dataset's source column names onto the date and value of
// an observation.
type Fields struct {
	Date  string `json:"date" toml:"date"`
	Value string `json:"value" toml:"value"`
}

// DefaultFields returns the field mapping {date: "date", value: "value"}.
func DefaultFields() Fields {
	return Fields{Date: "date", Value: "value"}
}

// withDefaults fills empty field names from DefaultFields.
func (f Fields) withDefaults() Fields {
	d := DefaultFields()
	if f.Date == "" {
		f.Date = d.Date
	}
	if f.Value == "" {
		f.Value = d.Value
	}
	return f
}

// Dataset is an ordered sequence of observations. It is immutable once
// constructed; the accessors return copies.
type Dataset struct {
	obs []Observation
}

// New creates a dataset from obs. The slice is copied and every date is
// normalised with [Day]. Order is preserved as given: callers are
// responsible for supplying observations sorted by date.
func New(obs []Observation) *Dataset {
	cp := make([]Observation, len(obs))
	for i, o := range obs {
		cp[i] = Observation{Date: Day(o.Date), Value: o.Value}
	}
	return &Dataset{obs: cp}
}

// Len returns the number of observations.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.obs)
}

// At returns the i-th observation.
func (d *Dataset) At(i int) Observation { return d.obs[i] }

// First returns the first observation. It panics on an empty dataset.
func (d *Dataset) First() Observation { return d.obs[0] }

// Last returns the last observation. It panics on an empty dataset.
func (d *Dataset) Last() Observation { return d.obs[len(d.obs)-1] }

// Observations returns a copy of the underlying observations.
func (d *Dataset) Observations() []Observation {
	if d == nil {
		return nil
	}
	return append([]Observation(nil), d.obs...)
}

// All iterates over the observations in order.
func (d *Dataset) All() iter.Seq2[int, Observation] {
	return func(yield func(int, Observation) bool) {
		if d == nil {
			return
		}
		for i, o := range d.obs {
			if !yield(i, o) {
				return
			}
		}
	}
}

// Extent returns the minimum and maximum value over all observations.
// Both are zero for an empty dataset.
func (d *Dataset) Extent() (lo, hi float64) {
	if d.Len() == 0 {
		return 0, 0
	}
	lo, hi = d.obs[0].Value, d.obs[0].Value
	for _, o := range d.obs[1:] {
		lo = min(lo, o.Value)
		hi = max(hi, o.Value)
	}
	return lo, hi
}

// Validate checks the dataset preconditions of a render pass: at least one
// observation and only finite values. With strict set it also rejects
// dates that are not in ascending order.
func (d *Dataset) Validate(strict bool) error {
	if d.Len() == 0 {
		return errs.New(errs.ErrCodeInvalidInput, "dataset is empty")
	}
	for i, o := range d.obs {
		if err := errs.ValidateFinite(fmt.Sprintf("observation %d value", i), o.Value); err != nil {
			return err
		}
		if o.Date.IsZero() {
			return errs.New(errs.ErrCodeInvalidInput, "observation %d: missing date", i)
		}
		if strict && i > 0 && o.Date.Before(d.obs[i-1].Date) {
			return errs.New(errs.ErrCodeInvalidInput, "observation %d (%s) is earlier than its predecessor (%s)",
				i, FormatDate(o.Date), FormatDate(d.obs[i-1].Date))
		}
	}
	return nil
}

// String summarises the dataset for log output.
func (d *Dataset) String() string {
	if d.Len() == 0 {
		return "dataset(empty)"
	}
	return fmt.Sprintf("dataset(%d observations, %s..%s)", d.Len(), FormatDate(d.First().Date), FormatDate(d.Last().Date))
}
