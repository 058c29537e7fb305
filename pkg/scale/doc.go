// Package scale maps the dataset's dates and values onto chart units.
//
// Two scales are derived once per render pass and bundled in a [Set]:
//
//   - [Time] maps calendar dates linearly onto arc length along the spiral.
//   - [Linear] maps observation values onto bar sizes. Its domain is
//     rounded outward to human-friendly bounds with [Linear.Nice].
//
// Both interpolate as a·(1-t) + b·t, so the ends of the domain map exactly
// onto the ends of the range with no floating-point drift.
//
// The package also carries the tick heuristics the chart's axis relies on:
// [TickIncrement] and [Ticks] pick 1, 2 or 5 × 10^k steps for numbers, and
// [Time.Ticks] chooses a calendar interval (hours up to multiple years) for
// dates. [MonthStarts] enumerates month boundaries for monthly ticks.
package scale

import "time"

// Set is the pair of scales a render pass lays bars out with.
type Set struct {
	Time *Time
	Size *Linear
}

// NewSet derives the scales for a dataset spanning [first, last] with
// values in [lo, hi]. Dates map onto [0, length]; values map onto
// [minSize, maxSize] after the value domain has been niced.
func NewSet(first, last time.Time, lo, hi, length, minSize, maxSize float64) Set {
	return Set{
		Time: NewTime(first, last, 0, length),
		Size: NewLinear(lo, hi, minSize, maxSize).Nice(DefaultTickCount),
	}
}
