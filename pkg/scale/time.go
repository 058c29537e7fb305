package scale

import (
	"math"
	"sort"
	"time"
)

// Time is a linear scale from instants to numbers. Instants are compared
// at millisecond resolution.
type Time struct {
	d0, d1 time.Time
	r0, r1 float64
}

// NewTime returns a scale mapping [first, last] onto [r0, r1].
func NewTime(first, last time.Time, r0, r1 float64) *Time {
	return &Time{d0: first, d1: last, r0: r0, r1: r1}
}

// Domain returns the first and last instant of the scale.
func (s *Time) Domain() (time.Time, time.Time) { return s.d0, s.d1 }

// Range returns the scale's output bounds.
func (s *Time) Range() (float64, float64) { return s.r0, s.r1 }

// Map returns the image of t. The domain's ends map exactly onto the
// range's ends. A zero-width domain maps everything to the range start.
func (s *Time) Map(t time.Time) float64 {
	a, b := float64(s.d0.UnixMilli()), float64(s.d1.UnixMilli())
	if b == a {
		return s.r0
	}
	return interpolate(s.r0, s.r1, (float64(t.UnixMilli())-a)/(b-a))
}

// Invert returns the instant that maps to v.
func (s *Time) Invert(v float64) time.Time {
	if s.r1 == s.r0 {
		return s.d0
	}
	a, b := float64(s.d0.UnixMilli()), float64(s.d1.UnixMilli())
	ms := interpolate(a, b, (v-s.r0)/(s.r1-s.r0))
	return time.UnixMilli(int64(math.Round(ms))).In(s.d0.Location())
}

// Ticks returns roughly count calendar-aligned instants in the domain,
// ends included. The interval is the one from [1h, 3h, 6h, 12h, 1d, 2d,
// 1w, 1M, 3M, 1y] closest to span/count; longer spans use multi-year
// steps.
func (s *Time) Ticks(count int) []time.Time {
	start, stop := s.d0, s.d1
	reverse := stop.Before(start)
	if reverse {
		start, stop = stop, start
	}
	iv := chooseInterval(start, stop, count)
	if iv == nil {
		return nil
	}
	ticks := iv.rangeOf(start, stop.Add(time.Millisecond))
	if reverse {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

// MonthStarts returns the first instant of every calendar month within
// [first, last], both ends inclusive, in first's location.
func MonthStarts(first, last time.Time) []time.Time {
	return monthInterval.every(1).rangeOf(first, last.Add(time.Millisecond))
}

const (
	durationHour  = time.Hour
	durationDay   = 24 * time.Hour
	durationWeek  = 7 * durationDay
	durationMonth = 30 * durationDay
	durationYear  = 365 * durationDay
)

// calendarInterval is a unit of calendar time: floor snaps an instant to
// the unit's start, add advances by n units, and field is the ordinal
// every() filters on.
type calendarInterval struct {
	floor func(time.Time) time.Time
	add   func(time.Time, int) time.Time
	field func(time.Time) int
	step  int
}

func (iv calendarInterval) every(step int) *calendarInterval {
	iv.step = max(step, 1)
	return &iv
}

// rangeOf returns every interval boundary in [start, stop) that matches
// the interval's step.
func (iv *calendarInterval) rangeOf(start, stop time.Time) []time.Time {
	t := iv.floor(start)
	if t.Before(start) {
		t = iv.add(t, 1)
	}
	var out []time.Time
	for ; t.Before(stop); t = iv.add(t, 1) {
		if iv.field(t)%iv.step == 0 {
			out = append(out, t)
		}
	}
	return out
}

var (
	hourInterval = calendarInterval{
		floor: func(t time.Time) time.Time { return t.Truncate(time.Hour) },
		add:   func(t time.Time, n int) time.Time { return t.Add(time.Duration(n) * time.Hour) },
		field: func(t time.Time) int { return t.Hour() },
	}
	dayInterval = calendarInterval{
		floor: func(t time.Time) time.Time {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
		},
		add:   func(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) },
		field: func(t time.Time) int { return t.Day() - 1 },
	}
	weekInterval = calendarInterval{
		floor: func(t time.Time) time.Time {
			d := dayInterval.floor(t)
			return d.AddDate(0, 0, -int(d.Weekday()))
		},
		add:   func(t time.Time, n int) time.Time { return t.AddDate(0, 0, 7*n) },
		field: func(time.Time) int { return 0 },
	}
	monthInterval = calendarInterval{
		floor: func(t time.Time) time.Time {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
		},
		add:   func(t time.Time, n int) time.Time { return t.AddDate(0, n, 0) },
		field: func(t time.Time) int { return int(t.Month()) - 1 },
	}
	yearInterval = calendarInterval{
		floor: func(t time.Time) time.Time {
			return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
		},
		add:   func(t time.Time, n int) time.Time { return t.AddDate(n, 0, 0) },
		field: func(t time.Time) int { return t.Year() },
	}
)

type tickInterval struct {
	interval calendarInterval
	step     int
	duration time.Duration
}

var tickIntervals = []tickInterval{
	{hourInterval, 1, durationHour},
	{hourInterval, 3, 3 * durationHour},
	{hourInterval, 6, 6 * durationHour},
	{hourInterval, 12, 12 * durationHour},
	{dayInterval, 1, durationDay},
	{dayInterval, 2, 2 * durationDay},
	{weekInterval, 1, durationWeek},
	{monthInterval, 1, durationMonth},
	{monthInterval, 3, 3 * durationMonth},
	{yearInterval, 1, durationYear},
}

// chooseInterval picks the tick interval whose duration is closest, by
// ratio, to the average span between count ticks.
func chooseInterval(start, stop time.Time, count int) *calendarInterval {
	if count <= 0 {
		return nil
	}
	target := float64(stop.Sub(start)) / float64(count)
	i := sort.Search(len(tickIntervals), func(i int) bool {
		return float64(tickIntervals[i].duration) > target
	})

	switch i {
	case len(tickIntervals):
		y0 := float64(start.UnixMilli()) / float64(durationYear.Milliseconds())
		y1 := float64(stop.UnixMilli()) / float64(durationYear.Milliseconds())
		return yearInterval.every(int(TickStep(y0, y1, count)))
	case 0:
		return hourInterval.every(1)
	}

	lo, hi := tickIntervals[i-1], tickIntervals[i]
	pick := hi
	if target/float64(lo.duration) < float64(hi.duration)/target {
		pick = lo
	}
	return pick.interval.every(pick.step)
}
