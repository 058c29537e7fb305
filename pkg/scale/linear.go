package scale

import "math"

// DefaultTickCount is the approximate number of ticks requested when none
// is given.
const DefaultTickCount = 10

// niceIterations bounds the rounding loop in Linear.Nice.
const niceIterations = 10

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// Linear is a continuous linear scale from a numeric domain to a numeric
// range. The zero value is not usable; construct with NewLinear.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear returns a scale mapping [d0, d1] onto [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) *Linear {
	return &Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Domain returns the scale's input bounds.
func (l *Linear) Domain() (float64, float64) { return l.d0, l.d1 }

// Range returns the scale's output bounds.
func (l *Linear) Range() (float64, float64) { return l.r0, l.r1 }

// Map returns the image of v. Values outside the domain extrapolate. A
// zero-width domain maps everything to the middle of the range.
func (l *Linear) Map(v float64) float64 {
	span := l.d1 - l.d0
	if span == 0 {
		return interpolate(l.r0, l.r1, 0.5)
	}
	return interpolate(l.r0, l.r1, (v-l.d0)/span)
}

// Nice returns a copy of l whose domain is extended outward to multiples
// of the tick step for roughly count ticks. The step is recomputed on the
// extended domain until it settles.
func (l *Linear) Nice(count int) *Linear {
	out := *l
	start, stop := l.d0, l.d1
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	if !(stop > start) || count <= 0 {
		return &out
	}

	var prestep float64
	for range niceIterations {
		step := TickIncrement(start, stop, count)
		if step == prestep || math.IsInf(step, 0) {
			break
		}
		switch {
		case step > 0:
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		case step < 0:
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		default:
			return &out
		}
		prestep = step
	}

	if reverse {
		start, stop = stop, start
	}
	out.d0, out.d1 = start, stop
	return &out
}

// Ticks returns roughly count evenly spaced, human-friendly values within
// the domain.
func (l *Linear) Ticks(count int) []float64 {
	return Ticks(l.d0, l.d1, count)
}

// TickIncrement returns the step between ticks for roughly count ticks over
// [start, stop]. The step is 1, 2 or 5 times a power of ten. Steps below
// one are returned as the negated inverse (-10 for 0.1), which keeps the
// arithmetic on integers exact.
func TickIncrement(start, stop float64, count int) float64 {
	step := (stop - start) / math.Max(0, float64(count))
	power := math.Floor(math.Log10(step))
	factor := niceFactor(step / math.Pow(10, power))
	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

// TickStep is TickIncrement expressed as a plain step, signed by the
// direction of [start, stop].
func TickStep(start, stop float64, count int) float64 {
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	inc := TickIncrement(start, stop, count)
	if inc < 0 {
		inc = 1 / -inc
	}
	if reverse {
		return -inc
	}
	return inc
}

// Ticks returns roughly count nice values in [start, stop], in the
// direction of the bounds.
func Ticks(start, stop float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	i1, i2, inc := tickSpec(start, stop, float64(count))
	if i2 < i1 {
		return nil
	}
	n := int(i2-i1) + 1
	ticks := make([]float64, n)
	for i := range ticks {
		k := i1 + float64(i)
		if reverse {
			k = i2 - float64(i)
		}
		if inc < 0 {
			ticks[i] = k / -inc
		} else {
			ticks[i] = k * inc
		}
	}
	return ticks
}

// tickSpec returns the integer tick indices and the increment for Ticks.
func tickSpec(start, stop, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
	power := math.Floor(math.Log10(step))
	factor := niceFactor(step / math.Pow(10, power))

	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = math.Round(start * inc)
		i2 = math.Round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = math.Round(start / inc)
		i2 = math.Round(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}
	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

func niceFactor(e float64) float64 {
	switch {
	case e >= e10:
		return 10
	case e >= e5:
		return 5
	case e >= e2:
		return 2
	default:
		return 1
	}
}

func interpolate(a, b, t float64) float64 {
	return a*(1-t) + b*t
}
