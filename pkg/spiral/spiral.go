// Package spiral builds the Archimedean spiral a time spiral chart is laid
// out along, and answers arc-length queries on it.
//
// The curve is sampled as a polyline of 2·P·L+1 control points, where L is
// the number of layers (half-turns) and P the angular precision (samples
// per half-turn). Point i sits at angle π/P·i, accumulating across layers,
// and at a radius interpolated linearly from the inner to the outer radius.
//
// Coordinates follow the radial-line convention: angle 0 points up, and
// angles grow clockwise, so a point at (angle a, radius r) is at
// (r·sin a, -r·cos a).
//
// Arc length is measured along the polyline, so PointAt is exact for the
// sampled curve and Length is the sum of its chords.
package spiral

import (
	"math"
	"sort"

	errs "github.com/matzehuels/timespiral/pkg/errors"
)

// MaxPoints caps the number of control points a spiral may be sampled with.
const MaxPoints = 1 << 20

// Point is a position in chart coordinates, centred on the spiral origin.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Geometry describes a spiral once it has been built.
type Geometry struct {
	Length      float64 `json:"length"`
	InnerRadius float64 `json:"inner_radius"`
	OuterRadius float64 `json:"outer_radius"`
	Layers      int     `json:"layers"`
	Precision   int     `json:"precision"`
}

// Path is a sampled spiral. It is immutable and safe for concurrent use.
type Path struct {
	geom   Geometry
	points []Point
	// cum[i] is the arc length from the first point to points[i].
	cum []float64
}

// New builds a spiral from radius r0 to r1 winding through layers
// half-turns, sampled precision times per half-turn.
func New(r0, r1 float64, layers, precision int) (*Path, error) {
	if err := errs.ValidatePositiveInt("layers", layers); err != nil {
		return nil, err
	}
	if err := errs.ValidatePositiveInt("precision", precision); err != nil {
		return nil, err
	}
	if err := errs.ValidateNonNegative("inner radius", r0); err != nil {
		return nil, err
	}
	if r1 < r0 {
		return nil, errs.New(errs.ErrCodeConfiguration, "outer radius %g is smaller than inner radius %g", r1, r0)
	}
	// Compared by division so that huge inputs cannot overflow n.
	if layers > MaxPoints || precision > (MaxPoints-1)/(2*layers) {
		return nil, errs.New(errs.ErrCodeConfiguration,
			"%d layers at precision %d exceed %d control points", layers, precision, MaxPoints)
	}

	n := 2*precision*layers + 1
	step := math.Pi / float64(precision)
	dr := (r1 - r0) / float64(n)

	points := make([]Point, n)
	cum := make([]float64, n)
	for i := range points {
		a := step * float64(i)
		r := r0 + float64(i)*dr
		points[i] = Point{X: r * math.Sin(a), Y: -r * math.Cos(a)}
		if i > 0 {
			cum[i] = cum[i-1] + dist(points[i-1], points[i])
		}
	}

	return &Path{
		geom: Geometry{
			Length:      cum[n-1],
			InnerRadius: r0,
			OuterRadius: r1,
			Layers:      layers,
			Precision:   precision,
		},
		points: points,
		cum:    cum,
	}, nil
}

// Length returns the total arc length of the spiral.
func (p *Path) Length() float64 { return p.geom.Length }

// Geometry returns the spiral's dimensions.
func (p *Path) Geometry() Geometry { return p.geom }

// Points returns a copy of the control points, first to last.
func (p *Path) Points() []Point {
	return append([]Point(nil), p.points...)
}

// PointAt returns the point at arc length s from the start of the spiral.
// s is clamped to [0, Length()].
func (p *Path) PointAt(s float64) Point {
	if !(s > 0) {
		return p.points[0]
	}
	last := len(p.points) - 1
	if s >= p.geom.Length {
		return p.points[last]
	}

	// First control point at or beyond s; cum[0] == 0 < s so i >= 1.
	i := sort.SearchFloat64s(p.cum, s)
	seg := p.cum[i] - p.cum[i-1]
	if seg == 0 {
		return p.points[i]
	}
	t := (s - p.cum[i-1]) / seg
	a, b := p.points[i-1], p.points[i]
	return Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// TangentAngle returns the direction of travel at arc length s in degrees,
// measured between the point back units behind s (clamped at the start)
// and the point at s, minus 90 so a bar drawn along it points outward.
//
// Chart bars are not oriented with it: they are rotated by RadialAngle of
// their base point, which keeps them pointing away from the origin. It is
// for marks that should follow the curve itself.
func (p *Path) TangentAngle(s, back float64) float64 {
	p1 := p.PointAt(s)
	p0 := p.PointAt(math.Max(0, s-back))
	return math.Atan2(p1.Y-p0.Y, p1.X-p0.X)*180/math.Pi - 90
}

// RadialAngle returns the angle in degrees of the ray from the origin to
// pt, minus 90. Bars are rotated by this angle about their base.
func RadialAngle(pt Point) float64 {
	return math.Atan2(pt.Y, pt.X)*180/math.Pi - 90
}

func dist(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
