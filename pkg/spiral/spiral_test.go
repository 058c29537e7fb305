package spiral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/timespiral/pkg/errors"
)

func TestNewPointCount(t *testing.T) {
	tests := []struct {
		layers, precision int
	}{
		{1, 1},
		{1, 32},
		{5, 32},
		{3, 7},
	}

	for _, tt := range tests {
		p, err := New(50, 200, tt.layers, tt.precision)
		require.NoError(t, err)
		assert.Len(t, p.Points(), 2*tt.precision*tt.layers+1)
	}
}

func TestNewControlPoints(t *testing.T) {
	const (
		r0, r1    = 50.0, 250.0
		layers    = 2
		precision = 4
	)
	p, err := New(r0, r1, layers, precision)
	require.NoError(t, err)

	pts := p.Points()
	n := float64(len(pts))
	for i, pt := range pts {
		a := math.Pi / precision * float64(i)
		r := r0 + float64(i)*(r1-r0)/n
		assert.InDelta(t, r*math.Sin(a), pt.X, 1e-9, "point %d x", i)
		assert.InDelta(t, -r*math.Cos(a), pt.Y, 1e-9, "point %d y", i)
	}

	// Angle 0 points straight up.
	assert.InDelta(t, 0, pts[0].X, 1e-12)
	assert.InDelta(t, -r0, pts[0].Y, 1e-12)
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name              string
		r0, r1            float64
		layers, precision int
	}{
		{"zero layers", 50, 100, 0, 32},
		{"negative precision", 50, 100, 5, -1},
		{"negative inner radius", -1, 100, 5, 32},
		{"outer below inner", 100, 50, 5, 32},
		{"too many points", 50, 100, 5, MaxPoints},
		{"precision overflows point count", 50, 100, 5, math.MaxInt},
		{"layers overflow point count", 50, 100, math.MaxInt / 4, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.r0, tt.r1, tt.layers, tt.precision)
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.ErrCodeConfiguration))
		})
	}
}

func TestLengthIsSumOfChords(t *testing.T) {
	p, err := New(50, 200, 5, 32)
	require.NoError(t, err)

	pts := p.Points()
	var want float64
	for i := 1; i < len(pts); i++ {
		want += math.Hypot(pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y)
	}
	assert.InDelta(t, want, p.Length(), 1e-9)
	assert.Equal(t, p.Length(), p.Geometry().Length)

	// A sampled spiral is slightly shorter than the true one but in the
	// same ballpark as the mean circumference times the half-turns.
	approx := math.Pi * (50 + 200) / 2 * 5
	assert.InEpsilon(t, approx, p.Length(), 0.05)
}

func TestPointAtClamps(t *testing.T) {
	p, err := New(50, 200, 3, 16)
	require.NoError(t, err)
	pts := p.Points()

	assert.Equal(t, pts[0], p.PointAt(0))
	assert.Equal(t, pts[0], p.PointAt(-10))
	assert.Equal(t, pts[0], p.PointAt(math.NaN()))
	assert.Equal(t, pts[len(pts)-1], p.PointAt(p.Length()))
	assert.Equal(t, pts[len(pts)-1], p.PointAt(p.Length()+100))
}

func TestPointAtInterpolates(t *testing.T) {
	p, err := New(50, 200, 1, 8)
	require.NoError(t, err)
	pts := p.Points()

	first := math.Hypot(pts[1].X-pts[0].X, pts[1].Y-pts[0].Y)
	mid := p.PointAt(first / 2)
	assert.InDelta(t, (pts[0].X+pts[1].X)/2, mid.X, 1e-9)
	assert.InDelta(t, (pts[0].Y+pts[1].Y)/2, mid.Y, 1e-9)

	// Control points are hit exactly at their cumulative length.
	assert.InDelta(t, pts[1].X, p.PointAt(first).X, 1e-9)
	assert.InDelta(t, pts[1].Y, p.PointAt(first).Y, 1e-9)
}

func TestPointAtMonotonicRadius(t *testing.T) {
	p, err := New(20, 300, 4, 32)
	require.NoError(t, err)

	prev := -1.0
	for s := 0.0; s <= p.Length(); s += p.Length() / 500 {
		pt := p.PointAt(s)
		r := math.Hypot(pt.X, pt.Y)
		assert.GreaterOrEqual(t, r, prev-0.5, "radius shrank at s=%v", s)
		prev = r
	}
}

func TestTangentAngleClampsBackward(t *testing.T) {
	p, err := New(50, 200, 5, 32)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		a := p.TangentAngle(0, 25)
		assert.False(t, math.IsNaN(a))
	})

	// Near the start the spiral travels right (angle 0 is up, clockwise),
	// so the tangent direction is roughly 0 and the bar angle about -90.
	a := p.TangentAngle(5, 5)
	assert.InDelta(t, -90, a, 10)
}

func TestRadialAngle(t *testing.T) {
	tests := []struct {
		pt   Point
		want float64
	}{
		{Point{X: 1, Y: 0}, -90},
		{Point{X: 0, Y: 1}, 0},
		{Point{X: -1, Y: 0}, 90},
		{Point{X: 0, Y: -1}, -180},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, RadialAngle(tt.pt), 1e-9, "%+v", tt.pt)
	}
}
