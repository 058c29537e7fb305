package layout

import (
	"math"

	"github.com/matzehuels/timespiral/pkg/dataset"
	"github.com/matzehuels/timespiral/pkg/scale"
	"github.com/matzehuels/timespiral/pkg/spiral"
)

// barWidth spreads n bars evenly over the spiral, halved for skinny bars.
func barWidth(length float64, n int, skinny bool) float64 {
	w := length / float64(n)
	if skinny {
		w /= 2
	}
	return w
}

// placeBars places one bar per observation, in input order.
func placeBars(ds *dataset.Dataset, path *spiral.Path, scales scale.Set, width float64, centered bool) []Bar {
	bars := make([]Bar, 0, ds.Len())
	for i, o := range ds.All() {
		t := scales.Time.Map(o.Date)
		size := scales.Size.Map(o.Value)
		p1 := path.PointAt(t)
		p2 := path.PointAt(math.Max(0, t-width))

		y := p1.Y
		if centered {
			y -= size / 2
		}
		bars = append(bars, Bar{
			Index:     i,
			Date:      o.Date,
			Value:     o.Value,
			ArcLength: t,
			X:         p1.X,
			Y:         y,
			Y0:        p1.Y,
			Size:      size,
			Angle:     spiral.RadialAngle(p2),
		})
	}
	return bars
}

// centerOffsets records, for every bar on the first of a month, the
// tallest size among it and the window-1 bars after it.
func centerOffsets(bars []Bar, window int) []TickOffset {
	var offsets []TickOffset
	for i, b := range bars {
		if b.Date.Day() != 1 {
			continue
		}
		tallest := b.Size
		for _, n := range bars[i+1 : min(i+window, len(bars))] {
			tallest = max(tallest, n.Size)
		}
		offsets = append(offsets, TickOffset{Index: i, ArcLength: b.ArcLength, MaxSize: tallest})
	}
	return offsets
}
