// Package layout computes where every bar and tick of a time spiral goes.
//
// [Compute] is the whole layout pass. It validates the dataset and the
// [Config], builds the spiral and the scales, and then places one [Bar]
// per observation and one [Tick] per calendar boundary that coincides with
// a bar:
//
//	lay, err := layout.Compute(ds, layout.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	for _, b := range lay.Bars {
//	    // draw a rect at (b.X, b.Y) of lay.BarWidth × b.Size, rotated by
//	    // b.Angle degrees about (b.X, b.Y0)
//	}
//
// # Geometry
//
// The available radius is half the smaller canvas side. It is split into
// layers+1 bands of layerHeight (minus a label band), the spiral runs from
// the inner radius out to maxRadius, and bars are at most one layerHeight
// tall so consecutive windings never overlap.
//
// # Purity
//
// Compute has no side effects and keeps no state: two calls with equal
// inputs return equal layouts, and concurrent calls are safe.
package layout
