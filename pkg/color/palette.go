package color

import (
	"maps"
	"math"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	errs "github.com/matzehuels/timespiral/pkg/errors"
)

// Default palette names.
const (
	DefaultPalette = "YlGnBu"
	DefaultScheme  = "Tableau10"
)

// sequential holds the nine-class ColorBrewer ramps usable in value mode.
var sequential = map[string][]string{
	"Blues":   {"#f7fbff", "#deebf7", "#c6dbef", "#9ecae1", "#6baed6", "#4292c6", "#2171b5", "#08519c", "#08306b"},
	"Greens":  {"#f7fcf5", "#e5f5e0", "#c7e9c0", "#a1d99b", "#74c476", "#41ab5d", "#238b45", "#006d2c", "#00441b"},
	"Greys":   {"#ffffff", "#f0f0f0", "#d9d9d9", "#bdbdbd", "#969696", "#737373", "#525252", "#252525", "#000000"},
	"Oranges": {"#fff5eb", "#fee6ce", "#fdd0a2", "#fdae6b", "#fd8d3c", "#f16913", "#d94801", "#a63603", "#7f2704"},
	"Purples": {"#fcfbfd", "#efedf5", "#dadaeb", "#bcbddc", "#9e9ac8", "#807dba", "#6a51a3", "#54278f", "#3f007d"},
	"Reds":    {"#fff5f0", "#fee0d2", "#fcbba1", "#fc9272", "#fb6a4a", "#ef3b2c", "#cb181d", "#a50f15", "#67000d"},
	"YlGnBu":  {"#ffffd9", "#edf8b1", "#c7e9b4", "#7fcdbb", "#41b6c4", "#1d91c0", "#225ea8", "#253494", "#081d58"},
	"YlOrRd":  {"#ffffcc", "#ffeda0", "#fed976", "#feb24c", "#fd8d3c", "#fc4e2a", "#e31a1c", "#bd0026", "#800026"},
}

// categorical holds the discrete schemes usable in time mode.
var categorical = map[string][]string{
	"Tableau10":  {"#4e79a7", "#f28e2c", "#e15759", "#76b7b2", "#59a14f", "#edc949", "#af7aa1", "#ff9da7", "#9c755f", "#bab0ab"},
	"Category10": {"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf"},
	"Dark2":      {"#1b9e77", "#d95f02", "#7570b3", "#e7298a", "#66a61e", "#e6ab02", "#a6761d", "#666666"},
	"Set2":       {"#66c2a5", "#fc8d62", "#8da0cb", "#e78ac3", "#a6d854", "#ffd92f", "#e5c494", "#b3b3b3"},
}

// Palettes lists the names of the sequential palettes.
func Palettes() []string { return sortedKeys(sequential) }

// Schemes lists the names of the categorical schemes.
func Schemes() []string { return sortedKeys(categorical) }

// Interpolator maps t in [0, 1] to a color.
type Interpolator func(t float64) colorful.Color

// Sequential returns the interpolator for the named palette.
func Sequential(name string) (Interpolator, error) {
	stops, ok := sequential[name]
	if !ok {
		return nil, errs.New(errs.ErrCodeInvalidStyle, "unknown palette %q (available: %v)", name, Palettes())
	}
	return Basis(stops)
}

// Categorical returns the colors of the named scheme.
func Categorical(name string) ([]colorful.Color, error) {
	hexes, ok := categorical[name]
	if !ok {
		return nil, errs.New(errs.ErrCodeInvalidStyle, "unknown scheme %q (available: %v)", name, Schemes())
	}
	return parseAll(hexes)
}

// Basis returns a uniform B-spline through the given hex colors in RGB
// space. t is clamped to [0, 1]. The curve starts at the first color and
// ends at the last one.
func Basis(hexes []string) (Interpolator, error) {
	if len(hexes) < 2 {
		return nil, errs.New(errs.ErrCodeInvalidStyle, "a palette needs at least two colors, got %d", len(hexes))
	}
	stops, err := parseAll(hexes)
	if err != nil {
		return nil, err
	}
	return func(t float64) colorful.Color {
		return colorful.Color{
			R: basisChannel(stops, t, func(c colorful.Color) float64 { return c.R }),
			G: basisChannel(stops, t, func(c colorful.Color) float64 { return c.G }),
			B: basisChannel(stops, t, func(c colorful.Color) float64 { return c.B }),
		}.Clamped()
	}, nil
}

func basisChannel(stops []colorful.Color, t float64, ch func(colorful.Color) float64) float64 {
	n := len(stops) - 1
	var i int
	switch {
	case !(t > 0):
		t = 0
	case t >= 1:
		t, i = 1, n-1
	default:
		i = int(math.Floor(t * float64(n)))
	}

	v1, v2 := ch(stops[i]), ch(stops[i+1])
	v0 := 2*v1 - v2
	if i > 0 {
		v0 = ch(stops[i-1])
	}
	v3 := 2*v2 - v1
	if i < n-1 {
		v3 = ch(stops[i+2])
	}
	return basis((t-float64(i)/float64(n))*float64(n), v0, v1, v2, v3)
}

func basis(t1, v0, v1, v2, v3 float64) float64 {
	t2 := t1 * t1
	t3 := t2 * t1
	return ((1-3*t1+3*t2-t3)*v0 +
		(4-6*t2+3*t3)*v1 +
		(1+3*t1+3*t2-3*t3)*v2 +
		t3*v3) / 6
}

func parseAll(hexes []string) ([]colorful.Color, error) {
	out := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidStyle, err, "color %q", h)
		}
		out[i] = c
	}
	return out, nil
}

func sortedKeys(m map[string][]string) []string {
	return slices.Sorted(maps.Keys(m))
}
