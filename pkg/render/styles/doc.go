// Package styles holds the presentation knobs shared by the chart sinks:
// tick appearance, text metrics and number formatting for bar titles.
//
// Text is measured with [BasicMetrics], a scaled version of the fixed
// 7×13 bitmap face from golang.org/x/image/font/basicfont. It is the same
// face the PNG sink draws with, so label bands computed from it fit the
// raster output exactly and approximate browser text in SVG.
//
// [ParseFormat] understands the subset of d3-format specifiers that bar
// titles use: an optional "," for thousands grouping, an optional ".p"
// precision and one of the types d, f, e, % or s.
package styles
