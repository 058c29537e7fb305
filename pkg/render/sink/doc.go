// Package sink writes a computed [layout.Layout] to output formats.
//
// # SVG
//
// [RenderSVG] draws the chart the way the browser original does: a group
// translated to the canvas centre holding the (invisible unless
// [WithAxis]) spiral path, one rotated rect per bar with a <title> of
// "Y-M-D" and the formatted value, and for each tick a dashed line plus a
// label rotated half a turn so it reads outward.
//
// # PNG and PDF
//
// [RenderPNG] rasterises natively with github.com/fogleman/gg and needs
// no external tools. [RenderPDF] converts the SVG with rsvg-convert.
//
// # Data exports
//
// [RenderJSON] writes the full layout including bar colors and titles;
// [ReadJSON] reads it back for re-rendering without the source dataset.
// [RenderParquet] writes the bar table for analysis tools.
//
// [layout.Layout]: github.com/matzehuels/timespiral/pkg/layout.Layout
package sink
