// Package render turns computed time spiral layouts into output files.
//
// # Overview
//
// The layout engine in [layout] decides where every bar and tick goes; this
// package tree draws the result:
//
//   - [sink]: Output formats (SVG, PNG, PDF, JSON, Parquet)
//   - [styles]: Tick appearance, text metrics and number formatting
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). The PDF sink uses it; the
// PNG sink rasterises natively and only falls back to rsvg-convert on
// request.
//
//	svg := sink.RenderSVG(lay, opts...)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [layout]: github.com/matzehuels/timespiral/pkg/layout
// [sink]: github.com/matzehuels/timespiral/pkg/render/sink
// [styles]: github.com/matzehuels/timespiral/pkg/render/styles
package render
