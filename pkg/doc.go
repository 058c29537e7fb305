// Package pkg provides the core libraries for Timespiral time series charts.
//
// # Overview
//
// Timespiral draws a daily time series as bars wound along an Archimedean
// spiral, one revolution per year, so seasonal patterns line up radially.
// The pkg directory is organized into three areas:
//
//  1. Geometry - the spiral path, scales and the bar/tick layout
//  2. Rendering - colors, tick styles and output sinks
//  3. Infrastructure - dataset import, caching, hooks and the pipeline
//
// # Architecture
//
// The typical data flow through Timespiral:
//
//	CSV/TSV/JSON/Parquet file
//	         ↓
//	    [dataset] package (observations sorted by date)
//	         ↓
//	    [layout] package (spiral path + scales + bars + ticks)
//	         ↓
//	    [render/sink] package (SVG/PNG/PDF/JSON/Parquet)
//
// [pipeline] wires these stages together and caches both the layout and the
// rendered artifacts.
//
// # Quick Start
//
//	ds, _ := dataset.Import("visits.csv", dataset.DefaultFields())
//
//	l, _ := layout.Compute(ds, layout.DefaultConfig())
//	colors, _ := color.NewResolver(color.Config{}, ds)
//	svg := sink.RenderSVG(l, sink.WithColors(colors))
//
// Or through the pipeline, with caching:
//
//	dir, _ := cache.DefaultDir()
//	c, _ := cache.NewFileCache(dir)
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, _ := runner.Execute(ctx, ds, pipeline.DefaultOptions())
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// # Main Packages
//
// [spiral] - Archimedean spiral geometry: sampled path, arc length lookup
// and the normal vectors bars are drawn along.
//
// [scale] - Linear and time scales with nice domains and tick generation.
//
// [layout] - Places one bar per observation and one tick per month, sized to
// fit the chart without overlapping layers.
//
// [color] - Sequential palettes interpolated by value or by date.
//
// [render/styles] - Tick styles, text metrics and number formatting.
//
// [render/sink] - Output formats. PDF needs rsvg-convert on the PATH.
//
// [dataset] - Observation import from CSV, TSV, JSON and Parquet.
//
// [cache] - Layout and artifact caches (file, Redis, null).
//
// [observability] - Hooks for pipeline, cache and server events.
//
// [errors] - Coded errors shared by every package.
//
// # Testing
//
//	go test ./...
//
// [spiral]: https://pkg.go.dev/github.com/matzehuels/timespiral/pkg/spiral
// [scale]: https://pkg.go.dev/github.com/matzehuels/timespiral/pkg/scale
// [layout]: https://pkg.go.dev/github.com/matzehuels/timespiral/pkg/layout
// [color]: https://pkg.go.dev/github.com/matzehuels/timespiral/pkg/color
// [render/styles]: https://pkg.go.dev/github.com/matzehuels/timespiral/pkg/render/styles
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/timespiral/pkg/render/sink
// [dataset]: https://pkg.go.dev/github.com/matzehuels/timespiral/pkg/dataset
// [cache]: https://pkg.go.dev/github.com/matzehuels/timespiral/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/timespiral/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/timespiral/pkg/errors
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/timespiral/pkg/pipeline
package pkg
