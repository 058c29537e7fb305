package pipeline

import (
	"github.com/matzehuels/timespiral/pkg/color"
	"github.com/matzehuels/timespiral/pkg/dataset"
	errs "github.com/matzehuels/timespiral/pkg/errors"
	"github.com/matzehuels/timespiral/pkg/layout"
	"github.com/matzehuels/timespiral/pkg/render/sink"
	"github.com/matzehuels/timespiral/pkg/render/styles"
)

// Render generates output artifacts in the requested formats. The dataset
// supplies the color domain; it must be the one the layout was computed
// from.
func Render(l *layout.Layout, ds *dataset.Dataset, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	colors, err := color.NewResolver(opts.ColorConfig(), ds)
	if err != nil {
		return nil, err
	}
	svgOpts, err := buildSVGOptions(opts, sink.WithColors(colors))
	if err != nil {
		return nil, err
	}
	return renderFormats(l, svgOpts, opts)
}

// RenderFromLayoutData renders output from a layout previously exported as
// JSON. Bar fills recorded in the document are reused, so the original
// dataset is not needed.
func RenderFromLayoutData(data []byte, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	l, fills, err := sink.ReadJSON(data)
	if err != nil {
		return nil, err
	}
	svgOpts, err := buildSVGOptions(opts, sink.WithFills(fills))
	if err != nil {
		return nil, err
	}
	return renderFormats(l, svgOpts, opts)
}

func renderFormats(l *layout.Layout, svgOpts []sink.SVGOption, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(l, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(l, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(l, sink.WithJSONSVGOptions(svgOpts...), sink.WithJSONOptions(opts))
		case FormatParquet:
			data, err = sink.RenderParquet(l, svgOpts...)
		default:
			return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			code := errs.GetCode(err)
			if code == "" {
				code = errs.ErrCodeInternal
			}
			return nil, errs.Wrap(code, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// buildSVGOptions translates the style options into sink options.
func buildSVGOptions(opts Options, extra ...sink.SVGOption) ([]sink.SVGOption, error) {
	format, err := styles.ParseFormat(opts.Style.TitleFormat)
	if err != nil {
		return nil, err
	}
	svgOpts := append([]sink.SVGOption{
		sink.WithTitleFormat(format),
		sink.WithTickStyle(opts.TickStyle()),
	}, extra...)

	if opts.Style.Rounded {
		svgOpts = append(svgOpts, sink.WithRounded())
	}
	if opts.Style.ShowTicks {
		svgOpts = append(svgOpts, sink.WithTicks())
	}
	if opts.Style.ShowAxis {
		svgOpts = append(svgOpts, sink.WithAxis())
	}
	if opts.Style.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(opts.Style.Background))
	}
	return svgOpts, nil
}
