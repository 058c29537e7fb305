package cli

import (
	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	errs "github.com/matzehuels/timespiral/pkg/errors"
	"github.com/matzehuels/timespiral/pkg/pipeline"
)

// optionFlags binds the chart options to command-line flags. Values given
// on the command line win over a --config file, which wins over the
// defaults.
type optionFlags struct {
	opts    pipeline.Options
	config  string
	formats string
	bind    []flagBinding
}

// flagBinding copies one flag's value from the flag-bound options onto the
// options loaded from a config file.
type flagBinding struct {
	name  string
	apply func(dst, src *pipeline.Options)
}

func newOptionFlags() *optionFlags {
	return &optionFlags{opts: pipeline.DefaultOptions()}
}

// register adds every option flag to cmd.
func (f *optionFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	o := &f.opts

	fs.StringVar(&f.config, "config", "", "TOML file with chart options")

	f.floatVar(fs, "width", &o.Width, "canvas width", func(d, s *pipeline.Options) { d.Width = s.Width })
	f.floatVar(fs, "height", &o.Height, "canvas height", func(d, s *pipeline.Options) { d.Height = s.Height })
	f.floatVar(fs, "inner-radius", &o.InnerRadius, "radius the spiral starts at", func(d, s *pipeline.Options) { d.InnerRadius = s.InnerRadius })
	f.intVar(fs, "layers", &o.Layers, "number of spiral half-turns", func(d, s *pipeline.Options) { d.Layers = s.Layers })
	f.intVar(fs, "precision", &o.Precision, "spiral samples per half-turn", func(d, s *pipeline.Options) { d.Precision = s.Precision })
	f.intVar(fs, "center-window", &o.CenterWindow, "bars considered when pushing centered month labels outward", func(d, s *pipeline.Options) { d.CenterWindow = s.CenterWindow })
	f.intVar(fs, "tick-count", &o.TickCount, "approximate tick count for --tick-interval auto", func(d, s *pipeline.Options) { d.TickCount = s.TickCount })
	f.stringVar(fs, "date-field", &o.Fields.Date, "column holding the date", func(d, s *pipeline.Options) { d.Fields.Date = s.Fields.Date })
	f.stringVar(fs, "value-field", &o.Fields.Value, "column holding the value", func(d, s *pipeline.Options) { d.Fields.Value = s.Fields.Value })
	f.boolVar(fs, "strict", &o.Strict, "reject datasets whose dates are not ascending", func(d, s *pipeline.Options) { d.Strict = s.Strict })

	f.stringVar(fs, "align", &o.Style.Align, "bar alignment: base, center", func(d, s *pipeline.Options) { d.Style.Align = s.Style.Align })
	f.stringVar(fs, "bar-width", &o.Style.BarWidth, "bar width: skinny, wide", func(d, s *pipeline.Options) { d.Style.BarWidth = s.Style.BarWidth })
	f.boolVar(fs, "rounded", &o.Style.Rounded, "round bar ends", func(d, s *pipeline.Options) { d.Style.Rounded = s.Style.Rounded })
	f.stringVar(fs, "color-by", &o.Style.ColorBy, "color bars by: value, time", func(d, s *pipeline.Options) { d.Style.ColorBy = s.Style.ColorBy })
	f.boolVar(fs, "reverse-color", &o.Style.ReverseColor, "reverse the value palette", func(d, s *pipeline.Options) { d.Style.ReverseColor = s.Style.ReverseColor })
	f.stringVar(fs, "tick-interval", &o.Style.TickInterval, "tick placement: monthly, auto", func(d, s *pipeline.Options) { d.Style.TickInterval = s.Style.TickInterval })
	f.boolVar(fs, "ticks", &o.Style.ShowTicks, "draw tick marks and labels", func(d, s *pipeline.Options) { d.Style.ShowTicks = s.Style.ShowTicks })
	f.stringVar(fs, "tick-color", &o.Style.TickColor, "tick line and label color", func(d, s *pipeline.Options) { d.Style.TickColor = s.Style.TickColor })
	f.stringVar(fs, "tick-size", &o.Style.TickSize, "tick label font size (8pt, 11px, 0.75em)", func(d, s *pipeline.Options) { d.Style.TickSize = s.Style.TickSize })
	f.stringVar(fs, "title-format", &o.Style.TitleFormat, "number format of bar tooltips, e.g. ,.0d or .2f", func(d, s *pipeline.Options) { d.Style.TitleFormat = s.Style.TitleFormat })
	f.boolVar(fs, "axis", &o.Style.ShowAxis, "draw the spiral axis", func(d, s *pipeline.Options) { d.Style.ShowAxis = s.Style.ShowAxis })
	f.stringVar(fs, "background", &o.Style.Background, "background color (default: transparent)", func(d, s *pipeline.Options) { d.Style.Background = s.Style.Background })
	f.stringVar(fs, "palette", &o.Palette, "sequential palette for --color-by value", func(d, s *pipeline.Options) { d.Palette = s.Palette })
	f.stringVar(fs, "scheme", &o.Scheme, "categorical scheme for --color-by time", func(d, s *pipeline.Options) { d.Scheme = s.Scheme })
	f.floatVar(fs, "scale", &o.Scale, "PNG pixel density", func(d, s *pipeline.Options) { d.Scale = s.Scale })
	f.boolVar(fs, "refresh", &o.Refresh, "ignore cached results", func(d, s *pipeline.Options) { d.Refresh = s.Refresh })
}

// registerFormats adds the --format flag.
func (f *optionFlags) registerFormats(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, parquet (comma-separated)")
}

// resolve returns the effective options for cmd: defaults, then the
// config file, then the flags the user actually set.
func (f *optionFlags) resolve(cmd *cobra.Command) (pipeline.Options, error) {
	opts := f.opts
	if f.config != "" {
		loaded, err := loadConfig(f.config)
		if err != nil {
			return pipeline.Options{}, err
		}
		for _, b := range f.bind {
			if cmd.Flags().Changed(b.name) {
				b.apply(&loaded, &f.opts)
			}
		}
		opts = loaded
	}
	if f.formats != "" {
		opts.Formats = pipeline.ParseFormats(f.formats)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// loadConfig decodes a TOML options file on top of the defaults.
func loadConfig(path string) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return pipeline.Options{}, errs.Wrap(errs.ErrCodeConfiguration, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return pipeline.Options{}, errs.New(errs.ErrCodeConfiguration, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return opts, nil
}

func (f *optionFlags) floatVar(fs *pflag.FlagSet, name string, p *float64, usage string, apply func(d, s *pipeline.Options)) {
	fs.Float64Var(p, name, *p, usage)
	f.bind = append(f.bind, flagBinding{name, apply})
}

func (f *optionFlags) intVar(fs *pflag.FlagSet, name string, p *int, usage string, apply func(d, s *pipeline.Options)) {
	fs.IntVar(p, name, *p, usage)
	f.bind = append(f.bind, flagBinding{name, apply})
}

func (f *optionFlags) stringVar(fs *pflag.FlagSet, name string, p *string, usage string, apply func(d, s *pipeline.Options)) {
	fs.StringVar(p, name, *p, usage)
	f.bind = append(f.bind, flagBinding{name, apply})
}

func (f *optionFlags) boolVar(fs *pflag.FlagSet, name string, p *bool, usage string, apply func(d, s *pipeline.Options)) {
	fs.BoolVar(p, name, *p, usage)
	f.bind = append(f.bind, flagBinding{name, apply})
}
