package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/timespiral/pkg/pipeline"
	"github.com/matzehuels/timespiral/pkg/render"
)

// layoutSuffix marks files written by 'layout -o' and 'render -f json'.
const layoutSuffix = ".layout.json"

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output string
		caches cacheFlags
	)
	flags := newOptionFlags()

	cmd := &cobra.Command{
		Use:   "render [data]",
		Short: "Render a dataset as a time spiral",
		Long: `Render a dataset as a time spiral.

The input is a CSV, TSV, JSON or Parquet file with one row per day. Column
names default to "date" and "value"; use --date-field and --value-field to
map others. A layout exported with 'render -f json' (*.layout.json) can be
rendered again without the original data.

Options are read from --config (TOML) and overridden by flags. Results are
cached locally for faster subsequent runs.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDataFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], output, opts, caches)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	flags.registerFormats(cmd)
	flags.register(cmd)
	caches.register(cmd)
	registerCompletions(cmd)

	return cmd
}

// runRender imports the dataset, runs the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input, output string, opts pipeline.Options, caches cacheFlags) error {
	opts.Logger = c.Logger
	if slices.Contains(opts.Formats, pipeline.FormatPDF) && !render.Available() {
		c.ui.warning("PDF output needs rsvg-convert on PATH")
	}

	var (
		artifacts map[string][]byte
		stats     passStats
	)
	prog := newProgress(c.Logger)

	if strings.HasSuffix(input, layoutSuffix) {
		data, err := os.ReadFile(input)
		if err != nil {
			return fmt.Errorf("read layout %s: %w", input, err)
		}
		if artifacts, err = pipeline.RenderFromLayoutData(data, opts); err != nil {
			return err
		}
	} else {
		runner, err := c.newRunner(ctx, caches)
		if err != nil {
			return fmt.Errorf("initialize runner: %w", err)
		}
		defer runner.Close()

		spin := startSpinner(ctx, os.Stderr, "Importing "+filepath.Base(input)+"...")
		ds, err := runner.Import(ctx, input, opts.Fields)
		if err != nil {
			spin.fail("Import failed")
			return err
		}

		spin.update(fmt.Sprintf("Rendering %d observations...", ds.Len()))
		result, err := runner.Execute(ctx, ds, opts)
		if err != nil {
			spin.fail("Render failed")
			return err
		}
		spin.stop()

		artifacts = result.Artifacts
		stats = passStats{
			bars:     result.Stats.Bars,
			ticks:    result.Stats.Ticks,
			duration: result.Stats.LayoutTime + result.Stats.RenderTime,
			cached:   result.CacheInfo.RenderHit,
		}
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths := outputPaths(output, input, opts.Formats)
	for _, format := range opts.Formats {
		if err := os.WriteFile(paths[format], artifacts[format], 0644); err != nil {
			return fmt.Errorf("write output %s: %w", paths[format], err)
		}
	}
	prog.done("rendered", "input", input, "formats", opts.Formats)

	c.ui.success("Render complete")
	for _, format := range opts.Formats {
		c.ui.file(paths[format])
	}
	c.ui.stats(stats)
	return nil
}

// outputPaths maps each format to the file it is written to. A single
// format goes to output verbatim when given; otherwise every format is
// written next to a base path derived from output or input.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		if f == pipeline.FormatJSON {
			paths[f] = base + layoutSuffix
			continue
		}
		paths[f] = base + "." + f
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		input = strings.TrimSuffix(input, layoutSuffix)
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	if strings.HasSuffix(output, layoutSuffix) {
		return strings.TrimSuffix(output, layoutSuffix)
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
