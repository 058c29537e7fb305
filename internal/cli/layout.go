package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/timespiral/pkg/dataset"
	"github.com/matzehuels/timespiral/pkg/layout"
	"github.com/matzehuels/timespiral/pkg/pipeline"
)

// layoutCommand creates the layout command for inspecting chart geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output   string
		showBars bool
		caches   cacheFlags
	)
	flags := newOptionFlags()

	cmd := &cobra.Command{
		Use:   "layout [data]",
		Short: "Compute and print the spiral layout of a dataset",
		Long: `Compute and print the spiral layout of a dataset.

Prints the spiral geometry and a table of ticks (and, with --bars, every
bar). With -o the layout is written as JSON; render that file again with
'timespiral render <file>.layout.json'.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDataFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], output, showBars, opts, caches)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the layout as JSON to this file")
	cmd.Flags().BoolVar(&showBars, "bars", false, "print every bar")
	flags.register(cmd)
	caches.register(cmd)
	registerCompletions(cmd)

	return cmd
}

// runLayout imports the dataset, computes the layout, and prints it.
func (c *CLI) runLayout(ctx context.Context, input, output string, showBars bool, opts pipeline.Options, caches cacheFlags) error {
	runner, err := c.newRunner(ctx, caches)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	ds, err := runner.Import(ctx, input, opts.Fields)
	if err != nil {
		return err
	}

	start := time.Now()
	l, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, ds, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	c.printLayoutSummary(ds, l)
	c.ui.newline()
	c.ui.line(ticksTable(l))
	if showBars {
		c.ui.line(barsTable(l))
	}
	c.ui.stats(passStats{
		bars:     len(l.Bars),
		ticks:    len(l.Ticks),
		duration: time.Since(start),
		cached:   cacheHit,
	})

	if output == "" {
		return nil
	}
	opts.Formats = []string{pipeline.FormatJSON}
	artifacts, err := runner.Render(ctx, l, ds, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, artifacts[pipeline.FormatJSON], 0644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	c.ui.success("Layout written")
	c.ui.file(output)
	c.ui.newline()
	c.ui.next("Render", appName+" render "+output)
	return nil
}

// printLayoutSummary prints the spiral geometry as key/value lines.
func (c *CLI) printLayoutSummary(ds *dataset.Dataset, l *layout.Layout) {
	c.ui.title("Time spiral")
	c.ui.field("Dataset", ds.String())
	c.ui.field("Canvas", fmt.Sprintf("%s × %s", num(l.Width), num(l.Height)))
	c.ui.field("Radius", fmt.Sprintf("%s → %s", num(l.Geometry.InnerRadius), num(l.Geometry.OuterRadius)))
	c.ui.field("Layers", strconv.Itoa(l.Geometry.Layers))
	c.ui.field("Length", num(l.Geometry.Length))
	c.ui.field("Layer height", num(l.LayerHeight))
	c.ui.field("Bar width", num(l.BarWidth))
	if l.Centered {
		c.ui.detail("bars are centered on the spiral")
	}
}

// ticksTable renders one row per tick.
func ticksTable(l *layout.Layout) string {
	rows := make([][]string, len(l.Ticks))
	for i, t := range l.Ticks {
		rows[i] = []string{
			t.Label,
			strconv.Itoa(t.BarIndex),
			num(t.ArcLength),
			num(t.Angle),
			num(t.Offset),
		}
	}
	return newTable("Tick", "Bar", "Arc", "Angle", "Offset").Rows(rows...).Render()
}

// barsTable renders one row per bar.
func barsTable(l *layout.Layout) string {
	rows := make([][]string, len(l.Bars))
	for i, b := range l.Bars {
		rows[i] = []string{
			strconv.Itoa(b.Index),
			dataset.FormatDate(b.Date),
			strconv.FormatFloat(b.Value, 'g', -1, 64),
			num(b.ArcLength),
			num(b.X),
			num(b.Y),
			num(b.Size),
			num(b.Angle),
		}
	}
	return newTable("#", "Date", "Value", "Arc", "X", "Y", "Size", "Angle").Rows(rows...).Render()
}

func newTable(headers ...string) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		})
}

// num formats a coordinate with two decimals.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
