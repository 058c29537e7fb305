package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Colors & Styles
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // primary
	colorGreen  = lipgloss.Color("35")  // success, cache hits
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // errors
	colorBlue   = lipgloss.Color("75")  // commands
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // labels
	colorDim    = lipgloss.Color("240") // muted
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleLabel   = lipgloss.NewStyle().Foreground(colorGray).Width(14)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Printer
// =============================================================================

// printer writes human-oriented status lines. Logs go to stderr through the
// logger; printer output is the command's result and goes to stdout.
type printer struct {
	out io.Writer
}

func (p printer) line(s string) {
	fmt.Fprintln(p.out, s)
}

func (p printer) newline() {
	fmt.Fprintln(p.out)
}

func (p printer) title(s string) {
	p.line(styleTitle.Render(s))
}

func (p printer) success(format string, args ...any) {
	p.line(styleSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func (p printer) warning(format string, args ...any) {
	p.line(styleWarning.Render(iconWarning) + " " + styleWarning.Render(fmt.Sprintf(format, args...)))
}

func (p printer) info(format string, args ...any) {
	p.line(styleDim.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// detail prints an indented, muted line.
func (p printer) detail(format string, args ...any) {
	p.line("  " + styleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints an output path.
func (p printer) file(path string) {
	p.line("  " + styleDim.Render(iconArrow) + " " + styleValue.Render(path))
}

// field prints a labeled value.
func (p printer) field(key, value string) {
	p.line(styleLabel.Render(key) + " " + styleValue.Render(value))
}

// next suggests a follow-up command.
func (p printer) next(description, cmd string) {
	p.line(styleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// passStats summarises one layout/render pass.
type passStats struct {
	bars     int
	ticks    int
	duration time.Duration
	cached   bool
}

// stats prints a pass summary on one line, e.g. "365 bars · 12 ticks · 8ms · cached".
func (p printer) stats(s passStats) {
	var parts []string
	if s.bars > 0 {
		parts = append(parts, styleDim.Render(fmt.Sprintf("%d bars", s.bars)))
	}
	if s.ticks > 0 {
		parts = append(parts, styleDim.Render(fmt.Sprintf("%d ticks", s.ticks)))
	}
	if s.duration > 0 {
		parts = append(parts, styleDim.Render(s.duration.Round(time.Millisecond).String()))
	}
	if s.cached {
		parts = append(parts, styleSuccess.Render("cached"))
	} else {
		parts = append(parts, styleDim.Render("fresh"))
	}
	p.line("  " + strings.Join(parts, styleDim.Render(" · ")))
}
