package styles

// Tick defaults.
const (
	DefaultTickColor = "#999"
	DefaultTickSize  = "8pt"
)

// TickStyle controls how tick lines and labels are drawn.
type TickStyle struct {
	Color    string  // CSS color of the line and label
	FontSize float64 // label size in pixels
}

// DefaultTickStyle returns grey 8pt ticks.
func DefaultTickStyle() TickStyle {
	size, _ := ParseFontSize(DefaultTickSize)
	return TickStyle{Color: DefaultTickColor, FontSize: size}
}
