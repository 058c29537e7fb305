package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/timespiral/pkg/layout"
)

func testLayout() *layout.Layout {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &layout.Layout{
		Bars: []layout.Bar{
			{Index: 0, Date: day, Value: 3, ArcLength: 0, X: 10, Y: -5, Size: 2.5, Angle: 90},
			{Index: 1, Date: day.AddDate(0, 0, 1), Value: 4.5, ArcLength: 1.25, X: 11, Y: -6, Size: 4, Angle: 91},
		},
		Ticks: []layout.Tick{
			{Date: day, BarIndex: 0, Label: "2024-1", Angle: 90, Offset: 12},
		},
	}
}

func TestTicksTable(t *testing.T) {
	out := ticksTable(testLayout())
	assert.Contains(t, out, "Tick")
	assert.Contains(t, out, "2024-1")
	assert.Contains(t, out, "12.00")
}

func TestBarsTable(t *testing.T) {
	out := barsTable(testLayout())
	assert.Contains(t, out, "2024-01-02")
	assert.Contains(t, out, "4.5")
	assert.Contains(t, out, "1.25")
	// header, two rows, and the border lines
	assert.GreaterOrEqual(t, len(strings.Split(strings.TrimSpace(out), "\n")), 3)
}

func TestNum(t *testing.T) {
	assert.Equal(t, "1.50", num(1.5))
	assert.Equal(t, "-0.33", num(-1.0/3))
}
