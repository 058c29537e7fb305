package sink

import (
	"bytes"
	"time"

	"github.com/parquet-go/parquet-go"

	errs "github.com/matzehuels/timespiral/pkg/errors"
	"github.com/matzehuels/timespiral/pkg/layout"
)

// ParquetBar is one row of the Parquet bar table.
type ParquetBar struct {
	Index     int64     `parquet:"index"`
	Date      time.Time `parquet:"date,date"`
	Value     float64   `parquet:"value"`
	ArcLength float64   `parquet:"arc_length"`
	X         float64   `parquet:"x"`
	Y         float64   `parquet:"y"`
	Y0        float64   `parquet:"y0"`
	Size      float64   `parquet:"size"`
	Angle     float64   `parquet:"angle"`
	Offset    float64   `parquet:"offset"`
	Fill      string    `parquet:"fill"`
	Tick      string    `parquet:"tick"` // tick label, empty when the bar has none
}

// ParquetRows converts the layout's bars into Parquet rows.
func ParquetRows(l *layout.Layout, opts ...SVGOption) []ParquetBar {
	s := newSVGRenderer(opts...)
	ticks := make(map[int]string, len(l.Ticks))
	for _, t := range l.Ticks {
		ticks[t.BarIndex] = t.Label
	}

	rows := make([]ParquetBar, len(l.Bars))
	for i, b := range l.Bars {
		rows[i] = ParquetBar{
			Index:     int64(b.Index),
			Date:      b.Date,
			Value:     b.Value,
			ArcLength: b.ArcLength,
			X:         b.X,
			Y:         b.Y,
			Y0:        b.Y0,
			Size:      b.Size,
			Angle:     b.Angle,
			Offset:    b.Offset,
			Fill:      s.fill(b),
			Tick:      ticks[b.Index],
		}
	}
	return rows
}

// RenderParquet writes the bar table as a Parquet file. Fills are resolved
// with the given drawing options.
func RenderParquet(l *layout.Layout, opts ...SVGOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := parquet.Write(&buf, ParquetRows(l, opts...)); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "write parquet")
	}
	return buf.Bytes(), nil
}
