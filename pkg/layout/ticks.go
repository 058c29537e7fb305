package layout

import (
	"fmt"
	"time"

	"github.com/matzehuels/timespiral/pkg/dataset"
	"github.com/matzehuels/timespiral/pkg/scale"
)

// placeTicks selects the tick instants for cfg.Interval and attaches each
// to the bar on the same date. Instants without a bar are dropped.
func placeTicks(lay *Layout, ds *dataset.Dataset, cfg Config) []Tick {
	var instants []time.Time
	switch cfg.Interval {
	case IntervalAuto:
		instants = lay.Scales.Time.Ticks(cfg.TickCount)
	default:
		instants = scale.MonthStarts(ds.First().Date, ds.Last().Date)
	}

	byDate := make(map[int64]int, len(lay.Bars))
	for i := len(lay.Bars) - 1; i >= 0; i-- {
		byDate[lay.Bars[i].Date.Unix()] = i
	}
	offsets := make(map[int]float64, len(lay.Offsets))
	for _, o := range lay.Offsets {
		offsets[o.Index] = o.MaxSize
	}

	ticks := make([]Tick, 0, len(instants))
	for _, at := range instants {
		i, ok := byDate[at.Unix()]
		if !ok {
			continue
		}
		bar := &lay.Bars[i]

		if cfg.Centered {
			h, ok := offsets[i]
			if !ok {
				h = lay.LayerHeight
			}
			bar.Offset = h/2 + lay.BarWidth
		}

		ticks = append(ticks, Tick{
			Date:      bar.Date,
			BarIndex:  i,
			ArcLength: bar.ArcLength,
			X:         bar.X,
			Y0:        bar.Y0,
			Angle:     bar.Angle,
			Offset:    bar.Offset,
			Label:     Label(bar.Date),
		})
	}
	return ticks
}

// Label formats a tick date as "<year>-<month>", month unpadded.
func Label(t time.Time) string {
	return fmt.Sprintf("%d-%d", t.Year(), int(t.Month()))
}
