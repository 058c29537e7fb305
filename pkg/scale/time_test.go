package scale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTimeMapEndpoints(t *testing.T) {
	// Awkward lengths must still land exactly on the range ends.
	for _, length := range []float64{1, 1234.5678, 3947.123456789, 1e-3} {
		s := NewTime(day(2020, 1, 1), day(2021, 7, 13), 0, length)
		assert.Equal(t, 0.0, s.Map(day(2020, 1, 1)))
		assert.Equal(t, length, s.Map(day(2021, 7, 13)))
	}
}

func TestTimeMapLinear(t *testing.T) {
	s := NewTime(day(2020, 1, 1), day(2020, 1, 11), 0, 100)
	assert.InDelta(t, 50, s.Map(day(2020, 1, 6)), 1e-9)
	assert.InDelta(t, 110, s.Map(day(2020, 1, 12)), 1e-9)

	prev := -1.0
	for d := range 10 {
		got := s.Map(day(2020, 1, 1+d))
		assert.Greater(t, got, prev)
		prev = got
	}
}

func TestTimeMapZeroSpan(t *testing.T) {
	s := NewTime(day(2020, 1, 1), day(2020, 1, 1), 0, 500)
	assert.Equal(t, 0.0, s.Map(day(2020, 1, 1)))
	assert.True(t, day(2020, 1, 1).Equal(s.Invert(250)))
}

func TestTimeInvert(t *testing.T) {
	s := NewTime(day(2020, 1, 1), day(2020, 1, 11), 0, 100)
	assert.True(t, day(2020, 1, 6).Equal(s.Invert(50)))
}

func TestMonthStarts(t *testing.T) {
	tests := []struct {
		name        string
		first, last time.Time
		want        []time.Time
	}{
		{
			name:  "month starts inclusive",
			first: day(2020, 1, 1), last: day(2020, 3, 1),
			want: []time.Time{day(2020, 1, 1), day(2020, 2, 1), day(2020, 3, 1)},
		},
		{
			name:  "mid-month bounds",
			first: day(2020, 11, 15), last: day(2021, 2, 10),
			want: []time.Time{day(2020, 12, 1), day(2021, 1, 1), day(2021, 2, 1)},
		},
		{
			name:  "within one month",
			first: day(2020, 5, 2), last: day(2020, 5, 30),
			want: nil,
		},
		{
			name:  "single day",
			first: day(2020, 5, 1), last: day(2020, 5, 1),
			want: []time.Time{day(2020, 5, 1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthStarts(tt.first, tt.last))
		})
	}
}

func TestTimeTicks(t *testing.T) {
	tests := []struct {
		name        string
		first, last time.Time
		count       int
		check       func(t *testing.T, ticks []time.Time)
	}{
		{
			name:  "ten days picks daily",
			first: day(2020, 1, 1), last: day(2020, 1, 10),
			count: 10,
			check: func(t *testing.T, ticks []time.Time) {
				require.Len(t, ticks, 10)
				assert.Equal(t, day(2020, 1, 1), ticks[0])
				assert.Equal(t, day(2020, 1, 10), ticks[9])
			},
		},
		{
			name:  "one year picks monthly",
			first: day(2020, 1, 1), last: day(2020, 12, 31),
			count: 10,
			check: func(t *testing.T, ticks []time.Time) {
				require.Len(t, ticks, 12)
				for _, tk := range ticks {
					assert.Equal(t, 1, tk.Day())
				}
			},
		},
		{
			name:  "two months picks weekly sundays",
			first: day(2020, 1, 1), last: day(2020, 3, 1),
			count: 10,
			check: func(t *testing.T, ticks []time.Time) {
				require.NotEmpty(t, ticks)
				for _, tk := range ticks {
					assert.Equal(t, time.Sunday, tk.Weekday())
				}
			},
		},
		{
			name:  "three years picks quarterly",
			first: day(2018, 1, 1), last: day(2020, 12, 31),
			count: 10,
			check: func(t *testing.T, ticks []time.Time) {
				require.Len(t, ticks, 12)
				for _, tk := range ticks {
					assert.Equal(t, 0, (int(tk.Month())-1)%3)
				}
			},
		},
		{
			name:  "decades use five-year steps",
			first: day(1950, 1, 1), last: day(2020, 1, 1),
			count: 10,
			check: func(t *testing.T, ticks []time.Time) {
				require.NotEmpty(t, ticks)
				for _, tk := range ticks {
					assert.Equal(t, 0, tk.Year()%5)
				}
			},
		},
		{
			name:  "no count",
			first: day(2020, 1, 1), last: day(2020, 12, 31),
			count: 0,
			check: func(t *testing.T, ticks []time.Time) {
				assert.Empty(t, ticks)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewTime(tt.first, tt.last, 0, 1)
			ticks := s.Ticks(tt.count)
			for _, tk := range ticks {
				assert.False(t, tk.Before(tt.first), "tick %v before domain", tk)
				assert.False(t, tk.After(tt.last), "tick %v after domain", tk)
			}
			tt.check(t, ticks)
		})
	}
}

func TestNewSet(t *testing.T) {
	set := NewSet(day(2020, 1, 1), day(2020, 3, 1), 1, 10, 900, 5, 40)
	assert.Equal(t, 900.0, set.Time.Map(day(2020, 3, 1)))
	lo, hi := set.Size.Domain()
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 10.0, hi)
	assert.Equal(t, 40.0, set.Size.Map(10))
}
