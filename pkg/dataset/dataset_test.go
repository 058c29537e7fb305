package dataset

import (
	"math"
	"testing"
	"time"

	errs "github.com/matzehuels/timespiral/pkg/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewNormalisesDates(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	ds := New([]Observation{
		{Date: time.Date(2020, 1, 1, 23, 30, 0, 0, loc), Value: 1},
		{Date: time.Date(2020, 1, 2, 6, 0, 0, 0, time.UTC), Value: 2},
	})

	if got := ds.At(0).Date; !got.Equal(date(2020, 1, 1)) {
		t.Errorf("At(0).Date = %v, want 2020-01-01", got)
	}
	if got := ds.At(1).Date; !got.Equal(date(2020, 1, 2)) {
		t.Errorf("At(1).Date = %v, want 2020-01-02", got)
	}
	if ds.At(0).Date.Location() != time.UTC {
		t.Errorf("location = %v, want UTC", ds.At(0).Date.Location())
	}
}

func TestNewCopiesInput(t *testing.T) {
	obs := []Observation{{Date: date(2020, 1, 1), Value: 1}}
	ds := New(obs)
	obs[0].Value = 99

	if ds.At(0).Value != 1 {
		t.Errorf("dataset mutated through input slice: %v", ds.At(0).Value)
	}

	out := ds.Observations()
	out[0].Value = 42
	if ds.At(0).Value != 1 {
		t.Errorf("dataset mutated through Observations(): %v", ds.At(0).Value)
	}
}

func TestExtent(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		lo, hi float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{3}, 3, 3},
		{"unsorted", []float64{5, -2, 10, 4}, -2, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := make([]Observation, len(tt.values))
			for i, v := range tt.values {
				obs[i] = Observation{Date: date(2020, 1, i+1), Value: v}
			}
			lo, hi := New(obs).Extent()
			if lo != tt.lo || hi != tt.hi {
				t.Errorf("Extent() = (%v, %v), want (%v, %v)", lo, hi, tt.lo, tt.hi)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		obs     []Observation
		strict  bool
		wantErr bool
	}{
		{
			name:    "empty",
			obs:     nil,
			wantErr: true,
		},
		{
			name: "valid",
			obs: []Observation{
				{Date: date(2020, 1, 1), Value: 1},
				{Date: date(2020, 1, 2), Value: 2},
			},
		},
		{
			name:    "NaN value",
			obs:     []Observation{{Date: date(2020, 1, 1), Value: math.NaN()}},
			wantErr: true,
		},
		{
			name:    "infinite value",
			obs:     []Observation{{Date: date(2020, 1, 1), Value: math.Inf(-1)}},
			wantErr: true,
		},
		{
			name:    "missing date",
			obs:     []Observation{{Value: 1}},
			wantErr: true,
		},
		{
			name: "descending dates are tolerated by default",
			obs: []Observation{
				{Date: date(2020, 1, 2), Value: 1},
				{Date: date(2020, 1, 1), Value: 2},
			},
		},
		{
			name: "descending dates rejected in strict mode",
			obs: []Observation{
				{Date: date(2020, 1, 2), Value: 1},
				{Date: date(2020, 1, 1), Value: 2},
			},
			strict:  true,
			wantErr: true,
		},
		{
			name: "equal dates pass strict mode",
			obs: []Observation{
				{Date: date(2020, 1, 1), Value: 1},
				{Date: date(2020, 1, 1), Value: 2},
			},
			strict: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.obs).Validate(tt.strict)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errs.Is(err, errs.ErrCodeInvalidInput) {
				t.Errorf("Validate() code = %v, want %v", errs.GetCode(err), errs.ErrCodeInvalidInput)
			}
		})
	}
}

func TestAllStopsEarly(t *testing.T) {
	ds := New([]Observation{
		{Date: date(2020, 1, 1), Value: 1},
		{Date: date(2020, 1, 2), Value: 2},
		{Date: date(2020, 1, 3), Value: 3},
	})

	var seen []int
	for i := range ds.All() {
		seen = append(seen, i)
		if i == 1 {
			break
		}
	}
	if len(seen) != 2 {
		t.Errorf("All() yielded %v, want [0 1]", seen)
	}
}

func TestString(t *testing.T) {
	if got := New(nil).String(); got != "dataset(empty)" {
		t.Errorf("String() = %q", got)
	}
	ds := New([]Observation{
		{Date: date(2020, 1, 1), Value: 1},
		{Date: date(2020, 3, 1), Value: 2},
	})
	want := "dataset(2 observations, 2020-01-01..2020-03-01)"
	if got := ds.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2020-01-05", want: date(2020, 1, 5)},
		{in: " 2020-01-05 ", want: date(2020, 1, 5)},
		{in: "2020-01-05T13:45:00Z", want: date(2020, 1, 5)},
		{in: "2020-01-05 13:45:00", want: date(2020, 1, 5)},
		{in: "2020/01/05", want: date(2020, 1, 5)},
		{in: "2020-1-5", want: date(2020, 1, 5)},
		{in: "05.01.2020", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "42", want: 42},
		{in: " -1.5 ", want: -1.5},
		{in: "1,234.5", want: 1234.5},
		{in: "1e3", want: 1000},
		{in: "n/a", wantErr: true},
		{in: "NaN", wantErr: true},
		{in: "-Inf", wantErr: true},
		{in: "1e999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseValue(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseValue(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseValue(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
