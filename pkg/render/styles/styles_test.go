package styles

import (
	"testing"

	errs "github.com/matzehuels/timespiral/pkg/errors"
)

func TestParseFontSize(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "8pt", want: 8 * 96.0 / 72.0},
		{in: "12px", want: 12},
		{in: " 11PX ", want: 11},
		{in: "1em", want: 16},
		{in: "0.5em", want: 8},
		{in: "10", want: 10},
		{in: "big", wantErr: true},
		{in: "0px", wantErr: true},
		{in: "-3pt", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFontSize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFontSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errs.Is(err, errs.ErrCodeInvalidStyle) {
				t.Errorf("code = %v, want %v", errs.GetCode(err), errs.ErrCodeInvalidStyle)
			}
			if got != tt.want {
				t.Errorf("ParseFontSize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBasicMetrics(t *testing.T) {
	var m BasicMetrics

	w, h := m.Measure("M", 13)
	if w != 7 || h != 13 {
		t.Errorf("Measure(M, 13) = (%v, %v), want (7, 13)", w, h)
	}

	w, h = m.Measure("2020-1", 26)
	if w != 6*7*2 || h != 26 {
		t.Errorf("Measure(2020-1, 26) = (%v, %v), want (84, 26)", w, h)
	}

	if got := CharHeight(m, 6.5); got != 6.5 {
		t.Errorf("CharHeight(6.5) = %v, want 6.5", got)
	}
}

func TestDefaultTickStyle(t *testing.T) {
	s := DefaultTickStyle()
	if s.Color != "#999" {
		t.Errorf("Color = %q", s.Color)
	}
	if s.FontSize != 8*96.0/72.0 {
		t.Errorf("FontSize = %v", s.FontSize)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		spec string
		v    float64
		want string
	}{
		{",.0d", 1234567.4, "1,234,567"},
		{",.0d", -1234.6, "-1,235"},
		{",.0d", 12, "12"},
		{"d", 1234.5, "1235"},
		{".2f", 3.14159, "3.14"},
		{",.2f", 1234.5, "1,234.50"},
		{"f", 0.5, "0.500000"},
		{".1%", 0.123, "12.3%"},
		{".0%", 0.5, "50%"},
		{".2e", 1500, "1.50e+3"},
		{".1s", 1500, "1.5k"},
		{".0s", 2e6, "2M"},
		{"", 2.5, "2.5"},
		{",", 1234.5, "1,234.5"},
		{".3", 3.14159, "3.14"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := FormatNumber(tt.spec, tt.v)
			if err != nil {
				t.Fatalf("FormatNumber(%q) error = %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("FormatNumber(%q, %v) = %q, want %q", tt.spec, tt.v, got, tt.want)
			}
		})
	}
}

func TestParseFormatErrors(t *testing.T) {
	for _, spec := range []string{"x", ".d", ",.2g", "$,.2f", ".2ff"} {
		if _, err := ParseFormat(spec); !errs.Is(err, errs.ErrCodeInvalidStyle) {
			t.Errorf("ParseFormat(%q) error = %v, want %v", spec, err, errs.ErrCodeInvalidStyle)
		}
	}
}

func TestEscapeXML(t *testing.T) {
	if got := EscapeXML(`a<b & "c"`); got != "a&lt;b &amp; &#34;c&#34;" {
		t.Errorf("EscapeXML = %q", got)
	}
}
