package styles

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	errs "github.com/matzehuels/timespiral/pkg/errors"
)

// DefaultTitleFormat renders values as grouped integers.
const DefaultTitleFormat = ",.0d"

// Format is a parsed number format.
type Format struct {
	Comma     bool
	Precision int // -1 when not given
	Type      byte
}

// ParseFormat parses a format specifier of the form [,][.p][d|f|e|%|s].
func ParseFormat(spec string) (Format, error) {
	f := Format{Precision: -1}
	s := spec
	if strings.HasPrefix(s, ",") {
		f.Comma = true
		s = s[1:]
	}
	if strings.HasPrefix(s, ".") {
		end := 1
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
		}
		p, err := strconv.Atoi(s[1:end])
		if err != nil {
			return Format{}, errs.New(errs.ErrCodeInvalidStyle, "invalid number format %q: missing precision", spec)
		}
		f.Precision = p
		s = s[end:]
	}
	switch s {
	case "":
	case "d", "f", "e", "%", "s":
		f.Type = s[0]
	default:
		return Format{}, errs.New(errs.ErrCodeInvalidStyle, "invalid number format %q (expected [,][.precision][d|f|e|%%|s])", spec)
	}
	return f, nil
}

// FormatNumber formats v with spec. It is ParseFormat followed by Apply.
func FormatNumber(spec string, v float64) (string, error) {
	f, err := ParseFormat(spec)
	if err != nil {
		return "", err
	}
	return f.Apply(v), nil
}

// Apply formats v.
func (f Format) Apply(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	switch f.Type {
	case 'd':
		return f.fixed(math.Round(v), 0)
	case 'f':
		return f.fixed(v, f.precision(6))
	case '%':
		return f.fixed(v*100, f.precision(6)) + "%"
	case 'e':
		return exponent(strconv.FormatFloat(v, 'e', f.precision(6), 64))
	case 's':
		return strings.ReplaceAll(humanize.SIWithDigits(v, f.precision(3), ""), " ", "")
	default:
		if f.Precision >= 0 {
			return strconv.FormatFloat(v, 'g', max(f.Precision, 1), 64)
		}
		if f.Comma {
			return humanize.Commaf(v)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

func (f Format) precision(def int) int {
	if f.Precision < 0 {
		return def
	}
	return f.Precision
}

// fixed renders v with p decimals, grouping thousands when requested.
func (f Format) fixed(v float64, p int) string {
	if !f.Comma {
		return strconv.FormatFloat(v, 'f', p, 64)
	}
	if p == 0 && math.Abs(v) < math.MaxInt64 {
		return humanize.Comma(int64(math.Round(v)))
	}
	return humanize.FormatFloat("#,###."+strings.Repeat("#", p), v)
}

// exponent trims Go's two-digit exponent padding: 1.5e+03 becomes 1.5e+3.
func exponent(s string) string {
	mant, exp, ok := strings.Cut(s, "e")
	if !ok || len(exp) < 2 {
		return s
	}
	n, err := strconv.Atoi(exp[1:])
	if err != nil {
		return s
	}
	return mant + "e" + exp[:1] + strconv.Itoa(n)
}
