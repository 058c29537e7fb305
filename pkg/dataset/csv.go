package dataset

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	errs "github.com/matzehuels/timespiral/pkg/errors"
)

// ReadCSV decodes a delimited table from r. The first record is a header;
// the date and value columns are located by the names in fields (case
// insensitive). Blank lines are skipped. ReadCSV does not close r.
func ReadCSV(r io.Reader, fields Fields, comma rune) (*Dataset, error) {
	fields = fields.withDefaults()

	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errs.New(errs.ErrCodeInvalidInput, "csv: missing header")
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "csv: read header")
	}

	dateCol, valueCol := -1, -1
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		switch {
		case strings.EqualFold(name, fields.Date):
			dateCol = i
		case strings.EqualFold(name, fields.Value):
			valueCol = i
		}
	}
	if dateCol < 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "csv: no %q column in header", fields.Date)
	}
	if valueCol < 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "csv: no %q column in header", fields.Value)
	}

	var obs []Observation
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "csv: line %d", line)
		}
		if len(rec) <= max(dateCol, valueCol) {
			return nil, errs.New(errs.ErrCodeInvalidInput, "csv: line %d: expected at least %d columns, got %d", line, max(dateCol, valueCol)+1, len(rec))
		}
		date, err := ParseDate(rec[dateCol])
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "csv: line %d", line)
		}
		value, err := ParseValue(rec[valueCol])
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "csv: line %d", line)
		}
		obs = append(obs, Observation{Date: date, Value: value})
	}
	return New(obs), nil
}
