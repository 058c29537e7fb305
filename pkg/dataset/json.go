package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	errs "github.com/matzehuels/timespiral/pkg/errors"
)

// ReadJSON decodes an array of JSON objects from r:
//
//	[
//	  {"date": "2020-01-01", "value": 1},
//	  {"date": "2020-01-02", "value": "2.5"}
//	]
//
// Keys are looked up with the names in fields. Dates may be strings
// accepted by [ParseDate] or numbers holding Unix milliseconds; values may
// be numbers or numeric strings.
func ReadJSON(r io.Reader, fields Fields) (*Dataset, error) {
	fields = fields.withDefaults()

	dec := json.NewDecoder(r)
	dec.UseNumber()

	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "json: decode")
	}

	obs := make([]Observation, 0, len(rows))
	for i, row := range rows {
		o, err := observationFromRecord(row, fields)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "json: record %d", i)
		}
		obs = append(obs, o)
	}
	return New(obs), nil
}

// DecodeJSON is ReadJSON over an in-memory document.
func DecodeJSON(data []byte, fields Fields) (*Dataset, error) {
	return ReadJSON(bytes.NewReader(data), fields)
}

func observationFromRecord(row map[string]any, fields Fields) (Observation, error) {
	rawDate, ok := row[fields.Date]
	if !ok {
		return Observation{}, fmt.Errorf("missing %q", fields.Date)
	}
	rawValue, ok := row[fields.Value]
	if !ok {
		return Observation{}, fmt.Errorf("missing %q", fields.Value)
	}

	var o Observation
	switch v := rawDate.(type) {
	case string:
		d, err := ParseDate(v)
		if err != nil {
			return Observation{}, err
		}
		o.Date = d
	case json.Number:
		ms, err := v.Int64()
		if err != nil {
			return Observation{}, fmt.Errorf("date %q: %w", v, err)
		}
		o.Date = fromUnixMillis(ms)
	default:
		return Observation{}, fmt.Errorf("unsupported date type %T", rawDate)
	}

	switch v := rawValue.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return Observation{}, fmt.Errorf("value %q: %w", v, err)
		}
		o.Value = f
	case string:
		f, err := ParseValue(v)
		if err != nil {
			return Observation{}, err
		}
		o.Value = f
	default:
		return Observation{}, fmt.Errorf("unsupported value type %T", rawValue)
	}
	return o, nil
}
