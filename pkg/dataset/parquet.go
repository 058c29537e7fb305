package dataset

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/format"

	errs "github.com/matzehuels/timespiral/pkg/errors"
)

// rowBatch is the number of rows read from a row group per call.
const rowBatch = 256

// ReadParquet decodes observations from a Parquet file. The date and value
// columns are looked up by the names in fields and must be top-level leaf
// columns.
//
// Date columns may be DATE (int32 days), TIMESTAMP (int64 in any unit),
// plain int64 Unix milliseconds, or strings accepted by [ParseDate]. Value
// columns may be any numeric physical type or a numeric string.
func ReadParquet(r io.ReaderAt, size int64, fields Fields) (*Dataset, error) {
	fields = fields.withDefaults()

	f, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "parquet: open")
	}

	schema := f.Schema()
	dateCol, ok := schema.Lookup(fields.Date)
	if !ok {
		return nil, errs.New(errs.ErrCodeInvalidInput, "parquet: no %q column", fields.Date)
	}
	valueCol, ok := schema.Lookup(fields.Value)
	if !ok {
		return nil, errs.New(errs.ErrCodeInvalidInput, "parquet: no %q column", fields.Value)
	}
	toDate := dateConverter(dateCol.Node.Type().LogicalType())

	var obs []Observation
	buf := make([]parquet.Row, rowBatch)
	for _, rg := range f.RowGroups() {
		rows := rg.Rows()
		for {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				o, cerr := observationFromRow(row, dateCol.ColumnIndex, valueCol.ColumnIndex, toDate)
				if cerr != nil {
					rows.Close()
					return nil, errs.Wrap(errs.ErrCodeInvalidInput, cerr, "parquet: row %d", len(obs))
				}
				obs = append(obs, o)
			}
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				rows.Close()
				return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "parquet: read rows")
			}
		}
		if err := rows.Close(); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInternal, err, "parquet: close rows")
		}
	}
	return New(obs), nil
}

func observationFromRow(row parquet.Row, dateIdx, valueIdx int, toDate func(parquet.Value) (time.Time, error)) (Observation, error) {
	var (
		o                   Observation
		haveDate, haveValue bool
	)
	for _, v := range row {
		switch v.Column() {
		case dateIdx:
			if v.IsNull() {
				return o, fmt.Errorf("null date")
			}
			d, err := toDate(v)
			if err != nil {
				return o, err
			}
			o.Date, haveDate = d, true
		case valueIdx:
			if v.IsNull() {
				return o, fmt.Errorf("null value")
			}
			f, err := numericValue(v)
			if err != nil {
				return o, err
			}
			o.Value, haveValue = f, true
		}
	}
	if !haveDate || !haveValue {
		return o, fmt.Errorf("row is missing the date or value column")
	}
	return o, nil
}

// dateConverter picks the conversion for a date column from its logical type.
func dateConverter(lt *format.LogicalType) func(parquet.Value) (time.Time, error) {
	unit := time.Millisecond
	if lt != nil && lt.Timestamp != nil {
		switch {
		case lt.Timestamp.Unit.Micros != nil:
			unit = time.Microsecond
		case lt.Timestamp.Unit.Nanos != nil:
			unit = time.Nanosecond
		}
	}
	return func(v parquet.Value) (time.Time, error) {
		switch v.Kind() {
		case parquet.Int32:
			return Day(time.Unix(0, 0).UTC().AddDate(0, 0, int(v.Int32()))), nil
		case parquet.Int64:
			return Day(time.Unix(0, v.Int64()*int64(unit)).UTC()), nil
		case parquet.ByteArray, parquet.FixedLenByteArray:
			return ParseDate(string(v.ByteArray()))
		default:
			return time.Time{}, fmt.Errorf("unsupported date column kind %s", v.Kind())
		}
	}
}

func numericValue(v parquet.Value) (float64, error) {
	switch v.Kind() {
	case parquet.Int32:
		return float64(v.Int32()), nil
	case parquet.Int64:
		return float64(v.Int64()), nil
	case parquet.Float:
		return float64(v.Float()), nil
	case parquet.Double:
		return v.Double(), nil
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return ParseValue(string(v.ByteArray()))
	default:
		return 0, fmt.Errorf("unsupported value column kind %s", v.Kind())
	}
}
