package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	errs "github.com/matzehuels/timespiral/pkg/errors"
)

// Supported file formats for Import.
const (
	FormatCSV     = "csv"
	FormatTSV     = "tsv"
	FormatJSON    = "json"
	FormatParquet = "parquet"
)

// FormatFromPath derives the input format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case FormatCSV, FormatTSV, FormatJSON, FormatParquet:
		return ext, nil
	case "txt":
		return FormatCSV, nil
	case "pq":
		return FormatParquet, nil
	default:
		return "", errs.New(errs.ErrCodeInvalidFormat, "unsupported dataset extension %q (use .csv, .tsv, .json or .parquet)", filepath.Ext(path))
	}
}

// Import reads the dataset file at path, choosing the decoder from the
// file extension.
func Import(path string, fields Fields) (*Dataset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "dataset %s", path)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "read %s", path)
	}
	return Decode(data, format, fields)
}

// Decode parses an in-memory dataset in the given format.
func Decode(data []byte, format string, fields Fields) (*Dataset, error) {
	switch format {
	case FormatCSV:
		return ReadCSV(bytes.NewReader(data), fields, ',')
	case FormatTSV:
		return ReadCSV(bytes.NewReader(data), fields, '\t')
	case FormatJSON:
		return DecodeJSON(data, fields)
	case FormatParquet:
		return ReadParquet(bytes.NewReader(data), int64(len(data)), fields)
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported dataset format %q", format)
	}
}
