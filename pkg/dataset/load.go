package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/tealeg/xlsx/v3"

	"github.com/matzehuels/geoquick/pkg/errors"
)

// missingTokens are cell values treated as absent.
var missingTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
}

// IsMissing reports whether a raw cell value denotes a missing value.
func IsMissing(s string) bool {
	return missingTokens[strings.TrimSpace(s)]
}

// FromRecords builds a dataset from a header row and data rows.
//
// Short rows are padded with missing values and long rows are truncated.
// Empty header cells are named "Unnamed: i" and duplicate names get a ".n"
// suffix, so every column is addressable. Each column is numeric when all of
// its non-missing cells parse as floats, otherwise categorical.
func FromRecords(header []string, rows [][]string) (*Dataset, error) {
	if len(header) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "dataset has no header row")
	}
	names := columnNames(header)

	b := new(table.Builder)
	for j, name := range names {
		raw := make([]string, len(rows))
		for i, r := range rows {
			if j < len(r) {
				raw[i] = strings.TrimSpace(r[j])
			}
		}
		if fs, ok := parseNumeric(raw); ok {
			b.Add(name, fs)
			continue
		}
		for i, s := range raw {
			if IsMissing(s) {
				raw[i] = ""
			}
		}
		b.Add(name, raw)
	}
	return New(b.Done()), nil
}

func columnNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n)
		} else {
			seen[name] = 1
		}
		names[i] = name
	}
	return names
}

// parseNumeric converts raw cells to floats. It fails when any non-missing
// cell is not a number, or when the column has no values at all.
func parseNumeric(raw []string) ([]float64, bool) {
	out := make([]float64, len(raw))
	present := 0
	for i, s := range raw {
		if IsMissing(s) {
			out[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		out[i] = f
		present++
	}
	return out, present > 0
}

// ReadCSV decodes delimited text from r. The first record is the header.
func ReadCSV(r io.Reader, comma rune) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse delimited text")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "dataset is empty")
	}
	return FromRecords(records[0], records[1:])
}

// ReadXLSX decodes the first worksheet of an Excel workbook.
func ReadXLSX(data []byte) (*Dataset, error) {
	wb, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open workbook")
	}
	if len(wb.Sheets) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "workbook has no sheets")
	}

	var records [][]string
	err = wb.Sheets[0].ForEachRow(func(row *xlsx.Row) error {
		var rec []string
		err := row.ForEachCell(func(c *xlsx.Cell) error {
			col, _ := c.GetCoordinates()
			for len(rec) <= col {
				rec = append(rec, "")
			}
			v, err := c.FormattedValue()
			if err != nil {
				v = c.Value
			}
			rec[col] = v
			return nil
		})
		records = append(records, rec)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read worksheet")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "worksheet is empty")
	}
	return FromRecords(records[0], records[1:])
}

// Open reads a dataset file, choosing the decoder from its extension:
// .csv is comma-separated, .txt and .tsv are tab-separated, .xlsx is Excel.
func Open(path string) (*Dataset, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv", ".txt", ".tsv", ".xlsx":
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported file type %q (want .csv, .txt, .tsv or .xlsx)", ext)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	switch ext {
	case ".xlsx":
		return ReadXLSX(data)
	case ".txt", ".tsv":
		return ReadCSV(bytes.NewReader(data), '\t')
	}
	return ReadCSV(bytes.NewReader(data), ',')
}
