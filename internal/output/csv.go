package output

import (
	"encoding/csv"
	"io"
)

// CSVFormatter writes results as CSV.
type CSVFormatter struct {
	w io.Writer
}

// NewCSVFormatter creates a CSV formatter.
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{w: w}
}

// FormatRows implements Formatter. A header line is written when headers
// are known.
func (f *CSVFormatter) FormatRows(headers []string, rows [][]interface{}) error {
	cw := csv.NewWriter(f.w)
	if len(headers) > 0 {
		if err := cw.Write(headers); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := cw.Write(rowText(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatGroups implements Formatter, prepending a "group" column.
func (f *CSVFormatter) FormatGroups(headers []string, keys []string, groups map[string][][]interface{}) error {
	cw := csv.NewWriter(f.w)
	if len(headers) > 0 {
		if err := cw.Write(append([]string{"group"}, headers...)); err != nil {
			return err
		}
	}
	for _, key := range keys {
		for _, row := range groups[key] {
			if err := cw.Write(append([]string{key}, rowText(row)...)); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatValue implements Formatter. A grouped aggregate becomes key,value
// lines; a scalar becomes a single line.
func (f *CSVFormatter) FormatValue(value interface{}) error {
	cw := csv.NewWriter(f.w)
	if entries, ok := valueEntries(value); ok {
		for _, e := range entries {
			if err := cw.Write([]string{e[0], e[1]}); err != nil {
				return err
			}
		}
	} else {
		if err := cw.Write([]string{cellText(value)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
