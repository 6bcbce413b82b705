package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// TableFormatter writes results as an aligned text table.
type TableFormatter struct {
	w io.Writer
}

// NewTableFormatter creates a table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{w: w}
}

// FormatRows implements Formatter.
func (f *TableFormatter) FormatRows(headers []string, rows [][]interface{}) error {
	table := tablewriter.NewWriter(f.w)
	if len(headers) > 0 {
		table.SetHeader(headers)
	}
	for _, row := range rows {
		table.Append(rowText(row))
	}
	table.Render()
	return nil
}

// FormatGroups implements Formatter, prepending a "group" column.
func (f *TableFormatter) FormatGroups(headers []string, keys []string, groups map[string][][]interface{}) error {
	table := tablewriter.NewWriter(f.w)
	if len(headers) > 0 {
		table.SetHeader(append([]string{"group"}, headers...))
	}
	for _, key := range keys {
		for _, row := range groups[key] {
			table.Append(append([]string{key}, rowText(row)...))
		}
	}
	table.Render()
	return nil
}

// FormatValue implements Formatter.
func (f *TableFormatter) FormatValue(value interface{}) error {
	table := tablewriter.NewWriter(f.w)
	if entries, ok := valueEntries(value); ok {
		table.SetHeader([]string{"group", "value"})
		for _, e := range entries {
			table.Append([]string{e[0], e[1]})
		}
	} else {
		table.Append([]string{cellText(value)})
	}
	table.Render()
	return nil
}
