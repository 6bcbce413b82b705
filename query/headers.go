package query

import (
	"fmt"
	"sort"
)

// headerInfo is the result of header resolution: the ordered labels, the
// logical-name-to-letter map when table metadata supplied one, and the data
// rows with any header row stripped.
type headerInfo struct {
	headers   []string
	columnMap map[string]string
	rows      [][]interface{}
}

// resolveTableHeaders builds headers from explicit table metadata. Column
// entries are ordered by their resolved column index; when HasHeader is
// set the grid's first row is dropped without being validated against the
// declared names.
func resolveTableHeaders(meta *TableMetadata, grid [][]interface{}) (headerInfo, error) {
	type entry struct {
		name  string
		index int
	}

	entries := make([]entry, 0, len(meta.Columns))
	for name, letter := range meta.Columns {
		index, err := ColumnLetterToIndex(letter)
		if err != nil {
			return headerInfo{}, fmt.Errorf("table column %q: %w", name, err)
		}
		entries = append(entries, entry{name: name, index: index})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].index < entries[j].index })

	headers := make([]string, len(entries))
	for i, e := range entries {
		headers[i] = e.name
	}

	rows := grid
	if meta.HasHeader && len(rows) > 0 {
		rows = rows[1:]
	}

	return headerInfo{headers: headers, columnMap: meta.Columns, rows: rows}, nil
}

// detectHeaders applies the heuristic header check: the first row is
// treated as a header row when every cell in it is a non-empty string and
// at least one later row contains a numeric cell. Otherwise the grid is
// used as-is with no headers.
func detectHeaders(grid [][]interface{}) headerInfo {
	if len(grid) == 0 {
		return headerInfo{rows: grid}
	}

	first := grid[0]
	if len(first) == 0 {
		return headerInfo{rows: grid}
	}

	labels := make([]string, len(first))
	for i, cell := range first {
		s, ok := toString(cell)
		if !ok || s == "" {
			return headerInfo{rows: grid}
		}
		labels[i] = s
	}

	numericBelow := false
	for _, row := range grid[1:] {
		for _, cell := range row {
			if _, ok := toFloat64(cell); ok {
				numericBelow = true
				break
			}
		}
		if numericBelow {
			break
		}
	}
	if !numericBelow {
		return headerInfo{rows: grid}
	}

	return headerInfo{headers: labels, rows: grid[1:]}
}
