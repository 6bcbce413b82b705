// Package output renders query results for the CLI: flat rows, grouped
// rows, and aggregate values, as JSON, JSONL, CSV, or an aligned table.
package output

import (
	"fmt"
	"sort"
	"strconv"
)

// Formatter renders the three result shapes a query chain can end with.
type Formatter interface {
	// FormatRows renders flat rows, with an optional header.
	FormatRows(headers []string, rows [][]interface{}) error

	// FormatGroups renders a grouped partition in first-seen key order.
	FormatGroups(headers []string, keys []string, groups map[string][][]interface{}) error

	// FormatValue renders an aggregate result: a scalar, or a per-group map.
	FormatValue(value interface{}) error
}

// cellText renders one cell value for text formats.
func cellText(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// rowText renders a row of cells for text formats.
func rowText(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = cellText(v)
	}
	return out
}

// valueEntries flattens an aggregate map into sorted key/value pairs so
// text output is deterministic.
func valueEntries(value interface{}) ([][2]string, bool) {
	switch m := value.(type) {
	case map[string]float64:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([][2]string, len(keys))
		for i, k := range keys {
			entries[i] = [2]string{k, cellText(m[k])}
		}
		return entries, true
	case map[string]int:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([][2]string, len(keys))
		for i, k := range keys {
			entries[i] = [2]string{k, strconv.Itoa(m[k])}
		}
		return entries, true
	default:
		return nil, false
	}
}
