package query

import (
	"fmt"
	"strconv"
)

// Query is one link of a chain over a materialized grid. Every operation
// returns a fresh Query and never mutates its receiver, so intermediate
// links can be kept and re-filtered independently.
//
// A Query moves through three row-level states: loaded (rows available),
// filtered (still rows, Where is repeatable), and grouped (rows partitioned
// by a column, row-level operations no longer apply). Sum, Avg, and Count
// terminate the chain with a scalar in the flat states and a per-group map
// in the grouped state.
type Query struct {
	rows      [][]interface{}
	headers   []string
	columnMap map[string]string
	start     CellAddress

	grouped   bool
	groups    map[string][][]interface{}
	groupKeys []string
}

// Range materializes a range reference (explicit "A1:D100" or a named
// range) from the store and starts a chain over it. Headers are
// auto-detected from the first row.
func Range(store Store, rangeRef string) (*Query, error) {
	grid, addr, err := materializeGrid(store, rangeRef)
	if err != nil {
		return nil, err
	}

	info := detectHeaders(grid)
	return &Query{
		rows:    info.rows,
		headers: info.headers,
		start:   addr.Start,
	}, nil
}

// Table starts a chain over a table registered in the store's metadata.
// Headers come from the table's column map instead of auto-detection.
func Table(store Store, tableName string) (*Query, error) {
	if store == nil {
		return nil, ErrNoStore
	}

	meta, ok := store.GetTableMetadata(tableName)
	if !ok || meta == nil {
		return nil, fmt.Errorf("%w: %q", ErrTableNotFound, tableName)
	}

	grid, addr, err := materializeGrid(store, meta.Range)
	if err != nil {
		return nil, err
	}

	info, err := resolveTableHeaders(meta, grid)
	if err != nil {
		return nil, err
	}

	return &Query{
		rows:      info.rows,
		headers:   info.headers,
		columnMap: info.columnMap,
		start:     addr.Start,
	}, nil
}

// FromMatrix starts a chain over a pre-resolved value matrix without
// touching a store. Cells are coerced and headers auto-detected the same
// way Range does it.
func FromMatrix(matrix [][]interface{}) *Query {
	info := detectHeaders(coerceMatrix(matrix))
	return &Query{
		rows:    info.rows,
		headers: info.headers,
		start:   CellAddress{Column: 1, Row: 1},
	}
}

// Headers returns the resolved column labels, or nil when the grid has no
// header row.
func (q *Query) Headers() []string {
	return q.headers
}

// Rows returns the current data rows. Empty after GroupBy.
func (q *Query) Rows() [][]interface{} {
	return q.rows
}

// Grouped reports whether GroupBy has been applied.
func (q *Query) Grouped() bool {
	return q.grouped
}

// Groups returns the row partition built by GroupBy, keyed by the
// stringified cell value. Nil before GroupBy.
func (q *Query) Groups() map[string][][]interface{} {
	return q.groups
}

// GroupKeys returns the group keys in first-seen order.
func (q *Query) GroupKeys() []string {
	return q.groupKeys
}

// Where filters the current rows with a condition string and returns a new
// Query carrying the surviving rows and the same headers.
func (q *Query) Where(condition string) (*Query, error) {
	if q.grouped {
		return nil, fmt.Errorf("%w: Where after GroupBy", ErrInvalidOperation)
	}

	filtered := make([][]interface{}, 0, len(q.rows))
	for _, row := range q.rows {
		match, err := evalConditionString(condition, row, q.headers, q.columnMap, q.start.Column)
		if err != nil {
			return nil, err
		}
		if match {
			filtered = append(filtered, row)
		}
	}

	return q.withRows(filtered), nil
}

// WhereFunc filters the current rows with a predicate function.
func (q *Query) WhereFunc(pred Predicate) (*Query, error) {
	if q.grouped {
		return nil, fmt.Errorf("%w: WhereFunc after GroupBy", ErrInvalidOperation)
	}
	if pred == nil {
		return nil, fmt.Errorf("%w: nil predicate", ErrInvalidCondition)
	}

	filtered := make([][]interface{}, 0, len(q.rows))
	for _, row := range q.rows {
		if pred(row) {
			filtered = append(filtered, row)
		}
	}

	return q.withRows(filtered), nil
}

// Pluck returns the ordered values of one column across the current rows
// as a plain list. It does not return a Query and is not valid after
// GroupBy.
func (q *Query) Pluck(column ColumnRef) ([]interface{}, error) {
	if q.grouped {
		return nil, fmt.Errorf("%w: Pluck after GroupBy", ErrInvalidOperation)
	}

	index, err := column.resolve(q.headers, q.columnMap, q.start.Column)
	if err != nil {
		return nil, err
	}

	values := make([]interface{}, 0, len(q.rows))
	for _, row := range q.rows {
		values = append(values, cellAt(row, index))
	}
	return values, nil
}

// GroupBy partitions the current rows by the stringified value of one
// column, preserving first-seen relative order within each group, and
// returns a new grouped Query with no flat rows.
func (q *Query) GroupBy(column ColumnRef) (*Query, error) {
	if q.grouped {
		return nil, fmt.Errorf("%w: GroupBy after GroupBy", ErrInvalidOperation)
	}

	index, err := column.resolve(q.headers, q.columnMap, q.start.Column)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][][]interface{})
	var keys []string
	for _, row := range q.rows {
		key := groupKey(cellAt(row, index))
		if _, seen := groups[key]; !seen {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], row)
	}

	return &Query{
		headers:   q.headers,
		columnMap: q.columnMap,
		start:     q.start,
		grouped:   true,
		groups:    groups,
		groupKeys: keys,
	}, nil
}

// Sum aggregates a numeric column. Flat queries return a float64; grouped
// queries return a map[string]float64 keyed by group. Non-numeric values
// are ignored.
func (q *Query) Sum(column ColumnRef) (interface{}, error) {
	index, err := column.resolve(q.headers, q.columnMap, q.start.Column)
	if err != nil {
		return nil, err
	}

	if !q.grouped {
		sum, _ := sumColumn(q.rows, index)
		return sum, nil
	}

	result := make(map[string]float64, len(q.groups))
	for key, rows := range q.groups {
		sum, _ := sumColumn(rows, index)
		result[key] = sum
	}
	return result, nil
}

// Avg averages a numeric column with the same flat/grouped shapes as Sum.
// A group with no numeric values averages to 0.
func (q *Query) Avg(column ColumnRef) (interface{}, error) {
	index, err := column.resolve(q.headers, q.columnMap, q.start.Column)
	if err != nil {
		return nil, err
	}

	if !q.grouped {
		return avgColumn(q.rows, index), nil
	}

	result := make(map[string]float64, len(q.groups))
	for key, rows := range q.groups {
		result[key] = avgColumn(rows, index)
	}
	return result, nil
}

// Count returns the row count: an int for flat queries, a map[string]int
// per group otherwise.
func (q *Query) Count() (interface{}, error) {
	if !q.grouped {
		return len(q.rows), nil
	}

	result := make(map[string]int, len(q.groups))
	for key, rows := range q.groups {
		result[key] = len(rows)
	}
	return result, nil
}

// Result is the universal terminal read: the group partition when grouped,
// the current rows otherwise.
func (q *Query) Result() interface{} {
	if q.grouped {
		return q.groups
	}
	return q.rows
}

// withRows clones the query with a new row set and the same headers and
// range origin.
func (q *Query) withRows(rows [][]interface{}) *Query {
	return &Query{
		rows:      rows,
		headers:   q.headers,
		columnMap: q.columnMap,
		start:     q.start,
	}
}

// groupKey stringifies a cell value for use as a group key.
func groupKey(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		// Whole numbers group as "3", not "3.000000"
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func sumColumn(rows [][]interface{}, index int) (float64, int) {
	sum := 0.0
	count := 0
	for _, row := range rows {
		if n, ok := toFloat64(cellAt(row, index)); ok {
			sum += n
			count++
		}
	}
	return sum, count
}

func avgColumn(rows [][]interface{}, index int) float64 {
	sum, count := sumColumn(rows, index)
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
