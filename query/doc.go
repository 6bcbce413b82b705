// Package query implements a chainable query and aggregation engine over
// rectangular ranges of a spreadsheet cell grid.
//
// A chain starts from a range reference or a registered table, reads a
// snapshot of the grid through a Store, and then filters, groups, and
// aggregates it:
//
//	q, err := query.Range(store, "A1:B6")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	q, err = q.Where("Amount > 1000")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	g, err := q.GroupBy(query.ByName("Region"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	totals, err := g.Sum(query.ByName("Amount"))
//
// Columns are addressed three ways: by 0-based index (ByIndex), by column
// letter (ByLetter), or by header name (ByName). Condition strings accept
// header names and column_<letter> tokens, comparison operators, && and
// ||, and parentheses; they are evaluated by a dedicated restricted
// interpreter, never by a general-purpose evaluator.
//
// A second family of functions (SumRange, MedianRange, StdevRange,
// SumIfRange, ...) aggregates a flattened range directly, with no header
// handling.
package query
