package query

import (
	"fmt"
	"strings"
)

// resolveRangeRef expands a named range into its "START:END" form. A
// reference containing a colon is taken as explicit; anything else must be
// a defined named range.
func resolveRangeRef(store Store, rangeRef string) (string, error) {
	if strings.Contains(rangeRef, ":") {
		return rangeRef, nil
	}
	if resolved, ok := store.ResolveNamedRange(rangeRef); ok {
		return resolved, nil
	}
	return "", fmt.Errorf("%w: %q is not a range or a defined named range", ErrInvalidRange, rangeRef)
}

// materializeGrid reads a rectangular range out of the store into a
// row-major grid, coercing each cell with CoerceNumeric. The grid is a
// snapshot: later writes to the store do not change it.
func materializeGrid(store Store, rangeRef string) ([][]interface{}, RangeAddress, error) {
	if store == nil {
		return nil, RangeAddress{}, ErrNoStore
	}

	resolved, err := resolveRangeRef(store, rangeRef)
	if err != nil {
		return nil, RangeAddress{}, err
	}

	addr, err := ParseRange(resolved)
	if err != nil {
		return nil, RangeAddress{}, err
	}

	grid := make([][]interface{}, 0, addr.Rows())
	for row := addr.Start.Row; row <= addr.End.Row; row++ {
		cells := make([]interface{}, 0, addr.Columns())
		for col := addr.Start.Column; col <= addr.End.Column; col++ {
			ref, err := FormatAddress(col, row)
			if err != nil {
				return nil, RangeAddress{}, err
			}
			raw, err := store.GetCellValue(ref)
			if err != nil {
				return nil, RangeAddress{}, fmt.Errorf("reading cell %s: %w", ref, err)
			}
			cells = append(cells, CoerceNumeric(raw))
		}
		grid = append(grid, cells)
	}

	return grid, addr, nil
}

// coerceMatrix applies CoerceNumeric to every cell of a pre-resolved
// matrix, the bypass path used when a grid is supplied directly instead of
// read from a store.
func coerceMatrix(matrix [][]interface{}) [][]interface{} {
	grid := make([][]interface{}, len(matrix))
	for i, row := range matrix {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = CoerceNumeric(v)
		}
		grid[i] = cells
	}
	return grid
}
