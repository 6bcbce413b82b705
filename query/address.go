package query

import (
	"fmt"
	"strconv"
	"strings"
)

// CellAddress identifies a single cell by 1-based column and row.
type CellAddress struct {
	Column int
	Row    int
}

// String returns the canonical A1-style form of the address.
func (a CellAddress) String() string {
	letters, err := ColumnIndexToLetter(a.Column)
	if err != nil {
		return fmt.Sprintf("?%d", a.Row)
	}
	return letters + strconv.Itoa(a.Row)
}

// RangeAddress is an ordered pair of cell addresses. Start is always at or
// above and to the left of End.
type RangeAddress struct {
	Start CellAddress
	End   CellAddress
}

// String returns the canonical "START:END" form of the range.
func (r RangeAddress) String() string {
	return r.Start.String() + ":" + r.End.String()
}

// Rows returns the number of rows the range spans.
func (r RangeAddress) Rows() int {
	return r.End.Row - r.Start.Row + 1
}

// Columns returns the number of columns the range spans.
func (r RangeAddress) Columns() int {
	return r.End.Column - r.Start.Column + 1
}

// ColumnLetterToIndex converts a column letter sequence to its 1-based
// column index (A=1, Z=26, AA=27). The encoding is base 26 with no zero
// digit.
func ColumnLetterToIndex(letters string) (int, error) {
	if letters == "" {
		return 0, fmt.Errorf("%w: empty column letters", ErrInvalidReference)
	}

	index := 0
	for _, ch := range strings.ToUpper(letters) {
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("%w: invalid column letters %q", ErrInvalidReference, letters)
		}
		index = index*26 + int(ch-'A') + 1
	}
	return index, nil
}

// ColumnIndexToLetter converts a 1-based column index to its letter form.
// It is the exact inverse of ColumnLetterToIndex.
func ColumnIndexToLetter(index int) (string, error) {
	if index < 1 {
		return "", fmt.Errorf("%w: column index %d out of range", ErrInvalidReference, index)
	}

	var letters []byte
	for index > 0 {
		index--
		letters = append([]byte{byte('A' + index%26)}, letters...)
		index /= 26
	}
	return string(letters), nil
}

// ParseAddress parses an A1-style cell reference into a CellAddress. The
// reference must be a letter sequence followed by a row number.
func ParseAddress(ref string) (CellAddress, error) {
	split := 0
	for split < len(ref) && isLetter(ref[split]) {
		split++
	}

	letters := ref[:split]
	digits := ref[split:]
	if letters == "" || digits == "" {
		return CellAddress{}, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return CellAddress{}, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
		}
	}

	column, err := ColumnLetterToIndex(letters)
	if err != nil {
		return CellAddress{}, err
	}
	row, err := strconv.Atoi(digits)
	if err != nil || row < 1 {
		return CellAddress{}, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}

	return CellAddress{Column: column, Row: row}, nil
}

// FormatAddress renders a (column, row) pair as an A1-style reference. It is
// the exact inverse of ParseAddress.
func FormatAddress(column, row int) (string, error) {
	if row < 1 {
		return "", fmt.Errorf("%w: row %d out of range", ErrInvalidReference, row)
	}
	letters, err := ColumnIndexToLetter(column)
	if err != nil {
		return "", err
	}
	return letters + strconv.Itoa(row), nil
}

// ParseRange parses a "START:END" range reference. The end cell must be at
// or below and to the right of the start cell.
func ParseRange(rangeRef string) (RangeAddress, error) {
	parts := strings.Split(rangeRef, ":")
	if len(parts) != 2 {
		return RangeAddress{}, fmt.Errorf("%w: %q", ErrInvalidRange, rangeRef)
	}

	start, err := ParseAddress(parts[0])
	if err != nil {
		return RangeAddress{}, fmt.Errorf("%w: %q", ErrInvalidRange, rangeRef)
	}
	end, err := ParseAddress(parts[1])
	if err != nil {
		return RangeAddress{}, fmt.Errorf("%w: %q", ErrInvalidRange, rangeRef)
	}

	if end.Column < start.Column || end.Row < start.Row {
		return RangeAddress{}, fmt.Errorf("%w: end before start in %q", ErrInvalidRange, rangeRef)
	}

	return RangeAddress{Start: start, End: end}, nil
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
