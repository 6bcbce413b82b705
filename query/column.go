package query

import (
	"fmt"
	"strconv"
)

type columnKind int

const (
	columnByIndex columnKind = iota
	columnByLetter
	columnByName
	columnAuto
)

// ColumnRef is a tagged column reference. The three addressing modes are
// explicit constructors; Col keeps the untyped string form and applies the
// shared resolution rule at resolve time.
type ColumnRef struct {
	kind   columnKind
	index  int
	name   string
	letter string
}

// ByIndex references a column by 0-based index into the range.
func ByIndex(index int) ColumnRef {
	return ColumnRef{kind: columnByIndex, index: index}
}

// ByLetter references a column by its absolute column letter, e.g. "B".
func ByLetter(letter string) ColumnRef {
	return ColumnRef{kind: columnByLetter, letter: letter}
}

// ByName references a column by header label or logical table-column name.
func ByName(name string) ColumnRef {
	return ColumnRef{kind: columnByName, name: name}
}

// Col references a column by an untyped string, resolved with the same rule
// condition strings use: digits are a 0-based index, a known header label
// wins next, and a plain letter sequence is converted through the codec.
func Col(ref string) ColumnRef {
	return ColumnRef{kind: columnAuto, name: ref}
}

// String renders the reference for error messages.
func (c ColumnRef) String() string {
	switch c.kind {
	case columnByIndex:
		return strconv.Itoa(c.index)
	case columnByLetter:
		return c.letter
	default:
		return c.name
	}
}

// resolve maps the reference to a 0-based column offset within the query's
// range. headers and columnMap may be nil; startColumn is the 1-based
// absolute index of the range's first column.
func (c ColumnRef) resolve(headers []string, columnMap map[string]string, startColumn int) (int, error) {
	switch c.kind {
	case columnByIndex:
		if c.index < 0 {
			return 0, fmt.Errorf("%w: negative index %d", ErrUnknownColumn, c.index)
		}
		return c.index, nil

	case columnByLetter:
		return resolveLetter(c.letter, startColumn)

	case columnByName:
		if idx, ok := headerIndex(headers, c.name); ok {
			return idx, nil
		}
		if letter, ok := columnMap[c.name]; ok {
			return resolveLetter(letter, startColumn)
		}
		return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, c.name)

	default: // columnAuto
		return resolveColumnToken(c.name, headers, columnMap, startColumn)
	}
}

// resolveColumnToken implements the shared resolution rule for untyped
// string references: digits, then header label, then logical name, then
// column letters.
func resolveColumnToken(ref string, headers []string, columnMap map[string]string, startColumn int) (int, error) {
	if isDigits(ref) {
		index, err := strconv.Atoi(ref)
		if err != nil || index < 0 {
			return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, ref)
		}
		return index, nil
	}

	if idx, ok := headerIndex(headers, ref); ok {
		return idx, nil
	}
	if letter, ok := columnMap[ref]; ok {
		return resolveLetter(letter, startColumn)
	}

	if isLetters(ref) {
		return resolveLetter(ref, startColumn)
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, ref)
}

// resolveLetter converts an absolute column letter to a 0-based offset
// within a range starting at startColumn.
func resolveLetter(letter string, startColumn int) (int, error) {
	abs, err := ColumnLetterToIndex(letter)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, letter)
	}
	if startColumn < 1 {
		startColumn = 1
	}
	offset := abs - startColumn
	if offset < 0 {
		return 0, fmt.Errorf("%w: column %s is before the range start", ErrUnknownColumn, letter)
	}
	return offset, nil
}

func headerIndex(headers []string, name string) (int, bool) {
	for i, h := range headers {
		if h == name {
			return i, true
		}
	}
	return 0, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isLetter(s[i]) {
			return false
		}
	}
	return true
}
