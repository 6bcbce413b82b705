package query

import "errors"

// Sentinel errors returned by the engine. All of them are input-validation
// failures raised synchronously; none are transient. Callers match them
// with errors.Is.
var (
	// ErrNoStore is returned when an entry point is called without a cell store.
	ErrNoStore = errors.New("no cell store supplied")

	// ErrInvalidRange is returned for a malformed "start:end" range reference,
	// or when the end cell precedes the start cell.
	ErrInvalidRange = errors.New("invalid range reference")

	// ErrInvalidReference is returned for a malformed single-cell address.
	ErrInvalidReference = errors.New("invalid cell reference")

	// ErrUnknownColumn is returned when a column index, letter, or name does
	// not resolve against the current query state.
	ErrUnknownColumn = errors.New("unknown column reference")

	// ErrInvalidCondition is returned when a WHERE condition string fails to
	// parse or evaluate, or when a SUMIF/COUNTIF criteria is malformed.
	ErrInvalidCondition = errors.New("invalid condition")

	// ErrTableNotFound is returned when no table metadata is registered under
	// the requested table name.
	ErrTableNotFound = errors.New("table not found")

	// ErrInvalidOperation is returned when a chain operation is called in a
	// state that does not support it, such as Pluck after GroupBy.
	ErrInvalidOperation = errors.New("operation not valid in current state")
)
