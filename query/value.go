package query

import (
	"math"
	"strconv"
)

// CoerceNumeric applies the engine's single coercion rule: a string that
// parses as a number becomes a float64, anything else is kept as-is. The
// empty string stays the empty string, it never becomes 0.
func CoerceNumeric(raw interface{}) interface{} {
	s, ok := raw.(string)
	if !ok {
		return raw
	}
	if s == "" {
		return s
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	return s
}

// toFloat64 converts a value to float64 if it carries a numeric type.
// Strings are not parsed here; they go through CoerceNumeric at
// materialization time, so any string left over is treated as non-numeric.
func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	default:
		return 0, false
	}
}

// toString converts a value to string if it is one.
func toString(v interface{}) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	return "", false
}

// toBool converts a value to bool if it is one.
func toBool(v interface{}) (bool, bool) {
	if b, ok := v.(bool); ok {
		return b, true
	}
	return false, false
}

// isEmptyValue reports whether a cell value counts as empty for COUNT-style
// aggregates: nil or the empty string.
func isEmptyValue(v interface{}) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	return false
}

// compareNumbers compares two numbers with an epsilon-scaled equality test
// so chained arithmetic does not break exact comparison.
func compareNumbers(left float64, operator TokenType, right float64) bool {
	const epsilon = 1e-9
	switch operator {
	case TokenEqual:
		diff := math.Abs(left - right)
		threshold := epsilon * math.Max(1.0, math.Max(math.Abs(left), math.Abs(right)))
		return diff < threshold
	case TokenNotEqual:
		diff := math.Abs(left - right)
		threshold := epsilon * math.Max(1.0, math.Max(math.Abs(left), math.Abs(right)))
		return diff >= threshold
	case TokenLess:
		return left < right
	case TokenGreater:
		return left > right
	case TokenLessEqual:
		return left <= right
	case TokenGreaterEqual:
		return left >= right
	default:
		return false
	}
}

// compareStrings compares two strings (case-sensitive).
func compareStrings(left string, operator TokenType, right string) bool {
	switch operator {
	case TokenEqual:
		return left == right
	case TokenNotEqual:
		return left != right
	case TokenLess:
		return left < right
	case TokenGreater:
		return left > right
	case TokenLessEqual:
		return left <= right
	case TokenGreaterEqual:
		return left >= right
	default:
		return false
	}
}

// compareBools compares two booleans. Only equality operators apply.
func compareBools(left bool, operator TokenType, right bool) bool {
	switch operator {
	case TokenEqual:
		return left == right
	case TokenNotEqual:
		return left != right
	default:
		return false
	}
}

// compareValues compares two literal values using the given operator,
// trying numeric, then string, then boolean comparison.
func compareValues(left interface{}, operator TokenType, right interface{}) (bool, error) {
	if left == nil || right == nil {
		switch operator {
		case TokenEqual:
			return left == right, nil
		case TokenNotEqual:
			return left != right, nil
		}
		return false, nil
	}

	leftNum, leftIsNum := toFloat64(left)
	rightNum, rightIsNum := toFloat64(right)
	if leftIsNum && rightIsNum {
		return compareNumbers(leftNum, operator, rightNum), nil
	}

	leftStr, leftIsStr := toString(left)
	rightStr, rightIsStr := toString(right)
	if leftIsStr && rightIsStr {
		return compareStrings(leftStr, operator, rightStr), nil
	}

	leftBool, leftIsBool := toBool(left)
	rightBool, rightIsBool := toBool(right)
	if leftIsBool && rightIsBool {
		return compareBools(leftBool, operator, rightBool), nil
	}

	// Mixed types: a number never equals a string, and ordering across
	// types is false. A text cell in a numeric column drops the row; it
	// does not fail the whole filter.
	switch operator {
	case TokenEqual:
		return false, nil
	case TokenNotEqual:
		return true, nil
	}
	return false, nil
}
