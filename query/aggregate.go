package query

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// The range aggregate functions operate on a flat, row-major-flattened
// value list read straight from the store. No header logic applies; the
// whole range is data.

// rangeValues reads and coerces every cell of a range.
func rangeValues(store Store, rangeRef string) ([]interface{}, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	resolved, err := resolveRangeRef(store, rangeRef)
	if err != nil {
		return nil, err
	}
	if _, err := ParseRange(resolved); err != nil {
		return nil, err
	}

	raw, err := store.GetCellRange(resolved)
	if err != nil {
		return nil, fmt.Errorf("reading range %s: %w", resolved, err)
	}

	values := make([]interface{}, len(raw))
	for i, v := range raw {
		values[i] = CoerceNumeric(v)
	}
	return values, nil
}

// numericValues filters a value list down to its numeric members.
func numericValues(values []interface{}) []float64 {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		if n, ok := toFloat64(v); ok {
			nums = append(nums, n)
		}
	}
	return nums
}

// SumRange returns the sum of the numeric values in a range.
func SumRange(store Store, rangeRef string) (float64, error) {
	values, err := rangeValues(store, rangeRef)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for _, n := range numericValues(values) {
		sum += n
	}
	return sum, nil
}

// AverageRange returns the mean of the numeric values in a range, 0 when
// there are none.
func AverageRange(store Store, rangeRef string) (float64, error) {
	values, err := rangeValues(store, rangeRef)
	if err != nil {
		return 0, err
	}
	nums := numericValues(values)
	if len(nums) == 0 {
		return 0, nil
	}
	sum := 0.0
	for _, n := range nums {
		sum += n
	}
	return sum / float64(len(nums)), nil
}

// CountRange counts the non-empty values in a range, numeric or not.
func CountRange(store Store, rangeRef string) (int, error) {
	values, err := rangeValues(store, rangeRef)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, v := range values {
		if !isEmptyValue(v) {
			count++
		}
	}
	return count, nil
}

// MinRange returns the smallest numeric value in a range, 0 when there are
// none.
func MinRange(store Store, rangeRef string) (float64, error) {
	values, err := rangeValues(store, rangeRef)
	if err != nil {
		return 0, err
	}
	nums := numericValues(values)
	if len(nums) == 0 {
		return 0, nil
	}
	min := nums[0]
	for _, n := range nums[1:] {
		if n < min {
			min = n
		}
	}
	return min, nil
}

// MaxRange returns the largest numeric value in a range, 0 when there are
// none.
func MaxRange(store Store, rangeRef string) (float64, error) {
	values, err := rangeValues(store, rangeRef)
	if err != nil {
		return 0, err
	}
	nums := numericValues(values)
	if len(nums) == 0 {
		return 0, nil
	}
	max := nums[0]
	for _, n := range nums[1:] {
		if n > max {
			max = n
		}
	}
	return max, nil
}

// MedianRange returns the median of the numeric values: the middle element
// for an odd count, the mean of the two middle elements for an even count,
// 0 for none.
func MedianRange(store Store, rangeRef string) (float64, error) {
	values, err := rangeValues(store, rangeRef)
	if err != nil {
		return 0, err
	}
	nums := numericValues(values)
	if len(nums) == 0 {
		return 0, nil
	}
	sort.Float64s(nums)
	mid := len(nums) / 2
	if len(nums)%2 == 1 {
		return nums[mid], nil
	}
	return (nums[mid-1] + nums[mid]) / 2, nil
}

// VarRange returns the sample variance (denominator n-1) of the numeric
// values, 0 when fewer than two.
func VarRange(store Store, rangeRef string) (float64, error) {
	values, err := rangeValues(store, rangeRef)
	if err != nil {
		return 0, err
	}
	return variance(numericValues(values), true), nil
}

// VarpRange returns the population variance (denominator n) of the numeric
// values, 0 when empty.
func VarpRange(store Store, rangeRef string) (float64, error) {
	values, err := rangeValues(store, rangeRef)
	if err != nil {
		return 0, err
	}
	return variance(numericValues(values), false), nil
}

// StdevRange returns the sample standard deviation, 0 when fewer than two
// numeric values.
func StdevRange(store Store, rangeRef string) (float64, error) {
	v, err := VarRange(store, rangeRef)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// StdevpRange returns the population standard deviation, 0 when empty.
func StdevpRange(store Store, rangeRef string) (float64, error) {
	v, err := VarpRange(store, rangeRef)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// ProductRange multiplies the numeric values in a range. An empty numeric
// set returns 0, not the multiplicative identity; this matches the
// documented behavior of the operation and is kept deliberately.
func ProductRange(store Store, rangeRef string) (float64, error) {
	values, err := rangeValues(store, rangeRef)
	if err != nil {
		return 0, err
	}
	nums := numericValues(values)
	if len(nums) == 0 {
		return 0, nil
	}
	product := 1.0
	for _, n := range nums {
		product *= n
	}
	return product, nil
}

// Cell reads one cell with the same numeric coercion the materializer
// applies.
func Cell(store Store, address string) (interface{}, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	if _, err := ParseAddress(address); err != nil {
		return nil, err
	}
	raw, err := store.GetCellValue(address)
	if err != nil {
		return nil, fmt.Errorf("reading cell %s: %w", address, err)
	}
	return CoerceNumeric(raw), nil
}

// criteriaPattern splits a SUMIF/COUNTIF criteria into its operator and
// threshold parts.
var criteriaPattern = regexp.MustCompile(`^([><=!]+)(.+)$`)

// criteria is a parsed numeric comparison for the *IF aggregates.
type criteria struct {
	operator  string
	threshold float64
}

// parseCriteria validates a criteria string such as ">15" or "!=0".
func parseCriteria(condition string) (criteria, error) {
	m := criteriaPattern.FindStringSubmatch(strings.TrimSpace(condition))
	if m == nil {
		return criteria{}, fmt.Errorf("%w: criteria %q", ErrInvalidCondition, condition)
	}

	operator := m[1]
	switch operator {
	case ">", ">=", "<", "<=", "=", "==", "!=", "<>":
	default:
		return criteria{}, fmt.Errorf("%w: unknown operator %q", ErrInvalidCondition, operator)
	}

	threshold, err := strconv.ParseFloat(strings.TrimSpace(m[2]), 64)
	if err != nil {
		return criteria{}, fmt.Errorf("%w: non-numeric threshold %q", ErrInvalidCondition, m[2])
	}

	return criteria{operator: operator, threshold: threshold}, nil
}

// matches applies the criteria to one numeric value.
func (c criteria) matches(n float64) bool {
	switch c.operator {
	case ">":
		return n > c.threshold
	case ">=":
		return n >= c.threshold
	case "<":
		return n < c.threshold
	case "<=":
		return n <= c.threshold
	case "=", "==":
		return n == c.threshold
	case "!=", "<>":
		return n != c.threshold
	default:
		return false
	}
}

// SumIfRange sums the numeric values in a range that pass a criteria
// string such as ">15".
func SumIfRange(store Store, rangeRef, condition string) (float64, error) {
	crit, err := parseCriteria(condition)
	if err != nil {
		return 0, err
	}
	values, err := rangeValues(store, rangeRef)
	if err != nil {
		return 0, err
	}

	sum := 0.0
	for _, n := range numericValues(values) {
		if crit.matches(n) {
			sum += n
		}
	}
	return sum, nil
}

// CountIfRange counts the numeric values in a range that pass a criteria
// string.
func CountIfRange(store Store, rangeRef, condition string) (int, error) {
	crit, err := parseCriteria(condition)
	if err != nil {
		return 0, err
	}
	values, err := rangeValues(store, rangeRef)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, n := range numericValues(values) {
		if crit.matches(n) {
			count++
		}
	}
	return count, nil
}

// variance computes variance over nums. Sample variance divides by n-1 and
// needs at least two values; population variance divides by n and needs at
// least one. Anything less returns 0.
func variance(nums []float64, sample bool) float64 {
	n := len(nums)
	if (sample && n < 2) || n == 0 {
		return 0
	}

	mean := 0.0
	for _, v := range nums {
		mean += v
	}
	mean /= float64(n)

	sumSq := 0.0
	for _, v := range nums {
		d := v - mean
		sumSq += d * d
	}

	if sample {
		return sumSq / float64(n-1)
	}
	return sumSq / float64(n)
}
