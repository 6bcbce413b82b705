package query

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Predicate is a functional row condition. It receives the row exactly as
// materialized and reports whether the row passes.
type Predicate func(row []interface{}) bool

// columnTokenPattern matches column_<ref> and col_<ref> tokens in a
// condition string, case-insensitively. <ref> is a letter sequence or a
// bare word.
var columnTokenPattern = regexp.MustCompile(`(?i)\b(?:column|col)_(\w+)`)

// evalConditionString evaluates a condition string against one row. The
// pipeline is: substitute column tokens, substitute header names, then
// parse and evaluate the resulting literal expression with the restricted
// grammar. The substituted text is never handed to a general evaluator.
func evalConditionString(condition string, row []interface{}, headers []string, columnMap map[string]string, startColumn int) (bool, error) {
	substituted, err := substituteColumnTokens(condition, row, headers, columnMap, startColumn)
	if err != nil {
		return false, err
	}
	substituted = substituteHeaderNames(substituted, row, headers)

	expr, err := ParseExpression(substituted)
	if err != nil {
		return false, fmt.Errorf("%w: %q: %v", ErrInvalidCondition, condition, err)
	}
	result, err := expr.Evaluate()
	if err != nil {
		return false, fmt.Errorf("%w: %q: %v", ErrInvalidCondition, condition, err)
	}
	return truthy(result), nil
}

// substituteColumnTokens replaces every column_<ref>/col_<ref> token with
// the row's value at the resolved column.
func substituteColumnTokens(condition string, row []interface{}, headers []string, columnMap map[string]string, startColumn int) (string, error) {
	var firstErr error

	substituted := columnTokenPattern.ReplaceAllStringFunc(condition, func(token string) string {
		ref := token[strings.Index(token, "_")+1:]
		index, err := resolveColumnToken(ref, headers, columnMap, startColumn)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return token
		}
		return literalText(cellAt(row, index))
	})

	if firstErr != nil {
		return "", firstErr
	}
	return substituted, nil
}

// substituteHeaderNames replaces whole-word occurrences of each known
// header label with the row's value at that header's position. Longer
// labels are substituted first so a label that prefixes another cannot
// clobber it.
func substituteHeaderNames(condition string, row []interface{}, headers []string) string {
	if len(headers) == 0 {
		return condition
	}

	order := make([]int, len(headers))
	for i := range headers {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return len(headers[order[a]]) > len(headers[order[b]]) })

	for _, i := range order {
		if headers[i] == "" {
			continue
		}
		pattern, err := regexp.Compile(`\b` + regexp.QuoteMeta(headers[i]) + `\b`)
		if err != nil {
			continue
		}
		condition = pattern.ReplaceAllLiteralString(condition, literalText(cellAt(row, i)))
	}

	return condition
}

// literalText renders a cell value as expression text. String values get a
// plain double-quote wrap; embedded quotes are not escaped, which mirrors
// the historical substitution behavior and is a documented limitation of
// the condition syntax.
func literalText(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return `""`
	case string:
		return `"` + val + `"`
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		if n, ok := toFloat64(val); ok {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
		return `"` + fmt.Sprintf("%v", val) + `"`
	}
}

func cellAt(row []interface{}, index int) interface{} {
	if index < 0 || index >= len(row) {
		return nil
	}
	return row[index]
}
