package query

import "fmt"

// Expression is a node of the restricted boolean-expression grammar the
// WHERE evaluator runs. By the time an expression is built, column and
// header references have already been substituted with literal values, so
// evaluation needs no row context. The grammar is literals, comparison
// operators, && and ||, and parentheses; nothing else executes.
type Expression interface {
	Evaluate() (interface{}, error)
}

// LiteralExpr is a literal value: float64, string, or bool.
type LiteralExpr struct {
	Value interface{}
}

// Evaluate returns the literal value.
func (l *LiteralExpr) Evaluate() (interface{}, error) {
	return l.Value, nil
}

// ComparisonExpr compares two operand expressions.
type ComparisonExpr struct {
	Left     Expression
	Operator TokenType
	Right    Expression
}

// Evaluate evaluates both operands and compares them.
func (c *ComparisonExpr) Evaluate() (interface{}, error) {
	left, err := c.Left.Evaluate()
	if err != nil {
		return nil, err
	}
	right, err := c.Right.Evaluate()
	if err != nil {
		return nil, err
	}
	return compareValues(left, c.Operator, right)
}

// BinaryExpr joins two expressions with && or ||.
type BinaryExpr struct {
	Left     Expression
	Operator TokenType // TokenAnd or TokenOr
	Right    Expression
}

// Evaluate evaluates by truthiness, short-circuiting: the right side is
// not evaluated when the left side already decides the result.
func (b *BinaryExpr) Evaluate() (interface{}, error) {
	left, err := b.Left.Evaluate()
	if err != nil {
		return nil, err
	}

	switch b.Operator {
	case TokenAnd:
		if !truthy(left) {
			return false, nil
		}
	case TokenOr:
		if truthy(left) {
			return true, nil
		}
	default:
		return nil, fmt.Errorf("unsupported binary operator: %v", b.Operator)
	}

	right, err := b.Right.Evaluate()
	if err != nil {
		return nil, err
	}
	return truthy(right), nil
}

// truthy reports the truthiness of an evaluated value: false, 0, the empty
// string, and nil are false, everything else is true.
func truthy(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	case nil:
		return false
	default:
		return true
	}
}
