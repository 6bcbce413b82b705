package query

import (
	"fmt"
	"strconv"
)

// Parser parses condition expressions into an AST
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a new parser
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// current returns the current token
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF, Value: ""}
	}
	return p.tokens[p.pos]
}

// advance moves to the next token
func (p *Parser) advance() {
	p.pos++
}

// expect checks that the current token matches the expected type and advances
func (p *Parser) expect(tokType TokenType) error {
	if p.current().Type != tokType {
		return fmt.Errorf("expected token %v, got %q", tokType, p.current().Value)
	}
	p.advance()
	return nil
}

// ParseExpression parses a condition expression string into an AST. The
// input must consist entirely of one expression; trailing tokens are an
// error.
func ParseExpression(input string) (Expression, error) {
	tokens := Tokenize(input)

	parser := NewParser(tokens)
	expr, err := parser.parseOr()
	if err != nil {
		return nil, err
	}

	if parser.current().Type == TokenError {
		return nil, fmt.Errorf("invalid character in expression: %s", parser.current().Value)
	}
	if parser.current().Type != TokenEOF {
		return nil, fmt.Errorf("unexpected trailing tokens: %s", parser.current().Value)
	}

	return expr, nil
}

// parseOr parses || expressions (lowest precedence)
func (p *Parser) parseOr() (Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:     left,
			Operator: TokenOr,
			Right:    right,
		}
	}

	return left, nil
}

// parseAnd parses && expressions (higher precedence than ||)
func (p *Parser) parseAnd() (Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenAnd {
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:     left,
			Operator: TokenAnd,
			Right:    right,
		}
	}

	return left, nil
}

// parseComparison parses an optional comparison between two primaries. A
// lone primary is valid and evaluated by truthiness.
func (p *Parser) parseComparison() (Expression, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	operator := p.current().Type
	switch operator {
	case TokenEqual, TokenNotEqual, TokenLess, TokenGreater, TokenLessEqual, TokenGreaterEqual:
		p.advance()
	default:
		return left, nil
	}

	right, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	return &ComparisonExpr{
		Left:     left,
		Operator: operator,
		Right:    right,
	}, nil
}

// parsePrimary parses a literal or a parenthesized expression
func (p *Parser) parsePrimary() (Expression, error) {
	switch p.current().Type {
	case TokenNumber:
		value, err := strconv.ParseFloat(p.current().Value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number: %s", p.current().Value)
		}
		p.advance()
		return &LiteralExpr{Value: value}, nil
	case TokenString:
		value := p.current().Value
		p.advance()
		return &LiteralExpr{Value: value}, nil
	case TokenBool:
		value := p.current().Value == "true" || p.current().Value == "TRUE" || p.current().Value == "True"
		p.advance()
		return &LiteralExpr{Value: value}, nil
	case TokenLeftParen:
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		return expr, nil
	case TokenIdent:
		// Bare words survive only when substitution did not recognize them
		// as a column or header reference.
		return nil, fmt.Errorf("unresolved identifier %q", p.current().Value)
	default:
		return nil, fmt.Errorf("expected literal or '(', got %q", p.current().Value)
	}
}
