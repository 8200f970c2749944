package parser

import (
	"strconv"
	"strings"

	"github.com/dazl-dev/tokey/pkg/types"
)

// Parser implements a recursive descent parser for show/hide expressions.
// It uses Pratt's "Top Down Operator Precedence" algorithm to handle
// operator precedence correctly.
type Parser struct {
	source string
	tokens []Token
	pos    int
	depth  int
	lexErr error
	opts   CompileOptions
}

// NewParser creates a new parser for the given input string.
func NewParser(source string, opts ...CompileOption) *Parser {
	options := CompileOptions{
		MaxDepth: 100,
	}
	for _, opt := range opts {
		opt(&options)
	}

	p := &Parser{
		source: source,
		opts:   options,
	}
	p.tokens, p.lexErr = Tokenize(source)
	return p
}

// Parse parses the entire expression and returns it in compiled form.
// The whole token stream must form exactly one expression; trailing tokens
// are a syntax error.
func (p *Parser) Parse() (*types.Expression, error) {
	if p.lexErr != nil {
		return nil, p.lexErr
	}

	if p.current().Type == TokenEOF {
		return nil, types.NewSyntaxError(-1, "empty expression")
	}

	node, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}

	if p.current().Type != TokenEOF {
		return nil, p.errorf("unexpected token %s after expression", describe(p.current()))
	}

	return types.NewExpression(node, p.source), nil
}

// Operator precedence table (binding power).
// Higher values bind more tightly. All binary operators are left-associative.
var precedence = map[TokenType]int{
	TokenOr:             10, // ||
	TokenAnd:            15, // &&
	TokenEqual:          20, // ==
	TokenNotEqual:       20, // !=
	TokenStrictEqual:    20, // ===
	TokenStrictNotEqual: 20, // !==
	TokenLess:           20, // <
	TokenLessEqual:      20, // <=
	TokenGreater:        20, // >
	TokenGreaterEqual:   20, // >=
	TokenDot:            60, // . (member access and method call)
}

// unaryPrecedence is the binding power of prefix '!'. It binds tighter than
// any comparison but looser than member access, so !a.b negates a.b while
// !a == b compares !a against b.
const unaryPrecedence = 30

// getPrecedence returns the precedence of a token type.
func getPrecedence(tt TokenType) int {
	if prec, ok := precedence[tt]; ok {
		return prec
	}
	return 0
}

// current returns the token under the cursor. Tokenize always emits a
// trailing EOF token, so the cursor never runs past the slice.
func (p *Parser) current() Token {
	return p.tokens[p.pos]
}

// advance moves to the next token.
func (p *Parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

// expect checks that the current token matches the expected type and advances.
func (p *Parser) expect(tt TokenType) error {
	if p.current().Type != tt {
		return p.errorf("expected %s but got %s", tt.String(), describe(p.current()))
	}
	p.advance()
	return nil
}

// errorf creates a parser error naming the current token.
func (p *Parser) errorf(format string, args ...any) error {
	return types.NewSyntaxError(-1, format, args...).WithToken(p.current().Value)
}

// describe renders a token for error messages.
func describe(t Token) string {
	if t.Type == TokenEOF || t.Value == "" {
		return t.Type.String()
	}
	return strconv.Quote(t.Value)
}

// parseExpression parses an expression with operator precedence.
// rbp is the right binding power (minimum precedence).
func (p *Parser) parseExpression(rbp int) (*types.ASTNode, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.opts.MaxDepth {
		return nil, types.NewSyntaxError(-1, "expression too deeply nested (limit %d)", p.opts.MaxDepth)
	}

	// Parse prefix expression (nud - null denotation)
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	// Parse infix expressions while precedence allows (led - left denotation)
	for rbp < getPrecedence(p.current().Type) {
		left, err = p.parseInfix(left)
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

// parsePrefix parses a prefix expression (nud - null denotation).
// These are expressions that don't require a left-hand side.
func (p *Parser) parsePrefix() (*types.ASTNode, error) {
	switch p.current().Type {
	case TokenString:
		return p.parseString()
	case TokenNumber:
		return p.parseNumber()
	case TokenBoolean:
		return p.parseBoolean()
	case TokenNull:
		return p.parseNull()
	case TokenName:
		return p.parseName()
	case TokenNot:
		return p.parseUnaryNot()
	case TokenParenOpen:
		return p.parseGrouping()
	case TokenBracketOpen:
		return p.parseArrayLiteral()
	default:
		return nil, p.errorf("unexpected token %s", describe(p.current()))
	}
}

// parseInfix parses an infix expression (led - left denotation).
// These are expressions that require a left-hand side.
func (p *Parser) parseInfix(left *types.ASTNode) (*types.ASTNode, error) {
	switch p.current().Type {
	case TokenDot:
		return p.parseMemberOrCall(left)
	case TokenAnd, TokenOr,
		TokenEqual, TokenNotEqual, TokenStrictEqual, TokenStrictNotEqual,
		TokenLess, TokenLessEqual, TokenGreater, TokenGreaterEqual:
		return p.parseBinaryOp(left)
	default:
		return nil, p.errorf("unexpected infix token %s", describe(p.current()))
	}
}

// unescapeString strips the backslashes of a raw string literal lexeme.
// A backslash makes the following character literal; there are no named
// escapes (\n is the letter n).
func unescapeString(s string) string {
	if !strings.Contains(s, "\\") {
		return s // Fast path: no escapes
	}

	var result strings.Builder
	result.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			if i >= len(s) {
				break
			}
		}
		result.WriteByte(s[i])
	}
	return result.String()
}

// parseString parses a string literal.
func (p *Parser) parseString() (*types.ASTNode, error) {
	node := types.NewASTNode(types.NodeString)
	node.StrValue = unescapeString(p.current().Value)
	p.advance()
	return node, nil
}

// parseNumber parses a number literal.
func (p *Parser) parseNumber() (*types.ASTNode, error) {
	val, err := strconv.ParseFloat(p.current().Value, 64)
	if err != nil {
		return nil, p.errorf("invalid number literal %s", describe(p.current()))
	}

	node := types.NewASTNode(types.NodeNumber)
	node.NumValue = val
	p.advance()
	return node, nil
}

// parseBoolean parses a true/false literal.
func (p *Parser) parseBoolean() (*types.ASTNode, error) {
	node := types.NewASTNode(types.NodeBoolean)
	node.Value = p.current().Value == "true"
	p.advance()
	return node, nil
}

// parseNull parses a null literal.
func (p *Parser) parseNull() (*types.ASTNode, error) {
	node := types.NewASTNode(types.NodeNull)
	p.advance()
	return node, nil
}

// parseName parses a bare identifier, resolved against the context at
// evaluation time.
func (p *Parser) parseName() (*types.ASTNode, error) {
	node := types.NewASTNode(types.NodeName)
	node.StrValue = p.current().Value
	p.advance()
	return node, nil
}

// parseUnaryNot parses a prefix '!' expression.
func (p *Parser) parseUnaryNot() (*types.ASTNode, error) {
	p.advance() // consume '!'

	operand, err := p.parseExpression(unaryPrecedence)
	if err != nil {
		return nil, err
	}

	node := types.NewASTNode(types.NodeUnary)
	node.StrValue = "!"
	node.LHS = operand
	return node, nil
}

// parseGrouping parses a parenthesized expression.
func (p *Parser) parseGrouping() (*types.ASTNode, error) {
	p.advance() // consume '('

	inner, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}

	if err := p.expect(TokenParenClose); err != nil {
		return nil, err
	}

	node := types.NewASTNode(types.NodeGroup)
	node.LHS = inner
	return node, nil
}

// parseArrayLiteral parses an array constructor: '[' elements? ']'.
// Elements are full expressions, so they may themselves contain && and ||.
func (p *Parser) parseArrayLiteral() (*types.ASTNode, error) {
	p.advance() // consume '['

	node := types.NewASTNode(types.NodeArray)

	elements, err := p.parseExpressionList(TokenBracketClose)
	if err != nil {
		return nil, err
	}
	node.Arguments = elements
	return node, nil
}

// parseMemberOrCall parses a postfix '.' chain element. A property name
// immediately followed by '(' is a method call; otherwise it is a member
// access. Chaining is unbounded (a.b.c.d()).
func (p *Parser) parseMemberOrCall(left *types.ASTNode) (*types.ASTNode, error) {
	p.advance() // consume '.'

	if p.current().Type != TokenName {
		return nil, p.errorf("expected property name after '.' but got %s", describe(p.current()))
	}
	name := p.current().Value
	p.advance()

	if p.current().Type == TokenParenOpen {
		p.advance() // consume '('

		args, err := p.parseExpressionList(TokenParenClose)
		if err != nil {
			return nil, err
		}

		node := types.NewASTNode(types.NodeCall)
		node.LHS = left
		node.StrValue = name
		node.Arguments = args
		return node, nil
	}

	node := types.NewASTNode(types.NodeMember)
	node.LHS = left
	node.StrValue = name
	return node, nil
}

// parseExpressionList parses a possibly empty comma-separated expression
// list up to and including the closing token.
func (p *Parser) parseExpressionList(closing TokenType) ([]*types.ASTNode, error) {
	if p.current().Type == closing {
		p.advance()
		return nil, nil
	}

	var list []*types.ASTNode
	for {
		elem, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		list = append(list, elem)

		if p.current().Type != TokenComma {
			break
		}
		p.advance() // consume ','
	}

	if err := p.expect(closing); err != nil {
		return nil, err
	}
	return list, nil
}

// parseBinaryOp parses a binary operator expression. The right operand is
// parsed at the operator's own precedence, which makes every binary operator
// left-associative -- including chained comparisons (a < b < c), which fold
// left-to-right with each comparison producing a boolean consumed by the
// next.
func (p *Parser) parseBinaryOp(left *types.ASTNode) (*types.ASTNode, error) {
	op := p.current()
	p.advance()

	right, err := p.parseExpression(getPrecedence(op.Type))
	if err != nil {
		return nil, err
	}

	node := types.NewASTNode(types.NodeBinary)
	node.StrValue = op.Value
	node.LHS = left
	node.RHS = right
	return node, nil
}
