package parser

import (
	"unicode"
	"unicode/utf8"

	"github.com/dazl-dev/tokey/pkg/types"
)

const eof = -1

// Lexer converts a show/hide expression into a sequence of tokens.
// The implementation is based on Rob Pike's "Lexical Scanning in Go" technique.
type Lexer struct {
	input   string // Input string being scanned
	length  int    // Length of input string
	start   int    // Start position of current token
	current int    // Current position in input
	width   int    // Width of last rune read
	err     error  // First error encountered
}

// NewLexer creates a new lexer from the provided input string.
// The input is tokenized by successive calls to the Next method.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		length: len(input),
	}
}

// Tokenize scans the entire input and returns its token sequence.
// The sequence always ends with a trailing EOF token so the parser never
// needs bounds checks. The only lexing failure is an unexpected character,
// reported as a syntax error carrying its byte offset.
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	tokens := make([]Token, 0, 16)
	for {
		t := l.Next()
		if l.err != nil {
			return nil, l.err
		}
		tokens = append(tokens, t)
		if t.Type == TokenEOF {
			return tokens, nil
		}
	}
}

// Next returns the next token from the input.
// When the end of the input is reached, Next returns TokenEOF for all
// subsequent calls.
func (l *Lexer) Next() Token {
	l.skipWhitespace()

	ch := l.nextRune()
	if ch == eof {
		return l.eof()
	}

	// Single-character punctuation
	if tt := lookupPunctuation(ch); tt > 0 {
		return l.newToken(tt)
	}

	// Operators, matched greedily and longest-first
	switch ch {
	case '=':
		if l.acceptRune('=') {
			if l.acceptRune('=') {
				return l.newToken(TokenStrictEqual)
			}
			return l.newToken(TokenEqual)
		}
		return l.error(ch)
	case '!':
		if l.acceptRune('=') {
			if l.acceptRune('=') {
				return l.newToken(TokenStrictNotEqual)
			}
			return l.newToken(TokenNotEqual)
		}
		return l.newToken(TokenNot)
	case '<':
		if l.acceptRune('=') {
			return l.newToken(TokenLessEqual)
		}
		return l.newToken(TokenLess)
	case '>':
		if l.acceptRune('=') {
			return l.newToken(TokenGreaterEqual)
		}
		return l.newToken(TokenGreater)
	case '&':
		if l.acceptRune('&') {
			return l.newToken(TokenAnd)
		}
		return l.error(ch)
	case '|':
		if l.acceptRune('|') {
			return l.newToken(TokenOr)
		}
		return l.error(ch)
	}

	// String literals (single or double quoted)
	if ch == '"' || ch == '\'' {
		l.ignore()
		return l.scanString(ch)
	}

	// Number literals
	if isDigit(ch) {
		l.backup()
		return l.scanNumber()
	}

	// Identifiers and keywords
	if isNameStart(ch) {
		l.backup()
		return l.scanName()
	}

	return l.error(ch)
}

// Error returns the first error encountered during lexing, if any.
func (l *Lexer) Error() error {
	return l.err
}

// scanString reads a string literal from the current position.
// The opening quote has already been consumed and discarded.
// A backslash makes the following character literal; there is no named
// escape processing. An unterminated string is accepted and consumes to end
// of input rather than erroring -- intentional lenience.
// The token value is the raw content between the quotes, backslashes
// included; the parser strips them.
func (l *Lexer) scanString(quote rune) Token {
Loop:
	for {
		switch l.nextRune() {
		case quote:
			break Loop
		case '\\':
			// Consume escaped character
			if r := l.nextRune(); r != eof {
				break
			}
			fallthrough
		case eof:
			return l.newToken(TokenString)
		}
	}

	l.backup()
	t := l.newToken(TokenString)
	l.acceptRune(quote)
	l.ignore()
	return t
}

// scanNumber reads a number literal from the current position.
// Format: [0-9]+(\.[0-9]+)? -- no exponent notation and no sign (the grammar
// has no unary minus).
func (l *Lexer) scanNumber() Token {
	l.acceptAll(isDigit)

	dotPos := l.current
	if l.acceptRune('.') {
		if !l.acceptAll(isDigit) {
			// No digits after the decimal point: the dot is not part of
			// the number, leave it for a member access token. Rewind to
			// the dot explicitly; backup() would subtract the width of
			// whatever rune the failed digit probe read, not the dot's.
			l.current = dotPos
			l.width = 0
		}
	}

	return l.newToken(TokenNumber)
}

// scanName reads an identifier or keyword from the current position.
// Identifiers match [A-Za-z_$][A-Za-z0-9_$]*.
// Keywords are: true, false, null.
func (l *Lexer) scanName() Token {
	l.accept(isNameStart)
	l.acceptAll(isNameChar)

	t := l.newToken(TokenName)
	if tt := lookupKeyword(t.Value); tt > 0 {
		t.Type = tt
	}
	return t
}

// Helper methods

func (l *Lexer) eof() Token {
	return Token{Type: TokenEOF}
}

func (l *Lexer) error(ch rune) Token {
	// l.start is the byte offset of the offending character: skipWhitespace
	// ran just before it and nothing has emitted a token since.
	l.err = types.NewSyntaxError(l.start, "unexpected character %q", ch)
	return Token{}
}

func (l *Lexer) newToken(tt TokenType) Token {
	t := Token{
		Type:  tt,
		Value: l.input[l.start:l.current],
	}
	l.width = 0
	l.start = l.current
	return t
}

func (l *Lexer) nextRune() rune {
	if l.current >= l.length {
		l.width = 0
		return eof
	}

	r, w := utf8.DecodeRuneInString(l.input[l.current:])
	l.width = w
	l.current += w
	return r
}

func (l *Lexer) backup() {
	l.current -= l.width
}

func (l *Lexer) ignore() {
	l.start = l.current
}

func (l *Lexer) acceptRune(r rune) bool {
	return l.accept(func(c rune) bool {
		return c == r
	})
}

func (l *Lexer) accept(isValid func(rune) bool) bool {
	if isValid(l.nextRune()) {
		return true
	}
	l.backup()
	return false
}

func (l *Lexer) acceptAll(isValid func(rune) bool) bool {
	var matched bool
	for l.accept(isValid) {
		matched = true
	}
	return matched
}

func (l *Lexer) skipWhitespace() {
	l.acceptAll(unicode.IsSpace)
	l.ignore()
}

// Character classification functions

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isNameStart(r rune) bool {
	return r == '_' || r == '$' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isNameChar(r rune) bool {
	return isNameStart(r) || isDigit(r)
}
