package parser

// TokenType represents the type of a lexical token.
type TokenType uint8

const (
	// Special tokens
	TokenEOF TokenType = iota

	// Literals
	TokenString  // "hello" or 'hello'
	TokenNumber  // 123, 3.14
	TokenBoolean // true, false
	TokenNull    // null
	TokenName    // fieldName

	// Grouping symbols
	TokenBracketOpen  // [
	TokenBracketClose // ]
	TokenParenOpen    // (
	TokenParenClose   // )

	// Basic symbols
	TokenDot   // .
	TokenComma // ,

	// Logical operators
	TokenNot // !
	TokenAnd // &&
	TokenOr  // ||

	// Comparison operators
	TokenEqual          // ==
	TokenNotEqual       // !=
	TokenStrictEqual    // ===
	TokenStrictNotEqual // !==
	TokenLess           // <
	TokenLessEqual      // <=
	TokenGreater        // >
	TokenGreaterEqual   // >=
)

// String returns a string representation of the token type.
func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "(eof)"
	case TokenString:
		return "(string)"
	case TokenNumber:
		return "(number)"
	case TokenBoolean:
		return "(boolean)"
	case TokenNull:
		return "(null)"
	case TokenName:
		return "(name)"
	case TokenBracketOpen:
		return "["
	case TokenBracketClose:
		return "]"
	case TokenParenOpen:
		return "("
	case TokenParenClose:
		return ")"
	case TokenDot:
		return "."
	case TokenComma:
		return ","
	case TokenNot:
		return "!"
	case TokenAnd:
		return "&&"
	case TokenOr:
		return "||"
	case TokenEqual:
		return "=="
	case TokenNotEqual:
		return "!="
	case TokenStrictEqual:
		return "==="
	case TokenStrictNotEqual:
		return "!=="
	case TokenLess:
		return "<"
	case TokenLessEqual:
		return "<="
	case TokenGreater:
		return ">"
	case TokenGreaterEqual:
		return ">="
	default:
		return "(unknown)"
	}
}

// Token represents a lexical token in a show/hide expression.
// Tokens carry no source positions; the grammar is small enough that parser
// diagnostics name tokens instead.
type Token struct {
	Type  TokenType // Type of the token
	Value string    // Literal value of the token
}

// punctuation maps single-character punctuation to token types.
// Operator characters (=, !, <, >, &, |) are handled separately because of
// their multi-character forms.
var punctuation = [...]TokenType{
	'[': TokenBracketOpen,
	']': TokenBracketClose,
	'(': TokenParenOpen,
	')': TokenParenClose,
	'.': TokenDot,
	',': TokenComma,
}

const punctuationCount = rune(len(punctuation))

// lookupPunctuation returns the token type for a punctuation character.
// Returns TokenEOF (zero) if the rune is not punctuation.
func lookupPunctuation(r rune) TokenType {
	if r < 0 || r >= punctuationCount {
		return 0
	}
	return punctuation[r]
}

// lookupKeyword returns the token type for a reserved word.
// Returns TokenEOF (zero) if the string is an ordinary identifier.
func lookupKeyword(s string) TokenType {
	switch s {
	case "true", "false":
		return TokenBoolean
	case "null":
		return TokenNull
	default:
		return 0
	}
}
