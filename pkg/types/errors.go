package types

import (
	"errors"
	"fmt"
)

// ErrorKind distinguishes the two failure classes of the expression language.
type ErrorKind uint8

const (
	// ErrSyntax is raised during lexing or parsing: the expression string is
	// not a valid sentence of the grammar. Always detectable at compile time,
	// before any context is involved.
	ErrSyntax ErrorKind = iota

	// ErrSecurity is raised only during evaluation, when an expression
	// attempts to read an identifier or property that is not a key of the
	// relevant object, or to invoke a method outside the allow-list. It fires
	// even for syntactically perfect expressions.
	ErrSecurity
)

// String returns a string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax"
	case ErrSecurity:
		return "security"
	default:
		return "unknown"
	}
}

// Error represents a structured expression error.
type Error struct {
	Kind     ErrorKind
	Message  string
	Position int    // byte offset in the source, or -1 when not applicable
	Token    string // offending token lexeme, if any
}

// NewSyntaxError creates a syntax error at the given byte offset.
// Pass -1 when no offset applies.
func NewSyntaxError(position int, format string, args ...any) *Error {
	return &Error{
		Kind:     ErrSyntax,
		Message:  fmt.Sprintf(format, args...),
		Position: position,
	}
}

// NewSecurityError creates a sandbox violation error.
func NewSecurityError(format string, args ...any) *Error {
	return &Error{
		Kind:     ErrSecurity,
		Message:  fmt.Sprintf(format, args...),
		Position: -1,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("%s error at offset %d: %s", e.Kind, e.Position, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// WithToken adds the offending token lexeme to the error.
func (e *Error) WithToken(token string) *Error {
	e.Token = token
	return e
}

// IsSyntax reports whether err is an expression syntax error.
func IsSyntax(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == ErrSyntax
}

// IsSecurity reports whether err is an expression sandbox violation.
func IsSecurity(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == ErrSecurity
}
