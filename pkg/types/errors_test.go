package types_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dazl-dev/tokey/pkg/types"
)

func TestErrorFormatting(t *testing.T) {
	err := types.NewSyntaxError(4, "unexpected character %q", '@')
	assert.Equal(t, `syntax error at offset 4: unexpected character '@'`, err.Error())

	err = types.NewSyntaxError(-1, "empty expression")
	assert.Equal(t, "syntax error: empty expression", err.Error())

	err = types.NewSecurityError("identifier %q is not defined in the context", "window")
	assert.Equal(t, `security error: identifier "window" is not defined in the context`, err.Error())
}

func TestErrorKindPredicates(t *testing.T) {
	syntaxErr := types.NewSyntaxError(-1, "bad")
	securityErr := types.NewSecurityError("denied")

	assert.True(t, types.IsSyntax(syntaxErr))
	assert.False(t, types.IsSecurity(syntaxErr))
	assert.True(t, types.IsSecurity(securityErr))
	assert.False(t, types.IsSyntax(securityErr))

	assert.False(t, types.IsSyntax(nil))
	assert.False(t, types.IsSecurity(nil))
	assert.False(t, types.IsSyntax(errors.New("plain")))

	// Wrapped errors are still recognized.
	wrapped := fmt.Errorf("compile: %w", syntaxErr)
	assert.True(t, types.IsSyntax(wrapped))
}

func TestErrorWithToken(t *testing.T) {
	err := types.NewSyntaxError(-1, "unexpected token").WithToken("&&")
	assert.Equal(t, "&&", err.Token)
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "syntax", types.ErrSyntax.String())
	assert.Equal(t, "security", types.ErrSecurity.String())
}
