package lib

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorRendering(t *testing.T) {
	err := newError(ErrInvalidSymbol, Location{Line: 3, Col: 7})
	require.Equal(t, "3-7:Invalid symbol!", err.Error())
	require.Equal(t, "InvalidSymbol", err.Code.String())

	err = newError(ErrMissingToken, Location{Line: 1, Col: 11})
	err.Expected = KeywordThen
	require.Equal(t, "1-11:Missing keyword THEN", err.Error())

	err.Expected = TokenIdent
	require.Equal(t, "Missing an identifier", err.Message())
}

func TestErrorCodeRecoverable(t *testing.T) {
	for _, code := range []ErrorCode{
		ErrEndOfComment, ErrIdentTooLong, ErrInvalidCharConstant, ErrInvalidSymbol,
		ErrStringTooLong, ErrEndOfQuoteExpected, ErrNumberTooLarge,
	} {
		require.True(t, code.Recoverable(), code.String())
	}
	for _, code := range []ErrorCode{
		ErrMissingToken, ErrInvalidConstant, ErrInvalidType, ErrInvalidBasicType,
		ErrInvalidParam, ErrInvalidStatement, ErrInvalidAssignment,
		ErrInvalidComparator, ErrInvalidFactor,
	} {
		require.False(t, code.Recoverable(), code.String())
	}
}

func TestDiagnosticsReport(t *testing.T) {
	out := &bytes.Buffer{}
	diags := NewDiagnostics(out, DiagnosticsOptions{})

	require.True(t, diags.Report(newError(ErrInvalidSymbol, Location{Line: 1, Col: 2})))
	require.True(t, diags.Report(newError(ErrIdentTooLong, Location{Line: 2, Col: 1})))
	require.False(t, diags.Report(newError(ErrInvalidFactor, Location{Line: 3, Col: 5})))

	require.Equal(t, 3, diags.Count())
	require.Equal(t, "1-2:Invalid symbol!\n2-1:Identifier too long!\n3-5:Invalid factor!\n", out.String())
}

func TestDiagnosticsMaxErrors(t *testing.T) {
	diags := NewDiagnostics(nil, DiagnosticsOptions{MaxErrors: 2})
	require.True(t, diags.Report(newError(ErrInvalidSymbol, Location{Line: 1, Col: 1})))
	require.False(t, diags.Report(newError(ErrInvalidSymbol, Location{Line: 1, Col: 2})))
	require.Len(t, diags.Errors(), 2)
}

func TestDiagnosticsColorKeepsText(t *testing.T) {
	out := &bytes.Buffer{}
	diags := NewDiagnostics(out, DiagnosticsOptions{Color: true})
	diags.Report(newError(ErrInvalidSymbol, Location{Line: 4, Col: 2}))
	require.Contains(t, out.String(), "4-2:")
	require.Contains(t, out.String(), "Invalid symbol!")
}
