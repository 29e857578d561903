package lib

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionScanFile(t *testing.T) {
	path := writeTemp(t, "example.kpl", "program P;\nbegin end.")

	lines := []string{}
	err := Session{}.ScanFile(path, func(tok Token) {
		lines = append(lines, tok.String())
	})
	require.NoError(t, err)
	require.Equal(t, []string{
		"1-1:KW_PROGRAM",
		"1-9:TK_IDENT(P)",
		"1-10:SB_SEMICOLON",
		"2-1:KW_BEGIN",
		"2-7:KW_END",
		"2-10:SB_PERIOD",
	}, lines)
}

func TestSessionParseFile(t *testing.T) {
	diags := NewDiagnostics(nil, DiagnosticsOptions{})
	s := Session{Reporter: diags, Lexer: LexerConfig{MaxIdentLen: 4}}

	ok := writeTemp(t, "ok.kpl", "program Longname; begin end.")
	require.NoError(t, s.ParseFile(ok))
	require.Len(t, diags.Errors(), 1)
	requireErr(t, diags.Errors()[0], ErrIdentTooLong, 1, 9)

	bad := writeTemp(t, "bad.kpl", "program P; begin x := ( end.")
	err := s.ParseFile(bad)
	var syntaxErr *Error
	require.True(t, errors.As(err, &syntaxErr))
	require.Equal(t, ErrInvalidFactor, syntaxErr.Code)
}

func TestSessionMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.kpl")

	err := Session{}.ParseFile(missing)
	require.True(t, errors.Is(err, ErrCannotRead))

	err = Session{}.ScanFile(missing, func(Token) {})
	require.True(t, errors.Is(err, ErrCannotRead))
}

func TestSessionReadFailure(t *testing.T) {
	err := Session{}.Parse(NewReader(failingReader{}))
	require.True(t, errors.Is(err, ErrCannotRead))

	err = Session{}.Scan(NewReader(failingReader{}), func(Token) {})
	require.True(t, errors.Is(err, ErrCannotRead))
}

func TestSessionScanDropsInvalidTokens(t *testing.T) {
	diags := NewDiagnostics(nil, DiagnosticsOptions{})
	kindsSeen := []TokenKind{}
	err := Session{Reporter: diags}.Scan(NewStringReader("a # '' b"), func(tok Token) {
		kindsSeen = append(kindsSeen, tok.Kind)
	})
	require.NoError(t, err)
	require.Equal(t, []TokenKind{TokenIdent, TokenIdent}, kindsSeen)
	require.Equal(t, 2, diags.Count())
}
