package lib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := map[rune]CharCode{
		' ':  CharSpace,
		'\t': CharSpace,
		'\n': CharSpace,
		'\r': CharSpace,
		'a':  CharLetter,
		'Z':  CharLetter,
		'0':  CharDigit,
		'9':  CharDigit,
		'+':  CharPlus,
		'-':  CharMinus,
		'*':  CharTimes,
		'/':  CharSlash,
		'<':  CharLt,
		'>':  CharGt,
		'!':  CharExclamation,
		'=':  CharEq,
		',':  CharComma,
		'.':  CharPeriod,
		':':  CharColon,
		';':  CharSemicolon,
		'\'': CharSingleQuote,
		'"':  CharDoubleQuote,
		'(':  CharLPar,
		')':  CharRPar,
		'[':  CharLBracket,
		']':  CharRBracket,
		'%':  CharPercent,
		'#':  CharSharp,
		'@':  CharUnknown,
		'_':  CharUnknown,
		'é':  CharUnknown,
		EOF:  CharEOF,
	}
	for ch, want := range cases {
		require.Equal(t, want, Classify(ch), "classifying %q", ch)
	}
}
