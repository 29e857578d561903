package lib

type tokenReader interface {
	NextToken() Token
}

// validTokens drops the TK_NONE tokens the lexer produces for lexical
// errors; those errors have already been reported.
type validTokens struct {
	reader tokenReader
}

func (v validTokens) NextToken() Token {
	for {
		tok := v.reader.NextToken()
		if tok.Kind != TokenNone {
			return tok
		}
	}
}
