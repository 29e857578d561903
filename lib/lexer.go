package lib

import (
	"io"
	"log/slog"
	"math"
	"strings"
)

const maxNumberValue = math.MaxInt32

// A symbol starts with the character its rule is keyed on. follow maps a
// second character onto the two-character symbol it completes.
type symbolRule struct {
	kind   TokenKind
	follow map[CharCode]TokenKind
}

// '(' and '/' are also comment openers; NextToken checks those first.
var symbolRules = map[CharCode]symbolRule{
	CharPlus:        {kind: SymbolPlus},
	CharMinus:       {kind: SymbolMinus},
	CharTimes:       {kind: SymbolTimes, follow: map[CharCode]TokenKind{CharTimes: SymbolExponent}},
	CharSlash:       {kind: SymbolSlash},
	CharLt:          {kind: SymbolLt, follow: map[CharCode]TokenKind{CharEq: SymbolLe, CharGt: SymbolNeq}},
	CharGt:          {kind: SymbolGt, follow: map[CharCode]TokenKind{CharEq: SymbolGe}},
	CharExclamation: {kind: TokenNone, follow: map[CharCode]TokenKind{CharEq: SymbolNeq}},
	CharEq:          {kind: SymbolEq},
	CharComma:       {kind: SymbolComma},
	CharPeriod:      {kind: SymbolPeriod, follow: map[CharCode]TokenKind{CharRPar: SymbolRSel}},
	CharColon:       {kind: SymbolColon, follow: map[CharCode]TokenKind{CharEq: SymbolAssign}},
	CharSemicolon:   {kind: SymbolSemicolon},
	CharLPar:        {kind: SymbolLPar, follow: map[CharCode]TokenKind{CharPeriod: SymbolLSel}},
	CharRPar:        {kind: SymbolRPar},
	CharLBracket:    {kind: SymbolLSel},
	CharRBracket:    {kind: SymbolRSel},
	CharPercent:     {kind: SymbolMod},
}

type Lexer struct {
	src          CharSource
	reporter     Reporter
	maxIdentLen  int
	maxStringLen int
	halted       bool

	// Logger receives debug events. Nil disables logging.
	Logger *slog.Logger
}

func NewLexer(src CharSource, reporter Reporter, cfg LexerConfig) *Lexer {
	if reporter == nil {
		reporter = NewDiagnostics(io.Discard, DiagnosticsOptions{})
	}
	cfg = cfg.withDefaults()
	return &Lexer{
		src:          src,
		reporter:     reporter,
		maxIdentLen:  cfg.MaxIdentLen,
		maxStringLen: cfg.MaxStringLen,
	}
}

// Scan feeds every token up to, but not including, TK_EOF to emit.
func (l *Lexer) Scan(emit func(Token)) error {
	for {
		tok := l.NextToken()
		if tok.Kind == TokenEOF {
			break
		}
		emit(tok)
	}
	if r, ok := l.src.(interface{ Err() error }); ok {
		return r.Err()
	}
	return nil
}

// NextToken returns the next token. Once the input is exhausted it returns
// TK_EOF on every call. Lexical errors are reported and come back as TK_NONE
// tokens (or as a truncated token for over-long identifiers and strings).
func (l *Lexer) NextToken() Token {
	for {
		loc := l.src.Location()
		if l.halted {
			return makeToken(TokenEOF, loc)
		}

		code := Classify(l.src.Current())
		switch code {
		case CharEOF:
			return makeToken(TokenEOF, loc)
		case CharSpace:
			l.skipBlank()
			continue
		case CharLetter:
			return l.readIdentKeyword()
		case CharDigit:
			return l.readNumber()
		case CharSingleQuote:
			return l.readConstChar()
		case CharDoubleQuote:
			return l.readString()
		case CharLPar:
			l.src.Advance()
			if Classify(l.src.Current()) == CharTimes {
				l.skipComment()
				continue
			}
			return l.finishSymbol(symbolRules[CharLPar], loc)
		case CharSlash:
			l.src.Advance()
			if Classify(l.src.Current()) == CharSlash {
				l.skipLineComment()
				continue
			}
			return makeToken(SymbolSlash, loc)
		}

		rule, ok := symbolRules[code]
		if !ok {
			l.src.Advance()
			l.report(ErrInvalidSymbol, loc)
			return makeToken(TokenNone, loc)
		}
		l.src.Advance()
		return l.finishSymbol(rule, loc)
	}
}

// finishSymbol is called with the first character of the symbol consumed.
func (l *Lexer) finishSymbol(rule symbolRule, loc Location) Token {
	if kind, ok := rule.follow[Classify(l.src.Current())]; ok {
		l.src.Advance()
		return makeToken(kind, loc)
	}
	if rule.kind == TokenNone {
		l.report(ErrInvalidSymbol, loc)
	}
	return makeToken(rule.kind, loc)
}

func (l *Lexer) skipBlank() {
	for Classify(l.src.Current()) == CharSpace {
		l.src.Advance()
	}
}

// Called with "(" consumed and the current character on "*". Comments nest.
func (l *Lexer) skipComment() {
	l.src.Advance()
	depth := 1

	for depth > 0 {
		switch Classify(l.src.Current()) {
		case CharEOF:
			l.report(ErrEndOfComment, l.src.Location())
			return
		case CharLPar:
			l.src.Advance()
			if Classify(l.src.Current()) == CharTimes {
				depth++
				l.src.Advance()
			}
		case CharTimes:
			l.src.Advance()
			if Classify(l.src.Current()) == CharRPar {
				depth--
				l.src.Advance()
			}
		default:
			l.src.Advance()
		}
	}
}

// Called with the second "/" current. Stops on the newline so skipBlank
// consumes it.
func (l *Lexer) skipLineComment() {
	for {
		ch := l.src.Current()
		if ch == EOF || ch == '\n' {
			return
		}
		l.src.Advance()
	}
}

func (l *Lexer) readIdentKeyword() Token {
	tok := makeToken(TokenIdent, l.src.Location())
	var b strings.Builder
	n := 0
	tooLong := false

	for {
		code := Classify(l.src.Current())
		if code != CharLetter && code != CharDigit {
			break
		}
		if n < l.maxIdentLen {
			b.WriteRune(l.src.Current())
			n++
		} else {
			tooLong = true
		}
		l.src.Advance()
	}

	if tooLong {
		l.report(ErrIdentTooLong, tok.Location)
	}

	tok.Lexeme = b.String()
	if kind := checkKeyword(tok.Lexeme); kind != TokenNone {
		tok.Kind = kind
	}
	return tok
}

// readNumber saturates at maxNumberValue and reports ErrNumberTooLarge once.
func (l *Lexer) readNumber() Token {
	tok := makeToken(TokenNumber, l.src.Location())
	var b strings.Builder
	value := 0
	overflow := false

	for Classify(l.src.Current()) == CharDigit {
		ch := l.src.Current()
		d := int(ch - '0')
		if !overflow {
			if value > (maxNumberValue-d)/10 {
				overflow = true
				value = maxNumberValue
			} else {
				value = value*10 + d
			}
		}
		if b.Len() < l.maxStringLen {
			b.WriteRune(ch)
		}
		l.src.Advance()
	}

	if overflow {
		l.report(ErrNumberTooLarge, tok.Location)
	}
	tok.Lexeme = b.String()
	tok.Value = value
	return tok
}

func (l *Lexer) readConstChar() Token {
	loc := l.src.Location()
	l.src.Advance()

	ch := l.src.Current()
	switch {
	case ch == EOF, ch == '\n', ch == '\r':
		return l.invalidChar(loc)
	case ch == '\'':
		l.src.Advance()
		return l.invalidChar(loc)
	}
	l.src.Advance()

	if Classify(l.src.Current()) != CharSingleQuote {
		return l.invalidChar(loc)
	}
	l.src.Advance()

	tok := makeToken(TokenChar, loc)
	tok.Lexeme = string(ch)
	tok.Value = int(ch)
	return tok
}

func (l *Lexer) invalidChar(loc Location) Token {
	l.report(ErrInvalidCharConstant, loc)
	return makeToken(TokenNone, loc)
}

// A raw line break inside a string continues the literal: the break and the
// indentation of the next line are dropped.
func (l *Lexer) readString() Token {
	tok := makeToken(TokenString, l.src.Location())
	l.src.Advance()

	var b strings.Builder
	n := 0
	tooLong := false

	for {
		ch := l.src.Current()
		switch ch {
		case EOF:
			l.report(ErrEndOfQuoteExpected, l.src.Location())
			return makeToken(TokenNone, tok.Location)
		case '"':
			l.src.Advance()
			tok.Lexeme = b.String()
			return tok
		case '\r', '\n':
			l.src.Advance()
			if ch == '\r' && l.src.Current() == '\n' {
				l.src.Advance()
			}
			for l.src.Current() == ' ' || l.src.Current() == '\t' {
				l.src.Advance()
			}
		default:
			if n < l.maxStringLen {
				b.WriteRune(ch)
				n++
			} else if !tooLong {
				tooLong = true
				l.report(ErrStringTooLong, tok.Location)
			}
			l.src.Advance()
		}
	}
}

func (l *Lexer) report(code ErrorCode, loc Location) {
	if l.Logger != nil {
		l.Logger.Debug("lexical error", "code", code.String(), "line", loc.Line, "col", loc.Col)
	}
	if !l.reporter.Report(newError(code, loc)) {
		l.halted = true
	}
}
