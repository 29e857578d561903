package lib

import (
	"fmt"
	"strings"
)

type TokenKind int

const (
	TokenNone TokenKind = iota
	TokenIdent
	TokenNumber
	TokenChar
	TokenString
	TokenEOF

	KeywordProgram
	KeywordConst
	KeywordType
	KeywordVar
	KeywordInteger
	KeywordChar
	KeywordArray
	KeywordOf
	KeywordFunction
	KeywordProcedure
	KeywordBegin
	KeywordEnd
	KeywordCall
	KeywordIf
	KeywordThen
	KeywordElse
	KeywordWhile
	KeywordDo
	KeywordFor
	KeywordTo
	KeywordRepeat
	KeywordUntil
	KeywordByte
	KeywordString

	SymbolSemicolon
	SymbolColon
	SymbolPeriod
	SymbolComma
	SymbolAssign
	SymbolEq
	SymbolNeq
	SymbolLt
	SymbolLe
	SymbolGt
	SymbolGe
	SymbolPlus
	SymbolMinus
	SymbolTimes
	SymbolSlash
	SymbolMod
	SymbolExponent
	SymbolLPar
	SymbolRPar
	SymbolLSel
	SymbolRSel
)

var tokenKindNames = map[TokenKind]string{
	TokenNone:   "TK_NONE",
	TokenIdent:  "TK_IDENT",
	TokenNumber: "TK_NUMBER",
	TokenChar:   "TK_CHAR",
	TokenString: "TK_STRING",
	TokenEOF:    "TK_EOF",

	KeywordProgram:   "KW_PROGRAM",
	KeywordConst:     "KW_CONST",
	KeywordType:      "KW_TYPE",
	KeywordVar:       "KW_VAR",
	KeywordInteger:   "KW_INTEGER",
	KeywordChar:      "KW_CHAR",
	KeywordArray:     "KW_ARRAY",
	KeywordOf:        "KW_OF",
	KeywordFunction:  "KW_FUNCTION",
	KeywordProcedure: "KW_PROCEDURE",
	KeywordBegin:     "KW_BEGIN",
	KeywordEnd:       "KW_END",
	KeywordCall:      "KW_CALL",
	KeywordIf:        "KW_IF",
	KeywordThen:      "KW_THEN",
	KeywordElse:      "KW_ELSE",
	KeywordWhile:     "KW_WHILE",
	KeywordDo:        "KW_DO",
	KeywordFor:       "KW_FOR",
	KeywordTo:        "KW_TO",
	KeywordRepeat:    "KW_REPEAT",
	KeywordUntil:     "KW_UNTIL",
	KeywordByte:      "KW_BYTE",
	KeywordString:    "KW_STRING",

	SymbolSemicolon: "SB_SEMICOLON",
	SymbolColon:     "SB_COLON",
	SymbolPeriod:    "SB_PERIOD",
	SymbolComma:     "SB_COMMA",
	SymbolAssign:    "SB_ASSIGN",
	SymbolEq:        "SB_EQ",
	SymbolNeq:       "SB_NEQ",
	SymbolLt:        "SB_LT",
	SymbolLe:        "SB_LE",
	SymbolGt:        "SB_GT",
	SymbolGe:        "SB_GE",
	SymbolPlus:      "SB_PLUS",
	SymbolMinus:     "SB_MINUS",
	SymbolTimes:     "SB_TIMES",
	SymbolSlash:     "SB_SLASH",
	SymbolMod:       "SB_MOD",
	SymbolExponent:  "SB_EXPONENT",
	SymbolLPar:      "SB_LPAR",
	SymbolRPar:      "SB_RPAR",
	SymbolLSel:      "SB_LSEL",
	SymbolRSel:      "SB_RSEL",
}

var symbolSpellings = map[TokenKind]string{
	SymbolSemicolon: ";",
	SymbolColon:     ":",
	SymbolPeriod:    ".",
	SymbolComma:     ",",
	SymbolAssign:    ":=",
	SymbolEq:        "=",
	SymbolNeq:       "<>",
	SymbolLt:        "<",
	SymbolLe:        "<=",
	SymbolGt:        ">",
	SymbolGe:        ">=",
	SymbolPlus:      "+",
	SymbolMinus:     "-",
	SymbolTimes:     "*",
	SymbolSlash:     "/",
	SymbolMod:       "%",
	SymbolExponent:  "**",
	SymbolLPar:      "(",
	SymbolRPar:      ")",
	SymbolLSel:      "(.",
	SymbolRSel:      ".)",
}

// Keywords are matched case-insensitively; the keys are upper case.
var keywords = map[string]TokenKind{
	"PROGRAM":   KeywordProgram,
	"CONST":     KeywordConst,
	"TYPE":      KeywordType,
	"VAR":       KeywordVar,
	"INTEGER":   KeywordInteger,
	"CHAR":      KeywordChar,
	"ARRAY":     KeywordArray,
	"OF":        KeywordOf,
	"FUNCTION":  KeywordFunction,
	"PROCEDURE": KeywordProcedure,
	"BEGIN":     KeywordBegin,
	"END":       KeywordEnd,
	"CALL":      KeywordCall,
	"IF":        KeywordIf,
	"THEN":      KeywordThen,
	"ELSE":      KeywordElse,
	"WHILE":     KeywordWhile,
	"DO":        KeywordDo,
	"FOR":       KeywordFor,
	"TO":        KeywordTo,
	"REPEAT":    KeywordRepeat,
	"UNTIL":     KeywordUntil,
	"BYTE":      KeywordByte,
	"STRING":    KeywordString,
}

// checkKeyword returns TokenNone when word is not reserved.
func checkKeyword(word string) TokenKind {
	kind, ok := keywords[strings.ToUpper(word)]
	if !ok {
		return TokenNone
	}
	return kind
}

func (k TokenKind) String() string {
	name, ok := tokenKindNames[k]
	if !ok {
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
	return name
}

func (k TokenKind) IsKeyword() bool {
	return k >= KeywordProgram && k <= KeywordString
}

// Describe names a token kind the way diagnostics refer to it.
func (k TokenKind) Describe() string {
	switch k {
	case TokenNone:
		return "None"
	case TokenIdent:
		return "an identifier"
	case TokenNumber:
		return "a number"
	case TokenChar:
		return "a constant char"
	case TokenString:
		return "a constant string"
	case TokenEOF:
		return "end of file"
	}
	if k.IsKeyword() {
		return "keyword " + strings.TrimPrefix(k.String(), "KW_")
	}
	if s, ok := symbolSpellings[k]; ok {
		return fmt.Sprintf("'%s'", s)
	}
	return k.String()
}

type Location struct {
	Line int
	Col  int
}

type Token struct {
	Kind     TokenKind
	Lexeme   string
	Value    int
	Location Location
}

func makeToken(kind TokenKind, loc Location) Token {
	return Token{Kind: kind, Location: loc}
}

// String renders the token the way the scanner trace prints it.
func (t Token) String() string {
	prefix := fmt.Sprintf("%d-%d:%s", t.Location.Line, t.Location.Col, t.Kind)
	switch t.Kind {
	case TokenIdent:
		return fmt.Sprintf("%s(%s)", prefix, t.Lexeme)
	case TokenNumber:
		return fmt.Sprintf("%s(%d)", prefix, t.Value)
	case TokenChar:
		return fmt.Sprintf("%s('%s')", prefix, t.Lexeme)
	case TokenString:
		return fmt.Sprintf("%s(\"%s\")", prefix, t.Lexeme)
	default:
		return prefix
	}
}
