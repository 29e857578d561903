package lib

import (
	"fmt"
)

type ErrorCode int

const (
	// Lexical errors. The scanner reports them and keeps going.
	ErrEndOfComment ErrorCode = iota
	ErrIdentTooLong
	ErrInvalidCharConstant
	ErrInvalidSymbol
	ErrStringTooLong
	ErrEndOfQuoteExpected
	ErrNumberTooLarge

	// Syntax errors. Any of these ends the parse.
	ErrMissingToken
	ErrInvalidConstant
	ErrInvalidType
	ErrInvalidBasicType
	ErrInvalidParam
	ErrInvalidStatement
	ErrInvalidAssignment
	ErrInvalidComparator
	ErrInvalidFactor
)

var errorMessages = map[ErrorCode]string{
	ErrEndOfComment:        "End of comment expected!",
	ErrIdentTooLong:        "Identifier too long!",
	ErrInvalidCharConstant: "Invalid constant char!",
	ErrInvalidSymbol:       "Invalid symbol!",
	ErrStringTooLong:       "Constant string too long!",
	ErrEndOfQuoteExpected:  "Closing double quote expected!",
	ErrNumberTooLarge:      "Number too large!",
	ErrMissingToken:        "Missing token!",
	ErrInvalidConstant:     "Invalid constant!",
	ErrInvalidType:         "Invalid type!",
	ErrInvalidBasicType:    "Invalid basic type!",
	ErrInvalidParam:        "Invalid parameter!",
	ErrInvalidStatement:    "Invalid statement!",
	ErrInvalidAssignment:   "Invalid assignment!",
	ErrInvalidComparator:   "Invalid comparator!",
	ErrInvalidFactor:       "Invalid factor!",
}

var errorNames = map[ErrorCode]string{
	ErrEndOfComment:        "EndOfComment",
	ErrIdentTooLong:        "IdentTooLong",
	ErrInvalidCharConstant: "InvalidCharConstant",
	ErrInvalidSymbol:       "InvalidSymbol",
	ErrStringTooLong:       "StringTooLong",
	ErrEndOfQuoteExpected:  "EndOfQuoteExpected",
	ErrNumberTooLarge:      "NumberTooLarge",
	ErrMissingToken:        "MissingToken",
	ErrInvalidConstant:     "InvalidConstant",
	ErrInvalidType:         "InvalidType",
	ErrInvalidBasicType:    "InvalidBasicType",
	ErrInvalidParam:        "InvalidParam",
	ErrInvalidStatement:    "InvalidStatement",
	ErrInvalidAssignment:   "InvalidAssignment",
	ErrInvalidComparator:   "InvalidComparator",
	ErrInvalidFactor:       "InvalidFactor",
}

func (c ErrorCode) String() string {
	name, ok := errorNames[c]
	if !ok {
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
	return name
}

func (c ErrorCode) Message() string {
	return errorMessages[c]
}

// Recoverable is true for the lexical codes.
func (c ErrorCode) Recoverable() bool {
	return c < ErrMissingToken
}

type Error struct {
	Code     ErrorCode
	Location Location
	// Expected is only set for ErrMissingToken.
	Expected TokenKind
}

func newError(code ErrorCode, loc Location) *Error {
	return &Error{Code: code, Location: loc}
}

func (e *Error) Message() string {
	if e.Code == ErrMissingToken {
		return fmt.Sprintf("Missing %s", e.Expected.Describe())
	}
	return e.Code.Message()
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d-%d:%s", e.Location.Line, e.Location.Col, e.Message())
}

// Reporter receives every lexical and syntax error. The return value says
// whether recognition may continue.
type Reporter interface {
	Report(err *Error) bool
}
