package lib

type CharCode int

const (
	CharSpace CharCode = iota
	CharLetter
	CharDigit
	CharPlus
	CharMinus
	CharTimes
	CharSlash
	CharLt
	CharGt
	CharExclamation
	CharEq
	CharComma
	CharPeriod
	CharColon
	CharSemicolon
	CharSingleQuote
	CharDoubleQuote
	CharLPar
	CharRPar
	CharLBracket
	CharRBracket
	CharPercent
	CharSharp
	CharUnknown
	CharEOF
)

// EOF is the sentinel rune a CharSource reports once input is exhausted.
const EOF rune = -1

var charCodes [128]CharCode

func init() {
	for i := range charCodes {
		charCodes[i] = CharUnknown
	}
	for ch := 'a'; ch <= 'z'; ch++ {
		charCodes[ch] = CharLetter
	}
	for ch := 'A'; ch <= 'Z'; ch++ {
		charCodes[ch] = CharLetter
	}
	for ch := '0'; ch <= '9'; ch++ {
		charCodes[ch] = CharDigit
	}
	for _, ch := range " \t\n\r\v\f" {
		charCodes[ch] = CharSpace
	}

	charCodes['+'] = CharPlus
	charCodes['-'] = CharMinus
	charCodes['*'] = CharTimes
	charCodes['/'] = CharSlash
	charCodes['<'] = CharLt
	charCodes['>'] = CharGt
	charCodes['!'] = CharExclamation
	charCodes['='] = CharEq
	charCodes[','] = CharComma
	charCodes['.'] = CharPeriod
	charCodes[':'] = CharColon
	charCodes[';'] = CharSemicolon
	charCodes['\''] = CharSingleQuote
	charCodes['"'] = CharDoubleQuote
	charCodes['('] = CharLPar
	charCodes[')'] = CharRPar
	charCodes['['] = CharLBracket
	charCodes[']'] = CharRBracket
	charCodes['%'] = CharPercent
	charCodes['#'] = CharSharp
}

// Classify never fails: anything outside ASCII is CharUnknown.
func Classify(ch rune) CharCode {
	if ch == EOF {
		return CharEOF
	}
	if ch < 0 || int(ch) >= len(charCodes) {
		return CharUnknown
	}
	return charCodes[ch]
}

func (c CharCode) String() string {
	switch c {
	case CharSpace:
		return "space"
	case CharLetter:
		return "letter"
	case CharDigit:
		return "digit"
	case CharSingleQuote:
		return "single quote"
	case CharDoubleQuote:
		return "double quote"
	case CharSharp:
		return "sharp"
	case CharUnknown:
		return "unknown"
	case CharEOF:
		return "eof"
	default:
		return "symbol"
	}
}
