package lib

import (
	"io"
	"log/slog"
)

// Parser is a predictive recognizer for KPL programs. It holds exactly two
// tokens: the one most recently consumed and the lookahead that drives
// every decision.
type Parser struct {
	reader    tokenReader
	reporter  Reporter
	current   Token
	lookahead Token

	// Logger receives one debug line per major production. Nil disables it.
	Logger *slog.Logger
}

func NewParser(lexer *Lexer, reporter Reporter) *Parser {
	if reporter == nil {
		reporter = NewDiagnostics(io.Discard, DiagnosticsOptions{})
	}
	p := &Parser{
		reader:   validTokens{reader: lexer},
		reporter: reporter,
	}
	p.lookahead = p.reader.NextToken()
	return p
}

// ParseProgram recognizes a whole program. The first syntax error is
// reported and returned as an *Error; nothing after it is examined.
func (p *Parser) ParseProgram() error {
	return p.scanProgram()
}

func (p *Parser) scan() {
	p.current = p.lookahead
	p.lookahead = p.reader.NextToken()
}

func (p *Parser) is(kind TokenKind) bool {
	return p.lookahead.Kind == kind
}

func (p *Parser) eat(kind TokenKind) error {
	if p.lookahead.Kind != kind {
		err := newError(ErrMissingToken, p.lookahead.Location)
		err.Expected = kind
		return p.raise(err)
	}
	p.scan()
	return nil
}

func (p *Parser) fail(code ErrorCode) error {
	return p.raise(newError(code, p.lookahead.Location))
}

func (p *Parser) raise(err *Error) error {
	if p.Logger != nil {
		p.Logger.Debug("syntax error",
			"code", err.Code.String(),
			"line", err.Location.Line,
			"col", err.Location.Col,
			"lookahead", p.lookahead.Kind.String(),
			"after", p.current.Kind.String())
	}
	p.reporter.Report(err)
	return err
}

func (p *Parser) trace(production string) {
	if p.Logger != nil {
		p.Logger.Debug("parsing "+production,
			"line", p.lookahead.Location.Line,
			"col", p.lookahead.Location.Col)
	}
}

// eatAll consumes a fixed run of terminals.
func (p *Parser) eatAll(kinds ...TokenKind) error {
	for _, kind := range kinds {
		if err := p.eat(kind); err != nil {
			return err
		}
	}
	return nil
}

// Reads "program Ident ; Block ."
func (p *Parser) scanProgram() error {
	p.trace("program")
	if err := p.eatAll(KeywordProgram, TokenIdent, SymbolSemicolon); err != nil {
		return err
	}
	if err := p.scanBlock(); err != nil {
		return err
	}
	return p.eat(SymbolPeriod)
}

func (p *Parser) scanBlock() error {
	p.trace("block")

	if p.is(KeywordConst) {
		p.scan()
		if err := p.scanDecls(p.scanConstDecl); err != nil {
			return err
		}
	}

	if p.is(KeywordType) {
		p.scan()
		if err := p.scanDecls(p.scanTypeDecl); err != nil {
			return err
		}
	}

	if p.is(KeywordVar) {
		p.scan()
		if err := p.scanDecls(p.scanVarDecl); err != nil {
			return err
		}
	}

	if err := p.scanSubDecls(); err != nil {
		return err
	}

	if err := p.eat(KeywordBegin); err != nil {
		return err
	}
	if err := p.scanStatements(); err != nil {
		return err
	}
	return p.eat(KeywordEnd)
}

// A declaration section holds at least one declaration and continues while
// the lookahead is an identifier.
func (p *Parser) scanDecls(decl func() error) error {
	if err := decl(); err != nil {
		return err
	}
	for p.is(TokenIdent) {
		if err := decl(); err != nil {
			return err
		}
	}
	return nil
}

// Reads "Ident = Constant ;"
func (p *Parser) scanConstDecl() error {
	if err := p.eatAll(TokenIdent, SymbolEq); err != nil {
		return err
	}
	if err := p.scanConstant(); err != nil {
		return err
	}
	return p.eat(SymbolSemicolon)
}

// Reads "Ident = Type ;"
func (p *Parser) scanTypeDecl() error {
	if err := p.eatAll(TokenIdent, SymbolEq); err != nil {
		return err
	}
	if err := p.scanType(); err != nil {
		return err
	}
	return p.eat(SymbolSemicolon)
}

// Reads "Ident : Type ;"
func (p *Parser) scanVarDecl() error {
	if err := p.eatAll(TokenIdent, SymbolColon); err != nil {
		return err
	}
	if err := p.scanType(); err != nil {
		return err
	}
	return p.eat(SymbolSemicolon)
}

func (p *Parser) scanSubDecls() error {
	for {
		var err error
		switch p.lookahead.Kind {
		case KeywordFunction:
			err = p.scanFuncDecl()
		case KeywordProcedure:
			err = p.scanProcDecl()
		default:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Reads "function Ident Params : BasicType ; Block ;"
func (p *Parser) scanFuncDecl() error {
	p.trace("function")
	if err := p.eatAll(KeywordFunction, TokenIdent); err != nil {
		return err
	}
	if err := p.scanParams(); err != nil {
		return err
	}
	if err := p.eat(SymbolColon); err != nil {
		return err
	}
	if err := p.scanBasicType(); err != nil {
		return err
	}
	if err := p.eat(SymbolSemicolon); err != nil {
		return err
	}
	if err := p.scanBlock(); err != nil {
		return err
	}
	return p.eat(SymbolSemicolon)
}

// Reads "procedure Ident Params ; Block ;"
func (p *Parser) scanProcDecl() error {
	p.trace("procedure")
	if err := p.eatAll(KeywordProcedure, TokenIdent); err != nil {
		return err
	}
	if err := p.scanParams(); err != nil {
		return err
	}
	if err := p.eat(SymbolSemicolon); err != nil {
		return err
	}
	if err := p.scanBlock(); err != nil {
		return err
	}
	return p.eat(SymbolSemicolon)
}

func (p *Parser) scanUnsignedConstant() error {
	switch p.lookahead.Kind {
	case TokenNumber, TokenIdent, TokenChar, TokenString:
		p.scan()
		return nil
	default:
		return p.fail(ErrInvalidConstant)
	}
}

func (p *Parser) scanConstant() error {
	switch p.lookahead.Kind {
	case SymbolPlus, SymbolMinus:
		p.scan()
		return p.scanSignedConstant()
	case TokenChar, TokenString:
		p.scan()
		return nil
	case TokenIdent, TokenNumber:
		return p.scanSignedConstant()
	default:
		return p.fail(ErrInvalidConstant)
	}
}

// The part of a constant that may follow a sign.
func (p *Parser) scanSignedConstant() error {
	switch p.lookahead.Kind {
	case TokenIdent, TokenNumber:
		p.scan()
		return nil
	default:
		return p.fail(ErrInvalidConstant)
	}
}

func (p *Parser) scanType() error {
	switch p.lookahead.Kind {
	case KeywordInteger, KeywordChar, TokenIdent:
		p.scan()
		return nil
	case KeywordArray:
		// array (. Number .) of Type
		if err := p.eatAll(KeywordArray, SymbolLSel, TokenNumber, SymbolRSel, KeywordOf); err != nil {
			return err
		}
		return p.scanType()
	default:
		return p.fail(ErrInvalidType)
	}
}

func (p *Parser) scanBasicType() error {
	switch p.lookahead.Kind {
	case KeywordInteger, KeywordChar:
		p.scan()
		return nil
	default:
		return p.fail(ErrInvalidBasicType)
	}
}

// Reads an optional "( Param { ; Param } )"
func (p *Parser) scanParams() error {
	if !p.is(SymbolLPar) {
		return nil
	}
	p.scan()

	if err := p.scanParam(); err != nil {
		return err
	}
	for p.is(SymbolSemicolon) {
		p.scan()
		if err := p.scanParam(); err != nil {
			return err
		}
	}
	return p.eat(SymbolRPar)
}

// Reads "[var] Ident : BasicType"; var marks a reference parameter.
func (p *Parser) scanParam() error {
	switch p.lookahead.Kind {
	case KeywordVar:
		p.scan()
	case TokenIdent:
	default:
		return p.fail(ErrInvalidParam)
	}
	if err := p.eatAll(TokenIdent, SymbolColon); err != nil {
		return err
	}
	return p.scanBasicType()
}

func (p *Parser) scanStatements() error {
	if err := p.scanStatement(); err != nil {
		return err
	}
	for p.is(SymbolSemicolon) {
		p.scan()
		if err := p.scanStatement(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) scanStatement() error {
	switch p.lookahead.Kind {
	case TokenIdent:
		return p.scanAssignSt()
	case KeywordCall:
		return p.scanCallSt()
	case KeywordBegin:
		return p.scanGroupSt()
	case KeywordIf:
		return p.scanIfSt()
	case KeywordWhile:
		return p.scanWhileSt()
	case KeywordFor:
		return p.scanForSt()
	case KeywordRepeat:
		return p.scanRepeatSt()
	// Empty statement: the lookahead is already in FOLLOW(Statement).
	case SymbolSemicolon, KeywordEnd, KeywordElse, KeywordUntil:
		return nil
	default:
		return p.fail(ErrInvalidStatement)
	}
}

// Reads "Lhs { , Lhs } := Expression { , Expression }"
func (p *Parser) scanAssignSt() error {
	p.trace("assign statement")
	if err := p.scanAssignTarget(); err != nil {
		return err
	}
	for p.is(SymbolComma) {
		p.scan()
		if !p.is(TokenIdent) {
			return p.fail(ErrInvalidAssignment)
		}
		if err := p.scanAssignTarget(); err != nil {
			return err
		}
	}

	if err := p.eat(SymbolAssign); err != nil {
		return err
	}

	if err := p.scanExpression(); err != nil {
		return err
	}
	for p.is(SymbolComma) {
		p.scan()
		if err := p.scanExpression(); err != nil {
			return err
		}
	}
	return nil
}

// Reads "Ident Indexes"
func (p *Parser) scanAssignTarget() error {
	if err := p.eat(TokenIdent); err != nil {
		return err
	}
	return p.scanIndexes()
}

// Reads "call Ident Arguments"
func (p *Parser) scanCallSt() error {
	p.trace("call statement")
	if err := p.eatAll(KeywordCall, TokenIdent); err != nil {
		return err
	}
	return p.scanArguments()
}

// Reads "begin Statements end"
func (p *Parser) scanGroupSt() error {
	p.trace("group statement")
	if err := p.eat(KeywordBegin); err != nil {
		return err
	}
	if err := p.scanStatements(); err != nil {
		return err
	}
	return p.eat(KeywordEnd)
}

// Reads "if Condition then Statement [else Statement]"
func (p *Parser) scanIfSt() error {
	p.trace("if statement")
	if err := p.eat(KeywordIf); err != nil {
		return err
	}
	if err := p.scanCondition(); err != nil {
		return err
	}
	if err := p.eat(KeywordThen); err != nil {
		return err
	}
	if err := p.scanStatement(); err != nil {
		return err
	}
	if !p.is(KeywordElse) {
		return nil
	}
	p.scan()
	return p.scanStatement()
}

// Reads "while Condition do Statement"
func (p *Parser) scanWhileSt() error {
	p.trace("while statement")
	if err := p.eat(KeywordWhile); err != nil {
		return err
	}
	if err := p.scanCondition(); err != nil {
		return err
	}
	if err := p.eat(KeywordDo); err != nil {
		return err
	}
	return p.scanStatement()
}

// Reads "for Ident := Expression to Expression do Statement"
func (p *Parser) scanForSt() error {
	p.trace("for statement")
	if err := p.eatAll(KeywordFor, TokenIdent, SymbolAssign); err != nil {
		return err
	}
	if err := p.scanExpression(); err != nil {
		return err
	}
	if err := p.eat(KeywordTo); err != nil {
		return err
	}
	if err := p.scanExpression(); err != nil {
		return err
	}
	if err := p.eat(KeywordDo); err != nil {
		return err
	}
	return p.scanStatement()
}

// Reads "repeat Statements until Condition"
func (p *Parser) scanRepeatSt() error {
	p.trace("repeat statement")
	if err := p.eat(KeywordRepeat); err != nil {
		return err
	}
	if err := p.scanStatements(); err != nil {
		return err
	}
	if err := p.eat(KeywordUntil); err != nil {
		return err
	}
	return p.scanCondition()
}

// Reads an optional "( Expression { , Expression } )"
func (p *Parser) scanArguments() error {
	if !p.is(SymbolLPar) {
		return nil
	}
	p.scan()

	if err := p.scanExpression(); err != nil {
		return err
	}
	for p.is(SymbolComma) {
		p.scan()
		if err := p.scanExpression(); err != nil {
			return err
		}
	}
	return p.eat(SymbolRPar)
}

// Reads "Expression Comparator Expression". Comparisons do not chain.
func (p *Parser) scanCondition() error {
	if err := p.scanExpression(); err != nil {
		return err
	}
	switch p.lookahead.Kind {
	case SymbolEq, SymbolNeq, SymbolLt, SymbolLe, SymbolGt, SymbolGe:
		p.scan()
	default:
		return p.fail(ErrInvalidComparator)
	}
	return p.scanExpression()
}

// Reads "[+|-] Term { (+|-) Term }"
func (p *Parser) scanExpression() error {
	if p.is(SymbolPlus) || p.is(SymbolMinus) {
		p.scan()
	}
	if err := p.scanTerm(); err != nil {
		return err
	}
	for p.is(SymbolPlus) || p.is(SymbolMinus) {
		p.scan()
		if err := p.scanTerm(); err != nil {
			return err
		}
	}
	return nil
}

// Reads "Power { (*|/|%) Power }"
func (p *Parser) scanTerm() error {
	if err := p.scanPower(); err != nil {
		return err
	}
	for p.is(SymbolTimes) || p.is(SymbolSlash) || p.is(SymbolMod) {
		p.scan()
		if err := p.scanPower(); err != nil {
			return err
		}
	}
	return nil
}

// Reads "Factor [** Power]"; exponentiation groups to the right.
func (p *Parser) scanPower() error {
	if err := p.scanFactor(); err != nil {
		return err
	}
	if !p.is(SymbolExponent) {
		return nil
	}
	p.scan()
	return p.scanPower()
}

func (p *Parser) scanFactor() error {
	switch p.lookahead.Kind {
	case TokenNumber, TokenChar, TokenString:
		return p.scanUnsignedConstant()
	case TokenIdent:
		p.scan()
		// Ident Arguments is a function call, otherwise a variable with
		// optional indexes.
		if p.is(SymbolLPar) {
			return p.scanArguments()
		}
		return p.scanIndexes()
	case SymbolLPar:
		p.scan()
		if err := p.scanExpression(); err != nil {
			return err
		}
		return p.eat(SymbolRPar)
	default:
		return p.fail(ErrInvalidFactor)
	}
}

// Reads "{ (. Expression .) }", one pair per array dimension.
func (p *Parser) scanIndexes() error {
	for p.is(SymbolLSel) {
		p.scan()
		if err := p.scanExpression(); err != nil {
			return err
		}
		if err := p.eat(SymbolRSel); err != nil {
			return err
		}
	}
	return nil
}
