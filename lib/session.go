package lib

import (
	"errors"
	"fmt"
	"log/slog"
)

var ErrCannotRead = errors.New("can't read input file")

// Session bundles what one scan or parse needs. The zero value scans with
// the default limits and discards diagnostics.
type Session struct {
	Lexer    LexerConfig
	Reporter Reporter
	Logger   *slog.Logger
}

func (s Session) newLexer(src CharSource) *Lexer {
	l := NewLexer(src, s.Reporter, s.Lexer)
	l.Logger = s.Logger
	return l
}

// Scan lexes src to completion and passes the trace to emit: every token
// except TK_NONE and the final TK_EOF.
func (s Session) Scan(src CharSource, emit func(Token)) error {
	err := s.newLexer(src).Scan(func(tok Token) {
		if tok.Kind != TokenNone {
			emit(tok)
		}
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCannotRead, err)
	}
	return nil
}

// Parse recognizes one program from src.
func (s Session) Parse(src CharSource) error {
	p := NewParser(s.newLexer(src), s.Reporter)
	p.Logger = s.Logger
	err := p.ParseProgram()
	if r, ok := src.(interface{ Err() error }); ok && r.Err() != nil {
		return fmt.Errorf("%w: %v", ErrCannotRead, r.Err())
	}
	return err
}

func (s Session) ScanFile(path string, emit func(Token)) error {
	src, err := OpenFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCannotRead, err)
	}
	defer src.Close()

	if s.Logger != nil {
		s.Logger.Debug("scanning", "path", path)
	}
	return s.Scan(src, emit)
}

func (s Session) ParseFile(path string) error {
	src, err := OpenFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCannotRead, err)
	}
	defer src.Close()

	if s.Logger != nil {
		s.Logger.Debug("parsing", "path", path)
	}
	return s.Parse(src)
}

// Parse recognizes the program in src with default settings.
func Parse(src string) error {
	return Session{}.Parse(NewStringReader(src))
}
