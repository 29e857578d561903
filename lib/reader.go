package lib

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// CharSource yields one character at a time. Current returns EOF once the
// input is exhausted and keeps returning it.
type CharSource interface {
	Current() rune
	Location() Location
	Advance()
}

type Reader struct {
	in      *bufio.Reader
	closer  io.Closer
	current rune
	loc     Location
	err     error
}

func NewReader(in io.Reader) *Reader {
	r := &Reader{
		in:  bufio.NewReader(in),
		loc: Location{Line: 1, Col: 0},
	}
	r.Advance()
	return r
}

func NewStringReader(src string) *Reader {
	return NewReader(strings.NewReader(src))
}

// OpenFile opens path for scanning. The caller owns the returned reader and
// must Close it on every exit path.
func OpenFile(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := NewReader(f)
	r.closer = f
	return r, nil
}

func (r *Reader) Current() rune {
	return r.current
}

func (r *Reader) Location() Location {
	return r.loc
}

func (r *Reader) Advance() {
	if r.current == EOF {
		return
	}
	if r.current == '\n' {
		r.loc.Line++
		r.loc.Col = 0
	}
	r.loc.Col++

	ch, _, err := r.in.ReadRune()
	if err != nil {
		if err != io.EOF {
			r.err = err
		}
		r.current = EOF
		return
	}
	r.current = ch
}

// Err reports a read failure other than reaching the end of input.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}
