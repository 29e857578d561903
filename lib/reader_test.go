package lib

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReaderPositions(t *testing.T) {
	r := NewStringReader("ab\nc")

	require.Equal(t, 'a', r.Current())
	require.Equal(t, Location{Line: 1, Col: 1}, r.Location())
	r.Advance()
	require.Equal(t, 'b', r.Current())
	require.Equal(t, Location{Line: 1, Col: 2}, r.Location())
	r.Advance()
	require.Equal(t, '\n', r.Current())
	require.Equal(t, Location{Line: 1, Col: 3}, r.Location())
	r.Advance()
	require.Equal(t, 'c', r.Current())
	require.Equal(t, Location{Line: 2, Col: 1}, r.Location())
	r.Advance()
	require.Equal(t, EOF, r.Current())
	require.Equal(t, Location{Line: 2, Col: 2}, r.Location())

	r.Advance()
	require.Equal(t, EOF, r.Current())
	require.Equal(t, Location{Line: 2, Col: 2}, r.Location())
	require.NoError(t, r.Err())
}

func TestReaderEmpty(t *testing.T) {
	r := NewStringReader("")
	require.Equal(t, EOF, r.Current())
	require.Equal(t, Location{Line: 1, Col: 1}, r.Location())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestReaderKeepsReadError(t *testing.T) {
	r := NewReader(failingReader{})
	require.Equal(t, EOF, r.Current())
	require.EqualError(t, r.Err(), "disk on fire")
}

func TestOpenFileMissing(t *testing.T) {
	_, err := OpenFile("does/not/exist.kpl")
	require.Error(t, err)
}
