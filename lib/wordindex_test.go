package lib

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildWordIndex(t *testing.T) {
	text := "The cat sat on the mat.\nAlice saw Bob and the cat. The dog ran2 away\na3b x"
	entries, err := BuildWordIndex(strings.NewReader(text), strings.NewReader("the on a"))
	require.NoError(t, err)

	require.Equal(t, []IndexEntry{
		{Word: "alice", Lines: []int{2}},
		{Word: "and", Lines: []int{2}},
		{Word: "away", Lines: []int{2}},
		{Word: "cat", Lines: []int{1, 2}},
		{Word: "dog", Lines: []int{2}},
		{Word: "mat", Lines: []int{1}},
		{Word: "sat", Lines: []int{1}},
		{Word: "saw", Lines: []int{2}},
		{Word: "x", Lines: []int{3}},
	}, entries)
}

func TestWordIndexCountsLinesOnce(t *testing.T) {
	entries, err := BuildWordIndex(strings.NewReader("go go go\nstop go"), strings.NewReader("stop"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 2, entries[0].Count())
	require.Equal(t, "go 2, 1, 2", entries[0].String())
}

func TestWordIndexSentenceStart(t *testing.T) {
	entries, err := BuildWordIndex(strings.NewReader("Where is it? Here. Not Rome"), strings.NewReader(""))
	require.NoError(t, err)

	words := []string{}
	for _, e := range entries {
		words = append(words, e.Word)
	}
	require.Equal(t, []string{"here", "is", "it", "not", "where"}, words)
}

func TestWordIndexLongWords(t *testing.T) {
	long := strings.Repeat("a", 60)
	entries, err := BuildWordIndex(strings.NewReader(long), strings.NewReader(""))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Len(t, entries[0].Word, maxWordLen)
}

func TestReadStopWords(t *testing.T) {
	stop, err := ReadStopWords(strings.NewReader("The\nof  AND\n"))
	require.NoError(t, err)
	require.Equal(t, map[string]bool{"the": true, "of": true, "and": true}, stop)
}
