package lib

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"
)

const maxWordLen = 50

type IndexEntry struct {
	Word  string
	Lines []int
}

func (e IndexEntry) Count() int {
	return len(e.Lines)
}

// String renders "word count, line, line, ...".
func (e IndexEntry) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d", e.Word, e.Count())
	for _, line := range e.Lines {
		fmt.Fprintf(&b, ", %d", line)
	}
	return b.String()
}

type word struct {
	text          string
	line          int
	sentenceStart bool
	touchesDigit  bool
}

func isASCIILetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isASCIIDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// scanWords splits r into runs of letters. Words longer than maxWordLen are
// cut to that length.
func scanWords(r io.Reader, emit func(word)) error {
	in := bufio.NewReader(r)
	line := 1
	sentenceStart := true
	var prev, before rune
	var current word
	buf := []rune{}

	for {
		ch, _, err := in.ReadRune()
		if err == io.EOF {
			ch = EOF
		} else if err != nil {
			return err
		}

		if isASCIILetter(ch) {
			if len(buf) == 0 {
				before = prev
				current = word{line: line, sentenceStart: sentenceStart}
			}
			if len(buf) < maxWordLen {
				buf = append(buf, ch)
			}
			prev = ch
			continue
		}

		if len(buf) > 0 {
			current.text = string(buf)
			current.touchesDigit = isASCIIDigit(before) || isASCIIDigit(ch)
			emit(current)
			buf = buf[:0]
			sentenceStart = false
		}
		if ch == EOF {
			return nil
		}

		switch {
		case ch == '\n':
			sentenceStart = true
			line++
		case ch == ' ' && (prev == '.' || prev == '?' || prev == '!'):
			sentenceStart = true
		case !unicode.IsSpace(ch):
			sentenceStart = false
		}
		prev = ch
	}
}

func ReadStopWords(r io.Reader) (map[string]bool, error) {
	stop := map[string]bool{}
	err := scanWords(r, func(w word) {
		if !w.touchesDigit {
			stop[strings.ToLower(w.text)] = true
		}
	})
	if err != nil {
		return nil, err
	}
	return stop, nil
}

// BuildWordIndex lists every indexable word of text with the lines it is on,
// sorted alphabetically. A capitalized word that does not start a sentence
// is taken for a proper noun and skipped.
func BuildWordIndex(text io.Reader, stopWords io.Reader) ([]IndexEntry, error) {
	stop, err := ReadStopWords(stopWords)
	if err != nil {
		return nil, err
	}

	entries := map[string]*IndexEntry{}
	err = scanWords(text, func(w word) {
		if w.touchesDigit {
			return
		}
		if unicode.IsUpper(rune(w.text[0])) && !w.sentenceStart {
			return
		}
		lower := strings.ToLower(w.text)
		if stop[lower] {
			return
		}

		entry, ok := entries[lower]
		if !ok {
			entry = &IndexEntry{Word: lower, Lines: []int{}}
			entries[lower] = entry
		}
		if n := len(entry.Lines); n == 0 || entry.Lines[n-1] != w.line {
			entry.Lines = append(entry.Lines, w.line)
		}
	})
	if err != nil {
		return nil, err
	}

	result := make([]IndexEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Word < result[j].Word
	})
	return result, nil
}
