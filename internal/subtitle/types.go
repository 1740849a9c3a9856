package subtitle

import (
	"errors"
	"sort"
	"strings"
	"unicode/utf8"
)

var (
	// ErrInput marks missing or unreadable input files.
	ErrInput = errors.New("input error")
	// ErrParse marks structurally invalid SRT or XML input.
	ErrParse = errors.New("parse error")
	// ErrEncoding marks input that is not valid UTF-8.
	ErrEncoding = errors.New("encoding error")
)

// Sentence is one subtitle sentence with inline timing markers and the
// derived time frame.
type Sentence struct {
	ID    string
	Words []string

	// Document-wide character positions of the sentence boundaries.
	StartPos int
	EndPos   int

	// Inline time markers in seconds with the positions they occurred at.
	HasFirst bool
	HasLast  bool
	First    float64
	Last     float64
	FirstPos int
	LastPos  int

	// Derived frame, set by Interpolate.
	Start float64
	End   float64
}

// Text returns the sentence tokens joined by single spaces.
func (s *Sentence) Text() string {
	return strings.Join(s.Words, " ")
}

// TextLen returns the rune length of the joined sentence text.
func (s *Sentence) TextLen() int {
	n := 0
	for _, w := range s.Words {
		n += utf8.RuneCountInString(w)
	}
	if len(s.Words) > 1 {
		n += len(s.Words) - 1
	}
	return n
}

// Document is an ordered sequence of sentences.
type Document struct {
	Sentences []*Sentence
}

// SortFrames stably re-sorts sentences by ascending start time. Inputs may
// arrive out of order; alignment requires chronological frames.
func (d *Document) SortFrames() {
	sort.SliceStable(d.Sentences, func(i, j int) bool {
		return d.Sentences[i].Start < d.Sentences[j].Start
	})
}

// IsSorted reports whether frames are already in chronological order.
func (d *Document) IsSorted() bool {
	return sort.SliceIsSorted(d.Sentences, func(i, j int) bool {
		return d.Sentences[i].Start < d.Sentences[j].Start
	})
}

// Clone returns a deep copy. The best-anchor search mutates cloned
// timestamps without touching the parsed original.
func (d *Document) Clone() *Document {
	out := &Document{Sentences: make([]*Sentence, len(d.Sentences))}
	for i, s := range d.Sentences {
		cp := *s
		cp.Words = append([]string(nil), s.Words...)
		out.Sentences[i] = &cp
	}
	return out
}
