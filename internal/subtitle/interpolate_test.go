package subtitle

import (
	"math"
	"testing"
)

func TestInterpolateFillsMissingMarkers(t *testing.T) {
	doc := &Document{Sentences: []*Sentence{
		{ID: "1", StartPos: 0, EndPos: 10, HasFirst: true, First: 1, FirstPos: 0, HasLast: true, Last: 3, LastPos: 10},
		{ID: "2", StartPos: 10, EndPos: 20},
		{ID: "3", StartPos: 20, EndPos: 30, HasFirst: true, First: 7, FirstPos: 20, HasLast: true, Last: 9, LastPos: 30},
	}}
	doc.Interpolate(1, 0, nil)

	s2 := doc.Sentences[1]
	if math.Abs(s2.Start-3) > 1e-9 {
		t.Errorf("s2 start = %f, want previous end 3", s2.Start)
	}
	if math.Abs(s2.End-7) > 1e-9 {
		t.Errorf("s2 end = %f, want next first 7", s2.End)
	}
}

func TestInterpolatePositionalAdjustment(t *testing.T) {
	// Last marker halfway through a 10-char sentence: the remaining half is
	// extrapolated forward at the same characters-per-second rate.
	doc := &Document{Sentences: []*Sentence{
		{ID: "1", StartPos: 0, EndPos: 10, HasFirst: true, First: 10, FirstPos: 0, HasLast: true, Last: 20, LastPos: 5},
	}}
	doc.Interpolate(1, 0, nil)

	s := doc.Sentences[0]
	if math.Abs(s.Start-10) > 1e-9 {
		t.Errorf("start = %f, want 10", s.Start)
	}
	if math.Abs(s.End-30) > 1e-9 {
		t.Errorf("end = %f, want 30", s.End)
	}
}

func TestInterpolateDemotesLoneEndMarker(t *testing.T) {
	doc := &Document{Sentences: []*Sentence{
		{ID: "1", StartPos: 0, EndPos: 10, HasFirst: true, First: 5, FirstPos: 10},
	}}
	doc.Interpolate(1, 0, nil)

	s := doc.Sentences[0]
	if math.Abs(s.End-5) > 1e-6 {
		t.Errorf("end = %f, want demoted marker 5", s.End)
	}
	if s.Start >= s.End {
		t.Errorf("frame not strictly positive: %g..%g", s.Start, s.End)
	}
}

func TestInterpolateAppliesTransform(t *testing.T) {
	doc := &Document{Sentences: []*Sentence{
		{ID: "1", StartPos: 0, EndPos: 4, HasFirst: true, First: 2, FirstPos: 0, HasLast: true, Last: 4, LastPos: 4},
	}}
	doc.Interpolate(2, 1, nil)

	s := doc.Sentences[0]
	if math.Abs(s.Start-5) > 1e-9 || math.Abs(s.End-9) > 1e-9 {
		t.Errorf("frame = %f..%f, want 5..9", s.Start, s.End)
	}
}

func TestInterpolateStrictlyPositiveFrames(t *testing.T) {
	doc := &Document{Sentences: []*Sentence{
		{ID: "1", StartPos: 0, EndPos: 5, HasFirst: true, First: 2, FirstPos: 0, HasLast: true, Last: 2, LastPos: 5},
		{ID: "2", StartPos: 5, EndPos: 9, HasFirst: true, First: 4, FirstPos: 5, HasLast: true, Last: 3, LastPos: 9},
	}}
	doc.Interpolate(1, 0, nil)

	for _, s := range doc.Sentences {
		if !(s.Start < s.End) {
			t.Errorf("sentence %s: start %g not strictly before end %g", s.ID, s.Start, s.End)
		}
	}
}

func TestSortFrames(t *testing.T) {
	doc := &Document{Sentences: []*Sentence{
		{ID: "b", Start: 5, End: 6},
		{ID: "a", Start: 1, End: 2},
		{ID: "c", Start: 9, End: 10},
	}}
	if doc.IsSorted() {
		t.Fatal("document should start unsorted")
	}
	doc.SortFrames()
	if !doc.IsSorted() {
		t.Fatal("document should be sorted")
	}
	for i := 0; i+1 < len(doc.Sentences); i++ {
		if doc.Sentences[i].Start > doc.Sentences[i+1].Start {
			t.Fatalf("start[%d] > start[%d]", i, i+1)
		}
	}
	if doc.Sentences[0].ID != "a" {
		t.Errorf("first sentence = %q, want a", doc.Sentences[0].ID)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	doc := &Document{Sentences: []*Sentence{{ID: "1", Start: 1, End: 2, Words: []string{"x"}}}}
	cp := doc.Clone()
	cp.Sentences[0].Start = 99
	cp.Sentences[0].Words[0] = "y"
	if doc.Sentences[0].Start != 1 || doc.Sentences[0].Words[0] != "x" {
		t.Error("clone mutation leaked into original")
	}
}
