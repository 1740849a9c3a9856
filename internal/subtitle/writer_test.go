package subtitle

import (
	"strings"
	"testing"
)

func TestWriteSRT(t *testing.T) {
	var sb strings.Builder
	entries := []Entry{
		{Index: 1, Start: 1, End: 3, Text: "Hello there."},
		{Index: 2, Start: 4, End: 6.5, Text: "Two\nlines."},
	}
	if err := WriteSRT(&sb, entries); err != nil {
		t.Fatalf("WriteSRT: %v", err)
	}

	want := "1\n00:00:01,000 --> 00:00:03,000\nHello there.\n\n2\n00:00:04,000 --> 00:00:06,500\nTwo\nlines.\n"
	if sb.String() != want {
		t.Errorf("output mismatch:\ngot:\n%q\nwant:\n%q", sb.String(), want)
	}
}

func TestWriteSRTRoundTrip(t *testing.T) {
	var sb strings.Builder
	entries := []Entry{{Index: 1, Start: 1.25, End: 2.75, Text: "Round trip."}}
	if err := WriteSRT(&sb, entries); err != nil {
		t.Fatalf("WriteSRT: %v", err)
	}

	doc, err := ReadSRT(writeTempFile(t, "rt.srt", sb.String()))
	if err != nil {
		t.Fatalf("ReadSRT: %v", err)
	}
	if len(doc.Sentences) != 1 {
		t.Fatalf("expected 1 sentence, got %d", len(doc.Sentences))
	}
	s := doc.Sentences[0]
	if s.First != 1.25 || s.Last != 2.75 {
		t.Errorf("times = %f..%f, want 1.25..2.75", s.First, s.Last)
	}
}
