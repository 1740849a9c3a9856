package xces

import (
	"strings"
	"testing"

	"subalign/internal/overlap"
)

func TestWriterLayout(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb)
	w.StartGroup("src.xml", "trg.xml", map[string]string{"cognates": "0.8"})
	w.WriteLink(&overlap.Link{SrcIDs: []string{"1", "2"}, TrgIDs: []string{"1"}, HasRatio: true, Ratio: 1})
	w.WriteLink(&overlap.Link{SrcIDs: []string{"3"}})
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out := sb.String()
	checks := []string{
		`<?xml version="1.0" encoding="utf-8"?>`,
		`<cesAlign version="1.0">`,
		`fromDoc="src.xml"`,
		`toDoc="trg.xml"`,
		`cognates="0.8"`,
		`<link id="SL1" xtargets="1 2 ; 1" overlap="1.000" />`,
		`<link id="SL2" xtargets="3 ; " />`,
		`</linkGrp>`,
		`</cesAlign>`,
	}
	for _, c := range checks {
		if !strings.Contains(out, c) {
			t.Errorf("output missing %q:\n%s", c, out)
		}
	}
	if strings.Contains(out, `SL2" xtargets="3 ; " overlap=`) {
		t.Error("empty link should omit overlap attribute")
	}
}

func TestWriterEscapesAttributes(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb)
	w.StartGroup(`a"b.xml`, "t<r>g.xml", nil)
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "&#34;") && !strings.Contains(out, "&quot;") {
		t.Errorf("quote not escaped:\n%s", out)
	}
	if !strings.Contains(out, "&lt;r&gt;") {
		t.Errorf("angle brackets not escaped:\n%s", out)
	}
}

func TestWriterMultipleGroups(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb)
	w.StartGroup("a.xml", "b.xml", nil)
	w.StartGroup("c.xml", "d.xml", nil)
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := strings.Count(sb.String(), "</linkGrp>"); got != 2 {
		t.Errorf("linkGrp closes = %d, want 2", got)
	}
}
