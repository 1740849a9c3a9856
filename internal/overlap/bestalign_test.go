package overlap

import (
	"context"
	"math"
	"testing"

	"subalign/internal/lexical"
	"subalign/internal/subtitle"
)

func testMatcher(t *testing.T) *lexical.Matcher {
	t.Helper()
	m, err := lexical.NewMatcher(lexical.Options{
		UseIdentical:   true,
		MinTokenLength: 2,
		MinMatchLength: 5,
	}, nil)
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	return m
}

func TestFindAnchorsDiagonal(t *testing.T) {
	frames := [][2]float64{{0, 2}, {2, 4}, {4, 6}, {6, 8}, {8, 10}}
	src := frameDoc(frames)
	trg := frameDoc(frames)

	prefix, suffix := FindAnchors(src, trg, testMatcher(t), 25, 10)
	if len(prefix) == 0 || len(suffix) == 0 {
		t.Fatalf("anchor pools empty: %d/%d", len(prefix), len(suffix))
	}
	if prefix[0].SrcIndex != 0 || prefix[0].TrgIndex != 0 {
		t.Errorf("best prefix anchor = (%d,%d), want (0,0)", prefix[0].SrcIndex, prefix[0].TrgIndex)
	}
	if suffix[0].SrcIndex != 4 || suffix[0].TrgIndex != 4 {
		t.Errorf("best suffix anchor = (%d,%d), want (4,4)", suffix[0].SrcIndex, suffix[0].TrgIndex)
	}
	for _, a := range prefix {
		if a.Score <= 0 || a.Score > 1 {
			t.Errorf("anchor score out of range: %f", a.Score)
		}
	}
}

func TestFindAnchorsCap(t *testing.T) {
	frames := [][2]float64{{0, 2}, {2, 4}, {4, 6}, {6, 8}, {8, 10}}
	prefix, _ := FindAnchors(frameDoc(frames), frameDoc(frames), testMatcher(t), 25, 2)
	if len(prefix) > 2 {
		t.Errorf("prefix pool = %d anchors, want at most 2", len(prefix))
	}
}

func TestBestAlignRecoversOffset(t *testing.T) {
	frames := [][2]float64{{0, 2}, {2, 4}, {4, 6}, {6, 8}, {8, 10}}
	src := frameDoc(frames)
	trg := frameDoc(frames)
	for _, s := range trg.Sentences {
		s.Start += 10
		s.End += 10
	}

	baseline := Align(src.Clone(), trg.Clone(), nil)
	if r := Score(baseline, false); r >= 2 {
		t.Fatalf("baseline score = %f, expected < 2 before resync", r)
	}

	best, err := BestAlign(context.Background(), src, trg, testMatcher(t), BestOptions{Window: 25, MaxMatches: 10}, nil)
	if err != nil {
		t.Fatalf("BestAlign: %v", err)
	}
	if !best.Resynced {
		t.Fatal("expected a resynchronized winner")
	}
	if best.R <= 3 {
		t.Errorf("best score = %f, want > 3", best.R)
	}
	if math.Abs(best.Transform.Slope-1) > 1e-6 || math.Abs(best.Transform.Offset-10) > 1e-6 {
		t.Errorf("transform = %+v, want slope 1 offset 10", best.Transform)
	}
	if best.Result.NonEmpty != 5 || best.Result.Empty != 0 {
		t.Errorf("resynced links empty=%d nonempty=%d, want 0/5", best.Result.Empty, best.Result.NonEmpty)
	}
}

func TestBestAlignKeepsBaselineWithoutAnchors(t *testing.T) {
	src := frameDoc([][2]float64{{0, 2}})
	trg := &subtitle.Document{Sentences: []*subtitle.Sentence{{
		ID: "1", Words: []string{"unrelated"}, Start: 0, End: 2,
	}}}

	best, err := BestAlign(context.Background(), src, trg, testMatcher(t), BestOptions{Window: 25, MaxMatches: 10}, nil)
	if err != nil {
		t.Fatalf("BestAlign: %v", err)
	}
	if best.Resynced {
		t.Error("no anchors should mean no resync")
	}
	if best.Result.NonEmpty != 1 {
		t.Errorf("baseline nonempty = %d, want 1", best.Result.NonEmpty)
	}
}

func TestNeedsFallback(t *testing.T) {
	if !NeedsFallback(1.5) {
		t.Error("score 1.5 should need fallback")
	}
	if NeedsFallback(2.0) {
		t.Error("score 2.0 should not need fallback")
	}
}

func TestRunFallbackMissingBinary(t *testing.T) {
	err := RunFallback(context.Background(), "definitely-not-a-real-aligner-binary", "a.xml", "b.xml", nil, nil)
	if err == nil {
		t.Fatal("expected error for unresolvable fallback")
	}
}
