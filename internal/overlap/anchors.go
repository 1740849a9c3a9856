package overlap

import (
	"sort"

	"subalign/internal/lexical"
	"subalign/internal/subtitle"
)

// Anchor is a sentence pair whose token lists share a lexical match, scored
// by its distance from the nearest document edge.
type Anchor struct {
	SrcIndex int
	TrgIndex int
	Score    float64
}

// FindAnchors scans the top-window sentences of both documents for prefix
// anchors and the bottom-window for suffix anchors. Each pool is sorted by
// descending score with ties broken by ascending sentence index, then capped
// at maxMatches (0 means unbounded).
func FindAnchors(src, trg *subtitle.Document, m *lexical.Matcher, window, maxMatches int) (prefix, suffix []Anchor) {
	S := src.Sentences
	T := trg.Sentences

	limS := min(window, len(S))
	limT := min(window, len(T))
	for i := 0; i < limS; i++ {
		for j := 0; j < limT; j++ {
			if m.Match(S[i].Words, T[j].Words) > 0 {
				prefix = append(prefix, Anchor{SrcIndex: i, TrgIndex: j, Score: edgeScore(i, j)})
			}
		}
	}

	for i := len(S) - limS; i < len(S); i++ {
		for j := len(T) - limT; j < len(T); j++ {
			if m.Match(S[i].Words, T[j].Words) > 0 {
				suffix = append(suffix, Anchor{
					SrcIndex: i,
					TrgIndex: j,
					Score:    edgeScore(len(S)-1-i, len(T)-1-j),
				})
			}
		}
	}

	prefix = capAnchors(prefix, maxMatches)
	suffix = capAnchors(suffix, maxMatches)
	return prefix, suffix
}

func edgeScore(di, dj int) float64 {
	d := di
	if dj > d {
		d = dj
	}
	return 1 / float64(1+d)
}

func capAnchors(anchors []Anchor, maxMatches int) []Anchor {
	sort.SliceStable(anchors, func(i, j int) bool {
		if anchors[i].Score != anchors[j].Score {
			return anchors[i].Score > anchors[j].Score
		}
		if anchors[i].SrcIndex != anchors[j].SrcIndex {
			return anchors[i].SrcIndex < anchors[j].SrcIndex
		}
		return anchors[i].TrgIndex < anchors[j].TrgIndex
	})
	if maxMatches > 0 && len(anchors) > maxMatches {
		anchors = anchors[:maxMatches]
	}
	return anchors
}
