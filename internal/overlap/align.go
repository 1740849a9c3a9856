package overlap

import (
	"fmt"
	"log/slog"
	"math"

	"subalign/internal/logging"
	"subalign/internal/subtitle"
)

// Link maps zero-or-more source sentences to zero-or-more target sentences.
// Empty SrcIDs or TrgIDs represent 0:1 / 1:0 links.
type Link struct {
	SrcIDs    []string
	TrgIDs    []string
	Common    float64
	NotCommon float64
	HasRatio  bool
	Ratio     float64
}

// Empty reports whether the link covers only one side.
func (l *Link) Empty() bool {
	return len(l.SrcIDs) == 0 || len(l.TrgIDs) == 0
}

// Result is one alignment pass: the links plus the bucket counts and totals
// the best-anchor search scores with.
type Result struct {
	Links    []*Link
	Buckets  map[string]int
	Empty    int
	NonEmpty int
}

// moves is the allowed-moves set: (0,0) is the plain 1:1 link, the rest
// extend one side into 1:k / k:1 block merges. A merge is only considered
// when the merged blocks actually overlap in time.
var moves = [5][2]int{{0, 0}, {0, 1}, {1, 0}, {0, 2}, {2, 0}}

// frameGuard is how far a degenerate frame start is pushed back.
const frameGuard = 0.01

// Align aligns two documents whose frames are set. Both documents are
// self-corrected in place: unsorted frames are re-sorted with a warning and
// zero-length source slots nudged open.
func Align(src, trg *subtitle.Document, logger *slog.Logger) *Result {
	if logger == nil {
		logger = logging.NewNop()
	}

	for _, doc := range []*subtitle.Document{src, trg} {
		if !doc.IsSorted() {
			logger.Warn("frames out of chronological order, re-sorting",
				logging.String(logging.FieldEventType, "frames_unsorted"))
			doc.SortFrames()
		}
	}

	res := &Result{Buckets: make(map[string]int)}
	S := src.Sentences
	T := trg.Sentences

	s, t := 0, 0
	for s < len(S) && t < len(T) {
		if S[s].Start >= S[s].End {
			logger.Warn("zero-length time slot, nudging start",
				logging.String("sentence", S[s].ID),
				logging.String(logging.FieldEventType, "zero_length_slot"))
			S[s].Start = S[s].End - frameGuard
		}

		common := overlapSpan(S[s].Start, S[s].End, T[t].Start, T[t].End)
		if common <= 0 {
			if S[s].End <= T[t].Start {
				res.add(&Link{SrcIDs: []string{S[s].ID}})
				s++
				continue
			}
			if T[t].End <= S[s].Start {
				res.add(&Link{TrgIDs: []string{T[t].ID}})
				t++
				continue
			}
		}

		bestNot := math.Inf(1)
		bestCommon := 0.0
		bestMove := [2]int{0, 0}
		found := false
		for _, mv := range moves {
			ds, dt := mv[0], mv[1]
			if s+ds >= len(S) || t+dt >= len(T) {
				continue
			}
			start1, end1 := S[s].Start, S[s+ds].End
			start2, end2 := T[t].Start, T[t+dt].End
			c := overlapSpan(start1, end1, start2, end2)
			if c <= 0 {
				continue
			}
			nc := math.Abs(start1-start2) + math.Abs(end1-end2)
			if nc < bestNot {
				bestNot, bestCommon, bestMove = nc, c, mv
				found = true
			}
		}
		if !found {
			// Neither pure-before nor overlapping: degenerate equal
			// boundaries. Emit the source sentence as an empty link.
			res.add(&Link{SrcIDs: []string{S[s].ID}})
			s++
			continue
		}

		ds, dt := bestMove[0], bestMove[1]
		link := &Link{
			Common:    bestCommon,
			NotCommon: bestNot,
			HasRatio:  true,
			Ratio:     bestCommon / (bestCommon + bestNot),
		}
		for i := s; i <= s+ds; i++ {
			link.SrcIDs = append(link.SrcIDs, S[i].ID)
		}
		for j := t; j <= t+dt; j++ {
			link.TrgIDs = append(link.TrgIDs, T[j].ID)
		}
		res.add(link)
		res.Buckets[fmt.Sprintf("%d:%d", ds+1, dt+1)]++
		s += ds + 1
		t += dt + 1
	}

	for ; s < len(S); s++ {
		res.add(&Link{SrcIDs: []string{S[s].ID}})
	}
	for ; t < len(T); t++ {
		res.add(&Link{TrgIDs: []string{T[t].ID}})
	}

	return res
}

func (r *Result) add(link *Link) {
	r.Links = append(r.Links, link)
	if link.Empty() {
		r.Empty++
	} else {
		r.NonEmpty++
	}
}

func overlapSpan(start1, end1, start2, end2 float64) float64 {
	return math.Min(end1, end2) - math.Max(start1, start2)
}

// Score computes the alignment quality ratio R. The default flavor rewards
// non-empty links against empty ones; the proportion flavor normalizes by
// the total link count.
func Score(r *Result, proportion bool) float64 {
	if proportion {
		return float64(r.NonEmpty+1) / float64(r.NonEmpty+r.Empty+1)
	}
	return float64(r.NonEmpty+1) / float64(r.Empty+1)
}
