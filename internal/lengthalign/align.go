package lengthalign

import (
	"fmt"
	"math"
	"strings"

	"subalign/internal/subtitle"
)

// Frame is one template time slot with its text length in characters.
type Frame struct {
	Start  float64
	End    float64
	Length int
}

// Move is one DP step: a template frame always consumes one source slot,
// the target side absorbs up to four fragments.
type Move struct {
	D1 int
	D2 int
}

// Config carries the projector knobs.
type Config struct {
	HardMaxLineLength  int
	SoftMaxLineLength  int
	LengthLimitPenalty float64
	NotEosPenalty      float64
}

// priors is the closed block-shape probability table, indexed by the number
// of target fragments a frame absorbs.
var priors = [5]float64{0.04, 0.24, 0.24, 0.24, 0.24}

const maxTargetMerge = 4

// AlignLengths aligns cumulative template lengths against cumulative
// fragment lengths and returns one move per template frame.
func AlignLengths(frames []Frame, frags []Fragment, cfg Config) ([]Move, error) {
	n := len(frames)
	m := len(frags)
	if n == 0 {
		if m == 0 {
			return nil, nil
		}
		return nil, fmt.Errorf("no template frames for %d fragments", m)
	}

	len1 := make([]int, n+1)
	for i, f := range frames {
		len1[i+1] = len1[i] + f.Length
	}
	len2 := make([]int, m+1)
	for j, f := range frags {
		len2[j+1] = len2[j] + f.Len()
	}

	width := m + 1
	cost := make([]float64, (n+1)*width)
	for i := range cost {
		cost[i] = math.Inf(1)
	}
	cost[0] = 0
	// Back-pointers store only the target-side move width per cell; the
	// source side always advances by one.
	back := make([]int8, (n+1)*width)

	for i := 1; i <= n; i++ {
		span1 := float64(len1[i] - len1[i-1])
		for j := 0; j <= m; j++ {
			bestCost := math.Inf(1)
			bestD2 := int8(-1)
			for d2 := 0; d2 <= maxTargetMerge && d2 <= j; d2++ {
				prev := cost[(i-1)*width+j-d2]
				if math.IsInf(prev, 1) {
					continue
				}
				span2 := len2[j] - len2[j-d2]

				eosPenalty := cfg.NotEosPenalty
				if sentEndAt(frags, j) {
					eosPenalty = 1
				}
				lengthPenalty := cfg.LengthLimitPenalty
				if span2 > cfg.HardMaxLineLength {
					lengthPenalty = 1
				}

				c := prev -
					math.Log(lengthPenalty*eosPenalty*priors[d2]) +
					matchCost(span1, float64(span2))
				if c < bestCost {
					bestCost = c
					bestD2 = int8(d2)
				}
			}
			cost[i*width+j] = bestCost
			back[i*width+j] = bestD2
		}
	}

	if math.IsInf(cost[n*width+m], 1) {
		return nil, fmt.Errorf("no alignment path for %d frames and %d fragments", n, m)
	}

	movesOut := make([]Move, n)
	j := m
	for i := n; i >= 1; i-- {
		d2 := int(back[i*width+j])
		movesOut[i-1] = Move{D1: 1, D2: d2}
		j -= d2
	}
	return movesOut, nil
}

func sentEndAt(frags []Fragment, j int) bool {
	return j > 0 && frags[j-1].SentEnd
}

// Project aligns the template against the fragments and renders one SRT
// entry per template frame, fragments joined by single spaces and wrapped.
func Project(frames []Frame, frags []Fragment, cfg Config) ([]subtitle.Entry, []Move, error) {
	aligned, err := AlignLengths(frames, frags, cfg)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]subtitle.Entry, 0, len(frames))
	j := 0
	for i, mv := range aligned {
		texts := make([]string, 0, mv.D2)
		for k := j; k < j+mv.D2; k++ {
			texts = append(texts, frags[k].Text)
		}
		j += mv.D2

		entries = append(entries, subtitle.Entry{
			Index: i + 1,
			Start: frames[i].Start,
			End:   frames[i].End,
			Text:  WrapLine(strings.Join(texts, " "), cfg.HardMaxLineLength, cfg.SoftMaxLineLength),
		})
	}
	return entries, aligned, nil
}
