package subtitle

import (
	"log/slog"

	"subalign/internal/logging"
)

// timeTick is the nudge applied when raw timing produces an empty or
// inverted frame. Frames must satisfy start < end strictly.
const timeTick = 1e-8

// Interpolate derives Start and End for every sentence from the inline
// markers and character positions, then applies the linear transform
// start = scale*first + offset, end = scale*last + offset.
//
// Markers rarely sit exactly on sentence boundaries; the gap is filled by
// linear interpolation over character positions between the two markers.
func (d *Document) Interpolate(scale, offset float64, logger *slog.Logger) {
	if logger == nil {
		logger = logging.NewNop()
	}

	for i, s := range d.Sentences {
		// A lone marker at the sentence-end position marks where the
		// sentence stops, not where it starts.
		if s.HasFirst && !s.HasLast && s.FirstPos == s.EndPos {
			s.Last, s.LastPos, s.HasLast = s.First, s.FirstPos, true
			s.HasFirst = false
		}

		if !s.HasFirst {
			if i > 0 {
				s.First = d.Sentences[i-1].Last
			} else {
				s.First = 0
			}
			s.FirstPos = s.StartPos
			s.HasFirst = true
		}

		if !s.HasLast {
			found := false
			for j := i + 1; j < len(d.Sentences); j++ {
				next := d.Sentences[j]
				if next.HasFirst {
					s.Last, s.LastPos, s.HasLast = next.First, next.FirstPos, true
					found = true
					break
				}
				if next.HasLast {
					s.Last, s.LastPos, s.HasLast = next.Last, next.LastPos, true
					found = true
					break
				}
			}
			if !found {
				s.Last, s.LastPos, s.HasLast = s.First, s.EndPos, true
			}
		}

		span := s.Last - s.First
		denom := float64(s.LastPos - s.FirstPos)
		if denom > 0 {
			if s.FirstPos != s.StartPos {
				s.First -= span * float64(s.FirstPos-s.StartPos) / denom
			}
			if s.LastPos != s.EndPos {
				s.Last += span * float64(s.EndPos-s.LastPos) / denom
			}
		}

		s.Start = scale*s.First + offset
		s.End = scale*s.Last + offset
		if s.Start >= s.End {
			logger.Debug("zero-length frame nudged",
				logging.String("sentence", s.ID),
				logging.Float64("start", s.Start))
			s.Start = s.End - timeTick
		}
	}
}
