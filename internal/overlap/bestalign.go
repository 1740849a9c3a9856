package overlap

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"subalign/internal/lexical"
	"subalign/internal/logging"
	"subalign/internal/subtitle"
	"subalign/internal/timesync"
)

// candidateConcurrency bounds the resynchronization fan-out. Candidates are
// independent; only the DP inside each is sequential.
const candidateConcurrency = 8

// BestOptions configures the best-anchor search.
type BestOptions struct {
	Window     int
	MaxMatches int
	Proportion bool
}

// BestResult is the winning alignment configuration.
type BestResult struct {
	Result    *Result
	R         float64
	Transform timesync.Transform
	Resynced  bool
}

// BestAlign runs the aligner once unmodified, then tries every prefix/suffix
// anchor pair as a resynchronization candidate and keeps the configuration
// with the best score. Candidates whose fitted slope is non-positive are
// silently skipped.
func BestAlign(ctx context.Context, src, trg *subtitle.Document, m *lexical.Matcher, opts BestOptions, logger *slog.Logger) (*BestResult, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	base := Align(src.Clone(), trg.Clone(), logger)
	best := &BestResult{
		Result:    base,
		R:         Score(base, opts.Proportion),
		Transform: timesync.Identity(),
	}
	logger.Debug("baseline alignment",
		logging.Float64("ratio", best.R),
		logging.Int("links", len(base.Links)))

	prefix, suffix := FindAnchors(src, trg, m, opts.Window, opts.MaxMatches)
	logger.Debug("anchor pools",
		logging.Int("prefix", len(prefix)),
		logging.Int("suffix", len(suffix)))
	if len(prefix) == 0 || len(suffix) == 0 {
		return best, ctx.Err()
	}

	type pair struct{ p, q Anchor }
	var pairs []pair
	for _, p := range prefix {
		for _, q := range suffix {
			pairs = append(pairs, pair{p, q})
		}
	}

	type candidate struct {
		ok        bool
		r         float64
		result    *Result
		transform timesync.Transform
	}
	candidates := make([]candidate, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(candidateConcurrency)
	for idx, pr := range pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tr := timesync.FitPair(
				timesync.Point{X: src.Sentences[pr.p.SrcIndex].Start, Y: trg.Sentences[pr.p.TrgIndex].Start},
				timesync.Point{X: src.Sentences[pr.q.SrcIndex].Start, Y: trg.Sentences[pr.q.TrgIndex].Start},
			)
			if tr.Slope <= 0 {
				return nil
			}
			shifted := src.Clone()
			for _, s := range shifted.Sentences {
				s.Start = tr.Apply(s.Start)
				s.End = tr.Apply(s.End)
			}
			res := Align(shifted, trg.Clone(), logging.NewNop())
			candidates[idx] = candidate{
				ok:        true,
				r:         Score(res, opts.Proportion),
				result:    res,
				transform: tr,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return best, err
	}

	// Sequential scan keeps the winner deterministic under ties.
	for _, c := range candidates {
		if c.ok && c.r > best.R {
			best = &BestResult{Result: c.result, R: c.r, Transform: c.transform, Resynced: true}
		}
	}

	if best.Resynced {
		logger.Debug("resynchronized",
			logging.Float64("slope", best.Transform.Slope),
			logging.Float64("offset", best.Transform.Offset),
			logging.Float64("ratio", best.R))
	}
	return best, nil
}

// Sweep runs parse + best-anchor repeatedly, lowering the cognate threshold
// from 1.0 down to floor in steps of 0.05, and keeps the best alignment.
func Sweep(ctx context.Context, parse func() (*subtitle.Document, *subtitle.Document, error), m *lexical.Matcher, floor float64, opts BestOptions, logger *slog.Logger) (*BestResult, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	var best *BestResult
	for threshold := 1.0; threshold >= floor-1e-9; threshold -= 0.05 {
		if err := ctx.Err(); err != nil {
			return best, err
		}
		m.SetCognateThreshold(threshold)

		src, trg, err := parse()
		if err != nil {
			return best, err
		}
		result, err := BestAlign(ctx, src, trg, m, opts, logger)
		if err != nil {
			return best, err
		}
		logger.Debug("cognate sweep step",
			logging.Float64("threshold", threshold),
			logging.Float64("ratio", result.R))
		if best == nil || result.R > best.R {
			best = result
		}
	}
	return best, nil
}
