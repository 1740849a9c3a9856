package main

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"subalign/internal/config"
	"subalign/internal/dictcache"
	"subalign/internal/lexical"
	"subalign/internal/logging"
	"subalign/internal/overlap"
	"subalign/internal/subtitle"
	"subalign/internal/xces"
)

func runAlign(cmd *cobra.Command, flags *alignFlags, srcPath, trgPath string) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	mergeAlignFlags(cmd, flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := cfg.Logging.Level
	if flags.verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Options{Level: level, Format: cfg.Logging.Format})
	if err != nil {
		return err
	}
	logger = logger.With(logging.String(logging.FieldCorrelationID, uuid.NewString()))

	ctx := cmd.Context()

	dict, err := loadDictionary(cmd, flags, cfg, logger)
	if err != nil {
		return err
	}
	if dict != nil {
		cfg.Anchor.UseDictionary = true
	}

	matcher, err := lexical.NewMatcher(lexical.Options{
		UseDictionary:    cfg.Anchor.UseDictionary,
		UseIdentical:     cfg.Anchor.UseIdentical,
		UseCognates:      cfg.Anchor.UseCognates,
		MinTokenLength:   cfg.Anchor.MinTokenLength,
		UpperCaseOnly:    cfg.Anchor.UpperCaseOnly,
		CharSetRegex:     cfg.Anchor.CharSetRegex,
		UseWordFreq:      cfg.Anchor.UseWordFreq,
		MinMatchLength:   cfg.Anchor.MinMatchLength,
		CognateThreshold: cfg.Anchor.CognateThreshold,
		CognateRange:     cfg.Anchor.CognateRange,
	}, dict)
	if err != nil {
		return err
	}

	parse := func() (*subtitle.Document, *subtitle.Document, error) {
		src, err := readDocument(srcPath, logger)
		if err != nil {
			return nil, nil, err
		}
		trg, err := readDocument(trgPath, logger)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Anchor.UseWordFreq {
			matcher.SetFrequencies(lexical.CountFrequencies(src), lexical.CountFrequencies(trg))
		}
		return src, trg, nil
	}

	src, trg, err := parse()
	if err != nil {
		return err
	}
	logger.Debug("documents parsed",
		logging.Int("source_sentences", len(src.Sentences)),
		logging.Int("target_sentences", len(trg.Sentences)))

	opts := overlap.BestOptions{
		Window:     cfg.Align.Window,
		MaxMatches: cfg.Align.MaxMatches,
		Proportion: cfg.Align.ProportionScoring,
	}

	var result *overlap.Result
	var ratio float64
	switch {
	case cfg.Align.BestAlign && cfg.Anchor.CognateRange > 0:
		best, err := overlap.Sweep(ctx, parse, matcher, cfg.Anchor.CognateRange, opts, logger)
		if err != nil {
			return err
		}
		result, ratio = best.Result, best.R
	case cfg.Align.BestAlign:
		best, err := overlap.BestAlign(ctx, src, trg, matcher, opts, logger)
		if err != nil {
			return err
		}
		result, ratio = best.Result, best.R
	default:
		result = overlap.Align(src, trg, logger)
		ratio = overlap.Score(result, cfg.Align.ProportionScoring)
	}

	if overlap.NeedsFallback(ratio) && cfg.Align.Fallback != "" {
		err := overlap.RunFallback(ctx, cfg.Align.Fallback, srcPath, trgPath, cmd.OutOrStdout(), logger)
		if err == nil {
			return nil
		}
		logger.Warn("fallback aligner unavailable, keeping incumbent alignment",
			logging.Error(err),
			logging.String(logging.FieldEventType, "fallback_failed"),
			logging.String(logging.FieldImpact, "low-ratio alignment emitted as-is"))
	}

	writer := xces.NewWriter(cmd.OutOrStdout())
	writer.StartGroup(srcPath, trgPath, map[string]string{
		"ratio": fmt.Sprintf("%.3f", ratio),
	})
	writer.WriteResult(result)
	if err := writer.Close(); err != nil {
		return err
	}

	if flags.verbose {
		printBuckets(cmd.ErrOrStderr(), result)
	}
	logger.Debug("alignment complete",
		logging.Int("links", len(result.Links)),
		logging.Float64("ratio", ratio))
	return nil
}

// mergeAlignFlags overlays explicitly set CLI flags onto the file config.
func mergeAlignFlags(cmd *cobra.Command, flags *alignFlags, cfg *config.Config) {
	set := cmd.Flags().Changed
	if set("cognate-threshold") {
		cfg.Anchor.UseCognates = true
		cfg.Anchor.CognateThreshold = flags.cognateThreshold
	}
	if set("cognate-range") {
		cfg.Anchor.UseCognates = true
		cfg.Anchor.CognateRange = flags.cognateRange
	}
	if set("min-match-length") {
		cfg.Anchor.MinMatchLength = flags.minMatchLength
	}
	if set("min-token-length") {
		cfg.Anchor.MinTokenLength = flags.minTokenLength
	}
	if set("window") {
		cfg.Align.Window = flags.window
	}
	if set("upper-case") {
		cfg.Anchor.UpperCaseOnly = flags.upperCaseOnly
	}
	if set("char-set") {
		cfg.Anchor.CharSetRegex = flags.charSet
	}
	if set("word-freq") {
		cfg.Anchor.UseWordFreq = flags.wordFreq
	}
	if set("best-align") {
		cfg.Align.BestAlign = flags.bestAlign
	}
	if set("candidates") {
		cfg.Align.MaxMatches = flags.candidates
	}
	if set("max-matches") {
		cfg.Align.MaxMatches = flags.maxMatches
	}
	if set("fallback") {
		cfg.Align.Fallback = flags.fallback
	}
	if set("proportion") {
		cfg.Align.ProportionScoring = flags.proportion
	}
	if flags.noDictCache {
		cfg.DictCache.Enabled = false
	}
}

// loadDictionary resolves and loads the bilingual dictionary: an explicit
// -d file wins, otherwise the share directory is searched by language pair.
// Cache failures degrade to direct parsing.
func loadDictionary(cmd *cobra.Command, flags *alignFlags, cfg *config.Config, logger *slog.Logger) (*lexical.Dictionary, error) {
	path := flags.dictionary
	reversed := false
	if path == "" {
		if flags.srcLang == "" || flags.trgLang == "" {
			return nil, nil
		}
		found, rev, err := lexical.FindDictionary(cfg.Paths.ShareDir, flags.srcLang, flags.trgLang)
		if err != nil {
			logger.Debug("no dictionary for language pair",
				logging.String("source", flags.srcLang),
				logging.String("target", flags.trgLang))
			return nil, nil
		}
		path, reversed = found, rev
	}

	dict := lexical.NewDictionary()
	if cfg.DictCache.Enabled {
		cache, err := dictcache.Open(cfg.DictCache.Dir, logger)
		if err == nil {
			defer cache.Close()
			if err := cache.Load(cmd.Context(), dict, path, reversed); err == nil {
				logger.Debug("dictionary loaded",
					logging.String("path", path),
					logging.Int("entries", dict.Len()))
				return dict, nil
			}
			logger.Warn("dictionary cache load failed, parsing directly",
				logging.Error(err),
				logging.String(logging.FieldEventType, "dictcache_load_failed"),
				logging.String(logging.FieldImpact, "startup slower, results identical"))
		} else {
			logger.Warn("dictionary cache unavailable",
				logging.Error(err),
				logging.String(logging.FieldEventType, "dictcache_open_failed"),
				logging.String(logging.FieldImpact, "startup slower, results identical"))
		}
		dict = lexical.NewDictionary()
	}

	if err := dict.Load(path, reversed); err != nil {
		return nil, err
	}
	logger.Debug("dictionary loaded",
		logging.String("path", path),
		logging.Int("entries", dict.Len()))
	return dict, nil
}

func readDocument(path string, logger *slog.Logger) (*subtitle.Document, error) {
	var doc *subtitle.Document
	var err error
	if strings.HasSuffix(strings.TrimSuffix(path, ".gz"), ".srt") {
		doc, err = subtitle.ReadSRT(path)
	} else {
		doc, err = subtitle.ReadXML(path)
	}
	if err != nil {
		return nil, err
	}
	doc.Interpolate(1, 0, logger)
	doc.SortFrames()
	return doc, nil
}

func printBuckets(w io.Writer, result *overlap.Result) {
	keys := make([]string, 0, len(result.Buckets))
	for k := range result.Buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][2]string, 0, len(keys)+2)
	for _, k := range keys {
		rows = append(rows, [2]string{k, fmt.Sprintf("%d", result.Buckets[k])})
	}
	rows = append(rows,
		[2]string{"empty", fmt.Sprintf("%d", result.Empty)},
		[2]string{"non-empty", fmt.Sprintf("%d", result.NonEmpty)},
	)

	fmt.Fprintln(w, renderBucketTable(rows))
}
