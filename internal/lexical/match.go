package lexical

import (
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"
)

// Options is the closed filter configuration for anchor matching.
type Options struct {
	UseDictionary    bool
	UseIdentical     bool
	UseCognates      bool
	MinTokenLength   int
	UpperCaseOnly    bool
	CharSetRegex     string
	UseWordFreq      bool
	MinMatchLength   int
	CognateThreshold float64
	CognateRange     float64
}

// Matcher scores token-list pairs for anchor candidacy.
type Matcher struct {
	opts    Options
	dict    *Dictionary
	charSet *regexp.Regexp
	srcFreq Frequencies
	trgFreq Frequencies
}

// NewMatcher builds a matcher from options. dict may be nil when the
// dictionary strategy is disabled.
func NewMatcher(opts Options, dict *Dictionary) (*Matcher, error) {
	m := &Matcher{opts: opts, dict: dict}
	if opts.CharSetRegex != "" {
		re, err := regexp.Compile(opts.CharSetRegex)
		if err != nil {
			return nil, fmt.Errorf("char set regex: %w", err)
		}
		m.charSet = re
	}
	if opts.UseDictionary && dict == nil {
		return nil, fmt.Errorf("dictionary matching enabled without a dictionary")
	}
	return m, nil
}

// SetFrequencies installs per-document word frequency tables used to
// down-weight identical runs of common tokens.
func (m *Matcher) SetFrequencies(src, trg Frequencies) {
	m.srcFreq = src
	m.trgFreq = trg
}

// CognateThreshold returns the active threshold.
func (m *Matcher) CognateThreshold() float64 {
	return m.opts.CognateThreshold
}

// SetCognateThreshold adjusts the threshold; the cognate-range sweep lowers
// it step by step between alignment passes.
func (m *Matcher) SetCognateThreshold(v float64) {
	m.opts.CognateThreshold = v
}

// Match returns the first positive score across the enabled strategies, or
// zero when the token lists share nothing.
func (m *Matcher) Match(src, trg []string) float64 {
	if len(src) == 0 || len(trg) == 0 {
		return 0
	}
	if m.opts.UseDictionary {
		if score := m.matchDictionary(src, trg); score > 0 {
			return score
		}
	}
	if m.opts.UseIdentical {
		if score := m.matchIdentical(src, trg); score > 0 {
			return score
		}
	}
	if m.opts.UseCognates {
		if score := m.matchCognates(src, trg); score > 0 {
			return score
		}
	}
	return 0
}

func (m *Matcher) matchDictionary(src, trg []string) float64 {
	for _, s := range src {
		for _, t := range trg {
			if m.dict.Contains(s, t) {
				return 1
			}
		}
	}
	return 0
}

// matchIdentical finds the longest run of equal tokens present on both
// sides. Only the seed token is subject to the filters; the greedy
// extension through equal successors is unconditional.
func (m *Matcher) matchIdentical(src, trg []string) float64 {
	trgIndex := make(map[string][]int, len(trg))
	for j, t := range trg {
		trgIndex[t] = append(trgIndex[t], j)
	}

	bestLen := 0
	var bestSrc, bestTrg []string
	for i, s := range src {
		if !m.tokenOK(s) {
			continue
		}
		for _, j := range trgIndex[s] {
			k := 0
			runLen := 0
			for i+k < len(src) && j+k < len(trg) && src[i+k] == trg[j+k] {
				runLen += utf8.RuneCountInString(src[i+k])
				k++
			}
			if runLen > bestLen {
				bestLen = runLen
				bestSrc = src[i : i+k]
				bestTrg = trg[j : j+k]
			}
		}
	}

	if bestLen <= m.opts.MinMatchLength {
		return 0
	}
	if m.opts.UseWordFreq && m.srcFreq != nil && m.trgFreq != nil {
		denom := maxFreq(m.srcFreq, bestSrc) + maxFreq(m.trgFreq, bestTrg)
		if denom > 0 {
			return float64(bestLen) / float64(denom)
		}
	}
	return float64(bestLen)
}

func (m *Matcher) matchCognates(src, trg []string) float64 {
	best := 0.0
	for _, s := range src {
		if !m.tokenOK(s) {
			continue
		}
		ls := utf8.RuneCountInString(s)
		for _, t := range trg {
			if !m.tokenOK(t) {
				continue
			}
			lt := utf8.RuneCountInString(t)
			longer := ls
			if lt > longer {
				longer = lt
			}
			if longer == 0 {
				continue
			}
			ratio := float64(LCS(s, t)) / float64(longer)
			if ratio >= m.opts.CognateThreshold && ratio > best {
				best = ratio
			}
		}
	}
	return best
}

func (m *Matcher) tokenOK(token string) bool {
	if utf8.RuneCountInString(token) < m.opts.MinTokenLength {
		return false
	}
	if m.opts.UpperCaseOnly {
		r, _ := utf8.DecodeRuneInString(token)
		if !unicode.IsUpper(r) {
			return false
		}
	}
	if m.charSet != nil && !m.charSet.MatchString(token) {
		return false
	}
	return true
}

func maxFreq(freq Frequencies, tokens []string) int {
	max := 0
	for _, t := range tokens {
		if n := freq[t]; n > max {
			max = n
		}
	}
	return max
}
