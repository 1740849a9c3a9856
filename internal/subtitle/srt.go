package subtitle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"subalign/internal/timecode"
)

var counterLineRe = regexp.MustCompile(`^\d+$`)

// ReadSRT parses an SRT file into a document. Blocks are blank-line
// delimited; the counter line is optional, so subtitle tracks that omit
// numbering still parse. Each block becomes one sentence whose first and
// last markers come from the timing line.
func ReadSRT(path string) (*Document, error) {
	text, err := readCleanFile(path)
	if err != nil {
		return nil, err
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	doc := &Document{}
	pos := 0
	for _, block := range strings.Split(strings.TrimSpace(text), "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")

		id := strconv.Itoa(len(doc.Sentences) + 1)
		idx := 0
		if counterLineRe.MatchString(strings.TrimSpace(lines[0])) && len(lines) > 1 {
			id = strings.TrimSpace(lines[0])
			idx = 1
		}
		if idx >= len(lines) || !strings.Contains(lines[idx], "-->") {
			return nil, fmt.Errorf("%w: %s: block %s has no timing line", ErrParse, path, id)
		}

		parts := strings.SplitN(lines[idx], "-->", 2)
		start, err := timecode.ToSeconds(parts[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
		}
		end, err := timecode.ToSeconds(parts[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
		}

		s := &Sentence{ID: id, StartPos: pos}
		for _, line := range lines[idx+1:] {
			for _, word := range strings.Fields(line) {
				s.Words = append(s.Words, word)
				pos += utf8.RuneCountInString(word)
			}
		}
		s.EndPos = pos

		s.First, s.FirstPos, s.HasFirst = start, s.StartPos, true
		s.Last, s.LastPos, s.HasLast = end, s.EndPos, true

		doc.Sentences = append(doc.Sentences, s)
	}

	return doc, nil
}
