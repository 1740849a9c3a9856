package lengthalign

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Fragment is one translation clause. SentEnd marks fragments that close an
// input line of the translation.
type Fragment struct {
	Text    string
	SentEnd bool
}

// Len returns the fragment length in runes.
func (f Fragment) Len() int {
	return utf8.RuneCountInString(f.Text)
}

// clausePrefixRe consumes the shortest prefix of the form
// non-punct punct whitespace.
var clausePrefixRe = regexp.MustCompile(`^(.*?[.,!?;:])\s+`)

// FragmentText splits translation text into clause fragments. Each input
// line is fragmented independently and its final fragment marked SentEnd.
// Fragments longer than hard are pre-split on whitespace after at least
// soft characters.
func FragmentText(text string, hard, soft int) []Fragment {
	var out []Fragment
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		frags := fragmentLine(line)
		var split []Fragment
		for _, f := range frags {
			split = append(split, presplit(f, hard, soft)...)
		}
		if len(split) > 0 {
			split[len(split)-1].SentEnd = true
		}
		out = append(out, split...)
	}
	return out
}

func fragmentLine(line string) []Fragment {
	var frags []Fragment
	for {
		m := clausePrefixRe.FindStringSubmatchIndex(line)
		if m == nil {
			break
		}
		frags = append(frags, Fragment{Text: line[m[2]:m[3]]})
		line = line[m[1]:]
	}
	if rest := strings.TrimSpace(line); rest != "" {
		frags = append(frags, Fragment{Text: rest})
	}
	return frags
}

// presplit breaks an overlong fragment on whitespace after at least soft
// characters. A fragment with no usable whitespace is kept whole.
func presplit(f Fragment, hard, soft int) []Fragment {
	if f.Len() <= hard {
		return []Fragment{f}
	}

	var out []Fragment
	text := f.Text
	for utf8.RuneCountInString(text) > hard {
		runes := []rune(text)
		cut := -1
		for i := soft; i < len(runes); i++ {
			if runes[i] == ' ' || runes[i] == '\t' {
				cut = i
				break
			}
		}
		if cut < 0 {
			break
		}
		out = append(out, Fragment{Text: strings.TrimSpace(string(runes[:cut]))})
		text = strings.TrimSpace(string(runes[cut+1:]))
	}
	if text != "" {
		out = append(out, Fragment{Text: text})
	}
	return out
}
