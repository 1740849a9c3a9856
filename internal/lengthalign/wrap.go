package lengthalign

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// WrapLine inserts a single newline into text when it exceeds hard. Cut
// points are tried in order of preference: sentence punctuation, clause
// punctuation, any whitespace; the first two require the right-hand side to
// land within the window spanned by half the text length and soft.
func WrapLine(text string, hard, soft int) string {
	length := utf8.RuneCountInString(text)
	if length <= hard {
		return text
	}

	half := length / 2
	minLen, maxLen := half, soft
	if minLen > maxLen {
		minLen, maxLen = maxLen, minLen
	}

	if out, ok := cutAt(text, `[.!?")\]]`, minLen, maxLen); ok {
		return out
	}
	if out, ok := cutAt(text, `[,;:'-]`, minLen, maxLen); ok {
		return out
	}

	anyRe := regexp.MustCompile(fmt.Sprintf(`^(.*)\s(\S*.{%d})$`, half))
	if m := anyRe.FindStringSubmatch(text); m != nil {
		return m[1] + "\n" + m[2]
	}
	return text
}

// cutAt cuts after the latest occurrence of the punctuation class followed
// by whitespace whose right side fits the length window.
func cutAt(text, class string, minLen, maxLen int) (string, bool) {
	re := regexp.MustCompile(fmt.Sprintf(`^(.*%s)\s+(\S*.{%d,%d})$`, class, minLen, maxLen))
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1] + "\n" + m[2], true
}
