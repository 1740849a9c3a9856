package lexical

import "subalign/internal/subtitle"

// Frequencies is a per-document token count table.
type Frequencies map[string]int

// CountFrequencies tallies token occurrences across a document.
func CountFrequencies(doc *subtitle.Document) Frequencies {
	freq := make(Frequencies)
	for _, s := range doc.Sentences {
		for _, w := range s.Words {
			freq[w]++
		}
	}
	return freq
}
