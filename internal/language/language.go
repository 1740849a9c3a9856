package language

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Bibliographic ISO 639-2/B codes used by legacy dictionary files where they
// differ from the terminological code x/text reports.
var bibliographic = map[string]string{
	"fra": "fre",
	"deu": "ger",
	"zho": "chi",
	"nld": "dut",
	"ces": "cze",
	"ell": "gre",
	"isl": "ice",
	"mkd": "mac",
	"ron": "rum",
	"slk": "slo",
	"sqi": "alb",
	"hye": "arm",
	"eus": "baq",
	"mya": "bur",
	"kat": "geo",
	"msa": "may",
	"fas": "per",
	"bod": "tib",
	"cym": "wel",
}

// ToISO3 converts a language code to its ISO 639-3 alpha-3 form. Three-letter
// codes pass through unchanged; other input must parse as a BCP 47 tag, so
// language names such as "English" are rejected.
func ToISO3(code string) (string, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return "", fmt.Errorf("empty language code")
	}
	if len(code) == 3 && isAlpha(code) {
		return code, nil
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("unrecognized language %q: %w", code, err)
	}
	base, _ := tag.Base()
	iso3 := base.ISO3()
	if iso3 == "" {
		return "", fmt.Errorf("no alpha-3 code for language %q", code)
	}
	return iso3, nil
}

// Alternates returns every alpha-3 spelling a dictionary file may use for
// code, starting with the terminological form.
func Alternates(iso3 string) []string {
	alts := []string{iso3}
	if bib, ok := bibliographic[iso3]; ok {
		alts = append(alts, bib)
	}
	return alts
}

// PairKeys returns candidate dictionary file basenames for a language pair,
// forward direction only, covering bibliographic spellings.
func PairKeys(src3, trg3 string) []string {
	var keys []string
	for _, s := range Alternates(src3) {
		for _, t := range Alternates(trg3) {
			keys = append(keys, s+"-"+t)
		}
	}
	return keys
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
