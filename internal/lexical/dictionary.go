package lexical

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"subalign/internal/language"
)

// Dictionary maps source tokens to target tokens. Multiplicities are
// retained but lookup is presence-only.
type Dictionary struct {
	entries map[string]map[string]int
	loaded  map[string]bool
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{
		entries: make(map[string]map[string]int),
		loaded:  make(map[string]bool),
	}
}

// Add records one (src, trg) pair with the given multiplicity.
func (d *Dictionary) Add(src, trg string, n int) {
	if src == "" || trg == "" {
		return
	}
	if n < 1 {
		n = 1
	}
	m, ok := d.entries[src]
	if !ok {
		m = make(map[string]int)
		d.entries[src] = m
	}
	m[trg] += n
}

// Contains reports whether the pair (src, trg) is present.
func (d *Dictionary) Contains(src, trg string) bool {
	m, ok := d.entries[src]
	if !ok {
		return false
	}
	_, ok = m[trg]
	return ok
}

// Len returns the number of distinct (src, trg) pairs.
func (d *Dictionary) Len() int {
	n := 0
	for _, m := range d.entries {
		n += len(m)
	}
	return n
}

// ForEach visits every pair in deterministic order.
func (d *Dictionary) ForEach(fn func(src, trg string, n int)) {
	srcs := make([]string, 0, len(d.entries))
	for src := range d.entries {
		srcs = append(srcs, src)
	}
	sort.Strings(srcs)
	for _, src := range srcs {
		trgs := make([]string, 0, len(d.entries[src]))
		for trg := range d.entries[src] {
			trgs = append(trgs, trg)
		}
		sort.Strings(trgs)
		for _, trg := range trgs {
			fn(src, trg, d.entries[src][trg])
		}
	}
}

// Load reads a dictionary file into d. Lines are either two
// whitespace-separated tokens or six fields with source and target in
// fields 3 and 4. Gzip containers are handled. Loading the same file twice
// is a no-op; reversed swaps source and target on insert.
func (d *Dictionary) Load(path string, reversed bool) error {
	key := fmt.Sprintf("%s|%v", path, reversed)
	if d.loaded[key] {
		return nil
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open dictionary %s: %w", path, err)
	}
	defer file.Close()

	var reader io.Reader = file
	buffered := bufio.NewReader(file)
	if magic, err := buffered.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(buffered)
		if err != nil {
			return fmt.Errorf("gzip dictionary %s: %w", path, err)
		}
		defer gz.Close()
		reader = gz
	} else {
		reader = buffered
	}

	if err := d.ParseFrom(reader, reversed); err != nil {
		return fmt.Errorf("parse dictionary %s: %w", path, err)
	}
	d.loaded[key] = true
	return nil
}

// ParseFrom reads dictionary lines from r.
func (d *Dictionary) ParseFrom(r io.Reader, reversed bool) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		var src, trg string
		switch {
		case len(fields) >= 6:
			src, trg = fields[2], fields[3]
		case len(fields) >= 2:
			src, trg = fields[0], fields[1]
		default:
			continue
		}
		if reversed {
			src, trg = trg, src
		}
		d.Add(src, trg, 1)
	}
	return scanner.Err()
}

// FindDictionary resolves the dictionary file for a language pair under
// shareDir. Files are keyed {src3}-{trg3} with ISO 639-3 codes; the reverse
// direction is tried when the forward file is absent, in which case
// reversed is true and entries must be swapped on load.
func FindDictionary(shareDir, srcLang, trgLang string) (path string, reversed bool, err error) {
	src3, err := language.ToISO3(srcLang)
	if err != nil {
		return "", false, err
	}
	trg3, err := language.ToISO3(trgLang)
	if err != nil {
		return "", false, err
	}

	if p, ok := findPairFile(shareDir, src3, trg3); ok {
		return p, false, nil
	}
	if p, ok := findPairFile(shareDir, trg3, src3); ok {
		return p, true, nil
	}
	return "", false, fmt.Errorf("no dictionary for %s-%s under %s: %w", src3, trg3, shareDir, fs.ErrNotExist)
}

func findPairFile(shareDir, a3, b3 string) (string, bool) {
	for _, key := range language.PairKeys(a3, b3) {
		for _, name := range []string{key, key + ".dic", key + ".gz", key + ".dic.gz"} {
			p := filepath.Join(shareDir, name)
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				return p, true
			}
		}
	}
	return "", false
}
