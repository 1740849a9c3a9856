package subtitle

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"subalign/internal/timecode"
)

type xmlState int

const (
	stateOutside xmlState = iota
	stateInSentence
	stateInWord
)

// ReadXML parses the tokenized XML form: <s id="..."> elements containing
// <w>token</w> children interleaved with <time value="HH:MM:SS,mmm"/>
// markers. Unknown elements are traversed transparently and unknown
// attributes ignored.
func ReadXML(path string) (*Document, error) {
	text, err := readCleanFile(path)
	if err != nil {
		return nil, err
	}

	dec := xml.NewDecoder(strings.NewReader(text))
	doc := &Document{}

	state := stateOutside
	pos := 0
	var current *Sentence
	var word strings.Builder

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "s":
				current = &Sentence{
					ID:       strconv.Itoa(len(doc.Sentences) + 1),
					StartPos: pos,
				}
				for _, attr := range t.Attr {
					if attr.Name.Local == "id" {
						current.ID = attr.Value
					}
				}
				state = stateInSentence
			case "w":
				if state == stateInSentence {
					state = stateInWord
					word.Reset()
				}
			case "time":
				if current == nil {
					break
				}
				for _, attr := range t.Attr {
					if attr.Name.Local != "value" {
						continue
					}
					seconds, err := timecode.ToSeconds(attr.Value)
					if err != nil {
						return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
					}
					if !current.HasFirst {
						current.First, current.FirstPos, current.HasFirst = seconds, pos, true
					} else {
						current.Last, current.LastPos, current.HasLast = seconds, pos, true
					}
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "w":
				if state == stateInWord {
					token := strings.TrimSpace(word.String())
					if token != "" {
						current.Words = append(current.Words, token)
						pos += utf8.RuneCountInString(token)
					}
					state = stateInSentence
				}
			case "s":
				if current != nil {
					current.EndPos = pos
					doc.Sentences = append(doc.Sentences, current)
					current = nil
				}
				state = stateOutside
			}
		case xml.CharData:
			if state == stateInWord {
				word.Write(t)
			}
		}
	}

	return doc, nil
}
