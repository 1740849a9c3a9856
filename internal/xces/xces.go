// Package xces emits sentence alignment results as XCES align XML.
package xces

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"subalign/internal/overlap"
)

const header = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE cesAlign PUBLIC "-//CES//DTD XML cesAlign//EN" "">
`

// Writer renders one cesAlign document with a linkGrp per file pair.
type Writer struct {
	w       io.Writer
	started bool
	inGroup bool
	index   int
	err     error
}

// NewWriter wraps w. Nothing is written until the first link group opens.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// StartGroup opens a linkGrp for the given document pair. Extra metadata
// attributes are emitted in sorted key order for reproducible output.
func (x *Writer) StartGroup(fromDoc, toDoc string, meta map[string]string) {
	if x.err != nil {
		return
	}
	if !x.started {
		x.printf("%s<cesAlign version=\"1.0\">\n", header)
		x.started = true
	}
	if x.inGroup {
		x.printf(" </linkGrp>\n")
	}
	x.printf(" <linkGrp targType=\"s\" fromDoc=\"%s\" toDoc=\"%s\"", escape(fromDoc), escape(toDoc))
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		x.printf(" %s=\"%s\"", k, escape(meta[k]))
	}
	x.printf(">\n")
	x.inGroup = true
	x.index = 0
}

// WriteLink emits one alignment link. The overlap attribute is omitted for
// empty links, which carry no ratio.
func (x *Writer) WriteLink(link *overlap.Link) {
	if x.err != nil || !x.inGroup {
		return
	}
	x.index++
	xtargets := strings.Join(link.SrcIDs, " ") + " ; " + strings.Join(link.TrgIDs, " ")
	if link.HasRatio {
		x.printf("  <link id=\"SL%d\" xtargets=\"%s\" overlap=\"%.3f\" />\n", x.index, escape(xtargets), link.Ratio)
	} else {
		x.printf("  <link id=\"SL%d\" xtargets=\"%s\" />\n", x.index, escape(xtargets))
	}
}

// WriteResult emits every link of an alignment result.
func (x *Writer) WriteResult(res *overlap.Result) {
	for _, link := range res.Links {
		x.WriteLink(link)
	}
}

// Close terminates the document. It does not guard against later calls:
// WriteLink after Close is ignored, and StartGroup after Close writes a new
// group after the closing tag.
func (x *Writer) Close() error {
	if x.err != nil {
		return x.err
	}
	if x.inGroup {
		x.printf(" </linkGrp>\n")
		x.inGroup = false
	}
	if x.started {
		x.printf("</cesAlign>\n")
	}
	return x.err
}

func (x *Writer) printf(format string, args ...any) {
	if x.err != nil {
		return
	}
	_, err := fmt.Fprintf(x.w, format, args...)
	if err != nil {
		x.err = err
	}
}

func escape(s string) string {
	var sb strings.Builder
	if err := xml.EscapeText(&sb, []byte(s)); err != nil {
		return s
	}
	return sb.String()
}
