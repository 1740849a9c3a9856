package subtitle

import (
	"fmt"
	"io"

	"subalign/internal/timecode"
)

// Entry is one output SRT block.
type Entry struct {
	Index int
	Start float64
	End   float64
	Text  string
}

// WriteSRT renders entries as SRT: counter, timing line, text, blank line.
func WriteSRT(w io.Writer, entries []Entry) error {
	for i, e := range entries {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n",
			e.Index, timecode.FromSeconds(e.Start), timecode.FromSeconds(e.End), e.Text)
		if err != nil {
			return err
		}
	}
	return nil
}
