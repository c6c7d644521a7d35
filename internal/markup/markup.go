// Package markup scans the lightweight bold convention used in event
// descriptions: paired ** delimiters mark emphasis spans, processed
// left-to-right and non-nested. An unpaired delimiter is literal text.
package markup

import "strings"

const delimiter = "**"

// Segment is a run of text with a single emphasis style.
type Segment struct {
	Text string
	Bold bool
}

// Parse splits text into plain and bold segments. The delimiter
// characters themselves never appear in the output unless unpaired.
func Parse(text string) []Segment {
	var segments []Segment
	for len(text) > 0 {
		open := strings.Index(text, delimiter)
		if open == -1 {
			segments = append(segments, Segment{Text: text})
			break
		}

		close := strings.Index(text[open+len(delimiter):], delimiter)
		if close == -1 {
			// Unpaired delimiter: the rest is literal.
			segments = append(segments, Segment{Text: text})
			break
		}

		if open > 0 {
			segments = append(segments, Segment{Text: text[:open]})
		}

		boldStart := open + len(delimiter)
		segments = append(segments, Segment{Text: text[boldStart : boldStart+close], Bold: true})
		text = text[boldStart+close+len(delimiter):]
	}
	return segments
}

// Strip returns the text with all paired delimiters removed and the
// emphasis discarded. Useful for plain-text widths and logging.
func Strip(text string) string {
	var b strings.Builder
	for _, seg := range Parse(text) {
		b.WriteString(seg.Text)
	}
	return b.String()
}
