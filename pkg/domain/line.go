package domain

import "strings"

// Line terminators recognised when splitting a file. A lone carriage return
// ends a line just like a newline does; "\r\n" is a single terminator.
const (
	Newline        = "\n"
	CarriageReturn = "\r"
	CRLF           = "\r\n"
)

// Line is a single line as seen during one pass over a file.
type Line struct {
	// Raw is the line exactly as read, without its terminator.
	Raw string
	// Terminator is the sequence that ended the line ("\n", "\r\n" or "\r"),
	// or empty for a final line that has none.
	Terminator string
}

// NewLine builds a Line from text that may end with a terminator.
func NewLine(text string) Line {
	for _, term := range []string{CRLF, Newline, CarriageReturn} {
		if raw, ok := strings.CutSuffix(text, term); ok {
			return Line{Raw: raw, Terminator: term}
		}
	}

	return Line{Raw: text}
}

// SplitLines cuts text after every terminator, keeping each one verbatim so
// that joining the lines' String values reproduces text exactly.
func SplitLines(text string) []Line {
	var lines []Line
	for text != "" {
		i := strings.IndexAny(text, CRLF)
		if i < 0 {
			lines = append(lines, Line{Raw: text})

			break
		}
		end := i + 1
		if text[i] == '\r' && end < len(text) && text[end] == '\n' {
			end++
		}
		lines = append(lines, Line{Raw: text[:i], Terminator: text[i:end]})
		text = text[end:]
	}

	return lines
}

// Content returns the raw text with leading and trailing whitespace removed.
// It is what reference lookups compare against.
func (l Line) Content() string {
	return strings.TrimSpace(l.Raw)
}

// String re-emits the line byte for byte, terminator included.
func (l Line) String() string {
	return l.Raw + l.Terminator
}
