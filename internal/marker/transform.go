package marker

import (
	"bytes"
	"skipmark/internal/refset"
	"skipmark/pkg/domain"
)

// SplitLines cuts src into lines on "\r\n", "\n" and lone "\r". Every line
// but possibly the last keeps its terminator; an empty src yields no lines.
func SplitLines(src []byte) []domain.Line {
	return domain.SplitLines(string(src))
}

// Transform runs one marking pass over src and returns the complete output
// together with per-line counts. Nothing is written here.
func (p *Pattern) Transform(src []byte, set refset.Set) ([]byte, domain.Report) {
	var (
		out    bytes.Buffer
		report domain.Report
	)
	out.Grow(len(src))

	for _, line := range SplitLines(src) {
		report.Lines++

		switch {
		case p.IsMarked(line.Raw):
			report.AlreadyMarked++
			out.WriteString(line.String())
		case p.NeedsMarking(line, set):
			report.Marked++
			out.WriteString(p.MarkLine(line))
		default:
			report.Passed++
			out.WriteString(line.String())
		}
	}

	return out.Bytes(), report
}
