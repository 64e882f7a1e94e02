package marker

import (
	"regexp"
	"skipmark/internal/refset"
	"skipmark/pkg/domain"
	"skipmark/pkg/serrors"
	"strings"
)

// DefaultToken is the marker used when none is configured.
const DefaultToken = "[skip]"

// Unicode-aware classes: RE2's \s and \W only know ASCII.
const (
	leadingSpace = `[\s\p{Z}\x{85}]*`
	nonWord      = `[^\p{L}\p{N}_]`
)

// Pattern decides which lines get the marker and renders marked lines.
type Pattern struct {
	token string
	// marked matches lines that already start with the token, ignoring case and
	// leading whitespace. The token must end there: "[skip]x" is not marked.
	marked *regexp.Regexp
}

// NewPattern compiles the matcher for token.
func NewPattern(token string) (*Pattern, error) {
	if strings.TrimSpace(token) == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "marker token must not be empty")
	}

	re, err := regexp.Compile(`(?i)^` + leadingSpace + regexp.QuoteMeta(token) + `(?:` + nonWord + `|$)`)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid marker token %q", token)
	}

	return &Pattern{token: token, marked: re}, nil
}

// Token returns the marker text.
func (p *Pattern) Token() string {
	return p.token
}

// IsMarked reports whether raw already carries the marker.
func (p *Pattern) IsMarked(raw string) bool {
	return p.marked.MatchString(raw)
}

// NeedsMarking reports whether line is unmarked and referenced by set.
func (p *Pattern) NeedsMarking(line domain.Line, set refset.Set) bool {
	if p.IsMarked(line.Raw) {
		return false
	}
	content := line.Content()

	return content != "" && set.Contains(content)
}

// MarkLine prefixes the marker to the untrimmed line, keeping its terminator.
func (p *Pattern) MarkLine(line domain.Line) string {
	return p.token + " " + line.Raw + line.Terminator
}
