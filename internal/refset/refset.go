// Package refset loads reference lists: plain text files holding one
// exact-match key per line, with blank lines and '#' comments ignored.
package refset

import (
	"bytes"
	"context"
	"io"
	"skipmark/pkg/domain"
	"skipmark/pkg/serrors"
	"skipmark/pkg/storage"
	"sort"
	"strings"
)

// CommentPrefix starts a reference line that is ignored.
const CommentPrefix = "#"

// Set is a deduplicated collection of trimmed reference keys.
type Set map[string]struct{}

// New builds a Set holding the given keys as-is.
func New(keys ...string) Set {
	s := make(Set, len(keys))
	for _, k := range keys {
		s.Add(k)
	}

	return s
}

// Add inserts key into the set.
func (s Set) Add(key string) {
	s[key] = struct{}{}
}

// Contains reports whether key is a member of the set.
func (s Set) Contains(key string) bool {
	_, ok := s[key]

	return ok
}

// Len returns the number of distinct keys.
func (s Set) Len() int {
	return len(s)
}

// Keys returns the keys in sorted order.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Key normalises one reference line. It returns false for lines that carry no
// key: blanks and comments.
func Key(line string) (string, bool) {
	key := strings.TrimSpace(line)
	if key == "" || strings.HasPrefix(key, CommentPrefix) {
		return "", false
	}

	return key, true
}

// Parse reads a reference list from r. Lines end at "\n", "\r\n" or a lone "\r".
func Parse(r io.Reader) (Set, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	s := New()
	for _, line := range domain.SplitLines(string(data)) {
		if key, ok := Key(line.Raw); ok {
			s.Add(key)
		}
	}

	return s, nil
}

// Load reads and parses the reference list at path. Any failure to read or
// decode it is a file access error.
func Load(ctx context.Context, reader storage.Reader, path string) (Set, error) {
	data, err := reader.ReadFile(ctx, path)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrFileAccess, err, "could not read reference file")
	}

	s, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrFileAccess, err, "could not parse reference file")
	}

	return s, nil
}
