// Package search finds commits whose summary matches a set of patterns.
package search

import (
	"regexp"
	"strings"

	"github.com/masmgr/histview/internal/git"
)

// Sequence is the read side of a history buffer.
type Sequence interface {
	Len() int
	Get(i int) (git.CommitID, error)
}

// MetadataSource looks up commit metadata.
type MetadataSource interface {
	Metadata(id git.CommitID) (git.CommitMetadata, error)
}

// Matcher matches commit summaries against regex patterns.
type Matcher struct {
	patterns []*regexp.Regexp
}

// NewMatcher creates a Matcher from a list of regex pattern strings.
// Patterns are compiled as case-insensitive. Returns an error if any pattern fails to compile.
func NewMatcher(patterns []string) (*Matcher, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "(?i)") {
			p = "(?i)" + p
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, re)
	}
	return &Matcher{patterns: compiled}, nil
}

// Empty reports whether the matcher has no patterns and so matches everything.
func (m *Matcher) Empty() bool {
	return m == nil || len(m.patterns) == 0
}

// Match returns true if the summary matches any pattern.
func (m *Matcher) Match(summary string) bool {
	if m.Empty() {
		return true
	}
	for _, re := range m.patterns {
		if re.MatchString(summary) {
			return true
		}
	}
	return false
}

// MatchCommit reports whether the commit's summary matches.
// Commits whose metadata cannot be read never match.
func (m *Matcher) MatchCommit(src MetadataSource, id git.CommitID) bool {
	meta, err := src.Metadata(id)
	if err != nil {
		return false
	}
	return m.Match(meta.Summary.Or(""))
}

// FindNext returns the first index after from whose commit matches.
func (m *Matcher) FindNext(seq Sequence, src MetadataSource, from int) (int, bool) {
	for i := from + 1; i < seq.Len(); i++ {
		id, err := seq.Get(i)
		if err != nil {
			return 0, false
		}
		if m.MatchCommit(src, id) {
			return i, true
		}
	}
	return 0, false
}

// FindPrev returns the last index before from whose commit matches.
func (m *Matcher) FindPrev(seq Sequence, src MetadataSource, from int) (int, bool) {
	if n := seq.Len(); from > n {
		from = n
	}
	for i := from - 1; i >= 0; i-- {
		id, err := seq.Get(i)
		if err != nil {
			return 0, false
		}
		if m.MatchCommit(src, id) {
			return i, true
		}
	}
	return 0, false
}
