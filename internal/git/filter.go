package git

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// PathFilter selects file paths by doublestar include and exclude globs.
// Exclude wins over include; an empty include list accepts everything.
type PathFilter struct {
	include []string
	exclude []string
}

// NewPathFilter validates the patterns and builds a filter.
func NewPathFilter(include, exclude []string) (*PathFilter, error) {
	for _, p := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern %q", p)
		}
	}
	return &PathFilter{include: include, exclude: exclude}, nil
}

// IsEmpty reports whether the filter accepts every path.
func (f *PathFilter) IsEmpty() bool {
	return f == nil || (len(f.include) == 0 && len(f.exclude) == 0)
}

// Match reports whether path passes the filter.
func (f *PathFilter) Match(path string) (bool, error) {
	if f.IsEmpty() {
		return true, nil
	}
	path = normalizePath(path)

	for _, pattern := range f.exclude {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("match exclude pattern %q: %w", pattern, err)
		}
		if matched {
			return false, nil
		}
	}

	if len(f.include) == 0 {
		return true, nil
	}

	for _, pattern := range f.include {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("match include pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}

	return false, nil
}
