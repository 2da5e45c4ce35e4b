package git

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing/filemode"
)

// CommitID is the hex object name of a commit.
type CommitID string

// String returns the full object name.
func (id CommitID) String() string {
	return string(id)
}

// Short returns the abbreviated object name used in listings.
func (id CommitID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// ContentID is the hex object name of a blob.
type ContentID string

// String returns the full object name.
func (id ContentID) String() string {
	return string(id)
}

// Field is an optional text value recorded on a commit.
// The zero value is absent.
type Field struct {
	value   string
	present bool
}

// Present returns a Field holding s. An empty s is treated as absent.
func Present(s string) Field {
	if s == "" {
		return Field{}
	}
	return Field{value: s, present: true}
}

// Absent returns a Field with no value.
func Absent() Field {
	return Field{}
}

// Get returns the value and whether it is present.
func (f Field) Get() (string, bool) {
	return f.value, f.present
}

// IsAbsent reports whether no value was recorded.
func (f Field) IsAbsent() bool {
	return !f.present
}

// Or returns the value, or fallback when absent.
func (f Field) Or(fallback string) string {
	if !f.present {
		return fallback
	}
	return f.value
}

// MarshalJSON encodes an absent Field as null.
func (f Field) MarshalJSON() ([]byte, error) {
	if !f.present {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

// CommitMetadata describes a single commit.
type CommitMetadata struct {
	ID          CommitID
	When        time.Time
	AuthorName  Field
	AuthorEmail Field
	Summary     Field
	Parents     []CommitID
}

// IsMerge reports whether the commit has more than one parent.
func (m CommitMetadata) IsMerge() bool {
	return len(m.Parents) > 1
}

// FileEntry is one tracked file in a commit's tree.
type FileEntry struct {
	Path      string
	ContentID ContentID
	Mode      filemode.FileMode
	Size      int64
}

// FileSnapshot is the set of tracked files of one commit, sorted by path.
type FileSnapshot struct {
	Commit  CommitID
	Entries []FileEntry
}

// Len returns the number of files.
func (s FileSnapshot) Len() int {
	return len(s.Entries)
}

// Paths returns the file paths in order.
func (s FileSnapshot) Paths() []string {
	paths := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		paths[i] = e.Path
	}
	return paths
}

// Lookup finds the entry for path.
func (s FileSnapshot) Lookup(path string) (FileEntry, bool) {
	path = normalizePath(path)
	i := sort.Search(len(s.Entries), func(i int) bool {
		return s.Entries[i].Path >= path
	})
	if i < len(s.Entries) && s.Entries[i].Path == path {
		return s.Entries[i], true
	}
	return FileEntry{}, false
}

// Filter returns a snapshot holding only entries accepted by f.
func (s FileSnapshot) Filter(f *PathFilter) (FileSnapshot, error) {
	if f == nil || f.IsEmpty() {
		return s, nil
	}
	out := FileSnapshot{Commit: s.Commit, Entries: make([]FileEntry, 0, len(s.Entries))}
	for _, e := range s.Entries {
		ok, err := f.Match(e.Path)
		if err != nil {
			return FileSnapshot{}, err
		}
		if ok {
			out.Entries = append(out.Entries, e)
		}
	}
	return out, nil
}

// Content is the resolved, displayable form of a blob.
type Content struct {
	ID        ContentID
	Text      string
	Size      int64
	Lines     int
	Binary    bool
	Lossy     bool // decoded through the fallback charset
	Truncated bool
}

// Backend selects how ancestors are walked.
type Backend string

const (
	BackendGoGit  Backend = "go-git"
	BackendGitCLI Backend = "git-cli"
)

// ParseBackend converts a flag or config value into a Backend.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "go-git", "gogit", "native":
		return BackendGoGit, nil
	case "git-cli", "gitcli", "cli", "git":
		return BackendGitCLI, nil
	default:
		return "", fmt.Errorf("invalid backend %q (expected go-git or git-cli)", s)
	}
}

func normalizePath(path string) string {
	return strings.TrimPrefix(strings.ReplaceAll(path, "\\", "/"), "./")
}
