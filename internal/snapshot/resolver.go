// Package snapshot resolves a commit's file tree and file content on demand.
// Nothing is cached: every call reads the repository again.
package snapshot

import (
	"fmt"
	"time"

	"github.com/masmgr/histview/internal/git"
)

// Source is the part of an accessor the resolver reads from.
type Source interface {
	Metadata(id git.CommitID) (git.CommitMetadata, error)
	FileTree(id git.CommitID) (git.FileSnapshot, error)
	ResolveContent(id git.ContentID) (git.Content, error)
}

// Markers are the placeholder texts shown when a lookup fails.
type Markers struct {
	Unavailable string
	Binary      string
	Absent      string
}

// DefaultMarkers returns the built-in placeholder texts.
func DefaultMarkers() Markers {
	return Markers{
		Unavailable: "content unavailable",
		Binary:      git.BinaryMarker,
		Absent:      "not found",
	}
}

// Options configures a Resolver.
type Options struct {
	Markers Markers
	Filter  *git.PathFilter
}

// Resolver answers file tree and content queries for the foreground.
type Resolver struct {
	src     Source
	markers Markers
	filter  *git.PathFilter
}

// New creates a Resolver over src.
func New(src Source, opts Options) *Resolver {
	m := opts.Markers
	d := DefaultMarkers()
	if m.Unavailable == "" {
		m.Unavailable = d.Unavailable
	}
	if m.Binary == "" {
		m.Binary = d.Binary
	}
	if m.Absent == "" {
		m.Absent = d.Absent
	}
	return &Resolver{src: src, markers: m, filter: opts.Filter}
}

// Markers returns the placeholder texts in use.
func (r *Resolver) Markers() Markers {
	return r.markers
}

// Snapshot lists the commit's tracked files, applying the path filter.
func (r *Resolver) Snapshot(id git.CommitID) (git.FileSnapshot, error) {
	snap, err := r.src.FileTree(id)
	if err != nil {
		return git.FileSnapshot{}, err
	}
	return snap.Filter(r.filter)
}

// Content resolves a blob, substituting the binary marker for undisplayable data.
func (r *Resolver) Content(id git.ContentID) (git.Content, error) {
	c, err := r.src.ResolveContent(id)
	if err != nil {
		return git.Content{}, err
	}
	if c.Binary {
		c.Text = r.markers.Binary
	}
	return c, nil
}

// FileContent resolves the content of path as of commit id.
func (r *Resolver) FileContent(id git.CommitID, path string) (git.Content, error) {
	snap, err := r.src.FileTree(id)
	if err != nil {
		return git.Content{}, err
	}
	entry, ok := snap.Lookup(path)
	if !ok {
		return git.Content{}, fmt.Errorf("%w: %s not in %s", git.ErrContentUnavailable, path, id.Short())
	}
	return r.Content(entry.ContentID)
}

// Header is commit metadata prepared for display. Lookups that fail produce
// placeholder values with Available unset.
type Header struct {
	ID        git.CommitID
	When      time.Time
	Author    string
	Email     string
	Summary   string
	Parents   int
	Available bool
}

// Describe returns the header for id. It never fails.
func (r *Resolver) Describe(id git.CommitID) Header {
	meta, err := r.src.Metadata(id)
	if err != nil {
		return Header{
			ID:      id,
			Author:  r.markers.Absent,
			Email:   r.markers.Absent,
			Summary: r.markers.Unavailable,
		}
	}
	return Header{
		ID:        id,
		When:      meta.When,
		Author:    meta.AuthorName.Or(r.markers.Absent),
		Email:     meta.AuthorEmail.Or(r.markers.Absent),
		Summary:   meta.Summary.Or(""),
		Parents:   len(meta.Parents),
		Available: true,
	}
}

// Files returns the filtered file list of id, or nil when it cannot be read.
func (r *Resolver) Files(id git.CommitID) ([]git.FileEntry, bool) {
	snap, err := r.Snapshot(id)
	if err != nil {
		return nil, false
	}
	return snap.Entries, true
}

// Text returns the displayable content of a blob, or the unavailable marker.
func (r *Resolver) Text(id git.ContentID) string {
	c, err := r.Content(id)
	if err != nil {
		return r.markers.Unavailable
	}
	return c.Text
}
