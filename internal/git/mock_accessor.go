package git

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
)

// MockCommit is one commit served by MockAccessor.
type MockCommit struct {
	Metadata CommitMetadata
	Files    map[string]ContentID
}

// MockAccessor is a test double for Repository.
// It serves a fixed history without needing a real Git repository.
type MockAccessor struct {
	// Order is the walk order, oldest first.
	Order   []CommitID
	Commits map[CommitID]MockCommit
	Blobs   map[ContentID]string

	HeadErr error
	WalkErr error
	// Gate, when set, makes each walk step wait for a value.
	Gate chan struct{}

	mu     sync.Mutex
	walks  int
	closed bool
}

// NewMockAccessor creates a MockAccessor over a linear history with the given ids.
func NewMockAccessor(ids ...CommitID) *MockAccessor {
	m := &MockAccessor{
		Order:   ids,
		Commits: make(map[CommitID]MockCommit, len(ids)),
		Blobs:   make(map[ContentID]string),
	}
	for _, id := range ids {
		m.Commits[id] = MockCommit{Metadata: CommitMetadata{ID: id}}
	}
	return m
}

// HeadCommit returns the newest commit of Order.
func (m *MockAccessor) HeadCommit() (CommitID, error) {
	if m.HeadErr != nil {
		return "", m.HeadErr
	}
	if len(m.Order) == 0 {
		return "", ErrNoHead
	}
	return m.Order[len(m.Order)-1], nil
}

// WalkAncestors replays Order.
func (m *MockAccessor) WalkAncestors(ctx context.Context, start CommitID) (AncestorIter, error) {
	if m.WalkErr != nil {
		return nil, m.WalkErr
	}
	if _, ok := m.Commits[start]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommit, start)
	}
	m.mu.Lock()
	m.walks++
	m.mu.Unlock()
	return &mockWalk{ctx: ctx, order: append([]CommitID(nil), m.Order...), gate: m.Gate}, nil
}

// Walks returns how many walks were started.
func (m *MockAccessor) Walks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.walks
}

// Metadata returns the stored metadata.
func (m *MockAccessor) Metadata(id CommitID) (CommitMetadata, error) {
	c, ok := m.Commits[id]
	if !ok {
		return CommitMetadata{}, fmt.Errorf("%w: %s", ErrUnknownCommit, id)
	}
	return c.Metadata, nil
}

// FileTree returns the stored files sorted by path.
func (m *MockAccessor) FileTree(id CommitID) (FileSnapshot, error) {
	c, ok := m.Commits[id]
	if !ok {
		return FileSnapshot{}, fmt.Errorf("%w: %s", ErrUnknownCommit, id)
	}
	entries := make([]FileEntry, 0, len(c.Files))
	for path, cid := range c.Files {
		entries = append(entries, FileEntry{Path: path, ContentID: cid, Size: int64(len(m.Blobs[cid]))})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return FileSnapshot{Commit: id, Entries: entries}, nil
}

// ResolveContent decodes the stored blob.
func (m *MockAccessor) ResolveContent(id ContentID) (Content, error) {
	text, ok := m.Blobs[id]
	if !ok {
		return Content{}, fmt.Errorf("%w: %s", ErrContentUnavailable, id)
	}
	return buildContent(id, []byte(text), int64(len(text))), nil
}

// Close marks the accessor closed.
func (m *MockAccessor) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockAccessor) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

type mockWalk struct {
	ctx   context.Context
	order []CommitID
	gate  chan struct{}
	pos   int
}

func (w *mockWalk) Next() (CommitID, error) {
	if w.pos >= len(w.order) {
		return "", io.EOF
	}
	if w.gate != nil {
		select {
		case <-w.gate:
		case <-w.ctx.Done():
			return "", w.ctx.Err()
		}
	}
	if err := w.ctx.Err(); err != nil {
		return "", err
	}
	id := w.order[w.pos]
	w.pos++
	return id, nil
}

func (w *mockWalk) Close() {}

// Compile-time interface conformance check.
var _ Accessor = (*MockAccessor)(nil)
