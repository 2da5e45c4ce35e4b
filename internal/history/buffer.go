// Package history holds the append-only sequence of commit ids shared between
// the background loader and the foreground.
package history

import (
	"errors"
	"fmt"
	"sync"

	"github.com/masmgr/histview/internal/git"
)

var (
	// ErrOutOfRange is returned by Get for an index at or past Len.
	ErrOutOfRange = errors.New("history index out of range")
	// ErrDuplicate is returned by Append for an id already in the buffer.
	ErrDuplicate = errors.New("commit already in history")
	// ErrFinished is returned by Append after Finish.
	ErrFinished = errors.New("history load already finished")
)

// Buffer is an append-only, ordered sequence of commit ids.
// One writer appends; any number of readers may call Len, Get and the
// signalling methods concurrently. An id at index i never moves.
type Buffer struct {
	mu    sync.RWMutex
	ids   []git.CommitID
	index map[git.CommitID]int

	first    chan struct{}
	done     chan struct{}
	finished bool
	err      error
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{
		index: make(map[git.CommitID]int),
		first: make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Len returns the number of ids appended so far.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.ids)
}

// Get returns the id at position i.
func (b *Buffer) Get(i int) (git.CommitID, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if i < 0 || i >= len(b.ids) {
		return "", fmt.Errorf("%w: %d (len %d)", ErrOutOfRange, i, len(b.ids))
	}
	return b.ids[i], nil
}

// IndexOf returns the position of id.
func (b *Buffer) IndexOf(id git.CommitID) (int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i, ok := b.index[id]
	return i, ok
}

// Snapshot copies the ids appended so far.
func (b *Buffer) Snapshot() []git.CommitID {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]git.CommitID, len(b.ids))
	copy(out, b.ids)
	return out
}

// Append adds id at the end. Only the loader calls it.
func (b *Buffer) Append(id git.CommitID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.finished {
		return ErrFinished
	}
	if _, dup := b.index[id]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicate, id)
	}

	b.index[id] = len(b.ids)
	b.ids = append(b.ids, id)
	if len(b.ids) == 1 {
		close(b.first)
	}
	return nil
}

// Finish marks the load as complete. err is nil when the walk was exhausted.
// Only the first call has an effect.
func (b *Buffer) Finish(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.finished {
		return
	}
	b.finished = true
	b.err = err
	close(b.done)
}

// First is closed once the buffer holds at least one id.
func (b *Buffer) First() <-chan struct{} {
	return b.first
}

// Done is closed once the loader has stopped.
func (b *Buffer) Done() <-chan struct{} {
	return b.done
}

// Finished reports whether the loader has stopped.
func (b *Buffer) Finished() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.finished
}

// Err returns the error the loader stopped with, if any.
func (b *Buffer) Err() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.err
}
