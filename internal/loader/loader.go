// Package loader walks a repository's history in the background and fills a
// history.Buffer as commits are discovered.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync/atomic"
	"time"

	"github.com/masmgr/histview/internal/git"
	"github.com/masmgr/histview/internal/history"
)

// ErrAlreadyStarted is returned when a Loader is run a second time.
var ErrAlreadyStarted = errors.New("history loader already started")

// Opener opens the accessor owned by the loader.
type Opener func() (git.Accessor, error)

// Options configures a Loader.
type Options struct {
	Logger *log.Logger
	// OnProgress is called after each append with the number of commits loaded.
	OnProgress func(loaded int)
}

// Loader performs a single history walk.
type Loader struct {
	open       Opener
	buffer     *history.Buffer
	logger     *log.Logger
	onProgress func(int)

	started atomic.Bool
}

// New creates a Loader that appends to buffer.
func New(open Opener, buffer *history.Buffer, opts Options) *Loader {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Loader{
		open:       open,
		buffer:     buffer,
		logger:     logger,
		onProgress: opts.OnProgress,
	}
}

// Start runs the walk on a new goroutine.
func (l *Loader) Start(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	go l.run(ctx)
	return nil
}

// Run performs the walk on the calling goroutine and returns its outcome.
func (l *Loader) Run(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	return l.run(ctx)
}

func (l *Loader) run(ctx context.Context) (err error) {
	began := time.Now()
	defer func() {
		// A corrupted object store can panic inside the git library.
		if r := recover(); r != nil {
			err = fmt.Errorf("history load panicked: %v", r)
		}
		if err != nil {
			l.logger.Printf("history load stopped after %d commits: %v", l.buffer.Len(), err)
		} else {
			l.logger.Printf("history load finished: %d commits in %s", l.buffer.Len(), time.Since(began).Round(time.Millisecond))
		}
		l.buffer.Finish(err)
	}()

	acc, err := l.open()
	if err != nil {
		return err
	}
	defer acc.Close()

	head, err := acc.HeadCommit()
	if err != nil {
		return err
	}
	l.logger.Printf("history load started at %s", head.Short())

	it, err := acc.WalkAncestors(ctx, head)
	if err != nil {
		return err
	}
	defer it.Close()

	for {
		id, err := it.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := l.buffer.Append(id); err != nil {
			if errors.Is(err, history.ErrDuplicate) {
				l.logger.Printf("skipping repeated commit %s", id.Short())
				continue
			}
			return err
		}

		if l.onProgress != nil {
			l.onProgress(l.buffer.Len())
		}
	}
}
