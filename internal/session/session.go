// Package session wires the history loader, buffer, cursor and resolver
// together for a foreground consumer.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/masmgr/histview/internal/cursor"
	"github.com/masmgr/histview/internal/git"
	"github.com/masmgr/histview/internal/history"
	"github.com/masmgr/histview/internal/loader"
	"github.com/masmgr/histview/internal/snapshot"
)

// ErrLoadStalled means the history stayed empty past the startup grace period,
// or the loader stopped without producing a commit.
var ErrLoadStalled = errors.New("history load stalled")

const (
	DefaultGrace = 5 * time.Second
	DefaultPoll  = 500 * time.Millisecond
)

// Options configures StartHistoryLoad and Start.
type Options struct {
	Open       git.OpenOptions
	Logger     *log.Logger
	OnProgress func(loaded int)

	Markers snapshot.Markers
	Filter  *git.PathFilter
}

// StartHistoryLoad opens a foreground accessor for path and starts a loader
// that walks the history on its own accessor. The returned buffer fills in
// the background.
func StartHistoryLoad(ctx context.Context, path string, opts Options) (*git.Repository, *history.Buffer, error) {
	repo, err := git.Open(path, opts.Open)
	if err != nil {
		return nil, nil, err
	}

	buf := history.NewBuffer()
	open := func() (git.Accessor, error) {
		return git.Open(path, opts.Open)
	}
	l := loader.New(open, buf, loader.Options{Logger: opts.Logger, OnProgress: opts.OnProgress})
	if err := l.Start(ctx); err != nil {
		repo.Close()
		return nil, nil, err
	}
	return repo, buf, nil
}

// WaitOptions bounds the startup wait.
type WaitOptions struct {
	Grace time.Duration
	Poll  time.Duration
	// OnWait is called every Poll interval while still waiting.
	OnWait func(elapsed time.Duration)
}

// WaitForFirst blocks until buf holds a commit, the loader stops, the grace
// period runs out, or ctx is done.
func WaitForFirst(ctx context.Context, buf *history.Buffer, opts WaitOptions) error {
	if opts.Grace <= 0 {
		opts.Grace = DefaultGrace
	}
	if opts.Poll <= 0 {
		opts.Poll = DefaultPoll
	}

	select {
	case <-buf.First():
		return nil
	default:
	}

	began := time.Now()
	timer := time.NewTimer(opts.Grace)
	defer timer.Stop()
	ticker := time.NewTicker(opts.Poll)
	defer ticker.Stop()

	for {
		select {
		case <-buf.First():
			return nil
		case <-buf.Done():
			if buf.Len() > 0 {
				return nil
			}
			if err := buf.Err(); err != nil {
				return fmt.Errorf("%w: %w", ErrLoadStalled, err)
			}
			return fmt.Errorf("%w: history is empty", ErrLoadStalled)
		case <-timer.C:
			return fmt.Errorf("%w: no commits after %s", ErrLoadStalled, opts.Grace)
		case <-ticker.C:
			if opts.OnWait != nil {
				opts.OnWait(time.Since(began))
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Session is the foreground view of a repository whose history loads in the background.
type Session struct {
	Repo     *git.Repository
	History  *history.Buffer
	Cursor   *cursor.Cursor
	Resolver *snapshot.Resolver

	cancel context.CancelFunc
}

// Start opens path and begins loading its history.
func Start(ctx context.Context, path string, opts Options) (*Session, error) {
	ctx, cancel := context.WithCancel(ctx)
	repo, buf, err := StartHistoryLoad(ctx, path, opts)
	if err != nil {
		cancel()
		return nil, err
	}
	return &Session{
		Repo:     repo,
		History:  buf,
		Cursor:   cursor.New(buf),
		Resolver: snapshot.New(repo, snapshot.Options{Markers: opts.Markers, Filter: opts.Filter}),
		cancel:   cancel,
	}, nil
}

// Wait blocks until the first commit is available. See WaitForFirst.
func (s *Session) Wait(ctx context.Context, opts WaitOptions) error {
	return WaitForFirst(ctx, s.History, opts)
}

// WaitComplete blocks until the loader stops and returns its error.
func (s *Session) WaitComplete(ctx context.Context) error {
	select {
	case <-s.History.Done():
		return s.History.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Current returns the commit under the cursor.
func (s *Session) Current() (git.CommitID, bool) {
	return s.Cursor.Current()
}

// Seek moves the cursor to the commit id, if it has been loaded.
func (s *Session) Seek(id git.CommitID) bool {
	i, ok := s.History.IndexOf(id)
	if !ok {
		return false
	}
	s.Cursor.JumpTo(i)
	return s.Cursor.Index() == i
}

// Close stops the loader and releases the foreground accessor.
func (s *Session) Close() error {
	s.cancel()
	return s.Repo.Close()
}
