package session

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/masmgr/histview/internal/git"
	"github.com/masmgr/histview/internal/gittest"
	"github.com/masmgr/histview/internal/history"
)

var base = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func TestStart_NotARepository(t *testing.T) {
	_, err := Start(context.Background(), t.TempDir(), Options{})
	if !errors.Is(err, git.ErrNotARepository) {
		t.Fatalf("Start() error = %v, want ErrNotARepository", err)
	}
}

func TestSession_LoadAndNavigate(t *testing.T) {
	fx := gittest.New(t)
	hashes := fx.Linear(3, base)

	s, err := Start(context.Background(), fx.Dir, Options{})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Close()

	if err := s.Wait(context.Background(), WaitOptions{Grace: 10 * time.Second}); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if err := s.WaitComplete(context.Background()); err != nil {
		t.Fatalf("WaitComplete: %v", err)
	}

	if s.History.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.History.Len())
	}
	for i, h := range hashes {
		id, err := s.History.Get(i)
		if err != nil {
			t.Fatalf("Get(%d): %v", i, err)
		}
		if id != git.CommitID(h) {
			t.Errorf("History[%d] = %s, want %s", i, id, h)
		}
	}

	if id, _ := s.Current(); id != git.CommitID(hashes[0]) {
		t.Fatalf("Current() = %s, want oldest commit", id)
	}
	s.Cursor.JumpTo(100)
	if id, _ := s.Current(); id != git.CommitID(hashes[2]) {
		t.Fatalf("Current() after JumpTo(100) = %s, want newest commit", id)
	}

	if !s.Seek(git.CommitID(hashes[1])) {
		t.Fatal("Seek(middle) failed")
	}
	if s.Cursor.Index() != 1 {
		t.Fatalf("Index() after Seek = %d, want 1", s.Cursor.Index())
	}
	if s.Seek("unknown") {
		t.Fatal("Seek(unknown) succeeded")
	}

	h := s.Resolver.Describe(git.CommitID(hashes[1]))
	if !h.Available || h.Summary != "commit B" {
		t.Fatalf("Describe() = %+v", h)
	}
}

func TestSession_EmptyRepositoryStalls(t *testing.T) {
	fx := gittest.New(t)

	s, err := Start(context.Background(), fx.Dir, Options{})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Close()

	err = s.Wait(context.Background(), WaitOptions{Grace: 10 * time.Second, Poll: 10 * time.Millisecond})
	if !errors.Is(err, ErrLoadStalled) {
		t.Fatalf("Wait() error = %v, want ErrLoadStalled", err)
	}
	if !errors.Is(err, git.ErrNoHead) {
		t.Fatalf("Wait() error = %v, want it to wrap ErrNoHead", err)
	}
	if _, ok := s.Current(); ok {
		t.Fatal("Current() returned a commit for an empty repository")
	}
}

func TestWaitForFirst_GracePeriod(t *testing.T) {
	buf := history.NewBuffer()

	var waits atomic.Int32
	began := time.Now()
	err := WaitForFirst(context.Background(), buf, WaitOptions{
		Grace:  80 * time.Millisecond,
		Poll:   10 * time.Millisecond,
		OnWait: func(time.Duration) { waits.Add(1) },
	})
	if !errors.Is(err, ErrLoadStalled) {
		t.Fatalf("WaitForFirst() error = %v, want ErrLoadStalled", err)
	}
	if elapsed := time.Since(began); elapsed < 80*time.Millisecond {
		t.Fatalf("returned after %s, before the grace period", elapsed)
	}
	if waits.Load() == 0 {
		t.Fatal("OnWait never called")
	}
}

func TestWaitForFirst_ReturnsOnFirstAppend(t *testing.T) {
	buf := history.NewBuffer()
	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = buf.Append("c1")
	}()

	if err := WaitForFirst(context.Background(), buf, WaitOptions{Grace: 5 * time.Second, Poll: time.Millisecond}); err != nil {
		t.Fatalf("WaitForFirst: %v", err)
	}
	if buf.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", buf.Len())
	}
}

func TestWaitForFirst_AlreadyLoaded(t *testing.T) {
	buf := history.NewBuffer()
	_ = buf.Append("c1")
	buf.Finish(nil)

	if err := WaitForFirst(context.Background(), buf, WaitOptions{}); err != nil {
		t.Fatalf("WaitForFirst: %v", err)
	}
}

func TestWaitForFirst_Context(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WaitForFirst(ctx, history.NewBuffer(), WaitOptions{Grace: time.Minute})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("WaitForFirst() error = %v, want context.Canceled", err)
	}
}

func TestStartHistoryLoad_IndependentHandles(t *testing.T) {
	fx := gittest.New(t)
	hashes := fx.Linear(2, base)

	repo, buf, err := StartHistoryLoad(context.Background(), fx.Dir, Options{})
	if err != nil {
		t.Fatalf("StartHistoryLoad: %v", err)
	}
	repo.Close()

	select {
	case <-buf.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("loader did not finish")
	}
	if buf.Err() != nil {
		t.Fatalf("loader error after closing the foreground handle: %v", buf.Err())
	}
	if buf.Len() != len(hashes) {
		t.Fatalf("Len() = %d, want %d", buf.Len(), len(hashes))
	}
}
