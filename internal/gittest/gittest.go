// Package gittest builds throwaway repositories for tests.
package gittest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repo is a repository on disk with a worktree.
type Repo struct {
	Dir  string
	Repo *gogit.Repository

	tb testing.TB
	wt *gogit.Worktree
}

// Author is the signature used when a commit does not name one.
var Author = object.Signature{Name: "Test", Email: "test@example.com"}

// New initialises an empty repository in a temporary directory.
func New(tb testing.TB) *Repo {
	tb.Helper()

	dir := tb.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		tb.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		tb.Fatalf("Worktree: %v", err)
	}
	return &Repo{Dir: dir, Repo: repo, tb: tb, wt: wt}
}

// Write stores content at rel and stages it.
func (r *Repo) Write(rel, content string) {
	r.tb.Helper()

	full := filepath.Join(r.Dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		r.tb.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		r.tb.Fatalf("WriteFile: %v", err)
	}
	if _, err := r.wt.Add(rel); err != nil {
		r.tb.Fatalf("Add: %v", err)
	}
}

// Remove deletes rel from the worktree and the index.
func (r *Repo) Remove(rel string) {
	r.tb.Helper()

	if _, err := r.wt.Remove(rel); err != nil {
		r.tb.Fatalf("Remove: %v", err)
	}
}

// Commit records the staged files with the default author at when.
func (r *Repo) Commit(msg string, when time.Time) string {
	r.tb.Helper()
	return r.CommitAs(msg, Author.Name, Author.Email, when)
}

// CommitAs records the staged files with an explicit author.
func (r *Repo) CommitAs(msg, name, email string, when time.Time) string {
	r.tb.Helper()

	sig := &object.Signature{Name: name, Email: email, When: when}
	hash, err := r.wt.Commit(msg, &gogit.CommitOptions{
		Author:            sig,
		Committer:         sig,
		AllowEmptyCommits: true,
	})
	if err != nil {
		r.tb.Fatalf("Commit: %v", err)
	}
	return hash.String()
}

// Merge records a commit whose parents are HEAD and other.
func (r *Repo) Merge(msg, other string, when time.Time) string {
	r.tb.Helper()

	head, err := r.Repo.Head()
	if err != nil {
		r.tb.Fatalf("Head: %v", err)
	}
	sig := &object.Signature{Name: Author.Name, Email: Author.Email, When: when}
	hash, err := r.wt.Commit(msg, &gogit.CommitOptions{
		Author:            sig,
		Committer:         sig,
		Parents:           []plumbing.Hash{head.Hash(), plumbing.NewHash(other)},
		AllowEmptyCommits: true,
	})
	if err != nil {
		r.tb.Fatalf("Commit(merge): %v", err)
	}
	return hash.String()
}

// Checkout switches to branch, creating it when create is set.
func (r *Repo) Checkout(branch string, create bool) {
	r.tb.Helper()

	if err := r.wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: create,
	}); err != nil {
		r.tb.Fatalf("Checkout(%s): %v", branch, err)
	}
}

// Branch returns the short name of the current branch.
func (r *Repo) Branch() string {
	r.tb.Helper()

	head, err := r.Repo.Head()
	if err != nil {
		r.tb.Fatalf("Head: %v", err)
	}
	return head.Name().Short()
}

// Linear creates commits C1..Cn one hour apart, oldest first, and returns their ids.
func (r *Repo) Linear(n int, base time.Time) []string {
	r.tb.Helper()

	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		r.Write("history.txt", time.Duration(i).String()+"\n")
		ids = append(ids, r.Commit("commit "+string(rune('A'+i)), base.Add(time.Duration(i)*time.Hour)))
	}
	return ids
}
