package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// DefaultMaxContentBytes bounds how much of a blob ResolveContent reads.
const DefaultMaxContentBytes = 1 << 20

// OpenOptions configures a Repository.
type OpenOptions struct {
	// Backend selects the ancestor walker. Defaults to BackendGoGit.
	Backend Backend
	// Revision overrides HEAD as the starting point of the history, e.g. a branch name.
	Revision string
	// MaxContentBytes bounds ResolveContent reads. Zero means DefaultMaxContentBytes.
	MaxContentBytes int64
}

// Repository is a read-only Accessor over a repository opened with go-git.
type Repository struct {
	path string
	repo *git.Repository
	opts OpenOptions

	// go-git's filesystem storage does not promise concurrent safety.
	mu sync.Mutex
}

// Open opens the repository at path, searching parent directories for .git.
func Open(path string, opts OpenOptions) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotARepository, path, err)
	}
	if opts.Backend == "" {
		opts.Backend = BackendGoGit
	}
	if opts.MaxContentBytes <= 0 {
		opts.MaxContentBytes = DefaultMaxContentBytes
	}
	return &Repository{path: path, repo: repo, opts: opts}, nil
}

// Path returns the path the repository was opened with.
func (r *Repository) Path() string {
	return r.path
}

// HeadCommit resolves HEAD, or the configured revision, to a commit.
func (r *Repository) HeadCommit() (CommitID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rev := strings.TrimSpace(r.opts.Revision)
	if rev == "" || strings.EqualFold(rev, "HEAD") {
		ref, err := r.repo.Head()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNoHead, err)
		}
		return CommitID(ref.Hash().String()), nil
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return "", fmt.Errorf("%w: resolve %q: %v", ErrNoHead, rev, err)
	}
	if _, err := r.repo.CommitObject(*hash); err != nil {
		return "", fmt.Errorf("%w: %q is not a commit: %v", ErrNoHead, rev, err)
	}
	return CommitID(hash.String()), nil
}

// WalkAncestors starts a fresh walk over start and its ancestors, oldest first.
func (r *Repository) WalkAncestors(ctx context.Context, start CommitID) (AncestorIter, error) {
	hash, err := parseHash(string(start))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommit, start)
	}
	if _, err := r.commit(hash); err != nil {
		return nil, err
	}

	if r.opts.Backend == BackendGitCLI {
		return newCLIWalk(ctx, r.path, start)
	}
	return newChronoWalk(ctx, r, hash), nil
}

// Metadata returns the author, time and summary of a commit.
// Missing author fields are reported as absent, never as errors.
func (r *Repository) Metadata(id CommitID) (CommitMetadata, error) {
	hash, err := parseHash(string(id))
	if err != nil {
		return CommitMetadata{}, fmt.Errorf("%w: %s", ErrUnknownCommit, id)
	}
	c, err := r.commit(hash)
	if err != nil {
		return CommitMetadata{}, err
	}

	parents := make([]CommitID, len(c.ParentHashes))
	for i, p := range c.ParentHashes {
		parents[i] = CommitID(p.String())
	}

	return CommitMetadata{
		ID:          id,
		When:        c.Committer.When,
		AuthorName:  Present(c.Author.Name),
		AuthorEmail: Present(c.Author.Email),
		Summary:     Present(summaryLine(c.Message)),
		Parents:     parents,
	}, nil
}

// FileTree lists every tracked file reachable from the commit's root tree.
func (r *Repository) FileTree(id CommitID) (FileSnapshot, error) {
	hash, err := parseHash(string(id))
	if err != nil {
		return FileSnapshot{}, fmt.Errorf("%w: %s", ErrUnknownCommit, id)
	}
	c, err := r.commit(hash)
	if err != nil {
		return FileSnapshot{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tree, err := c.Tree()
	if err != nil {
		return FileSnapshot{}, fmt.Errorf("%w: tree of %s: %v", ErrUnknownCommit, id, err)
	}

	seen := make(map[string]struct{})
	var entries []FileEntry
	err = tree.Files().ForEach(func(f *object.File) error {
		if !isTrackedFile(f.Mode) {
			return nil
		}
		if _, dup := seen[f.Name]; dup {
			return nil
		}
		seen[f.Name] = struct{}{}
		entries = append(entries, FileEntry{
			Path:      f.Name,
			ContentID: ContentID(f.Hash.String()),
			Mode:      f.Mode,
			Size:      f.Size,
		})
		return nil
	})
	if err != nil {
		return FileSnapshot{}, fmt.Errorf("walk tree of %s: %w", id, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})

	return FileSnapshot{Commit: id, Entries: entries}, nil
}

// ResolveContent reads a blob and renders it as text.
// Binary blobs yield BinaryMarker rather than an error.
func (r *Repository) ResolveContent(id ContentID) (Content, error) {
	hash, err := parseHash(string(id))
	if err != nil {
		return Content{}, fmt.Errorf("%w: %s", ErrContentUnavailable, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	blob, err := r.repo.BlobObject(hash)
	if err != nil {
		return Content{}, fmt.Errorf("%w: %s: %v", ErrContentUnavailable, id, err)
	}

	rd, err := blob.Reader()
	if err != nil {
		return Content{}, fmt.Errorf("%w: %s: %v", ErrContentUnavailable, id, err)
	}
	defer rd.Close()

	data, err := io.ReadAll(io.LimitReader(rd, r.opts.MaxContentBytes))
	if err != nil {
		return Content{}, fmt.Errorf("%w: %s: %v", ErrContentUnavailable, id, err)
	}

	return buildContent(id, data, blob.Size), nil
}

// Resolve turns a full object name, branch, tag or other revision into a commit id.
func (r *Repository) Resolve(rev string) (CommitID, error) {
	rev = strings.TrimSpace(rev)
	if hash, err := parseHash(rev); err == nil {
		if _, err := r.commit(hash); err != nil {
			return "", err
		}
		return CommitID(hash.String()), nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnknownCommit, rev, err)
	}
	if _, err := r.repo.CommitObject(*hash); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnknownCommit, rev, err)
	}
	return CommitID(hash.String()), nil
}

// Close releases the repository handle.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.repo.Storer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (r *Repository) commit(hash plumbing.Hash) (*object.Commit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.repo.CommitObject(hash)
	if err != nil {
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCommit, hash)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUnknownCommit, hash, err)
	}
	return c, nil
}

// parseHash accepts only full hex object names.
func parseHash(s string) (plumbing.Hash, error) {
	if len(s) != 40 {
		return plumbing.ZeroHash, fmt.Errorf("invalid object name %q", s)
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return plumbing.ZeroHash, fmt.Errorf("invalid object name %q", s)
		}
	}
	return plumbing.NewHash(s), nil
}

// summaryLine returns the first line of a commit message.
func summaryLine(message string) string {
	if idx := strings.IndexByte(message, '\n'); idx != -1 {
		message = message[:idx]
	}
	return strings.TrimSpace(message)
}
