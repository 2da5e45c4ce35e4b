package git

import "errors"

var (
	// ErrNotARepository is returned when a path does not name a usable repository.
	ErrNotARepository = errors.New("not a git repository")
	// ErrNoHead is returned when the repository has no commits or HEAD cannot be resolved.
	ErrNoHead = errors.New("repository has no head commit")
	// ErrUnknownCommit is returned when a commit id is not in the object store.
	ErrUnknownCommit = errors.New("unknown commit")
	// ErrContentUnavailable is returned when a blob cannot be read.
	ErrContentUnavailable = errors.New("content unavailable")
)
