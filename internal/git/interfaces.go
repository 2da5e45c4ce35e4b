package git

import "context"

// Accessor is the read-only view of a repository used by the loader and the
// foreground. Implementations must be safe for concurrent use.
type Accessor interface {
	// HeadCommit resolves the commit the history walk starts from.
	HeadCommit() (CommitID, error)
	// WalkAncestors enumerates start and all of its ancestors, oldest first.
	// Every call starts a fresh walk.
	WalkAncestors(ctx context.Context, start CommitID) (AncestorIter, error)
	Metadata(id CommitID) (CommitMetadata, error)
	FileTree(id CommitID) (FileSnapshot, error)
	ResolveContent(id ContentID) (Content, error)
	Close() error
}

// AncestorIter yields commit ids in walk order. Next returns io.EOF once the
// walk is exhausted.
type AncestorIter interface {
	Next() (CommitID, error)
	Close()
}

// Compile-time interface conformance checks.
var (
	_ Accessor     = (*Repository)(nil)
	_ AncestorIter = (*chronoWalk)(nil)
	_ AncestorIter = (*cliWalk)(nil)
)
