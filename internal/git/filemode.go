package git

import "github.com/go-git/go-git/v5/plumbing/filemode"

// ModeLabel returns a short label for a tree entry mode.
func ModeLabel(m filemode.FileMode) string {
	switch m {
	case filemode.Regular, filemode.Deprecated:
		return "file"
	case filemode.Executable:
		return "exec"
	case filemode.Symlink:
		return "link"
	case filemode.Submodule:
		return "module"
	case filemode.Dir:
		return "dir"
	default:
		return "unknown"
	}
}

// isTrackedFile reports whether a tree entry mode names file content.
func isTrackedFile(m filemode.FileMode) bool {
	return m == filemode.Regular || m == filemode.Deprecated || m == filemode.Executable || m == filemode.Symlink
}
