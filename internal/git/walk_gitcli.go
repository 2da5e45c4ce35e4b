package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// cliWalk streams `git rev-list` output. --date-order never shows a parent
// before all of its children, and --reverse turns that into oldest first.
type cliWalk struct {
	cmd     *exec.Cmd
	cancel  context.CancelFunc
	scanner *bufio.Scanner
	stderr  bytes.Buffer
	done    bool
}

func newCLIWalk(ctx context.Context, repoPath string, start CommitID) (*cliWalk, error) {
	ctx, cancel := context.WithCancel(ctx)

	args := []string{
		"-C", repoPath,
		"rev-list",
		"--date-order",
		"--reverse",
		start.String(),
	}

	w := &cliWalk{cancel: cancel}
	w.cmd = exec.CommandContext(ctx, "git", args...)
	w.cmd.Stderr = &w.stderr

	out, err := w.cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("git rev-list: %w", err)
	}
	if err := w.cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("git rev-list: %w", err)
	}
	w.scanner = bufio.NewScanner(out)
	return w, nil
}

// Next returns the next commit id, or io.EOF once git has exited cleanly.
func (w *cliWalk) Next() (CommitID, error) {
	if w.done {
		return "", io.EOF
	}
	for w.scanner.Scan() {
		line := strings.TrimSpace(w.scanner.Text())
		if line == "" {
			continue
		}
		return CommitID(line), nil
	}

	w.done = true
	scanErr := w.scanner.Err()
	waitErr := w.cmd.Wait()
	w.cancel()
	if scanErr != nil {
		return "", fmt.Errorf("read git rev-list output: %w", scanErr)
	}
	if waitErr != nil {
		return "", fmt.Errorf("git rev-list failed: %w: %s", waitErr, strings.TrimSpace(w.stderr.String()))
	}
	return "", io.EOF
}

// Close stops git if it is still running.
func (w *cliWalk) Close() {
	if w.done {
		return
	}
	w.done = true
	w.cancel()
	_ = w.cmd.Wait()
}
