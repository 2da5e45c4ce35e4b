package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/histview/config"
	"github.com/masmgr/histview/internal/git"
	"github.com/masmgr/histview/internal/history"
	"github.com/masmgr/histview/internal/output"
	"github.com/masmgr/histview/internal/session"
	"github.com/masmgr/histview/internal/snapshot"
)

// CommandContext holds common state for command execution.
// It loads configuration, starts the background history load and waits for
// the first commit.
type CommandContext struct {
	Config   *config.Config
	RepoPath string
	Session  *session.Session
	Logger   *log.Logger

	closeLog func() error
}

// NewCommandContext starts a session on repoPath. Loader diagnostics go to
// logOut unless --log-file is set.
func NewCommandContext(c *cli.Context, repoPath string, logOut io.Writer) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	backend, err := git.ParseBackend(cfg.Load.Backend)
	if err != nil {
		return nil, err
	}
	filter, err := git.NewPathFilter(cfg.Filters.Include, cfg.Filters.Exclude)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := newLogger(c, logOut)
	if err != nil {
		return nil, err
	}

	sess, err := session.Start(c.Context, repoPath, session.Options{
		Open: git.OpenOptions{
			Backend:         backend,
			Revision:        c.String("rev"),
			MaxContentBytes: cfg.Display.MaxContentBytes,
		},
		Logger: logger,
		Markers: snapshot.Markers{
			Unavailable: cfg.Display.UnavailableMarker,
			Binary:      cfg.Display.BinaryMarker,
			Absent:      cfg.Display.AbsentMarker,
		},
		Filter: filter,
	})
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	err = sess.Wait(c.Context, session.WaitOptions{
		Grace: cfg.Load.Grace(),
		Poll:  cfg.Load.Poll(),
		OnWait: func(elapsed time.Duration) {
			color.New(color.FgYellow).Fprintf(os.Stderr, "Loading history... %s\n", elapsed.Round(time.Second))
		},
	})
	if err != nil {
		sess.Close()
		closeLog()
		return nil, err
	}

	return &CommandContext{
		Config:   cfg,
		RepoPath: repoPath,
		Session:  sess,
		Logger:   logger,
		closeLog: closeLog,
	}, nil
}

// Close stops the history load and releases the repository.
func (ctx *CommandContext) Close() error {
	err := ctx.Session.Close()
	if cerr := ctx.closeLog(); err == nil {
		err = cerr
	}
	return err
}

// WaitComplete blocks until the whole history is loaded. A failed or cut
// short load prints a notice and reports false; what was loaded stays usable.
func (ctx *CommandContext) WaitComplete(c *cli.Context) bool {
	if err := ctx.Session.WaitComplete(c.Context); err != nil {
		color.New(color.FgYellow).Fprintf(os.Stderr, "History load incomplete: %v\n", err)
		return false
	}
	return true
}

// Target selects the commit named by --commit or --index, once the history
// is fully loaded. The index is -1 for a commit outside the loaded history.
func (ctx *CommandContext) Target(c *cli.Context) (int, git.CommitID, error) {
	ctx.WaitComplete(c)

	if rev := c.String("commit"); rev != "" {
		id, err := ctx.Session.Repo.Resolve(rev)
		if err != nil {
			return 0, "", err
		}
		if ctx.Session.Seek(id) {
			return ctx.Session.Cursor.Index(), id, nil
		}
		return -1, id, nil
	}

	n := c.Int("index")
	length := ctx.Session.History.Len()
	if n < 0 {
		n += length
	}
	if n < 0 || n >= length {
		return 0, "", fmt.Errorf("%w: index %d of %d commits", history.ErrOutOfRange, c.Int("index"), length)
	}
	ctx.Session.Cursor.JumpTo(n)
	id, _ := ctx.Session.Current()
	return ctx.Session.Cursor.Index(), id, nil
}

// executeWithContext runs fn with a CommandContext on the --repo repository.
func executeWithContext(c *cli.Context, fn func(ctx *CommandContext, c *cli.Context) error) error {
	ctx, err := NewCommandContext(c, c.String("repo"), os.Stderr)
	if err != nil {
		return err
	}
	defer ctx.Close()
	return fn(ctx, c)
}

// OutputOptions creates OutputOptions from CLI flags.
func OutputOptions(c *cli.Context) output.OutputOptions {
	return output.OutputOptions{
		Format:     getOutputFormat(c.String("format")),
		Limit:      c.Int("limit"),
		OutputPath: c.String("output"),
	}
}
