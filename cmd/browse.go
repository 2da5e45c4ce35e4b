package cmd

import (
	"io"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/histview/internal/search"
	"github.com/masmgr/histview/internal/tui"
)

// BrowseCmd returns the interactive browse command.
func BrowseCmd() *cli.Command {
	return &cli.Command{
		Name:    "browse",
		Aliases: []string{"b"},
		Usage:   "Step through the history interactively",
		Flags:   commonFlags(),
		Action: func(c *cli.Context) error {
			return browse(c, c.String("repo"))
		},
	}
}

// browse runs the browser. The terminal belongs to the UI, so loader
// diagnostics are dropped unless --log-file is given.
func browse(c *cli.Context, repoPath string) error {
	ctx, err := NewCommandContext(c, repoPath, io.Discard)
	if err != nil {
		return err
	}
	defer ctx.Close()

	matcher, err := search.NewMatcher(ctx.Config.Search.Patterns)
	if err != nil {
		return err
	}
	return tui.Run(c.Context, ctx.Session, tui.Options{
		RepoPath: repoPath,
		Poll:     ctx.Config.Load.Poll(),
		Matcher:  matcher,
		Logger:   ctx.Logger,
	})
}
