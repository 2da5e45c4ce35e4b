package cmd

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/histview/internal/output"
	"github.com/masmgr/histview/internal/search"
)

// LogCmd returns the log command.
func LogCmd() *cli.Command {
	return &cli.Command{
		Name:    "log",
		Aliases: []string{"l"},
		Usage:   "List the history, oldest commit first",
		Flags: flags(commonFlags(), reportFlags(), []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "grep",
				Aliases: []string{"g"},
				Usage:   "Only list commits whose summary matches this regex (can be specified multiple times)",
			},
			&cli.BoolFlag{
				Name:  "search",
				Usage: "Only list commits matching the configured search patterns",
			},
		}),
		Action: logAction,
	}
}

func logAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		complete := ctx.WaitComplete(c)

		patterns := c.StringSlice("grep")
		if len(patterns) == 0 && c.Bool("search") {
			patterns = ctx.Config.Search.Patterns
		}
		matcher, err := search.NewMatcher(patterns)
		if err != nil {
			return err
		}

		ids := ctx.Session.History.Snapshot()
		items := make([]output.HistoryItem, 0, len(ids))
		for i, id := range ids {
			header := ctx.Session.Resolver.Describe(id)
			if !matcher.Match(header.Summary) {
				continue
			}
			items = append(items, output.HistoryItem{Index: i, Header: header})
		}

		return writeHistoryReport(c, &output.HistoryReport{
			RepoPath:    ctx.RepoPath,
			GeneratedAt: time.Now(),
			Complete:    complete,
			Items:       items,
		})
	})
}
