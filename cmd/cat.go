package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/histview/internal/output"
)

// CatCmd returns the cat command.
func CatCmd() *cli.Command {
	return &cli.Command{
		Name:  "cat",
		Usage: "Print a file as of a commit",
		Flags: flags(commonFlags(), reportFlags(), targetFlags(), []cli.Flag{
			&cli.StringFlag{
				Name:     "path",
				Aliases:  []string{"p"},
				Usage:    "Path of the file within the repository",
				Required: true,
			},
		}),
		Action: catAction,
	}
}

func catAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		index, id, err := ctx.Target(c)
		if err != nil {
			return err
		}
		path := c.String("path")
		content, err := ctx.Session.Resolver.FileContent(id, path)
		if err != nil {
			return err
		}
		return writeCommitReport(c, &output.CommitReport{
			RepoPath: ctx.RepoPath,
			Index:    index,
			Header:   ctx.Session.Resolver.Describe(id),
			File:     &output.FileView{Path: path, Available: true, Content: content},
		})
	})
}
