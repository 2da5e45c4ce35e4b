package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/histview/internal/output"
)

// ShowCmd returns the show command.
func ShowCmd() *cli.Command {
	return &cli.Command{
		Name:   "show",
		Usage:  "Show a commit's metadata and file tree",
		Flags:  flags(commonFlags(), reportFlags(), targetFlags()),
		Action: showAction,
	}
}

// TreeCmd returns the tree command.
func TreeCmd() *cli.Command {
	return &cli.Command{
		Name:   "tree",
		Usage:  "List the files tracked by a commit",
		Flags:  flags(commonFlags(), reportFlags(), targetFlags()),
		Action: treeAction,
	}
}

func showAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		report, err := commitReport(ctx, c)
		if err != nil {
			return err
		}
		return writeCommitReport(c, report)
	})
}

func treeAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		report, err := commitReport(ctx, c)
		if err != nil {
			return err
		}
		report.FilesOnly = true
		return writeCommitReport(c, report)
	})
}

func commitReport(ctx *CommandContext, c *cli.Context) (*output.CommitReport, error) {
	index, id, err := ctx.Target(c)
	if err != nil {
		return nil, err
	}
	files, ok := ctx.Session.Resolver.Files(id)
	return &output.CommitReport{
		RepoPath:       ctx.RepoPath,
		Index:          index,
		Header:         ctx.Session.Resolver.Describe(id),
		FilesAvailable: ok,
		Files:          files,
	}, nil
}
