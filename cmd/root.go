package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/masmgr/histview/config"
	"github.com/masmgr/histview/internal/output"
	"github.com/urfave/cli/v2"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "histview",
		Usage:   "Browse the commit history of a Git repository, oldest first",
		Version: "0.3.0",
		Commands: []*cli.Command{
			LogCmd(),
			ShowCmd(),
			TreeCmd(),
			CatCmd(),
			BrowseCmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
		},
		Action: defaultAction,
	}
}

// Common flags shared across commands
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path to Git repository",
			Value:   ".",
		},
		&cli.StringFlag{
			Name:  "rev",
			Usage: "Revision whose ancestry is loaded (default: HEAD)",
		},
		&cli.StringFlag{
			Name:  "backend",
			Usage: "History walker (go-git, git-cli)",
		},
		&cli.DurationFlag{
			Name:  "grace",
			Usage: "How long to wait for the first commit before giving up (raise for very large repositories)",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns of files to list (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns of files to hide (can be specified multiple times)",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "Write loader diagnostics to this file",
		},
	}
}

// Flags of commands that write a report.
func reportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, csv, markdown, ci)",
			Value:   "console",
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"n"},
			Usage:   "Maximum number of rows to show (0: all)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
	}
}

// Flags selecting one commit of the loaded history.
func targetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "index",
			Aliases: []string{"i"},
			Usage:   "Position in the history, oldest is 0; negative counts from the newest",
			Value:   -1,
		},
		&cli.StringFlag{
			Name:  "commit",
			Usage: "Commit id or revision to select instead of --index",
		},
	}
}

func flags(groups ...[]cli.Flag) []cli.Flag {
	var out []cli.Flag
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) output.OutputFormat {
	switch s {
	case "json":
		return output.FormatJSON
	case "csv":
		return output.FormatCSV
	case "markdown", "md":
		return output.FormatMarkdown
	case "ci", "ndjson":
		return output.FormatCI
	default:
		return output.FormatConsole
	}
}

// loadConfig loads configuration from file or defaults.
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Apply overrides from CLI
	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Filters.Exclude = excludes
	}
	if c.IsSet("grace") {
		cfg.Load.GraceMillis = int(c.Duration("grace").Milliseconds())
	}
	if backend := c.String("backend"); backend != "" {
		cfg.Load.Backend = backend
	}

	return cfg, cfg.Validate()
}

// newLogger returns the logger handed to the history loader. Without a log
// file, diagnostics go to fallback. The returned closer is never nil.
func newLogger(c *cli.Context, fallback io.Writer) (*log.Logger, func() error, error) {
	path := c.String("log-file")
	if path == "" {
		return log.New(fallback, "histview: ", log.LstdFlags), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return log.New(f, "histview: ", log.LstdFlags|log.Lmicroseconds), f.Close, nil
}

// defaultAction opens the browser on the repository given as the first argument.
func defaultAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.ShowAppHelp(c)
	}
	return browse(c, c.Args().Get(0))
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
