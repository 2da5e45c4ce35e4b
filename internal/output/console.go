package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/masmgr/histview/internal/git"
)

// ConsoleHistoryWriter writes history listings to the console.
type ConsoleHistoryWriter struct{}

// Write outputs the history listing as an aligned table.
func (w *ConsoleHistoryWriter) Write(report *HistoryReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	items := limitTop(report.Items, options.Limit)

	color.New(color.FgGreen).Fprintln(out, "Commit History")
	fmt.Fprintf(out, "Repository: %s\n", report.RepoPath)
	fmt.Fprintf(out, "Commits shown: %d\n", len(items))
	if !report.Complete {
		color.New(color.FgYellow).Fprintln(out, "History load did not complete; listing is partial.")
	}
	fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSHA\tDate\tAuthor\tMessage")
	for _, item := range items {
		sha := item.ID.Short()
		if item.Parents > 1 {
			sha = color.CyanString(sha)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			item.Index,
			sha,
			formatWhen(item.When, displayLayout),
			item.Author,
			truncateMessage(item.Summary, 60),
		)
	}
	return tw.Flush()
}

// ConsoleCommitWriter writes a commit report to the console. When the report
// carries a file, only that file's text is written.
type ConsoleCommitWriter struct{}

// Write outputs the commit report.
func (w *ConsoleCommitWriter) Write(report *CommitReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	if report.File != nil {
		fmt.Fprint(out, report.File.Content.Text)
		if note := contentNote(report.File.Content); note != "" {
			color.New(color.FgYellow).Fprintf(out, "\n[%s]\n", note)
		}
		return nil
	}

	if report.FilesOnly {
		return writeConsoleFiles(out, report, options)
	}

	h := report.Header
	color.New(color.FgYellow).Fprintf(out, "commit %s\n", h.ID)
	fmt.Fprintf(out, "Index:   %d\n", report.Index)
	fmt.Fprintf(out, "Author:  %s <%s>\n", h.Author, h.Email)
	fmt.Fprintf(out, "Date:    %s\n", formatWhen(h.When, reportDateTimeLayout))
	if h.Parents > 1 {
		fmt.Fprintf(out, "Merge:   %d parents\n", h.Parents)
	}
	fmt.Fprintf(out, "\n    %s\n\n", h.Summary)
	fmt.Fprintf(out, "Files: %d\n", len(report.Files))
	return writeConsoleFiles(out, report, options)
}

func writeConsoleFiles(out io.Writer, report *CommitReport, options OutputOptions) error {
	if !report.FilesAvailable {
		color.New(color.FgRed).Fprintln(out, "File tree unavailable.")
		return nil
	}
	files := limitTop(report.Files, options.Limit)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, f := range files {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", git.ModeLabel(f.Mode), formatSize(f.Size), f.Path)
	}
	return tw.Flush()
}
