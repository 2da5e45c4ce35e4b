package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/masmgr/histview/internal/git"
)

// MarkdownHistoryWriter writes history listings as Markdown.
type MarkdownHistoryWriter struct{}

// Write outputs the history listing as a Markdown table.
func (w *MarkdownHistoryWriter) Write(report *HistoryReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	items := limitTop(report.Items, options.Limit)

	fmt.Fprintln(out, "# Commit History")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repository:** %s\n\n", report.RepoPath)
	fmt.Fprintf(out, "**Commits:** %d\n\n", len(items))
	if !report.Complete {
		fmt.Fprintln(out, "> History load did not complete; listing is partial.")
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "| # | SHA | Date | Author | Message |")
	fmt.Fprintln(out, "|---|-----|------|--------|---------|")
	for _, item := range items {
		fmt.Fprintf(out, "| %d | `%s` | %s | %s | %s |\n",
			item.Index,
			item.ID.Short(),
			formatWhen(item.When, displayLayout),
			escapeMarkdown(item.Author),
			escapeMarkdown(truncateMessage(item.Summary, 72)),
		)
	}
	return nil
}

// MarkdownCommitWriter writes commit reports as Markdown.
type MarkdownCommitWriter struct{}

// Write outputs the commit header followed by its file table or file content.
func (w *MarkdownCommitWriter) Write(report *CommitReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	h := report.Header
	if report.FilesOnly && report.File == nil {
		return writeMarkdownFiles(out, report, options)
	}
	fmt.Fprintf(out, "# Commit `%s`\n\n", h.ID.Short())
	fmt.Fprintf(out, "**Summary:** %s\n\n", escapeMarkdown(h.Summary))
	fmt.Fprintf(out, "**Author:** %s <%s>\n\n", escapeMarkdown(h.Author), h.Email)
	fmt.Fprintf(out, "**Date:** %s\n\n", formatWhen(h.When, reportDateTimeLayout))
	fmt.Fprintf(out, "**Index:** %d\n\n", report.Index)

	if v := report.File; v != nil {
		fmt.Fprintf(out, "## `%s`\n\n", v.Path)
		if note := contentNote(v.Content); note != "" {
			fmt.Fprintf(out, "_%s_\n\n", note)
		}
		fence := "```"
		for strings.Contains(v.Content.Text, fence) {
			fence += "`"
		}
		fmt.Fprintln(out, fence)
		fmt.Fprint(out, v.Content.Text)
		if !strings.HasSuffix(v.Content.Text, "\n") {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, fence)
		return nil
	}

	return writeMarkdownFiles(out, report, options)
}

func writeMarkdownFiles(out io.Writer, report *CommitReport, options OutputOptions) error {
	if !report.FilesAvailable {
		fmt.Fprintln(out, "_File tree unavailable._")
		return nil
	}
	fmt.Fprintf(out, "## Files (%d)\n\n", len(report.Files))
	fmt.Fprintln(out, "| Mode | Size | Path |")
	fmt.Fprintln(out, "|------|------|------|")
	for _, f := range limitTop(report.Files, options.Limit) {
		fmt.Fprintf(out, "| %s | %s | `%s` |\n", git.ModeLabel(f.Mode), formatSize(f.Size), f.Path)
	}
	return nil
}
