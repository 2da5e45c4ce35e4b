package output

import (
	"io"
	"time"

	"github.com/masmgr/histview/internal/git"
	"github.com/masmgr/histview/internal/snapshot"
)

// Compile-time interface conformance checks.
var (
	_ HistoryReportWriter = (*ConsoleHistoryWriter)(nil)
	_ HistoryReportWriter = (*JSONHistoryWriter)(nil)
	_ HistoryReportWriter = (*CSVHistoryWriter)(nil)
	_ HistoryReportWriter = (*MarkdownHistoryWriter)(nil)
	_ HistoryReportWriter = (*CIHistoryWriter)(nil)

	_ CommitReportWriter = (*ConsoleCommitWriter)(nil)
	_ CommitReportWriter = (*JSONCommitWriter)(nil)
	_ CommitReportWriter = (*CSVCommitWriter)(nil)
	_ CommitReportWriter = (*MarkdownCommitWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatCI       OutputFormat = "ci"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	Limit      int
	OutputPath string
	// Writer overrides OutputPath and stdout when set.
	Writer io.Writer
}

// HistoryItem is one row of a history listing.
type HistoryItem struct {
	Index int
	snapshot.Header
}

// HistoryReport is a listing of loaded commits, oldest first.
type HistoryReport struct {
	RepoPath    string
	GeneratedAt time.Time
	// Complete is false when the load failed or was cut short.
	Complete bool
	Items    []HistoryItem
}

// FileView is a file's content as of one commit.
type FileView struct {
	Path      string
	Available bool
	Content   git.Content
}

// CommitReport describes one commit, its file tree and optionally one file.
type CommitReport struct {
	RepoPath       string
	Index          int
	Header         snapshot.Header
	FilesAvailable bool
	Files          []git.FileEntry
	File           *FileView
	// FilesOnly drops the commit header from console and Markdown output.
	FilesOnly bool
}

// HistoryReportWriter writes history listings.
type HistoryReportWriter interface {
	Write(report *HistoryReport, options OutputOptions) error
}

// CommitReportWriter writes single commit reports.
type CommitReportWriter interface {
	Write(report *CommitReport, options OutputOptions) error
}

// NewHistoryReportWriter creates a history writer for the specified format.
func NewHistoryReportWriter(format OutputFormat) HistoryReportWriter {
	switch format {
	case FormatJSON:
		return &JSONHistoryWriter{}
	case FormatCSV:
		return &CSVHistoryWriter{}
	case FormatMarkdown:
		return &MarkdownHistoryWriter{}
	case FormatCI:
		return &CIHistoryWriter{}
	default:
		return &ConsoleHistoryWriter{}
	}
}

// NewCommitReportWriter creates a commit writer for the specified format.
// The CI format has no commit form and falls back to JSON.
func NewCommitReportWriter(format OutputFormat) CommitReportWriter {
	switch format {
	case FormatJSON, FormatCI:
		return &JSONCommitWriter{}
	case FormatCSV:
		return &CSVCommitWriter{}
	case FormatMarkdown:
		return &MarkdownCommitWriter{}
	default:
		return &ConsoleCommitWriter{}
	}
}
