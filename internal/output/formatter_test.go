package output

import "testing"

func TestNewHistoryReportWriter(t *testing.T) {
	tests := []struct {
		name   string
		format OutputFormat
	}{
		{name: "Console", format: FormatConsole},
		{name: "JSON", format: FormatJSON},
		{name: "CSV", format: FormatCSV},
		{name: "Markdown", format: FormatMarkdown},
		{name: "CI", format: FormatCI},
		{name: "Unknown defaults to Console", format: "unknown"},
		{name: "Empty defaults to Console", format: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := NewHistoryReportWriter(tt.format)
			var ok bool
			switch tt.format {
			case FormatJSON:
				_, ok = writer.(*JSONHistoryWriter)
			case FormatCSV:
				_, ok = writer.(*CSVHistoryWriter)
			case FormatMarkdown:
				_, ok = writer.(*MarkdownHistoryWriter)
			case FormatCI:
				_, ok = writer.(*CIHistoryWriter)
			default:
				_, ok = writer.(*ConsoleHistoryWriter)
			}
			if !ok {
				t.Errorf("NewHistoryReportWriter(%q) returned %T", tt.format, writer)
			}
		})
	}
}

func TestNewCommitReportWriter(t *testing.T) {
	tests := []struct {
		name   string
		format OutputFormat
	}{
		{name: "Console", format: FormatConsole},
		{name: "JSON", format: FormatJSON},
		{name: "CSV", format: FormatCSV},
		{name: "Markdown", format: FormatMarkdown},
		{name: "CI falls back to JSON", format: FormatCI},
		{name: "Unknown defaults to Console", format: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := NewCommitReportWriter(tt.format)
			var ok bool
			switch tt.format {
			case FormatJSON, FormatCI:
				_, ok = writer.(*JSONCommitWriter)
			case FormatCSV:
				_, ok = writer.(*CSVCommitWriter)
			case FormatMarkdown:
				_, ok = writer.(*MarkdownCommitWriter)
			default:
				_, ok = writer.(*ConsoleCommitWriter)
			}
			if !ok {
				t.Errorf("NewCommitReportWriter(%q) returned %T", tt.format, writer)
			}
		})
	}
}
