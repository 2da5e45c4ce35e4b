package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/masmgr/histview/internal/git"
)

const (
	reportDateTimeLayout = "2006-01-02T15:04:05"
	displayLayout        = "2006-01-02 15:04"
)

func limitTop[T any](items []T, top int) []T {
	if top <= 0 || top >= len(items) {
		return items
	}
	return items[:top]
}

// openOutputWriter resolves where a report goes. The returned file, when
// non-nil, must be closed by the caller.
func openOutputWriter(options OutputOptions) (io.Writer, *os.File, error) {
	if options.Writer != nil {
		return options.Writer, nil, nil
	}
	if options.OutputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(options.OutputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

func formatWhen(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layout)
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1fM", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1fK", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d", n)
	}
}

func truncateMessage(msg string, maxLen int) string {
	r := []rune(msg)
	if len(r) <= maxLen {
		return msg
	}
	return string(r[:maxLen-3]) + "..."
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}

func contentNote(c git.Content) string {
	var notes []string
	if c.Truncated {
		notes = append(notes, fmt.Sprintf("truncated, %d bytes total", c.Size))
	}
	if c.Lossy {
		notes = append(notes, "decoded as windows-1252")
	}
	return strings.Join(notes, "; ")
}
