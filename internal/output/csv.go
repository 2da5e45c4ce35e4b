package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/masmgr/histview/internal/git"
)

// CSVHistoryWriter writes history listings as CSV.
type CSVHistoryWriter struct{}

// Write outputs one row per commit.
func (w *CSVHistoryWriter) Write(report *HistoryReport, options OutputOptions) error {
	writer, file, err := createCSVWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	if err := writer.Write([]string{"Index", "SHA", "When", "Author", "Email", "Parents", "Message"}); err != nil {
		return err
	}
	for _, item := range limitTop(report.Items, options.Limit) {
		row := []string{
			strconv.Itoa(item.Index),
			item.ID.String(),
			formatWhen(item.When, reportDateTimeLayout),
			item.Author,
			item.Email,
			strconv.Itoa(item.Parents),
			item.Summary,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// CSVCommitWriter writes a commit's file tree as CSV.
type CSVCommitWriter struct{}

// Write outputs one row per file. A report carrying a file writes a single
// row describing it.
func (w *CSVCommitWriter) Write(report *CommitReport, options OutputOptions) error {
	writer, file, err := createCSVWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	if v := report.File; v != nil {
		if err := writer.Write([]string{"SHA", "Path", "Size", "Lines", "Binary", "Truncated"}); err != nil {
			return err
		}
		row := []string{
			report.Header.ID.String(),
			v.Path,
			fmt.Sprintf("%d", v.Content.Size),
			strconv.Itoa(v.Content.Lines),
			strconv.FormatBool(v.Content.Binary),
			strconv.FormatBool(v.Content.Truncated),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
		writer.Flush()
		return writer.Error()
	}

	if err := writer.Write([]string{"SHA", "Path", "Mode", "Size", "Content"}); err != nil {
		return err
	}
	for _, f := range limitTop(report.Files, options.Limit) {
		row := []string{
			report.Header.ID.String(),
			f.Path,
			git.ModeLabel(f.Mode),
			fmt.Sprintf("%d", f.Size),
			f.ContentID.String(),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func createCSVWriter(options OutputOptions) (*csv.Writer, *os.File, error) {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return nil, nil, err
	}
	return csv.NewWriter(out), file, nil
}
