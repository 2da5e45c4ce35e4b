package output

import (
	"encoding/json"
	"fmt"
)

// CIHistoryWriter writes history listings as NDJSON (one JSON object per line) for CI pipelines.
type CIHistoryWriter struct{}

// CISummary is the first line of CI output.
type CISummary struct {
	Type         string `json:"type"`
	TotalCommits int    `json:"totalCommits"`
	Complete     bool   `json:"complete"`
	MergeCount   int    `json:"mergeCount"`
}

// CICommitEntry is one commit line of CI output.
type CICommitEntry struct {
	Type string `json:"type"`
	JSONHistoryCommit
}

// Write outputs a summary line followed by one line per commit.
func (w *CIHistoryWriter) Write(report *HistoryReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Limit)

	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	var merges int
	for _, item := range items {
		if item.Parents > 1 {
			merges++
		}
	}

	encoder := json.NewEncoder(out)
	if err := encoder.Encode(CISummary{
		Type:         "summary",
		TotalCommits: len(items),
		Complete:     report.Complete,
		MergeCount:   merges,
	}); err != nil {
		return fmt.Errorf("failed to encode CI summary: %w", err)
	}
	for _, item := range items {
		if err := encoder.Encode(CICommitEntry{Type: "commit", JSONHistoryCommit: toJSONCommit(item)}); err != nil {
			return fmt.Errorf("failed to encode CI entry: %w", err)
		}
	}
	return nil
}
