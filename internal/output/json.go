package output

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/masmgr/histview/internal/git"
)

// JSONHistoryWriter writes history listings as JSON.
type JSONHistoryWriter struct{}

// JSONHistoryReport is the JSON output structure for a history listing.
type JSONHistoryReport struct {
	RepoPath     string              `json:"repo"`
	GeneratedAt  string              `json:"generatedAt"`
	Complete     bool                `json:"complete"`
	TotalCommits int                 `json:"totalCommits"`
	Items        []JSONHistoryCommit `json:"items"`
}

// JSONHistoryCommit is the JSON output structure for one commit.
type JSONHistoryCommit struct {
	Index     int     `json:"index"`
	SHA       string  `json:"sha"`
	When      *string `json:"when"`
	Author    string  `json:"author"`
	Email     string  `json:"email"`
	Message   string  `json:"message"`
	Parents   int     `json:"parents"`
	Available bool    `json:"available"`
}

func toJSONCommit(h HistoryItem) JSONHistoryCommit {
	var when *string
	if !h.When.IsZero() {
		s := h.When.Format(time.RFC3339)
		when = &s
	}
	return JSONHistoryCommit{
		Index:     h.Index,
		SHA:       h.ID.String(),
		When:      when,
		Author:    h.Author,
		Email:     h.Email,
		Message:   h.Summary,
		Parents:   h.Parents,
		Available: h.Available,
	}
}

// Write outputs the history listing as JSON.
func (w *JSONHistoryWriter) Write(report *HistoryReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Limit)
	jsonItems := make([]JSONHistoryCommit, len(items))
	for i, item := range items {
		jsonItems[i] = toJSONCommit(item)
	}

	return writeJSON(JSONHistoryReport{
		RepoPath:     report.RepoPath,
		GeneratedAt:  report.GeneratedAt.Format(time.RFC3339),
		Complete:     report.Complete,
		TotalCommits: len(report.Items),
		Items:        jsonItems,
	}, options)
}

// JSONCommitWriter writes commit reports as JSON.
type JSONCommitWriter struct{}

// JSONCommitReport is the JSON output structure for a commit report.
type JSONCommitReport struct {
	RepoPath string            `json:"repo"`
	Commit   JSONHistoryCommit `json:"commit"`
	Files    []JSONFileEntry   `json:"files"`
	File     *JSONFileContent  `json:"file,omitempty"`
}

// JSONFileEntry is one file of the commit's tree.
type JSONFileEntry struct {
	Path    string `json:"path"`
	Mode    string `json:"mode"`
	Size    int64  `json:"size"`
	Content string `json:"content"`
}

// JSONFileContent is a resolved file.
type JSONFileContent struct {
	Path      string `json:"path"`
	Available bool   `json:"available"`
	Binary    bool   `json:"binary"`
	Truncated bool   `json:"truncated"`
	Lossy     bool   `json:"lossy"`
	Size      int64  `json:"size"`
	Lines     int    `json:"lines"`
	Text      string `json:"text"`
}

// Write outputs the commit report as JSON. Files is null when the tree
// could not be read.
func (w *JSONCommitWriter) Write(report *CommitReport, options OutputOptions) error {
	out := JSONCommitReport{
		RepoPath: report.RepoPath,
		Commit:   toJSONCommit(HistoryItem{Index: report.Index, Header: report.Header}),
	}
	if report.FilesAvailable {
		files := limitTop(report.Files, options.Limit)
		out.Files = make([]JSONFileEntry, len(files))
		for i, f := range files {
			out.Files[i] = toJSONFile(f)
		}
	}
	if v := report.File; v != nil {
		out.File = &JSONFileContent{
			Path:      v.Path,
			Available: v.Available,
			Binary:    v.Content.Binary,
			Truncated: v.Content.Truncated,
			Lossy:     v.Content.Lossy,
			Size:      v.Content.Size,
			Lines:     v.Content.Lines,
			Text:      v.Content.Text,
		}
	}
	return writeJSON(out, options)
}

func toJSONFile(f git.FileEntry) JSONFileEntry {
	return JSONFileEntry{
		Path:    f.Path,
		Mode:    git.ModeLabel(f.Mode),
		Size:    f.Size,
		Content: f.ContentID.String(),
	}
}

func writeJSON(data interface{}, options OutputOptions) error {
	out, file, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
