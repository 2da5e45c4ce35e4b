package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5/plumbing/filemode"

	"github.com/masmgr/histview/internal/git"
	"github.com/masmgr/histview/internal/snapshot"
)

const (
	shaA = "1111111111111111111111111111111111111111"
	shaB = "2222222222222222222222222222222222222222"
)

func sampleHistory() *HistoryReport {
	when := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return &HistoryReport{
		RepoPath:    "/tmp/repo",
		GeneratedAt: when,
		Complete:    true,
		Items: []HistoryItem{
			{Index: 0, Header: snapshot.Header{ID: shaA, When: when, Author: "Ann", Email: "ann@example.com", Summary: "first | commit", Available: true}},
			{Index: 1, Header: snapshot.Header{ID: shaB, When: when.Add(time.Hour), Author: "not found", Email: "not found", Summary: "merge", Parents: 2, Available: true}},
		},
	}
}

func sampleCommit() *CommitReport {
	return &CommitReport{
		RepoPath:       "/tmp/repo",
		Index:          1,
		Header:         snapshot.Header{ID: shaB, Author: "Ann", Email: "ann@example.com", Summary: "add files", Available: true},
		FilesAvailable: true,
		Files: []git.FileEntry{
			{Path: "a.txt", ContentID: "aaaa", Mode: filemode.Regular, Size: 12},
			{Path: "run.sh", ContentID: "bbbb", Mode: filemode.Executable, Size: 2048},
		},
	}
}

func TestJSONHistoryWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONHistoryWriter{}).Write(sampleHistory(), OutputOptions{Writer: &buf}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var got JSONHistoryReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if got.TotalCommits != 2 || len(got.Items) != 2 {
		t.Fatalf("TotalCommits = %d, items = %d", got.TotalCommits, len(got.Items))
	}
	if got.Items[1].SHA != shaB || got.Items[1].Parents != 2 || got.Items[1].Index != 1 {
		t.Errorf("second item = %+v", got.Items[1])
	}
	if got.Items[0].When == nil || *got.Items[0].When != "2024-01-02T03:04:05Z" {
		t.Errorf("first item when = %v", got.Items[0].When)
	}
}

func TestJSONHistoryWriter_Limit(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONHistoryWriter{}).Write(sampleHistory(), OutputOptions{Writer: &buf, Limit: 1}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var got JSONHistoryReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got.Items) != 1 || got.TotalCommits != 2 {
		t.Errorf("items = %d, total = %d; want 1 and 2", len(got.Items), got.TotalCommits)
	}
}

func TestJSONCommitWriter_UnavailableTree(t *testing.T) {
	report := sampleCommit()
	report.FilesAvailable = false
	report.Header.When = time.Time{}

	var buf bytes.Buffer
	if err := (&JSONCommitWriter{}).Write(report, OutputOptions{Writer: &buf}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if string(raw["files"]) != "null" {
		t.Errorf("files = %s, want null", raw["files"])
	}
	if _, ok := raw["file"]; ok {
		t.Error("file key present without file content")
	}
}

func TestJSONCommitWriter_File(t *testing.T) {
	report := sampleCommit()
	report.File = &FileView{Path: "a.txt", Available: true, Content: git.Content{Text: "hi\n", Size: 3, Lines: 1}}

	var buf bytes.Buffer
	if err := (&JSONCommitWriter{}).Write(report, OutputOptions{Writer: &buf}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var got JSONCommitReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.File == nil || got.File.Text != "hi\n" || got.File.Lines != 1 {
		t.Errorf("file = %+v", got.File)
	}
	if len(got.Files) != 2 || got.Files[1].Mode != "exec" {
		t.Errorf("files = %+v", got.Files)
	}
}

func TestCSVHistoryWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&CSVHistoryWriter{}).Write(sampleHistory(), OutputOptions{Writer: &buf}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[1][1] != shaA || rows[1][6] != "first | commit" {
		t.Errorf("row 1 = %v", rows[1])
	}
}

func TestCSVCommitWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&CSVCommitWriter{}).Write(sampleCommit(), OutputOptions{Writer: &buf}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(rows) != 3 || rows[2][1] != "run.sh" || rows[2][2] != "exec" {
		t.Errorf("rows = %v", rows)
	}
}

func TestMarkdownHistoryWriter(t *testing.T) {
	report := sampleHistory()
	report.Complete = false

	var buf bytes.Buffer
	if err := (&MarkdownHistoryWriter{}).Write(report, OutputOptions{Writer: &buf}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"# Commit History", "partial", "`11111111`", `first \| commit`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMarkdownCommitWriter_FileFence(t *testing.T) {
	report := sampleCommit()
	report.File = &FileView{Path: "README.md", Available: true, Content: git.Content{Text: "```go\nx\n```"}}

	var buf bytes.Buffer
	if err := (&MarkdownCommitWriter{}).Write(report, OutputOptions{Writer: &buf}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "````\n```go") {
		t.Errorf("fence not widened:\n%s", buf.String())
	}
}

func TestConsoleHistoryWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&ConsoleHistoryWriter{}).Write(sampleHistory(), OutputOptions{Writer: &buf}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Repository: /tmp/repo", "Commits shown: 2", "Ann", "first | commit"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConsoleCommitWriter(t *testing.T) {
	t.Run("Tree", func(t *testing.T) {
		var buf bytes.Buffer
		if err := (&ConsoleCommitWriter{}).Write(sampleCommit(), OutputOptions{Writer: &buf}); err != nil {
			t.Fatalf("Write: %v", err)
		}
		out := buf.String()
		for _, want := range []string{"commit " + shaB, "Ann <ann@example.com>", "add files", "Files: 2", "run.sh", "2.0K"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("File", func(t *testing.T) {
		report := sampleCommit()
		report.File = &FileView{Path: "a.txt", Available: true, Content: git.Content{Text: "payload"}}
		var buf bytes.Buffer
		if err := (&ConsoleCommitWriter{}).Write(report, OutputOptions{Writer: &buf}); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if buf.String() != "payload" {
			t.Errorf("output = %q, want only the file text", buf.String())
		}
	})

	t.Run("Unavailable", func(t *testing.T) {
		report := sampleCommit()
		report.FilesAvailable = false
		var buf bytes.Buffer
		if err := (&ConsoleCommitWriter{}).Write(report, OutputOptions{Writer: &buf}); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if !strings.Contains(buf.String(), "File tree unavailable.") {
			t.Errorf("output = %q", buf.String())
		}
	})
}

func TestCIHistoryWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&CIHistoryWriter{}).Write(sampleHistory(), OutputOptions{Writer: &buf}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	var summary CISummary
	if err := json.Unmarshal([]byte(lines[0]), &summary); err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Type != "summary" || summary.TotalCommits != 2 || summary.MergeCount != 1 {
		t.Errorf("summary = %+v", summary)
	}
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[2]), &entry); err != nil {
		t.Fatalf("entry: %v", err)
	}
	if entry["type"] != "commit" || entry["sha"] != shaB {
		t.Errorf("entry = %v", entry)
	}
}

func TestWriteToOutputPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := (&JSONHistoryWriter{}).Write(sampleHistory(), OutputOptions{OutputPath: path}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !json.Valid(data) {
		t.Errorf("file is not valid JSON: %s", data)
	}
}
