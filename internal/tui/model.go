// Package tui is the interactive history browser.
package tui

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/masmgr/histview/internal/cursor"
	"github.com/masmgr/histview/internal/git"
	"github.com/masmgr/histview/internal/history"
	"github.com/masmgr/histview/internal/search"
	"github.com/masmgr/histview/internal/snapshot"
)

type mode int

const (
	modeBrowse mode = iota
	modeContent
	modeJump
	modeSearch
)

const whenLayout = "2006-01-02 15:04:05 -0700"

// Options configures the browser.
type Options struct {
	RepoPath string
	// Poll is how often the view re-reads the history while it loads.
	Poll time.Duration
	// Matcher is used when the search prompt is submitted empty.
	Matcher *search.Matcher
	Logger  *log.Logger
}

// Deps are the parts of a session the browser reads from.
type Deps struct {
	History  *history.Buffer
	Cursor   *cursor.Cursor
	Resolver *snapshot.Resolver
	Meta     search.MetadataSource
}

type tickMsg time.Time

// Model represents the browser state
type Model struct {
	deps   Deps
	opts   Options
	styles *Styles
	keys   keyMap

	width  int
	height int
	mode   mode

	shown    git.CommitID
	header   snapshot.Header
	files    []git.FileEntry
	filesOK  bool
	selected int
	offset   int

	input    textinput.Model
	content  viewport.Model
	openPath string
	matcher  *search.Matcher

	loaded   int
	finished bool
	loadErr  error
	status   string
	showHelp bool
}

// NewModel creates a browser over deps, positioned at the cursor.
func NewModel(deps Deps, opts Options) Model {
	if opts.Poll <= 0 {
		opts.Poll = 500 * time.Millisecond
	}
	if opts.Logger != nil {
		logger := opts.Logger
		deps.Cursor.OnStep(func(from, to int) {
			logger.Printf("cursor %d -> %d", from, to)
		})
	}
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 40

	m := Model{
		deps:    deps,
		opts:    opts,
		styles:  createStyles(),
		keys:    defaultKeys(),
		width:   80,
		height:  24,
		input:   ti,
		content: viewport.New(80, 20),
		matcher: opts.Matcher,
	}
	m.refresh()
	return m
}

// Init starts the reload ticker.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.Poll, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.refresh()
		if m.finished {
			return m, nil
		}
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.content.Width = msg.Width
		m.content.Height = max(1, msg.Height-2)
		m.clampOffset()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeJump, modeSearch:
			return m.handlePromptKey(msg)
		case modeContent:
			return m.handleContentKey(msg)
		}
		return m.handleBrowseKey(msg)
	}
	return m, nil
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	cur := m.deps.Cursor
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Next):
		if !cur.Advance() {
			m.status = m.endStatus()
		}
	case key.Matches(msg, m.keys.Prev):
		if !cur.Retreat() {
			m.status = "Already at the oldest commit"
		}
	case key.Matches(msg, m.keys.First):
		cur.First()
	case key.Matches(msg, m.keys.Last):
		cur.Last()
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.files)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Open):
		m.openSelected()
	case key.Matches(msg, m.keys.Again):
		m.searchNext()
	case key.Matches(msg, m.keys.Reverse):
		m.searchPrev()
	case key.Matches(msg, m.keys.Jump):
		return m.openPrompt(modeJump, "index: ", fmt.Sprintf("0..%d", max(0, cur.Len()-1)))
	case key.Matches(msg, m.keys.Search):
		return m.openPrompt(modeSearch, "/", "summary regex")
	}
	m.refresh()
	m.clampOffset()
	return m, nil
}

func (m Model) handleContentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q", "backspace":
		m.mode = modeBrowse
		m.openPath = ""
		return m, nil
	}
	var cmd tea.Cmd
	m.content, cmd = m.content.Update(msg)
	return m, cmd
}

func (m Model) openPrompt(md mode, prompt, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.input.Prompt = prompt
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	return m, m.input.Focus()
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.closePrompt()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		md := m.mode
		m.closePrompt()
		if md == modeJump {
			m.jump(value)
		} else {
			m.search(value)
		}
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.mode = modeBrowse
	m.input.Blur()
}

func (m *Model) jump(value string) {
	n, err := strconv.Atoi(value)
	if err != nil {
		m.status = fmt.Sprintf("Not an index: %q", value)
		return
	}
	cur := m.deps.Cursor
	if n < 0 {
		n += cur.Len()
	}
	cur.JumpTo(n)
	if cur.Index() != n {
		m.status = fmt.Sprintf("Index %s is not loaded; stopped at %d", value, cur.Index())
	}
}

func (m *Model) search(pattern string) {
	if pattern != "" {
		matcher, err := search.NewMatcher([]string{pattern})
		if err != nil {
			m.status = fmt.Sprintf("Invalid pattern: %v", err)
			return
		}
		m.matcher = matcher
	}
	m.searchNext()
}

func (m *Model) searchNext() {
	if m.matcher.Empty() {
		m.status = "No search pattern"
		return
	}
	cur := m.deps.Cursor
	i, ok := m.matcher.FindNext(m.deps.History, m.deps.Meta, cur.Index())
	if !ok {
		m.status = "No later commit matches"
		return
	}
	cur.JumpTo(i)
}

func (m *Model) searchPrev() {
	if m.matcher.Empty() {
		m.status = "No search pattern"
		return
	}
	cur := m.deps.Cursor
	i, ok := m.matcher.FindPrev(m.deps.History, m.deps.Meta, cur.Index())
	if !ok {
		m.status = "No earlier commit matches"
		return
	}
	cur.JumpTo(i)
}

func (m *Model) openSelected() {
	if !m.filesOK || len(m.files) == 0 {
		m.status = "No file to show"
		return
	}
	f := m.files[m.selected]
	m.openPath = f.Path
	m.content.SetContent(m.deps.Resolver.Text(f.ContentID))
	m.content.GotoTop()
	m.mode = modeContent
}

// refresh re-reads the load state and, if the cursor moved, the commit under it.
func (m *Model) refresh() {
	h := m.deps.History
	m.loaded = h.Len()
	m.finished = h.Finished()
	m.loadErr = h.Err()

	id, ok := m.deps.Cursor.Current()
	if !ok || id == m.shown {
		return
	}
	m.shown = id
	m.header = m.deps.Resolver.Describe(id)
	m.files, m.filesOK = m.deps.Resolver.Files(id)
	m.selected = 0
	m.offset = 0
}

func (m Model) endStatus() string {
	if m.finished {
		return "Already at the newest commit"
	}
	return "Newer commits are still loading"
}

func (m *Model) clampOffset() {
	rows := m.fileRows()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+rows {
		m.offset = m.selected - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// fileRows is the number of file lines that fit below the header.
func (m Model) fileRows() int {
	used := 10
	if m.showHelp {
		used += len(m.keys.helpLines()) + 2
	}
	return max(1, m.height-used)
}

// View renders the UI
func (m Model) View() string {
	if m.mode == modeContent {
		title := m.styles.title.Width(m.width).Render(fmt.Sprintf("%s @ %s", m.openPath, m.shown.Short()))
		status := m.styles.statusBar.Width(m.width).Render(
			fmt.Sprintf("%3.f%% | j/k scroll | esc back | ctrl+c quit", m.content.ScrollPercent()*100))
		return lipgloss.JoinVertical(lipgloss.Left, title, m.content.View(), status)
	}

	sections := []string{
		m.styles.title.Width(m.width).Render("histview: " + m.opts.RepoPath),
		m.renderHeader(),
		m.renderNav(),
		m.renderFiles(),
	}
	if m.showHelp {
		sections = append(sections, m.styles.help.Render(strings.Join(m.keys.helpLines(), "\n")))
	}
	sections = append(sections, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	if m.shown == "" {
		return m.styles.muted.Render("No commit loaded yet")
	}
	h := m.header
	when := m.styles.muted.Render("unknown")
	if !h.When.IsZero() {
		when = h.When.Format(whenLayout)
	}
	lines := []string{
		m.styles.label.Render("Current Commit: ") + h.ID.String(),
		m.styles.label.Render("Committed on ") + when,
		m.styles.label.Render("By ") + h.Author + m.styles.label.Render(" at ") + h.Email,
		m.styles.summary.Render(h.Summary),
	}
	if !h.Available {
		lines = append(lines, m.styles.warning.Render("Commit details unavailable"))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderNav() string {
	cur := m.deps.Cursor
	prev := m.styles.disabled.Render("[p] Previous")
	if cur.CanRetreat() {
		prev = m.styles.enabled.Render("[p] Previous")
	}
	next := m.styles.disabled.Render("[n] Next")
	if cur.CanAdvance() {
		next = m.styles.enabled.Render("[n] Next")
	}
	return fmt.Sprintf("%s  %s  %s", prev, next, m.styles.muted.Render(m.position()))
}

func (m Model) position() string {
	pos := fmt.Sprintf("index %d, %d loaded", m.deps.Cursor.Index(), m.loaded)
	switch {
	case m.loadErr != nil:
		return pos + " (load stopped: " + m.loadErr.Error() + ")"
	case !m.finished:
		return pos + " (loading...)"
	}
	return pos
}

func (m Model) renderFiles() string {
	if !m.filesOK {
		return m.styles.warning.Render(m.deps.Resolver.Markers().Unavailable)
	}
	if len(m.files) == 0 {
		return m.styles.muted.Render("No files")
	}
	rows := m.fileRows()
	start := m.offset
	if m.selected >= start+rows {
		start = m.selected - rows + 1
	}
	if m.selected < start {
		start = m.selected
	}
	end := min(start+rows, len(m.files))

	lines := make([]string, 0, end-start+1)
	lines = append(lines, m.styles.muted.Render(fmt.Sprintf("Files (%d)", len(m.files))))
	for i := start; i < end; i++ {
		f := m.files[i]
		line := fmt.Sprintf("%-6s %s", git.ModeLabel(f.Mode), f.Path)
		if i == m.selected {
			lines = append(lines, m.styles.selected.Render(line))
		} else {
			lines = append(lines, m.styles.file.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatusBar() string {
	if m.mode == modeJump || m.mode == modeSearch {
		return m.input.View()
	}
	text := m.status
	if text == "" {
		text = "n/p step | g/G ends | : jump | / search | N/P again | enter open | ? help | q quit"
	}
	return m.styles.statusBar.Width(m.width).Render(text)
}

func padRight(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
