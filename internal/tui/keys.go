package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	First   key.Binding
	Last    key.Binding
	Jump    key.Binding
	Search  key.Binding
	Again   key.Binding
	Reverse key.Binding
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Back    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Next:    key.NewBinding(key.WithKeys("n", "right", "l"), key.WithHelp("n/→", "next commit")),
		Prev:    key.NewBinding(key.WithKeys("p", "left", "h"), key.WithHelp("p/←", "previous commit")),
		First:   key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "oldest")),
		Last:    key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "newest loaded")),
		Jump:    key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "jump to index")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search summaries")),
		Again:   key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "repeat search")),
		Reverse: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "search backwards")),
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "select file")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "select file")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "show file")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) helpLines() []string {
	rows := [][2]key.Binding{
		{k.Next, k.Prev},
		{k.First, k.Last},
		{k.Jump, k.Search},
		{k.Again, k.Reverse},
		{k.Open, k.Help},
		{k.Down, k.Up},
		{k.Back, k.Quit},
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, helpCell(r[0])+"│  "+helpCell(r[1]))
	}
	return lines
}

func helpCell(b key.Binding) string {
	h := b.Help()
	return padRight("  "+padRight(h.Key, 8)+h.Desc, 30)
}
