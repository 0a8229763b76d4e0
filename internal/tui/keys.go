package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Search       key.Binding
	Theme        key.Binding
	ToggleRow    key.Binding
	SelectPage   key.Binding
	EditRole     key.Binding
	DeleteRow    key.Binding
	DeleteChosen key.Binding
	First        key.Binding
	Prev         key.Binding
	Next         key.Binding
	Last         key.Binding
	Up           key.Binding
	Down         key.Binding
	Retry        key.Binding
	Quit         key.Binding

	// search input
	Accept key.Binding
	Cancel key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Theme:        key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		ToggleRow:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "select")),
		SelectPage:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select page")),
		EditRole:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit role")),
		DeleteRow:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		DeleteChosen: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete selected")),
		First:        key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
		Prev:         key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "prev")),
		Next:         key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "next")),
		Last:         key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),
		Up:           key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("j/k", "row")),
		Down:         key.NewBinding(key.WithKeys("j", "down")),
		Retry:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Accept: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
	}
}

// footer returns the bindings to advertise for the current state.
func (m Model) footer() []key.Binding {
	k := m.keys
	if m.searching {
		return []key.Binding{k.Accept, k.Cancel}
	}
	out := []key.Binding{k.Search, k.Up, k.ToggleRow, k.SelectPage, k.EditRole, k.DeleteRow}
	if m.session.ShowDeleteSelected() {
		out = append(out, k.DeleteChosen)
	}
	out = append(out, k.Prev, k.Next, k.Theme)
	if m.retryable() {
		out = append(out, k.Retry)
	}
	return append(out, k.Quit)
}
