package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit         key.Binding
	Format       key.Binding
	Next         key.Binding
	Prev         key.Binding
	Edit         key.Binding
	Commit       key.Binding
	AddUser      key.Binding
	AddAssistant key.Binding
	AddSystem    key.Binding
	CycleRole    key.Binding
	RemoveRow    key.Binding
	ClearForm    key.Binding
	Validate     key.Binding
	Submit       key.Binding
	Reload       key.Binding
	Up           key.Binding
	Down         key.Binding
	NextPage     key.Binding
	PrevPage     key.Binding
	MorePerPage  key.Binding
	LessPerPage  key.Binding
	Inspect      key.Binding
	Delete       key.Binding
	ClearAll     key.Binding
	Template     key.Binding
	DownloadJSON key.Binding
	DownloadL    key.Binding
	Yes          key.Binding
	No           key.Binding
	Dismiss      key.Binding
	Help         key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Format:       key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "chat/instruction")),
		Next:         key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:         key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Edit:         key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit field")),
		Commit:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done editing")),
		AddUser:      key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "add user msg")),
		AddAssistant: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add assistant msg")),
		AddSystem:    key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "add system msg")),
		CycleRole:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "cycle role")),
		RemoveRow:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove msg")),
		ClearForm:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear form")),
		Validate:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "validate")),
		Submit:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "add to dataset")),
		Reload:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Up:           key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "prev entry")),
		Down:         key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "next entry")),
		NextPage:     key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("→/n", "next page")),
		PrevPage:     key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("←/p", "prev page")),
		MorePerPage:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more per page")),
		LessPerPage:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "fewer per page")),
		Inspect:      key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "view entry")),
		Delete:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete entry")),
		ClearAll:     key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "clear dataset")),
		Template:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "template")),
		DownloadJSON: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "download json")),
		DownloadL:    key.NewBinding(key.WithKeys("O"), key.WithHelp("O", "download jsonl")),
		Yes:          key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "confirm")),
		No:           key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
		Dismiss:      key.NewBinding(key.WithKeys("enter", "esc", "q"), key.WithHelp("enter", "close")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Validate, k.Submit, k.Format, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Edit, k.Commit, k.Format, k.ClearForm},
		{k.AddUser, k.AddAssistant, k.AddSystem, k.CycleRole, k.RemoveRow, k.Template},
		{k.Validate, k.Submit, k.Reload, k.DownloadJSON, k.DownloadL},
		{k.Up, k.Down, k.NextPage, k.PrevPage, k.MorePerPage, k.LessPerPage},
		{k.Inspect, k.Delete, k.ClearAll, k.Help, k.Quit},
	}
}
