package ui

import "github.com/charmbracelet/bubbles/key"

// listKeys are active while the cursor is on the task rows.
type listKeys struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Edit     key.Binding
	Delete   key.Binding
	ClearAll key.Binding
	Form     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newListKeys() listKeys {
	return listKeys{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Edit:     key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		ClearAll: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all")),
		Form:     key.NewBinding(key.WithKeys("tab", "n"), key.WithHelp("n", "new task")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k listKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Edit, k.Delete, k.Form, k.Help, k.Quit}
}

func (k listKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Edit, k.Delete, k.ClearAll},
		{k.Form, k.Help, k.Quit},
	}
}

// formKeys are active while a text field has focus.
type formKeys struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func newFormKeys(submitHelp string) formKeys {
	return formKeys{
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", submitHelp)),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k formKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Submit, k.Back, k.Quit}
}

func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev}, {k.Submit, k.Back, k.Quit}}
}

// dialogKeys drive the confirmation dialogs.
type dialogKeys struct {
	Confirm key.Binding
	Cancel  key.Binding
	Switch  key.Binding
	Press   key.Binding
}

func newDialogKeys() dialogKeys {
	return dialogKeys{
		Confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n/esc", "cancel")),
		Switch:  key.NewBinding(key.WithKeys("left", "right", "tab", "h", "l"), key.WithHelp("←/→", "switch")),
		Press:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	}
}

// notFoundKeys are active while the edit screen shows a missing task.
type notFoundKeys struct {
	Back key.Binding
	Quit key.Binding
}

func newNotFoundKeys() notFoundKeys {
	return notFoundKeys{
		Back: key.NewBinding(key.WithKeys("enter", "esc", "b"), key.WithHelp("enter/esc", "go back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k notFoundKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Quit}
}

func (k notFoundKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
