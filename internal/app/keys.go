package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Post      key.Binding
	Edit      key.Binding
	Patch     key.Binding
	Delete    key.Binding
	DeleteAll key.Binding
	Copy      key.Binding
	Refresh   key.Binding
	Filter    key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Post:      key.NewBinding(key.WithKeys("n", "a"), key.WithHelp("n", "post note")),
		Edit:      key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Patch:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "patch")),
		Delete:    key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		DeleteAll: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete all")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// helpLine lists the bindings that apply right now. Posting needs a loaded
// collection, note actions a selected note and delete all something to
// delete.
func (k keyMap) helpLine(loaded, hasSelection, hasNotes bool) string {
	var bindings []key.Binding
	if loaded {
		bindings = append(bindings, k.Post)
	}
	if hasSelection {
		bindings = append(bindings, k.Edit, k.Delete, k.Copy)
	}
	if hasNotes {
		bindings = append(bindings, k.DeleteAll, k.Filter)
	}
	bindings = append(bindings, k.Refresh, k.Quit)
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return strings.Join(parts, "  ")
}
