package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Tabs       key.Binding
	NextText   key.Binding
	PrevText   key.Binding
	Restart    key.Binding
	Whitespace key.Binding
	Paste      key.Binding
	SelectAll  key.Binding
	Backspace  key.Binding
	Delete     key.Binding
	Enter      key.Binding
	Tab        key.Binding
	Left       key.Binding
	Right      key.Binding
	ShiftLeft  key.Binding
	ShiftRight key.Binding
	Home       key.Binding
	End        key.Binding
	ShiftHome  key.Binding
	ShiftEnd   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Tabs:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "texts")),
		NextText:   key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n/p", "switch text")),
		PrevText:   key.NewBinding(key.WithKeys("ctrl+p")),
		Restart:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "restart")),
		Whitespace: key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "whitespace")),
		Paste:      key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
		SelectAll:  key.NewBinding(key.WithKeys("ctrl+a")),
		Backspace:  key.NewBinding(key.WithKeys("backspace")),
		Delete:     key.NewBinding(key.WithKeys("delete")),
		Enter:      key.NewBinding(key.WithKeys("enter")),
		Tab:        key.NewBinding(key.WithKeys("tab")),
		Left:       key.NewBinding(key.WithKeys("left")),
		Right:      key.NewBinding(key.WithKeys("right")),
		ShiftLeft:  key.NewBinding(key.WithKeys("shift+left")),
		ShiftRight: key.NewBinding(key.WithKeys("shift+right")),
		Home:       key.NewBinding(key.WithKeys("home")),
		End:        key.NewBinding(key.WithKeys("end")),
		ShiftHome:  key.NewBinding(key.WithKeys("shift+home")),
		ShiftEnd:   key.NewBinding(key.WithKeys("shift+end")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tabs, k.NextText, k.Restart, k.Whitespace, k.Paste, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
