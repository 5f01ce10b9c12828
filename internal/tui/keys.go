package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Logout    key.Binding
	Back      key.Binding

	// Wizard
	NextStep   key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	Submit     key.Binding
	AddService key.Binding
	DelService key.Binding
	AddMeasure key.Binding
	DelMeasure key.Binding
	PrevChoice key.Binding
	NextChoice key.Binding

	// Preview
	Export      key.Binding
	Send        key.Binding
	Copy        key.Binding
	EditMessage key.Binding
	ResetMsg    key.Binding
	ToggleView  key.Binding
	NewInvoice  key.Binding

	// Movement
	Up   key.Binding
	Down key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Logout:      key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "log out")),
	Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	NextStep:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "next step")),
	NextField:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	PrevField:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
	Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next/submit")),
	AddService:  key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add service")),
	DelService:  key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "remove service")),
	AddMeasure:  key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "add measurement")),
	DelMeasure:  key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "remove measurement")),
	PrevChoice:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev option")),
	NextChoice:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next option")),
	Export:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "export PDF")),
	Send:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "send on WhatsApp")),
	Copy:        key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy message")),
	EditMessage: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit message")),
	ResetMsg:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset message")),
	ToggleView:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "invoice/message")),
	NewInvoice:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new invoice")),
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
}
