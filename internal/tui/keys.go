package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the progress display.
type KeyMap struct {
	Interrupt key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("ctrl+c", "cancel"),
		),
	}
}

// HelpText returns the one-line help shown under the progress line.
func (k KeyMap) HelpText() string {
	h := k.Interrupt.Help()
	return h.Key + " " + h.Desc
}
