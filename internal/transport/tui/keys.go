package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Add      key.Binding
	OpenCart key.Binding

	Increment key.Binding
	Decrement key.Binding
	Remove    key.Binding
	Checkout  key.Binding
	CloseCart key.Binding

	Dismiss key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Add: key.NewBinding(
			key.WithKeys("enter", "a"),
			key.WithHelp("enter/a", "add to cart"),
		),
		OpenCart: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "open cart"),
		),
		Increment: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more"),
		),
		Decrement: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "less"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove"),
		),
		Checkout: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "checkout"),
		),
		CloseCart: key.NewBinding(
			key.WithKeys("esc", "c"),
			key.WithHelp("esc", "close cart"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc"),
			key.WithHelp("enter", "ok"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) catalogHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Add, k.OpenCart, k.Quit}
}

func (k keyMap) cartHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Increment, k.Decrement, k.Remove, k.Checkout, k.CloseCart}
}

func (k keyMap) alertHelp() []key.Binding {
	return []key.Binding{k.Dismiss}
}
