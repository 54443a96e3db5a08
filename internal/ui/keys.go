package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding the storefront reacts to. Bindings that do not
// apply to the current screen are disabled so they neither match nor show up
// in the help line.
type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Add   key.Binding
	Cart  key.Binding
	Close key.Binding
	More  key.Binding
	Less  key.Binding
	Retry key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Add:   key.NewBinding(key.WithKeys("enter", "a"), key.WithHelp("enter/a", "add to cart")),
		Cart:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cart")),
		Close: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close cart")),
		More:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "add one")),
		Less:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "remove one")),
		Retry: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Add, k.More, k.Less, k.Cart, k.Close, k.Retry, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Add, k.More, k.Less},
		{k.Cart, k.Close, k.Retry, k.Quit},
	}
}

type screen int

const (
	screenLoading screen = iota
	screenError
	screenGrid
	screenDrawer
)

// enableFor switches the bindings on for s and off everywhere else.
func (k *keyMap) enableFor(s screen) {
	grid := s == screenGrid
	drawer := s == screenDrawer

	k.Up.SetEnabled(grid || drawer)
	k.Down.SetEnabled(grid || drawer)
	k.Left.SetEnabled(grid)
	k.Right.SetEnabled(grid)
	k.Add.SetEnabled(grid)
	k.Cart.SetEnabled(grid || drawer)
	k.Close.SetEnabled(drawer)
	k.More.SetEnabled(drawer)
	k.Less.SetEnabled(drawer)
	k.Retry.SetEnabled(s == screenError)
	k.Quit.SetEnabled(true)
}
