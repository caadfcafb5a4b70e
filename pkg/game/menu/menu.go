// Package menu provides the key binding panel: a selectable list of actions,
// an any-key binder for rebinding them and the sensitivity slider.
package menu

// MenuItem represents a single item in a menu.
type MenuItem interface {
	// GetLabel returns the display label for this menu item.
	GetLabel() string
	// IsSelectable returns whether this item can be selected.
	IsSelectable() bool
	// GetHelpText returns optional help text for this item.
	GetHelpText() string
}

// MenuHandler handles menu item selection and activation.
type MenuHandler interface {
	// OnSelect is called when an item is selected (navigated to).
	OnSelect(item MenuItem, index int)
	// OnActivate is called when an item is activated.
	// Returns true if the menu should close, and any help text to display.
	OnActivate(item MenuItem, index int) (shouldClose bool, helpText string)
	// OnExit is called when the menu is exited.
	OnExit()
	// GetTitle returns the menu title.
	GetTitle() string
	// GetInstructions returns the menu instructions.
	GetInstructions(selected MenuItem) string
}

// Menu tracks the selection over a list of items. It is driven by calls
// from action handlers rather than by a blocking loop.
type Menu struct {
	items    []MenuItem
	selected int
	helpText string
	handler  MenuHandler
	closed   bool
}

// NewMenu creates a menu with the first selectable item selected.
func NewMenu(items []MenuItem, handler MenuHandler) *Menu {
	m := &Menu{handler: handler}
	m.SetItems(items)
	return m
}

// SetItems replaces the items. The selection is kept when it still points
// at a selectable item, otherwise it moves to the first selectable one.
func (m *Menu) SetItems(items []MenuItem) {
	m.items = items
	if m.selected < len(items) && items[m.selected].IsSelectable() {
		return
	}
	m.selected = 0
	for i, item := range items {
		if item.IsSelectable() {
			m.selected = i
			break
		}
	}
}

// Items returns the current items.
func (m *Menu) Items() []MenuItem {
	return m.items
}

// Selected returns the selected index.
func (m *Menu) Selected() int {
	return m.selected
}

// SelectedItem returns the selected item, or nil for an empty menu.
func (m *Menu) SelectedItem() MenuItem {
	if m.selected < 0 || m.selected >= len(m.items) {
		return nil
	}
	return m.items[m.selected]
}

// HelpText returns the text left by the last activation.
func (m *Menu) HelpText() string {
	return m.helpText
}

// Closed reports whether the menu was exited or closed by an activation.
func (m *Menu) Closed() bool {
	return m.closed
}

// Up moves the selection to the previous selectable item, wrapping around.
func (m *Menu) Up() {
	for i := m.selected - 1; i >= 0; i-- {
		if m.items[i].IsSelectable() {
			m.selectIndex(i)
			return
		}
	}
	// Wrap to the last selectable item
	for i := len(m.items) - 1; i > m.selected; i-- {
		if m.items[i].IsSelectable() {
			m.selectIndex(i)
			return
		}
	}
}

// Down moves the selection to the next selectable item, wrapping around.
func (m *Menu) Down() {
	for i := m.selected + 1; i < len(m.items); i++ {
		if m.items[i].IsSelectable() {
			m.selectIndex(i)
			return
		}
	}
	for i := 0; i < m.selected; i++ {
		if m.items[i].IsSelectable() {
			m.selectIndex(i)
			return
		}
	}
}

// Activate hands the selected item to the handler and closes the menu when
// the handler asks for it.
func (m *Menu) Activate() {
	item := m.SelectedItem()
	if item == nil || !item.IsSelectable() {
		return
	}
	shouldClose, help := m.handler.OnActivate(item, m.selected)
	m.helpText = help
	if shouldClose {
		m.Exit()
	}
}

// Exit closes the menu. Only the first call reaches the handler.
func (m *Menu) Exit() {
	if m.closed {
		return
	}
	m.closed = true
	m.handler.OnExit()
}

// Instructions returns the handler's instructions for the selection.
func (m *Menu) Instructions() string {
	return m.handler.GetInstructions(m.SelectedItem())
}

func (m *Menu) selectIndex(i int) {
	m.selected = i
	m.helpText = "" // Clear help text when navigating
	m.handler.OnSelect(m.items[i], i)
}
