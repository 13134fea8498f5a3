package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/GokulSoumya/clid/internal/config"
)

// BrowserKeyMap holds the keybindings of the file browser screen. Every
// binding starts from the configured key for its action; vim_mode layers
// the vim aliases on top.
type BrowserKeyMap struct {
	Quit     key.Binding
	Reload   key.Binding
	Search   key.Binding
	Command  key.Binding
	Mark     key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
	Yank     key.Binding
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

// EditKeyMap holds the form-level keybindings of the edit screen. Keys
// inside a text field are translated by the field itself; these are the
// bindings the form handles around it.
type EditKeyMap struct {
	Save      key.Binding
	Cancel    key.Binding
	FieldPrev key.Binding
	FieldNext key.Binding
	Confirm   key.Binding
}

// NewBrowserKeys builds the browser keymap from the configured bindings.
func NewBrowserKeys(cfg *config.Config) BrowserKeyMap {
	vim := cfg.OptionEnabled("vim_mode")

	return BrowserKeyMap{
		Quit: key.NewBinding(
			key.WithKeys(cfg.Key("quit")),
			key.WithHelp(cfg.Key("quit"), "quit"),
		),
		Reload: key.NewBinding(
			key.WithKeys(cfg.Key("reload")),
			key.WithHelp(cfg.Key("reload"), "reload"),
		),
		Search: key.NewBinding(
			key.WithKeys(cfg.Key("search")),
			key.WithHelp(cfg.Key("search"), "search"),
		),
		Command: key.NewBinding(
			key.WithKeys(cfg.Key("command")),
			key.WithHelp(cfg.Key("command"), "command"),
		),
		Mark: key.NewBinding(
			key.WithKeys(cfg.Key("mark")),
			key.WithHelp("space", "mark"),
		),
		Confirm: key.NewBinding(
			key.WithKeys(cfg.Key("confirm")),
			key.WithHelp(cfg.Key("confirm"), "edit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys(cfg.Key("cancel")),
			key.WithHelp(cfg.Key("cancel"), "cancel"),
		),
		Yank: key.NewBinding(
			key.WithKeys(cfg.Key("yank")),
			key.WithHelp(cfg.Key("yank"), "yank path"),
		),
		Up:       motionBinding(cfg.Key("up"), vim, "k", "up"),
		Down:     motionBinding(cfg.Key("down"), vim, "j", "down"),
		Top:      motionBinding(cfg.Key("top"), vim, "g", "top"),
		Bottom:   motionBinding(cfg.Key("bottom"), vim, "G", "bottom"),
		PageUp:   motionBinding(cfg.Key("page_up"), vim, "ctrl+b", "page up"),
		PageDown: motionBinding(cfg.Key("page_down"), vim, "ctrl+f", "page down"),
	}
}

// NewEditKeys builds the edit-form keymap from the configured bindings.
func NewEditKeys(cfg *config.Config) EditKeyMap {
	return EditKeyMap{
		Save: key.NewBinding(
			key.WithKeys(cfg.Key("save_tags")),
			key.WithHelp(cfg.Key("save_tags"), "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys(cfg.Key("cancel_tags")),
			key.WithHelp(cfg.Key("cancel_tags"), "cancel"),
		),
		FieldPrev: key.NewBinding(
			key.WithKeys(cfg.Key("field_prev")),
			key.WithHelp(cfg.Key("field_prev"), "previous field"),
		),
		FieldNext: key.NewBinding(
			key.WithKeys(cfg.Key("field_next")),
			key.WithHelp(cfg.Key("field_next"), "next field"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
	}
}

func motionBinding(configured string, vim bool, vimKey, help string) key.Binding {
	keys := []string{configured}
	if vim && vimKey != configured {
		keys = append(keys, vimKey)
	}

	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, help))
}
