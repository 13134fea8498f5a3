package tui

import (
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// updateBrowser handles a key press on the file list screen.
func (m *Model) updateBrowser(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true

	case key.Matches(msg, m.keys.Reload):
		m.reload()

	case key.Matches(msg, m.keys.Search):
		m.cmdline.Activate("/")

	case key.Matches(msg, m.keys.Command):
		m.cmdline.Activate(":")

	case key.Matches(msg, m.keys.Mark):
		if name, ok := m.list.SelectedItem(); ok {
			m.list.ToggleMark(name)
			m.list.MoveDown(1)
			m.refreshStatus(false)
		}

	case key.Matches(msg, m.keys.Confirm):
		targets, batch, ok := m.list.Confirm()
		if ok {
			m.openEdit(targets, batch)
		}

	case key.Matches(msg, m.keys.Cancel):
		// Escape first reverts an applied search, then clears marks.
		if m.list.Cancel() {
			m.refreshStatus(false)
		}

	case key.Matches(msg, m.keys.Yank):
		m.yankPath()

	case key.Matches(msg, m.keys.Up):
		m.list.MoveUp(1)
		m.refreshStatus(false)

	case key.Matches(msg, m.keys.Down):
		m.list.MoveDown(1)
		m.refreshStatus(false)

	case key.Matches(msg, m.keys.Top):
		m.list.MoveToTop()
		m.refreshStatus(false)

	case key.Matches(msg, m.keys.Bottom):
		m.list.MoveToBottom()
		m.refreshStatus(false)

	case key.Matches(msg, m.keys.PageUp):
		m.list.PageUp()
		m.refreshStatus(false)

	case key.Matches(msg, m.keys.PageDown):
		m.list.PageDown()
		m.refreshStatus(false)
	}
}

// yankPath copies the full path of the file under the cursor to the system
// clipboard.
func (m *Model) yankPath() {
	name, ok := m.list.SelectedItem()
	if !ok {
		return
	}

	path := m.lib.Path(name)
	if err := clipboard.WriteAll(path); err != nil {
		slog.Debug("copying to clipboard", slog.String("error", err.Error()))
		m.cmdline.Notify("Error", "Could not access the clipboard")

		return
	}

	m.cmdline.Notify("Info", "Copied "+path)
}
