// Package tui implements clid's terminal interface: a browsable file list
// with a tag preview line, a vim-style command line, and the tag edit form.
package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/GokulSoumya/clid/internal/config"
	"github.com/GokulSoumya/clid/internal/library"
	"github.com/GokulSoumya/clid/internal/state"
	"github.com/GokulSoumya/clid/internal/tags"
	"github.com/GokulSoumya/clid/internal/tui/components"
)

// Screen represents the current screen being displayed in the TUI.
type Screen int

// TUI screen types.
const (
	// ScreenBrowser is the main file list screen
	ScreenBrowser Screen = iota
	// ScreenEdit is the tag edit form screen
	ScreenEdit
)

// chromeLines is the vertical space around the list: title, blank line,
// status line and command line.
const chromeLines = 4

// historyLimit caps how much persisted command history is loaded.
const historyLimit = 100

// reloadMsg asks the model to rescan the music directory. The watcher emits
// it when the directory changes externally.
type reloadMsg struct{}

// Deps are the collaborators a Model needs. Everything is injected so tests
// can substitute fakes.
type Deps struct {
	Config  *config.Config
	Store   *state.Store
	Library *library.Library
	Preview *library.Preview
	Codec   tags.Codec
	// Watcher is optional; without it the directory is only rescanned on
	// the reload key.
	Watcher *library.Watcher
	// FirstRun shows the getting-started notification once.
	FirstRun bool
}

// Model is the bubbletea model for the whole application.
type Model struct {
	cfg     *config.Config
	store   *state.Store
	lib     *library.Library
	preview *library.Preview
	codec   tags.Codec
	watcher *library.Watcher

	keys     BrowserKeyMap
	editKeys EditKeyMap

	screen  Screen
	list    *components.List
	cmdline *components.CommandLine
	session *editSession

	// status is the rendered preview line for the file under the cursor.
	status      string
	suggestions []string

	width    int
	height   int
	quitting bool
}

// New assembles the model from its dependencies and registers the command
// vocabulary.
func New(deps Deps) (*Model, error) {
	m := &Model{
		cfg:      deps.Config,
		store:    deps.Store,
		lib:      deps.Library,
		preview:  deps.Preview,
		codec:    deps.Codec,
		watcher:  deps.Watcher,
		keys:     NewBrowserKeys(deps.Config),
		editKeys: NewEditKeys(deps.Config),
		list:     components.NewList(20),
		cmdline:  components.NewCommandLine(),
	}

	if m.cfg.OptionEnabled("fuzzy_search") {
		m.list.Match = fuzzyMatch
	}

	if err := m.registerCommands(); err != nil {
		return nil, err
	}

	if m.store != nil {
		history, err := m.store.RecentCommands(historyLimit)
		if err != nil {
			slog.Warn("loading command history", slog.String("error", err.Error()))
		} else {
			m.cmdline.SetHistory(history)
		}

		m.cmdline.SetPersist(func(cmd string) {
			if err := m.store.AppendCommand(cmd); err != nil {
				slog.Warn("persisting command", slog.String("error", err.Error()))
			}
		})
	}

	m.list.SetItems(m.lib.Files())
	m.refreshStatus(false)

	if deps.FirstRun {
		path, err := config.Path()
		if err != nil {
			path = "~/.config/clid/config.yaml"
		}
		m.cmdline.Notify("Welcome", "Point clid at your music with music_dir in "+path)
	}

	return m, nil
}

func (m *Model) registerCommands() error {
	registrations := []struct {
		pattern string
		live    bool
		handler func(cmd string)
	}{
		// Live so the list narrows as the query is typed.
		{`^/`, true, func(cmd string) { m.runSearch(strings.TrimPrefix(cmd, "/")) }},
		{`^:reload$`, false, func(string) { m.reload() }},
		{`^:set\s+(\w+)\s+(on|off)$`, false, m.runSet},
		{`^:q(uit)?$`, false, func(string) { m.quitting = true }},
	}

	for _, r := range registrations {
		if err := m.cmdline.Register(r.pattern, r.live, r.handler); err != nil {
			return fmt.Errorf("registering commands: %w", err)
		}
	}

	return nil
}

// Init starts the watcher listener.
func (m *Model) Init() tea.Cmd {
	return m.listenWatcher()
}

// Update is the main message loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetViewportHeight(max(msg.Height-chromeLines, 1))

		return m, nil

	case reloadMsg:
		m.reload()

		return m, m.listenWatcher()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

		if m.cmdline.Active() {
			return m, m.updateCommandLine(msg)
		}

		if m.cmdline.NotificationActive() {
			// The confirm key dismisses a pending notification; while it
			// occupies the command line, search and command entry stay
			// locked but navigation keeps working.
			if msg.String() == "enter" {
				m.cmdline.DismissNotification()
				return m, nil
			}
			if m.screen == ScreenBrowser &&
				(key.Matches(msg, m.keys.Search) || key.Matches(msg, m.keys.Command)) {
				return m, nil
			}
		}

		switch m.screen {
		case ScreenBrowser:
			m.updateBrowser(msg)
		case ScreenEdit:
			m.updateEdit(msg)
		}

		if m.quitting {
			return m, tea.Quit
		}

		return m, nil
	}

	return m, nil
}

func (m *Model) updateCommandLine(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.cmdline.Submit()
		if m.quitting {
			return tea.Quit
		}

		return nil
	case "esc":
		// Abandoning a live search restores the unfiltered list.
		if strings.HasPrefix(m.cmdline.Value(), "/") && m.list.SearchActive() {
			m.list.RevertSearch()
			m.refreshStatus(false)
		}
		m.cmdline.Deactivate()

		return nil
	}

	return m.cmdline.Update(msg)
}

// View renders the current screen with the command line underneath.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case ScreenEdit:
		return m.viewEdit()
	default:
		return m.viewBrowser()
	}
}

func (m *Model) listenWatcher() tea.Cmd {
	if m.watcher == nil {
		return nil
	}

	return func() tea.Msg {
		<-m.watcher.Events
		return reloadMsg{}
	}
}

// reload rescans the music directory and refreshes the listing. Marks and
// the preview cache survive; removed files simply disappear.
func (m *Model) reload() {
	if err := m.lib.Load(); err != nil {
		m.cmdline.Notify("Error", err.Error())
		return
	}

	m.list.SetItems(m.lib.Files())
	m.refreshStatus(false)
}

// runSearch narrows the listing to tracks matching query. An empty query
// restores the full list.
func (m *Model) runSearch(query string) {
	if query == "" {
		m.list.RevertSearch()
	} else {
		m.list.ApplySearch(query)
	}

	m.refreshStatus(false)
}

func (m *Model) runSet(cmd string) {
	fields := strings.Fields(cmd)
	// The pattern guarantees the ":set <name> <on|off>" shape.
	name, value := fields[1], fields[2] == "on"

	if !m.cfg.SetOption(name, value) {
		m.cmdline.Notify("Error", "Unknown option: "+name)
		return
	}

	if name == "fuzzy_search" {
		if value {
			m.list.Match = fuzzyMatch
		} else {
			m.list.Match = components.SubstringMatch
		}
	}

	m.cmdline.Notify("Info", fmt.Sprintf("%s is now %s", name, fields[2]))
}

// refreshStatus re-renders the preview line for the file under the cursor.
// force bypasses the preview cache after a tag write.
func (m *Model) refreshStatus(force bool) {
	name, ok := m.list.SelectedItem()
	if !ok {
		m.status = ""
		return
	}

	line, err := m.preview.Line(m.lib.Path(name), force)
	if err != nil {
		slog.Debug("rendering preview", slog.String("file", name), slog.String("error", err.Error()))
		m.status = ""

		return
	}

	m.status = line
}

// fuzzyMatch ranks items by fuzzy match quality instead of filtering by
// substring. Enabled with the fuzzy_search option.
func fuzzyMatch(query string, items []string) []string {
	matches := fuzzy.Find(query, items)

	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.Str)
	}

	return out
}
