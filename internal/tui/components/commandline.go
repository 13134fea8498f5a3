package components

import (
	"fmt"
	"regexp"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)
)

type commandPattern struct {
	re      *regexp.Regexp
	handler func(command string)
	live    bool
}

// CommandLine is the line-input widget at the bottom of the screen. It is a
// separate input mode from list navigation: submitted text is matched
// against registered patterns in registration order and routed to the first
// matching handler. It doubles as the notification surface; while a
// notification is displayed the line is not editable, and an empty submit
// dismisses it.
type CommandLine struct {
	input    textinput.Model
	patterns []commandPattern
	history  []string
	histIdx  int
	persist  func(command string)
	active   bool
	notif    bool
	notifMsg string
	notifErr bool
}

// NewCommandLine creates an inactive command line.
func NewCommandLine() *CommandLine {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256

	return &CommandLine{input: ti, histIdx: -1}
}

// Register adds a command pattern. Patterns are tried in registration
// order; the first match wins. A live pattern is additionally dispatched on
// every buffer edit, for incremental actions such as search.
func (c *CommandLine) Register(pattern string, live bool, handler func(command string)) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("compiling command pattern %q: %w", pattern, err)
	}

	c.patterns = append(c.patterns, commandPattern{re: re, handler: handler, live: live})

	return nil
}

// SetPersist installs a sink invoked for every submitted command, used to
// persist history across sessions.
func (c *CommandLine) SetPersist(fn func(command string)) {
	c.persist = fn
}

// SetHistory seeds the in-memory history, oldest first.
func (c *CommandLine) SetHistory(history []string) {
	c.history = append([]string(nil), history...)
}

// History returns the submitted-command history, oldest first.
func (c *CommandLine) History() []string {
	return c.history
}

// Activate enters command input mode with the given prefix (":" or "/")
// already typed.
func (c *CommandLine) Activate(prefix string) {
	c.notif = false
	c.active = true
	c.histIdx = -1
	c.input.SetValue(prefix)
	c.input.Focus()
	c.input.SetCursor(len(prefix))
}

// Deactivate leaves command input mode and clears the buffer.
func (c *CommandLine) Deactivate() {
	c.active = false
	c.input.SetValue("")
	c.input.Blur()
}

// Active reports whether the command line is in input mode.
func (c *CommandLine) Active() bool {
	return c.active
}

// Value returns the current buffer contents.
func (c *CommandLine) Value() string {
	return c.input.Value()
}

// Update routes key input to the buffer while active. Live patterns are
// re-dispatched whenever the buffer changes.
func (c *CommandLine) Update(msg tea.Msg) tea.Cmd {
	if !c.active || c.notif {
		return nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up":
			c.historyPrev()
			return nil
		case "down":
			c.historyNext()
			return nil
		}
	}

	before := c.input.Value()

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)

	if text := c.input.Value(); text != before {
		for _, p := range c.patterns {
			if p.live && p.re.MatchString(text) {
				p.handler(text)
				break
			}
		}
	}

	return cmd
}

// Submit dispatches the buffer. While a notification is displayed the
// submit dismisses it instead, restoring the editable empty line. Returns
// true if a handler ran.
func (c *CommandLine) Submit() bool {
	if c.notif {
		c.notif = false
		c.input.SetValue("")

		return false
	}

	text := c.input.Value()
	if text == "" {
		c.Deactivate()
		return false
	}

	c.history = append(c.history, text)
	c.histIdx = -1
	if c.persist != nil {
		c.persist(text)
	}

	matched := false
	for _, p := range c.patterns {
		if p.re.MatchString(text) {
			p.handler(text)
			matched = true

			break
		}
	}

	c.Deactivate()

	return matched
}

// Notify displays a transient message on the command line. The title picks
// the display style; "Error" renders in the error color, anything else as
// info.
func (c *CommandLine) Notify(title, message string) {
	c.active = false
	c.input.SetValue("")
	c.input.Blur()
	c.notif = true
	c.notifErr = title == "Error"
	c.notifMsg = fmt.Sprintf("(%s): %s", title, message)
}

// NotificationActive reports whether a notification is being displayed.
func (c *CommandLine) NotificationActive() bool {
	return c.notif
}

// NotificationMessage returns the text of the displayed notification, or ""
// when none is showing.
func (c *CommandLine) NotificationMessage() string {
	if !c.notif {
		return ""
	}

	return c.notifMsg
}

// DismissNotification clears a displayed notification, if any.
func (c *CommandLine) DismissNotification() {
	c.notif = false
}

// View renders the command line: the notification if one is showing, the
// input buffer while active, and nothing otherwise.
func (c *CommandLine) View() string {
	if c.notif {
		if c.notifErr {
			return errorStyle.Render(c.notifMsg)
		}

		return infoStyle.Render(c.notifMsg)
	}
	if c.active {
		return c.input.View()
	}

	return ""
}

func (c *CommandLine) historyPrev() {
	if len(c.history) == 0 {
		return
	}

	if c.histIdx == -1 {
		c.histIdx = len(c.history) - 1
	} else if c.histIdx > 0 {
		c.histIdx--
	}

	c.input.SetValue(c.history[c.histIdx])
	c.input.SetCursor(len(c.history[c.histIdx]))
}

func (c *CommandLine) historyNext() {
	if c.histIdx == -1 {
		return
	}

	c.histIdx++
	if c.histIdx >= len(c.history) {
		c.histIdx = -1
		c.input.SetValue("")

		return
	}

	c.input.SetValue(c.history[c.histIdx])
	c.input.SetCursor(len(c.history[c.histIdx]))
}
