// Package components holds the reusable widgets behind clid's screens: the
// modal text field, the scrollable multi-select list, and the command line.
package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Mode is the editing mode of a modal text field.
type Mode int

// Editing modes.
const (
	// ModeNormal accepts vim-style movement and deletion keys.
	ModeNormal Mode = iota
	// ModeInsert accepts ordinary character input.
	ModeInsert
)

// EditAction is a logical text-editing action. Keys translate to actions
// through ActionFor, so tests drive the field by action instead of by raw
// terminal codes.
type EditAction int

// Text-editing actions.
const (
	ActionNone EditAction = iota
	ActionInsertRune
	ActionCursorLeft
	ActionCursorRight
	ActionCursorHome
	ActionCursorEnd
	ActionDeleteLeft
	ActionDeleteRight
	ActionEnterInsert // i
	ActionAppend      // a: insert after cursor
	ActionAppendEnd   // A: insert at end of line
	ActionExitInsert
	ActionComplete
	ActionFocusPrev
	ActionFocusNext
)

// Completer matches a fixed vocabulary against the field contents.
// Choose, when set, resolves among multiple candidates; when nil the caller
// receives the candidates and runs its own picker.
type Completer struct {
	Vocabulary []string
	Choose     func(candidates []string) int
}

// Matches returns the vocabulary entries containing input as a
// case-insensitive substring, in vocabulary order and casing.
func (c *Completer) Matches(input string) []string {
	needle := strings.ToLower(input)

	var matches []string
	for _, word := range c.Vocabulary {
		if strings.Contains(strings.ToLower(word), needle) {
			matches = append(matches, word)
		}
	}

	return matches
}

// TextField is a single-line editable text buffer with cursor addressing.
// A modal field starts in Normal mode and supports vim-style editing; a
// plain field behaves like a regular input with Home/End always active.
// The optional completer and the modal discipline are independent
// capabilities.
type TextField struct {
	Label string

	value     []rune
	cursor    int
	modal     bool
	mode      Mode
	completer *Completer
}

// NewTextField creates a plain (non-modal) field with the cursor at the end
// of value.
func NewTextField(label, value string) *TextField {
	t := &TextField{Label: label, mode: ModeInsert}
	t.SetValue(value)

	return t
}

// NewModalTextField creates a field with vim-style modal editing, starting
// in Normal mode.
func NewModalTextField(label, value string) *TextField {
	t := &TextField{Label: label, modal: true, mode: ModeNormal}
	t.SetValue(value)

	return t
}

// SetCompleter attaches an autocomplete vocabulary to the field.
func (t *TextField) SetCompleter(c *Completer) {
	t.completer = c
}

// Modal reports whether vim-style editing is enabled.
func (t *TextField) Modal() bool {
	return t.modal
}

// Mode returns the current editing mode. Plain fields are always in
// ModeInsert.
func (t *TextField) Mode() Mode {
	return t.mode
}

// SetMode switches the editing mode without moving the cursor. Plain fields
// ignore switches to Normal.
func (t *TextField) SetMode(m Mode) {
	if !t.modal && m == ModeNormal {
		return
	}
	t.mode = m
}

// Value returns the buffer contents.
func (t *TextField) Value() string {
	return string(t.value)
}

// SetValue replaces the buffer and places the cursor at the end.
func (t *TextField) SetValue(s string) {
	t.value = []rune(s)
	t.cursor = len(t.value)
}

// Cursor returns the cursor offset, always within [0, len].
func (t *TextField) Cursor() int {
	return t.cursor
}

// Insert places r at the cursor and advances the cursor.
func (t *TextField) Insert(r rune) {
	t.value = append(t.value[:t.cursor], append([]rune{r}, t.value[t.cursor:]...)...)
	t.cursor++
}

// MoveCursor shifts the cursor by delta, clamped to [0, len].
func (t *TextField) MoveCursor(delta int) {
	t.cursor += delta
	if t.cursor < 0 {
		t.cursor = 0
	}
	if t.cursor > len(t.value) {
		t.cursor = len(t.value)
	}
}

// DeleteLeft removes the character before the cursor and moves the cursor
// back. A no-op at offset 0.
func (t *TextField) DeleteLeft() {
	if t.cursor == 0 {
		return
	}
	t.value = append(t.value[:t.cursor-1], t.value[t.cursor:]...)
	t.cursor--
}

// DeleteRight removes the character at the cursor. A no-op at end of line.
func (t *TextField) DeleteRight() {
	if t.cursor >= len(t.value) {
		return
	}
	t.value = append(t.value[:t.cursor], t.value[t.cursor+1:]...)
}

// Complete applies vocabulary completion to the buffer. With one candidate
// the buffer is replaced immediately. With several, the completer's Choose
// callback picks one when set; otherwise the candidates are returned for
// the caller to present a choice. The cursor ends at the end of the buffer
// whenever a replacement happens.
func (t *TextField) Complete() []string {
	if t.completer == nil {
		return nil
	}

	matches := t.completer.Matches(t.Value())
	switch len(matches) {
	case 0:
		return nil
	case 1:
		t.SetValue(matches[0])
		return nil
	}

	if t.completer.Choose != nil {
		if i := t.completer.Choose(matches); i >= 0 && i < len(matches) {
			t.SetValue(matches[i])
		}

		return nil
	}

	return matches
}

// HasCompleter reports whether a completion vocabulary is attached.
func (t *TextField) HasCompleter() bool {
	return t.completer != nil
}

// ActionFor translates a key press to a logical action for this field's
// current mode. The second return value carries the rune for
// ActionInsertRune.
func (t *TextField) ActionFor(msg tea.KeyMsg) (EditAction, rune) {
	if t.modal && t.mode == ModeNormal {
		return t.normalAction(msg)
	}

	return t.insertAction(msg)
}

func (t *TextField) normalAction(msg tea.KeyMsg) (EditAction, rune) {
	switch msg.String() {
	case "h", "left", "backspace":
		return ActionCursorLeft, 0
	case "l", "right", " ":
		return ActionCursorRight, 0
	case "home":
		return ActionCursorHome, 0
	case "end":
		return ActionCursorEnd, 0
	case "x":
		return ActionDeleteRight, 0
	case "X":
		return ActionDeleteLeft, 0
	case "i":
		return ActionEnterInsert, 0
	case "a":
		return ActionAppend, 0
	case "A":
		return ActionAppendEnd, 0
	case "k", "up":
		return ActionFocusPrev, 0
	case "j", "down":
		return ActionFocusNext, 0
	case "tab":
		if t.completer != nil {
			return ActionComplete, 0
		}
	}

	return ActionNone, 0
}

func (t *TextField) insertAction(msg tea.KeyMsg) (EditAction, rune) {
	switch msg.String() {
	case "esc":
		if t.modal {
			return ActionExitInsert, 0
		}

		return ActionNone, 0
	case "backspace":
		return ActionDeleteLeft, 0
	case "delete":
		return ActionDeleteRight, 0
	case "left":
		return ActionCursorLeft, 0
	case "right":
		return ActionCursorRight, 0
	case "home":
		return ActionCursorHome, 0
	case "end":
		return ActionCursorEnd, 0
	case "up":
		return ActionFocusPrev, 0
	case "down":
		return ActionFocusNext, 0
	case "tab":
		if t.completer != nil {
			return ActionComplete, 0
		}

		return ActionNone, 0
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 {
		return ActionInsertRune, msg.Runes[0]
	}
	if msg.Type == tea.KeySpace {
		return ActionInsertRune, ' '
	}

	return ActionNone, 0
}

// Apply performs a logical action on the buffer. Focus and completion
// actions are the owner's concern and are ignored here.
func (t *TextField) Apply(action EditAction, r rune) {
	switch action {
	case ActionInsertRune:
		// Characters land only in insert mode.
		if !t.modal || t.mode == ModeInsert {
			t.Insert(r)
		}
	case ActionCursorLeft:
		t.MoveCursor(-1)
	case ActionCursorRight:
		t.MoveCursor(1)
	case ActionCursorHome:
		t.cursor = 0
	case ActionCursorEnd:
		t.cursor = len(t.value)
	case ActionDeleteLeft:
		t.DeleteLeft()
	case ActionDeleteRight:
		t.DeleteRight()
	case ActionEnterInsert:
		t.SetMode(ModeInsert)
	case ActionAppend:
		t.SetMode(ModeInsert)
		t.MoveCursor(1)
	case ActionAppendEnd:
		t.SetMode(ModeInsert)
		t.cursor = len(t.value)
	case ActionExitInsert:
		// Leaving insert steps back onto the last typed character.
		if t.mode == ModeInsert {
			t.mode = ModeNormal
			t.MoveCursor(-1)
		}
	case ActionNone, ActionComplete, ActionFocusPrev, ActionFocusNext:
		// Handled by the owning form.
	}
}
