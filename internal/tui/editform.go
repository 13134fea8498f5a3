package tui

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/GokulSoumya/clid/internal/tags"
	"github.com/GokulSoumya/clid/internal/tui/components"
)

// Validation messages shown when a save is rejected.
const (
	dateFormatMessage  = "Date should be of the form YYYY-MM-DD HH:MM:SS"
	trackNumberMessage = "Track number can only take integer values"
)

// editSession is the state of one open edit form. A single-file session
// prefills every field from the file's tags and includes a filename field;
// a batch session starts blank and writes only the fields that were filled
// in, leaving the other tags of each file untouched.
type editSession struct {
	targets []string
	batch   bool

	fields   []*components.TextField
	fieldIDs []tags.Field

	// filenameIdx is the index of the filename field, or -1 in batch mode.
	filenameIdx int

	// original holds the prefilled values, for change detection on save.
	original tags.Map
	origName string

	// focus walks the fields, then the save and cancel buttons.
	focus int
}

func (s *editSession) saveIdx() int   { return len(s.fields) }
func (s *editSession) cancelIdx() int { return len(s.fields) + 1 }

func (s *editSession) focusTargets() int { return len(s.fields) + 2 }

// focusedField returns the field under focus, or nil when a button is
// focused.
func (s *editSession) focusedField() *components.TextField {
	if s.focus < len(s.fields) {
		return s.fields[s.focus]
	}

	return nil
}

func (s *editSession) value(f tags.Field) string {
	for i, id := range s.fieldIDs {
		if id == f && i != s.filenameIdx {
			return s.fields[i].Value()
		}
	}

	return ""
}

// openEdit builds an edit session over targets and switches to the form.
func (m *Model) openEdit(targets []string, batch bool) {
	session := &editSession{
		targets:     targets,
		batch:       batch,
		filenameIdx: -1,
		original:    tags.Map{},
	}

	if !batch {
		fields, err := m.codec.Read(m.lib.Path(targets[0]))
		if err != nil {
			m.cmdline.Notify("Error", fmt.Sprintf("Reading %s: %v", targets[0], err))
			return
		}
		fields[tags.FieldGenre] = tags.ResolveGenre(fields[tags.FieldGenre])
		session.original = fields
		session.origName = targets[0]

		session.filenameIdx = 0
		session.fields = append(session.fields, m.newField("Filename", targets[0]))
		session.fieldIDs = append(session.fieldIDs, tags.Field("filename"))
	}

	for _, id := range tags.FieldOrder {
		field := m.newField(id.Label(), session.original[id])
		if id == tags.FieldGenre {
			field.SetCompleter(&components.Completer{Vocabulary: tags.Genres})
		}
		session.fields = append(session.fields, field)
		session.fieldIDs = append(session.fieldIDs, id)
	}

	session.focus = m.restoreFocus(len(session.fields))

	m.session = session
	m.suggestions = nil
	m.screen = ScreenEdit
}

// newField creates a form field honoring the vim_mode option.
func (m *Model) newField(label, value string) *components.TextField {
	if m.cfg.OptionEnabled("vim_mode") {
		return components.NewModalTextField(label, value)
	}

	return components.NewTextField(label, value)
}

// restoreFocus returns the remembered field index, clamped to the current
// field count.
func (m *Model) restoreFocus(fieldCount int) int {
	if m.store == nil {
		return 0
	}

	idx, err := m.store.LastField()
	if err != nil {
		slog.Warn("restoring focused field", slog.String("error", err.Error()))
		return 0
	}
	if idx >= fieldCount {
		idx = fieldCount - 1
	}

	return idx
}

// updateEdit handles a key press on the edit form.
func (m *Model) updateEdit(msg tea.KeyMsg) {
	s := m.session
	if s == nil {
		return
	}

	switch {
	case key.Matches(msg, m.editKeys.Save):
		m.commitEdit()
		return

	case key.Matches(msg, m.editKeys.FieldPrev):
		m.moveFocus(-1)
		return

	case key.Matches(msg, m.editKeys.Confirm):
		switch s.focus {
		case s.saveIdx():
			m.commitEdit()
		case s.cancelIdx():
			m.closeEdit()
		default:
			m.moveFocus(1)
		}

		return
	}

	field := s.focusedField()
	if field == nil {
		m.updateButtons(msg)
		return
	}

	action, r := field.ActionFor(msg)
	switch action {
	case components.ActionNone:
		// Keys the field does not consume act on the form: escape closes
		// it, tab moves focus on fields without completion.
		switch {
		case key.Matches(msg, m.editKeys.Cancel):
			m.closeEdit()
		case key.Matches(msg, m.editKeys.FieldNext):
			m.moveFocus(1)
		}
	case components.ActionFocusPrev:
		m.moveFocus(-1)
	case components.ActionFocusNext:
		m.moveFocus(1)
	case components.ActionComplete:
		m.suggestions = field.Complete()
	default:
		field.Apply(action, r)
		m.suggestions = nil
	}
}

// updateButtons handles keys while a button has focus.
func (m *Model) updateButtons(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc":
		m.closeEdit()
	case "tab", "down", "j", "l", "right":
		m.moveFocus(1)
	case "shift+tab", "up", "k", "h", "left":
		m.moveFocus(-1)
	}
}

func (m *Model) moveFocus(delta int) {
	s := m.session

	// At most one field is ever in insert mode; leaving a field always
	// returns it to normal.
	if field := s.focusedField(); field != nil && field.Modal() {
		field.SetMode(components.ModeNormal)
	}

	s.focus = (s.focus + delta + s.focusTargets()) % s.focusTargets()
	m.suggestions = nil
}

// commitEdit validates and writes the form. Validation failures keep the
// form open with every value intact.
func (m *Model) commitEdit() {
	s := m.session

	if !tags.ValidDate(s.value(tags.FieldDate)) {
		m.cmdline.Notify("Error", dateFormatMessage)
		return
	}
	if !tags.ValidTrackNumber(s.value(tags.FieldTrackNumber)) {
		m.cmdline.Notify("Error", trackNumberMessage)
		return
	}

	if s.batch {
		m.commitBatch()
		return
	}
	m.commitSingle()
}

// commitSingle writes every field to the file, renaming it when the
// filename field changed.
func (m *Model) commitSingle() {
	s := m.session
	name := s.targets[0]

	fields := tags.Map{}
	for i, id := range s.fieldIDs {
		if i == s.filenameIdx {
			continue
		}
		fields[id] = s.fields[i].Value()
	}

	if err := m.codec.Write(m.lib.Path(name), fields); err != nil {
		m.cmdline.Notify("Error", err.Error())
		return
	}

	m.logFieldChanges(name, fields)

	finalName := name
	if s.filenameIdx >= 0 {
		if newName := s.fields[s.filenameIdx].Value(); newName != "" && newName != s.origName {
			if filepath.Ext(newName) == "" {
				newName += filepath.Ext(s.origName)
			}
			if err := m.lib.Rename(s.origName, newName); err != nil {
				m.cmdline.Notify("Error", err.Error())
				return
			}
			// The filtered view holds its own sequence, so the listing
			// entry is swapped there as well.
			m.list.Replace(s.origName, newName)
			finalName = newName
		}
	}

	m.preview.Invalidate(m.lib.Path(finalName))
	m.closeEdit()
	m.refreshStatus(true)
	m.cmdline.Notify("Info", "Saved "+finalName)
}

// commitBatch writes the non-empty fields to every target, stopping at the
// first failure so the user knows exactly which file broke.
func (m *Model) commitBatch() {
	s := m.session

	fields := tags.Map{}
	for i, id := range s.fieldIDs {
		if value := s.fields[i].Value(); value != "" {
			fields[id] = value
		}
	}

	if len(fields) == 0 {
		m.cmdline.Notify("Info", "Nothing to save")
		return
	}

	for _, name := range s.targets {
		if err := m.codec.Write(m.lib.Path(name), fields); err != nil {
			m.cmdline.Notify("Error", fmt.Sprintf("Saving %s: %v", name, err))
			return
		}
		m.preview.Invalidate(m.lib.Path(name))
	}

	count := len(s.targets)
	m.closeEdit()
	m.refreshStatus(true)
	m.cmdline.Notify("Info", fmt.Sprintf("Saved %d tracks", count))
}

// logFieldChanges records a character-level diff of every changed field at
// debug level.
func (m *Model) logFieldChanges(name string, fields tags.Map) {
	dmp := diffmatchpatch.New()
	for _, id := range tags.FieldOrder {
		before, after := m.session.original[id], fields[id]
		if before == after {
			continue
		}

		diffs := dmp.DiffMain(before, after, false)
		slog.Debug("tag changed",
			slog.String("file", name),
			slog.String("field", string(id)),
			slog.String("diff", dmp.DiffPrettyText(diffs)),
		)
	}
}

// closeEdit leaves the form, remembering which field had focus for the
// next session.
func (m *Model) closeEdit() {
	s := m.session

	if m.store != nil {
		// Button focus is remembered as the last field before the buttons.
		idx := s.focus
		if idx >= len(s.fields) {
			idx = len(s.fields) - 1
		}
		if err := m.store.SetLastField(idx); err != nil {
			slog.Warn("remembering focused field", slog.String("error", err.Error()))
		}
	}

	m.session = nil
	m.suggestions = nil
	m.screen = ScreenBrowser
}
