package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/GokulSoumya/clid/internal/tui/components"
)

var cursorCellStyle = lipgloss.NewStyle().Reverse(true)

func (m *Model) viewBrowser() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("clid"))
	b.WriteString(" ")
	b.WriteString(DirStyle.Render(m.lib.Dir()))
	b.WriteString("\n\n")

	if m.list.Len() == 0 {
		b.WriteString(ListItemStyle.Render("No files found in directory"))
		b.WriteString("\n")
	} else {
		start, end := m.list.Window()
		visible := m.list.Visible()
		for i := start; i < end; i++ {
			b.WriteString(m.renderListItem(visible[i], i == m.list.Cursor()))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(StatusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(m.cmdline.View())

	return b.String()
}

func (m *Model) renderListItem(name string, selected bool) string {
	marker := "  "
	if m.list.IsMarked(name) {
		marker = MarkedItemStyle.Render("* ")
	}

	if selected {
		return marker + SelectedListItemStyle.Render("> "+name)
	}

	return marker + ListItemStyle.Render(name)
}

func (m *Model) viewEdit() string {
	s := m.session
	if s == nil {
		return ""
	}

	var b strings.Builder

	if s.batch {
		b.WriteString(BatchBannerStyle.Render(
			fmt.Sprintf("Editing %d tracks. Only the fields you fill in are written.", len(s.targets))))
	} else {
		b.WriteString(TitleStyle.Render(s.targets[0]))
	}
	b.WriteString("\n\n")

	for i, field := range s.fields {
		focused := i == s.focus
		label := FieldLabelStyle.Render(field.Label)
		if focused {
			label = FocusedLabelStyle.Render(field.Label)
		}

		b.WriteString(label)
		b.WriteString(renderFieldValue(field, focused))
		if focused && field.Modal() {
			b.WriteString(modeIndicator(field.Mode()))
		}
		b.WriteString("\n")

		if focused && len(m.suggestions) > 0 {
			b.WriteString(SuggestionStyle.Render(strings.Join(m.suggestions, "  ")))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(renderButton("Save", s.focus == s.saveIdx()))
	b.WriteString(" ")
	b.WriteString(renderButton("Cancel", s.focus == s.cancelIdx()))
	b.WriteString("\n\n")
	b.WriteString(m.cmdline.View())

	return b.String()
}

// renderFieldValue shows the buffer with the cursor cell reversed when the
// field has focus.
func renderFieldValue(f *components.TextField, focused bool) string {
	value := f.Value()
	if !focused {
		return value
	}

	runes := []rune(value)
	cur := f.Cursor()
	if cur >= len(runes) {
		return value + cursorCellStyle.Render(" ")
	}

	return string(runes[:cur]) +
		cursorCellStyle.Render(string(runes[cur])) +
		string(runes[cur+1:])
}

func modeIndicator(mode components.Mode) string {
	if mode == components.ModeInsert {
		return DirStyle.Render("  -- INSERT --")
	}

	return ""
}

func renderButton(label string, focused bool) string {
	if focused {
		return FocusedButtonStyle.Render(label)
	}

	return ButtonStyle.Render(label)
}
