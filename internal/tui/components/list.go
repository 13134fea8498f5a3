package components

import "strings"

// MatchFunc filters items by a search query, returning the matching
// subsequence.
type MatchFunc func(query string, items []string) []string

// SubstringMatch is the default search: case-insensitive substring,
// preserving the original order.
func SubstringMatch(query string, items []string) []string {
	needle := strings.ToLower(query)

	var out []string
	for _, item := range items {
		if strings.Contains(strings.ToLower(item), needle) {
			out = append(out, item)
		}
	}

	return out
}

// List is a scrollable ordered list of string items with a cursor line, an
// incremental search that narrows the visible set, and an independent
// multi-select mark set. Item identity is the string value itself.
type List struct {
	// Match filters items during ApplySearch. Defaults to SubstringMatch.
	Match MatchFunc

	items   []string // full sequence
	visible []string
	cursor  int
	offset  int
	height  int
	marks   map[string]bool
	search  bool // a search filter is currently applied
}

// NewList creates a list with the given viewport height.
func NewList(height int) *List {
	return &List{
		Match:  SubstringMatch,
		height: height,
		marks:  map[string]bool{},
	}
}

// SetItems replaces the full item sequence, drops any active search, and
// resets the cursor. Marks are kept: identity is by value, so a reloaded
// item stays marked.
func (l *List) SetItems(items []string) {
	l.items = items
	l.visible = items
	l.search = false
	l.cursor = 0
	l.offset = 0
}

// Replace swaps an entry in place in both the full and the visible
// sequence, keeping cursor and scroll positions. The visible sequence is a
// distinct slice while a search filter is applied, so both are updated. A
// mark on the old value follows the new one.
func (l *List) Replace(old, newName string) {
	for i, item := range l.items {
		if item == old {
			l.items[i] = newName
			break
		}
	}
	for i, item := range l.visible {
		if item == old {
			l.visible[i] = newName
			break
		}
	}
	if l.marks[old] {
		delete(l.marks, old)
		l.marks[newName] = true
	}
}

// SetViewportHeight updates the number of visible lines used by page
// motions and scrolling.
func (l *List) SetViewportHeight(h int) {
	if h < 1 {
		h = 1
	}
	l.height = h
	l.clamp()
}

// Visible returns the currently visible item sequence.
func (l *List) Visible() []string {
	return l.visible
}

// Len returns the number of visible items.
func (l *List) Len() int {
	return len(l.visible)
}

// Cursor returns the cursor index into the visible sequence; 0 when empty.
func (l *List) Cursor() int {
	return l.cursor
}

// SelectedItem returns the item under the cursor, or false when the list
// is empty.
func (l *List) SelectedItem() (string, bool) {
	if len(l.visible) == 0 {
		return "", false
	}

	return l.visible[l.cursor], true
}

// MoveUp shifts the cursor up by n lines, stopping at the top.
func (l *List) MoveUp(n int) {
	l.cursor -= n
	l.clamp()
}

// MoveDown shifts the cursor down by n lines, stopping at the bottom.
func (l *List) MoveDown(n int) {
	l.cursor += n
	l.clamp()
}

// MoveToTop places the cursor on the first visible item.
func (l *List) MoveToTop() {
	l.cursor = 0
	l.clamp()
}

// MoveToBottom places the cursor on the last visible item.
func (l *List) MoveToBottom() {
	l.cursor = len(l.visible) - 1
	l.clamp()
}

// pageStep is how far page motions move: the viewport height minus three
// lines, so the line the page turned on stays visible for continuity.
func (l *List) pageStep() int {
	step := l.height - 3
	if step < 1 {
		step = 1
	}

	return step
}

// PageUp moves the cursor up by one page, clamped at the top.
func (l *List) PageUp() {
	l.MoveUp(l.pageStep())
}

// PageDown moves the cursor down by one page, clamped at the bottom.
func (l *List) PageDown() {
	l.MoveDown(l.pageStep())
}

// ToggleMark adds item to the mark set if absent and removes it if present.
func (l *List) ToggleMark(item string) {
	if l.marks[item] {
		delete(l.marks, item)
		return
	}
	l.marks[item] = true
}

// IsMarked reports whether item is in the mark set.
func (l *List) IsMarked(item string) bool {
	return l.marks[item]
}

// HasMarks reports whether any item is marked.
func (l *List) HasMarks() bool {
	return len(l.marks) > 0
}

// MarkedItems returns the marked items in full-sequence order. Marked items
// hidden by a search are still included.
func (l *List) MarkedItems() []string {
	var out []string
	for _, item := range l.items {
		if l.marks[item] {
			out = append(out, item)
		}
	}

	return out
}

// ClearMarks empties the mark set.
func (l *List) ClearMarks() {
	l.marks = map[string]bool{}
}

// ApplySearch narrows the visible sequence to the items of the full
// sequence matching query and returns the match count. A non-empty result
// resets the cursor to the top; an empty result leaves an empty visible
// list (the owner clears the status preview).
func (l *List) ApplySearch(query string) int {
	l.visible = l.Match(query, l.items)
	l.search = true
	l.cursor = 0
	l.offset = 0

	return len(l.visible)
}

// RevertSearch restores the original full sequence and order.
func (l *List) RevertSearch() {
	l.visible = l.items
	l.search = false
	l.clamp()
}

// SearchActive reports whether a search filter is currently applied.
func (l *List) SearchActive() bool {
	return l.search
}

// Cancel performs the escape action: revert an active search if one is
// applied, otherwise clear the marks if any exist. Returns true if either
// happened.
func (l *List) Cancel() bool {
	if l.search {
		l.RevertSearch()
		return true
	}
	if len(l.marks) > 0 {
		l.ClearMarks()
		return true
	}

	return false
}

// Confirm resolves the current selection into edit targets. With marks
// present, the item under the cursor is added to the set unconditionally,
// the combined set is returned as a batch, and the marks are cleared. With
// no marks, the single item under the cursor is returned. batch reports
// which shape was taken; ok is false when the list is empty.
func (l *List) Confirm() (targets []string, batch, ok bool) {
	current, ok := l.SelectedItem()
	if !ok {
		return nil, false, false
	}

	if len(l.marks) == 0 {
		return []string{current}, false, true
	}

	l.marks[current] = true
	targets = l.MarkedItems()
	l.ClearMarks()

	return targets, true, true
}

// Window returns the half-open visible index range [start, end) currently
// scrolled into view.
func (l *List) Window() (start, end int) {
	start = l.offset
	end = l.offset + l.height
	if end > len(l.visible) {
		end = len(l.visible)
	}

	return start, end
}

// clamp restores the cursor and scroll invariants after any mutation.
func (l *List) clamp() {
	if l.cursor > len(l.visible)-1 {
		l.cursor = len(l.visible) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}

	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.height {
		l.offset = l.cursor - l.height + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}
