package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/GokulSoumya/clid/internal/config"
	"github.com/GokulSoumya/clid/internal/library"
	"github.com/GokulSoumya/clid/internal/tags"
)

// testCodec is an in-memory tag store keyed by full path.
type testCodec struct {
	files     map[string]tags.Map
	failWrite map[string]error
	writes    []string
}

func (c *testCodec) Read(path string) (tags.Map, error) {
	fields, ok := c.files[path]
	if !ok {
		return nil, tags.ErrNotFound
	}

	out := tags.Map{}
	for field, value := range fields {
		out[field] = value
	}

	return out, nil
}

func (c *testCodec) Write(path string, fields tags.Map) error {
	if err := c.failWrite[path]; err != nil {
		return err
	}

	stored := c.files[path]
	if stored == nil {
		stored = tags.Map{}
		c.files[path] = stored
	}
	for field, value := range fields {
		stored[field] = value
	}
	c.writes = append(c.writes, path)

	return nil
}

// newTestModel builds a model over a temp directory holding the named
// files, with codec providing their tags.
func newTestModel(t *testing.T, cfg *config.Config, codec *testCodec, names ...string) *Model {
	t.Helper()

	dir := t.TempDir()
	if codec.files == nil {
		codec.files = map[string]tags.Map{}
	}

	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}

	lib := library.New(dir)
	if err := lib.Load(); err != nil {
		t.Fatal(err)
	}

	preview, err := library.NewPreview(codec, config.DefaultPreviewFormat)
	if err != nil {
		t.Fatal(err)
	}

	m, err := New(Deps{
		Config:  cfg,
		Library: lib,
		Preview: preview,
		Codec:   codec,
	})
	if err != nil {
		t.Fatal(err)
	}

	return m
}

func songTags(title, artist string) tags.Map {
	return tags.Map{
		tags.FieldTitle:       title,
		tags.FieldAlbum:       "Pink Moon",
		tags.FieldArtist:      artist,
		tags.FieldAlbumArtist: artist,
		tags.FieldGenre:       "Folk",
		tags.FieldDate:        "1972",
		tags.FieldTrackNumber: "1",
	}
}

func keyFor(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}

	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyFor(k))
	}

	return cmd
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// fieldByLabel finds a form field by its display label.
func fieldByLabel(t *testing.T, s *editSession, label string) int {
	t.Helper()

	for i, f := range s.fields {
		if f.Label == label {
			return i
		}
	}
	t.Fatalf("no field labeled %q", label)

	return -1
}

func TestNavigationUpdatesPreview(t *testing.T) {
	codec := &testCodec{}
	m := newTestModel(t, config.Default(), codec, "a.mp3", "b.mp3")
	codec.files[m.lib.Path("a.mp3")] = songTags("Pink Moon", "Nick Drake")
	codec.files[m.lib.Path("b.mp3")] = songTags("Road", "Nick Drake")
	m.refreshStatus(true)

	if !strings.Contains(m.status, "Pink Moon") {
		t.Fatalf("status = %q, want the first track's preview", m.status)
	}

	press(m, "down")
	if !strings.Contains(m.status, "Road") {
		t.Fatalf("status = %q, want the second track's preview", m.status)
	}
}

func TestPreviewClearedForUnreadableFile(t *testing.T) {
	// No tags registered for the file, so the codec fails the read.
	m := newTestModel(t, config.Default(), &testCodec{}, "a.mp3")
	m.refreshStatus(true)

	if m.status != "" {
		t.Fatalf("status = %q, want empty for an unreadable file", m.status)
	}
}

func TestConfirmOpensPrefilledForm(t *testing.T) {
	codec := &testCodec{}
	m := newTestModel(t, config.Default(), codec, "song.mp3")
	codec.files[m.lib.Path("song.mp3")] = songTags("Pink Moon", "Nick Drake")

	press(m, "enter")

	if m.screen != ScreenEdit {
		t.Fatal("confirm did not open the edit form")
	}
	s := m.session
	if s.batch {
		t.Fatal("single confirm opened a batch session")
	}
	if got := s.fields[fieldByLabel(t, s, "Title")].Value(); got != "Pink Moon" {
		t.Fatalf("Title prefill = %q, want %q", got, "Pink Moon")
	}
	if got := s.fields[s.filenameIdx].Value(); got != "song.mp3" {
		t.Fatalf("Filename prefill = %q", got)
	}
}

func TestMarkAndConfirmOpensBatch(t *testing.T) {
	codec := &testCodec{}
	m := newTestModel(t, config.Default(), codec, "a.mp3", "b.mp3", "c.mp3")

	// Mark a, which moves the cursor to b; confirm pulls b in as well.
	press(m, "space", "enter")

	s := m.session
	if s == nil || !s.batch {
		t.Fatal("marked confirm did not open a batch session")
	}
	if len(s.targets) != 2 || s.targets[0] != "a.mp3" || s.targets[1] != "b.mp3" {
		t.Fatalf("targets = %v, want [a.mp3 b.mp3]", s.targets)
	}
	if s.filenameIdx != -1 {
		t.Fatal("batch session has a filename field")
	}
	for _, f := range s.fields {
		if f.Value() != "" {
			t.Fatalf("batch field %q prefilled with %q", f.Label, f.Value())
		}
	}
}

func TestEditTypeAndSave(t *testing.T) {
	codec := &testCodec{}
	m := newTestModel(t, config.Default(), codec, "song.mp3")
	path := m.lib.Path("song.mp3")
	codec.files[path] = songTags("Pink Moon", "Nick Drake")

	press(m, "enter")
	// Tab past the filename field, append to the title, save.
	press(m, "tab", "A")
	typeText(m, " (remaster)")
	press(m, "esc", "ctrl+s")

	if got := codec.files[path][tags.FieldTitle]; got != "Pink Moon (remaster)" {
		t.Fatalf("saved title = %q", got)
	}
	if m.screen != ScreenBrowser {
		t.Fatal("form still open after save")
	}
	if !m.cmdline.NotificationActive() {
		t.Fatal("no confirmation notification after save")
	}
}

func TestPlainFieldsWithoutVimMode(t *testing.T) {
	cfg := config.Default()
	cfg.SetOption("vim_mode", false)

	codec := &testCodec{}
	m := newTestModel(t, cfg, codec, "song.mp3")
	path := m.lib.Path("song.mp3")
	codec.files[path] = songTags("Pink Moon", "Nick Drake")

	press(m, "enter")
	if m.session.fields[0].Modal() {
		t.Fatal("vim_mode off still built modal fields")
	}

	// Characters land directly, no insert mode needed.
	press(m, "tab")
	typeText(m, "!")
	press(m, "ctrl+s")

	if got := codec.files[path][tags.FieldTitle]; got != "Pink Moon!" {
		t.Fatalf("saved title = %q", got)
	}
}

func TestSaveRenamesFile(t *testing.T) {
	codec := &testCodec{}
	m := newTestModel(t, config.Default(), codec, "song.mp3")
	codec.files[m.lib.Path("song.mp3")] = songTags("Pink Moon", "Nick Drake")

	press(m, "enter")
	m.session.fields[m.session.filenameIdx].SetValue("pink-moon.mp3")
	press(m, "ctrl+s")

	if _, err := os.Stat(m.lib.Path("pink-moon.mp3")); err != nil {
		t.Fatalf("renamed file missing: %v", err)
	}
	if _, err := os.Stat(m.lib.Path("song.mp3")); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("original file still present after rename")
	}
	if got := m.lib.Files()[0]; got != "pink-moon.mp3" {
		t.Fatalf("listing entry = %q, want renamed name in place", got)
	}
}

func TestSaveRenamesFileUnderSearch(t *testing.T) {
	codec := &testCodec{}
	m := newTestModel(t, config.Default(), codec, "pink moon.mp3", "road.mp3")
	codec.files[m.lib.Path("pink moon.mp3")] = songTags("Pink Moon", "Nick Drake")

	press(m, "/")
	typeText(m, "pink")
	press(m, "enter")

	press(m, "enter")
	m.session.fields[m.session.filenameIdx].SetValue("pink-moon.mp3")
	press(m, "ctrl+s")

	if got := m.list.Visible()[0]; got != "pink-moon.mp3" {
		t.Fatalf("filtered listing shows %q after rename, want renamed entry", got)
	}
	if _, err := os.Stat(m.lib.Path("pink-moon.mp3")); err != nil {
		t.Fatalf("renamed file missing: %v", err)
	}
}

func TestValidationBlocksSave(t *testing.T) {
	codec := &testCodec{}
	m := newTestModel(t, config.Default(), codec, "song.mp3")
	codec.files[m.lib.Path("song.mp3")] = songTags("Pink Moon", "Nick Drake")

	press(m, "enter")
	s := m.session
	s.fields[fieldByLabel(t, s, "Date/Year")].SetValue("2021-13-40 99:99:99")
	press(m, "ctrl+s")

	if m.screen != ScreenEdit {
		t.Fatal("invalid date closed the form")
	}
	if got := m.cmdline.NotificationMessage(); !strings.Contains(got, dateFormatMessage) {
		t.Fatalf("notification = %q", got)
	}
	if got := s.fields[fieldByLabel(t, s, "Date/Year")].Value(); got != "2021-13-40 99:99:99" {
		t.Fatalf("rejected value was not preserved: %q", got)
	}
	if len(codec.writes) != 0 {
		t.Fatal("invalid form still wrote tags")
	}

	s.fields[fieldByLabel(t, s, "Date/Year")].SetValue("1972")
	s.fields[fieldByLabel(t, s, "Track Number")].SetValue("12a")
	press(m, "ctrl+s")

	if got := m.cmdline.NotificationMessage(); !strings.Contains(got, trackNumberMessage) {
		t.Fatalf("notification = %q", got)
	}
}

func TestBatchWritesOnlyFilledFields(t *testing.T) {
	codec := &testCodec{}
	m := newTestModel(t, config.Default(), codec, "a.mp3", "b.mp3")
	pathA, pathB := m.lib.Path("a.mp3"), m.lib.Path("b.mp3")
	codec.files[pathA] = songTags("One", "Nick Drake")
	codec.files[pathB] = songTags("Two", "Someone Else")

	press(m, "space", "enter")
	s := m.session
	s.fields[fieldByLabel(t, s, "Artist")].SetValue("Nick Drake")
	press(m, "ctrl+s")

	if got := codec.files[pathB][tags.FieldArtist]; got != "Nick Drake" {
		t.Fatalf("batch artist on b = %q", got)
	}
	// Fields left blank in the form keep their per-file values.
	if got := codec.files[pathB][tags.FieldTitle]; got != "Two" {
		t.Fatalf("blank batch field overwrote title: %q", got)
	}
	if m.screen != ScreenBrowser {
		t.Fatal("form still open after batch save")
	}
}

func TestBatchAbortsOnFirstFailure(t *testing.T) {
	codec := &testCodec{}
	m := newTestModel(t, config.Default(), codec, "a.mp3", "b.mp3", "c.mp3")
	codec.failWrite = map[string]error{
		m.lib.Path("b.mp3"): errors.New("permission denied"),
	}

	// Mark a and b, confirm on c: all three become targets.
	press(m, "space", "space", "enter")
	s := m.session
	s.fields[fieldByLabel(t, s, "Genre")].SetValue("Folk")
	press(m, "ctrl+s")

	if m.screen != ScreenEdit {
		t.Fatal("failed batch closed the form")
	}
	if got := m.cmdline.NotificationMessage(); !strings.Contains(got, "b.mp3") {
		t.Fatalf("notification %q does not name the failing file", got)
	}
	// a was written before the failure; c was never reached.
	if len(codec.writes) != 1 || codec.writes[0] != m.lib.Path("a.mp3") {
		t.Fatalf("writes = %v, want only a.mp3", codec.writes)
	}
}

func TestGenreCompletion(t *testing.T) {
	codec := &testCodec{}
	m := newTestModel(t, config.Default(), codec, "song.mp3")
	codec.files[m.lib.Path("song.mp3")] = songTags("Pink Moon", "Nick Drake")

	press(m, "enter")
	s := m.session
	genre := fieldByLabel(t, s, "Genre")
	s.focus = genre

	s.fields[genre].SetValue("grun")
	press(m, "tab")
	if got := s.fields[genre].Value(); got != "Grunge" {
		t.Fatalf("single-candidate completion = %q, want %q", got, "Grunge")
	}

	s.fields[genre].SetValue("rock")
	press(m, "tab")
	if len(m.suggestions) < 2 {
		t.Fatalf("suggestions = %v, want several candidates", m.suggestions)
	}
}

func TestEscClosesForm(t *testing.T) {
	codec := &testCodec{}
	m := newTestModel(t, config.Default(), codec, "song.mp3")
	codec.files[m.lib.Path("song.mp3")] = songTags("Pink Moon", "Nick Drake")

	press(m, "enter", "esc")

	if m.screen != ScreenBrowser || m.session != nil {
		t.Fatal("escape in normal mode did not close the form")
	}
	if len(codec.writes) != 0 {
		t.Fatal("cancelled form wrote tags")
	}
}

func TestLiveSearchNarrowsAndEscapeReverts(t *testing.T) {
	codec := &testCodec{}
	m := newTestModel(t, config.Default(), codec, "Pink Moon.mp3", "River Man.mp3")

	press(m, "/")
	typeText(m, "river")
	if got := m.list.Len(); got != 1 {
		t.Fatalf("visible after live search = %d, want 1", got)
	}

	press(m, "enter")
	if m.cmdline.Active() {
		t.Fatal("command line still active after submit")
	}
	if got := m.list.Len(); got != 1 {
		t.Fatal("submitted search lost its filter")
	}

	press(m, "esc")
	if got := m.list.Len(); got != 2 {
		t.Fatalf("visible after revert = %d, want 2", got)
	}
}

func TestEscapeDuringSearchTypingReverts(t *testing.T) {
	codec := &testCodec{}
	m := newTestModel(t, config.Default(), codec, "Pink Moon.mp3", "River Man.mp3")

	press(m, "/")
	typeText(m, "river")
	press(m, "esc")

	if m.cmdline.Active() {
		t.Fatal("command line still active after escape")
	}
	if got := m.list.Len(); got != 2 {
		t.Fatalf("visible after abandoning search = %d, want 2", got)
	}
}

func TestSetCommand(t *testing.T) {
	codec := &testCodec{}
	m := newTestModel(t, config.Default(), codec, "a.mp3")

	press(m, ":")
	typeText(m, "set fuzzy_search on")
	press(m, "enter")

	if !m.cfg.OptionEnabled("fuzzy_search") {
		t.Fatal(":set did not enable the option")
	}

	press(m, "enter") // dismiss the confirmation
	press(m, ":")
	typeText(m, "set bogus on")
	press(m, "enter")

	if got := m.cmdline.NotificationMessage(); !strings.Contains(got, "bogus") {
		t.Fatalf("notification = %q, want unknown-option error", got)
	}
}

func TestQuitCommand(t *testing.T) {
	codec := &testCodec{}
	m := newTestModel(t, config.Default(), codec, "a.mp3")

	press(m, ":")
	typeText(m, "q")
	cmd := press(m, "enter")

	if cmd == nil {
		t.Fatal("no command returned for :q")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal(":q did not quit")
	}
}

func TestFirstRunNotification(t *testing.T) {
	codec := &testCodec{files: map[string]tags.Map{}}
	dir := t.TempDir()

	lib := library.New(dir)
	if err := lib.Load(); err != nil {
		t.Fatal(err)
	}
	preview, err := library.NewPreview(codec, config.DefaultPreviewFormat)
	if err != nil {
		t.Fatal(err)
	}

	m, err := New(Deps{
		Config:   config.Default(),
		Library:  lib,
		Preview:  preview,
		Codec:    codec,
		FirstRun: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	if !m.cmdline.NotificationActive() {
		t.Fatal("first run showed no notification")
	}

	press(m, "enter")
	if m.cmdline.NotificationActive() {
		t.Fatal("enter did not dismiss the notification")
	}
}

func TestNotificationKeepsNavigationLive(t *testing.T) {
	codec := &testCodec{}
	m := newTestModel(t, config.Default(), codec, "a.mp3", "b.mp3")

	m.cmdline.Notify("Info", "Saved a.mp3")

	press(m, "j")
	if got, _ := m.list.SelectedItem(); got != "b.mp3" {
		t.Fatalf("cursor under a notification = %q, want b.mp3", got)
	}
	if !m.cmdline.NotificationActive() {
		t.Fatal("navigation dismissed the notification")
	}

	press(m, "/")
	if m.cmdline.Active() {
		t.Fatal("search activated while the command line held a notification")
	}

	press(m, "enter")
	if m.cmdline.NotificationActive() {
		t.Fatal("enter did not dismiss the notification")
	}
	if m.screen != ScreenBrowser {
		t.Fatal("dismissing the notification opened the edit form")
	}
}

func TestReloadPicksUpNewFiles(t *testing.T) {
	codec := &testCodec{}
	m := newTestModel(t, config.Default(), codec, "a.mp3")

	if err := os.WriteFile(filepath.Join(m.lib.Dir(), "b.mp3"), nil, 0o600); err != nil {
		t.Fatal(err)
	}

	press(m, "u")
	if got := m.list.Len(); got != 2 {
		t.Fatalf("listing after reload = %d entries, want 2", got)
	}
}
