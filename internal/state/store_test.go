package state

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestLastFieldDefaultsToZero(t *testing.T) {
	s := openTestStore(t)

	idx, err := s.LastField()
	if err != nil {
		t.Fatal(err)
	}
	if idx != 0 {
		t.Errorf("LastField() = %d, want 0", idx)
	}
}

func TestLastFieldRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if err := s.SetLastField(5); err != nil {
		t.Fatal(err)
	}

	idx, err := s.LastField()
	if err != nil {
		t.Fatal(err)
	}
	if idx != 5 {
		t.Errorf("LastField() = %d, want 5", idx)
	}
}

func TestFirstRunFlag(t *testing.T) {
	s := openTestStore(t)

	first, err := s.IsFirstRun()
	if err != nil {
		t.Fatal(err)
	}
	if !first {
		t.Error("fresh store should report first run")
	}

	if err := s.MarkRunComplete(); err != nil {
		t.Fatal(err)
	}

	first, err = s.IsFirstRun()
	if err != nil {
		t.Fatal(err)
	}
	if first {
		t.Error("IsFirstRun() should be false after MarkRunComplete()")
	}
}

func TestCommandHistory(t *testing.T) {
	s := openTestStore(t)

	for _, cmd := range []string{"/nirvana", ":reload", ":set vim_mode off"} {
		if err := s.AppendCommand(cmd); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.RecentCommands(2)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{":reload", ":set vim_mode off"}
	if len(got) != len(want) {
		t.Fatalf("RecentCommands(2) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("RecentCommands(2)[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
