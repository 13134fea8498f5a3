package library

import (
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports external changes to the music directory so the file list
// can be reloaded without pressing the reload key. Rapid event bursts
// (a copy of many files) collapse into whatever Events reads keep up with.
type Watcher struct {
	fs *fsnotify.Watcher

	// Events receives one value per relevant filesystem change.
	Events chan struct{}

	done chan struct{}
}

// Watch starts watching dir for file creations, removals and renames.
func Watch(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fw.Add(dir); err != nil {
		_ = fw.Close() //nolint:errcheck // best-effort cleanup
		return nil, err
	}

	w := &Watcher{
		fs:     fw,
		Events: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	go w.loop()

	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			select {
			case w.Events <- struct{}{}:
			default: // a reload is already pending
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			slog.Debug("watcher error", slog.String("error", err.Error()))
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}
