// Package main provides the CLI entry point for clid.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/GokulSoumya/clid/internal/config"
	"github.com/GokulSoumya/clid/internal/library"
	"github.com/GokulSoumya/clid/internal/state"
	"github.com/GokulSoumya/clid/internal/tags"
	"github.com/GokulSoumya/clid/internal/tui"
)

var version = "dev"

var (
	musicDir string // Override from --dir flag
	verbose  bool
	logFile  *os.File
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "clid",
		Version: version,
		Short:   "Edit audio tags from the terminal",
		Long: `clid is a terminal app for editing the ID3 tags of your music,
with vim-style keybindings and batch editing across multiple files.

Configuration lives in ~/.config/clid/config.yaml. Point music_dir at
your library, or pass --dir to browse another directory.`,
		RunE: run,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if verbose {
				logWriter := os.Stderr
				// Logs go to a file while the TUI owns the screen
				if tui.IsTerminal() {
					logPath := filepath.Join(os.TempDir(), "clid.log")
					f, err := os.Create(logPath)
					if err == nil {
						logFile = f
						logWriter = f
						fmt.Fprintf(os.Stderr, "Verbose logs: %s\n", logPath)
					}
				}
				slog.SetDefault(slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}

			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logFile != nil {
				_ = logFile.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&musicDir, "dir", "d", "", "Override the music directory (ignores config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(_ *cobra.Command, _ []string) error {
	if !tui.IsTerminal() {
		return fmt.Errorf("clid is interactive and requires a terminal")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dir, err := resolveMusicDir(cfg)
	if err != nil {
		return err
	}

	lib := library.New(dir)
	if err := lib.Load(); err != nil {
		return err
	}

	preview, err := library.NewPreview(tags.ID3Codec{}, cfg.PreviewFormat)
	if err != nil {
		return err
	}

	deps := tui.Deps{
		Config:  cfg,
		Library: lib,
		Preview: preview,
		Codec:   tags.ID3Codec{},
	}

	// Session state is optional; clid still works without the database.
	store := openStore()
	if store != nil {
		defer func() { _ = store.Close() }()
		deps.Store = store

		firstRun, err := store.IsFirstRun()
		if err != nil {
			slog.Warn("checking first run", slog.String("error", err.Error()))
		}
		deps.FirstRun = firstRun
	}

	watcher, err := library.Watch(dir)
	if err != nil {
		slog.Warn("watching music directory", slog.String("error", err.Error()))
	} else {
		defer func() { _ = watcher.Close() }()
		deps.Watcher = watcher
	}

	if err := tui.Run(deps); err != nil {
		return err
	}

	if store != nil {
		if err := store.MarkRunComplete(); err != nil {
			slog.Warn("marking run complete", slog.String("error", err.Error()))
		}
	}

	return nil
}

func openStore() *state.Store {
	path, err := state.DefaultPath()
	if err != nil {
		slog.Warn("locating state database", slog.String("error", err.Error()))
		return nil
	}

	store, err := state.Open(path)
	if err != nil {
		slog.Warn("opening state database", slog.String("error", err.Error()))
		return nil
	}

	return store
}

// resolveMusicDir picks the directory to browse: the --dir flag, then the
// configured music_dir, then ~/Music. A leading ~ expands to the home
// directory.
func resolveMusicDir(cfg *config.Config) (string, error) {
	dir := musicDir
	if dir == "" {
		dir = cfg.MusicDir
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	switch {
	case dir == "":
		dir = filepath.Join(home, "Music")
	case dir[0] == '~':
		dir = filepath.Join(home, dir[1:])
	}

	return dir, nil
}
