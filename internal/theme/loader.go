package theme

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/jmylchreest/themepanel/internal/store"
)

// Loader resolves themes by name and can hot-reload the current one.
type Loader struct {
	mu        sync.RWMutex
	logger    *slog.Logger
	themesDir string
	theme     *Theme
	watcher   *store.FileWatcher
}

// NewLoader creates a loader reading user themes from themesDir. An empty
// themesDir uses ThemesDir().
func NewLoader(themesDir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	if themesDir == "" {
		dir, err := ThemesDir()
		if err != nil {
			logger.Warn("failed to get themes directory", "error", err)
		}
		themesDir = dir
	}

	return &Loader{
		logger:    logger,
		themesDir: themesDir,
	}
}

// ThemesDir returns the path to the user's themes directory.
func ThemesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "themepanel", "themes"), nil
}

// Dir returns the user themes directory in use.
func (l *Loader) Dir() string {
	return l.themesDir
}

// LoadTheme loads a theme by name.
// Theme resolution order:
//  1. User themes directory (~/.config/themepanel/themes/)
//  2. Embedded/bundled themes
//  3. The bundled default theme
//
// Placing a file with a bundled name in the themes directory overrides the
// bundled theme.
func (l *Loader) LoadTheme(name string) (*Theme, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if name == "" {
		name = DefaultThemeName
	}

	if l.themesDir != "" {
		for _, ext := range documentExts {
			path := filepath.Join(l.themesDir, name+ext)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			t, err := NewTheme(name, path)
			if err != nil {
				l.logger.Warn("failed to load user theme, trying bundled", "theme", name, "error", err)
				break
			}
			l.theme = t
			l.logger.Info("loaded user theme", "name", name, "path", path)
			return t, nil
		}
	}

	if t, ok := NewBundledTheme(name); ok {
		l.theme = t
		l.logger.Info("loaded bundled theme", "name", name)
		return t, nil
	}

	l.logger.Warn("theme not found, using default", "theme", name)
	l.theme = NewDefaultTheme()
	return l.theme, nil
}

// GetTheme returns the currently loaded theme.
func (l *Loader) GetTheme() *Theme {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.theme
}

// ListThemes returns bundled and user themes, user themes overriding.
func (l *Loader) ListThemes() []ThemeInfo {
	themes, err := ListAvailableThemes(l.themesDir)
	if err != nil {
		l.logger.Debug("failed to read themes directory", "error", err)
	}
	return themes
}

// StartHotReload watches the current theme file and calls onChange with
// the reloaded theme whenever its resolved document changes.
func (l *Loader) StartHotReload(ctx context.Context, onChange func(*Theme)) error {
	l.StopHotReload()

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.theme == nil || l.theme.IsBundled {
		l.logger.Debug("not starting hot-reload for bundled theme")
		return nil
	}

	current := l.theme
	w, err := store.NewFileWatcher(current.Path, func(string) {
		l.mu.Lock()
		changed, err := current.Reload()
		l.mu.Unlock()
		if err != nil {
			l.logger.Warn("failed to reload theme", "path", current.Path, "error", err)
			return
		}
		if changed {
			l.logger.Info("hot-reloaded theme", "name", current.Name)
			if onChange != nil {
				onChange(current)
			}
		}
	}, l.logger)
	if err != nil {
		return err
	}

	if err := w.Start(ctx); err != nil {
		return err
	}
	l.watcher = w
	return nil
}

// StopHotReload stops watching the theme for changes.
func (l *Loader) StopHotReload() {
	l.mu.Lock()
	w := l.watcher
	l.watcher = nil
	l.mu.Unlock()

	if w != nil {
		_ = w.Stop()
	}
}
