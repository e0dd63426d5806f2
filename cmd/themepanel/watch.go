package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themepanel/internal/store"
	"github.com/jmylchreest/themepanel/internal/theme"
)

var watchOpts struct {
	out       string
	themeName string
	themesDir string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate CSS whenever the document changes",
	Long: `Export CSS once, then again every time the document is saved, until
interrupted. With --theme, a user theme from the themes directory is watched
instead of the document.

Bursts of writes are collapsed using the [watch] debounce from the config.

Examples:
  themepanel watch --out public/theme.css
  themepanel watch --theme brand --out public/brand.css`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchOpts.out, "out", "o", "",
		"Write to file instead of stdout")
	watchCmd.Flags().StringVar(&watchOpts.themeName, "theme", "",
		"Watch a user theme by name instead of the document")
	watchCmd.Flags().StringVar(&watchOpts.themesDir, "themes-dir", "",
		"User themes directory (default: ~/.config/themepanel/themes)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var mu sync.Mutex
	emit := func(css string) {
		mu.Lock()
		defer mu.Unlock()
		if err := writeCSS(cmd.OutOrStdout(), watchOpts.out, css); err != nil {
			logger.Warn("failed to write stylesheet", "error", err)
		}
	}

	if watchOpts.themeName != "" {
		return watchTheme(ctx, emit)
	}
	return watchDocument(ctx, cmd.ErrOrStderr(), emit)
}

func watchDocument(ctx context.Context, status io.Writer, emit func(string)) error {
	doc, docPath, err := loadDocument()
	if err != nil {
		return err
	}
	emit(renderCSS(doc, docPath))

	deb := newDebouncer(cfg.Watch.Debounce.Duration())
	defer deb.stop()

	watcher, err := store.NewFileWatcher(docPath, func(string) {
		deb.trigger(func() {
			doc, err := store.LoadDocument(docPath)
			if err != nil {
				logger.Warn("failed to reload document", "path", docPath, "error", err)
				return
			}
			emit(renderCSS(doc, docPath))
		})
	}, logger)
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer watcher.Stop()

	fmt.Fprintf(status, "watching %s\n", docPath)
	<-ctx.Done()
	return nil
}

func watchTheme(ctx context.Context, emit func(string)) error {
	loader := theme.NewLoader(watchOpts.themesDir, logger)
	t, err := loader.LoadTheme(watchOpts.themeName)
	if err != nil {
		return err
	}
	if t.IsBundled || t.Name != watchOpts.themeName {
		return fmt.Errorf("theme %q is not a user theme in %s", watchOpts.themeName, loader.Dir())
	}
	emit(renderCSS(t.Doc, t.Path))

	deb := newDebouncer(cfg.Watch.Debounce.Duration())
	defer deb.stop()

	if err := loader.StartHotReload(ctx, func(t *theme.Theme) {
		doc := t.Doc
		deb.trigger(func() { emit(renderCSS(doc, t.Path)) })
	}); err != nil {
		return err
	}
	defer loader.StopHotReload()

	<-ctx.Done()
	return nil
}

// debouncer runs only the last function triggered within its window.
type debouncer struct {
	mu     sync.Mutex
	window time.Duration
	timer  *time.Timer
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{window: window}
}

func (d *debouncer) trigger(f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, f)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}
