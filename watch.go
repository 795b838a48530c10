package thicket

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// BindingReload is the result of re-reading a binding file.
type BindingReload struct {
	Path     string
	Mappings []Mapping
	Err      error
}

// BindingWatcher reloads a binding file whenever it changes on disk. Only the
// latest reload is kept if the consumer falls behind.
type BindingWatcher struct {
	path    string
	actions map[string]Action
	watcher *fsnotify.Watcher
	reloads chan BindingReload
	log     *slog.Logger
}

// NewBindingWatcher watches the directory containing path, so editors that
// replace the file on save are still observed. The file does not have to
// exist yet.
func NewBindingWatcher(path string, actions map[string]Action) (*BindingWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch bindings: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch bindings: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch bindings: %w", err)
	}
	return &BindingWatcher{
		path:    abs,
		actions: actions,
		watcher: fsw,
		reloads: make(chan BindingReload, 1),
		log:     discardLogger,
	}, nil
}

// Path returns the absolute path being watched.
func (bw *BindingWatcher) Path() string { return bw.path }

// Reloads returns the channel reload results are delivered on.
func (bw *BindingWatcher) Reloads() <-chan BindingReload { return bw.reloads }

// Run processes file system events until ctx is done or the watcher is
// closed. It returns ctx.Err() on cancellation and nil after Close.
func (bw *BindingWatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-bw.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != bw.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			ms, err := LoadBindings(bw.path, bw.actions)
			bw.publish(BindingReload{Path: bw.path, Mappings: ms, Err: err})
		case err, ok := <-bw.watcher.Errors:
			if !ok {
				return nil
			}
			bw.log.Warn("binding watcher error", slog.String("path", bw.path), slog.Any("err", err))
		}
	}
}

// publish replaces any undelivered reload with r.
func (bw *BindingWatcher) publish(r BindingReload) {
	select {
	case <-bw.reloads:
	default:
	}
	bw.reloads <- r
}

// Close stops watching. Run returns once Close has been called.
func (bw *BindingWatcher) Close() error {
	return bw.watcher.Close()
}

// WatchBindings loads the binding file at path into the window's translator
// and keeps it in sync with the file until ctx is done. Reloads are applied
// at the start of Update, so mappings never change mid-event. A reload that
// fails to parse is logged and the previous mappings stay active.
func (w *Window) WatchBindings(ctx context.Context, path string, actions map[string]Action) error {
	ms, err := LoadBindings(path, actions)
	if err != nil {
		return err
	}
	bw, err := NewBindingWatcher(path, actions)
	if err != nil {
		return err
	}
	bw.log = w.log
	w.translator.ResetMappings()
	w.translator.RegisterMappings(ms)
	w.reloads = bw.Reloads()
	log := w.log
	go func() {
		defer bw.Close()
		if err := bw.Run(ctx); err != nil && ctx.Err() == nil {
			log.Warn("binding watcher stopped", slog.Any("err", err))
		}
	}()
	return nil
}

// applyReloads installs the latest pending binding reload, if any.
func (w *Window) applyReloads() {
	if w.reloads == nil {
		return
	}
	select {
	case r := <-w.reloads:
		w.applyReload(r)
	default:
	}
}

func (w *Window) applyReload(r BindingReload) {
	if r.Err != nil {
		w.log.Warn("binding reload failed", slog.String("path", r.Path), slog.Any("err", r.Err))
		return
	}
	w.translator.ResetMappings()
	w.translator.RegisterMappings(r.Mappings)
	w.log.Info("bindings reloaded", slog.String("path", r.Path), slog.Int("count", len(r.Mappings)))
	w.listeners.Notify(Notice{Kind: NoticeBindingsReloaded}, w.scope)
}
