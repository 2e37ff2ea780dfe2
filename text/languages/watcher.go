// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package languages

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"cogentcore.org/core/base/errors"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period a [Watcher] waits for after the
// last change to a file before reloading it.
const DefaultDebounce = 200 * time.Millisecond

// Reload describes one reload done by a [Watcher].
type Reload struct {

	// Path of the definition file.
	Path string

	// Names of the languages added or removed.
	Names []string

	// Removed is set when the file went away.
	Removed bool

	// Err is the load error, if any. The registry keeps the previous
	// definition when a changed file fails to load.
	Err error
}

// Watcher reloads the definition files of directories into a
// [Registry] when they change.
type Watcher struct {
	reg *Registry
	fsw *fsnotify.Watcher

	// Debounce is the quiet period before a reload.
	Debounce time.Duration
}

// NewWatcher returns a watcher of dirs that reloads into reg.
func NewWatcher(reg *Registry, dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching directory %s: %w", dir, err)
		}
	}
	return &Watcher{reg: reg, fsw: fsw, Debounce: DefaultDebounce}, nil
}

// Run processes file events until ctx is done, then closes the
// watcher. onReload, if not nil, is called after every reload, from
// the goroutine calling Run.
func (w *Watcher) Run(ctx context.Context, onReload func(Reload)) error {
	defer w.fsw.Close()
	pending := make(map[string]bool)
	timer := time.NewTimer(w.Debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if _, known := FormatOf(event.Name); !known {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			pending[event.Name] = true
			timer.Reset(w.Debounce)

		case <-timer.C:
			for file := range pending {
				rl := w.reload(file)
				if onReload != nil {
					onReload(rl)
				}
			}
			clear(pending)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("languages: watcher error", "err", err)
		}
	}
}

// reload loads file again, or removes its definitions if it is gone.
func (w *Watcher) reload(file string) Reload {
	rl := Reload{Path: file}
	old := w.reg.pathNames(file)
	def, err := w.reg.LoadFile(file)
	switch {
	case err == nil:
		rl.Names = []string{def.Name}
		for _, name := range old {
			if key(name) != key(def.Name) {
				w.reg.Remove(name)
			}
		}
		slog.Info("languages: reloaded", "language", def.Name, "path", file)
	case errors.Is(err, fs.ErrNotExist):
		rl.Removed = true
		rl.Names = w.reg.RemovePath(file)
		slog.Info("languages: removed", "languages", rl.Names, "path", file)
	default:
		rl.Err = err
		slog.Error("languages: reload failed", "path", file, "err", err)
	}
	return rl
}
