// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// CONFIG FILE WATCHER
// =============================================================================

// debounceInterval coalesces the burst of write events editors emit when
// saving a file.
const debounceInterval = 250 * time.Millisecond

// Watcher reloads the global configuration when the config file changes on
// disk, so a running session picks up edits without a restart.
type Watcher struct {
	fsw      *fsnotify.Watcher
	onReload func(*Config)
	done     chan struct{}
}

// Watch starts watching the default config file. onReload is called with the
// freshly loaded config after every successful reload; it may be nil. The
// callback runs on the watcher's goroutine.
func Watch(onReload func(*Config)) (*Watcher, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	// Watch the directory rather than the file: editors replace the file
	// on save, which would break a direct file watch.
	if err := EnsureConfigDir(); err != nil {
		return nil, err
	}
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		onReload: onReload,
		done:     make(chan struct{}),
	}
	go w.run(path)
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) run(path string) {
	var timer *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Name != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceInterval, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			if err := ReloadGlobal(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: config reload failed: %v\n", err)
				continue
			}
			if w.onReload != nil {
				w.onReload(Global())
			}

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}
