// File: watch.go
// Title: Configuration File Watching Implementation
// Description: Reloads the configuration file when it changes on disk and
//              notifies registered change handlers. Uses fsnotify on the
//              parent directory so that editors which replace the file
//              atomically are picked up too.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of file watching (polling)
// - 2026-10-18 v0.2.0: Switched to fsnotify

package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/msto63/pcomb/foundation/core/error"
	mdwstringx "github.com/msto63/pcomb/foundation/utils/stringx"
)

type watcher struct {
	fs   *fsnotify.Watcher
	done chan struct{}
}

// startWatching starts monitoring the configuration file for changes
func (c *Config) startWatching() error {
	if mdwstringx.IsBlank(c.filePath) {
		return mdwerror.New("file path required for watching").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.startWatching")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return mdwerror.Wrap(err, "failed to create file watcher").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.startWatching")
	}
	if err := fsw.Add(filepath.Dir(c.filePath)); err != nil {
		fsw.Close()
		return mdwerror.Wrap(err, "failed to watch config directory").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.startWatching").
			WithDetail("filePath", c.filePath)
	}

	w := &watcher{fs: fsw, done: make(chan struct{})}
	c.watcher = w
	go c.watchLoop(w)
	return nil
}

func (c *Config) watchLoop(w *watcher) {
	defer close(w.done)
	target := filepath.Clean(c.filePath)

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			// A failed reload keeps the previous data; the next write retries.
			if err := c.reload(); err != nil {
				continue
			}
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
		}
	}
}

// reload re-reads the file and notifies handlers
func (c *Config) reload() error {
	data, err := readFile(c.filePath, c.format)
	if err != nil {
		return mdwerror.Wrap(err, "failed to reload config file").
			WithOperation("config.reload").
			WithDetail("filePath", c.filePath)
	}

	c.mu.Lock()
	c.data = data
	c.mu.Unlock()

	c.handlersMu.Lock()
	handlers := make([]ChangeHandler, len(c.handlers))
	copy(handlers, c.handlers)
	c.handlersMu.Unlock()

	for _, handler := range handlers {
		handler(c)
	}
	return nil
}

// StopWatching stops file monitoring and waits for the watch loop to exit
func (c *Config) StopWatching() {
	if c.watcher == nil {
		return
	}
	c.watcher.fs.Close()
	<-c.watcher.done
	c.watcher = nil
}

// IsWatching returns whether the file is being watched
func (c *Config) IsWatching() bool {
	return c.watcher != nil
}
