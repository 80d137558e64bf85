// ============================================================================
// pcomb - Parser-Combinator Engine
// ============================================================================
//
// Package:     watcher
// Description: Re-runs a handler whenever a source file is written
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package watcher

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/msto63/pcomb/foundation/core/error"
	mdwlog "github.com/msto63/pcomb/foundation/core/log"
)

// DefaultDebounce collapses the burst of events editors emit on save
const DefaultDebounce = 100 * time.Millisecond

// Handler receives the current content of the watched file
type Handler func(path, content string)

// Options configures Watch
type Options struct {
	Debounce time.Duration
	Logger   *mdwlog.Logger
}

// Watch calls handle with the content of path, then again after every
// change, until ctx is cancelled. The directory is watched rather than the
// file so that editors which save by rename keep working.
func Watch(ctx context.Context, path string, opts Options, handle Handler) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = mdwlog.NewNop()
	}
	target := filepath.Clean(path)
	logger := opts.Logger.WithField("path", target)

	if err := deliver(target, handle); err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return mdwerror.Wrap(err, "failed to create file watcher").
			WithCode(mdwerror.CodeInternal).
			WithOperation("watcher.Watch")
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(target)); err != nil {
		return mdwerror.Wrap(err, "failed to watch directory").
			WithCode(mdwerror.CodeInternal).
			WithOperation("watcher.Watch").
			WithDetail("path", target)
	}
	logger.Debug("watching source file")

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(opts.Debounce)
			} else {
				timer.Reset(opts.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			// A failed read keeps watching; the next write retries.
			if err := deliver(target, handle); err != nil {
				logger.WarnWithErr("source reload failed", err)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.WarnWithErr("file watcher error", err)
		}
	}
}

func deliver(path string, handle Handler) error {
	data, err := os.ReadFile(path)
	if err != nil {
		code := mdwerror.CodeInternal
		if os.IsNotExist(err) {
			code = mdwerror.CodeNotFound
		}
		return mdwerror.Wrap(err, "failed to read source file").
			WithCode(code).
			WithOperation("watcher.Watch").
			WithDetail("path", path)
	}
	handle(path, string(data))
	return nil
}
