// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path"
	"path/filepath"
	"reflect"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
)

const (
	fileWatcherLoggerPrefix = "file-watcher"

	// wait after a change event before re-reading so editors
	// that write in multiple steps settle first
	reloadDelay = 10 * time.Second
)

// watches the configuration file and re-applies the logging
// section when it changes; all other settings need a restart
type configWatcher struct {
	log            *logger.L
	watcher        *fsnotify.Watcher
	filePath       string
	currentLogging logger.Configuration
}

func newConfigWatcher(targetFile string, log *logger.L, currentLogging logger.Configuration) (*configWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Errorf("new watcher error: %s", err)
		return nil, err
	}

	filePath, err := filepath.Abs(filepath.Clean(targetFile))
	if err != nil {
		log.Errorf("parse file %s error: %s", targetFile, err)
		return nil, err
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, err
	}

	return &configWatcher{
		log:            log,
		watcher:        watcher,
		filePath:       filePath,
		currentLogging: currentLogging,
	}, nil
}

func (w *configWatcher) Start() error {
	err := w.watcher.Add(w.filePath)
	if err != nil {
		w.log.Errorf("watcher add error: %s", err)
		return err
	}

	go func() {
		for event := range w.watcher.Events {
			w.log.Infof("file event: %v", event)

			if watcherEventFileRemove(event) {
				w.log.Errorf("file %s removed, stop watching", w.filePath)
				return
			}

			if path.Base(event.Name) != path.Base(w.filePath) {
				continue
			}

			if watcherEventFileChange(event) {
				time.Sleep(reloadDelay)
				w.reload()
			}
		}
	}()

	return nil
}

// re-read the configuration and swap the logging setup if its
// section changed and still validates
func (w *configWatcher) reload() {
	options, err := getConfiguration(w.filePath)
	if err != nil {
		w.log.Errorf("configuration re-read failed: %s", err)
		return
	}

	if reflect.DeepEqual(options.Logging, w.currentLogging) {
		w.log.Info("logging configuration unchanged")
		return
	}

	logger.Finalise()
	if err := logger.Initialise(options.Logging); err != nil {
		// fall back to the previous working setup
		_ = logger.Initialise(w.currentLogging)
		w.log.Errorf("logging configuration rejected: %s", err)
		return
	}

	w.currentLogging = options.Logging
	w.log.Info("logging configuration reloaded")
}

func watcherEventFileRemove(event fsnotify.Event) bool {
	return event.Name == "" || event.Op&fsnotify.Remove == fsnotify.Remove
}

func watcherEventFileChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Chmod == fsnotify.Chmod
}
