// Package watch polls a file or directory tree for statement files that
// change.
package watch

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("arith.watch")

// Ext is the extension of statement files found when walking a directory.
const Ext = ".arith"

// Handler receives change notifications. Changed is called for new and
// modified files, Removed for files that disappeared since the last scan.
type Handler interface {
	Changed(path string)
	Removed(path string)
}

type Watcher struct {
	root         string
	handler      Handler
	pollInterval time.Duration
	modTimes     map[string]time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

// New watches root. A file root is watched regardless of its extension;
// a directory root is walked for files ending in Ext, skipping dot
// directories.
func New(root string, handler Handler, pollInterval time.Duration) *Watcher {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &Watcher{
		root:         root,
		handler:      handler,
		pollInterval: pollInterval,
		modTimes:     make(map[string]time.Time),
		stopCh:       make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// Start scans once and then polls in the background until Stop.
func (w *Watcher) Start() {
	go w.run()
}

// Stop ends polling and waits for an in-flight scan to finish.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	<-w.done
}

func (w *Watcher) run() {
	defer close(w.done)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.Scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Scan()
		}
	}
}

// Scan compares the tree against the previous scan and notifies the
// handler. It must not be called concurrently with a started watcher.
func (w *Watcher) Scan() {
	current := make(map[string]bool)

	err := filepath.Walk(w.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != w.root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if path != w.root && filepath.Ext(path) != Ext {
			return nil
		}

		current[path] = true

		lastMod, known := w.modTimes[path]
		if !known || info.ModTime().After(lastMod) {
			w.modTimes[path] = info.ModTime()
			log.Debugf("changed: %s", path)
			w.handler.Changed(path)
		}
		return nil
	})
	if err != nil {
		log.Warningf("walk %s: %s", w.root, err)
	}

	for path := range w.modTimes {
		if !current[path] {
			delete(w.modTimes, path)
			log.Debugf("removed: %s", path)
			w.handler.Removed(path)
		}
	}
}
